package cart

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/core/parallel"
	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// OptimizeTree returns the maximum a posteriori tree: the shape whose
// TotalScore is the largest among all shapes IterateTrees would produce for
// the same inputs. Ties go to the first shape in IterateTrees order, which
// makes the result reproducible.
func OptimizeTree(predictors []Variable, response Variable, data mat.Matrix, opts ...Option) (result TreeResult, err error) {
	defer errors.Recover(&err, "OptimizeTree")

	s, err := newSearch("optimize", predictors, response, data, opts)
	if err != nil {
		return TreeResult{}, err
	}

	start := time.Now()
	s.logger.Debug("Optimization started",
		log.PredictorsKey, len(predictors),
		log.RowsKey, len(s.rows),
		log.ParallelismKey, parallel.Workers(s.workers),
	)

	best, err := s.optimizeRoot(allRows(len(s.rows)))
	if err != nil {
		s.logger.Error("Optimization failed", err)
		return TreeResult{}, err
	}

	result = s.result(best)
	s.logger.Info("Optimization finished",
		log.LeavesKey, best.node.NumLeaves(),
		log.DataScoreKey, result.DataScore,
		log.StructureScoreKey, result.StructureScore,
		log.TotalScoreKey, result.TotalScore(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// optimizeRoot evaluates the root candidates, concurrently when more than one
// worker is configured. The argmax is taken in visitation order afterwards,
// so the outcome matches the sequential search.
func (s *search) optimizeRoot(rows []int) (partial, error) {
	if s.workers == 1 {
		return s.optimize(rows, rootDomain(s.predictors))
	}

	leaf, score, err := s.leaf(rows)
	if err != nil {
		return partial{}, err
	}
	best := partial{node: leaf, dataScore: score}

	cands := candidates(s.predictors, rootDomain(s.predictors))
	type evaluated struct {
		left, right partial
	}
	results := make([]evaluated, len(cands))
	err = parallel.ForEach(len(cands), s.workers, func(i int) error {
		left, right, err := s.optimizeChildren(rows, &cands[i])
		if err != nil {
			return err
		}
		results[i] = evaluated{left: left, right: right}
		return nil
	})
	if err != nil {
		return partial{}, err
	}

	bestObjective := s.objective(best)
	for i := range cands {
		r := results[i]
		if obj := s.objective(r.left) + s.objective(r.right); improves(obj, bestObjective) {
			bestObjective = obj
			best = partial{node: cands[i].build(r.left.node, r.right.node), dataScore: r.left.dataScore + r.right.dataScore}
		}
	}
	return best, nil
}

// tieTolerance is the relative margin by which a candidate must beat the
// incumbent. Shapes inducing the same partition differ only by rounding.
const tieTolerance = 1e-12

// improves reports whether obj beats best by more than tieTolerance.
func improves(obj, best float64) bool {
	return obj > best+tieTolerance*math.Max(1, math.Abs(best))
}

// optimize returns the best subtree over rows and d. The leaf is the first
// incumbent; a candidate replaces the incumbent only if it improves on it.
func (s *search) optimize(rows []int, d domain) (partial, error) {
	leaf, score, err := s.leaf(rows)
	if err != nil {
		return partial{}, err
	}
	best := partial{node: leaf, dataScore: score}
	bestObjective := s.objective(best)

	cands := candidates(s.predictors, d)
	for i := range cands {
		c := &cands[i]
		left, right, err := s.optimizeChildren(rows, c)
		if err != nil {
			return partial{}, err
		}
		// The branching choice itself carries no log-prior weight; see
		// ComputeStructureScoreTerms.
		if obj := s.objective(left) + s.objective(right); improves(obj, bestObjective) {
			bestObjective = obj
			best = partial{node: c.build(left.node, right.node), dataScore: left.dataScore + right.dataScore}
		}
	}
	return best, nil
}

func (s *search) optimizeChildren(rows []int, c *candidate) (left, right partial, err error) {
	leftRows, rightRows, err := s.route(rows, c)
	if err != nil {
		return partial{}, partial{}, err
	}
	if left, err = s.optimize(leftRows, c.leftDom); err != nil {
		return partial{}, partial{}, err
	}
	if right, err = s.optimize(rightRows, c.rightDom); err != nil {
		return partial{}, partial{}, err
	}
	return left, right, nil
}
