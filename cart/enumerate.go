package cart

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// IterateTrees calls callback once for every admissible tree shape over
// predictors, in a fixed order: the leaf first, then each candidate split in
// visitation order with the product of its left and right subtrees,
// left-major. It returns after the last tree; there is no early exit.
//
// A panic in callback is returned as a *errors.PanicError.
func IterateTrees(predictors []Variable, response Variable, data mat.Matrix, callback func(TreeResult), opts ...Option) (err error) {
	defer errors.Recover(&err, "IterateTrees")

	s, err := newSearch("enumerate", predictors, response, data, opts)
	if err != nil {
		return err
	}
	if callback == nil {
		return errors.NewValidationError("callback", "must not be nil", nil)
	}

	start := time.Now()
	s.logger.Debug("Enumeration started",
		log.PredictorsKey, len(predictors),
		log.RowsKey, len(s.rows),
		log.LeafPenaltyKey, s.terms.LeafPenaltyTerm,
		log.NormalizerKey, s.terms.NormalizerTerm,
	)

	shapes := 0
	err = s.enumerate(allRows(len(s.rows)), rootDomain(predictors), func(p partial) {
		shapes++
		callback(s.result(p))
	})
	if err != nil {
		s.logger.Error("Enumeration failed", err)
		return err
	}

	s.logger.Info("Enumeration finished",
		log.ShapesKey, shapes,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// enumerate emits every subtree over rows and d. Child subtrees are
// collected before the product is emitted, so the collected lists are the
// only buffered state.
func (s *search) enumerate(rows []int, d domain, emit func(partial)) error {
	leaf, score, err := s.leaf(rows)
	if err != nil {
		return err
	}
	emit(partial{node: leaf, dataScore: score})

	cands := candidates(s.predictors, d)
	for i := range cands {
		c := &cands[i]
		leftRows, rightRows, err := s.route(rows, c)
		if err != nil {
			return err
		}

		var lefts, rights []partial
		if err := s.enumerate(leftRows, c.leftDom, func(p partial) { lefts = append(lefts, p) }); err != nil {
			return err
		}
		if err := s.enumerate(rightRows, c.rightDom, func(p partial) { rights = append(rights, p) }); err != nil {
			return err
		}

		for _, l := range lefts {
			for _, r := range rights {
				emit(partial{
					node:      c.build(l.node, r.node),
					dataScore: l.dataScore + r.dataScore,
				})
			}
		}
	}
	return nil
}
