package cart

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/pkg/errors"
)

const (
	splitTolerance = 1e-6
	statsTolerance = 1e-5
)

// Verify replays result's tree against the raw dataset and checks that it is
// a legal shape for predictors and that every stored statistic and score
// matches a recomputation:
//   - real splits sit at the midpoint of the current interval, within budget;
//   - categorical masks are disjoint, non-empty and cover the current mask;
//   - leaves predict response and store the count, mean and population
//     stddev or category counts of the rows that reach them;
//   - DataScore and StructureScore match the recomputed scores.
//
// Domains are tracked here independently of the engines.
func Verify(result TreeResult, predictors []Variable, response Variable, data mat.Matrix) error {
	s, err := newSearch("verify", predictors, response, data, nil)
	if err != nil {
		return err
	}
	if result.Tree == nil {
		return errors.NewConsistencyViolation(s.op, "result has no tree")
	}

	v := &verifier{search: s, index: make(map[Variable]int, len(predictors))}
	for i, p := range predictors {
		v.index[p] = i
	}

	dataScore, leaves, err := v.walk(result.Tree, allRows(len(s.rows)), rootDomain(predictors))
	if err != nil {
		return err
	}
	if math.Abs(dataScore-result.DataScore) > statsTolerance {
		return errors.NewConsistencyViolation(s.op, "data score %v does not match recomputed %v", result.DataScore, dataScore)
	}
	structureScore := s.terms.StructureScore(leaves)
	if math.Abs(structureScore-result.StructureScore) > statsTolerance {
		return errors.NewConsistencyViolation(s.op, "structure score %v does not match recomputed %v", result.StructureScore, structureScore)
	}
	return nil
}

type verifier struct {
	*search
	index map[Variable]int
}

func (v *verifier) predictorIndex(p Variable) (int, error) {
	i, ok := v.index[p]
	if !ok {
		return 0, errors.NewConsistencyViolation(v.op, "split on '%s' which is not a predictor", p.Name())
	}
	return i, nil
}

// walk returns the summed leaf data score and the number of leaves.
func (v *verifier) walk(n Node, rows []int, d domain) (float64, int, error) {
	switch node := n.(type) {
	case *RealSplit:
		i, err := v.predictorIndex(node.v)
		if err != nil {
			return 0, 0, err
		}
		b := d[i]
		if b.budget <= 0 {
			return 0, 0, errors.NewConsistencyViolation(v.op, "split on '%s' exceeds its subdivision budget", node.v.name)
		}
		mid := 0.5 * (b.lo + b.hi)
		if math.Abs(mid-node.splitVal) > splitTolerance {
			return 0, 0, errors.NewConsistencyViolation(v.op, "split value %v of '%s' is not the midpoint %v of [%v, %v)", node.splitVal, node.v.name, mid, b.lo, b.hi)
		}

		var leftRows, rightRows []int
		for _, r := range rows {
			if v.rows[r][node.v.dataSrcIdx] < node.splitVal {
				leftRows = append(leftRows, r)
			} else {
				rightRows = append(rightRows, r)
			}
		}
		return v.walkChildren(node.left, node.right, leftRows, rightRows,
			d.with(i, bound{lo: b.lo, hi: node.splitVal, budget: b.budget - 1}),
			d.with(i, bound{lo: node.splitVal, hi: b.hi, budget: b.budget - 1}))

	case *CatSplit:
		i, err := v.predictorIndex(node.v)
		if err != nil {
			return 0, 0, err
		}
		mask := d[i].mask
		switch {
		case node.leftMask&^mask != 0 || node.rightMask&^mask != 0:
			return 0, 0, errors.NewConsistencyViolation(v.op, "masks %#x/%#x of '%s' leave the valid mask %#x", node.leftMask, node.rightMask, node.v.name, mask)
		case node.leftMask&node.rightMask != 0:
			return 0, 0, errors.NewConsistencyViolation(v.op, "masks %#x/%#x of '%s' overlap", node.leftMask, node.rightMask, node.v.name)
		case node.leftMask == 0 || node.rightMask == 0:
			return 0, 0, errors.NewConsistencyViolation(v.op, "split on '%s' has an empty side", node.v.name)
		case node.leftMask|node.rightMask != mask:
			return 0, 0, errors.NewConsistencyViolation(v.op, "masks %#x/%#x of '%s' do not cover %#x", node.leftMask, node.rightMask, node.v.name, mask)
		}

		var leftRows, rightRows []int
		for _, r := range rows {
			cat, err := v.categoryOf(node.v, r)
			if err != nil {
				return 0, 0, err
			}
			switch {
			case node.leftMask&bit64(cat) != 0:
				leftRows = append(leftRows, r)
			case node.rightMask&bit64(cat) != 0:
				rightRows = append(rightRows, r)
			default:
				return 0, 0, errors.NewDataRoutingError(v.op, node.v.name, r, v.rows[r][node.v.dataSrcIdx])
			}
		}
		return v.walkChildren(node.left, node.right, leftRows, rightRows,
			d.with(i, bound{mask: node.leftMask}),
			d.with(i, bound{mask: node.rightMask}))

	case *RealLeaf:
		if Variable(node.v) != v.response {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf predicts '%s' instead of the response", node.v.name)
		}
		if node.stats.Count != len(rows) {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf count %d, but %d rows reach it", node.stats.Count, len(rows))
		}
		mean, stddev := 0.0, 0.0
		if len(rows) > 0 {
			for _, r := range rows {
				mean += v.rows[r][node.v.dataSrcIdx]
			}
			mean /= float64(len(rows))
			for _, r := range rows {
				dev := v.rows[r][node.v.dataSrcIdx] - mean
				stddev += dev * dev
			}
			stddev = math.Sqrt(stddev / float64(len(rows)))
		}
		if math.Abs(mean-node.stats.Mean) > statsTolerance || math.Abs(stddev-node.stats.StdDev) > statsTolerance {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf mean/stddev %v/%v, recomputed %v/%v", node.stats.Mean, node.stats.StdDev, mean, stddev)
		}
		return node.stats.DataScore(node.v), 1, nil

	case *CatLeaf:
		if Variable(node.v) != v.response {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf predicts '%s' instead of the response", node.v.name)
		}
		if node.stats.Count != len(rows) {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf count %d, but %d rows reach it", node.stats.Count, len(rows))
		}
		if len(node.stats.CatCounts) != len(node.v.cats) {
			return 0, 0, errors.NewConsistencyViolation(v.op, "leaf has %d category counts for %d categories", len(node.stats.CatCounts), len(node.v.cats))
		}
		counts := make([]int, len(node.v.cats))
		for _, r := range rows {
			cat, err := v.categoryOf(node.v, r)
			if err != nil {
				return 0, 0, err
			}
			counts[cat]++
		}
		for c, want := range counts {
			if node.stats.CatCounts[c] != want {
				return 0, 0, errors.NewConsistencyViolation(v.op, "leaf counts %v, recomputed %v", node.stats.CatCounts, counts)
			}
		}
		return node.stats.DataScore(node.v), 1, nil

	default:
		return 0, 0, errors.NewConsistencyViolation(v.op, "unknown node kind %T", n)
	}
}

func (v *verifier) walkChildren(left, right Node, leftRows, rightRows []int, leftDom, rightDom domain) (float64, int, error) {
	ls, ll, err := v.walk(left, leftRows, leftDom)
	if err != nil {
		return 0, 0, err
	}
	rs, rl, err := v.walk(right, rightRows, rightDom)
	if err != nil {
		return 0, 0, err
	}
	return ls + rs, ll + rl, nil
}
