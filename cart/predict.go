package cart

import (
	"math"

	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// LeafFor routes row down tree and returns the leaf it reaches: a
// *RealLeaf or a *CatLeaf. Categorical values must be integral category
// indices covered by the split masks on the path.
func LeafFor(tree Node, row []float64) (Node, error) {
	for n := tree; ; {
		switch node := n.(type) {
		case *RealSplit:
			val, err := rowValue(row, node.v)
			if err != nil {
				return nil, err
			}
			if val < node.splitVal {
				n = node.left
			} else {
				n = node.right
			}
		case *CatSplit:
			val, err := rowValue(row, node.v)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(val) || val < 0 || val >= float64(len(node.v.cats)) || val != math.Trunc(val) {
				return nil, errors.NewDataRoutingError("LeafFor", node.v.name, -1, val)
			}
			switch bit := bit64(int(val)); {
			case node.leftMask&bit != 0:
				n = node.left
			case node.rightMask&bit != 0:
				n = node.right
			default:
				return nil, errors.NewDataRoutingError("LeafFor", node.v.name, -1, val)
			}
		case *RealLeaf, *CatLeaf:
			return node, nil
		default:
			return nil, errors.NewConsistencyViolation("LeafFor", "unknown node kind %T", n)
		}
	}
}

func rowValue(row []float64, v Variable) (float64, error) {
	if v.DataSrcIdx() >= len(row) {
		return 0, errors.NewDimensionError("LeafFor", v.DataSrcIdx()+1, len(row), 1)
	}
	return row[v.DataSrcIdx()], nil
}

// Mean returns the posterior mean of the response at the leaf under its
// Normal-Gamma prior.
func (l *RealLeaf) Mean() float64 {
	p := l.v.prior
	n := float64(l.stats.Count)
	return (p.Kappa0*p.Mu0 + n*l.stats.Mean) / (p.Kappa0 + n)
}

// Probabilities returns the posterior predictive distribution of the
// response at the leaf, (count_k + alpha) / (n + K*alpha).
func (l *CatLeaf) Probabilities() []float64 {
	k := float64(len(l.stats.CatCounts))
	denom := float64(l.stats.Count) + k*l.v.alpha
	probs := make([]float64, len(l.stats.CatCounts))
	for i, c := range l.stats.CatCounts {
		probs[i] = (float64(c) + l.v.alpha) / denom
	}
	return probs
}

// Mode returns the most frequent category at the leaf, the lowest index on
// ties.
func (l *CatLeaf) Mode() int {
	best := 0
	for i, c := range l.stats.CatCounts {
		if c > l.stats.CatCounts[best] {
			best = i
		}
	}
	return best
}
