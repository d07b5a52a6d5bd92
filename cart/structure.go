package cart

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// StructureScoreTerms are the constants of the structure prior for a
// predictor set. A tree with L leaves has structure score
// LeafPenaltyTerm*L + NormalizerTerm, and the exponentiated structure scores
// of all admissible shapes sum to one.
type StructureScoreTerms struct {
	LeafPenaltyTerm float64
	NormalizerTerm  float64
}

// StructureScore returns the log prior probability of a shape with the given
// number of leaves.
func (t StructureScoreTerms) StructureScore(leaves int) float64 {
	return t.LeafPenaltyTerm*float64(leaves) + t.NormalizerTerm
}

// ComputeStructureScoreTerms derives the structure prior for predictors.
//
// The leaf penalty is -ln(1+s) where s is the number of candidate splits at
// the root. The normalizer is -ln Z, where Z sums exp(LeafPenaltyTerm*L) over
// every admissible shape. Z depends only on the remaining subdivision budget
// of each continuous predictor and the remaining category count of each
// categorical one, so it is computed exactly by recursion over those states.
func ComputeStructureScoreTerms(predictors []Variable) (StructureScoreTerms, error) {
	if err := checkPredictors("ComputeStructureScoreTerms", predictors); err != nil {
		return StructureScoreTerms{}, err
	}

	pf := &partitionFunction{
		isCat: make([]bool, len(predictors)),
		memo:  make(map[string]float64),
	}
	root := make([]int, len(predictors))
	for i, p := range predictors {
		switch v := p.(type) {
		case *RealVar:
			root[i] = v.maxSubdivisions
		case *CatVar:
			pf.isCat[i] = true
			root[i] = len(v.cats)
		}
	}

	pf.leafPenalty = -math.Log1p(pf.splitCount(root))
	return StructureScoreTerms{
		LeafPenaltyTerm: pf.leafPenalty,
		NormalizerTerm:  -pf.logZ(root),
	}, nil
}

// partitionFunction evaluates ln Z over shape states. A state holds, per
// predictor, the remaining budget (continuous) or category count (categorical).
type partitionFunction struct {
	isCat       []bool
	leafPenalty float64
	memo        map[string]float64
	key         []byte
}

// splitCount is the number of candidate splits in a state, mirroring the
// candidates the engines generate.
func (pf *partitionFunction) splitCount(state []int) float64 {
	count := 0.0
	for i, s := range state {
		if pf.isCat[i] {
			if s >= 2 {
				count += math.Ldexp(1, s-1) - 1
			}
		} else if s > 0 {
			count++
		}
	}
	return count
}

func (pf *partitionFunction) stateKey(state []int) string {
	pf.key = pf.key[:0]
	for _, s := range state {
		pf.key = binary.AppendUvarint(pf.key, uint64(s))
	}
	return string(pf.key)
}

func (pf *partitionFunction) logZ(state []int) float64 {
	key := pf.stateKey(state)
	if v, ok := pf.memo[key]; ok {
		return v
	}

	terms := []float64{pf.leafPenalty}
	child := make([]int, len(state))
	for i, s := range state {
		if pf.isCat[i] {
			if s < 2 {
				continue
			}
			// Unordered bipartitions of s categories into sizes a and s-a.
			for a := 1; 2*a <= s; a++ {
				logMult := combin.LogGeneralizedBinomial(float64(s), float64(a))
				if 2*a == s {
					logMult -= math.Ln2
				}
				copy(child, state)
				child[i] = a
				left := pf.logZ(child)
				copy(child, state)
				child[i] = s - a
				right := pf.logZ(child)
				terms = append(terms, logMult+left+right)
			}
			continue
		}
		if s > 0 {
			copy(child, state)
			child[i] = s - 1
			terms = append(terms, 2*pf.logZ(child))
		}
	}

	v := floats.LogSumExp(terms)
	pf.memo[key] = v
	return v
}
