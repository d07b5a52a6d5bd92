package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStructureScoreTerms(t *testing.T) {
	real1, err := NewRealVar("R", 0, 0, 1, 1)
	require.NoError(t, err)
	cat3, err := NewCatVar("C", 1, []string{"a", "b", "c"})
	require.NoError(t, err)
	real0, err := NewRealVar("Z", 2, 0, 1, 0)
	require.NoError(t, err)

	tests := []struct {
		name          string
		predictors    []Variable
		wantPenalty   float64
		wantNormalize float64
	}{
		{name: "no predictors", predictors: nil, wantPenalty: 0, wantNormalize: 0},
		{name: "exhausted real", predictors: []Variable{real0}, wantPenalty: 0, wantNormalize: 0},
		// Shapes: leaf (weight 1/2) and one split (weight 1/4).
		{name: "real budget 1", predictors: []Variable{real1}, wantPenalty: -math.Log(2), wantNormalize: -math.Log(0.75)},
		// Z(1)=1/4, Z(2)=5/16, Z(3)=1/4+3*Z(1)*Z(2)=31/64.
		{name: "three categories", predictors: []Variable{cat3}, wantPenalty: -math.Log(4), wantNormalize: -math.Log(31.0 / 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := ComputeStructureScoreTerms(tt.predictors)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPenalty, terms.LeafPenaltyTerm, 1e-12)
			assert.InDelta(t, tt.wantNormalize, terms.NormalizerTerm, 1e-12)
		})
	}
}

func TestComputeStructureScoreTermsRejectsDuplicates(t *testing.T) {
	r, err := NewRealVar("R", 0, 0, 1, 1)
	require.NoError(t, err)

	_, err = ComputeStructureScoreTerms([]Variable{r, r})
	assert.Error(t, err)
}

func TestStructureScoreTermsIndependentOfOrder(t *testing.T) {
	v := newScenarioVars(t)

	ab, err := ComputeStructureScoreTerms([]Variable{v.A, v.B})
	require.NoError(t, err)
	ba, err := ComputeStructureScoreTerms([]Variable{v.B, v.A})
	require.NoError(t, err)

	assert.InDelta(t, ab.LeafPenaltyTerm, ba.LeafPenaltyTerm, 1e-12)
	assert.InDelta(t, ab.NormalizerTerm, ba.NormalizerTerm, 1e-9)
}

func TestStructurePriorSumsToOne(t *testing.T) {
	v := newScenarioVars(t)

	tests := []struct {
		name       string
		predictors []Variable
		response   Variable
	}{
		{name: "A and C", predictors: []Variable{v.A, v.C}, response: v.B},
		{name: "A and B", predictors: []Variable{v.A, v.B}, response: v.D},
		{name: "B and C", predictors: []Variable{v.B, v.C}, response: v.A},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mass float64
			err := IterateTrees(tt.predictors, tt.response, singleRow(), func(r TreeResult) {
				mass += math.Exp(r.StructureScore)
			})
			require.NoError(t, err)
			assert.InDelta(t, 1.0, mass, 1e-9)
		})
	}
}
