package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyLeafScoresZero(t *testing.T) {
	r, err := NewRealVar("R", 0, 0, 1, 0)
	require.NoError(t, err)
	c, err := NewCatVar("C", 0, []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, computeRealLeafStats(nil).DataScore(r))
	assert.Equal(t, 0.0, computeCatLeafStats(nil, 3).DataScore(c))
}

func TestCatLeafDataScore(t *testing.T) {
	c, err := NewCatVar("C", 0, []string{"a", "b"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		indices []int
		want    float64
	}{
		// Beta(1,1)-binomial sequence probabilities.
		{name: "one row", indices: []int{0}, want: -math.Log(2)},
		{name: "one of each", indices: []int{0, 1}, want: -math.Log(6)},
		{name: "two equal", indices: []int{1, 1}, want: -math.Log(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := computeCatLeafStats(tt.indices, 2)
			assert.Equal(t, len(tt.indices), stats.Count)
			assert.InDelta(t, tt.want, stats.DataScore(c), 1e-12)
		})
	}
}

func TestRealLeafStats(t *testing.T) {
	stats := computeRealLeafStats([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 2.5, stats.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), stats.StdDev, 1e-12)

	single := computeRealLeafStats([]float64{0.5})
	assert.Equal(t, RealLeafStats{Count: 1, Mean: 0.5, StdDev: 0}, single)
}

func TestRealLeafDataScoreSingleObservation(t *testing.T) {
	v, err := NewRealVar("D", 0, 0, 1, 0, WithNormalGammaPrior(0.5, 1, 1, 0.25))
	require.NoError(t, err)

	// One observation at the prior mean: kappaN=2, alphaN=1.5, betaN=beta0.
	lg15, _ := math.Lgamma(1.5)
	want := lg15 + math.Log(0.25) - 1.5*math.Log(0.25) + 0.5*(0-math.Log(2)) - 0.5*math.Log(2*math.Pi)

	got := computeRealLeafStats([]float64{0.5}).DataScore(v)
	assert.InDelta(t, want, got, 1e-12)
}

func TestRealLeafDataScorePrefersConcentratedData(t *testing.T) {
	v, err := NewRealVar("D", 0, 0, 10, 0)
	require.NoError(t, err)

	tight := computeRealLeafStats([]float64{5, 5.01, 4.99, 5, 5.02, 4.98})
	spread := computeRealLeafStats([]float64{0.5, 9.5, 2, 8, 1, 9})
	assert.Greater(t, tight.DataScore(v), spread.DataScore(v))
}

func TestDataScoreIsAdditiveAcrossSequentialUpdates(t *testing.T) {
	// The marginal likelihood of a categorical sequence does not depend on
	// the order of the rows.
	c, err := NewCatVar("C", 0, []string{"a", "b", "c"}, WithDirichletAlpha(0.5))
	require.NoError(t, err)
	s1 := computeCatLeafStats([]int{0, 2, 2, 1, 0}, 3)
	s2 := computeCatLeafStats([]int{2, 0, 1, 0, 2}, 3)
	assert.InDelta(t, s1.DataScore(c), s2.DataScore(c), 1e-12)
}
