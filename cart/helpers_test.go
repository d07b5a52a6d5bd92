package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/dataset"
)

// scenarioVars are the variables of the single-row scenario:
// A real on [0, 1) with two subdivisions, B in {x, y, z}, C in {u, v},
// D real on [0, 1).
type scenarioVars struct {
	A *RealVar
	B *CatVar
	C *CatVar
	D *RealVar
}

func newScenarioVars(t *testing.T) scenarioVars {
	t.Helper()
	a, err := NewRealVar("A", 0, 0, 1, 2)
	require.NoError(t, err)
	b, err := NewCatVar("B", 1, []string{"x", "y", "z"})
	require.NoError(t, err)
	c, err := NewCatVar("C", 2, []string{"u", "v"})
	require.NoError(t, err)
	d, err := NewRealVar("D", 3, 0, 1, 0)
	require.NoError(t, err)
	return scenarioVars{A: a, B: b, C: c, D: d}
}

func singleRow() mat.Matrix {
	return mat.NewDense(1, 4, []float64{0, 1, 0, 0.5})
}

// benchVars mirror the columns of dataset.Benchmark.
func newBenchVars(t *testing.T) []Variable {
	t.Helper()
	a, err := NewRealVar("A", dataset.BenchA, -127, 51, 2)
	require.NoError(t, err)
	b, err := NewCatVar("B", dataset.BenchB, []string{"x", "y", "z"})
	require.NoError(t, err)
	c, err := NewCatVar("C", dataset.BenchC, []string{"u", "v"})
	require.NoError(t, err)
	d, err := NewRealVar("D", dataset.BenchD, 1, 3, 1)
	require.NoError(t, err)
	e, err := NewCatVar("E", dataset.BenchE, []string{"a", "b"})
	require.NoError(t, err)
	return []Variable{a, b, c, d, e}
}

// collect runs IterateTrees and returns every result.
func collect(t *testing.T, predictors []Variable, response Variable, data mat.Matrix, opts ...Option) []TreeResult {
	t.Helper()
	var out []TreeResult
	err := IterateTrees(predictors, response, data, func(r TreeResult) {
		out = append(out, r)
	}, opts...)
	require.NoError(t, err)
	return out
}
