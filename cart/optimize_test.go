package cart

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pcart/dataset"
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// subsets returns every subset of vars with at most max elements, in
// lexicographic order of indices.
func subsets(vars []Variable, max int) [][]Variable {
	out := [][]Variable{nil}
	var rec func(start int, cur []Variable)
	rec = func(start int, cur []Variable) {
		for i := start; i < len(vars); i++ {
			next := append(append([]Variable(nil), cur...), vars[i])
			out = append(out, next)
			if len(next) < max {
				rec(i+1, next)
			}
		}
	}
	rec(0, nil)
	return out
}

func TestOptimizeTreeMatchesEnumeration(t *testing.T) {
	vars := newBenchVars(t)
	data := dataset.Benchmark(300, 1)

	for _, response := range vars {
		var others []Variable
		for _, v := range vars {
			if v != response {
				others = append(others, v)
			}
		}
		for _, predictors := range subsets(others, 2) {
			names := make([]string, len(predictors))
			for i, p := range predictors {
				names[i] = p.Name()
			}
			t.Run(fmt.Sprintf("%v->%s", names, response.Name()), func(t *testing.T) {
				var (
					shapes []TreeResult
					mass   float64
					verr   error
				)
				err := IterateTrees(predictors, response, data, func(r TreeResult) {
					if verr == nil {
						verr = Verify(r, predictors, response, data)
					}
					shapes = append(shapes, r)
					mass += math.Exp(r.StructureScore)
				})
				require.NoError(t, err)
				require.NoError(t, verr)
				require.NotEmpty(t, shapes)
				assert.InDelta(t, 1.0, mass, 1e-9)

				want := firstBest(shapes)

				got, err := OptimizeTree(predictors, response, data)
				require.NoError(t, err)
				require.NoError(t, Verify(got, predictors, response, data))

				assert.InDelta(t, want.TotalScore(), got.TotalScore(), 1e-9)
				assert.Equal(t, shapeKey(want.Tree), shapeKey(got.Tree))
			})
		}
	}
}

// firstBest returns the first result in emission order whose total is within
// rounding of the largest total.
func firstBest(shapes []TreeResult) TreeResult {
	top := math.Inf(-1)
	for _, r := range shapes {
		top = math.Max(top, r.TotalScore())
	}
	for _, r := range shapes {
		if r.TotalScore() >= top-1e-9*math.Max(1, math.Abs(top)) {
			return r
		}
	}
	return TreeResult{}
}

func TestOptimizeTreeTiesGoToFirstShape(t *testing.T) {
	vars := newBenchVars(t)
	data := dataset.Benchmark(5, 2)
	predictors := []Variable{vars[1], vars[4]}
	response := vars[2]

	var shapes []TreeResult
	require.NoError(t, IterateTrees(predictors, response, data, func(r TreeResult) {
		shapes = append(shapes, r)
	}))
	want := firstBest(shapes)
	_, isLeaf := want.Tree.(*CatLeaf)
	require.True(t, isLeaf, "first best shape is %s", shapeKey(want.Tree))

	// The split on E gains exactly the extra leaf penalty in data score, so
	// it ties with the leaf.
	tied := 0
	for _, r := range shapes {
		if r.TotalScore() >= want.TotalScore()-1e-9 {
			tied++
		}
	}
	assert.Greater(t, tied, 1)

	for _, workers := range []int{1, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := OptimizeTree(predictors, response, data, WithParallelism(workers))
			require.NoError(t, err)
			assert.Equal(t, shapeKey(want.Tree), shapeKey(got.Tree))
			assert.InDelta(t, -5.0973266198749609, got.TotalScore(), 1e-9)
		})
	}
}

func TestOptimizeTreeDeterministic(t *testing.T) {
	vars := newBenchVars(t)
	data := dataset.Benchmark(300, 7)
	predictors := []Variable{vars[0], vars[1], vars[2]}

	first, err := OptimizeTree(predictors, vars[4], data)
	require.NoError(t, err)
	second, err := OptimizeTree(predictors, vars[4], data)
	require.NoError(t, err)

	assert.Equal(t, shapeKey(first.Tree), shapeKey(second.Tree))
	assert.Equal(t, first.DataScore, second.DataScore)
	assert.Equal(t, first.StructureScore, second.StructureScore)
}

func TestOptimizeTreeParallelMatchesSequential(t *testing.T) {
	vars := newBenchVars(t)
	data := dataset.Benchmark(300, 3)
	predictors := []Variable{vars[0], vars[1], vars[3]}

	seq, err := OptimizeTree(predictors, vars[4], data)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			par, err := OptimizeTree(predictors, vars[4], data, WithParallelism(workers))
			require.NoError(t, err)
			assert.Equal(t, shapeKey(seq.Tree), shapeKey(par.Tree))
			assert.Equal(t, seq.DataScore, par.DataScore)
			assert.Equal(t, seq.StructureScore, par.StructureScore)
		})
	}
}

func TestOptimizeTreeRecoversPlantedStructure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large search in short mode")
	}
	vars := newBenchVars(t)
	data := dataset.Benchmark(1000, 42)
	predictors := vars[:4]
	response := vars[4]

	result, err := OptimizeTree(predictors, response, data, WithParallelism(0))
	require.NoError(t, err)
	require.NoError(t, Verify(result, predictors, response, data))

	// This model scores the planted structure at about -71.14; the reference
	// value of -81.3847 comes from a different generator and marginal
	// likelihood.
	const plantedTotal = -71.1385293572412
	assert.Greater(t, result.Tree.NumLeaves(), 1)
	assert.InDelta(t, plantedTotal, result.TotalScore(), 1e-3)

	again, err := OptimizeTree(predictors, response, data)
	require.NoError(t, err)
	assert.Equal(t, shapeKey(result.Tree), shapeKey(again.Tree))
	assert.InDelta(t, result.TotalScore(), again.TotalScore(), 1e-9)
}

func TestOptimizeTreeLeafOnly(t *testing.T) {
	v := newScenarioVars(t)

	result, err := OptimizeTree(nil, v.D, singleRow())
	require.NoError(t, err)
	leaf, ok := result.Tree.(*RealLeaf)
	require.True(t, ok)
	assert.Equal(t, 1, leaf.Stats().Count)
	assert.Equal(t, 0.0, result.StructureScore)
}

func TestOptimizeTreeLogs(t *testing.T) {
	v := newScenarioVars(t)
	_, logger := log.NewTestLoggerProvider(log.LevelInfo)

	_, err := OptimizeTree([]Variable{v.A}, v.B, singleRow(), WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, logger.ContainsMessage("Optimization finished"))
	assert.True(t, logger.ContainsField(log.OperationKey, "optimize"))
}
