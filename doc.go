// Package pcart searches exhaustively over the structures of Bayesian
// classification and regression trees.
//
// Given predictor variables, a response variable and a dataset, pcart either
// visits every admissible tree shape with its exact log posterior score or
// returns the maximum a posteriori tree. Continuous predictors are split at
// the midpoint of their current interval up to a per-variable number of
// subdivisions; categorical predictors are split into every unordered
// bipartition of their remaining categories.
//
// # Packages
//
//   - cart: variables, tree nodes, scores, IterateTrees, OptimizeTree and Verify
//   - dataset: CSV and .npy loaders and synthetic datasets
//   - config: YAML search descriptions
//   - treeprint: text and Graphviz rendering of trees
//   - pkg/errors, pkg/log: error types and structured logging
//   - core/parallel: bounded worker fan-out
//   - cmd/pcart: command line interface
//
// # Quick Start
//
//	a, _ := cart.NewRealVar("A", 0, -2, 2, 2)
//	b, _ := cart.NewCatVar("B", 1, []string{"a", "b", "c"})
//	d, _ := cart.NewCatVar("D", 2, []string{"0", "1"})
//
//	result, err := cart.OptimizeTree([]cart.Variable{a, b}, d, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.TotalScore())
//	treeprint.Fprint(os.Stdout, result.Tree)
package pcart
