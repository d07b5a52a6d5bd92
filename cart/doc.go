// Package cart performs exact Bayesian structure search over binary
// decision trees (CART).
//
// Predictors are continuous variables on a bounded range, split only at the
// midpoint of their current interval and at most MaxSubdivisions times along
// a path, or categorical variables with up to 64 levels, split into every
// unordered bipartition of their remaining categories. Because both budgets
// shrink along every path the set of admissible tree shapes is finite.
//
// Each shape is scored by the log marginal likelihood of the response in its
// leaves (Normal-Gamma for continuous responses, Dirichlet-multinomial for
// categorical ones) plus a structure prior that charges a fixed penalty per
// leaf and is normalized over all shapes of the predictor set.
//
// IterateTrees enumerates every shape; OptimizeTree finds the best one.
//
//	a, _ := cart.NewRealVar("A", 0, -2, 2, 2)
//	b, _ := cart.NewCatVar("B", 1, []string{"a", "b", "c"})
//	d, _ := cart.NewCatVar("D", 2, []string{"0", "1"})
//	res, err := cart.OptimizeTree([]cart.Variable{a, b}, d, data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.TotalScore())
package cart
