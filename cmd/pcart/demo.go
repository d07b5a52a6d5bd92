package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/dataset"
	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/treeprint"
)

type demoOptions struct {
	minRows     int
	maxRows     int
	seed        uint64
	plotPath    string
	parallelism int
}

func newDemoCmd() *cobra.Command {
	opts := demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Learn a planted tree back from synthetic data of growing size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.minRows, "min-rows", 32, "smallest sample size")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 4096, "largest sample size; sizes double from --min-rows")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed of the data generator")
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "write a plot of the score per row to this file")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 0, "workers for the root splits (0 = one per CPU)")
	return cmd
}

// demoVars returns the variables of dataset.Demo.
func demoVars() (predictors []cart.Variable, response cart.Variable, err error) {
	a, err := cart.NewRealVar("A", dataset.DemoA, -2, 2, 2)
	if err != nil {
		return nil, nil, err
	}
	b, err := cart.NewCatVar("B", dataset.DemoB, []string{"a", "b", "c"})
	if err != nil {
		return nil, nil, err
	}
	c, err := cart.NewCatVar("C", dataset.DemoC, []string{"x", "y"})
	if err != nil {
		return nil, nil, err
	}
	d, err := cart.NewCatVar("D", dataset.DemoD, []string{"0", "1"})
	if err != nil {
		return nil, nil, err
	}
	return []cart.Variable{a, b, c}, d, nil
}

func runDemo(cmd *cobra.Command, opts demoOptions) error {
	if opts.minRows <= 0 || opts.maxRows < opts.minRows {
		return errors.NewValidationError("max-rows", "must be at least --min-rows, which must be positive", opts.maxRows)
	}
	predictors, response, err := demoVars()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var perRow plotter.XYs
	for n := opts.minRows; n <= opts.maxRows; n *= 2 {
		data := dataset.Demo(n, opts.seed)
		res, err := cart.OptimizeTree(predictors, response, data, cart.WithParallelism(opts.parallelism))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Sample size: %d\nScore: %.6f\n", n, res.TotalScore())
		if err := treeprint.Fprint(out, res.Tree); err != nil {
			return err
		}
		fmt.Fprintln(out)
		perRow = append(perRow, plotter.XY{X: float64(n), Y: res.TotalScore() / float64(n)})
	}

	if opts.plotPath == "" {
		return nil
	}
	return savePlot(perRow, opts.plotPath)
}

func savePlot(points plotter.XYs, path string) error {
	p := plot.New()
	p.Title.Text = "MAP tree score"
	p.X.Label.Text = "sample size"
	p.Y.Label.Text = "total score per row"

	line, marks, err := plotter.NewLinePoints(points)
	if err != nil {
		return errors.Wrap(err, "demo: plot")
	}
	p.Add(line, marks, plotter.NewGrid())
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "demo: save plot %s", path)
	}
	return nil
}
