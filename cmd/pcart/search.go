package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/config"
	"github.com/YuminosukeSato/pcart/dataset"
	"github.com/YuminosukeSato/pcart/metrics"
	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/pkg/log"
	"github.com/YuminosukeSato/pcart/treeprint"
)

// loadedSearch is a search description with its variables and data.
type loadedSearch struct {
	cfg        *config.Search
	predictors []cart.Variable
	response   cart.Variable
	data       mat.Matrix
}

func loadSearch(cmd *cobra.Command, path string) (*loadedSearch, error) {
	if path == "" {
		return nil, errors.NewValidationError("config", "is required", nil)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	// A level in the file applies unless --log-level was given.
	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(level)
	}
	predictors, response, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Data == "" {
		return nil, errors.NewValidationError("data", "is required", nil)
	}
	data, err := dataset.Load(cfg.Data, cfg.HasHeader)
	if err != nil {
		return nil, err
	}
	return &loadedSearch{cfg: cfg, predictors: predictors, response: response, data: data}, nil
}

func newOptimizeCmd() *cobra.Command {
	var (
		configPath string
		figurePath string
		verify     bool
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the maximum a posteriori tree of a search description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSearch(cmd, configPath)
			if err != nil {
				return err
			}
			res, err := cart.OptimizeTree(s.predictors, s.response, s.data, cart.WithParallelism(s.cfg.Parallelism))
			if err != nil {
				return err
			}
			if verify {
				if err := cart.Verify(res, s.predictors, s.response, s.data); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Data score: %.6f\nStructure score: %.6f\nTotal score: %.6f\n",
				res.DataScore, res.StructureScore, res.TotalScore())
			report, err := metrics.Evaluate(res.Tree, s.response, s.data)
			if err != nil {
				return err
			}
			printReport(out, s.response, report)
			if err := treeprint.Fprint(out, res.Tree); err != nil {
				return err
			}
			if figurePath != "" {
				return treeprint.RenderFile(res.Tree, figurePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "search description (YAML)")
	cmd.Flags().StringVar(&figurePath, "dot", "", "render the tree with Graphviz to this file (.svg, .png, .jpg or .dot)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the result against the data before printing it")
	return cmd
}

func printReport(out io.Writer, response cart.Variable, r metrics.Report) {
	switch response.(type) {
	case *cart.RealVar:
		fmt.Fprintf(out, "In-sample MSE: %.6g  MAE: %.6g  R2: %.4f\n", r.MSE, r.MAE, r.R2)
	case *cart.CatVar:
		fmt.Fprintf(out, "In-sample accuracy: %.4f  log loss: %.6g\n", r.Accuracy, r.LogLoss)
	}
}

func newEnumerateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Score every admissible tree of a search description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSearch(cmd, configPath)
			if err != nil {
				return err
			}

			var (
				shapes int
				mass   float64
				best   cart.TreeResult
			)
			start := time.Now()
			err = cart.IterateTrees(s.predictors, s.response, s.data, func(r cart.TreeResult) {
				if shapes == 0 || r.TotalScore() > best.TotalScore() {
					best = r
				}
				shapes++
				mass += math.Exp(r.StructureScore)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Shapes: %d\nPrior mass: %.9f\nBest total score: %.6f\nElapsed: %s\n",
				shapes, mass, best.TotalScore(), time.Since(start).Round(time.Millisecond))
			return treeprint.Fprint(out, best.Tree)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "search description (YAML)")
	return cmd
}
