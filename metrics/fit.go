// Package metrics measures how well a tree describes a dataset.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/core/parallel"
	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// Report は木の当てはまりの要約。
// 連続応答では MSE, MAE, R2 を、カテゴリ応答では Accuracy と LogLoss を埋める。
type Report struct {
	Rows int

	MSE float64
	MAE float64
	R2  float64 // NaN when the response has no variance

	Accuracy float64
	LogLoss  float64
}

// Evaluate は data の各行を tree で予測し、response の実測値と比較する。
// 連続応答の予測値は葉の事後平均、カテゴリ応答では葉の最頻カテゴリと事後予測分布を使う。
// 行の振り分けは CPU 数のワーカーで並列に行う。
func Evaluate(tree cart.Node, response cart.Variable, data mat.Matrix) (Report, error) {
	n, cols := data.Dims()
	if n == 0 {
		return Report{}, errors.ErrEmptyData
	}
	switch response.(type) {
	case *cart.RealVar, *cart.CatVar:
	default:
		return Report{}, errors.NewValidationError("response", "unsupported variable kind", response)
	}
	if response.DataSrcIdx() >= cols {
		return Report{}, errors.NewDimensionError("Evaluate", response.DataSrcIdx()+1, cols, 1)
	}
	if rows, ok := data.(cart.Rows); ok {
		for i := range rows {
			if len(rows[i]) != cols {
				return Report{}, errors.NewDimensionError("Evaluate", cols, len(rows[i]), 1)
			}
		}
	}

	observed := make([]float64, n)
	leaves := make([]cart.Node, n)
	err := parallel.Parallelize(n, 0, func(start, end int) (err error) {
		defer errors.Recover(&err, "Evaluate")
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(row, i, data)
			leaf, err := cart.LeafFor(tree, row)
			if err != nil {
				return err
			}
			observed[i] = row[response.DataSrcIdx()]
			leaves[i] = leaf
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	if v, ok := response.(*cart.RealVar); ok {
		return evaluateReal(v, observed, leaves)
	}
	return evaluateCat(response.(*cart.CatVar), observed, leaves)
}

func evaluateReal(v *cart.RealVar, observed []float64, leaves []cart.Node) (Report, error) {
	n := len(observed)
	yPred := mat.NewVecDense(n, nil)
	for i, leaf := range leaves {
		rl, ok := leaf.(*cart.RealLeaf)
		if !ok || rl.Var() != v {
			return Report{}, errors.NewValidationError("response", "tree does not predict this variable", v.Name())
		}
		yPred.SetVec(i, rl.Mean())
	}
	yTrue := mat.NewVecDense(n, observed)

	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		r2 = math.NaN()
	}
	return Report{Rows: n, MSE: mse, MAE: mae, R2: r2}, nil
}

func evaluateCat(v *cart.CatVar, observed []float64, leaves []cart.Node) (Report, error) {
	n := len(observed)
	yTrue := make([]int, n)
	yPred := make([]int, n)
	probs := make([][]float64, n)
	for i, leaf := range leaves {
		cl, ok := leaf.(*cart.CatLeaf)
		if !ok || cl.Var() != v {
			return Report{}, errors.NewValidationError("response", "tree does not predict this variable", v.Name())
		}
		label := observed[i]
		if math.IsNaN(label) || label < 0 || label >= float64(v.NumCategories()) || label != math.Trunc(label) {
			return Report{}, errors.NewDataRoutingError("Evaluate", v.Name(), i, label)
		}
		yTrue[i] = int(label)
		yPred[i] = cl.Mode()
		probs[i] = cl.Probabilities()
	}

	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	loss, err := LogLoss(yTrue, probs)
	if err != nil {
		return Report{}, err
	}
	return Report{Rows: n, Accuracy: acc, LogLoss: loss}, nil
}
