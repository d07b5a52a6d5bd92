package cart

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// Rows adapts a slice of rows to mat.Matrix. Unlike mat.Dense it may be
// empty. All rows must have the same length.
type Rows [][]float64

// Dims implements mat.Matrix.
func (r Rows) Dims() (int, int) {
	if len(r) == 0 {
		return 0, 0
	}
	return len(r), len(r[0])
}

// At implements mat.Matrix.
func (r Rows) At(i, j int) float64 { return r[i][j] }

// T implements mat.Matrix.
func (r Rows) T() mat.Matrix { return mat.Transpose{Matrix: r} }

// search is the state shared by one call of an engine: the variables, the
// dataset rows and the structure prior.
type search struct {
	op         string
	predictors []Variable
	response   Variable
	rows       [][]float64
	terms      StructureScoreTerms
	logger     log.Logger
	workers    int
}

func newSearch(op string, predictors []Variable, response Variable, data mat.Matrix, opts []Option) (*search, error) {
	cfg := defaultSearchConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := checkPredictors(op, predictors); err != nil {
		return nil, err
	}
	if response == nil {
		return nil, errors.NewValidationError("response", "must not be nil", nil)
	}
	switch response.(type) {
	case *RealVar, *CatVar:
	default:
		return nil, errors.NewValidationError("response", "unsupported variable kind", response)
	}
	for _, p := range predictors {
		if p == response {
			return nil, errors.NewValidationError("response", "must not also be a predictor", response.Name())
		}
	}
	if data == nil {
		return nil, errors.NewValidationError("data", "must not be nil", nil)
	}

	rows, err := extractRows(op, data, append([]Variable{response}, predictors...))
	if err != nil {
		return nil, err
	}

	terms, err := ComputeStructureScoreTerms(predictors)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("cart." + op)
	}
	return &search{
		op:         op,
		predictors: predictors,
		response:   response,
		rows:       rows,
		terms:      terms,
		logger:     logger.With(log.OperationKey, op, log.ResponseKey, response.Name()),
		workers:    cfg.workers,
	}, nil
}

// checkPredictors rejects nil, foreign or repeated predictors.
func checkPredictors(op string, predictors []Variable) error {
	seen := make(map[Variable]struct{}, len(predictors))
	for i, p := range predictors {
		switch p.(type) {
		case *RealVar, *CatVar:
		default:
			return errors.NewValidationError("predictors", "unsupported or nil variable", i)
		}
		if _, dup := seen[p]; dup {
			return errors.NewValidationError("predictors", op+": variable listed twice", p.Name())
		}
		seen[p] = struct{}{}
	}
	return nil
}

// extractRows copies or views the dataset rows and checks that every
// variable's column exists.
func extractRows(op string, data mat.Matrix, vars []Variable) ([][]float64, error) {
	n, cols := data.Dims()
	if n == 0 {
		return nil, nil
	}
	for _, v := range vars {
		if v.DataSrcIdx() >= cols {
			return nil, errors.NewDimensionError(op, v.DataSrcIdx()+1, cols, 1)
		}
	}

	rows := make([][]float64, n)
	switch m := data.(type) {
	case Rows:
		for i := range m {
			if len(m[i]) != cols {
				return nil, errors.NewDimensionError(op, cols, len(m[i]), 1)
			}
		}
		copy(rows, m)
	case mat.RawRowViewer:
		for i := range rows {
			rows[i] = m.RawRowView(i)
		}
	default:
		for i := range rows {
			rows[i] = mat.Row(nil, i, data)
		}
	}
	return rows, nil
}

func allRows(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// categoryOf returns the category index stored in a row for v. Values that
// are not an integral index of one of v's categories are routing errors.
func (s *search) categoryOf(v *CatVar, row int) (int, error) {
	val := s.rows[row][v.dataSrcIdx]
	if math.IsNaN(val) || val < 0 || val >= float64(len(v.cats)) || val != math.Trunc(val) {
		return 0, errors.NewDataRoutingError(s.op, v.name, row, val)
	}
	return int(val), nil
}

// route partitions rows between the children of c. Every row goes to
// exactly one side.
func (s *search) route(rows []int, c *candidate) (left, right []int, err error) {
	switch v := c.v.(type) {
	case *RealVar:
		for _, r := range rows {
			if s.rows[r][v.dataSrcIdx] < c.splitVal {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
	case *CatVar:
		for _, r := range rows {
			cat, err := s.categoryOf(v, r)
			if err != nil {
				return nil, nil, err
			}
			switch {
			case c.leftMask&bit64(cat) != 0:
				left = append(left, r)
			case c.rightMask&bit64(cat) != 0:
				right = append(right, r)
			default:
				return nil, nil, errors.NewDataRoutingError(s.op, v.name, r, s.rows[r][v.dataSrcIdx])
			}
		}
	default:
		return nil, nil, errors.NewConsistencyViolation(s.op, "unknown split variable kind %T", c.v)
	}
	return left, right, nil
}

// leaf builds the leaf for rows and returns its data score.
func (s *search) leaf(rows []int) (Node, float64, error) {
	var (
		node  Node
		score float64
	)
	switch v := s.response.(type) {
	case *RealVar:
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = s.rows[r][v.dataSrcIdx]
		}
		stats := computeRealLeafStats(values)
		node, score = &RealLeaf{v: v, stats: stats}, stats.DataScore(v)
	case *CatVar:
		indices := make([]int, len(rows))
		for i, r := range rows {
			cat, err := s.categoryOf(v, r)
			if err != nil {
				return nil, 0, err
			}
			indices[i] = cat
		}
		stats := computeCatLeafStats(indices, len(v.cats))
		node, score = &CatLeaf{v: v, stats: stats}, stats.DataScore(v)
	default:
		return nil, 0, errors.NewConsistencyViolation(s.op, "unknown response kind %T", s.response)
	}
	if err := errors.CheckScore(s.op, score); err != nil {
		return nil, 0, err
	}
	return node, score, nil
}

// partial is a subtree with its summed leaf data score.
type partial struct {
	node      Node
	dataScore float64
}

// objective is the subtree's contribution to the total score.
func (s *search) objective(p partial) float64 {
	return p.dataScore + s.terms.LeafPenaltyTerm*float64(p.node.NumLeaves())
}

func (s *search) result(p partial) TreeResult {
	return TreeResult{
		Tree:           p.node,
		DataScore:      p.dataScore,
		StructureScore: s.terms.StructureScore(p.node.NumLeaves()),
	}
}
