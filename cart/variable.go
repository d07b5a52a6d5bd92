package cart

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// MaxCategories is the largest category count a CatVar may have; category
// sets are stored as 64-bit masks.
const MaxCategories = 64

// Variable is a predictor or response variable. The set of implementations
// is closed: *RealVar and *CatVar. Variables are compared by identity, so two
// independently constructed variables with the same configuration are
// different variables.
type Variable interface {
	// Name returns the display name.
	Name() string
	// DataSrcIdx returns the dataset column holding the variable's values.
	DataSrcIdx() int

	variable()
}

// RealVar is a continuous variable on [MinVal, MaxVal).
type RealVar struct {
	name            string
	dataSrcIdx      int
	minVal          float64
	maxVal          float64
	maxSubdivisions int
	prior           NormalGammaPrior
}

// NormalGammaPrior holds the conjugate prior hyperparameters used when a
// RealVar is the response: mean Mu0 with pseudo-count Kappa0, and a Gamma
// prior with shape Alpha0 and rate Beta0 on the precision.
type NormalGammaPrior struct {
	Mu0    float64
	Kappa0 float64
	Alpha0 float64
	Beta0  float64
}

// RealVarOption configures a RealVar.
type RealVarOption func(*RealVar)

// WithNormalGammaPrior overrides the default response prior of a RealVar.
func WithNormalGammaPrior(mu0, kappa0, alpha0, beta0 float64) RealVarOption {
	return func(v *RealVar) {
		v.prior = NormalGammaPrior{Mu0: mu0, Kappa0: kappa0, Alpha0: alpha0, Beta0: beta0}
	}
}

// NewRealVar creates a continuous variable whose range may be bisected at
// most maxSubdivisions times along any root-to-leaf path.
//
// The default response prior is centered on the middle of the range with
// Kappa0 = 1, Alpha0 = 1 and Beta0 = (range/4)^2.
func NewRealVar(name string, dataSrcIdx int, minVal, maxVal float64, maxSubdivisions int, opts ...RealVarOption) (*RealVar, error) {
	if dataSrcIdx < 0 {
		return nil, errors.NewConstructionError(name, "data source index must be non-negative", dataSrcIdx)
	}
	if math.IsNaN(minVal) || math.IsNaN(maxVal) || math.IsInf(minVal, 0) || math.IsInf(maxVal, 0) {
		return nil, errors.NewConstructionError(name, "range bounds must be finite", []float64{minVal, maxVal})
	}
	if !(minVal < maxVal) {
		return nil, errors.NewConstructionError(name, "minVal must be less than maxVal", []float64{minVal, maxVal})
	}
	if maxSubdivisions < 0 {
		return nil, errors.NewConstructionError(name, "maxSubdivisions must be non-negative", maxSubdivisions)
	}

	quarter := (maxVal - minVal) / 4
	v := &RealVar{
		name:            name,
		dataSrcIdx:      dataSrcIdx,
		minVal:          minVal,
		maxVal:          maxVal,
		maxSubdivisions: maxSubdivisions,
		prior: NormalGammaPrior{
			Mu0:    0.5 * (minVal + maxVal),
			Kappa0: 1,
			Alpha0: 1,
			Beta0:  quarter * quarter,
		},
	}
	for _, opt := range opts {
		opt(v)
	}

	p := v.prior
	if math.IsNaN(p.Mu0) || math.IsInf(p.Mu0, 0) {
		return nil, errors.NewConstructionError(name, "prior mean must be finite", p.Mu0)
	}
	if !(p.Kappa0 > 0) || !(p.Alpha0 > 0) || !(p.Beta0 > 0) ||
		math.IsInf(p.Kappa0, 1) || math.IsInf(p.Alpha0, 1) || math.IsInf(p.Beta0, 1) {
		return nil, errors.NewConstructionError(name, "prior hyperparameters must be positive and finite", p)
	}
	return v, nil
}

func (v *RealVar) variable() {}

// Name implements Variable.
func (v *RealVar) Name() string { return v.name }

// DataSrcIdx implements Variable.
func (v *RealVar) DataSrcIdx() int { return v.dataSrcIdx }

// MinVal returns the lower bound of the range.
func (v *RealVar) MinVal() float64 { return v.minVal }

// MaxVal returns the upper bound of the range.
func (v *RealVar) MaxVal() float64 { return v.maxVal }

// MaxSubdivisions returns the bisection budget along a single path.
func (v *RealVar) MaxSubdivisions() int { return v.maxSubdivisions }

// Prior returns the response prior hyperparameters.
func (v *RealVar) Prior() NormalGammaPrior { return v.prior }

func (v *RealVar) String() string {
	return fmt.Sprintf("%s∈[%g, %g]", v.name, v.minVal, v.maxVal)
}

// CatVar is a categorical variable. Categories are identified by position;
// dataset values are 0-based category indices.
type CatVar struct {
	name       string
	dataSrcIdx int
	cats       []string
	alpha      float64
}

// CatVarOption configures a CatVar.
type CatVarOption func(*CatVar)

// WithDirichletAlpha overrides the symmetric Dirichlet concentration used
// when the variable is the response. The default is 1.
func WithDirichletAlpha(alpha float64) CatVarOption {
	return func(v *CatVar) {
		v.alpha = alpha
	}
}

// NewCatVar creates a categorical variable with 1 to 64 distinct labels.
func NewCatVar(name string, dataSrcIdx int, categories []string, opts ...CatVarOption) (*CatVar, error) {
	if dataSrcIdx < 0 {
		return nil, errors.NewConstructionError(name, "data source index must be non-negative", dataSrcIdx)
	}
	if len(categories) == 0 {
		return nil, errors.NewConstructionError(name, "at least one category is required", len(categories))
	}
	if len(categories) > MaxCategories {
		return nil, errors.NewConstructionError(name, fmt.Sprintf("at most %d categories are supported", MaxCategories), len(categories))
	}
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, dup := seen[c]; dup {
			return nil, errors.NewConstructionError(name, "duplicate category label", c)
		}
		seen[c] = struct{}{}
	}

	v := &CatVar{
		name:       name,
		dataSrcIdx: dataSrcIdx,
		cats:       append([]string(nil), categories...),
		alpha:      1,
	}
	for _, opt := range opts {
		opt(v)
	}
	if !(v.alpha > 0) || math.IsInf(v.alpha, 1) {
		return nil, errors.NewConstructionError(name, "Dirichlet alpha must be positive and finite", v.alpha)
	}
	return v, nil
}

func (v *CatVar) variable() {}

// Name implements Variable.
func (v *CatVar) Name() string { return v.name }

// DataSrcIdx implements Variable.
func (v *CatVar) DataSrcIdx() int { return v.dataSrcIdx }

// NumCategories returns the number of categories.
func (v *CatVar) NumCategories() int { return len(v.cats) }

// Category returns the label of category i.
func (v *CatVar) Category(i int) string { return v.cats[i] }

// Categories returns a copy of the category labels.
func (v *CatVar) Categories() []string { return append([]string(nil), v.cats...) }

// Alpha returns the Dirichlet concentration of the response prior.
func (v *CatVar) Alpha() float64 { return v.alpha }

// AllMask returns the mask containing every category.
func (v *CatVar) AllMask() uint64 { return ones64(len(v.cats)) }

func (v *CatVar) String() string {
	return fmt.Sprintf("%s∈%v", v.name, v.cats)
}

// bit64 returns the mask with only bit i set.
func bit64(i int) uint64 { return uint64(1) << uint(i) }

// ones64 returns the mask with the n lowest bits set.
func ones64(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return bit64(n) - 1
}
