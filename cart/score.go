package cart

import (
	"math"
)

var logTwoPi = math.Log(2 * math.Pi)

func lnGamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// DataScore returns the log marginal likelihood of the leaf's rows under the
// Normal-Gamma prior of v. An empty leaf scores 0.
func (s RealLeafStats) DataScore(v *RealVar) float64 {
	if s.Count == 0 {
		return 0
	}
	p := v.prior
	n := float64(s.Count)
	sumSq := n * s.StdDev * s.StdDev
	dev := s.Mean - p.Mu0

	kappaN := p.Kappa0 + n
	alphaN := p.Alpha0 + 0.5*n
	betaN := p.Beta0 + 0.5*sumSq + p.Kappa0*n*dev*dev/(2*kappaN)

	return lnGamma(alphaN) - lnGamma(p.Alpha0) +
		p.Alpha0*math.Log(p.Beta0) - alphaN*math.Log(betaN) +
		0.5*(math.Log(p.Kappa0)-math.Log(kappaN)) -
		0.5*n*logTwoPi
}

// DataScore returns the log Dirichlet-multinomial marginal likelihood of the
// leaf's category counts under the symmetric prior of v. An empty leaf scores 0.
func (s CatLeafStats) DataScore(v *CatVar) float64 {
	if s.Count == 0 {
		return 0
	}
	alpha := v.alpha
	k := float64(len(s.CatCounts))
	score := lnGamma(k*alpha) - lnGamma(k*alpha+float64(s.Count))
	lnGammaAlpha := lnGamma(alpha)
	for _, c := range s.CatCounts {
		if c > 0 {
			score += lnGamma(alpha+float64(c)) - lnGammaAlpha
		}
	}
	return score
}
