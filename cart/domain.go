package cart

import (
	"math/bits"
)

// bound is the valid domain of one predictor at a node: an interval with a
// remaining bisection budget for a RealVar, a category mask for a CatVar.
type bound struct {
	lo, hi float64
	budget int
	mask   uint64
}

// domain holds one bound per predictor, in predictor order. Domains are
// copied on narrowing and never modified in place.
type domain []bound

func rootDomain(predictors []Variable) domain {
	d := make(domain, len(predictors))
	for i, p := range predictors {
		switch v := p.(type) {
		case *RealVar:
			d[i] = bound{lo: v.minVal, hi: v.maxVal, budget: v.maxSubdivisions}
		case *CatVar:
			d[i] = bound{mask: v.AllMask()}
		}
	}
	return d
}

func (d domain) with(i int, b bound) domain {
	c := make(domain, len(d))
	copy(c, d)
	c[i] = b
	return c
}

// candidate is one admissible split at a node together with the narrowed
// domains of its children.
type candidate struct {
	v         Variable
	splitVal  float64
	leftMask  uint64
	rightMask uint64
	leftDom   domain
	rightDom  domain
}

// build assembles the split node for the candidate.
func (c *candidate) build(left, right Node) Node {
	switch v := c.v.(type) {
	case *RealVar:
		return newRealSplit(v, c.splitVal, left, right)
	case *CatVar:
		return newCatSplit(v, c.leftMask, c.rightMask, left, right)
	default:
		panic("cart: unknown variable kind")
	}
}

// candidates lists the admissible splits of d in visitation order:
// predictors in order; a RealVar yields its midpoint split; a CatVar yields
// every unordered bipartition of its mask, the lowest remaining category
// always on the left, in increasing order of the other left categories.
func candidates(predictors []Variable, d domain) []candidate {
	var out []candidate
	for i, p := range predictors {
		b := d[i]
		switch v := p.(type) {
		case *RealVar:
			if b.budget <= 0 {
				continue
			}
			mid := 0.5 * (b.lo + b.hi)
			out = append(out, candidate{
				v:        v,
				splitVal: mid,
				leftDom:  d.with(i, bound{lo: b.lo, hi: mid, budget: b.budget - 1}),
				rightDom: d.with(i, bound{lo: mid, hi: b.hi, budget: b.budget - 1}),
			})
		case *CatVar:
			if bits.OnesCount64(b.mask) < 2 {
				continue
			}
			low := b.mask & -b.mask
			rest := b.mask ^ low
			for sub := uint64(0); ; {
				if sub != rest {
					left := low | sub
					right := b.mask ^ left
					out = append(out, candidate{
						v:         v,
						leftMask:  left,
						rightMask: right,
						leftDom:   d.with(i, bound{mask: left}),
						rightDom:  d.with(i, bound{mask: right}),
					})
				}
				sub = (sub - rest) & rest
				if sub == 0 {
					break
				}
			}
		}
	}
	return out
}
