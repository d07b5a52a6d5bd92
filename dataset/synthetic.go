package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Demo column layout: A real on [-2, 2], B categorical {a, b, c},
// C categorical {x, y}, D categorical {0, 1}.
const (
	DemoA = iota
	DemoB
	DemoC
	DemoD
	demoCols
)

// Demo generates n rows where A, B and C are uniform and D is drawn from a
// Bernoulli whose probability is picked by a fixed decision tree over A, B
// and C. Searching {A, B, C} -> D should recover that tree as n grows.
func Demo(n int, seed uint64) *mat.Dense {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)
	uniformA := distuv.Uniform{Min: -2, Max: 2, Src: src}

	data := mat.NewDense(n, demoCols, nil)
	for i := 0; i < n; i++ {
		a := uniformA.Rand()
		b := float64(rng.IntN(3))
		c := float64(rng.IntN(2))

		var p float64
		switch {
		case a >= 0:
			if c == 0 {
				p = 0.1
			} else {
				p = 0.2
			}
		case b == 1:
			p = 0.4
		case c == 1:
			p = 0.5
		case a < -1:
			p = 0.1
		case b == 0:
			p = 0.2
		default:
			p = 0.9
		}

		data.Set(i, DemoA, a)
		data.Set(i, DemoB, b)
		data.Set(i, DemoC, c)
		data.Set(i, DemoD, distuv.Bernoulli{P: p, Src: src}.Rand())
	}
	return data
}

// Benchmark column layout: A real on [-127, 51], B categorical with three
// levels, C and E categorical with two levels, D real on [1, 3].
const (
	BenchA = iota
	BenchB
	BenchC
	BenchD
	BenchE
	benchCols
)

// Benchmark generates n correlated rows over five variables: A depends on B,
// A and D share a noise term, C is the XOR of A > 0 and D > 2, and E is the
// complement of C except where D > 2.5.
func Benchmark(n int, seed uint64) *mat.Dense {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)
	uniform := func(lo, hi float64) float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}

	data := mat.NewDense(n, benchCols, nil)
	for i := 0; i < n; i++ {
		b := float64(rng.IntN(3))
		var a float64
		if b == 1 {
			a = uniform(-60, -10)
		} else {
			a = uniform(-30, 10)
		}
		d := uniform(1.5, 2.5)

		x := uniform(-1, 1)
		a += 30 * x
		d += 0.1 * x

		c := 0.0
		if (a > 0) != (d > 2) {
			c = 1
		}
		e := 1 - c
		if d > 2.5 {
			e = 0
		}

		data.Set(i, BenchA, a)
		data.Set(i, BenchB, b)
		data.Set(i, BenchC, c)
		data.Set(i, BenchD, d)
		data.Set(i, BenchE, e)
	}
	return data
}
