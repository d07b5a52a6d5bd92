package cart

import (
	"gonum.org/v1/gonum/stat"
)

// RealLeafStats are the sufficient statistics of a continuous response:
// the row count, mean and population standard deviation.
type RealLeafStats struct {
	Count  int
	Mean   float64
	StdDev float64
}

// CatLeafStats are the sufficient statistics of a categorical response:
// the row count and the count of each category.
type CatLeafStats struct {
	Count     int
	CatCounts []int
}

func computeRealLeafStats(values []float64) RealLeafStats {
	if len(values) == 0 {
		return RealLeafStats{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return RealLeafStats{Count: len(values), Mean: mean, StdDev: std}
}

// computeCatLeafStats counts categories. The caller has already checked that
// every index is in range.
func computeCatLeafStats(indices []int, numCats int) CatLeafStats {
	counts := make([]int, numCats)
	for _, c := range indices {
		counts[c]++
	}
	return CatLeafStats{Count: len(indices), CatCounts: counts}
}
