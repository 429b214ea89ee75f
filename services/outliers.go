package services

import (
	"math"
	"sort"
)

const iqrMultiplier = 1.5

// Bounds is an inclusive numeric range
type Bounds struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies within the bounds, both ends inclusive
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// emptyBounds rejects every value
func emptyBounds() Bounds {
	return Bounds{Lower: math.Inf(1), Upper: math.Inf(-1)}
}

// IQRBounds computes [Q1 - 1.5*IQR, Q3 + 1.5*IQR] using rank-based quartiles:
// Q1 is the element at floor(0.25*n) and Q3 the element at floor(0.75*n) of
// the ascending-sorted column, without interpolation.
func IQRBounds(values []float64) Bounds {
	if len(values) == 0 {
		return emptyBounds()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	q1 := sorted[int(n*0.25)]
	q3 := sorted[int(n*0.75)]
	iqr := q3 - q1

	return Bounds{
		Lower: q1 - iqrMultiplier*iqr,
		Upper: q3 + iqrMultiplier*iqr,
	}
}

// RetainedRange returns the smallest and largest values of the column that
// survive IQR filtering. An empty column yields [+Inf, -Inf].
func RetainedRange(values []float64) Bounds {
	bounds := IQRBounds(values)
	out := emptyBounds()
	for _, v := range values {
		if !bounds.Contains(v) {
			continue
		}
		out.Lower = math.Min(out.Lower, v)
		out.Upper = math.Max(out.Upper, v)
	}
	return out
}
