package trend

import "math"

// Stats is a descriptive summary of the finite values of a series.
type Stats struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Describe summarizes vals, ignoring NaN and infinite entries.
// StdDev is the sample standard deviation (n-1); it is 0 for a single observation.
func Describe(vals []float64) Stats {
	finite := Finite(vals)
	st := Stats{Count: len(finite), Mean: math.NaN(), Min: math.NaN(), Max: math.NaN(), StdDev: math.NaN()}
	if len(finite) == 0 {
		return st
	}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, v := range finite {
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	st.Mean = sum / float64(len(finite))
	st.Min = minv
	st.Max = maxv

	if len(finite) == 1 {
		st.StdDev = 0
		return st
	}
	sumSq := 0.0
	for _, v := range finite {
		d := v - st.Mean
		sumSq += d * d
	}
	st.StdDev = math.Sqrt(sumSq / float64(len(finite)-1))
	return st
}

// Finite returns the entries of vals that are neither NaN nor infinite, preserving order.
func Finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// nearlyEqual compares with a tolerance relative to the operands' scale.
func nearlyEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-9*scale
}
