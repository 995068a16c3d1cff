package irr

import "math"

// NPV discounts cashFlows at rate; cashFlows[0] is undiscounted (t = 0).
func NPV(cashFlows []float64, rate float64) float64 {
	sum := 0.0
	factor := 1.0
	for t, cf := range cashFlows {
		if t > 0 {
			factor *= 1 + rate
		}
		sum += cf / factor
	}
	return sum
}

// NPVDerivative is d NPV / d rate: Σ -t·cf_t / ((1+r)^t·(1+r)) for t > 0.
func NPVDerivative(cashFlows []float64, rate float64) float64 {
	sum := 0.0
	for t := 1; t < len(cashFlows); t++ {
		sum -= float64(t) * cashFlows[t] / (math.Pow(1+rate, float64(t)) * (1 + rate))
	}
	return sum
}

// hasSignChange reports whether cashFlows has at least one strictly positive
// and one strictly negative element.
func hasSignChange(cashFlows []float64) bool {
	pos, neg := false, false
	for _, cf := range cashFlows {
		switch {
		case cf > 0:
			pos = true
		case cf < 0:
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}
