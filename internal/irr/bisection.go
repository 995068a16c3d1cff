package irr

import (
	"errors"
	"math"
)

// ErrNoBracket is returned when NPV has the same sign at both bounds.
var ErrNoBracket = errors.New("no sign change between search bounds")

// Bisection halves [Lower, Upper] until the bracket is narrower than Tolerance.
// It only applies when NPV(Lower) and NPV(Upper) have opposite signs.
type Bisection struct {
	Lower         float64
	Upper         float64
	Tolerance     float64
	MaxIterations int
}

func (s *Bisection) Name() string { return MethodBisection }

func (s *Bisection) Applicable(cashFlows []float64) bool {
	lo, hi := NPV(cashFlows, s.Lower), NPV(cashFlows, s.Upper)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return false
	}
	return lo*hi < 0
}

// Calculate ignores the guess; the bracket fixes the starting point.
func (s *Bisection) Calculate(cashFlows []float64, _ float64) Estimate {
	est := Estimate{Method: MethodBisection}
	if !s.Applicable(cashFlows) {
		est.Err = ErrNoBracket
		return est
	}

	lo, hi := s.Lower, s.Upper
	fLo := NPV(cashFlows, lo)
	for i := 1; i <= s.MaxIterations; i++ {
		est.Iterations = i
		mid := (lo + hi) / 2
		fMid := NPV(cashFlows, mid)

		if fMid == 0 || (hi-lo)/2 < s.Tolerance {
			est.Value = mid
			est.Converged = true
			return est
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}

	est.Value = (lo + hi) / 2
	est.Err = ErrMaxIterations
	return est
}
