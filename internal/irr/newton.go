package irr

import (
	"errors"
	"fmt"
	"math"
)

// Failure reasons reported by Newton.
var (
	ErrCriticalPoint = errors.New("derivative too close to zero")
	ErrOscillation   = errors.New("iteration oscillating")
	ErrDivergence    = errors.New("iteration diverged")
	ErrMaxIterations = errors.New("maximum iterations exceeded")
)

// Newton is Newton-Raphson on NPV with the closed-form derivative.
// It is always applicable.
type Newton struct {
	MaxIterations   int
	Tolerance       float64
	DerivativeFloor float64
	DivergenceLimit float64
}

func (s *Newton) Name() string { return MethodNewton }

func (s *Newton) Applicable([]float64) bool { return true }

func (s *Newton) Calculate(cashFlows []float64, guess float64) Estimate {
	f := func(r float64) float64 { return NPV(cashFlows, r) }
	df := func(r float64) float64 { return NPVDerivative(cashFlows, r) }
	return s.solve(f, df, guess)
}

// solve runs the iteration for an arbitrary f/df pair.
func (s *Newton) solve(f, df func(float64) float64, guess float64) Estimate {
	est := Estimate{Method: MethodNewton}

	r := guess
	last := math.NaN()
	for i := 1; i <= s.MaxIterations; i++ {
		est.Iterations = i

		d := df(r)
		if math.IsNaN(d) || math.Abs(d) < s.DerivativeFloor {
			est.Value = r
			est.Err = fmt.Errorf("%w at r=%g (f'=%g)", ErrCriticalPoint, r, d)
			return est
		}

		next := r - f(r)/d
		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(next) > s.DivergenceLimit {
			est.Value = next
			est.Err = fmt.Errorf("%w at iteration %d (r=%g)", ErrDivergence, i, next)
			return est
		}
		if math.Abs(next-r) < s.Tolerance {
			est.Value = next
			est.Converged = true
			return est
		}
		if !math.IsNaN(last) && math.Abs(next-last) < s.Tolerance {
			est.Value = next
			est.Err = fmt.Errorf("%w between %g and %g", ErrOscillation, r, next)
			return est
		}

		last = r
		r = next
	}

	est.Value = r
	est.Err = fmt.Errorf("%w (%d)", ErrMaxIterations, s.MaxIterations)
	return est
}
