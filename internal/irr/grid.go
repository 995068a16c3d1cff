package irr

import (
	"fmt"
	"math"
)

// GridSearch is the last resort: a coarse sweep for the rate with the
// smallest |NPV|, refined by a fine sweep around it. Always applicable.
type GridSearch struct {
	CoarseMin  float64
	CoarseMax  float64
	CoarseStep float64
	FineSpan   float64
	FineStep   float64
	Tolerance  float64
}

func (s *GridSearch) Name() string { return MethodGrid }

func (s *GridSearch) Applicable([]float64) bool { return true }

// Calculate ignores the guess.
func (s *GridSearch) Calculate(cashFlows []float64, _ float64) Estimate {
	est := Estimate{Method: MethodGrid}

	best, bestAbs, n := sweep(cashFlows, s.CoarseMin, s.CoarseMax, s.CoarseStep)
	est.Iterations = n
	if math.IsInf(bestAbs, 1) {
		est.Err = fmt.Errorf("no finite NPV in [%g, %g]", s.CoarseMin, s.CoarseMax)
		return est
	}

	fine, fineAbs, m := sweep(cashFlows, best-s.FineSpan, best+s.FineSpan, s.FineStep)
	est.Iterations += m
	if fineAbs < bestAbs {
		best, bestAbs = fine, fineAbs
	}

	est.Value = best
	if bestAbs < s.Tolerance {
		est.Converged = true
		return est
	}
	est.Err = fmt.Errorf("closest |NPV| %g at r=%g exceeds tolerance %g", bestAbs, best, s.Tolerance)
	return est
}

// sweep evaluates NPV on lo, lo+step, ... <= hi and returns the rate with the
// smallest finite |NPV| and the number of points visited. Rates at or below
// -1 are skipped.
func sweep(cashFlows []float64, lo, hi, step float64) (best, bestAbs float64, n int) {
	bestAbs = math.Inf(1)
	steps := int(math.Floor((hi-lo)/step + 1e-9))
	for i := 0; i <= steps; i++ {
		r := lo + float64(i)*step
		if r <= -1 {
			continue
		}
		n++
		v := math.Abs(NPV(cashFlows, r))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < bestAbs {
			best, bestAbs = r, v
		}
	}
	return best, bestAbs, n
}
