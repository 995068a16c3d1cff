package irr

import "property-dcf/internal/model"

// Method names. Keep these values stable; they are returned in results.
const (
	MethodNewton    = "newton-raphson"
	MethodBisection = "bisection"
	MethodGrid      = "grid-search"
	MethodFailed    = "failed"
)

// Estimate is what one strategy produced for a cash-flow vector.
type Estimate struct {
	Value      float64
	Method     string
	Iterations int
	Converged  bool
	Err        error
}

// Strategy is one root-finding method in the solver chain.
type Strategy interface {
	Name() string
	Applicable(cashFlows []float64) bool
	Calculate(cashFlows []float64, guess float64) Estimate
}

// DefaultChain returns the ordered strategies: Newton-Raphson, then
// bisection, then grid search.
func DefaultChain(n model.Numerics) []Strategy {
	return []Strategy{
		&Newton{
			MaxIterations:   n.IRRMaxIterations,
			Tolerance:       n.IRRTolerance,
			DerivativeFloor: n.DerivativeFloor,
			DivergenceLimit: n.DivergenceLimit,
		},
		&Bisection{
			Lower:         n.IRRLowerBound,
			Upper:         n.IRRUpperBound,
			Tolerance:     n.BisectionTolerance,
			MaxIterations: n.IRRMaxIterations,
		},
		&GridSearch{
			CoarseMin:  n.GridCoarseMin,
			CoarseMax:  n.GridCoarseMax,
			CoarseStep: n.GridCoarseStep,
			FineSpan:   n.GridFineSpan,
			FineStep:   n.GridFineStep,
			Tolerance:  n.GridTolerance,
		},
	}
}
