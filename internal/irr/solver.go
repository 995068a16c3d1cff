package irr

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"property-dcf/internal/model"
)

var (
	ErrEmptyCashFlows = errors.New("cash-flow vector is empty")
	ErrNoSignChange   = errors.New("cash flows never change sign, no IRR exists")
	ErrAllFailed      = errors.New("all IRR strategies failed")
)

// Outcome is the solver's answer for one cash-flow vector.
type Outcome struct {
	Estimate
	// Attempted lists the strategy names tried, in order.
	Attempted []string
}

// Solver runs a strategy chain and returns the first converged, plausible estimate.
type Solver struct {
	Strategies []Strategy
	Numerics   model.Numerics
	Logger     *zap.Logger
}

// NewSolver builds a solver with the default chain for n.
func NewSolver(n model.Numerics, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		Strategies: DefaultChain(n),
		Numerics:   n,
		Logger:     logger,
	}
}

// Solve uses the configured initial guess.
func (s *Solver) Solve(cashFlows []float64) Outcome {
	return s.SolveFrom(cashFlows, s.Numerics.IRRInitialGuess)
}

// SolveFrom runs the chain starting at guess.
func (s *Solver) SolveFrom(cashFlows []float64, guess float64) Outcome {
	failed := Outcome{Estimate: Estimate{Value: math.NaN(), Method: MethodFailed}}

	if len(cashFlows) == 0 {
		failed.Err = ErrEmptyCashFlows
		return failed
	}
	if !hasSignChange(cashFlows) {
		failed.Err = ErrNoSignChange
		return failed
	}

	var reasons []error
	for _, st := range s.Strategies {
		if !st.Applicable(cashFlows) {
			s.Logger.Debug("irr strategy not applicable",
				zap.String("op", "irr.Solve"),
				zap.String("method", st.Name()),
			)
			continue
		}
		failed.Attempted = append(failed.Attempted, st.Name())

		est := st.Calculate(cashFlows, guess)
		if s.acceptable(est) {
			s.Logger.Debug("irr converged",
				zap.String("op", "irr.Solve"),
				zap.String("method", est.Method),
				zap.Int("iterations", est.Iterations),
				zap.Float64("irr", est.Value),
			)
			return Outcome{Estimate: est, Attempted: failed.Attempted}
		}

		reason := est.Err
		if reason == nil {
			reason = fmt.Errorf("rate %g outside accepted range", est.Value)
		}
		reasons = append(reasons, fmt.Errorf("%s: %w", st.Name(), reason))
		s.Logger.Debug("irr strategy failed",
			zap.String("op", "irr.Solve"),
			zap.String("method", st.Name()),
			zap.Int("iterations", est.Iterations),
			zap.Error(reason),
		)
	}

	if len(reasons) == 0 {
		failed.Err = ErrAllFailed
		return failed
	}
	failed.Err = fmt.Errorf("%w: %w", ErrAllFailed, errors.Join(reasons...))
	return failed
}

func (s *Solver) acceptable(est Estimate) bool {
	if !est.Converged {
		return false
	}
	v := est.Value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > s.Numerics.AcceptLowerBound && v < s.Numerics.AcceptUpperBound
}
