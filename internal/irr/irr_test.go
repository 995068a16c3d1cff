package irr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"property-dcf/internal/model"
)

var numerics = model.DefaultSettings().Numerics

func TestNPV(t *testing.T) {
	cf := []float64{-100, 60, 60}
	want := -100 + 60/1.1 + 60/(1.1*1.1)
	assert.InDelta(t, want, NPV(cf, 0.1), 1e-12)
	assert.Equal(t, 20.0, NPV(cf, 0))
	assert.Equal(t, 0.0, NPV(nil, 0.1))
}

func TestNPVDerivativeMatchesFiniteDifference(t *testing.T) {
	cf := []float64{-1000, 300, 400, 500}
	const h = 1e-6
	for _, r := range []float64{-0.5, 0, 0.05, 0.3, 2} {
		fd := (NPV(cf, r+h) - NPV(cf, r-h)) / (2 * h)
		assert.InDelta(t, fd, NPVDerivative(cf, r), 1e-3, "rate %g", r)
	}
}

func TestStrategiesAgreeOnSyntheticVectors(t *testing.T) {
	vectors := []struct {
		name string
		cf   []float64
		want float64
	}{
		{"one period", []float64{-100, 110}, 0.10},
		{"two periods", []float64{-100, 60, 72}, 0.20},
		{"flat then balloon", []float64{-100, 10, 10, 10, 110}, 0.10},
	}

	chain := DefaultChain(numerics)
	for _, v := range vectors {
		for _, st := range chain {
			t.Run(v.name+"/"+st.Name(), func(t *testing.T) {
				require.True(t, st.Applicable(v.cf))
				est := st.Calculate(v.cf, numerics.IRRInitialGuess)
				require.True(t, est.Converged, "err: %v", est.Err)
				assert.Equal(t, st.Name(), est.Method)

				switch st.Name() {
				case MethodNewton:
					assert.InDelta(t, v.want, est.Value, 1e-8)
					assert.InDelta(t, 0, NPV(v.cf, est.Value), 1e-6)
				case MethodBisection:
					assert.InDelta(t, v.want, est.Value, 2e-6)
					assert.InDelta(t, 0, NPV(v.cf, est.Value), 1e-2)
				case MethodGrid:
					assert.InDelta(t, 0, NPV(v.cf, est.Value), numerics.GridTolerance)
				}
			})
		}
	}
}

func TestNewton_CriticalPoint(t *testing.T) {
	n := DefaultChain(numerics)[0]
	est := n.Calculate([]float64{-100, 0}, 0.1)
	assert.False(t, est.Converged)
	assert.ErrorIs(t, est.Err, ErrCriticalPoint)
}

func TestNewton_Divergence(t *testing.T) {
	n := DefaultChain(numerics)[0]
	est := n.Calculate([]float64{-100, 110}, 50)
	assert.False(t, est.Converged)
	assert.ErrorIs(t, est.Err, ErrDivergence)
	assert.Equal(t, 1, est.Iterations)
}

func TestNewton_Oscillation(t *testing.T) {
	// x^3 - 2x + 2 from x=0 cycles 0 -> 1 -> 0.
	n := &Newton{MaxIterations: 100, Tolerance: 1e-8, DerivativeFloor: 1e-14, DivergenceLimit: 100}
	f := func(x float64) float64 { return x*x*x - 2*x + 2 }
	df := func(x float64) float64 { return 3*x*x - 2 }

	est := n.solve(f, df, 0)
	assert.False(t, est.Converged)
	assert.ErrorIs(t, est.Err, ErrOscillation)
	assert.Equal(t, 2, est.Iterations)
}

func TestNewton_MaxIterations(t *testing.T) {
	n := &Newton{MaxIterations: 1, Tolerance: 1e-8, DerivativeFloor: 1e-14, DivergenceLimit: 100}
	est := n.Calculate([]float64{-1000, 300, 400, 500}, 0.1)
	assert.False(t, est.Converged)
	assert.ErrorIs(t, est.Err, ErrMaxIterations)
}

func TestBisection_NotApplicableWithoutBracket(t *testing.T) {
	b := DefaultChain(numerics)[1]
	cf := []float64{-100, 220, -121}
	assert.False(t, b.Applicable(cf))
	est := b.Calculate(cf, 0)
	assert.False(t, est.Converged)
	assert.ErrorIs(t, est.Err, ErrNoBracket)
}

func TestGridSearch_NoRoot(t *testing.T) {
	g := DefaultChain(numerics)[2]
	est := g.Calculate([]float64{1, -3, 3}, 0)
	assert.False(t, est.Converged)
	assert.Error(t, est.Err)
	assert.InDelta(t, 1.0, est.Value, 0.01)
}

func TestSolver_RejectsDegenerateVectors(t *testing.T) {
	s := NewSolver(numerics, zap.NewNop())

	out := s.Solve(nil)
	assert.False(t, out.Converged)
	assert.ErrorIs(t, out.Err, ErrEmptyCashFlows)
	assert.Empty(t, out.Attempted)

	for _, cf := range [][]float64{{100, 10, 10}, {-100, -10, 0}, {0, 0}} {
		out = s.Solve(cf)
		assert.False(t, out.Converged)
		assert.ErrorIs(t, out.Err, ErrNoSignChange)
		assert.True(t, math.IsNaN(out.Value))
	}
}

func TestSolver_NewtonFirst(t *testing.T) {
	s := NewSolver(numerics, nil)
	out := s.Solve([]float64{-1000, 300, 400, 500})
	require.True(t, out.Converged)
	assert.Equal(t, MethodNewton, out.Method)
	assert.Equal(t, []string{MethodNewton}, out.Attempted)
}

func TestSolver_FallsBackToBisection(t *testing.T) {
	s := NewSolver(numerics, zap.NewNop())
	out := s.SolveFrom([]float64{-100, 110}, 50)

	require.True(t, out.Converged, "err: %v", out.Err)
	assert.Equal(t, MethodBisection, out.Method)
	assert.Equal(t, []string{MethodNewton, MethodBisection}, out.Attempted)
	assert.InDelta(t, 0.10, out.Value, 2e-6)
}

func TestSolver_FallsBackToGrid(t *testing.T) {
	// Double root at 10%: no bracket for bisection, Newton diverges from 50.
	s := NewSolver(numerics, zap.NewNop())
	cf := []float64{-100, 220, -121}
	out := s.SolveFrom(cf, 50)

	require.True(t, out.Converged, "err: %v", out.Err)
	assert.Equal(t, MethodGrid, out.Method)
	assert.Equal(t, []string{MethodNewton, MethodGrid}, out.Attempted)
	assert.InDelta(t, 0.10, out.Value, 1e-9)
	assert.InDelta(t, 0, NPV(cf, out.Value), numerics.GridTolerance)
}

func TestSolver_AllStrategiesFail(t *testing.T) {
	s := NewSolver(numerics, zap.NewNop())
	out := s.Solve([]float64{1, -3, 3})

	assert.False(t, out.Converged)
	assert.Equal(t, MethodFailed, out.Method)
	assert.Equal(t, []string{MethodNewton, MethodGrid}, out.Attempted)
	assert.ErrorIs(t, out.Err, ErrAllFailed)
}

type stubStrategy struct {
	name       string
	applicable bool
	est        Estimate
	calls      int
}

func (s *stubStrategy) Name() string              { return s.name }
func (s *stubStrategy) Applicable([]float64) bool { return s.applicable }
func (s *stubStrategy) Calculate([]float64, float64) Estimate {
	s.calls++
	return s.est
}

func TestSolver_RejectsImplausibleConvergedValues(t *testing.T) {
	wild := &stubStrategy{name: "wild", applicable: true, est: Estimate{Value: 500, Method: "wild", Converged: true}}
	nan := &stubStrategy{name: "nan", applicable: true, est: Estimate{Value: math.NaN(), Method: "nan", Converged: true}}
	skipped := &stubStrategy{name: "skipped", applicable: false}
	good := &stubStrategy{name: "good", applicable: true, est: Estimate{Value: 0.07, Method: "good", Converged: true}}
	after := &stubStrategy{name: "after", applicable: true}

	s := &Solver{Strategies: []Strategy{wild, nan, skipped, good, after}, Numerics: numerics, Logger: zap.NewNop()}
	out := s.Solve([]float64{-1, 2})

	require.True(t, out.Converged)
	assert.Equal(t, 0.07, out.Value)
	assert.Equal(t, []string{"wild", "nan", "good"}, out.Attempted)
	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, 0, after.calls)
}

func TestSolver_EmptyChain(t *testing.T) {
	s := &Solver{Numerics: numerics, Logger: zap.NewNop()}
	out := s.Solve([]float64{-1, 2})
	assert.True(t, errors.Is(out.Err, ErrAllFailed))
}
