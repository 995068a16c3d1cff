package loan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestBuildSchedule_FullTermRepaysPrincipal(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		term      int
	}{
		{"mortgage", 1_000_000, 0.05, 20},
		{"short high rate", 250_000, 0.12, 3},
		{"single year", 10_000, 0.07, 1},
		{"near zero rate", 500_000, 1e-13, 10},
		{"large", 35_000_000, 0.025, 35},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := BuildSchedule(tc.principal, tc.rate, tc.term, tc.term, eps)
			require.Len(t, s.Years, tc.term)

			sum := 0.0
			for _, y := range s.Years {
				sum += y.Principal
				assert.GreaterOrEqual(t, y.BeginBalance, 0.0)
				assert.GreaterOrEqual(t, y.EndBalance, 0.0)
				assert.GreaterOrEqual(t, y.Interest, 0.0)
			}
			assert.InDelta(t, tc.principal, sum, tc.principal*1e-9)
			assert.InDelta(t, 0, s.Years[tc.term-1].EndBalance, tc.principal*1e-9)
			assert.Equal(t, 0.0, s.Remaining)
		})
	}
}

func TestBuildSchedule_ZeroRateIsStraightLine(t *testing.T) {
	s := BuildSchedule(1200, 0, 12, 12, eps)

	assert.InDelta(t, 100.0, s.Payment, eps)
	for _, y := range s.Years {
		assert.InDelta(t, y.Payment, y.Principal, eps)
		assert.Equal(t, 0.0, y.Interest)
	}
	assert.InDelta(t, 0, s.Years[11].EndBalance, 1e-9)
}

func TestBuildSchedule_HorizonShorterThanTerm(t *testing.T) {
	s := BuildSchedule(35_000_000, 0.025, 35, 10, eps)

	require.Len(t, s.Years, 10)
	assert.Greater(t, s.Remaining, 0.0)
	assert.Equal(t, s.Years[9].EndBalance, s.Remaining)
	assert.Equal(t, 10, s.Years[9].Year)
}

func TestBuildSchedule_HorizonLongerThanTerm(t *testing.T) {
	s := BuildSchedule(100_000, 0.04, 5, 8, eps)

	require.Len(t, s.Years, 8)
	assert.Equal(t, 0.0, s.Remaining)
	for _, y := range s.Years[5:] {
		assert.Equal(t, 0.0, y.Payment)
		assert.Equal(t, 0.0, y.Interest)
		assert.Equal(t, y.BeginBalance, y.EndBalance)
	}
	assert.Equal(t, 0.0, s.PaymentAt(7))
	assert.Greater(t, s.PaymentAt(1), 0.0)
}

func TestBuildSchedule_HorizonEqualsTerm(t *testing.T) {
	s := BuildSchedule(100_000, 0.04, 5, 5, eps)
	assert.Equal(t, 0.0, s.Remaining)
}

func TestBuildSchedule_NoPrincipal(t *testing.T) {
	for _, p := range []float64{0, -1} {
		s := BuildSchedule(p, 0.05, 10, 10, eps)
		assert.Empty(t, s.Years)
		assert.Equal(t, 0.0, s.Remaining)
		assert.Equal(t, 0.0, s.PaymentAt(1))
	}
}

func TestLevelPayment(t *testing.T) {
	// 100k over 10 years at 5%: standard annuity factor.
	want := 100_000 * 0.05 / (1 - math.Pow(1.05, -10))
	assert.InDelta(t, want, LevelPayment(100_000, 0.05, 10, eps), 1e-9)
	assert.Equal(t, 0.0, LevelPayment(100_000, 0.05, 0, eps))
}
