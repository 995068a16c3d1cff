package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dcf/internal/model"
)

func TestRankByEquityIRR(t *testing.T) {
	in := []Scenario{
		{Name: "low", Result: &model.Result{IRREquity: 0.03}},
		{Name: "failed", Err: errors.New("boom")},
		{Name: "high", Result: &model.Result{IRREquity: 0.09}},
		{Name: "nan", Result: &model.Result{IRREquity: math.NaN()}},
		{Name: "mid", Result: &model.Result{IRREquity: 0.05}},
	}

	out := RankByEquityIRR(in)
	var names []string
	for _, s := range out {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"high", "mid", "low", "failed", "nan"}, names)
	assert.Equal(t, "low", in[0].Name, "input slice untouched")
}

type fakeRunner struct {
	seen []model.Input
}

func (f *fakeRunner) Run(in model.Input) (*model.Result, error) {
	f.seen = append(f.seen, in)
	if in.Vacancy > 0.5 {
		return nil, errors.New("too empty")
	}
	return &model.Result{NPVAsset: -in.Vacancy * 100, IRREquity: 0.1 - in.Vacancy}, nil
}

func TestSensitivity(t *testing.T) {
	r := &fakeRunner{}
	base := model.Input{Vacancy: 0.1}

	pts, err := Sensitivity(r, base, "vacancy", []float64{-0.05, 0, 0.5})
	require.NoError(t, err)
	require.Len(t, pts, 3)

	assert.InDelta(t, 0.05, pts[0].Value, 1e-12)
	assert.InDelta(t, -5, pts[0].NPVAsset, 1e-9)
	assert.NoError(t, pts[1].Err)
	assert.InDelta(t, 0.0, pts[1].IRREquity, 1e-12)
	assert.Error(t, pts[2].Err)

	assert.Equal(t, 0.1, base.Vacancy)
	assert.Len(t, r.seen, 3)
}

func TestSensitivity_UnknownParam(t *testing.T) {
	_, err := Sensitivity(&fakeRunner{}, model.Input{}, "p0", []float64{1})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")
	assert.Contains(t, SensitivityParams(), "loan_rate")
}

func TestComputeMetrics(t *testing.T) {
	res := &model.Result{
		CFEquity: []float64{-100, 10, 20, 150},
		Years: []model.YearRow{
			{Year: 1, NOI: 30, DebtPayment: 20},
			{Year: 2, NOI: 40, DebtPayment: 20},
			{Year: 3, NOI: 50, DebtPayment: 20},
		},
	}

	m := ComputeMetrics(res)
	assert.InDelta(t, 1.8, m.EquityMultiple, 1e-12)
	assert.InDelta(t, 0.15, m.AvgCashOnCash, 1e-12)
	assert.InDelta(t, 1.5, m.MinDSCR, 1e-12)
	assert.Equal(t, 3, m.PaybackYear)
	assert.Equal(t, 30.0, m.MinNOI)
	assert.Equal(t, 50.0, m.MaxNOI)
	assert.InDelta(t, 40, m.MeanNOI, 1e-12)
}

func TestComputeMetrics_Unlevered(t *testing.T) {
	m := ComputeMetrics(&model.Result{
		CFEquity: []float64{-10, 11},
		Years:    []model.YearRow{{Year: 1, NOI: 1}},
	})
	assert.Equal(t, 0.0, m.MinDSCR)
	assert.Equal(t, 1, m.PaybackYear)
	assert.Equal(t, 0.0, m.AvgCashOnCash)
	assert.Equal(t, Metrics{}, ComputeMetrics(nil))
}
