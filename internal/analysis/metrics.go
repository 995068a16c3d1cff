package analysis

import (
	"math"

	"property-dcf/internal/model"
)

// Metrics are secondary return figures derived from a finished run.
type Metrics struct {
	// EquityMultiple is total equity distributions over equity invested.
	EquityMultiple float64 `json:"equity_multiple"`
	// AvgCashOnCash is mean operating equity cash flow (exit year excluded) over equity invested.
	AvgCashOnCash float64 `json:"avg_cash_on_cash"`
	// MinDSCR is the lowest NOI / debt service over years with a payment; 0 when unlevered.
	MinDSCR float64 `json:"min_dscr"`
	// PaybackYear is the first year cumulative equity cash flow turns non-negative, 0 if never.
	PaybackYear int `json:"payback_year"`

	MinNOI  float64 `json:"min_noi"`
	MaxNOI  float64 `json:"max_noi"`
	MeanNOI float64 `json:"mean_noi"`
}

func ComputeMetrics(res *model.Result) Metrics {
	m := Metrics{}
	if res == nil || len(res.CFEquity) < 2 {
		return m
	}

	invested := -res.CFEquity[0]
	n := len(res.CFEquity) - 1

	dist := 0.0
	cum := res.CFEquity[0]
	for t := 1; t <= n; t++ {
		dist += res.CFEquity[t]
		cum += res.CFEquity[t]
		if m.PaybackYear == 0 && cum >= 0 {
			m.PaybackYear = t
		}
	}
	if invested > 0 {
		m.EquityMultiple = dist / invested
		if n > 1 {
			op := 0.0
			for t := 1; t < n; t++ {
				op += res.CFEquity[t]
			}
			m.AvgCashOnCash = op / float64(n-1) / invested
		}
	}

	if len(res.Years) == 0 {
		return m
	}
	m.MinNOI, m.MaxNOI = math.Inf(1), math.Inf(-1)
	sum := 0.0
	m.MinDSCR = math.Inf(1)
	for _, y := range res.Years {
		m.MinNOI = math.Min(m.MinNOI, y.NOI)
		m.MaxNOI = math.Max(m.MaxNOI, y.NOI)
		sum += y.NOI
		if y.DebtPayment > 0 {
			m.MinDSCR = math.Min(m.MinDSCR, y.NOI/y.DebtPayment)
		}
	}
	m.MeanNOI = sum / float64(len(res.Years))
	if math.IsInf(m.MinDSCR, 1) {
		m.MinDSCR = 0
	}
	return m
}
