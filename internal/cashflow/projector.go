// Package cashflow turns an input record and a debt schedule into the
// unlevered (asset) and levered (equity) annual cash-flow vectors.
package cashflow

import (
	"fmt"
	"math"

	"property-dcf/internal/loan"
	"property-dcf/internal/model"
)

// Projection is the projector's output. CFAsset and CFEquity have length
// Years+1 with index 0 holding the initial outlay.
type Projection struct {
	CFAsset  []float64
	CFEquity []float64
	Years    []model.YearRow

	SalePriceGross      float64
	SalePriceNet        float64
	RemainingDebtAtExit float64
	PrepayPenalty       float64

	// ImplicitCap is the forward cap rate NOI(N+1)/pN, nil when either is <= 0.
	ImplicitCap *float64
}

// OperatingYear is the rent/opex/NOI breakdown of projection year t (1-based).
func OperatingYear(in model.Input, t int) model.YearRow {
	rent := in.RentMonthly0 * math.Pow(1+in.RentGrowth(), float64(t-1))
	egi := 12 * rent * (1 - in.Vacancy)
	opex := 12 * in.MonthlyOpex0 * math.Pow(1+in.Inflation, float64(t-1))
	return model.YearRow{
		Year:        t,
		RentMonthly: rent,
		EGI:         egi,
		Opex:        opex,
		NOI:         egi - opex - in.TaxAnnualFixed,
	}
}

// SalePrice is the gross exit price after n years.
func SalePrice(in model.Input, n int) float64 {
	return in.P0 * math.Pow(1+in.PriceGrowth(), float64(n))
}

// Project builds both cash-flow vectors. Negative NOI before the exit year
// is returned as a warning; a non-positive sale price is a fatal error.
func Project(in model.Input, sched loan.Schedule) (*Projection, []model.Issue, error) {
	n := in.Years
	if n < 1 {
		return nil, nil, fmt.Errorf("projection horizon must be >= 1, got %d", n)
	}

	var warnings []model.Issue
	p := &Projection{
		CFAsset:  make([]float64, n+1),
		CFEquity: make([]float64, n+1),
		Years:    make([]model.YearRow, 0, n),
	}

	p.CFAsset[0] = -in.TotalCost()
	p.CFEquity[0] = -(in.TotalCost() - in.LoanAmount)

	for t := 1; t <= n; t++ {
		row := OperatingYear(in, t)
		if row.NOI < 0 && t < n {
			warnings = append(warnings, model.Warning(model.CodeBusinessRuleViolation, "noi", row.NOI,
				fmt.Sprintf("negative NOI of %.2f in year %d", row.NOI, t)))
		}

		row.DebtPayment = sched.PaymentAt(t)
		p.CFAsset[t] = row.NOI
		p.CFEquity[t] = row.NOI - row.DebtPayment
		row.CFAsset, row.CFEquity = p.CFAsset[t], p.CFEquity[t]
		p.Years = append(p.Years, row)
	}

	pN := SalePrice(in, n)
	if !(pN > 0) {
		return nil, warnings, model.NewCalcError(model.CodeMarketInconsistency, model.SeverityError,
			"sale_price", pN, fmt.Sprintf("sale price after %d years is not positive", n)).
			WithContext("price_growth", in.PriceGrowth())
	}

	p.SalePriceGross = pN
	p.SalePriceNet = pN * (1 - in.ExitCostRate)
	p.RemainingDebtAtExit = sched.Remaining
	p.PrepayPenalty = sched.Remaining * in.PrepayPenaltyRate

	p.CFAsset[n] += p.SalePriceNet
	p.CFEquity[n] += p.SalePriceNet - p.RemainingDebtAtExit - p.PrepayPenalty

	p.Years[n-1].CFAsset = p.CFAsset[n]
	p.Years[n-1].CFEquity = p.CFEquity[n]

	if fwd := OperatingYear(in, n+1).NOI; fwd > 0 {
		c := fwd / pN
		p.ImplicitCap = &c
	}

	return p, warnings, nil
}
