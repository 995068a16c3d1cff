package model

// Input is the canonical "inputs to the engine" record for one property.
//
// Units:
// - P0, I0, LoanAmount, TaxAnnualFixed: currency
// - RentMonthly0, MonthlyOpex0: currency per month at t0
// - Rates (Vacancy, Inflation, decays, discounts, loan rate, exit/prepay costs): fractions, 0.02 = 2%
// - Years, LoanTerm: whole years
//
// The engine takes Input by value and never mutates it.
type Input struct {
	P0 float64 `json:"p0" yaml:"p0"` // purchase price
	I0 float64 `json:"i0" yaml:"i0"` // initial (acquisition) costs

	RentMonthly0   float64 `json:"rent_monthly0" yaml:"rent_monthly0"`
	MonthlyOpex0   float64 `json:"monthly_opex0" yaml:"monthly_opex0"`
	TaxAnnualFixed float64 `json:"tax_annual_fixed" yaml:"tax_annual_fixed"` // flat, never indexed

	Vacancy    float64 `json:"vacancy" yaml:"vacancy"`
	Inflation  float64 `json:"inflation" yaml:"inflation"`
	RentDecay  float64 `json:"rent_decay" yaml:"rent_decay"`
	PriceDecay float64 `json:"price_decay" yaml:"price_decay"`

	ExitCostRate float64 `json:"exit_cost_rate" yaml:"exit_cost_rate"`
	Years        int     `json:"years" yaml:"years"`

	DiscountAsset  float64 `json:"discount_asset" yaml:"discount_asset"`
	DiscountEquity float64 `json:"discount_equity" yaml:"discount_equity"`

	LoanAmount        float64 `json:"loan_amount" yaml:"loan_amount"` // 0 = unlevered
	LoanRate          float64 `json:"loan_rate" yaml:"loan_rate"`
	LoanTerm          int     `json:"loan_term" yaml:"loan_term"` // required only when LoanAmount > 0
	PrepayPenaltyRate float64 `json:"prepay_penalty_rate" yaml:"prepay_penalty_rate"`
}

// TotalCost is the all-in acquisition outlay (price plus initial costs).
func (in Input) TotalCost() float64 {
	return in.P0 + in.I0
}

// Levered reports whether the input carries acquisition debt.
func (in Input) Levered() bool {
	return in.LoanAmount > 0
}

// RentGrowth is the effective annual rent growth rate.
func (in Input) RentGrowth() float64 {
	return in.Inflation - in.RentDecay
}

// PriceGrowth is the effective annual growth rate of the sale price.
func (in Input) PriceGrowth() float64 {
	return in.Inflation - in.PriceDecay
}
