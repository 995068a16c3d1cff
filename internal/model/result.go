package model

// DebtYear is one row of an annual amortization schedule.
// All monetary fields are >= 0.
type DebtYear struct {
	Year         int     `json:"year"`
	BeginBalance float64 `json:"begin_balance"`
	Interest     float64 `json:"interest"`
	Principal    float64 `json:"principal"`
	Payment      float64 `json:"payment"`
	EndBalance   float64 `json:"end_balance"`
}

// YearRow is the operating breakdown behind one projection year.
// This is the primary artifact for "where the cash came from".
type YearRow struct {
	Year        int     `json:"year"`
	RentMonthly float64 `json:"rent_monthly"`
	EGI         float64 `json:"egi"`
	Opex        float64 `json:"opex"`
	NOI         float64 `json:"noi"`
	DebtPayment float64 `json:"debt_payment"`
	CFAsset     float64 `json:"cf_asset"`
	CFEquity    float64 `json:"cf_equity"`
}

// Result is produced once per engine run and never updated in place.
//
// CFAsset and CFEquity have length Years+1; index 0 is the (negative) initial outlay.
type Result struct {
	CFAsset  []float64 `json:"cf_asset"`
	CFEquity []float64 `json:"cf_equity"`

	NPVAsset  float64 `json:"npv_asset"`
	NPVEquity float64 `json:"npv_equity"`
	IRRAsset  float64 `json:"irr_asset"`
	IRREquity float64 `json:"irr_equity"`

	IRRMethodAsset  string `json:"irr_method_asset"`
	IRRMethodEquity string `json:"irr_method_equity"`

	SalePriceNet        float64  `json:"sale_price_net"`
	RemainingDebtAtExit float64  `json:"remaining_debt_at_exit"`
	ImplicitCap         *float64 `json:"implicit_cap,omitempty"`

	Years        []YearRow  `json:"years,omitempty"`
	DebtSchedule []DebtYear `json:"debt_schedule,omitempty"`

	Warnings []Issue `json:"warnings,omitempty"`
}

// HoldingYears is N, the number of projection years.
func (r *Result) HoldingYears() int {
	if r == nil || len(r.CFAsset) == 0 {
		return 0
	}
	return len(r.CFAsset) - 1
}
