package validation

import (
	"fmt"
	"math"

	"property-dcf/internal/model"
)

// Field names as they appear in issues. They match the JSON/YAML keys of model.Input.
const (
	FieldP0                = "p0"
	FieldI0                = "i0"
	FieldRentMonthly0      = "rent_monthly0"
	FieldMonthlyOpex0      = "monthly_opex0"
	FieldTaxAnnualFixed    = "tax_annual_fixed"
	FieldVacancy           = "vacancy"
	FieldInflation         = "inflation"
	FieldRentDecay         = "rent_decay"
	FieldPriceDecay        = "price_decay"
	FieldExitCostRate      = "exit_cost_rate"
	FieldYears             = "years"
	FieldDiscountAsset     = "discount_asset"
	FieldDiscountEquity    = "discount_equity"
	FieldLoanAmount        = "loan_amount"
	FieldLoanRate          = "loan_rate"
	FieldLoanTerm          = "loan_term"
	FieldPrepayPenaltyRate = "prepay_penalty_rate"
)

// ValidateInput checks every field against its declared domain.
// Each violating field yields exactly one INVALID_INPUT error, in field order.
func ValidateInput(in model.Input, limits model.Limits) Report {
	r := newReport()
	add := func(i *model.Issue) {
		if i != nil {
			r.Errors = append(r.Errors, *i)
		}
	}

	add(positive(FieldP0, in.P0))
	add(nonNegative(FieldI0, in.I0))
	add(positive(FieldRentMonthly0, in.RentMonthly0))
	add(nonNegative(FieldMonthlyOpex0, in.MonthlyOpex0))
	add(nonNegative(FieldTaxAnnualFixed, in.TaxAnnualFixed))
	add(fraction(FieldVacancy, in.Vacancy))
	add(finite(FieldInflation, in.Inflation))
	add(nonNegative(FieldRentDecay, in.RentDecay))
	add(nonNegative(FieldPriceDecay, in.PriceDecay))
	add(fraction(FieldExitCostRate, in.ExitCostRate))
	add(intInRange(FieldYears, in.Years, 1, limits.MaxYears))
	add(nonNegative(FieldDiscountAsset, in.DiscountAsset))
	add(nonNegative(FieldDiscountEquity, in.DiscountEquity))
	add(nonNegative(FieldLoanAmount, in.LoanAmount))
	add(nonNegative(FieldLoanRate, in.LoanRate))
	if in.LoanAmount > 0 {
		add(intInRange(FieldLoanTerm, in.LoanTerm, 1, limits.MaxLoanTerm))
	} else if in.LoanTerm < 0 {
		add(invalid(FieldLoanTerm, in.LoanTerm, "must be a positive integer when set"))
	}
	add(fraction(FieldPrepayPenaltyRate, in.PrepayPenaltyRate))

	r.IsValid = len(r.Errors) == 0
	if r.IsValid {
		v := in
		r.Value = &v
	}
	return r
}

func invalid(field string, value any, msg string) *model.Issue {
	return &model.Issue{
		Code:     model.CodeInvalidInput,
		Severity: model.SeverityError,
		Field:    field,
		Value:    value,
		Message:  fmt.Sprintf("%s %s", field, msg),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(field string, v float64) *model.Issue {
	if !isFinite(v) {
		return invalid(field, v, "must be a finite number")
	}
	return nil
}

func positive(field string, v float64) *model.Issue {
	if !isFinite(v) || v <= 0 {
		return invalid(field, v, "must be a finite number > 0")
	}
	return nil
}

func nonNegative(field string, v float64) *model.Issue {
	if !isFinite(v) || v < 0 {
		return invalid(field, v, "must be a finite number >= 0")
	}
	return nil
}

func fraction(field string, v float64) *model.Issue {
	if !isFinite(v) || v < 0 || v > 1 {
		return invalid(field, v, "must be a fraction in [0, 1]")
	}
	return nil
}

func intInRange(field string, v, lo, hi int) *model.Issue {
	if v < lo || v > hi {
		return invalid(field, v, fmt.Sprintf("must be an integer in [%d, %d]", lo, hi))
	}
	return nil
}
