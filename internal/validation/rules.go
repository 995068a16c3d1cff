package validation

import (
	"fmt"

	"property-dcf/internal/model"
)

// ValidateBusinessRules flags implausible but computable inputs. It never
// produces errors; the returned report is always valid.
func ValidateBusinessRules(in model.Input, limits model.Limits) Report {
	r := newReport()
	warn := func(field string, value any, format string, args ...any) {
		r.Warnings = append(r.Warnings,
			model.Warning(model.CodeBusinessRuleViolation, field, value, fmt.Sprintf(format, args...)))
	}

	if cost := in.TotalCost(); in.LoanAmount > 0 && cost > 0 {
		if ltc := in.LoanAmount / cost; ltc > limits.MaxLoanToCost {
			warn(FieldLoanAmount, ltc, "loan-to-cost %.1f%% exceeds %.0f%%", ltc*100, limits.MaxLoanToCost*100)
		}
	}
	if in.LoanAmount > 0 {
		if in.LoanRate > limits.MaxLoanRate {
			warn(FieldLoanRate, in.LoanRate, "loan rate %.2f%% exceeds %.0f%%", in.LoanRate*100, limits.MaxLoanRate*100)
		}
		if in.LoanTerm > in.Years {
			warn(FieldLoanTerm, in.LoanTerm,
				"loan term of %d years outlasts the %d-year hold, debt remains outstanding at exit", in.LoanTerm, in.Years)
		}
	}

	rate := func(field string, v float64) {
		if v < limits.MinDiscountRate || v > limits.MaxDiscountRate {
			warn(field, v, "discount rate %.2f%% outside [%.0f%%, %.0f%%]",
				v*100, limits.MinDiscountRate*100, limits.MaxDiscountRate*100)
		}
	}
	rate(FieldDiscountAsset, in.DiscountAsset)
	rate(FieldDiscountEquity, in.DiscountEquity)

	if in.Inflation < limits.MinInflation || in.Inflation > limits.MaxInflation {
		warn(FieldInflation, in.Inflation, "inflation %.2f%% outside [%.0f%%, %.0f%%]",
			in.Inflation*100, limits.MinInflation*100, limits.MaxInflation*100)
	}

	ceiling := func(field string, v, max float64) {
		if v > max {
			warn(field, v, "%s %.2f%% exceeds %.0f%%", field, v*100, max*100)
		}
	}
	ceiling(FieldRentDecay, in.RentDecay, limits.MaxRentDecay)
	ceiling(FieldPriceDecay, in.PriceDecay, limits.MaxPriceDecay)
	ceiling(FieldVacancy, in.Vacancy, limits.MaxVacancy)

	if in.DiscountEquity < in.DiscountAsset {
		warn(FieldDiscountEquity, in.DiscountEquity,
			"equity discount rate %.2f%% is below asset discount rate %.2f%%", in.DiscountEquity*100, in.DiscountAsset*100)
	}

	r.IsValid = true
	v := in
	r.Value = &v
	return r
}
