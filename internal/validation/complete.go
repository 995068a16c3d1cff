package validation

import "property-dcf/internal/model"

// ValidateComplete runs the input pass and, if it succeeds, the business-rule
// pass, merging both into one report.
func ValidateComplete(in model.Input, limits model.Limits) Report {
	r := ValidateInput(in, limits)
	if !r.IsValid {
		return r
	}
	rules := ValidateBusinessRules(in, limits)
	r.Warnings = append(r.Warnings, rules.Warnings...)
	return r
}
