// Package validation checks engine inputs and outputs.
//
// Three passes exist: structural input validation (fatal errors), business-rule
// validation (warnings only) and result validation (warnings only). Every pass
// returns a Report; errors and warnings share the model.Issue shape.
package validation

import "property-dcf/internal/model"

// Report is the outcome of one or more validation passes.
type Report struct {
	IsValid  bool          `json:"is_valid"`
	Value    *model.Input  `json:"value,omitempty"`
	Errors   []model.Issue `json:"errors"`
	Warnings []model.Issue `json:"warnings"`
}

// FirstError returns the first structural error, if any.
func (r Report) FirstError() (model.Issue, bool) {
	if len(r.Errors) == 0 {
		return model.Issue{}, false
	}
	return r.Errors[0], true
}

func newReport() Report {
	return Report{Errors: []model.Issue{}, Warnings: []model.Issue{}}
}
