package models

import "property-dcf/internal/config"

// AnalysisRequest is the body for POST /api/v1/analyses and /api/v1/validate.
// The input is built from the optional preset, then the explicit fields.
type AnalysisRequest struct {
	PresetID string                `json:"preset_id,omitempty"`
	Input    config.InputOverrides `json:"input"`
	Options  AnalysisOptions       `json:"options,omitempty"`
}

// AnalysisOptions controls how much detail the response carries.
type AnalysisOptions struct {
	IncludeCashFlows bool `json:"include_cash_flows,omitempty"`
	IncludeYears     bool `json:"include_years,omitempty"`
	IncludeSchedule  bool `json:"include_schedule,omitempty"`
}

// CompareRequest runs every variation on top of a shared base.
type CompareRequest struct {
	PresetID   string                `json:"preset_id,omitempty"`
	Base       config.InputOverrides `json:"base"`
	Variations []Variation           `json:"variations" binding:"required,min=1"`
}

// Variation is one named override set.
type Variation struct {
	Name  string                `json:"name" binding:"required"`
	Input config.InputOverrides `json:"input"`
}
