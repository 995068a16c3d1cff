package models

import (
	"math"
	"time"

	"property-dcf/internal/analysis"
	"property-dcf/internal/model"
)

// AnalysisResponse is returned by POST /api/v1/analyses and GET /api/v1/analyses/:id.
type AnalysisResponse struct {
	ID        string          `json:"id,omitempty"`
	InputHash string          `json:"input_hash,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Input     model.Input     `json:"input"`
	Summary   AnalysisSummary `json:"summary"`
	Warnings  []model.Issue   `json:"warnings"`

	CashFlows    *CashFlows       `json:"cash_flows,omitempty"`
	Years        []model.YearRow  `json:"years,omitempty"`
	DebtSchedule []model.DebtYear `json:"debt_schedule,omitempty"`
}

// AnalysisSummary holds the headline figures. Non-finite numbers become null.
type AnalysisSummary struct {
	HoldingYears        int              `json:"holding_years"`
	NPVAsset            *float64         `json:"npv_asset"`
	NPVEquity           *float64         `json:"npv_equity"`
	IRRAsset            *float64         `json:"irr_asset"`
	IRREquity           *float64         `json:"irr_equity"`
	IRRMethodAsset      string           `json:"irr_method_asset"`
	IRRMethodEquity     string           `json:"irr_method_equity"`
	SalePriceNet        *float64         `json:"sale_price_net"`
	RemainingDebtAtExit *float64         `json:"remaining_debt_at_exit"`
	ImplicitCap         *float64         `json:"implicit_cap"`
	Metrics             analysis.Metrics `json:"metrics"`
	// Display carries cent-rounded money and percentage strings for UIs.
	Display map[string]string `json:"display"`
}

type CashFlows struct {
	Asset  []float64 `json:"asset"`
	Equity []float64 `json:"equity"`
}

// CompareResponse lists variations ranked by equity IRR; failures sort last.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank     int              `json:"rank"`
	Name     string           `json:"name"`
	Summary  *AnalysisSummary `json:"summary,omitempty"`
	Warnings []model.Issue    `json:"warnings,omitempty"`
	Error    *ErrorDetail     `json:"error,omitempty"`
}

// IRRMethodInfo describes one solver strategy.
type IRRMethodInfo struct {
	Name        string          `json:"name"`
	Order       int             `json:"order"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a solver parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Value       interface{} `json:"value"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Num returns nil for NaN and ±Inf so the value encodes as JSON null.
func Num(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// SanitizeIssues replaces non-finite issue values with their string form.
func SanitizeIssues(in []model.Issue) []model.Issue {
	out := make([]model.Issue, len(in))
	for i, is := range in {
		if f, ok := is.Value.(float64); ok && Num(f) == nil {
			is.Value = formatNonFinite(f)
		}
		out[i] = is
	}
	return out
}

func formatNonFinite(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}
