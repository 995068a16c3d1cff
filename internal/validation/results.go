package validation

import (
	"fmt"
	"math"

	"property-dcf/internal/model"
)

// ResultCheck carries the computed figures that result validation inspects.
type ResultCheck struct {
	IRRAsset    float64
	IRREquity   float64
	NPVAsset    float64
	NPVEquity   float64
	ImplicitCap *float64
}

// CheckOf extracts the inspected figures from a result.
func CheckOf(res *model.Result) ResultCheck {
	return ResultCheck{
		IRRAsset:    res.IRRAsset,
		IRREquity:   res.IRREquity,
		NPVAsset:    res.NPVAsset,
		NPVEquity:   res.NPVEquity,
		ImplicitCap: res.ImplicitCap,
	}
}

// ValidateResults re-checks computed figures for plausibility. Findings are
// warnings only. Each IRR yields at most one warning: non-finite values first,
// then the absolute bound, then the relative bound.
func ValidateResults(rc ResultCheck, limits model.Limits) Report {
	r := newReport()
	warn := func(code model.Code, field string, value any, msg string) {
		r.Warnings = append(r.Warnings, model.Warning(code, field, value, msg))
	}

	irr := func(field string, v float64) {
		switch {
		case !isFinite(v):
			warn(model.CodeNumericalInstability, field, fmt.Sprint(v), field+" is not a finite number")
		case math.Abs(v) > limits.MaxIRRAbsolute:
			warn(model.CodeUnrealisticResult, field, v,
				fmt.Sprintf("%s %.1f%% exceeds the absolute bound of ±%.0f%%", field, v*100, limits.MaxIRRAbsolute*100))
		case math.Abs(v) > limits.MaxIRRRelative:
			warn(model.CodeUnrealisticResult, field, v,
				fmt.Sprintf("%s %.1f%% exceeds the plausible bound of ±%.0f%%", field, v*100, limits.MaxIRRRelative*100))
		}
	}
	irr("irr_asset", rc.IRRAsset)
	irr("irr_equity", rc.IRREquity)

	for _, npv := range []struct {
		field string
		v     float64
	}{{"npv_asset", rc.NPVAsset}, {"npv_equity", rc.NPVEquity}} {
		if !isFinite(npv.v) {
			warn(model.CodeNumericalInstability, npv.field, fmt.Sprint(npv.v), npv.field+" is not a finite number")
		}
	}

	if rc.ImplicitCap != nil {
		c := *rc.ImplicitCap
		if c < limits.MinCapRate || c > limits.MaxCapRate {
			warn(model.CodeMarketInconsistency, "implicit_cap", c,
				fmt.Sprintf("implicit cap rate %.2f%% outside market band [%.0f%%, %.0f%%]",
					c*100, limits.MinCapRate*100, limits.MaxCapRate*100))
		}
	}

	r.IsValid = true
	return r
}
