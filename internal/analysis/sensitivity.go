package analysis

import (
	"fmt"
	"sort"

	"property-dcf/internal/model"
)

// Runner is satisfied by *dcf.Engine.
type Runner interface {
	Run(in model.Input) (*model.Result, error)
}

// SensitivityPoint is the outcome of one shifted run.
type SensitivityPoint struct {
	Delta     float64
	Value     float64 // parameter value after the shift
	NPVAsset  float64
	NPVEquity float64
	IRRAsset  float64
	IRREquity float64
	Err       error
}

var shifters = map[string]func(*model.Input) *float64{
	"inflation":       func(in *model.Input) *float64 { return &in.Inflation },
	"vacancy":         func(in *model.Input) *float64 { return &in.Vacancy },
	"rent_decay":      func(in *model.Input) *float64 { return &in.RentDecay },
	"price_decay":     func(in *model.Input) *float64 { return &in.PriceDecay },
	"exit_cost_rate":  func(in *model.Input) *float64 { return &in.ExitCostRate },
	"discount_asset":  func(in *model.Input) *float64 { return &in.DiscountAsset },
	"discount_equity": func(in *model.Input) *float64 { return &in.DiscountEquity },
	"loan_rate":       func(in *model.Input) *float64 { return &in.LoanRate },
}

// SensitivityParams lists the parameters Sensitivity accepts, sorted.
func SensitivityParams() []string {
	out := make([]string, 0, len(shifters))
	for k := range shifters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sensitivity re-runs base once per delta with param shifted additively.
// A failed run is recorded on its point and does not stop the sweep.
func Sensitivity(r Runner, base model.Input, param string, deltas []float64) ([]SensitivityPoint, error) {
	field, ok := shifters[param]
	if !ok {
		return nil, fmt.Errorf("unknown sensitivity parameter %q (supported: %v)", param, SensitivityParams())
	}

	out := make([]SensitivityPoint, 0, len(deltas))
	for _, d := range deltas {
		in := base
		p := field(&in)
		*p += d

		pt := SensitivityPoint{Delta: d, Value: *p}
		res, err := r.Run(in)
		if err != nil {
			pt.Err = err
		} else {
			pt.NPVAsset, pt.NPVEquity = res.NPVAsset, res.NPVEquity
			pt.IRRAsset, pt.IRREquity = res.IRRAsset, res.IRREquity
		}
		out = append(out, pt)
	}
	return out, nil
}
