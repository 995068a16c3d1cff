package analysis

import (
	"math"
	"sort"

	"property-dcf/internal/model"
)

// Scenario is one named input and the outcome of running it.
type Scenario struct {
	Name   string
	Input  model.Input
	Result *model.Result
	Err    error
}

// RankByEquityIRR sorts a copy of scenarios descending by equity IRR.
// Failed or non-finite scenarios sort last, keeping their relative order.
func RankByEquityIRR(scenarios []Scenario) []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := equityIRR(out[i])
		b, bok := equityIRR(out[j])
		if aok != bok {
			return aok
		}
		return aok && a > b
	})
	return out
}

func equityIRR(s Scenario) (float64, bool) {
	if s.Err != nil || s.Result == nil {
		return 0, false
	}
	v := s.Result.IRREquity
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
