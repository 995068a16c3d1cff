package report

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"

	"property-dcf/internal/model"
)

// Money renders x rounded half-away-from-zero to cents. Non-finite values
// render as the empty string.
func Money(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

// Percent renders a fraction as a percentage with two decimals, e.g. 0.0394 -> "3.94%".
func Percent(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(x).Shift(2).StringFixed(2) + "%"
}

// WriteSummary prints the headline figures and warnings of a run.
func WriteSummary(w io.Writer, res *model.Result) error {
	capRate := "n/a"
	if res.ImplicitCap != nil {
		capRate = Percent(*res.ImplicitCap)
	}
	lines := []string{
		fmt.Sprintf("holding_years=%d", res.HoldingYears()),
		fmt.Sprintf("npv_asset=%s npv_equity=%s", Money(res.NPVAsset), Money(res.NPVEquity)),
		fmt.Sprintf("irr_asset=%s (%s) irr_equity=%s (%s)",
			Percent(res.IRRAsset), res.IRRMethodAsset, Percent(res.IRREquity), res.IRRMethodEquity),
		fmt.Sprintf("sale_price_net=%s remaining_debt_at_exit=%s implicit_cap=%s",
			Money(res.SalePriceNet), Money(res.RemainingDebtAtExit), capRate),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return WriteIssues(w, "warning", res.Warnings)
}

// WriteIssues prints one line per issue, prefixed with label.
func WriteIssues(w io.Writer, label string, issues []model.Issue) error {
	for _, i := range issues {
		if _, err := fmt.Fprintf(w, "%s: %s\n", label, i.String()); err != nil {
			return err
		}
	}
	return nil
}
