// Package report renders engine results as CSV files and plain-text summaries.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"property-dcf/internal/model"
)

// WriteCashFlowCSV writes one row per year, starting with the year-0 outlay.
func WriteCashFlowCSV(path string, res *model.Result) error {
	return writeFile(path, func(w *csv.Writer) error {
		return writeCashFlows(w, res)
	})
}

// WriteDebtScheduleCSV writes the amortization schedule over the holding period.
func WriteDebtScheduleCSV(path string, schedule []model.DebtYear) error {
	return writeFile(path, func(w *csv.Writer) error {
		return writeDebtSchedule(w, schedule)
	})
}

// CashFlowCSV writes the cash-flow table to an arbitrary writer.
func CashFlowCSV(out io.Writer, res *model.Result) error {
	w := csv.NewWriter(out)
	if err := writeCashFlows(w, res); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeFile(path string, fill func(*csv.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeCashFlows(w *csv.Writer, res *model.Result) error {
	header := []string{
		"year",
		"rent_monthly",
		"egi",
		"opex",
		"noi",
		"debt_payment",
		"cf_asset",
		"cf_equity",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	if res == nil || len(res.CFAsset) == 0 {
		return nil
	}

	outlay := []string{"0", "", "", "", "", "", Money(res.CFAsset[0]), Money(res.CFEquity[0])}
	if err := w.Write(outlay); err != nil {
		return err
	}
	for _, r := range res.Years {
		row := []string{
			strconv.Itoa(r.Year),
			Money(r.RentMonthly),
			Money(r.EGI),
			Money(r.Opex),
			Money(r.NOI),
			Money(r.DebtPayment),
			Money(r.CFAsset),
			Money(r.CFEquity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeDebtSchedule(w *csv.Writer, schedule []model.DebtYear) error {
	header := []string{
		"year",
		"begin_balance",
		"interest",
		"principal",
		"payment",
		"end_balance",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range schedule {
		row := []string{
			strconv.Itoa(d.Year),
			Money(d.BeginBalance),
			Money(d.Interest),
			Money(d.Principal),
			Money(d.Payment),
			Money(d.EndBalance),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
