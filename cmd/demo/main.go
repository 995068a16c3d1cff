package main

import (
	"flag"
	"fmt"
	"os"

	"property-dcf/internal/config"
	"property-dcf/internal/dcf"
	"property-dcf/internal/logging"
	"property-dcf/internal/model"
	"property-dcf/internal/report"
)

// Demo:
// - Build the reference office input (or load a preset)
// - Run the DCF engine once
// - Print the yearly breakdown and headline figures
func main() {
	presetPath := flag.String("preset", "", "Path to a preset YAML (optional)")
	debug := flag.Bool("debug", false, "Log IRR strategy attempts")
	outCSV := flag.String("out", "", "Optional path to write the cash-flow CSV (e.g. results/cashflows.csv)")
	flag.Parse()

	// Defaults (can be overridden via --preset).
	in := model.Input{
		P0:             50_000_000,
		I0:             1_500_000,
		RentMonthly0:   180_000,
		MonthlyOpex0:   30_000,
		TaxAnnualFixed: 120_000,
		Vacancy:        0.05,
		Inflation:      0.02,
		RentDecay:      0.01,
		PriceDecay:     0.005,
		ExitCostRate:   0.03,
		Years:          10,
		DiscountAsset:  0.02,
		DiscountEquity: 0.05,
		LoanAmount:     35_000_000,
		LoanRate:       0.025,
		LoanTerm:       35,
	}
	if *presetPath != "" {
		p, err := config.LoadPreset(*presetPath)
		if err != nil {
			panic(err)
		}
		in = p.Input
		fmt.Printf("Preset: %s\n", p.Name)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Development = true
	if *debug {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	res, err := dcf.New(dcf.WithLogger(logger)).Run(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-4s %-14s %-14s %-14s %-14s %-14s %-14s\n", "year", "rent/month", "noi", "debt", "cf_asset", "cf_equity", "end_balance")
	fmt.Printf("%-4d %-14s %-14s %-14s %-14s %-14s %-14s\n", 0, "", "", "", report.Money(res.CFAsset[0]), report.Money(res.CFEquity[0]), "")
	for i, y := range res.Years {
		balance := ""
		if i < len(res.DebtSchedule) {
			balance = report.Money(res.DebtSchedule[i].EndBalance)
		}
		fmt.Printf("%-4d %-14s %-14s %-14s %-14s %-14s %-14s\n",
			y.Year,
			report.Money(y.RentMonthly),
			report.Money(y.NOI),
			report.Money(y.DebtPayment),
			report.Money(y.CFAsset),
			report.Money(y.CFEquity),
			balance,
		)
	}
	fmt.Println()
	if err := report.WriteSummary(os.Stdout, res); err != nil {
		panic(err)
	}

	if *outCSV != "" {
		if err := report.WriteCashFlowCSV(*outCSV, res); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.CFAsset), *outCSV)
	}
}
