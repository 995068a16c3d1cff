package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"property-dcf/internal/analysis"
	"property-dcf/internal/config"
	"property-dcf/internal/dcf"
	"property-dcf/internal/logging"
	"property-dcf/internal/report"
	"property-dcf/internal/validation"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "sensitivity":
		cmdSensitivity(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli run --config examples/config.yaml [--out results/cashflows.csv] [--schedule results/debt_schedule.csv]")
	fmt.Println("  cli validate --config examples/config.yaml")
	fmt.Println("  cli sensitivity --config examples/config.yaml --param inflation --deltas -0.01,0,0.01")
	fmt.Println("  cli rank --configs a.yaml,b.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - run prints NPV/IRR for the asset and equity cash flows plus any warnings")
	fmt.Printf("  - sensitivity params: %s\n", strings.Join(analysis.SensitivityParams(), ", "))
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	outPath := fs.String("out", "", "Cash-flow CSV path (overrides output.cash_flows_csv)")
	schedPath := fs.String("schedule", "", "Debt schedule CSV path (overrides output.debt_schedule_csv)")
	_ = fs.Parse(args)

	cfg := mustLoad(*cfgPath)
	logger := mustLogger(cfg)
	defer func() { _ = logger.Sync() }()

	engine := dcf.New(dcf.WithSettings(cfg.EngineSettings()), dcf.WithLogger(logger))
	res, err := engine.Run(cfg.Resolved)
	if err != nil {
		fatal(err)
	}

	if err := report.WriteSummary(os.Stdout, res); err != nil {
		fatal(err)
	}

	if p := firstNonEmpty(*outPath, cfg.Output.CashFlowsCSV); p != "" {
		if err := report.WriteCashFlowCSV(p, res); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.CFAsset), p)
	}
	if p := firstNonEmpty(*schedPath, cfg.Output.DebtScheduleCSV); p != "" && len(res.DebtSchedule) > 0 {
		if err := report.WriteDebtScheduleCSV(p, res.DebtSchedule); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.DebtSchedule), p)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.LoadUnchecked(*cfgPath)
	if err != nil {
		fatal(err)
	}

	r := validation.ValidateComplete(cfg.Resolved, cfg.EngineSettings().Limits)
	_ = report.WriteIssues(os.Stdout, "error", r.Errors)
	_ = report.WriteIssues(os.Stdout, "warning", r.Warnings)
	if !r.IsValid {
		os.Exit(1)
	}
	fmt.Printf("ok (%d warnings)\n", len(r.Warnings))
}

func cmdSensitivity(args []string) {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	param := fs.String("param", "inflation", "Parameter to shift")
	deltasStr := fs.String("deltas", "-0.01,-0.005,0,0.005,0.01", "Comma-separated additive shifts")
	_ = fs.Parse(args)

	cfg := mustLoad(*cfgPath)
	deltas, err := parseFloats(*deltasStr)
	if err != nil {
		fatal(err)
	}

	engine := dcf.New(dcf.WithSettings(cfg.EngineSettings()))
	points, err := analysis.Sensitivity(engine, cfg.Resolved, *param, deltas)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-8s %-10s %-16s %-16s %-10s %-10s\n", "delta", *param, "npv_asset", "npv_equity", "irr_asset", "irr_equity")
	for _, p := range points {
		if p.Err != nil {
			fmt.Printf("%-8.4f %-10.4f error: %v\n", p.Delta, p.Value, p.Err)
			continue
		}
		fmt.Printf("%-8.4f %-10.4f %-16s %-16s %-10s %-10s\n",
			p.Delta,
			p.Value,
			report.Money(p.NPVAsset),
			report.Money(p.NPVEquity),
			report.Percent(p.IRRAsset),
			report.Percent(p.IRREquity),
		)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	paths := fs.String("configs", "", "Comma-separated YAML scenario paths")
	_ = fs.Parse(args)

	list := splitPaths(*paths)
	if len(list) == 0 {
		fmt.Println("--configs is required")
		os.Exit(2)
	}

	scenarios := make([]analysis.Scenario, 0, len(list))
	for _, p := range list {
		cfg, err := config.Load(p)
		if err != nil {
			scenarios = append(scenarios, analysis.Scenario{Name: p, Err: err})
			continue
		}
		res, err := dcf.New(dcf.WithSettings(cfg.EngineSettings())).Run(cfg.Resolved)
		scenarios = append(scenarios, analysis.Scenario{Name: p, Input: cfg.Resolved, Result: res, Err: err})
	}

	ranked := analysis.RankByEquityIRR(scenarios)
	fmt.Printf("%-4s %-36s %-10s %-10s %-16s %-8s\n", "rank", "scenario", "irr_eq", "irr_asset", "npv_equity", "multiple")
	for i, s := range ranked {
		if s.Err != nil {
			fmt.Printf("%-4d %-36s error: %v\n", i+1, s.Name, s.Err)
			continue
		}
		m := analysis.ComputeMetrics(s.Result)
		fmt.Printf("%-4d %-36s %-10s %-10s %-16s %-8.2f\n",
			i+1,
			s.Name,
			report.Percent(s.Result.IRREquity),
			report.Percent(s.Result.IRRAsset),
			report.Money(s.Result.NPVEquity),
			m.EquityMultiple,
		)
	}
}

func mustLoad(path string) *config.Config {
	if path == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

func mustLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fatal(err)
	}
	return logger
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	parts := splitPaths(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid delta %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
