package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"property-dcf/internal/logging"
	"property-dcf/internal/model"
	"property-dcf/internal/validation"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	// Optional: load the base input from a preset YAML (e.g. examples/presets/*.yaml).
	// Fields set under input override the preset.
	PresetFile string         `yaml:"preset_file"`
	Input      InputOverrides `yaml:"input"`
	Settings   SettingsConfig `yaml:"settings"`
	Output     OutputConfig   `yaml:"output"`
	Logging    logging.Config `yaml:"logging"`

	// Resolved is the preset merged with Input. Filled by LoadUnchecked.
	Resolved model.Input `yaml:"-"`
}

type OutputConfig struct {
	CashFlowsCSV    string `yaml:"cash_flows_csv"`
	DebtScheduleCSV string `yaml:"debt_schedule_csv"`
}

// InputOverrides mirrors model.Input with pointer fields so that an explicit
// zero (e.g. loan_amount: 0) overrides the preset.
type InputOverrides struct {
	P0                *float64 `yaml:"p0" json:"p0,omitempty"`
	I0                *float64 `yaml:"i0" json:"i0,omitempty"`
	RentMonthly0      *float64 `yaml:"rent_monthly0" json:"rent_monthly0,omitempty"`
	MonthlyOpex0      *float64 `yaml:"monthly_opex0" json:"monthly_opex0,omitempty"`
	TaxAnnualFixed    *float64 `yaml:"tax_annual_fixed" json:"tax_annual_fixed,omitempty"`
	Vacancy           *float64 `yaml:"vacancy" json:"vacancy,omitempty"`
	Inflation         *float64 `yaml:"inflation" json:"inflation,omitempty"`
	RentDecay         *float64 `yaml:"rent_decay" json:"rent_decay,omitempty"`
	PriceDecay        *float64 `yaml:"price_decay" json:"price_decay,omitempty"`
	ExitCostRate      *float64 `yaml:"exit_cost_rate" json:"exit_cost_rate,omitempty"`
	Years             *int     `yaml:"years" json:"years,omitempty"`
	DiscountAsset     *float64 `yaml:"discount_asset" json:"discount_asset,omitempty"`
	DiscountEquity    *float64 `yaml:"discount_equity" json:"discount_equity,omitempty"`
	LoanAmount        *float64 `yaml:"loan_amount" json:"loan_amount,omitempty"`
	LoanRate          *float64 `yaml:"loan_rate" json:"loan_rate,omitempty"`
	LoanTerm          *int     `yaml:"loan_term" json:"loan_term,omitempty"`
	PrepayPenaltyRate *float64 `yaml:"prepay_penalty_rate" json:"prepay_penalty_rate,omitempty"`
}

// SettingsConfig overrides engine limits. Numeric solver constants other than
// the initial guess are not configurable.
type SettingsConfig struct {
	IRRInitialGuess *float64 `yaml:"irr_initial_guess"`

	MaxYears        *int     `yaml:"max_years"`
	MaxLoanTerm     *int     `yaml:"max_loan_term"`
	MaxLoanToCost   *float64 `yaml:"max_loan_to_cost"`
	MaxLoanRate     *float64 `yaml:"max_loan_rate"`
	MinDiscountRate *float64 `yaml:"min_discount_rate"`
	MaxDiscountRate *float64 `yaml:"max_discount_rate"`
	MinInflation    *float64 `yaml:"min_inflation"`
	MaxInflation    *float64 `yaml:"max_inflation"`
	MaxRentDecay    *float64 `yaml:"max_rent_decay"`
	MaxPriceDecay   *float64 `yaml:"max_price_decay"`
	MaxVacancy      *float64 `yaml:"max_vacancy"`
	MaxIRRAbsolute  *float64 `yaml:"max_irr_absolute"`
	MaxIRRRelative  *float64 `yaml:"max_irr_relative"`
	MinCapRate      *float64 `yaml:"min_cap_rate"`
	MaxCapRate      *float64 `yaml:"max_cap_rate"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for the validate command, which reports every issue itself.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var base model.Input
	if c.PresetFile != "" {
		presetPath := c.PresetFile
		if !filepath.IsAbs(presetPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		p, err := LoadPreset(presetPath)
		if err != nil {
			return nil, err
		}
		base = p.Input
	}
	c.Resolved = MergeInput(base, c.Input)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	settings := c.Settings.Apply(model.DefaultSettings())
	if first, ok := validation.ValidateInput(c.Resolved, settings.Limits).FirstError(); ok {
		return fmt.Errorf("input invalid: %w", model.FromIssue(first))
	}
	return nil
}

// EngineSettings returns the default settings with this scenario's overrides applied.
func (c *Config) EngineSettings() model.Settings {
	return c.Settings.Apply(model.DefaultSettings())
}

// MergeInput overlays every set field of override onto base.
func MergeInput(base model.Input, o InputOverrides) model.Input {
	out := base
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setI := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&out.P0, o.P0)
	setF(&out.I0, o.I0)
	setF(&out.RentMonthly0, o.RentMonthly0)
	setF(&out.MonthlyOpex0, o.MonthlyOpex0)
	setF(&out.TaxAnnualFixed, o.TaxAnnualFixed)
	setF(&out.Vacancy, o.Vacancy)
	setF(&out.Inflation, o.Inflation)
	setF(&out.RentDecay, o.RentDecay)
	setF(&out.PriceDecay, o.PriceDecay)
	setF(&out.ExitCostRate, o.ExitCostRate)
	setI(&out.Years, o.Years)
	setF(&out.DiscountAsset, o.DiscountAsset)
	setF(&out.DiscountEquity, o.DiscountEquity)
	setF(&out.LoanAmount, o.LoanAmount)
	setF(&out.LoanRate, o.LoanRate)
	setI(&out.LoanTerm, o.LoanTerm)
	setF(&out.PrepayPenaltyRate, o.PrepayPenaltyRate)
	return out
}

// Apply returns s with every set override applied.
func (sc SettingsConfig) Apply(s model.Settings) model.Settings {
	if sc.IRRInitialGuess != nil {
		s.Numerics.IRRInitialGuess = *sc.IRRInitialGuess
	}
	l := &s.Limits
	for _, f := range []struct {
		dst *float64
		v   *float64
	}{
		{&l.MaxLoanToCost, sc.MaxLoanToCost},
		{&l.MaxLoanRate, sc.MaxLoanRate},
		{&l.MinDiscountRate, sc.MinDiscountRate},
		{&l.MaxDiscountRate, sc.MaxDiscountRate},
		{&l.MinInflation, sc.MinInflation},
		{&l.MaxInflation, sc.MaxInflation},
		{&l.MaxRentDecay, sc.MaxRentDecay},
		{&l.MaxPriceDecay, sc.MaxPriceDecay},
		{&l.MaxVacancy, sc.MaxVacancy},
		{&l.MaxIRRAbsolute, sc.MaxIRRAbsolute},
		{&l.MaxIRRRelative, sc.MaxIRRRelative},
		{&l.MinCapRate, sc.MinCapRate},
		{&l.MaxCapRate, sc.MaxCapRate},
	} {
		if f.v != nil {
			*f.dst = *f.v
		}
	}
	if sc.MaxYears != nil {
		l.MaxYears = *sc.MaxYears
	}
	if sc.MaxLoanTerm != nil {
		l.MaxLoanTerm = *sc.MaxLoanTerm
	}
	return s
}
