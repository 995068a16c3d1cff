// Package dcf runs the full discounted-cash-flow calculation for one input.
package dcf

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"property-dcf/internal/cashflow"
	"property-dcf/internal/irr"
	"property-dcf/internal/loan"
	"property-dcf/internal/model"
	"property-dcf/internal/validation"
)

// Engine is stateless apart from its settings; Run is safe for concurrent use.
type Engine struct {
	settings model.Settings
	logger   *zap.Logger
	solver   *irr.Solver
}

type Option func(*Engine)

// WithSettings replaces the default numeric settings and limits.
func WithSettings(s model.Settings) Option {
	return func(e *Engine) { e.settings = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{settings: model.DefaultSettings(), logger: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	e.solver = irr.NewSolver(e.settings.Numerics, e.logger)
	return e
}

// Settings returns the engine's configuration.
func (e *Engine) Settings() model.Settings { return e.settings }

// Run validates in, projects both cash-flow vectors and solves NPV and IRR.
//
// Every returned error is a *model.CalcError. Non-fatal findings are attached
// to Result.Warnings in the order they were produced.
func (e *Engine) Run(in model.Input) (res *model.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = model.Instability(fmt.Errorf("panic: %v", rec))
			res = nil
		}
		if err != nil {
			err = model.Instability(err)
			e.logger.Warn("dcf run aborted", zap.String("op", "dcf.Run"), zap.Error(err))
		}
	}()
	return e.run(in)
}

func (e *Engine) run(in model.Input) (*model.Result, error) {
	limits := e.settings.Limits

	check := validation.ValidateInput(in, limits)
	if first, ok := check.FirstError(); ok {
		return nil, model.FromIssue(first)
	}
	warnings := validation.ValidateBusinessRules(in, limits).Warnings

	sched := loan.BuildSchedule(in.LoanAmount, in.LoanRate, in.LoanTerm, in.Years, e.settings.Numerics.Epsilon)

	proj, projWarnings, err := cashflow.Project(in, sched)
	if err != nil {
		return nil, fmt.Errorf("project cash flows: %w", err)
	}
	warnings = append(warnings, projWarnings...)

	res := &model.Result{
		CFAsset:             proj.CFAsset,
		CFEquity:            proj.CFEquity,
		NPVAsset:            irr.NPV(proj.CFAsset, in.DiscountAsset),
		NPVEquity:           irr.NPV(proj.CFEquity, in.DiscountEquity),
		SalePriceNet:        proj.SalePriceNet,
		RemainingDebtAtExit: proj.RemainingDebtAtExit,
		ImplicitCap:         proj.ImplicitCap,
		Years:               proj.Years,
		DebtSchedule:        sched.Years,
	}

	asset, err := e.solve("cf_asset", proj.CFAsset)
	if err != nil {
		return nil, err
	}
	equity, err := e.solve("cf_equity", proj.CFEquity)
	if err != nil {
		return nil, err
	}
	res.IRRAsset, res.IRRMethodAsset = asset.Value, asset.Method
	res.IRREquity, res.IRRMethodEquity = equity.Value, equity.Method

	warnings = append(warnings, validation.ValidateResults(validation.CheckOf(res), limits).Warnings...)
	res.Warnings = warnings

	e.logger.Debug("dcf run complete",
		zap.String("op", "dcf.Run"),
		zap.Int("years", in.Years),
		zap.Float64("irr_asset", res.IRRAsset),
		zap.Float64("irr_equity", res.IRREquity),
		zap.Int("warnings", len(warnings)),
	)
	return res, nil
}

func (e *Engine) solve(field string, cfs []float64) (irr.Outcome, error) {
	out := e.solver.Solve(cfs)
	if out.Converged {
		return out, nil
	}
	ce := model.NewCalcError(model.CodeIRRCalculationFailed, model.SeverityError, field, nil,
		fmt.Sprintf("IRR did not converge for %s", field)).
		WithContext("attempted", out.Attempted)
	ce.Cause = out.Err
	if errors.Is(out.Err, irr.ErrNoSignChange) {
		ce.Message = fmt.Sprintf("%s never changes sign, IRR is undefined", field)
	}
	return out, ce
}
