package model

import (
	"errors"
	"fmt"
)

// Code classifies an Issue.
// Keep these values stable; they are surfaced verbatim by the API.
type Code string

const (
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeBusinessRuleViolation Code = "BUSINESS_RULE_VIOLATION"
	CodeIRRCalculationFailed  Code = "IRR_CALCULATION_FAILED"
	CodeNumericalInstability  Code = "NUMERICAL_INSTABILITY"
	CodeUnrealisticResult     Code = "UNREALISTIC_RESULT"
	CodeMarketInconsistency   Code = "MARKET_INCONSISTENCY"
)

// Severity decides whether an Issue aborts a calculation.
type Severity string

const (
	// SeverityWarning is collected; the calculation continues.
	SeverityWarning Severity = "warning"
	// SeverityError aborts the current calculation.
	SeverityError Severity = "error"
	// SeverityCritical is unexpected and always aborts.
	SeverityCritical Severity = "critical"
)

// Fatal reports whether an issue of this severity aborts a run.
func (s Severity) Fatal() bool {
	return s == SeverityError || s == SeverityCritical
}

// Issue is the single record shape for both errors and warnings.
type Issue struct {
	Code     Code           `json:"code"`
	Severity Severity       `json:"severity"`
	Field    string         `json:"field,omitempty"`
	Value    any            `json:"value,omitempty"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context,omitempty"`
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("[%s/%s] %s: %s", i.Severity, i.Code, i.Field, i.Message)
	}
	return fmt.Sprintf("[%s/%s] %s", i.Severity, i.Code, i.Message)
}

// Warning builds a non-fatal issue.
func Warning(code Code, field string, value any, msg string) Issue {
	return Issue{Code: code, Severity: SeverityWarning, Field: field, Value: value, Message: msg}
}

// CalcError is the only error type the engine returns for a failed run.
type CalcError struct {
	Issue
	Cause error
}

// NewCalcError builds a fatal error of the given severity.
func NewCalcError(code Code, sev Severity, field string, value any, msg string) *CalcError {
	return &CalcError{Issue: Issue{Code: code, Severity: sev, Field: field, Value: value, Message: msg}}
}

// FromIssue promotes a validation issue to a returned error.
func FromIssue(i Issue) *CalcError {
	return &CalcError{Issue: i}
}

func (e *CalcError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Issue.String(), e.Cause)
	}
	return e.Issue.String()
}

func (e *CalcError) Unwrap() error { return e.Cause }

// WithContext attaches metadata and returns e for chaining.
func (e *CalcError) WithContext(key string, v any) *CalcError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = v
	return e
}

// Instability wraps a foreign failure as a critical NUMERICAL_INSTABILITY error,
// preserving the original cause. Errors that already are *CalcError pass through.
func Instability(cause error) *CalcError {
	var ce *CalcError
	if errors.As(cause, &ce) {
		return ce
	}
	return &CalcError{
		Issue: Issue{
			Code:     CodeNumericalInstability,
			Severity: SeverityCritical,
			Message:  "calculation aborted due to numerical instability",
		},
		Cause: cause,
	}
}

// AsCalcError extracts a *CalcError from err, if any.
func AsCalcError(err error) (*CalcError, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
