package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"property-dcf/internal/analysis"
	"property-dcf/internal/api/models"
	"property-dcf/internal/cache"
	"property-dcf/internal/config"
	"property-dcf/internal/dcf"
	"property-dcf/internal/model"
	"property-dcf/internal/report"
	"property-dcf/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles analysis runs, lookups, comparisons and validation.
type AnalysisHandler struct {
	engine    *dcf.Engine
	store     cache.Store
	presetDir string
	logger    *zap.Logger

	newID func() string
	now   func() time.Time
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(engine *dcf.Engine, store cache.Store, presetDir string, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{
		engine:    engine,
		store:     store,
		presetDir: presetDir,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// RunAnalysis handles POST /api/v1/analyses
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}

	in, err := h.resolveInput(req.PresetID, req.Input)
	if err != nil {
		writeError(c, http.StatusBadRequest, codePresetNotFound, err.Error(), nil)
		return
	}

	res, err := h.engine.Run(in)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	entry := &cache.Entry{
		ID:        h.newID(),
		InputHash: cache.Key(in),
		Input:     in,
		Result:    res,
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.Set(c.Request.Context(), entry); err != nil {
		// The caller still gets the result; only the later lookup is lost.
		h.logger.Warn("store analysis failed",
			zap.String("op", "api.RunAnalysis"),
			zap.String("id", entry.ID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, buildResponse(entry, req.Options))
}

// GetAnalysis handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	entry, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, cache.ErrNotFound) {
		writeError(c, http.StatusNotFound, codeNotFound, fmt.Sprintf("analysis %q not found or expired", id), nil)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, codeStoreError, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, buildResponse(entry, models.AnalysisOptions{
		IncludeCashFlows: true,
		IncludeYears:     true,
		IncludeSchedule:  true,
	}))
}

// CompareAnalyses handles POST /api/v1/analyses/compare
func (h *AnalysisHandler) CompareAnalyses(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}

	base, err := h.resolveInput(req.PresetID, req.Base)
	if err != nil {
		writeError(c, http.StatusBadRequest, codePresetNotFound, err.Error(), nil)
		return
	}

	scenarios := make([]analysis.Scenario, 0, len(req.Variations))
	for _, v := range req.Variations {
		in := config.MergeInput(base, v.Input)
		res, err := h.engine.Run(in)
		scenarios = append(scenarios, analysis.Scenario{Name: v.Name, Input: in, Result: res, Err: err})
	}

	ranked := analysis.RankByEquityIRR(scenarios)
	comparison := make([]models.ComparisonResult, 0, len(ranked))
	for i, s := range ranked {
		row := models.ComparisonResult{Rank: i + 1, Name: s.Name}
		if s.Err != nil {
			detail := calcErrorDetail(s.Err)
			row.Error = &detail
		} else {
			summary := buildSummary(s.Result)
			row.Summary = &summary
			row.Warnings = models.SanitizeIssues(s.Result.Warnings)
		}
		comparison = append(comparison, row)
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Validate handles POST /api/v1/validate. It always answers 200 with the
// report; is_valid tells the caller whether a run would proceed.
func (h *AnalysisHandler) Validate(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}

	in, err := h.resolveInput(req.PresetID, req.Input)
	if err != nil {
		writeError(c, http.StatusBadRequest, codePresetNotFound, err.Error(), nil)
		return
	}

	r := validation.ValidateComplete(in, h.engine.Settings().Limits)
	r.Errors = models.SanitizeIssues(r.Errors)
	r.Warnings = models.SanitizeIssues(r.Warnings)
	c.JSON(http.StatusOK, r)
}

func (h *AnalysisHandler) resolveInput(presetID string, overrides config.InputOverrides) (model.Input, error) {
	var base model.Input
	if presetID != "" {
		path, err := config.PresetPath(h.presetDir, presetID)
		if err != nil {
			return model.Input{}, err
		}
		p, err := config.LoadPreset(path)
		if err != nil {
			return model.Input{}, err
		}
		base = p.Input
	}
	return config.MergeInput(base, overrides), nil
}

func buildResponse(e *cache.Entry, opts models.AnalysisOptions) models.AnalysisResponse {
	res := e.Result
	resp := models.AnalysisResponse{
		ID:        e.ID,
		InputHash: e.InputHash,
		Status:    "completed",
		CreatedAt: e.CreatedAt,
		Input:     e.Input,
		Summary:   buildSummary(res),
		Warnings:  models.SanitizeIssues(res.Warnings),
	}
	if opts.IncludeCashFlows {
		resp.CashFlows = &models.CashFlows{Asset: res.CFAsset, Equity: res.CFEquity}
	}
	if opts.IncludeYears {
		resp.Years = res.Years
	}
	if opts.IncludeSchedule {
		resp.DebtSchedule = res.DebtSchedule
	}
	return resp
}

func buildSummary(res *model.Result) models.AnalysisSummary {
	s := models.AnalysisSummary{
		HoldingYears:        res.HoldingYears(),
		NPVAsset:            models.Num(res.NPVAsset),
		NPVEquity:           models.Num(res.NPVEquity),
		IRRAsset:            models.Num(res.IRRAsset),
		IRREquity:           models.Num(res.IRREquity),
		IRRMethodAsset:      res.IRRMethodAsset,
		IRRMethodEquity:     res.IRRMethodEquity,
		SalePriceNet:        models.Num(res.SalePriceNet),
		RemainingDebtAtExit: models.Num(res.RemainingDebtAtExit),
		Metrics:             analysis.ComputeMetrics(res),
		Display: map[string]string{
			"npv_asset":              report.Money(res.NPVAsset),
			"npv_equity":             report.Money(res.NPVEquity),
			"irr_asset":              report.Percent(res.IRRAsset),
			"irr_equity":             report.Percent(res.IRREquity),
			"sale_price_net":         report.Money(res.SalePriceNet),
			"remaining_debt_at_exit": report.Money(res.RemainingDebtAtExit),
		},
	}
	if res.ImplicitCap != nil {
		s.ImplicitCap = models.Num(*res.ImplicitCap)
		s.Display["implicit_cap"] = report.Percent(*res.ImplicitCap)
	}
	return s
}
