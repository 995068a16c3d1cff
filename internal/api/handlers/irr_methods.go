package handlers

import (
	"net/http"

	"property-dcf/internal/api/models"
	"property-dcf/internal/irr"
	"property-dcf/internal/model"

	"github.com/gin-gonic/gin"
)

// IRRMethodsHandler describes the IRR strategy chain.
type IRRMethodsHandler struct {
	numerics model.Numerics
}

// NewIRRMethodsHandler creates a new IRR methods handler
func NewIRRMethodsHandler(n model.Numerics) *IRRMethodsHandler {
	return &IRRMethodsHandler{numerics: n}
}

// ListMethods handles GET /api/v1/irr-methods
func (h *IRRMethodsHandler) ListMethods(c *gin.Context) {
	n := h.numerics
	methods := []models.IRRMethodInfo{
		{
			Name:        irr.MethodNewton,
			Order:       1,
			Description: "Newton-Raphson on the NPV polynomial with an analytic derivative. Fast; fails on flat derivatives, divergence or oscillation.",
			Parameters: []models.ParameterInfo{
				{Name: "initial_guess", Type: "float", Description: "Starting rate", Value: n.IRRInitialGuess},
				{Name: "max_iterations", Type: "int", Description: "Iteration cap", Value: n.IRRMaxIterations},
				{Name: "tolerance", Type: "float", Description: "Step size at which the rate is accepted", Value: n.IRRTolerance},
				{Name: "derivative_floor", Type: "float", Description: "|dNPV/dr| below this aborts", Value: n.DerivativeFloor},
				{Name: "divergence_limit", Type: "float", Description: "|rate| above this aborts", Value: n.DivergenceLimit},
			},
		},
		{
			Name:        irr.MethodBisection,
			Order:       2,
			Description: "Bisection on a fixed bracket. Only applicable when NPV changes sign across the bracket.",
			Parameters: []models.ParameterInfo{
				{Name: "lower_bound", Type: "float", Description: "Bracket low end", Value: n.IRRLowerBound},
				{Name: "upper_bound", Type: "float", Description: "Bracket high end", Value: n.IRRUpperBound},
				{Name: "tolerance", Type: "float", Description: "Bracket half-width at which the midpoint is accepted", Value: n.BisectionTolerance},
				{Name: "max_iterations", Type: "int", Description: "Iteration cap", Value: n.IRRMaxIterations},
			},
		},
		{
			Name:        irr.MethodGrid,
			Order:       3,
			Description: "Coarse sweep for the smallest |NPV| refined by a fine sweep around it. Last resort, always applicable.",
			Parameters: []models.ParameterInfo{
				{Name: "coarse_min", Type: "float", Description: "Coarse sweep start", Value: n.GridCoarseMin},
				{Name: "coarse_max", Type: "float", Description: "Coarse sweep end", Value: n.GridCoarseMax},
				{Name: "coarse_step", Type: "float", Description: "Coarse step", Value: n.GridCoarseStep},
				{Name: "fine_span", Type: "float", Description: "Fine sweep half-width around the coarse best", Value: n.GridFineSpan},
				{Name: "fine_step", Type: "float", Description: "Fine step", Value: n.GridFineStep},
				{Name: "tolerance", Type: "float", Description: "|NPV| at which the rate is accepted", Value: n.GridTolerance},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"methods": methods,
		"accepted_range": gin.H{
			"lower": n.AcceptLowerBound,
			"upper": n.AcceptUpperBound,
		},
	})
}
