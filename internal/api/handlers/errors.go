package handlers

import (
	"net/http"

	"property-dcf/internal/api/models"
	"property-dcf/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codePresetNotFound = "PRESET_NOT_FOUND"
	codePresetInvalid  = "PRESET_INVALID"
	codeNotFound       = "NOT_FOUND"
	codeStoreError     = "STORE_ERROR"
)

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// statusFor maps an engine error to an HTTP status: 400 for structural input
// errors, 500 for critical failures, 422 otherwise.
func statusFor(ce *model.CalcError) int {
	switch {
	case ce.Severity == model.SeverityCritical:
		return http.StatusInternalServerError
	case ce.Code == model.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// calcErrorDetail renders an engine error for a response body.
func calcErrorDetail(err error) models.ErrorDetail {
	ce := model.Instability(err)
	details := map[string]interface{}{
		"severity": string(ce.Severity),
	}
	if ce.Field != "" {
		details["field"] = ce.Field
	}
	if ce.Value != nil {
		if v := models.SanitizeIssues([]model.Issue{ce.Issue})[0].Value; v != nil {
			details["value"] = v
		}
	}
	for k, v := range ce.Context {
		details[k] = v
	}
	if ce.Cause != nil {
		details["cause"] = ce.Cause.Error()
	}
	return models.ErrorDetail{
		Code:    string(ce.Code),
		Message: ce.Message,
		Details: details,
	}
}

func writeCalcError(c *gin.Context, err error) {
	ce := model.Instability(err)
	c.JSON(statusFor(ce), models.ErrorResponse{Error: calcErrorDetail(ce)})
}
