package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"business-analysis/internal/api/models"
	"business-analysis/internal/data"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/report"

	"github.com/gin-gonic/gin"
)

// statusForCode maps an engine error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case report.CodeInsufficientData:
		return http.StatusUnprocessableEntity
	case report.CodeMissingMetric:
		return http.StatusUnprocessableEntity
	case report.CodeInvalidRecord:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// bindError reports a request body that could not be read or decoded.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "REQUEST_TOO_LARGE",
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			},
		})
		return
	}
	badRequest(c, "INVALID_REQUEST", err.Error())
}

// writeError renders err in the error envelope.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var fetchErr *data.FetchError
	if errors.As(err, &fetchErr) {
		statusCode := http.StatusBadGateway
		switch fetchErr.StatusCode {
		case 0:
			switch fetchErr.Code {
			case "INVALID_URL", "FORBIDDEN_SOURCE":
				statusCode = http.StatusBadRequest
			case "RESPONSE_TOO_LARGE":
				statusCode = http.StatusRequestEntityTooLarge
			}
		case http.StatusUnauthorized, http.StatusForbidden:
			statusCode = http.StatusUnauthorized
		case http.StatusNotFound:
			statusCode = http.StatusNotFound
		case http.StatusTooManyRequests:
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    fetchErr.Code,
				Message: fetchErr.Message,
				Details: map[string]interface{}{
					"status_code": fetchErr.StatusCode,
					"retry_after": fetchErr.RetryAfter,
				},
			},
		})
		return
	}

	if errors.Is(err, metrics.ErrUnknownSeries) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_METRIC",
				Message: err.Error(),
			},
		})
		return
	}

	detail := models.ErrorDetail{Code: report.ErrorCode(err), Message: err.Error()}
	var invalid *model.InvalidRecordError
	var insufficient *model.InsufficientDataError
	switch {
	case errors.As(err, &invalid):
		detail.Details = map[string]interface{}{
			"row":   invalid.Row,
			"field": invalid.Field,
			"value": invalid.Value,
		}
	case errors.As(err, &insufficient):
		detail.Details = map[string]interface{}{
			"need": insufficient.Need,
			"have": insufficient.Have,
		}
	case detail.Code == report.CodeInternal:
		detail.Message = "An unexpected error occurred"
	}
	c.JSON(statusForCode(detail.Code), models.ErrorResponse{Error: detail})
}

// writeSectionError reports a report section that could not be computed.
func writeSectionError(c *gin.Context, se *report.SectionError) {
	c.JSON(statusForCode(se.Code), models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    se.Code,
			Message: se.Message,
			Details: map[string]interface{}{"section": se.Section},
		},
	})
}
