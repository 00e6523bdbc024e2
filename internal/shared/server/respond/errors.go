package respond

import (
	"github.com/gin-gonic/gin"

	"hydration-backend/internal/shared/telemetry"
)

// AdvisoryDismissMs is how long the widget keeps a transient advisory visible.
const AdvisoryDismissMs = 2500

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error    ErrorBody     `json:"error"`
	Advisory *AdvisoryBody `json:"advisory,omitempty"`
}

// AdvisoryBody is a transient toast-style message for the widget to show and
// auto-dismiss.
type AdvisoryBody struct {
	Message       string `json:"message"`
	DismissAfterMs int   `json:"dismissAfterMs"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Advisory sends an error response that also carries a user-facing toast
// message. Validation rejections and retry-able failures use this so the
// widget surfaces them without treating them as hard faults.
func Advisory(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	telemetry.Warn("http.advisory", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
		Advisory: &AdvisoryBody{
			Message:       message,
			DismissAfterMs: AdvisoryDismissMs,
		},
	})
}
