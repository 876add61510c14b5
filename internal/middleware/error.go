package middleware

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Kind      apperror.Kind  `json:"kind"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// AbortWithError writes err as a structured error response. Errors that are
// not *apperror.Error are reported as internal errors without their text.
func AbortWithError(c *gin.Context, err error) {
	e, ok := apperror.As(err)
	if !ok {
		slog.Error("unhandled error", "requestID", GetRequestID(c), "error", err)
		e = apperror.Internal("internal server error", err)
	}

	c.AbortWithStatusJSON(e.HTTPStatus(), ErrorResponse{Error: ErrorBody{
		Kind:      e.Kind,
		Message:   e.Message,
		Details:   details(e),
		RequestID: GetRequestID(c),
	}})
}

func details(e *apperror.Error) map[string]any {
	d := map[string]any{}
	for k, v := range e.Context {
		d[k] = v
	}
	if e.Raw != "" {
		if e.Kind == apperror.KindUpstream {
			d["body"] = e.Raw
		} else {
			d["raw"] = e.Raw
		}
	}
	// Internal causes stay in the logs
	if e.Cause != nil && e.Kind != apperror.KindInternal {
		d["cause"] = e.Cause.Error()
	}
	if len(d) == 0 {
		return nil
	}
	return d
}

// Recovery turns a panic into a 500 internal_error response
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.Inc()
				slog.Error("panic recovered",
					"error", fmt.Sprintf("%v", rec),
					"requestID", GetRequestID(c),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				AbortWithError(c, apperror.Internal("internal server error", nil))
			}
		}()
		c.Next()
	}
}

// NotFound reports unknown routes in the structured error shape
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, apperror.NotFound("route not found"))
	}
}
