package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	statusFail  = "fail"
	statusError = "error"
)

type failureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Errors renders the last error a handler attached with c.Error. Operational
// errors keep their status and message; everything else is logged and
// answered with a generic 500.
func Errors(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http_errors")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		e := domain.AsError(err)
		if !e.Operational {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			e = domain.ErrInternal
		}
		render(c, e)
	}
}

// Recovery turns a panic into the generic 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http_recovery")
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		render(c, domain.ErrInternal)
	})
}

func render(c *gin.Context, e *domain.Error) {
	status := statusFail
	if e.Status >= http.StatusInternalServerError {
		status = statusError
	}
	c.AbortWithStatusJSON(e.Status, failureResponse{Status: status, Message: e.Message})
}
