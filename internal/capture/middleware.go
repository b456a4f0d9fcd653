package capture

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type diagnosticResponse struct {
	Error   Kind    `json:"error"`
	Message string  `json:"message"`
	FaultID string  `json:"fault_id,omitempty"`
	Trace   []Frame `json:"trace"`
}

// Middleware is the single catch point for failures propagating out of
// request handling. It recovers panics, drains handler errors, reports the
// normalized diagnostic, and renders the fixed-shape error body. It replaces
// gin.Recovery and never re-panics, so a triggered fault cannot take the
// process down or affect unrelated requests.
func Middleware(reporter Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				d := NormalizePanic(v)
				d.FaultID = faultIDFromPath(c.FullPath())
				reporter.Report(c.Request.Context(), d)
				c.AbortWithStatusJSON(http.StatusInternalServerError, toResponse(d))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		d := NormalizeError(c.Errors.Last().Err)
		d.FaultID = faultIDFromPath(c.FullPath())
		reporter.Report(c.Request.Context(), d)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, toResponse(d))
		}
	}
}

func toResponse(d Diagnostic) diagnosticResponse {
	return diagnosticResponse{
		Error:   d.Kind,
		Message: d.Message,
		FaultID: d.FaultID,
		Trace:   d.Trace,
	}
}

func faultIDFromPath(path string) string {
	const prefix = "/trigger/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimPrefix(path, prefix)
}
