package capture_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/capture"
	"faultline/internal/domain"
)

type recordingReporter struct {
	mu   sync.Mutex
	seen []capture.Diagnostic
}

func (r *recordingReporter) Report(_ context.Context, d capture.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, d)
}

func (r *recordingReporter) reports() []capture.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]capture.Diagnostic, len(r.seen))
	copy(out, r.seen)
	return out
}

type diagnosticBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	FaultID string          `json:"fault_id"`
	Trace   []capture.Frame `json:"trace"`
}

func newTestRouter(reporter capture.Reporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(capture.Middleware(reporter))
	return router
}

func TestMiddlewareRecoversPanic(t *testing.T) {
	reporter := &recordingReporter{}
	router := newTestRouter(reporter)
	router.GET("/trigger/attribute-error", func(c *gin.Context) {
		var task *domain.Task
		_ = task.Assignee.Email
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger/attribute-error", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body diagnosticBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(capture.KindNilReference), body.Error)
	assert.Equal(t, "attribute-error", body.FaultID)
	assert.Greater(t, len(body.Trace), 1)

	reports := reporter.reports()
	require.Len(t, reports, 1)
	assert.Equal(t, capture.KindNilReference, reports[0].Kind)
	assert.Equal(t, capture.OriginRequest, reports[0].Origin)
}

func TestMiddlewareDrainsHandlerErrors(t *testing.T) {
	reporter := &recordingReporter{}
	router := newTestRouter(reporter)
	router.GET("/trigger/recursion-error", func(c *gin.Context) {
		_ = c.Error(errors.Wrap(domain.ErrTraversalDepth, "flatten category tree"))
		c.Abort()
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger/recursion-error", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body diagnosticBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(capture.KindRecursionLimit), body.Error)
	assert.Contains(t, body.Message, "flatten category tree")

	require.Len(t, reporter.reports(), 1)
}

func TestMiddlewareLeavesHealthyRequestsAlone(t *testing.T) {
	reporter := &recordingReporter{}
	router := newTestRouter(reporter)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, reporter.reports())
}

func TestMiddlewareKeepsServingAfterPanic(t *testing.T) {
	reporter := &recordingReporter{}
	router := newTestRouter(reporter)
	router.GET("/trigger/zero-division", func(c *gin.Context) {
		sprint := &domain.Sprint{LengthDays: 0}
		c.JSON(http.StatusOK, gin.H{"velocity": sprint.VelocityPerDay(80)})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger/zero-division", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
