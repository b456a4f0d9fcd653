package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"faultline/internal/background"
	"faultline/internal/capture"
	"faultline/internal/registry"
	"faultline/internal/repository"
	"faultline/internal/simulator"
)

// Handler wires HTTP routes to the fault simulators and registry.
type Handler struct {
	catalog *registry.Catalog
	sims    *simulator.Service
	bridge  *background.Bridge
	reports repository.ReportRepository
	metrics http.Handler
	log     *logrus.Logger
}

func NewHandler(
	catalog *registry.Catalog,
	sims *simulator.Service,
	bridge *background.Bridge,
	reports repository.ReportRepository,
	metrics http.Handler,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		catalog: catalog,
		sims:    sims,
		bridge:  bridge,
		reports: reports,
		metrics: metrics,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", h.dashboard)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics))

	api := router.Group("/api")
	{
		api.GET("/bugs", h.listBugs)
		api.GET("/reports", h.listReports)
	}

	trigger := router.Group("/trigger")
	{
		trigger.GET("/type-error", h.triggerTypeError)
		trigger.GET("/key-error", h.triggerKeyError)
		trigger.GET("/attribute-error", h.triggerAttributeError)
		trigger.GET("/zero-division", h.triggerZeroDivision)
		trigger.GET("/index-error", h.triggerIndexError)
		trigger.GET("/file-not-found", h.triggerFileNotFound)
		trigger.GET("/json-decode-error", h.triggerJSONDecodeError)
		trigger.POST("/unicode-decode-error", h.triggerUnicodeDecodeError)
		trigger.GET("/recursion-error", h.triggerRecursionError)
		trigger.GET("/connection-error", h.triggerConnectionError)
		trigger.POST("/value-error", h.triggerValueError)
		trigger.GET("/permission-error", h.triggerPermissionError)
		trigger.GET("/timeout-error", h.triggerTimeoutError)
		trigger.GET("/thread-error", h.triggerThreadError)
		trigger.POST("/memory-error", h.triggerMemoryError)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "app": "faultline"})
}

// BugResponse mirrors one fault catalog entry.
type BugResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Route       string `json:"route"`
	Method      string `json:"method"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *Handler) listBugs(c *gin.Context) {
	c.JSON(http.StatusOK, bugResponses(h.catalog.List()))
}

func bugResponses(defs []registry.Definition) []BugResponse {
	resp := make([]BugResponse, len(defs))
	for i, def := range defs {
		resp[i] = BugResponse{
			ID:          def.ID,
			Name:        def.Name,
			Route:       def.Route,
			Method:      def.Method,
			Category:    string(def.Kind),
			Description: def.Description,
		}
	}
	return resp
}

// ReportResponse mirrors one persisted diagnostic.
type ReportResponse struct {
	ID         string          `json:"id"`
	FaultID    string          `json:"fault_id"`
	Kind       string          `json:"kind"`
	Message    string          `json:"message"`
	Origin     string          `json:"origin"`
	Trace      []capture.Frame `json:"trace"`
	CapturedAt string          `json:"captured_at"`
}

func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]ReportResponse, len(reports))
	for i, d := range reports {
		resp[i] = ReportResponse{
			ID:         d.ID,
			FaultID:    d.FaultID,
			Kind:       string(d.Kind),
			Message:    d.Message,
			Origin:     string(d.Origin),
			Trace:      d.Trace,
			CapturedAt: d.CapturedAt.Format(time.RFC3339Nano),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) triggerTypeError(c *gin.Context) {
	userID := queryInt64(c, "user_id", 2)
	name := h.sims.UserDisplayName(userID)
	c.JSON(http.StatusOK, gin.H{"display_name": name})
}

func (h *Handler) triggerKeyError(c *gin.Context) {
	userID := queryInt64(c, "user_id", 1)
	settings := h.sims.NotificationSettings(userID)
	c.JSON(http.StatusOK, gin.H{"notifications": settings})
}

func (h *Handler) triggerAttributeError(c *gin.Context) {
	email := h.sims.TaskAssigneeEmail(projectID(c), c.DefaultQuery("task_id", "TASK-103"))
	c.JSON(http.StatusOK, gin.H{"assignee_email": email})
}

func (h *Handler) triggerZeroDivision(c *gin.Context) {
	points := queryInt(c, "points", 42)
	report := h.sims.GenerateVelocityReport(projectID(c), points)
	c.JSON(http.StatusOK, report)
}

func (h *Handler) triggerIndexError(c *gin.Context) {
	comment := h.sims.LatestComment(projectID(c), c.DefaultQuery("task_id", "TASK-101"))
	c.JSON(http.StatusOK, gin.H{"latest_comment": comment})
}

func (h *Handler) triggerFileNotFound(c *gin.Context) {
	cfg, err := h.sims.LoadProjectConfig(projectID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) triggerJSONDecodeError(c *gin.Context) {
	service := c.DefaultQuery("service", "webhook")
	data, err := h.sims.FetchIntegrationData(service)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) triggerUnicodeDecodeError(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.sims.ParseIncomingWebhook(raw)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) triggerRecursionError(c *gin.Context) {
	categories, err := h.sims.FlattenCategories()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) triggerConnectionError(c *gin.Context) {
	if err := h.sims.ConnectDatabase(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected"})
}

func (h *Handler) triggerValueError(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.sims.ImportTasksCSV(string(raw))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(tasks), "tasks": tasks})
}

func (h *Handler) triggerPermissionError(c *gin.Context) {
	path, err := h.sims.ExportProject(projectID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported_to": path})
}

func (h *Handler) triggerTimeoutError(c *gin.Context) {
	result, err := h.sims.AggregationReport(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) triggerThreadError(c *gin.Context) {
	userID := queryInt64(c, "user_id", 1)
	event := c.DefaultQuery("event", "task_assigned")

	h.bridge.Dispatch(background.Job{
		FaultID: "thread-error",
		Run: func(ctx context.Context) error {
			return h.sims.ProcessNotification(ctx, userID, event)
		},
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "notification queued"})
}

func (h *Handler) triggerMemoryError(c *gin.Context) {
	count := queryInt(c, "count", h.sims.DefaultImportCount())
	indexed, err := h.sims.BulkImport(count)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}

// abortWithError hands the failure to the capture middleware, the single
// catch point for the request path.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func projectID(c *gin.Context) string {
	return c.DefaultQuery("project_id", "proj-1")
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryInt64(c *gin.Context, name string, fallback int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
