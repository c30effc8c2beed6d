package handler

import (
	"net/http"

	"praxis/internal/model"
	"praxis/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeHandler handles analysis HTTP requests
type AnalyzeHandler struct {
	analyzer *service.AnalyzerService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze handles POST /api/v1/analyze. Malformed JSON shapes are a
// contract violation and get a 400; degraded business data (empty rooms,
// unknown roles) still scores and returns 200.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.OperatingHours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operating_hours must not be negative"})
		return
	}
	if req.PatientVolume < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_volume must not be negative"})
		return
	}

	report := h.analyzer.Analyze(c.Request.Context(), &req)
	c.JSON(http.StatusOK, report)
}

// AnalyzeWorkflow handles POST /api/v1/analyze/workflow
func (h *AnalyzeHandler) AnalyzeWorkflow(c *gin.Context) {
	var req model.WorkflowAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.analyzer.AnalyzeWorkflow(&req)
	c.JSON(http.StatusOK, result)
}
