package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"praxis/internal/model"
	"praxis/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler records what consumers did with recommendations.
type FeedbackHandler struct {
	analyzer *service.AnalyzerService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(analyzer *service.AnalyzerService) *FeedbackHandler {
	return &FeedbackHandler{analyzer: analyzer}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate action
	validActions := map[string]bool{
		"accepted":  true,
		"dismissed": true,
		"viewed":    true,
	}

	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: accepted, dismissed, viewed"})
		return
	}

	err := h.analyzer.LogFeedback(c.Request.Context(), req.ReportID, req.Category, req.Action)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}

	response := model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	}

	c.JSON(http.StatusOK, response)
}
