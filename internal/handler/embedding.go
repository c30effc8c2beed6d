package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"praxis/internal/model"
	"praxis/internal/repository"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler accepts precomputed artifact embeddings from the
// external ingestion pipeline. The analyzer itself never computes
// embeddings.
type EmbeddingHandler struct {
	repo       *repository.PostgresRepository
	dimensions int
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(repo *repository.PostgresRepository, dimensions int) *EmbeddingHandler {
	return &EmbeddingHandler{repo: repo, dimensions: dimensions}
}

// BatchUpdate handles POST /api/v1/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "knowledge store not configured"})
		return
	}

	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	// Validate embedding dimensions
	for i, item := range req.Embeddings {
		if len(item.Embedding) != h.dimensions {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid embedding dimension at index %d, expected %d", i, h.dimensions),
			})
			return
		}
	}

	success, errors := h.repo.BatchUpdateEmbeddings(c.Request.Context(), req.Embeddings)

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errors,
	}

	if len(errors) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

// UpdateRequest carries one embedding for a single artifact.
type UpdateRequest struct {
	Embedding []float32 `json:"embedding" binding:"required"`
}

// Update handles PUT /api/v1/embeddings/:id
func (h *EmbeddingHandler) Update(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "knowledge store not configured"})
		return
	}

	artifactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artifact id"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if len(req.Embedding) != h.dimensions {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid embedding dimension, expected %d", h.dimensions),
		})
		return
	}

	if err := h.repo.UpdateArtifactEmbedding(c.Request.Context(), artifactID, req.Embedding); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update embedding: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
