package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"praxis/internal/repository"
	"praxis/internal/service"

	"github.com/gin-gonic/gin"
)

// BenchmarkHandler exposes resolved benchmarks and knowledge search.
type BenchmarkHandler struct {
	analyzer     *service.AnalyzerService
	repo         *repository.PostgresRepository
	defaultLimit int
	maxLimit     int
	dimensions   int
}

// NewBenchmarkHandler creates a new benchmark handler. repo may be nil
// when the service runs without a knowledge store.
func NewBenchmarkHandler(analyzer *service.AnalyzerService, repo *repository.PostgresRepository, defaultLimit, maxLimit, dimensions int) *BenchmarkHandler {
	return &BenchmarkHandler{
		analyzer:     analyzer,
		repo:         repo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		dimensions:   dimensions,
	}
}

// List handles GET /api/v1/benchmarks. Every band carries its provenance
// (from_knowledge, citations) so the UI can tell defaults apart.
func (h *BenchmarkHandler) List(c *gin.Context) {
	bands := h.analyzer.Benchmarks(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"benchmarks":      bands,
		"default_version": service.DefaultBenchmarksVersion,
	})
}

// Search handles GET /api/v1/knowledge/search?q=...&limit=...
func (h *BenchmarkHandler) Search(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "knowledge store not configured"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	limit := h.defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	artifacts, err := h.repo.SearchArtifacts(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": artifacts, "total": len(artifacts)})
}

// SemanticSearchRequest carries a precomputed query embedding. The
// analyzer never computes embeddings itself; callers bring their own.
type SemanticSearchRequest struct {
	Embedding []float32 `json:"embedding" binding:"required"`
	Limit     int       `json:"limit"`
}

// SemanticSearch handles POST /api/v1/knowledge/search/semantic
func (h *BenchmarkHandler) SemanticSearch(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "knowledge store not configured"})
		return
	}

	var req SemanticSearchRequest
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

	limit := req.Limit
	if limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	artifacts, err := h.repo.SearchArtifactsByEmbedding(c.Request.Context(), req.Embedding, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": artifacts, "total": len(artifacts)})
}
