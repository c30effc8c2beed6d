package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// BenchmarkBand is the acceptable range for a named metric. Invariant:
// Min <= Optimal <= Max. FromKnowledge tells knowledge-derived values
// apart from hardcoded safe defaults; consumers must check the flag
// rather than inferring provenance from Citations alone.
type BenchmarkBand struct {
	Metric        string   `json:"metric"`
	Unit          string   `json:"unit,omitempty"`
	Min           float64  `json:"min"`
	Max           float64  `json:"max"`
	Optimal       float64  `json:"optimal"`
	Source        string   `json:"source,omitempty"`
	Citations     []string `json:"citations,omitempty"`
	FromKnowledge bool     `json:"from_knowledge"`
}

// ArtifactType categorizes knowledge store payloads.
type ArtifactType string

const (
	ArtifactBenchmark ArtifactType = "benchmark"
	ArtifactRule      ArtifactType = "rule"
	ArtifactFormula   ArtifactType = "formula"
	ArtifactChecklist ArtifactType = "checklist"
	ArtifactTemplate  ArtifactType = "template"
	ArtifactPlaybook  ArtifactType = "playbook"
)

// Artifact is one knowledge store record. Payload shape varies by Type;
// consumers tolerate absent or malformed fields per field, not per
// artifact.
type Artifact struct {
	ID         int64           `json:"id" db:"id"`
	Module     string          `json:"module" db:"module"`
	Type       ArtifactType    `json:"artifact_type" db:"artifact_type"`
	Topic      string          `json:"topic" db:"topic"`
	Payload    JSONMap         `json:"payload" db:"payload"`
	Citations  JSONArray       `json:"citations,omitempty" db:"citations"`
	Confidence float64         `json:"confidence" db:"confidence"`
	Embedding  pgvector.Vector `json:"-" db:"embedding"`
	TextRank   *float64        `json:"text_rank,omitempty" db:"text_rank"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// ArtifactQuery selects artifacts from the knowledge store. Topic is
// optional; empty means all topics of the module/type.
type ArtifactQuery struct {
	Module string
	Type   ArtifactType
	Topic  string
}

// ArtifactEmbedding is one precomputed embedding pushed by the external
// ingestion pipeline.
type ArtifactEmbedding struct {
	ArtifactID int64     `json:"artifact_id" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
	Text       string    `json:"text,omitempty"`
}

// EmbeddingBatchRequest represents a batch embedding update request.
type EmbeddingBatchRequest struct {
	Embeddings []ArtifactEmbedding `json:"embeddings" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update.
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
