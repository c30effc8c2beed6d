package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"praxis/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository is the knowledge store plus the analysis/feedback
// logs. It is the only part of the system that performs I/O; the scoring
// core consumes its results through service-layer interfaces.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const artifactColumns = `id, module, artifact_type, topic, payload, citations, confidence, created_at, updated_at`

// GetArtifacts fetches knowledge artifacts matching the query, highest
// confidence first. Empty query fields are not filtered on.
func (r *PostgresRepository) GetArtifacts(ctx context.Context, query model.ArtifactQuery) ([]model.Artifact, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if query.Module != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("module = $%d", argIndex))
		args = append(args, query.Module)
		argIndex++
	}
	if query.Type != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("artifact_type = $%d", argIndex))
		args = append(args, string(query.Type))
		argIndex++
	}
	if query.Topic != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("topic = $%d", argIndex))
		args = append(args, query.Topic)
		argIndex++
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM knowledge_artifacts
		WHERE %s
		ORDER BY confidence DESC, id
	`, artifactColumns, strings.Join(whereClauses, " AND "))

	var artifacts []model.Artifact
	if err := r.db.SelectContext(ctx, &artifacts, selectQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch artifacts: %w", err)
	}
	return artifacts, nil
}

// SearchArtifacts performs a full-text search over artifact topics and
// payloads, ranked by ts_rank.
func (r *PostgresRepository) SearchArtifacts(ctx context.Context, queryText string, limit int) ([]model.Artifact, error) {
	selectQuery := fmt.Sprintf(`
		SELECT %s,
			ts_rank(search_vector, plainto_tsquery('english', $1)) AS text_rank
		FROM knowledge_artifacts
		WHERE search_vector @@ plainto_tsquery('english', $1)
		ORDER BY text_rank DESC, id
		LIMIT $2
	`, artifactColumns)

	var artifacts []model.Artifact
	if err := r.db.SelectContext(ctx, &artifacts, selectQuery, queryText, limit); err != nil {
		return nil, fmt.Errorf("failed to search artifacts: %w", err)
	}
	return artifacts, nil
}

// SearchArtifactsByEmbedding performs semantic similarity search over the
// pgvector column.
func (r *PostgresRepository) SearchArtifactsByEmbedding(ctx context.Context, queryEmbedding []float32, limit int) ([]model.Artifact, error) {
	vec := pgvector.NewVector(queryEmbedding)
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM knowledge_artifacts
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1, id
		LIMIT $2
	`, artifactColumns)

	var artifacts []model.Artifact
	if err := r.db.SelectContext(ctx, &artifacts, selectQuery, vec, limit); err != nil {
		return nil, fmt.Errorf("failed to search artifacts by embedding: %w", err)
	}
	return artifacts, nil
}

// UpdateArtifactEmbedding updates the embedding vector for one artifact.
func (r *PostgresRepository) UpdateArtifactEmbedding(ctx context.Context, artifactID int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE knowledge_artifacts SET embedding = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, vec, artifactID); err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple artifacts in one
// transaction, collecting per-item errors.
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.ArtifactEmbedding) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE knowledge_artifacts SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ArtifactID); err != nil {
			errors = append(errors, fmt.Sprintf("artifact %d: %v", item.ArtifactID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogAnalysis persists a finished report for auditing.
func (r *PostgresRepository) LogAnalysis(ctx context.Context, report *model.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	query := `
		INSERT INTO analysis_logs (report_id, practice_id, overall_score, report, took_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, report.ReportID, report.PracticeID, report.OverallScore, payload, report.TookMS); err != nil {
		return fmt.Errorf("failed to log analysis: %w", err)
	}
	return nil
}

// LogFeedback records a user action on one of a report's recommendations.
func (r *PostgresRepository) LogFeedback(ctx context.Context, reportID, category, action string) error {
	query := `
		UPDATE analysis_logs
		SET feedback_category = $2, feedback_action = $3
		WHERE report_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, reportID, category, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
