// Package repository provides data persistence implementations.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/regtech-labs/finregx/internal/domain"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// SQLRepository implements domain.Repository using database/sql.
// Works with both SQLite and PostgreSQL drivers.
type SQLRepository struct {
	db     *sql.DB
	driver string
}

// New creates a new repository based on configuration.
func New(cfg domain.RepositoryConfig) (domain.Repository, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = openSQLite(cfg)
	case "postgres":
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	repo := &SQLRepository{
		db:     db,
		driver: cfg.Driver,
	}

	// Run migrations
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

func (r *SQLRepository) migrate() error {
	for _, schema := range AllSchemas() {
		if _, err := r.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// SaveAssessment stores an assessment lifecycle record with tenant isolation.
func (r *SQLRepository) SaveAssessment(ctx context.Context, tenantID string, a *domain.Assessment) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		INSERT INTO assessments (
			id, tenant_id, startup_name, contact_email, status, created_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		a.ID, tenantID, a.StartupName, a.ContactEmail,
		a.Status, a.CreatedAt, a.CompletedAt,
	)
	return err
}

// GetAssessment retrieves an assessment by ID with tenant isolation.
func (r *SQLRepository) GetAssessment(ctx context.Context, tenantID string, assessmentID string) (*domain.Assessment, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, startup_name, contact_email, status, created_at, completed_at
		FROM assessments
		WHERE tenant_id = ? AND id = ?
	`

	var a domain.Assessment
	var contactEmail sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, assessmentID).Scan(
		&a.ID, &a.TenantID, &a.StartupName, &contactEmail,
		&a.Status, &a.CreatedAt, &completedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.ContactEmail = contactEmail.String
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	return &a, nil
}

// ListAssessments retrieves the most recent assessments for a tenant.
func (r *SQLRepository) ListAssessments(ctx context.Context, tenantID string, limit int) ([]*domain.Assessment, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, tenant_id, startup_name, contact_email, status, created_at, completed_at
		FROM assessments
		WHERE tenant_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		var contactEmail sql.NullString
		var completedAt sql.NullTime

		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.StartupName, &contactEmail,
			&a.Status, &a.CreatedAt, &completedAt,
		); err != nil {
			return nil, err
		}

		a.ContactEmail = contactEmail.String
		if completedAt.Valid {
			a.CompletedAt = &completedAt.Time
		}
		assessments = append(assessments, &a)
	}

	return assessments, rows.Err()
}

// UpdateAssessmentStatus transitions an assessment's lifecycle status.
func (r *SQLRepository) UpdateAssessmentStatus(ctx context.Context, tenantID string, assessmentID string, status string, completedAt *time.Time) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		UPDATE assessments
		SET status = ?, completed_at = ?
		WHERE tenant_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, r.rebind(query), status, completedAt, tenantID, assessmentID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// SaveResult stores a full assessment result with tenant isolation. Saving
// twice for the same assessment replaces the previous result: re-running an
// assessment is idempotent at the storage layer.
func (r *SQLRepository) SaveResult(ctx context.Context, tenantID string, result *domain.AssessmentResult) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	facts, _ := json.Marshal(result.Facts)
	gaps, _ := json.Marshal(result.Gaps)
	score, _ := json.Marshal(result.Score)
	recommendations, _ := json.Marshal(result.Resources)
	articleMatches, _ := json.Marshal(result.ArticleMatches)
	documents, _ := json.Marshal(result.DocumentsAnalyzed)
	metadata, _ := json.Marshal(result.Metadata)

	query := `
		INSERT INTO assessment_results (
			assessment_id, tenant_id, startup_name, facts, gaps, score,
			recommendations, article_matches, documents_analyzed, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(assessment_id, tenant_id) DO UPDATE SET
			startup_name = excluded.startup_name,
			facts = excluded.facts,
			gaps = excluded.gaps,
			score = excluded.score,
			recommendations = excluded.recommendations,
			article_matches = excluded.article_matches,
			documents_analyzed = excluded.documents_analyzed,
			metadata = excluded.metadata,
			created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		result.AssessmentID, tenantID, result.StartupName,
		string(facts), string(gaps), string(score),
		string(recommendations), string(articleMatches), string(documents),
		string(metadata), result.CreatedAt,
	)
	return err
}

// GetResult retrieves an assessment result with tenant isolation.
func (r *SQLRepository) GetResult(ctx context.Context, tenantID string, assessmentID string) (*domain.AssessmentResult, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT assessment_id, tenant_id, startup_name, facts, gaps, score,
			   recommendations, article_matches, documents_analyzed, metadata, created_at
		FROM assessment_results
		WHERE tenant_id = ? AND assessment_id = ?
	`

	var result domain.AssessmentResult
	var facts, gaps, score, recommendations, metadata string
	var articleMatches, documents sql.NullString

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, assessmentID).Scan(
		&result.AssessmentID, &result.TenantID, &result.StartupName,
		&facts, &gaps, &score, &recommendations,
		&articleMatches, &documents, &metadata, &result.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(facts), &result.Facts)
	json.Unmarshal([]byte(gaps), &result.Gaps)
	json.Unmarshal([]byte(score), &result.Score)
	json.Unmarshal([]byte(recommendations), &result.Resources)
	json.Unmarshal([]byte(metadata), &result.Metadata)
	if articleMatches.Valid {
		json.Unmarshal([]byte(articleMatches.String), &result.ArticleMatches)
	}
	if documents.Valid {
		json.Unmarshal([]byte(documents.String), &result.DocumentsAnalyzed)
	}

	return &result, nil
}

// SaveCheckConfig stores a custom check configuration with tenant isolation.
func (r *SQLRepository) SaveCheckConfig(ctx context.Context, tenantID string, check *domain.CheckConfig) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	enabled := 0
	if check.Enabled {
		enabled = 1
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO check_configs (
			id, tenant_id, name, description, version, expression,
			article_id, category, severity, status, gap_description,
			recommendation, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, tenant_id, version) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			expression = excluded.expression,
			article_id = excluded.article_id,
			category = excluded.category,
			severity = excluded.severity,
			status = excluded.status,
			gap_description = excluded.gap_description,
			recommendation = excluded.recommendation,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		check.ID, tenantID, check.Name, check.Description,
		check.Version, check.Expression,
		check.ArticleID, check.Category, check.Severity, check.Status,
		check.GapDescription, check.Recommendation, enabled,
		now, now,
	)
	return err
}

// GetCheckConfig retrieves a check configuration with tenant isolation.
func (r *SQLRepository) GetCheckConfig(ctx context.Context, tenantID string, checkID string) (*domain.CheckConfig, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, name, description, version, expression,
			   article_id, category, severity, status, gap_description,
			   recommendation, enabled
		FROM check_configs
		WHERE tenant_id = ? AND id = ? AND enabled = 1
		ORDER BY version DESC
		LIMIT 1
	`

	var cfg domain.CheckConfig
	var enabled int

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, checkID).Scan(
		&cfg.ID, &cfg.TenantID, &cfg.Name, &cfg.Description,
		&cfg.Version, &cfg.Expression,
		&cfg.ArticleID, &cfg.Category, &cfg.Severity, &cfg.Status,
		&cfg.GapDescription, &cfg.Recommendation, &enabled,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cfg.Enabled = enabled == 1

	return &cfg, nil
}

// ListCheckConfigs retrieves all active check configurations for a tenant.
func (r *SQLRepository) ListCheckConfigs(ctx context.Context, tenantID string) ([]*domain.CheckConfig, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, name, description, version, expression,
			   article_id, category, severity, status, gap_description,
			   recommendation, enabled
		FROM check_configs
		WHERE tenant_id = ? AND enabled = 1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.CheckConfig
	for rows.Next() {
		var cfg domain.CheckConfig
		var enabled int

		if err := rows.Scan(
			&cfg.ID, &cfg.TenantID, &cfg.Name, &cfg.Description,
			&cfg.Version, &cfg.Expression,
			&cfg.ArticleID, &cfg.Category, &cfg.Severity, &cfg.Status,
			&cfg.GapDescription, &cfg.Recommendation, &enabled,
		); err != nil {
			return nil, err
		}

		cfg.Enabled = enabled == 1
		configs = append(configs, &cfg)
	}

	return configs, rows.Err()
}

// Ping checks database connectivity.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL.
func (r *SQLRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}

	// Convert ? to $1, $2, etc.
	var result []byte
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", n)...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}
