package domain

import (
	"context"
	"time"
)

// Repository defines the interface for data persistence.
// All methods require tenantID for strict multi-tenancy isolation.
type Repository interface {
	// Assessment lifecycle records
	SaveAssessment(ctx context.Context, tenantID string, a *Assessment) error
	GetAssessment(ctx context.Context, tenantID string, assessmentID string) (*Assessment, error)
	ListAssessments(ctx context.Context, tenantID string, limit int) ([]*Assessment, error)
	UpdateAssessmentStatus(ctx context.Context, tenantID string, assessmentID string, status string, completedAt *time.Time) error

	// Assessment results
	SaveResult(ctx context.Context, tenantID string, result *AssessmentResult) error
	GetResult(ctx context.Context, tenantID string, assessmentID string) (*AssessmentResult, error)

	// Custom compliance check configurations
	SaveCheckConfig(ctx context.Context, tenantID string, check *CheckConfig) error
	GetCheckConfig(ctx context.Context, tenantID string, checkID string) (*CheckConfig, error)
	ListCheckConfigs(ctx context.Context, tenantID string) ([]*CheckConfig, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	// Driver is the database driver: "sqlite" or "postgres"
	Driver string

	// SQLite specific
	SQLitePath string

	// PostgreSQL specific
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
