package domain

import "time"

// Assessment is the lifecycle record for one readiness assessment.
type Assessment struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	StartupName  string     `json:"startupName"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Assessment lifecycle statuses.
const (
	AssessmentCreated    = "created"
	AssessmentProcessing = "processing"
	AssessmentCompleted  = "completed"
	AssessmentFailed     = "failed"
)

// AssessmentResult is the full pipeline output for one assessment run.
// The caller persists it; the pipeline itself holds no cross-run state.
type AssessmentResult struct {
	AssessmentID string            `json:"assessmentId"`
	TenantID     string            `json:"tenantId"`
	StartupName  string            `json:"startupName"`
	Facts        FactSet           `json:"facts"`
	Gaps         []Gap             `json:"gaps"`
	Score        ScoreReport       `json:"score"`
	Resources    RecommendationSet `json:"recommendations"`

	// ArticleMatches is optional semantic enrichment, empty when the
	// semantic mapper is disabled or failed.
	ArticleMatches []ArticleMatch `json:"articleMatches,omitempty"`

	DocumentsAnalyzed []string  `json:"documentsAnalyzed"`
	CreatedAt         time.Time `json:"createdAt"`

	// Processing metadata
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata contains processing information for one run.
type ResultMetadata struct {
	TraceID       string `json:"traceId"`
	ExtractMs     int64  `json:"extractMs"`
	AnalyzeMs     int64  `json:"analyzeMs"`
	TotalMs       int64  `json:"totalMs"`
	ChecksRun     int    `json:"checksRun"`
	EngineVersion string `json:"engineVersion"`
}
