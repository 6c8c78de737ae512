package domain

// ScoreReport is the weighted readiness score derived from a gap list.
// It is stateless and recomputed on every run.
type ScoreReport struct {
	OverallScore   float64 `json:"overallScore"` // 0-100, two decimals
	ReadinessLevel string  `json:"readinessLevel"`
	ReadinessColor string  `json:"readinessColor"`

	CategoryScores    map[string]float64 `json:"categoryScores"` // 0-100, two decimals
	CategoryGapCounts map[string]int     `json:"categoryGapCounts"`

	TotalGaps          int `json:"totalGaps"`
	HighSeverityGaps   int `json:"highSeverityGaps"`
	MediumSeverityGaps int `json:"mediumSeverityGaps"`
	LowSeverityGaps    int `json:"lowSeverityGaps"`
}

// Readiness levels, ordered best to worst.
const (
	ReadinessExcellent = "EXCELLENT"
	ReadinessGood      = "GOOD"
	ReadinessModerate  = "MODERATE"
	ReadinessPoor      = "POOR"
	ReadinessCritical  = "CRITICAL"
)

// RecommendationSet maps detected gaps to remediation resources.
type RecommendationSet struct {
	Experts  []ExpertRecommendation  `json:"experts"`
	Programs []ProgramRecommendation `json:"programs"`
}

// ExpertRecommendation points at a knowledge-base expert and the gaps they
// address.
type ExpertRecommendation struct {
	ExpertID         string   `json:"expertId"`
	Name             string   `json:"name"`
	Specialization   string   `json:"specialization"`
	Contact          string   `json:"contact"`
	RelevantArticles []string `json:"relevantArticles"`
	RelevantGaps     []string `json:"relevantGaps"`
}

// ProgramRecommendation points at a knowledge-base support program.
type ProgramRecommendation struct {
	ProgramID    string   `json:"programId"`
	Name         string   `json:"name"`
	FocusAreas   []string `json:"focusAreas"`
	Description  string   `json:"description"`
	Duration     string   `json:"duration"`
	Website      string   `json:"website"`
	RelevantGaps []string `json:"relevantGaps"`
}

// ArticleMatch is a ranked semantic-similarity hit against a regulatory
// article. Matches enrich display context only; gap and score outcomes never
// depend on them.
type ArticleMatch struct {
	ArticleID  string  `json:"articleId"`
	Similarity float64 `json:"similarity"` // 0-1
}
