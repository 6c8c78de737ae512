package domain

// CheckConfig defines a custom compliance check. The expression is a CEL
// predicate over the extracted fact set; when it evaluates to true the
// configured gap is appended after the built-in rule sequence.
type CheckConfig struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`

	// Expression is the CEL predicate to evaluate, e.g.
	// "has_aml_policy && !has_monitoring".
	Expression string `json:"expression"`

	// Gap fields emitted when the predicate holds.
	ArticleID      string `json:"articleId"`
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`
	GapDescription string `json:"gapDescription"`
	Recommendation string `json:"recommendation"`

	Enabled bool `json:"enabled"`
}
