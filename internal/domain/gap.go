package domain

// Gap is one detected compliance deficiency. Gaps are pure output values:
// created once per assessment run, never mutated afterwards.
type Gap struct {
	GapID       string `json:"gapId"`
	ArticleID   string `json:"articleId"` // "N/A" when no article applies
	ArticleName string `json:"articleName"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`

	Description    string `json:"description"`
	Requirement    string `json:"requirement"`
	Recommendation string `json:"recommendation"`

	// Resource references, resolved by the recommendation engine.
	ExpertID  string `json:"expertId,omitempty"`
	ProgramID string `json:"programId,omitempty"`

	// Capital figures, set only on DEFICIENCY gaps.
	CurrentCapital  *float64 `json:"currentCapital,omitempty"`
	RequiredCapital *float64 `json:"requiredCapital,omitempty"`
	Shortfall       *float64 `json:"shortfall,omitempty"`
}

// Gap severities.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// Gap statuses - the closed set of rule outcome kinds.
const (
	StatusMissingInfo     = "MISSING_INFO"
	StatusViolation       = "VIOLATION"
	StatusMissingRole     = "MISSING_ROLE"
	StatusDeficiency      = "DEFICIENCY"
	StatusMissingDocument = "MISSING_DOCUMENT"
	StatusIncomplete      = "INCOMPLETE"
	StatusMissingSystem   = "MISSING_SYSTEM"
)

// Regulatory categories used for article classification and score weighting.
const (
	CategoryAML            = "AML"
	CategoryDataProtection = "Data Protection"
	CategoryGovernance     = "Governance"
	CategoryCapital        = "Capital"
)

// Well-known gap identifiers emitted by the built-in rule sequence.
const (
	GapDataResidency     = "GAP_DATA_001"
	GapComplianceOfficer = "GAP_GOV_001"
	GapCategoryUnknown   = "GAP_CAP_001"
	GapCapitalMissing    = "GAP_CAP_002"
	GapCapitalShortfall  = "GAP_CAP_003"
	GapAMLPolicyMissing  = "GAP_AML_001"
	GapAMLNotApproved    = "GAP_AML_002"
	GapNoMonitoring      = "GAP_AML_003"
)
