// Package domain defines the core interfaces and types for FinRegX.
package domain

// FactSet is the normalized evidence extracted from a startup's documents.
// Every field is independently optional: a nil pointer (or nil slice) means
// the corresponding fact was never evidenced in the text, which downstream
// rules treat differently from a confirmed negative finding.
type FactSet struct {
	Capital           *CapitalFacts `json:"capital,omitempty"`
	DataLocations     []string      `json:"dataLocations,omitempty"`
	ComplianceOfficer *OfficerFacts `json:"complianceOfficer,omitempty"`
	AMLPolicy         *AMLFacts     `json:"amlPolicy,omitempty"`

	// BusinessCategory is one of the Category* constants, or empty when no
	// category keyword was found.
	BusinessCategory string `json:"businessCategory,omitempty"`
}

// CapitalFacts holds extracted capital figures in QAR.
// Either field may be nil when no credible figure was found for it.
type CapitalFacts struct {
	Authorized *float64 `json:"authorizedCapital,omitempty"`
	PaidUp     *float64 `json:"paidUpCapital,omitempty"`
}

// OfficerFacts records whether a dedicated compliance officer was evidenced.
type OfficerFacts struct {
	HasOfficer bool   `json:"hasOfficer"`
	Details    string `json:"details,omitempty"`
}

// AMLFacts records the maturity of the AML/CFT programme as evidenced.
type AMLFacts struct {
	HasPolicy     bool   `json:"hasPolicy"`
	IsApproved    bool   `json:"isApproved"`
	HasMonitoring bool   `json:"hasMonitoring"`
	Details       string `json:"details,omitempty"`
}

// Business categories recognized by the capital-requirement rules.
const (
	CategoryPSP     = "Category 1" // payment service providers
	CategoryLending = "Category 2" // marketplace lending / crowdfunding
	CategoryWealth  = "Category 3" // digital wealth management
)
