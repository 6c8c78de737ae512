package kb

import "github.com/regtech-labs/finregx/internal/domain"

// articleOrder preserves the framework's numbering for listings.
var articleOrder = []string{
	"1.1.1", "1.1.2", "1.1.3", "1.1.4",
	"1.2.1", "1.2.2",
	"2.1.1", "2.1.2",
	"2.2.1", "2.2.2",
}

var articles = map[string]Article{
	"1.1.1": {
		ID:          "1.1.1",
		Title:       "Article 1.1.1: Mandatory Verification",
		Category:    domain.CategoryAML,
		Requirement: "Enhanced Customer Due Diligence (CDD) for users transacting more than QAR 10,000 per calendar month",
		Keywords:    []string{"CDD", "due diligence", "verification", "QAR 10000", "monthly transactions"},
	},
	"1.1.2": {
		ID:          "1.1.2",
		Title:       "Article 1.1.2: Source of Funds",
		Category:    domain.CategoryAML,
		Requirement: "For high-risk customers or transactions exceeding QAR 50,000, must obtain and maintain verified source of funds and wealth",
		Keywords:    []string{"source of funds", "source of wealth", "QAR 50000", "high-risk", "verification"},
	},
	"1.1.3": {
		ID:          "1.1.3",
		Title:       "Article 1.1.3: KYC Documentation",
		Category:    domain.CategoryAML,
		Requirement: "Minimum two forms of government-issued ID verified digitally. Proof of residency required for international users",
		Keywords:    []string{"KYC", "identification", "government ID", "proof of residency", "international users"},
	},
	"1.1.4": {
		ID:          "1.1.4",
		Title:       "Article 1.1.4: Policy Document",
		Category:    domain.CategoryAML,
		Requirement: "Board-approved Anti-Money Laundering (AML) and Counter-Financing of Terrorism (CFT) Policy with transaction monitoring rules",
		Keywords:    []string{"AML policy", "CFT policy", "board-approved", "transaction monitoring", "policy document"},
	},
	"1.2.1": {
		ID:          "1.2.1",
		Title:       "Article 1.2.1: Transaction Monitoring",
		Category:    domain.CategoryAML,
		Requirement: "Automated transaction monitoring system to identify and flag suspicious activity based on patterns, velocity, and deviation",
		Keywords:    []string{"transaction monitoring", "automated system", "suspicious activity", "patterns", "velocity"},
	},
	"1.2.2": {
		ID:          "1.2.2",
		Title:       "Article 1.2.2: Reporting",
		Category:    domain.CategoryAML,
		Requirement: "All Suspicious Transaction Reports (STRs) must be filed within 48 hours of detection",
		Keywords:    []string{"STR", "suspicious transaction", "reporting", "48 hours", "filing"},
	},
	"2.1.1": {
		ID:          "2.1.1",
		Title:       "Article 2.1.1: Data Residency",
		Category:    domain.CategoryDataProtection,
		Requirement: "All customer PII and transactional data related to Qatari citizens and residents MUST be stored on servers physically located within the State of Qatar",
		Keywords:    []string{"data residency", "Qatar", "local storage", "PII", "transactional data", "server location"},
	},
	"2.1.2": {
		ID:          "2.1.2",
		Title:       "Article 2.1.2: Consent",
		Category:    domain.CategoryDataProtection,
		Requirement: "Explicit, informed consent must be obtained for sharing any data with third-party service providers including cloud providers",
		Keywords:    []string{"consent", "explicit consent", "third-party", "data sharing", "cloud providers"},
	},
	"2.2.1": {
		ID:          "2.2.1",
		Title:       "Article 2.2.1: Compliance Officer",
		Category:    domain.CategoryGovernance,
		Requirement: "Must appoint designated, independent Compliance Officer whose CV and credentials must be QCB-approved prior to licensing",
		Keywords:    []string{"compliance officer", "designated officer", "independent", "QCB approval", "credentials"},
	},
	"2.2.2": {
		ID:          "2.2.2",
		Title:       "Article 2.2.2: Annual Audit",
		Category:    domain.CategoryGovernance,
		Requirement: "Annual external audit of all technology systems and compliance policies is mandatory",
		Keywords:    []string{"annual audit", "external audit", "technology systems", "compliance policies", "mandatory"},
	},
}
