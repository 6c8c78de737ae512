package kb

// Well-known resource identifiers referenced by the built-in gap rules.
const (
	ExpertDataResidency = "EXPERT_C101"
	ExpertAML           = "EXPERT_C102"

	ProgramAccelerator = "QDB_INCUBATOR_001"
	ProgramAMLWorkshop = "QDB_EXPERT_002"
)

var expertOrder = []string{ExpertDataResidency, ExpertAML}

var experts = map[string]Expert{
	ExpertDataResidency: {
		ID:             ExpertDataResidency,
		Name:           "Dr. Aisha Al-Mansoori",
		Specialization: "Data Residency and Cloud Compliance",
		ArticleIDs:     []string{"2.1.1"},
		Contact:        "aisha.almansoori@qdb.qa",
	},
	ExpertAML: {
		ID:             ExpertAML,
		Name:           "Mr. Karim Hassan",
		Specialization: "AML/CFT Policy Drafting and Training",
		ArticleIDs:     []string{"1.1.4", "1.2.1"},
		Contact:        "karim.hassan@qdb.qa",
	},
}

var programOrder = []string{ProgramAccelerator, ProgramAMLWorkshop}

var programs = map[string]Program{
	ProgramAccelerator: {
		ID:          ProgramAccelerator,
		Name:        "Fintech Regulatory Accelerator",
		FocusAreas:  []string{"Licensing Strategy", "Corporate Structure", "QCB Engagement"},
		Description: "Comprehensive program for fintech licensing preparation",
		Duration:    "12 weeks",
		Website:     "https://qdb.qa/fintech-accelerator",
	},
	ProgramAMLWorkshop: {
		ID:          ProgramAMLWorkshop,
		Name:        "AML Compliance Workshop Series",
		FocusAreas:  []string{"AML Policy Drafting", "Transaction Monitoring", "FATF Compliance"},
		Description: "Expert-led workshops on AML/CFT compliance",
		Duration:    "6 weeks",
		Website:     "https://qdb.qa/aml-workshop",
	},
}
