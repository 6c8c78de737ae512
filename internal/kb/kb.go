// Package kb holds the static regulatory knowledge base: QCB articles,
// capital thresholds per business category, and remediation resources.
// All tables are immutable after process start; rule code reads them only
// through the lookup accessors defined here.
package kb

// Article is one regulatory article of the QCB fintech framework.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Requirement string   `json:"requirement"`
	Keywords    []string `json:"keywords"`
}

// CapitalRequirement is the minimum paid-up capital for a business category.
type CapitalRequirement struct {
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	MinimumCapital float64 `json:"minimumCapital"` // QAR
	Description    string  `json:"description"`
}

// Expert is a remediation expert resource.
type Expert struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	ArticleIDs     []string `json:"articleIds"`
	Contact        string   `json:"contact"`
}

// Program is a remediation support program resource.
type Program struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FocusAreas  []string `json:"focusAreas"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Website     string   `json:"website"`
}

// LookupArticle returns the article for the given id.
func LookupArticle(id string) (Article, bool) {
	a, ok := articles[id]
	return a, ok
}

// LookupCapitalRequirement returns the capital threshold for a business
// category ("Category 1" etc.).
func LookupCapitalRequirement(category string) (CapitalRequirement, bool) {
	c, ok := capitalRequirements[category]
	return c, ok
}

// LookupExpert returns the expert resource for the given id.
func LookupExpert(id string) (Expert, bool) {
	e, ok := experts[id]
	return e, ok
}

// LookupProgram returns the program resource for the given id.
func LookupProgram(id string) (Program, bool) {
	p, ok := programs[id]
	return p, ok
}

// Articles returns all articles, for read-only API listing.
func Articles() []Article {
	out := make([]Article, 0, len(articles))
	for _, id := range articleOrder {
		out = append(out, articles[id])
	}
	return out
}

// CapitalRequirements returns all capital tiers, for read-only API listing.
func CapitalRequirements() []CapitalRequirement {
	out := make([]CapitalRequirement, 0, len(capitalRequirements))
	for _, cat := range categoryOrder {
		out = append(out, capitalRequirements[cat])
	}
	return out
}

// Resources returns all expert and program resources.
func Resources() ([]Expert, []Program) {
	es := make([]Expert, 0, len(experts))
	for _, id := range expertOrder {
		es = append(es, experts[id])
	}
	ps := make([]Program, 0, len(programs))
	for _, id := range programOrder {
		ps = append(ps, programs[id])
	}
	return es, ps
}
