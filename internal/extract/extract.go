// Package extract implements pattern-based entity extraction from raw
// document text. Each fact type has its own matcher function returning an
// optional typed value; Extract composes them into a FactSet. All matchers
// are total over well-formed text: malformed or empty input yields a FactSet
// with every field absent.
package extract

import (
	"sort"
	"strings"

	"github.com/regtech-labs/finregx/internal/domain"
)

// Extract scans the given text and returns the normalized fact set.
func Extract(text string) domain.FactSet {
	return domain.FactSet{
		Capital:           Capital(text),
		DataLocations:     DataLocations(text),
		ComplianceOfficer: ComplianceOfficer(text),
		AMLPolicy:         AMLPolicy(text),
		BusinessCategory:  BusinessCategory(text),
	}
}

// ExtractAll combines all document texts and extracts entities from the
// concatenation. Document order does not affect the result since every
// matcher scans the combined text holistically; names are sorted only to
// keep the join deterministic.
func ExtractAll(documents map[string]string) domain.FactSet {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)

	texts := make([]string, 0, len(names))
	for _, name := range names {
		texts = append(texts, documents[name])
	}

	return Extract(strings.Join(texts, "\n\n"))
}
