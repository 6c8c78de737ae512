// Package recommend maps compliance gaps to the experts and support
// programs that can close them.
package recommend

import (
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/kb"
)

// Experts maps gaps to expert recommendations. Each expert appears once,
// in the order of its first referencing gap, with every gap that references
// it folded into RelevantGaps.
func Experts(gaps []domain.Gap) []domain.ExpertRecommendation {
	var out []domain.ExpertRecommendation
	seen := make(map[string]bool)

	for _, gap := range gaps {
		if gap.ExpertID == "" || seen[gap.ExpertID] {
			continue
		}

		expert, ok := kb.LookupExpert(gap.ExpertID)
		if !ok {
			continue
		}

		var relevant []string
		for _, g := range gaps {
			if g.ExpertID == gap.ExpertID {
				relevant = append(relevant, g.GapID)
			}
		}

		out = append(out, domain.ExpertRecommendation{
			ExpertID:         expert.ID,
			Name:             expert.Name,
			Specialization:   expert.Specialization,
			Contact:          expert.Contact,
			RelevantArticles: expert.ArticleIDs,
			RelevantGaps:     relevant,
		})
		seen[gap.ExpertID] = true
	}

	return out
}

// Programs maps gaps to program recommendations with the same dedup and
// fold semantics as Experts. The general accelerator program is always
// appended, with no relevant gaps, so every report points somewhere.
func Programs(gaps []domain.Gap) []domain.ProgramRecommendation {
	var out []domain.ProgramRecommendation
	seen := make(map[string]bool)

	for _, gap := range gaps {
		if gap.ProgramID == "" || seen[gap.ProgramID] {
			continue
		}

		program, ok := kb.LookupProgram(gap.ProgramID)
		if !ok {
			continue
		}

		var relevant []string
		for _, g := range gaps {
			if g.ProgramID == gap.ProgramID {
				relevant = append(relevant, g.GapID)
			}
		}

		out = append(out, domain.ProgramRecommendation{
			ProgramID:    program.ID,
			Name:         program.Name,
			FocusAreas:   program.FocusAreas,
			Description:  program.Description,
			Duration:     program.Duration,
			Website:      program.Website,
			RelevantGaps: relevant,
		})
		seen[gap.ProgramID] = true
	}

	if !seen[kb.ProgramAccelerator] {
		program, _ := kb.LookupProgram(kb.ProgramAccelerator)
		out = append(out, domain.ProgramRecommendation{
			ProgramID:    program.ID,
			Name:         program.Name,
			FocusAreas:   program.FocusAreas,
			Description:  program.Description,
			Duration:     program.Duration,
			Website:      program.Website,
			RelevantGaps: []string{},
		})
	}

	return out
}

// Recommend builds the full recommendation set for a gap list. Pure and
// deterministic.
func Recommend(gaps []domain.Gap) domain.RecommendationSet {
	return domain.RecommendationSet{
		Experts:  Experts(gaps),
		Programs: Programs(gaps),
	}
}
