package recommend

import (
	"reflect"
	"testing"

	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/kb"
)

func TestExpertsDedup(t *testing.T) {
	// Three gaps referencing the same expert fold into one entry
	// carrying all three gap IDs.
	gaps := []domain.Gap{
		{GapID: domain.GapAMLPolicyMissing, ExpertID: kb.ExpertAML},
		{GapID: domain.GapNoMonitoring, ExpertID: kb.ExpertAML},
		{GapID: "CHECK_CUSTOM_AML", ExpertID: kb.ExpertAML},
	}

	experts := Experts(gaps)

	if len(experts) != 1 {
		t.Fatalf("expected 1 expert, got %d", len(experts))
	}
	e := experts[0]
	if e.ExpertID != kb.ExpertAML {
		t.Errorf("expected %s, got %s", kb.ExpertAML, e.ExpertID)
	}
	if len(e.RelevantGaps) != 3 {
		t.Errorf("expected 3 relevant gaps, got %d", len(e.RelevantGaps))
	}
	if e.Name == "" || e.Specialization == "" {
		t.Errorf("expert metadata not resolved: %+v", e)
	}
}

func TestExpertsFirstReferenceOrder(t *testing.T) {
	gaps := []domain.Gap{
		{GapID: domain.GapAMLPolicyMissing, ExpertID: kb.ExpertAML},
		{GapID: domain.GapDataResidency, ExpertID: kb.ExpertDataResidency},
		{GapID: domain.GapNoMonitoring, ExpertID: kb.ExpertAML},
	}

	experts := Experts(gaps)

	if len(experts) != 2 {
		t.Fatalf("expected 2 experts, got %d", len(experts))
	}
	if experts[0].ExpertID != kb.ExpertAML || experts[1].ExpertID != kb.ExpertDataResidency {
		t.Errorf("experts not in first-reference order: %s, %s",
			experts[0].ExpertID, experts[1].ExpertID)
	}
}

func TestExpertsUnknownIDSkipped(t *testing.T) {
	gaps := []domain.Gap{
		{GapID: "g1", ExpertID: "EXPERT_NOBODY"},
	}
	if experts := Experts(gaps); len(experts) != 0 {
		t.Errorf("unknown expert must be skipped, got %+v", experts)
	}
}

func TestProgramsAlwaysIncludeAccelerator(t *testing.T) {
	programs := Programs(nil)

	if len(programs) != 1 {
		t.Fatalf("expected only the accelerator, got %d programs", len(programs))
	}
	p := programs[0]
	if p.ProgramID != kb.ProgramAccelerator {
		t.Errorf("expected %s, got %s", kb.ProgramAccelerator, p.ProgramID)
	}
	if p.RelevantGaps == nil || len(p.RelevantGaps) != 0 {
		t.Errorf("accelerator must carry an empty (non-nil) gap list, got %v", p.RelevantGaps)
	}
}

func TestProgramsGapDrivenPlusAccelerator(t *testing.T) {
	gaps := []domain.Gap{
		{GapID: domain.GapAMLPolicyMissing, ProgramID: kb.ProgramAMLWorkshop},
		{GapID: domain.GapNoMonitoring, ProgramID: kb.ProgramAMLWorkshop},
	}

	programs := Programs(gaps)

	if len(programs) != 2 {
		t.Fatalf("expected workshop + accelerator, got %d", len(programs))
	}
	if programs[0].ProgramID != kb.ProgramAMLWorkshop {
		t.Errorf("expected workshop first, got %s", programs[0].ProgramID)
	}
	if !reflect.DeepEqual(programs[0].RelevantGaps, []string{domain.GapAMLPolicyMissing, domain.GapNoMonitoring}) {
		t.Errorf("unexpected relevant gaps: %v", programs[0].RelevantGaps)
	}
	if programs[1].ProgramID != kb.ProgramAccelerator {
		t.Errorf("accelerator must come last, got %s", programs[1].ProgramID)
	}
}

func TestRecommendIdempotent(t *testing.T) {
	gaps := []domain.Gap{
		{GapID: domain.GapDataResidency, ExpertID: kb.ExpertDataResidency},
		{GapID: domain.GapAMLPolicyMissing, ExpertID: kb.ExpertAML, ProgramID: kb.ProgramAMLWorkshop},
	}

	first := Recommend(gaps)
	second := Recommend(gaps)

	if !reflect.DeepEqual(first, second) {
		t.Error("recommend is not deterministic for identical input")
	}
}

func TestRecommendNoGaps(t *testing.T) {
	set := Recommend(nil)

	if len(set.Experts) != 0 {
		t.Errorf("expected no experts, got %+v", set.Experts)
	}
	if len(set.Programs) != 1 || set.Programs[0].ProgramID != kb.ProgramAccelerator {
		t.Errorf("expected only the accelerator, got %+v", set.Programs)
	}
}
