package gaps

import (
	"context"
	"testing"

	"github.com/regtech-labs/finregx/internal/domain"
)

func TestCheckEngineCreation(t *testing.T) {
	engine, err := NewCheckEngine(5)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	defer engine.Close()

	if engine.ChecksCount() != 0 {
		t.Errorf("expected 0 checks, got %d", engine.ChecksCount())
	}
}

func TestLoadCheck(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	check := &domain.CheckConfig{
		ID:         "CHECK_CAP_RATIO",
		Name:       "Authorized vs paid-up ratio",
		Expression: "authorized_capital > 0.0 && paid_up_capital < authorized_capital / 2.0",
		Category:   domain.CategoryCapital,
		Severity:   domain.SeverityMedium,
		Enabled:    true,
	}

	if err := engine.LoadCheck(check); err != nil {
		t.Fatalf("failed to load check: %v", err)
	}
	if engine.ChecksCount() != 1 {
		t.Errorf("expected 1 check, got %d", engine.ChecksCount())
	}
}

func TestLoadInvalidCheck(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	check := &domain.CheckConfig{
		ID:         "bad-check",
		Expression: "this is not valid CEL !!!",
		Enabled:    true,
	}

	if err := engine.LoadCheck(check); err == nil {
		t.Error("expected error for invalid CEL expression")
	}
}

func TestLoadNonBoolCheck(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	check := &domain.CheckConfig{
		ID:         "numeric-check",
		Expression: "paid_up_capital * 2.0",
		Enabled:    true,
	}

	if err := engine.LoadCheck(check); err == nil {
		t.Error("expected error for non-bool expression")
	}
}

func TestEvaluateCheckFires(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	check := &domain.CheckConfig{
		ID:             "CHECK_LENDING_CAPITAL",
		Name:           "Lending capital buffer",
		Expression:     `business_category == "Category 2" && paid_up_capital < 10000000.0`,
		ArticleID:      "1.2.2",
		Category:       domain.CategoryCapital,
		Severity:       domain.SeverityMedium,
		Status:         domain.StatusDeficiency,
		GapDescription: "Lending platform capital below internal buffer",
		Recommendation: "Raise additional capital before scaling loan book",
		Enabled:        true,
	}
	if err := engine.LoadCheck(check); err != nil {
		t.Fatalf("failed to load check: %v", err)
	}

	paidUp := 8_000_000.0
	facts := domain.FactSet{
		BusinessCategory: domain.CategoryLending,
		Capital:          &domain.CapitalFacts{PaidUp: &paidUp},
	}

	gaps := engine.EvaluateAll(context.Background(), facts)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	g := gaps[0]
	if g.GapID != "CHECK_LENDING_CAPITAL" {
		t.Errorf("expected gap ID CHECK_LENDING_CAPITAL, got %s", g.GapID)
	}
	if g.ArticleName == "" || g.Requirement == "" {
		t.Errorf("expected article metadata resolved from 1.2.2, got %+v", g)
	}
	if g.Description != check.GapDescription {
		t.Errorf("expected description %q, got %q", check.GapDescription, g.Description)
	}
}

func TestEvaluateCheckDoesNotFire(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	engine.LoadCheck(&domain.CheckConfig{
		ID:         "CHECK_NO_OFFICER",
		Expression: "!has_officer",
		Enabled:    true,
	})

	facts := domain.FactSet{
		ComplianceOfficer: &domain.OfficerFacts{HasOfficer: true},
	}

	if gaps := engine.EvaluateAll(context.Background(), facts); len(gaps) != 0 {
		t.Errorf("expected no gaps, got %+v", gaps)
	}
}

func TestEvaluateAbsentFactsDefaultToZero(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	engine.LoadCheck(&domain.CheckConfig{
		ID:         "CHECK_ANY_CAPITAL",
		Expression: "paid_up_capital == 0.0 && !has_capital && size(data_locations) == 0",
		Enabled:    true,
	})

	gaps := engine.EvaluateAll(context.Background(), domain.FactSet{})
	if len(gaps) != 1 {
		t.Fatalf("expected check to fire on empty facts, got %d gaps", len(gaps))
	}
}

func TestEvaluateDeterministicOrder(t *testing.T) {
	engine, _ := NewCheckEngine(2)
	defer engine.Close()

	for _, id := range []string{"CHECK_C", "CHECK_A", "CHECK_B"} {
		engine.LoadCheck(&domain.CheckConfig{
			ID:         id,
			Expression: "true",
			Enabled:    true,
		})
	}

	for i := 0; i < 5; i++ {
		gaps := engine.EvaluateAll(context.Background(), domain.FactSet{})
		if len(gaps) != 3 {
			t.Fatalf("expected 3 gaps, got %d", len(gaps))
		}
		if gaps[0].GapID != "CHECK_A" || gaps[1].GapID != "CHECK_B" || gaps[2].GapID != "CHECK_C" {
			t.Fatalf("run %d: gaps not ordered by check ID: %s %s %s",
				i, gaps[0].GapID, gaps[1].GapID, gaps[2].GapID)
		}
	}
}

func TestReloadChecks(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	engine.LoadCheck(&domain.CheckConfig{ID: "old", Expression: "true", Enabled: true})

	configs := []*domain.CheckConfig{
		{ID: "new-1", Expression: "has_aml_policy", Enabled: true},
		{ID: "new-2", Expression: "false", Enabled: true},
		{ID: "disabled", Expression: "true", Enabled: false},
	}

	if err := engine.ReloadChecks(configs); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if engine.ChecksCount() != 2 {
		t.Errorf("expected 2 checks after reload, got %d", engine.ChecksCount())
	}

	for _, cfg := range engine.GetLoadedChecks() {
		if cfg.ID == "old" {
			t.Error("old check should be gone after reload")
		}
	}
}

func TestValidateCheckDoesNotLoad(t *testing.T) {
	engine, _ := NewCheckEngine(5)
	defer engine.Close()

	err := engine.ValidateCheck(&domain.CheckConfig{
		ID:         "validate-only",
		Expression: "has_monitoring",
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if engine.ChecksCount() != 0 {
		t.Errorf("validate must not load the check, count = %d", engine.ChecksCount())
	}
}
