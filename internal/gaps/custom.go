package gaps

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/kb"
)

// CheckEngine is the CEL-based engine for tenant-defined compliance checks.
// Checks are stored in the repository and hot-reloaded; a check whose
// expression evaluates to true emits a gap alongside the built-in rules.
type CheckEngine struct {
	mu             sync.RWMutex
	env            *cel.Env
	compiledChecks map[string]*CompiledCheck
	maxWorkers     int
}

// CompiledCheck holds a pre-compiled CEL program.
type CompiledCheck struct {
	Config  *domain.CheckConfig
	Program cel.Program
}

// NewCheckEngine creates a new custom-check engine.
func NewCheckEngine(maxWorkers int) (*CheckEngine, error) {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	// CEL environment exposing the extracted fact set. Absent numeric
	// facts default to 0 and absent booleans to false, so expressions
	// can be written without presence guards.
	env, err := cel.NewEnv(
		cel.Variable("facts", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("paid_up_capital", cel.DoubleType),
		cel.Variable("authorized_capital", cel.DoubleType),
		cel.Variable("has_capital", cel.BoolType),
		cel.Variable("has_officer", cel.BoolType),
		cel.Variable("has_aml_policy", cel.BoolType),
		cel.Variable("aml_approved", cel.BoolType),
		cel.Variable("has_monitoring", cel.BoolType),
		cel.Variable("business_category", cel.StringType),
		cel.Variable("data_locations", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &CheckEngine{
		env:            env,
		compiledChecks: make(map[string]*CompiledCheck),
		maxWorkers:     maxWorkers,
	}, nil
}

// ValidateCheck compiles and validates a check without mutating loaded checks.
func (e *CheckEngine) ValidateCheck(cfg *domain.CheckConfig) error {
	if cfg == nil {
		return fmt.Errorf("check config is required")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	_, err := e.compileCheck(cfg)
	return err
}

// LoadCheck compiles and loads a check into the engine.
func (e *CheckEngine) LoadCheck(cfg *domain.CheckConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	compiled, err := e.compileCheck(cfg)
	if err != nil {
		return err
	}

	e.compiledChecks[cfg.ID] = compiled

	return nil
}

// LoadChecks compiles and loads multiple checks.
func (e *CheckEngine) LoadChecks(configs []*domain.CheckConfig) error {
	for _, cfg := range configs {
		if cfg.Enabled {
			if err := e.LoadCheck(cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReloadChecks clears all existing checks and loads new ones. This enables
// hot-reloading of checks from the database.
func (e *CheckEngine) ReloadChecks(configs []*domain.CheckConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	newChecks := make(map[string]*CompiledCheck)

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}

		compiled, err := e.compileCheck(cfg)
		if err != nil {
			return err
		}
		newChecks[cfg.ID] = compiled
	}

	e.compiledChecks = newChecks

	return nil
}

// EvaluateAll evaluates all loaded checks against the fact set in parallel
// and returns the gaps for checks that fired. Results are ordered by check
// ID so output is deterministic. A check whose evaluation errors is skipped;
// custom checks must never fail an assessment.
func (e *CheckEngine) EvaluateAll(ctx context.Context, facts domain.FactSet) []domain.Gap {
	e.mu.RLock()
	checks := make([]*CompiledCheck, 0, len(e.compiledChecks))
	for _, check := range e.compiledChecks {
		checks = append(checks, check)
	}
	e.mu.RUnlock()

	if len(checks) == 0 {
		return nil
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].Config.ID < checks[j].Config.ID
	})

	activation := buildActivation(facts)

	fired := make([]bool, len(checks))
	var wg sync.WaitGroup

	sem := make(chan struct{}, e.maxWorkers)

	for i, check := range checks {
		wg.Add(1)
		go func(idx int, c *CompiledCheck) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			out, _, err := c.Program.Eval(activation)
			if err != nil {
				return
			}
			fired[idx] = toBool(out)
		}(i, check)
	}

	wg.Wait()

	var gaps []domain.Gap
	for i, check := range checks {
		if fired[i] {
			gaps = append(gaps, checkGap(check.Config))
		}
	}
	return gaps
}

// buildActivation flattens the fact set into CEL activation variables.
func buildActivation(facts domain.FactSet) map[string]any {
	var paidUp, authorized float64
	hasCapital := facts.Capital != nil
	if hasCapital {
		if facts.Capital.PaidUp != nil {
			paidUp = *facts.Capital.PaidUp
		}
		if facts.Capital.Authorized != nil {
			authorized = *facts.Capital.Authorized
		}
	}

	hasOfficer := facts.ComplianceOfficer != nil && facts.ComplianceOfficer.HasOfficer

	var hasPolicy, approved, monitoring bool
	if facts.AMLPolicy != nil {
		hasPolicy = facts.AMLPolicy.HasPolicy
		approved = facts.AMLPolicy.IsApproved
		monitoring = facts.AMLPolicy.HasMonitoring
	}

	locations := facts.DataLocations
	if locations == nil {
		locations = []string{}
	}

	return map[string]any{
		"facts": map[string]any{
			"paid_up_capital":    paidUp,
			"authorized_capital": authorized,
			"has_officer":        hasOfficer,
			"has_aml_policy":     hasPolicy,
			"business_category":  facts.BusinessCategory,
		},
		"paid_up_capital":    paidUp,
		"authorized_capital": authorized,
		"has_capital":        hasCapital,
		"has_officer":        hasOfficer,
		"has_aml_policy":     hasPolicy,
		"aml_approved":       approved,
		"has_monitoring":     monitoring,
		"business_category":  facts.BusinessCategory,
		"data_locations":     locations,
	}
}

// checkGap builds the gap emitted by a fired check. Article metadata is
// resolved from the knowledge base when the check references an article.
func checkGap(cfg *domain.CheckConfig) domain.Gap {
	gap := domain.Gap{
		GapID:          cfg.ID,
		ArticleID:      cfg.ArticleID,
		Category:       cfg.Category,
		Severity:       cfg.Severity,
		Status:         cfg.Status,
		Description:    cfg.GapDescription,
		Recommendation: cfg.Recommendation,
	}

	if article, ok := kb.LookupArticle(cfg.ArticleID); ok {
		gap.ArticleName = article.Title
		gap.Requirement = article.Requirement
	} else {
		gap.ArticleName = cfg.Name
	}

	if gap.Severity == "" {
		gap.Severity = domain.SeverityMedium
	}
	if gap.Status == "" {
		gap.Status = domain.StatusViolation
	}

	return gap
}

// toBool converts a CEL result to a fired/not-fired decision.
func toBool(val ref.Val) bool {
	v, ok := val.(types.Bool)
	return ok && bool(v)
}

// ChecksCount returns the number of loaded checks.
func (e *CheckEngine) ChecksCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.compiledChecks)
}

// GetLoadedChecks returns the currently loaded check configurations.
func (e *CheckEngine) GetLoadedChecks() []*domain.CheckConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()

	checks := make([]*domain.CheckConfig, 0, len(e.compiledChecks))
	for _, compiled := range e.compiledChecks {
		checks = append(checks, compiled.Config)
	}
	return checks
}

// Close cleans up the engine.
func (e *CheckEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compiledChecks = make(map[string]*CompiledCheck)
	return nil
}

func (e *CheckEngine) compileCheck(cfg *domain.CheckConfig) (*CompiledCheck, error) {
	ast, issues := e.env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile check %s: %w", cfg.ID, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("check %s: expression must return bool, got %s", cfg.ID, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for check %s: %w", cfg.ID, err)
	}

	return &CompiledCheck{
		Config:  cfg,
		Program: program,
	}, nil
}
