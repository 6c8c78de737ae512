// Package pipeline runs one readiness assessment end to end: extraction,
// gap analysis, scoring and recommendations, with optional semantic article
// mapping. Both the synchronous API path and the async worker feed into the
// same processor so the two tiers cannot drift apart.
package pipeline

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/extract"
	"github.com/regtech-labs/finregx/internal/gaps"
	"github.com/regtech-labs/finregx/internal/recommend"
	"github.com/regtech-labs/finregx/internal/scoring"
	"github.com/regtech-labs/finregx/internal/semantic"
)

const engineVersion = "finregx-1.0"

// Processor runs the assessment pipeline. The check engine and semantic
// mapper are optional: without them the built-in rule sequence alone drives
// the result.
type Processor struct {
	checks *gaps.CheckEngine
	mapper *semantic.Mapper

	// SemanticThreshold is the minimum similarity for article matches.
	SemanticThreshold float64
}

// NewProcessor creates a pipeline processor.
func NewProcessor(checks *gaps.CheckEngine, mapper *semantic.Mapper, semanticThreshold float64) *Processor {
	if semanticThreshold <= 0 {
		semanticThreshold = 0.3
	}
	return &Processor{
		checks:            checks,
		mapper:            mapper,
		SemanticThreshold: semanticThreshold,
	}
}

// Input contains everything needed for one assessment run.
type Input struct {
	TenantID     string
	AssessmentID string
	StartupName  string
	TraceID      string

	// Documents maps document name to its extracted text content.
	Documents map[string]string

	StartTime time.Time
}

// Process runs the full pipeline. It never fails: extraction and analysis
// are total over well-formed text, and the optional stages degrade to empty
// output on error.
func (p *Processor) Process(ctx context.Context, input *Input) *domain.AssessmentResult {
	if input.StartTime.IsZero() {
		input.StartTime = time.Now()
	}

	extractStart := time.Now()
	facts := extract.ExtractAll(input.Documents)
	extractMs := time.Since(extractStart).Milliseconds()

	analyzeStart := time.Now()
	gapList := gaps.Analyze(facts)

	checksRun := 0
	if p.checks != nil {
		checksRun = p.checks.ChecksCount()
		gapList = append(gapList, p.checks.EvaluateAll(ctx, facts)...)
	}

	score := scoring.Score(gapList)
	resources := recommend.Recommend(gapList)
	analyzeMs := time.Since(analyzeStart).Milliseconds()

	var matches []domain.ArticleMatch
	if p.mapper != nil {
		matches = p.mapper.MapToArticles(ctx, combinedText(input.Documents), p.SemanticThreshold)
	}

	names := make([]string, 0, len(input.Documents))
	for name := range input.Documents {
		names = append(names, name)
	}
	sort.Strings(names)

	return &domain.AssessmentResult{
		AssessmentID:      input.AssessmentID,
		TenantID:          input.TenantID,
		StartupName:       input.StartupName,
		Facts:             facts,
		Gaps:              gapList,
		Score:             score,
		Resources:         resources,
		ArticleMatches:    matches,
		DocumentsAnalyzed: names,
		CreatedAt:         time.Now().UTC(),
		Metadata: domain.ResultMetadata{
			TraceID:       input.TraceID,
			ExtractMs:     extractMs,
			AnalyzeMs:     analyzeMs,
			TotalMs:       time.Since(input.StartTime).Milliseconds(),
			ChecksRun:     checksRun,
			EngineVersion: engineVersion,
		},
	}
}

func combinedText(documents map[string]string) string {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)

	texts := make([]string, 0, len(names))
	for _, name := range names {
		texts = append(texts, documents[name])
	}
	return strings.Join(texts, "\n\n")
}
