// Package semantic maps free document text to regulatory articles by
// embedding similarity. It complements the pattern-based extractor: matches
// are advisory context on the assessment result, never a gap source.
package semantic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	chromem "github.com/philippgille/chromem-go"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/kb"
)

const collectionName = "regulatory-articles"

// Mapper indexes the knowledge-base articles in an in-memory vector
// collection and answers similarity queries against them.
type Mapper struct {
	collection *chromem.Collection
	logger     *slog.Logger
}

// NewMapper builds the article index. The embedding function is injected so
// deployments can choose a provider and tests can supply a deterministic one.
func NewMapper(ctx context.Context, embed chromem.EmbeddingFunc, logger *slog.Logger) (*Mapper, error) {
	if embed == nil {
		return nil, fmt.Errorf("embedding function is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create article collection: %w", err)
	}

	articles := kb.Articles()
	docs := make([]chromem.Document, 0, len(articles))
	for _, article := range articles {
		docs = append(docs, chromem.Document{
			ID: article.ID,
			// Requirement text plus keywords gives the embedder both
			// the legal phrasing and the colloquial vocabulary.
			Content: article.Requirement + " " + strings.Join(article.Keywords, " "),
			Metadata: map[string]string{
				"category": article.Category,
				"title":    article.Title,
			},
		})
	}

	if err := collection.AddDocuments(ctx, docs, 2); err != nil {
		return nil, fmt.Errorf("failed to index articles: %w", err)
	}

	return &Mapper{collection: collection, logger: logger}, nil
}

// MapToArticles returns the articles whose embedded text is at least
// threshold-similar to the query text, best match first. Mapping is
// advisory: on embedder failure it logs and returns no matches rather
// than failing the assessment.
func (m *Mapper) MapToArticles(ctx context.Context, text string, threshold float64) []domain.ArticleMatch {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	k := m.collection.Count()
	if k == 0 {
		return nil
	}

	results, err := m.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		m.logger.Warn("semantic mapping degraded", "error", err)
		return nil
	}

	var matches []domain.ArticleMatch
	for _, res := range results {
		similarity := float64(res.Similarity)
		if similarity < threshold {
			continue
		}
		matches = append(matches, domain.ArticleMatch{
			ArticleID:  res.ID,
			Similarity: similarity,
		})
	}
	return matches
}

// MapByCategory groups matches by the article's regulatory category.
func (m *Mapper) MapByCategory(ctx context.Context, text string, threshold float64) map[string][]domain.ArticleMatch {
	matches := m.MapToArticles(ctx, text, threshold)
	if len(matches) == 0 {
		return nil
	}

	grouped := make(map[string][]domain.ArticleMatch)
	for _, match := range matches {
		article, ok := kb.LookupArticle(match.ArticleID)
		if !ok {
			continue
		}
		grouped[article.Category] = append(grouped[article.Category], match)
	}
	return grouped
}
