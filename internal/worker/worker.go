// Package worker provides async assessment processing for the Pro tier.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/pipeline"
)

// Worker processes submitted assessments asynchronously from the EventBus.
type Worker struct {
	bus       domain.EventBus
	repo      domain.Repository
	cache     domain.Cache
	processor *pipeline.Processor

	subscriptions []domain.Subscription
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
}

// Config holds worker configuration.
type Config struct {
	// TenantIDs is the list of tenants to process (empty = all via wildcard if supported)
	TenantIDs []string

	// ResultTTL is how long completed results stay in cache.
	ResultTTL time.Duration
}

// NewWorker creates a new async worker.
func NewWorker(bus domain.EventBus, repo domain.Repository, cache domain.Cache, processor *pipeline.Processor) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		bus:       bus,
		repo:      repo,
		cache:     cache,
		processor: processor,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins processing messages for the given tenants.
func (w *Worker) Start(cfg Config) error {
	if len(cfg.TenantIDs) == 0 {
		return w.startGlobalWorker()
	}

	for _, tenantID := range cfg.TenantIDs {
		if err := w.startTenantWorker(tenantID); err != nil {
			slog.Error("failed to start worker for tenant",
				"tenant_id", tenantID,
				"error", err,
			)
			continue
		}
	}

	slog.Info("workers started",
		"tenant_count", len(cfg.TenantIDs),
	)

	return nil
}

// startGlobalWorker starts a worker that processes all tenants (for testing/dev).
func (w *Worker) startGlobalWorker() error {
	// Subscribe using a special "global" tenant ID
	// In production, you'd want to subscribe with wildcards or JetStream
	sub, err := w.bus.Subscribe(w.ctx, "_global", domain.TopicAssessmentSubmitted, w.handleMessage)
	if err != nil {
		return err
	}
	w.subscriptions = append(w.subscriptions, sub)

	slog.Info("global worker started")
	return nil
}

// startTenantWorker starts workers for a specific tenant.
func (w *Worker) startTenantWorker(tenantID string) error {
	sub, err := w.bus.Subscribe(w.ctx, tenantID, domain.TopicAssessmentSubmitted, func(ctx context.Context, msg *domain.Message) error {
		return w.processAssessment(ctx, tenantID, msg)
	})
	if err != nil {
		return err
	}
	w.subscriptions = append(w.subscriptions, sub)

	slog.Info("tenant worker started",
		"tenant_id", tenantID,
		"topic", domain.TopicAssessmentSubmitted,
	)

	return nil
}

// handleMessage handles messages from global subscription.
func (w *Worker) handleMessage(ctx context.Context, msg *domain.Message) error {
	return w.processAssessment(ctx, msg.TenantID, msg)
}

// processAssessment runs one submitted assessment through the pipeline.
func (w *Worker) processAssessment(ctx context.Context, tenantID string, msg *domain.Message) error {
	start := time.Now()

	var aMsg domain.SubmittedAssessment
	if err := json.Unmarshal(msg.Payload, &aMsg); err != nil {
		slog.Error("failed to parse assessment message",
			"message_id", msg.ID,
			"error", err,
		)
		return err
	}

	// Use message tenant if provided
	if aMsg.TenantID != "" {
		tenantID = aMsg.TenantID
	}

	traceID := aMsg.TraceID
	if traceID == "" {
		traceID = msg.ID
	}

	slog.Debug("processing assessment",
		"assessment_id", aMsg.AssessmentID,
		"tenant_id", tenantID,
		"trace_id", traceID,
	)

	if w.repo != nil {
		if err := w.repo.UpdateAssessmentStatus(ctx, tenantID, aMsg.AssessmentID, domain.AssessmentProcessing, nil); err != nil {
			slog.Warn("failed to mark assessment processing",
				"assessment_id", aMsg.AssessmentID,
				"error", err,
			)
		}
	}

	result := w.processor.Process(ctx, &pipeline.Input{
		TenantID:     tenantID,
		AssessmentID: aMsg.AssessmentID,
		StartupName:  aMsg.StartupName,
		TraceID:      traceID,
		Documents:    aMsg.Documents,
		StartTime:    start,
	})

	if err := w.persistResult(ctx, tenantID, result); err != nil {
		slog.Error("failed to persist assessment result",
			"assessment_id", aMsg.AssessmentID,
			"error", err,
		)
		w.markFailed(ctx, tenantID, aMsg.AssessmentID)
		return err
	}

	resultPayload, _ := json.Marshal(result)
	if err := w.bus.Publish(ctx, tenantID, domain.TopicAssessmentCompleted, resultPayload); err != nil {
		slog.Error("failed to publish completion",
			"assessment_id", aMsg.AssessmentID,
			"error", err,
		)
	}

	slog.Info("assessment processed",
		"assessment_id", aMsg.AssessmentID,
		"tenant_id", tenantID,
		"overall_score", result.Score.OverallScore,
		"readiness", result.Score.ReadinessLevel,
		"gap_count", result.Score.TotalGaps,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// persistResult saves the result, completes the lifecycle record, and warms
// the result cache.
func (w *Worker) persistResult(ctx context.Context, tenantID string, result *domain.AssessmentResult) error {
	if w.repo != nil {
		if err := w.repo.SaveResult(ctx, tenantID, result); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := w.repo.UpdateAssessmentStatus(ctx, tenantID, result.AssessmentID, domain.AssessmentCompleted, &now); err != nil {
			return err
		}
	}

	if w.cache != nil {
		if err := w.cache.SetResult(ctx, tenantID, result.AssessmentID, result, time.Hour); err != nil {
			slog.Warn("failed to cache assessment result",
				"assessment_id", result.AssessmentID,
				"error", err,
			)
		}
	}

	return nil
}

// markFailed transitions the assessment to failed and notifies subscribers.
func (w *Worker) markFailed(ctx context.Context, tenantID, assessmentID string) {
	if w.repo != nil {
		now := time.Now().UTC()
		if err := w.repo.UpdateAssessmentStatus(ctx, tenantID, assessmentID, domain.AssessmentFailed, &now); err != nil {
			slog.Error("failed to mark assessment failed",
				"assessment_id", assessmentID,
				"error", err,
			)
		}
	}

	payload, _ := json.Marshal(map[string]string{"assessmentId": assessmentID})
	if err := w.bus.Publish(ctx, tenantID, domain.TopicAssessmentFailed, payload); err != nil {
		slog.Error("failed to publish failure",
			"assessment_id", assessmentID,
			"error", err,
		)
	}
}

// Stop gracefully stops all workers.
func (w *Worker) Stop() error {
	w.cancel()

	// Unsubscribe all
	for _, sub := range w.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			slog.Error("failed to unsubscribe",
				"topic", sub.Topic(),
				"error", err,
			)
		}
	}
	w.subscriptions = nil

	w.wg.Wait()

	slog.Info("workers stopped")
	return nil
}

// Stats returns worker statistics.
type Stats struct {
	SubscriptionCount int      `json:"subscriptionCount"`
	Topics            []string `json:"topics"`
}

// GetStats returns current worker statistics.
func (w *Worker) GetStats() Stats {
	topics := make([]string, len(w.subscriptions))
	for i, sub := range w.subscriptions {
		topics[i] = sub.Topic()
	}
	return Stats{
		SubscriptionCount: len(w.subscriptions),
		Topics:            topics,
	}
}
