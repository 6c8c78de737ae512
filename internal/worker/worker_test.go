package worker

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/regtech-labs/finregx/internal/bus"
	"github.com/regtech-labs/finregx/internal/cache"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/pipeline"
	"github.com/regtech-labs/finregx/internal/repository"
)

func setupTestRepo(t *testing.T) domain.Repository {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "finregx-worker-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	repo, err := repository.New(domain.RepositoryConfig{
		Driver:     "sqlite",
		SQLitePath: tmpFile.Name(),
	})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestWorkerProcessesSubmittedAssessment(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-worker-1"

	repo := setupTestRepo(t)
	eventBus := bus.NewChannelBus(16)
	defer eventBus.Close()
	resultCache := cache.NewLRUCache(100)
	defer resultCache.Close()

	if err := repo.SaveAssessment(ctx, tenantID, &domain.Assessment{
		ID:          "assess-1",
		TenantID:    tenantID,
		StartupName: "QPay",
		Status:      domain.AssessmentCreated,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("failed to save assessment: %v", err)
	}

	w := NewWorker(eventBus, repo, resultCache, pipeline.NewProcessor(nil, nil, 0))
	if err := w.Start(Config{TenantIDs: []string{tenantID}}); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	completed := make(chan *domain.Message, 1)
	_, err := eventBus.Subscribe(ctx, tenantID, domain.TopicAssessmentCompleted, func(ctx context.Context, msg *domain.Message) error {
		completed <- msg
		return nil
	})
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	payload, _ := json.Marshal(domain.SubmittedAssessment{
		AssessmentID: "assess-1",
		TenantID:     tenantID,
		StartupName:  "QPay",
		Documents: map[string]string{
			"profile.txt": "QPay is a payment service provider with paid-up capital: QAR 2,000,000. Data is stored on AWS (Frankfurt).",
		},
	})
	if err := eventBus.Publish(ctx, tenantID, domain.TopicAssessmentSubmitted, payload); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	var msg *domain.Message
	select {
	case msg = <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion event")
	}

	var result domain.AssessmentResult
	if err := json.Unmarshal(msg.Payload, &result); err != nil {
		t.Fatalf("failed to parse completion payload: %v", err)
	}
	if result.AssessmentID != "assess-1" {
		t.Errorf("expected assessmentId assess-1, got %s", result.AssessmentID)
	}
	if result.Facts.BusinessCategory != domain.CategoryPSP {
		t.Errorf("expected %s classification, got %q", domain.CategoryPSP, result.Facts.BusinessCategory)
	}

	// Lifecycle record moves to completed with a completion timestamp.
	assessment, err := repo.GetAssessment(ctx, tenantID, "assess-1")
	if err != nil {
		t.Fatalf("failed to get assessment: %v", err)
	}
	if assessment.Status != domain.AssessmentCompleted {
		t.Errorf("expected status completed, got %s", assessment.Status)
	}
	if assessment.CompletedAt == nil {
		t.Error("expected completedAt to be set")
	}

	// Result is persisted and cached.
	stored, err := repo.GetResult(ctx, tenantID, "assess-1")
	if err != nil {
		t.Fatalf("failed to get result: %v", err)
	}
	if stored.Score.OverallScore != result.Score.OverallScore {
		t.Errorf("stored score %v != published score %v", stored.Score.OverallScore, result.Score.OverallScore)
	}

	cached, err := resultCache.GetResult(ctx, tenantID, "assess-1")
	if err != nil {
		t.Fatalf("cache get failed: %v", err)
	}
	if cached == nil {
		t.Error("expected result to be cached after processing")
	}
}

func TestWorkerTenantIsolation(t *testing.T) {
	ctx := context.Background()

	repo := setupTestRepo(t)
	eventBus := bus.NewChannelBus(16)
	defer eventBus.Close()

	w := NewWorker(eventBus, repo, nil, pipeline.NewProcessor(nil, nil, 0))
	if err := w.Start(Config{TenantIDs: []string{"tenant-a"}}); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	completed := make(chan *domain.Message, 1)
	_, err := eventBus.Subscribe(ctx, "tenant-a", domain.TopicAssessmentCompleted, func(ctx context.Context, msg *domain.Message) error {
		completed <- msg
		return nil
	})
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	if err := repo.SaveAssessment(ctx, "tenant-b", &domain.Assessment{
		ID:          "assess-b",
		TenantID:    "tenant-b",
		StartupName: "Other",
		Status:      domain.AssessmentCreated,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("failed to save assessment: %v", err)
	}

	payload, _ := json.Marshal(domain.SubmittedAssessment{AssessmentID: "assess-b", TenantID: "tenant-b"})
	if err := eventBus.Publish(ctx, "tenant-b", domain.TopicAssessmentSubmitted, payload); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	select {
	case <-completed:
		t.Fatal("tenant-a worker should not process tenant-b messages")
	case <-time.After(200 * time.Millisecond):
	}

	assessment, err := repo.GetAssessment(ctx, "tenant-b", "assess-b")
	if err != nil {
		t.Fatalf("failed to get assessment: %v", err)
	}
	if assessment.Status != domain.AssessmentCreated {
		t.Errorf("expected untouched status created, got %s", assessment.Status)
	}
}

func TestWorkerPublishesFailureForUnknownAssessment(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-missing"

	repo := setupTestRepo(t)
	eventBus := bus.NewChannelBus(16)
	defer eventBus.Close()

	w := NewWorker(eventBus, repo, nil, pipeline.NewProcessor(nil, nil, 0))
	if err := w.Start(Config{TenantIDs: []string{tenantID}}); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	failed := make(chan *domain.Message, 1)
	_, err := eventBus.Subscribe(ctx, tenantID, domain.TopicAssessmentFailed, func(ctx context.Context, msg *domain.Message) error {
		failed <- msg
		return nil
	})
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	// No lifecycle record exists: completing the assessment fails, so the
	// worker reports the run as failed instead of completed.
	payload, _ := json.Marshal(domain.SubmittedAssessment{AssessmentID: "assess-ghost", TenantID: tenantID})
	if err := eventBus.Publish(ctx, tenantID, domain.TopicAssessmentSubmitted, payload); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	var msg *domain.Message
	select {
	case msg = <-failed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for failure event")
	}

	var body map[string]string
	if err := json.Unmarshal(msg.Payload, &body); err != nil {
		t.Fatalf("failed to parse failure payload: %v", err)
	}
	if body["assessmentId"] != "assess-ghost" {
		t.Errorf("expected assessmentId assess-ghost, got %s", body["assessmentId"])
	}
}

func TestWorkerStats(t *testing.T) {
	repo := setupTestRepo(t)
	eventBus := bus.NewChannelBus(16)
	defer eventBus.Close()

	w := NewWorker(eventBus, repo, nil, pipeline.NewProcessor(nil, nil, 0))
	if err := w.Start(Config{TenantIDs: []string{"t1", "t2"}}); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}

	stats := w.GetStats()
	if stats.SubscriptionCount != 2 {
		t.Errorf("expected 2 subscriptions, got %d", stats.SubscriptionCount)
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("failed to stop worker: %v", err)
	}
	if got := w.GetStats().SubscriptionCount; got != 0 {
		t.Errorf("expected 0 subscriptions after stop, got %d", got)
	}
}
