package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/gaps"
	"github.com/regtech-labs/finregx/internal/kb"
	"github.com/regtech-labs/finregx/internal/pipeline"
	"github.com/regtech-labs/finregx/internal/repository"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	repo      domain.Repository
	cache     domain.Cache
	bus       domain.EventBus
	checks    *gaps.CheckEngine
	processor *pipeline.Processor
	version   string

	// async routes document submissions through the event bus instead of
	// running the pipeline inline (Pro tier with workers).
	async bool
}

// NewHandler creates a new API handler.
func NewHandler(repo domain.Repository, cache domain.Cache, bus domain.EventBus, checks *gaps.CheckEngine, processor *pipeline.Processor, version string, async bool) *Handler {
	return &Handler{
		repo:      repo,
		cache:     cache,
		bus:       bus,
		checks:    checks,
		processor: processor,
		version:   version,
		async:     async,
	}
}

// CreateAssessmentRequest is the request body for POST /assessments.
type CreateAssessmentRequest struct {
	StartupName  string `json:"startupName"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// CreateAssessment handles POST /assessments.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	var req CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.StartupName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "startupName is required",
		})
		return
	}

	assessment := &domain.Assessment{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		StartupName:  req.StartupName,
		ContactEmail: req.ContactEmail,
		Status:       domain.AssessmentCreated,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.repo.SaveAssessment(ctx, tenantID, assessment); err != nil {
		slog.Error("failed to save assessment", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to create assessment",
		})
		return
	}

	slog.Info("assessment created",
		"assessment_id", assessment.ID,
		"tenant_id", tenantID,
		"startup", assessment.StartupName,
	)
	writeJSON(w, http.StatusCreated, assessment)
}

// SubmitDocumentsRequest is the request body for POST /assessments/{id}/documents.
type SubmitDocumentsRequest struct {
	// Documents maps document name to its plain-text content.
	Documents map[string]string `json:"documents"`
}

// SubmitDocuments handles POST /assessments/{id}/documents: it runs the
// readiness pipeline over the submitted text, inline or via the bus.
func (h *Handler) SubmitDocuments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	tenantID := GetTenantID(ctx)
	traceID := GetTraceID(ctx)
	assessmentID := chi.URLParam(r, "id")

	var req SubmitDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}
	if len(req.Documents) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "at least one document is required",
		})
		return
	}

	assessment, err := h.repo.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "assessment not found",
			})
			return
		}
		slog.Error("failed to get assessment", "id", assessmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load assessment",
		})
		return
	}

	// Async path: hand off to the worker pool and return immediately.
	if h.async && h.bus != nil {
		payload, _ := json.Marshal(domain.SubmittedAssessment{
			AssessmentID: assessmentID,
			TenantID:     tenantID,
			TraceID:      traceID,
			StartupName:  assessment.StartupName,
			Documents:    req.Documents,
		})
		if err := h.bus.Publish(ctx, tenantID, domain.TopicAssessmentSubmitted, payload); err != nil {
			slog.Error("failed to publish assessment", "id", assessmentID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to submit assessment",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"assessmentId": assessmentID,
			"status":       domain.AssessmentProcessing,
			"traceId":      traceID,
		})
		return
	}

	// Sync path: run the pipeline inline and persist the result.
	result := h.processor.Process(ctx, &pipeline.Input{
		TenantID:     tenantID,
		AssessmentID: assessmentID,
		StartupName:  assessment.StartupName,
		TraceID:      traceID,
		Documents:    req.Documents,
		StartTime:    start,
	})

	if err := h.repo.SaveResult(ctx, tenantID, result); err != nil {
		slog.Error("failed to save result", "id", assessmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to persist assessment result",
		})
		return
	}

	now := time.Now().UTC()
	if err := h.repo.UpdateAssessmentStatus(ctx, tenantID, assessmentID, domain.AssessmentCompleted, &now); err != nil {
		slog.Error("failed to complete assessment", "id", assessmentID, "error", err)
	}

	if h.cache != nil {
		if err := h.cache.SetResult(ctx, tenantID, assessmentID, result, time.Hour); err != nil {
			slog.Warn("failed to cache result", "id", assessmentID, "error", err)
		}
	}

	slog.Info("assessment completed",
		"assessment_id", assessmentID,
		"tenant_id", tenantID,
		"overall_score", result.Score.OverallScore,
		"readiness", result.Score.ReadinessLevel,
		"gap_count", result.Score.TotalGaps,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, result)
}

// GetAssessment handles GET /assessments/{id}: the full result when the run
// has completed, otherwise the lifecycle record.
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)
	assessmentID := chi.URLParam(r, "id")

	assessment, err := h.repo.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "assessment not found",
			})
			return
		}
		slog.Error("failed to get assessment", "id", assessmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load assessment",
		})
		return
	}

	if assessment.Status != domain.AssessmentCompleted {
		writeJSON(w, http.StatusOK, assessment)
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetResult(ctx, tenantID, assessmentID); err == nil && cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := h.repo.GetResult(ctx, tenantID, assessmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Completed but result row missing: surface the record.
			writeJSON(w, http.StatusOK, assessment)
			return
		}
		slog.Error("failed to get result", "id", assessmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load result",
		})
		return
	}

	if h.cache != nil {
		if err := h.cache.SetResult(ctx, tenantID, assessmentID, result, time.Hour); err != nil {
			slog.Warn("failed to cache result", "id", assessmentID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// ListAssessments handles GET /assessments.
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	assessments, err := h.repo.ListAssessments(ctx, tenantID, limit)
	if err != nil {
		slog.Error("failed to list assessments", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to list assessments",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// ListArticles returns the regulatory knowledge base articles.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := kb.Articles()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

// GetArticle retrieves a single article by ID.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "id")

	article, ok := kb.LookupArticle(articleID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "article not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, article)
}

// ListCapitalRequirements returns per-category capital minimums.
func (h *Handler) ListCapitalRequirements(w http.ResponseWriter, r *http.Request) {
	requirements := kb.CapitalRequirements()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"capitalRequirements": requirements,
		"count":               len(requirements),
	})
}

// ListResources returns the expert and program directories.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	experts, programs := kb.Resources()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"experts":  experts,
		"programs": programs,
	})
}

// CreateCheckRequest is the request body for creating a custom check.
type CreateCheckRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Expression     string `json:"expression"`
	ArticleID      string `json:"articleId,omitempty"`
	Category       string `json:"category,omitempty"`
	Severity       string `json:"severity,omitempty"`
	Status         string `json:"status,omitempty"`
	GapDescription string `json:"gapDescription,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Enabled        bool   `json:"enabled"`
}

// ListChecks returns all checks loaded in the engine.
// Checks are loaded from the database at startup and can be reloaded via
// POST /checks/reload.
func (h *Handler) ListChecks(w http.ResponseWriter, r *http.Request) {
	if h.checks == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "check engine not available",
		})
		return
	}

	loaded := h.checks.GetLoadedChecks()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checks": loaded,
		"count":  len(loaded),
		"source": "database",
	})
}

// GetCheck retrieves a check by ID from the loaded engine checks.
func (h *Handler) GetCheck(w http.ResponseWriter, r *http.Request) {
	checkID := chi.URLParam(r, "id")

	if h.checks == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "check engine not available",
		})
		return
	}

	for _, check := range h.checks.GetLoadedChecks() {
		if check.ID == checkID {
			writeJSON(w, http.StatusOK, check)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "check not found",
	})
}

// GlobalTenantID is used for checks that apply to all tenants.
const GlobalTenantID = "*"

// CreateCheck creates a new custom check and saves it to the database.
// Checks are saved globally (tenant_id = "*") so they apply to all tenants;
// the engine is shared across the process.
// After saving, call POST /checks/reload to hot-reload into the engine.
func (h *Handler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.checks == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "check engine not available",
		})
		return
	}

	var req CreateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.ID == "" || req.Name == "" || req.Expression == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "id, name, and expression are required",
		})
		return
	}

	check := &domain.CheckConfig{
		ID:             req.ID,
		TenantID:       GlobalTenantID,
		Name:           req.Name,
		Description:    req.Description,
		Version:        "1.0.0",
		Expression:     req.Expression,
		ArticleID:      req.ArticleID,
		Category:       req.Category,
		Severity:       req.Severity,
		Status:         req.Status,
		GapDescription: req.GapDescription,
		Recommendation: req.Recommendation,
		Enabled:        req.Enabled,
	}

	if err := h.checks.ValidateCheck(check); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid CEL expression: " + err.Error(),
		})
		return
	}

	if err := h.repo.SaveCheckConfig(ctx, GlobalTenantID, check); err != nil {
		slog.Error("failed to save check config", "id", check.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to save check",
		})
		return
	}

	slog.Info("check created", "id", check.ID, "name", check.Name)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"check":   check,
		"message": "Check created. Call POST /checks/reload to apply changes.",
	})
}

// ReloadChecks reloads all checks from the database into the engine.
// This enables hot-reloading without server restart.
func (h *Handler) ReloadChecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.checks == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "check engine not available",
		})
		return
	}

	dbChecks, err := h.repo.ListCheckConfigs(ctx, GlobalTenantID)
	if err != nil {
		slog.Error("failed to list checks from database", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load checks from database",
		})
		return
	}

	if err := h.checks.ReloadChecks(dbChecks); err != nil {
		slog.Error("failed to reload checks into engine", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to reload checks: " + err.Error(),
		})
		return
	}

	slog.Info("checks reloaded from database", "count", len(dbChecks))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "checks reloaded successfully",
		"count":   len(dbChecks),
	})
}

// Health returns server health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	if h.repo != nil {
		if err := h.repo.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
