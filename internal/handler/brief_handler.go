package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmlester/the-ai-brief/internal/brief"
	"github.com/jmlester/the-ai-brief/internal/config"
	"github.com/jmlester/the-ai-brief/internal/model"
	"github.com/jmlester/the-ai-brief/pkg/llm"
)

type BriefRunner interface {
	Run(ctx context.Context, opts brief.Options, generator llm.Generator, onStatus, onDelta func(string)) (*brief.Result, error)
}

type BriefStore interface {
	List(ctx context.Context, limit int) ([]model.ArchivedBrief, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type HealthStore interface {
	SaveResults(ctx context.Context, results []model.SourceFetchResult) error
	History(ctx context.Context, sourceID string, limit int) ([]model.SourceHealthSnapshot, error)
}

type Cache interface {
	SetLatest(ctx context.Context, data []byte) error
	GetLatest(ctx context.Context) ([]byte, error)
}

type BriefHandler struct {
	runner       BriefRunner
	store        BriefStore
	health       HealthStore
	cache        Cache
	config       *config.Config
	newGenerator func(provider string, cfg llm.Config) (llm.Generator, error)
}

func NewBriefHandler(runner BriefRunner, store BriefStore, health HealthStore, cache Cache, cfg *config.Config) *BriefHandler {
	return &BriefHandler{
		runner:       runner,
		store:        store,
		health:       health,
		cache:        cache,
		config:       cfg,
		newGenerator: llm.NewGenerator,
	}
}

// GenerateBrief streams one generation cycle as server-sent events: status,
// delta, and finally either done or error. Validation failures are reported
// as plain JSON before the stream starts.
func (h *BriefHandler) GenerateBrief(c *gin.Context) {
	var req BriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	settings := req.Settings
	if settings == nil {
		settings = &Settings{}
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = h.config.Sources
	}

	enabled := 0
	for _, src := range sources {
		if src.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enable at least one source to build a brief."})
		return
	}

	modelName := settings.Model
	if modelName == "" {
		modelName = h.config.Brief.Model
	}
	if modelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing model in settings."})
		return
	}

	provider := settings.Provider
	if provider == "" {
		provider = h.config.Brief.Provider
	}

	apiKey := settings.APIKey
	if apiKey == "" {
		apiKey = h.config.APIKey()
	}
	if apiKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing API key. Set OPENAI_API_KEY or ANTHROPIC_API_KEY."})
		return
	}

	tone := settings.Tone
	if tone == "" {
		tone = h.config.Brief.Tone
	}
	focusTopics := settings.FocusTopics
	if focusTopics == "" {
		focusTopics = h.config.Brief.FocusTopics
	}
	windowHours := settings.TimeWindowHours
	if windowHours == 0 {
		windowHours = h.config.Brief.WindowHours
	}
	windowHours = config.ClampWindow(windowHours)

	generator, err := h.newGenerator(provider, llm.Config{
		APIKey:   apiKey,
		Model:    modelName,
		Endpoint: h.config.Brief.Endpoint,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache, no-transform")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	send := func(event string, payload any) {
		c.SSEvent(event, payload)
		c.Writer.Flush()
	}

	opts := brief.Options{
		Sources:     sources,
		WindowHours: windowHours,
		Tone:        brief.Tone(tone),
		FocusTopics: focusTopics,
		Model:       modelName,
	}

	result, err := h.runner.Run(c.Request.Context(), opts,
		generator,
		func(message string) { send("status", gin.H{"message": message}) },
		func(text string) { send("delta", gin.H{"text": text}) },
	)
	if err != nil {
		send("error", gin.H{
			"message": err.Error(),
			"status":  errorStatus(err),
		})
		return
	}

	payload := BriefPayload{
		Text:               result.Text,
		Sections:           result.Sections,
		SourceResults:      result.SourceResults,
		CoverageSummary:    result.CoverageSummary,
		ExpandedWindowUsed: result.ExpandedWindowUsed,
		DedupCount:         result.DedupCount,
	}
	send("done", payload)

	h.recordCycle(c.Request.Context(), payload, result.SourceResults)
}

// recordCycle caches the finished brief and archives the source outcomes.
// Both are best effort.
func (h *BriefHandler) recordCycle(ctx context.Context, payload BriefPayload, results []model.SourceFetchResult) {
	if h.cache != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			err = h.cache.SetLatest(ctx, data)
		}
		if err != nil {
			slog.Error("error caching latest brief", "error", err)
		}
	}
	if h.health != nil {
		if err := h.health.SaveResults(ctx, results); err != nil {
			slog.Error("error saving source health", "error", err)
		}
	}
}

func errorStatus(err error) int {
	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		if genErr.Status > 0 {
			return genErr.Status
		}
		switch genErr.Kind {
		case llm.KindConfig:
			return http.StatusBadRequest
		case llm.KindTimeout:
			return http.StatusGatewayTimeout
		}
	}
	return http.StatusInternalServerError
}

func (h *BriefHandler) GetLatestBrief(c *gin.Context) {
	data, err := h.cache.GetLatest(c.Request.Context())
	if err != nil {
		slog.Error("error reading latest brief", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No brief generated yet"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *BriefHandler) GetArchive(c *gin.Context) {
	limit := getQueryLimit(c)

	briefs, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("error fetching brief archive", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := ArchiveResponse{Briefs: []ArchivedBriefResponse{}, Limit: limit}
	for _, b := range briefs {
		res.Briefs = append(res.Briefs, ArchivedBriefResponse{
			ID:                 b.ID,
			Sections:           b.Sections,
			SourceResults:      b.SourceResults,
			CoverageSummary:    b.CoverageSummary,
			ModelUsed:          b.ModelUsed,
			ExpandedWindowUsed: b.ExpandedWindowUsed,
			CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) DeleteArchived(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		slog.Error("error deleting archived brief", "error", err, "brief_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *BriefHandler) GetSourceHealth(c *gin.Context) {
	sourceID := c.Param("id")

	snapshots, err := h.health.History(c.Request.Context(), sourceID, getQueryLimit(c))
	if err != nil {
		slog.Error("error fetching source health", "error", err, "source_id", sourceID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := HealthHistoryResponse{SourceID: sourceID, Snapshots: []HealthSnapshotResponse{}}
	for _, s := range snapshots {
		res.Snapshots = append(res.Snapshots, HealthSnapshotResponse{
			SourceName: s.SourceName,
			Status:     string(s.Status),
			Count:      s.Count,
			Message:    s.Message,
			CheckedAt:  s.CheckedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) GetHealth(c *gin.Context) {
	_, err := h.store.List(c.Request.Context(), 1)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
