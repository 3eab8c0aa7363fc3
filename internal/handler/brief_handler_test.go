package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/jmlester/the-ai-brief/internal/brief"
	"github.com/jmlester/the-ai-brief/internal/config"
	"github.com/jmlester/the-ai-brief/internal/model"
	"github.com/jmlester/the-ai-brief/pkg/llm"
)

type fakeRunner struct {
	result *brief.Result
	err    error
	opts   brief.Options
}

func (f *fakeRunner) Run(ctx context.Context, opts brief.Options, generator llm.Generator, onStatus, onDelta func(string)) (*brief.Result, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	onStatus("Collecting sources...")
	onDelta("Headline:")
	onDelta("\nA fine day.")
	return f.result, nil
}

type fakeBriefStore struct {
	briefs  []model.ArchivedBrief
	deleted bool
	err     error
}

func (f *fakeBriefStore) List(ctx context.Context, limit int) ([]model.ArchivedBrief, error) {
	return f.briefs, f.err
}

func (f *fakeBriefStore) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleted, f.err
}

type fakeHealthStore struct {
	saved     []model.SourceFetchResult
	snapshots []model.SourceHealthSnapshot
	err       error
}

func (f *fakeHealthStore) SaveResults(ctx context.Context, results []model.SourceFetchResult) error {
	f.saved = results
	return f.err
}

func (f *fakeHealthStore) History(ctx context.Context, sourceID string, limit int) ([]model.SourceHealthSnapshot, error) {
	return f.snapshots, f.err
}

type fakeCache struct {
	data []byte
	err  error
}

func (f *fakeCache) SetLatest(ctx context.Context, data []byte) error {
	f.data = data
	return f.err
}

func (f *fakeCache) GetLatest(ctx context.Context) ([]byte, error) {
	return f.data, f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Brief.Provider = "responses"
	cfg.Brief.Model = "gpt-4o-mini"
	cfg.Brief.Tone = "practical"
	cfg.Brief.WindowHours = 24
	cfg.API.OpenAIKey = "test-key"
	cfg.Sources = []model.Source{
		{ID: "a", Name: "Alpha", Kind: model.KindRSS, URL: "https://example.com/rss", Enabled: true},
	}
	return cfg
}

func sampleResult() *brief.Result {
	return &brief.Result{
		Sections:        model.BriefSections{Headline: "A fine day."},
		Text:            "Headline:\nA fine day.",
		CoverageSummary: "1 of 1 sources contributed",
		SourceResults: []model.SourceFetchResult{
			{SourceID: "a", SourceName: "Alpha", Status: model.StatusSuccess, Count: 3},
		},
		DedupCount:  1,
		WindowHours: 24,
	}
}

func newBriefRouter(h *BriefHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/briefs", h.GenerateBrief)
	r.GET("/briefs/latest", h.GetLatestBrief)
	r.GET("/briefs/archive", h.GetArchive)
	r.DELETE("/briefs/archive/:id", h.DeleteArchived)
	r.GET("/sources/:id/health", h.GetSourceHealth)
	r.GET("/health", h.GetHealth)
	return r
}

func newBriefHandlerForTest(runner BriefRunner, store *fakeBriefStore, health *fakeHealthStore, cache *fakeCache) *BriefHandler {
	h := NewBriefHandler(runner, store, health, cache, testConfig())
	h.newGenerator = func(provider string, cfg llm.Config) (llm.Generator, error) {
		return nil, nil
	}
	return h
}

func TestGenerateBrief_StreamsEvents(t *testing.T) {
	runner := &fakeRunner{result: sampleResult()}
	health := &fakeHealthStore{}
	cache := &fakeCache{}
	h := newBriefHandlerForTest(runner, &fakeBriefStore{}, health, cache)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefs", strings.NewReader(`{"settings":{"tone":"executive","timeWindowHours":12}}`))
	newBriefRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "event:status"))
	assert.Equal(t, true, strings.Contains(body, "event:delta"))
	assert.Equal(t, true, strings.Contains(body, "event:done"))
	assert.Equal(t, true, strings.Contains(body, "1 of 1 sources contributed"))

	// Request settings override config defaults, missing ones fall back.
	assert.Equal(t, brief.Tone("executive"), runner.opts.Tone)
	assert.Equal(t, 12, runner.opts.WindowHours)
	assert.Equal(t, "gpt-4o-mini", runner.opts.Model)

	// The finished brief is cached and source health recorded.
	assert.NotEqual(t, cache.data, nil)
	var cached BriefPayload
	json.Unmarshal(cache.data, &cached)
	assert.Equal(t, "A fine day.", cached.Sections.Headline)
	assert.Equal(t, 1, len(health.saved))
}

func TestGenerateBrief_NoEnabledSources(t *testing.T) {
	h := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{}, &fakeHealthStore{}, &fakeCache{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefs",
		strings.NewReader(`{"sources":[{"id":"x","name":"X","enabled":false}]}`))
	newBriefRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Enable at least one source"))
}

func TestGenerateBrief_MissingAPIKey(t *testing.T) {
	h := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{}, &fakeHealthStore{}, &fakeCache{})
	h.config.API.OpenAIKey = ""

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefs", strings.NewReader(`{}`))
	newBriefRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Missing API key"))
}

func TestGenerateBrief_ErrorEvent(t *testing.T) {
	runner := &fakeRunner{err: &llm.GenerationError{Kind: llm.KindTimeout}}
	h := newBriefHandlerForTest(runner, &fakeBriefStore{}, &fakeHealthStore{}, &fakeCache{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefs", strings.NewReader(`{}`))
	newBriefRouter(h).ServeHTTP(w, req)

	// The stream was already open; the failure arrives as an error event.
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "event:error"))
	assert.Equal(t, true, strings.Contains(body, "The AI request timed out."))
	assert.Equal(t, true, strings.Contains(body, "504"))
}

func TestGetLatestBrief(t *testing.T) {
	cache := &fakeCache{data: []byte(`{"text":"cached brief"}`)}
	h := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{}, &fakeHealthStore{}, cache)
	r := newBriefRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/briefs/latest", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"text":"cached brief"}`, w.Body.String())

	cache.data = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/briefs/latest", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArchive(t *testing.T) {
	store := &fakeBriefStore{briefs: []model.ArchivedBrief{
		{ID: "b1", CoverageSummary: "2 of 3 sources contributed", CreatedAt: time.Now()},
	}}
	h := newBriefHandlerForTest(&fakeRunner{}, store, &fakeHealthStore{}, &fakeCache{})

	w := httptest.NewRecorder()
	newBriefRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/briefs/archive", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArchiveResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Briefs))
	assert.Equal(t, "b1", res.Briefs[0].ID)
	assert.Equal(t, 30, res.Limit)
}

func TestDeleteArchived(t *testing.T) {
	store := &fakeBriefStore{deleted: true}
	h := newBriefHandlerForTest(&fakeRunner{}, store, &fakeHealthStore{}, &fakeCache{})
	r := newBriefRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/briefs/archive/b1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	store.deleted = false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/briefs/archive/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSourceHealth(t *testing.T) {
	health := &fakeHealthStore{snapshots: []model.SourceHealthSnapshot{
		{SourceID: "a", SourceName: "Alpha", Status: model.StatusSuccess, Count: 4, CheckedAt: time.Now()},
	}}
	h := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{}, health, &fakeCache{})

	w := httptest.NewRecorder()
	newBriefRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/sources/a/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res HealthHistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "a", res.SourceID)
	assert.Equal(t, 1, len(res.Snapshots))
	assert.Equal(t, "success", res.Snapshots[0].Status)
}

func TestGetHealth(t *testing.T) {
	h := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{}, &fakeHealthStore{}, &fakeCache{})
	r := newBriefRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	h2 := newBriefHandlerForTest(&fakeRunner{}, &fakeBriefStore{err: errors.New("down")}, &fakeHealthStore{}, &fakeCache{})
	w = httptest.NewRecorder()
	newBriefRouter(h2).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
