package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmlester/the-ai-brief/internal/config"
	"github.com/jmlester/the-ai-brief/internal/model"
	"github.com/jmlester/the-ai-brief/pkg/feed"
)

type NewsFetcher interface {
	FetchRecent(ctx context.Context, sources []model.Source, windowHours float64) ([]model.NewsItem, []model.SourceFetchResult)
	CheckSources(ctx context.Context, sources []model.Source, windowHours float64) []feed.CheckResult
}

type NewsHandler struct {
	fetcher NewsFetcher
	config  *config.Config
}

func NewNewsHandler(fetcher NewsFetcher, cfg *config.Config) *NewsHandler {
	return &NewsHandler{fetcher: fetcher, config: cfg}
}

// FetchNews runs aggregation only, without generating a brief.
func (h *NewsHandler) FetchNews(c *gin.Context) {
	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = h.config.Sources
	}
	hours := req.Hours
	if hours <= 0 {
		hours = 24
	}

	items, results := h.fetcher.FetchRecent(c.Request.Context(), sources, hours)
	if items == nil {
		items = []model.NewsItem{}
	}

	c.JSON(http.StatusOK, NewsResponse{Items: items, Results: results})
}

// CheckSources probes each submitted source and reports status, latency, and
// sample titles. Disabled sources are still probed.
func (h *NewsHandler) CheckSources(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = h.config.Sources
	}
	hours := req.Hours
	if hours <= 0 {
		hours = 72
	}

	results := h.fetcher.CheckSources(c.Request.Context(), sources, hours)

	c.JSON(http.StatusOK, CheckResponse{Results: results})
}

// GetSources returns the configured source catalog.
func (h *NewsHandler) GetSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": h.config.Sources})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramLimit := c.Query(name)

	if paramLimit == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramLimit)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramLimit, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 30
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
