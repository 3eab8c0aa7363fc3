package brief

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmlester/the-ai-brief/internal/model"
	"github.com/jmlester/the-ai-brief/pkg/llm"
)

const (
	// Fewer deduplicated stories than this triggers one window expansion.
	lowVolumeThreshold = 3
	expandedWindow     = 48
)

// Fetcher pulls recent items from a set of sources.
type Fetcher interface {
	FetchRecent(ctx context.Context, sources []model.Source, windowHours float64) ([]model.NewsItem, []model.SourceFetchResult)
}

// Archive persists finished briefs. Archiving is best effort: a storage
// failure is logged and the brief is still returned to the caller.
type Archive interface {
	Save(ctx context.Context, brief model.ArchivedBrief) error
}

// Options configures one generation cycle.
type Options struct {
	Sources     []model.Source
	WindowHours int
	Tone        Tone
	FocusTopics string
	Model       string
}

// Result is the outcome of a completed cycle.
type Result struct {
	Sections           model.BriefSections       `json:"sections"`
	Text               string                    `json:"text"`
	Items              []model.NewsItem          `json:"items"`
	SourceResults      []model.SourceFetchResult `json:"sourceResults"`
	CoverageSummary    string                    `json:"coverageSummary"`
	ExpandedWindowUsed bool                      `json:"expandedWindowUsed"`
	DedupCount         int                       `json:"dedupCount"`
	WindowHours        int                       `json:"windowHours"`
}

// Pipeline runs the full cycle: fetch, dedupe, prompt, generate, parse,
// archive.
type Pipeline struct {
	fetcher Fetcher
	archive Archive
	logger  *slog.Logger
	now     func() time.Time
}

func NewPipeline(fetcher Fetcher, archive Archive, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher: fetcher,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one cycle with the given generator. Progress is narrated
// through onStatus and incremental model output arrives through onDelta; both
// callbacks must be non-nil. The returned error is a *llm.GenerationError for
// configuration and generation failures.
func (p *Pipeline) Run(ctx context.Context, opts Options, generator llm.Generator, onStatus func(string), onDelta func(string)) (*Result, error) {
	enabledCount := 0
	var preferred []string
	for _, src := range opts.Sources {
		if !src.Enabled {
			continue
		}
		enabledCount++
		if src.Preferred {
			preferred = append(preferred, src.Name)
		}
	}
	if enabledCount == 0 {
		return nil, &llm.GenerationError{Kind: llm.KindConfig, Message: "No sources are enabled."}
	}
	if opts.WindowHours <= 0 {
		opts.WindowHours = 24
	}

	onStatus("Collecting sources...")
	items, results := p.fetcher.FetchRecent(ctx, opts.Sources, float64(opts.WindowHours))
	deduped, dedupCount := p.prepare(items, preferred)

	windowHours := opts.WindowHours
	expanded := false
	if len(deduped) < lowVolumeThreshold && windowHours < expandedWindow {
		onStatus("Low volume, expanding window...")
		items, results = p.fetcher.FetchRecent(ctx, opts.Sources, float64(expandedWindow))
		deduped, dedupCount = p.prepare(items, preferred)
		windowHours = expandedWindow
		expanded = true
	}

	coverage := coverageSummary(results)
	p.logger.Info("sources collected",
		"items", len(deduped),
		"duplicatesRemoved", dedupCount,
		"windowHours", windowHours,
		"expanded", expanded,
	)

	onStatus("Generating brief...")
	prompt := BuildPrompt(deduped, opts.Tone, opts.FocusTopics, preferred, windowHours)
	text, err := generator.Generate(ctx, prompt, onStatus, onDelta)
	if err != nil {
		return nil, err
	}

	onStatus("Parsing response...")
	sections := Parse(text)

	result := &Result{
		Sections:           sections,
		Text:               text,
		Items:              deduped,
		SourceResults:      results,
		CoverageSummary:    coverage,
		ExpandedWindowUsed: expanded,
		DedupCount:         dedupCount,
		WindowHours:        windowHours,
	}

	if p.archive != nil {
		archived := model.ArchivedBrief{
			ID:                 uuid.New().String(),
			Sections:           sections,
			SourceResults:      results,
			CoverageSummary:    coverage,
			ModelUsed:          opts.Model,
			ExpandedWindowUsed: expanded,
			CreatedAt:          p.now(),
		}
		if err := p.archive.Save(ctx, archived); err != nil {
			p.logger.Error("failed to archive brief", "error", err)
		}
	}

	return result, nil
}

// prepare drops placeholder rows, collapses near-duplicate titles, and ranks
// preferred sources first. It returns the duplicate count alongside.
func (p *Pipeline) prepare(items []model.NewsItem, preferred []string) ([]model.NewsItem, int) {
	var real []model.NewsItem
	for _, item := range items {
		if !item.IsPlaceholder {
			real = append(real, item)
		}
	}
	deduped := Dedupe(real)
	return Rank(deduped, preferred), len(real) - len(deduped)
}

func coverageSummary(results []model.SourceFetchResult) string {
	contributed := 0
	for _, r := range results {
		if r.Status == model.StatusSuccess && r.Count > 0 {
			contributed++
		}
	}
	return fmt.Sprintf("%d of %d sources contributed", contributed, len(results))
}
