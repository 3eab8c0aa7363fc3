package feed

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmlester/the-ai-brief/internal/model"
)

const queuedSummary = "Add an RSS feed or enable webpage scrape for this source."

const staleNotice = "Older than the selected time window."

// Service fetches recent news across a set of configured sources.
type Service struct {
	fetcher *Fetcher
	scraper *Scraper
	now     func() time.Time
}

func NewService(client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		fetcher: NewFetcher(client),
		scraper: NewScraper(client),
		now:     time.Now,
	}
}

// FetchRecent pulls every enabled source concurrently and merges the results.
// A failing source never aborts the others; it contributes zero items and a
// failed result. Items are returned sorted by publish time, newest first, and
// exactly one result is recorded per enabled source.
func (s *Service) FetchRecent(ctx context.Context, sources []model.Source, windowHours float64) ([]model.NewsItem, []model.SourceFetchResult) {
	cutoff := s.now().Add(-time.Duration(windowHours * float64(time.Hour)))

	type outcome struct {
		index  int
		items  []model.NewsItem
		result model.SourceFetchResult
	}

	var enabled []model.Source
	for _, src := range sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	outcomes := make([]outcome, len(enabled))
	var wg sync.WaitGroup
	for i, src := range enabled {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			items, result := s.fetchSource(ctx, src, cutoff)
			outcomes[i] = outcome{index: i, items: items, result: result}
		}(i, src)
	}
	wg.Wait()

	var collected []model.NewsItem
	results := make([]model.SourceFetchResult, 0, len(enabled))
	for _, o := range outcomes {
		collected = append(collected, o.items...)
		results = append(results, o.result)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].PublishedAt.After(collected[j].PublishedAt)
	})

	return collected, results
}

func (s *Service) fetchSource(ctx context.Context, src model.Source, cutoff time.Time) ([]model.NewsItem, model.SourceFetchResult) {
	result := model.SourceFetchResult{
		SourceID:   src.ID,
		SourceName: src.Name,
		FetchedAt:  s.now(),
	}

	var mapped []model.NewsItem
	switch {
	case src.CanIngest():
		entries, err := s.fetcher.FetchFeed(ctx, src.FeedURL())
		if err != nil {
			if !src.AllowScrape {
				result.Status = model.StatusFailed
				result.Message = err.Error()
				return nil, result
			}
			scraped, serr := s.scraper.ScrapePage(ctx, src)
			if serr != nil {
				result.Status = model.StatusFailed
				result.Message = serr.Error()
				return nil, result
			}
			mapped = scraped
		} else {
			mapped = s.mapEntries(entries, src)
		}
	case src.AllowScrape:
		scraped, err := s.scraper.ScrapePage(ctx, src)
		if err != nil {
			result.Status = model.StatusFailed
			result.Message = err.Error()
			return nil, result
		}
		mapped = scraped
	default:
		// Nothing to ingest yet. A placeholder keeps the source visible in
		// the cycle's output without feeding the prompt.
		result.Status = model.StatusQueued
		return []model.NewsItem{{
			ID:            uuid.NewString(),
			Title:         "Source queued: " + src.Name,
			SourceName:    src.Name,
			URL:           src.URL,
			PublishedAt:   s.now(),
			Summary:       queuedSummary,
			IsPlaceholder: true,
		}}, result
	}

	var filtered []model.NewsItem
	for _, item := range mapped {
		if !item.PublishedAt.Before(cutoff) {
			filtered = append(filtered, item)
		}
	}

	if len(filtered) == 0 && len(mapped) > 0 {
		latest := mapped[0]
		for _, item := range mapped[1:] {
			if item.PublishedAt.After(latest.PublishedAt) {
				latest = item
			}
		}
		if latest.Summary == "" {
			latest.Summary = staleNotice
		} else {
			latest.Summary += "\n\n" + staleNotice
		}
		result.Status = model.StatusEmpty
		return []model.NewsItem{latest}, result
	}

	if len(filtered) == 0 {
		result.Status = model.StatusEmpty
		return nil, result
	}

	result.Status = model.StatusSuccess
	result.Count = len(filtered)
	return filtered, result
}

func (s *Service) mapEntries(entries []RawEntry, src model.Source) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(entries))
	for _, entry := range entries {
		link := entry.Link
		if link == "" {
			link = src.URL
		}
		items = append(items, model.NewsItem{
			ID:          uuid.NewString(),
			Title:       entry.Title,
			SourceName:  src.Name,
			URL:         link,
			PublishedAt: entry.PublishedAt,
			Summary:     entry.Summary,
			Author:      entry.Author,
			ImageURL:    entry.ImageURL,
		})
	}
	return items
}

// CheckResult extends a fetch result with probe metadata for source health
// checks.
type CheckResult struct {
	model.SourceFetchResult
	ResponseTimeMs int64    `json:"responseTimeMs"`
	SampleTitles   []string `json:"sampleTitles"`
}

// CheckSources probes each source independently at the given window and
// reports status, latency, and up to three sample titles.
func (s *Service) CheckSources(ctx context.Context, sources []model.Source, windowHours float64) []CheckResult {
	results := make([]CheckResult, 0, len(sources))
	for _, src := range sources {
		probe := src
		probe.Enabled = true
		start := s.now()
		items, fetchResults := s.FetchRecent(ctx, []model.Source{probe}, windowHours)
		elapsed := s.now().Sub(start).Milliseconds()

		check := CheckResult{ResponseTimeMs: elapsed, SampleTitles: []string{}}
		if len(fetchResults) > 0 {
			check.SourceFetchResult = fetchResults[0]
		} else {
			check.SourceFetchResult = model.SourceFetchResult{
				SourceID:   src.ID,
				SourceName: src.Name,
				Status:     model.StatusFailed,
				FetchedAt:  s.now(),
			}
		}
		for _, item := range items {
			if item.IsPlaceholder {
				continue
			}
			check.SampleTitles = append(check.SampleTitles, item.Title)
			if len(check.SampleTitles) == 3 {
				break
			}
		}
		results = append(results, check)
	}
	return results
}
