package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/jmlester/the-ai-brief/internal/model"
)

const (
	minScrapeTitleLen = 20
	maxScrapeTitleLen = 140
	maxScrapeItems    = 12
)

// Heading and article containers first, any anchor as a last resort.
var scrapeSelectors = []string{"article a", "h2 a", "h3 a", "a"}

// Scraper extracts headline links from a source's landing page when the
// source has no usable feed.
type Scraper struct {
	client *http.Client
	now    func() time.Time
}

func NewScraper(client *http.Client) *Scraper {
	return &Scraper{client: client, now: time.Now}
}

// ScrapePage fetches the source URL as HTML and returns up to 12 candidate
// stories. Only same-host links with plausible headline text survive; when
// nothing does, a single item built from the page title is returned.
func (s *Scraper) ScrapePage(ctx context.Context, source model.Source) ([]model.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: source.URL, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TheAIBrief/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: source.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: source.URL, Err: fmt.Errorf("scrape failed (%d)", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: source.URL, Err: err}
	}

	base, err := url.Parse(source.URL)
	if err != nil {
		return nil, &FetchError{URL: source.URL, Err: err}
	}
	baseHost := normalizeHost(base.Hostname())

	var candidates []model.NewsItem
	seen := make(map[string]bool)
	now := s.now()

	for _, selector := range scrapeSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title := strings.Join(strings.Fields(sel.Text()), " ")
			if len(title) < minScrapeTitleLen || len(title) > maxScrapeTitleLen {
				return true
			}
			href := strings.TrimSpace(sel.AttrOr("href", ""))
			if href == "" || strings.HasPrefix(href, "#") ||
				strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
				return true
			}
			ref, err := url.Parse(href)
			if err != nil {
				return true
			}
			absolute := base.ResolveReference(ref)
			if normalizeHost(absolute.Hostname()) != baseHost {
				return true
			}
			link := absolute.String()
			if seen[link] {
				return true
			}
			seen[link] = true
			candidates = append(candidates, model.NewsItem{
				ID:          uuid.NewString(),
				Title:       title,
				SourceName:  source.Name,
				URL:         link,
				PublishedAt: now,
			})
			return len(candidates) < maxScrapeItems
		})
		if len(candidates) >= maxScrapeItems {
			break
		}
	}

	if len(candidates) == 0 {
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			candidates = append(candidates, model.NewsItem{
				ID:          uuid.NewString(),
				Title:       title,
				SourceName:  source.Name,
				URL:         source.URL,
				PublishedAt: now,
			})
		}
	}

	if len(candidates) > maxScrapeItems {
		candidates = candidates[:maxScrapeItems]
	}
	return candidates, nil
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
