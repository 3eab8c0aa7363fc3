package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Layouts tried against raw date strings when the feed parser could not make
// sense of the publish time itself. RSS 2.0 leans on RFC 822 variants, Atom
// on ISO 8601, and a few feeds emit SQL-style timestamps.
var dateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 -0700",
	"Mon, 02 Jan 2006 15:04 MST",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// Fetcher retrieves and normalizes RSS/Atom feeds.
type Fetcher struct {
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFetcher(client *http.Client) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "Mozilla/5.0 (compatible; TheAIBrief/1.0)"
	return &Fetcher{parser: parser, now: time.Now}
}

// FetchFeed pulls url and returns its entries. A well-formed feed with zero
// entries is not an error. Entries without a title are dropped. A publish
// date that cannot be parsed falls back to now rather than dropping the
// story.
func (f *Fetcher) FetchFeed(ctx context.Context, url string) ([]RawEntry, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	var entries []RawEntry
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		entries = append(entries, RawEntry{
			Title:       title,
			Link:        strings.TrimSpace(item.Link),
			PublishedAt: f.entryDate(item),
			Summary:     entrySummary(item),
			Author:      entryAuthor(item),
			ImageURL:    entryImage(item),
		})
	}

	return entries, nil
}

func (f *Fetcher) entryDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	for _, raw := range []string{item.Published, item.Updated} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return f.now()
}

func entrySummary(item *gofeed.Item) string {
	if s := strings.TrimSpace(item.Description); s != "" {
		return s
	}
	return strings.TrimSpace(item.Content)
}

func entryAuthor(item *gofeed.Item) string {
	for _, author := range item.Authors {
		if author != nil && strings.TrimSpace(author.Name) != "" {
			return strings.TrimSpace(author.Name)
		}
	}
	return ""
}

func entryImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}
