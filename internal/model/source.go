package model

import "time"

type SourceKind string

const (
	KindRSS        SourceKind = "rss"
	KindWebsite    SourceKind = "website"
	KindNewsletter SourceKind = "newsletter"
	KindSocial     SourceKind = "social"
)

// Source is a configured feed or site to ingest from. Sources come from the
// built-in catalog or user configuration and are never deleted automatically.
type Source struct {
	ID          string     `json:"id" mapstructure:"id"`
	Name        string     `json:"name" mapstructure:"name"`
	URL         string     `json:"url" mapstructure:"url"`
	Kind        SourceKind `json:"kind" mapstructure:"kind"`
	Category    string     `json:"category,omitempty" mapstructure:"category"`
	Summary     string     `json:"summary,omitempty" mapstructure:"summary"`
	Tags        []string   `json:"tags,omitempty" mapstructure:"tags"`
	IngestURL   string     `json:"ingestUrl,omitempty" mapstructure:"ingest_url"`
	Enabled     bool       `json:"enabled" mapstructure:"enabled"`
	Preferred   bool       `json:"preferred" mapstructure:"preferred"`
	AllowScrape bool       `json:"allowScrape" mapstructure:"allow_scrape"`
}

// CanIngest reports whether the source has a syndicated feed to pull from,
// either directly (rss kind) or through a bridge feed.
func (s Source) CanIngest() bool {
	return s.Kind == KindRSS || s.IngestURL != ""
}

// FeedURL returns the URL to ingest from for sources where CanIngest is true.
func (s Source) FeedURL() string {
	if s.Kind == KindRSS {
		return s.URL
	}
	return s.IngestURL
}

type FetchStatus string

const (
	StatusSuccess FetchStatus = "success"
	StatusEmpty   FetchStatus = "empty"
	StatusFailed  FetchStatus = "failed"
	StatusQueued  FetchStatus = "queued"
)

// SourceFetchResult is the outcome of fetching one source during a cycle.
// Exactly one result is recorded per attempted source.
type SourceFetchResult struct {
	SourceID   string      `json:"sourceId"`
	SourceName string      `json:"sourceName"`
	Status     FetchStatus `json:"status"`
	Count      int         `json:"count,omitempty"`
	Message    string      `json:"message,omitempty"`
	FetchedAt  time.Time   `json:"fetchedAt"`
}

// SourceHealthSnapshot is one archived fetch outcome for a source.
type SourceHealthSnapshot struct {
	ID         int64
	SourceID   string
	SourceName string
	Status     FetchStatus
	Count      int
	Message    string
	CheckedAt  time.Time
}
