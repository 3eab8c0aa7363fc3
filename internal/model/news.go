package model

import "time"

// NewsItem is a single retrieved story. Placeholder items stand in for sources
// that could not be ingested and are excluded from dedup and prompt building.
type NewsItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SourceName    string    `json:"source"`
	URL           string    `json:"url"`
	PublishedAt   time.Time `json:"publishedAt"`
	Summary       string    `json:"summary"`
	IsPlaceholder bool      `json:"isPlaceholder"`
	Author        string    `json:"author,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
}
