package handler

import (
	"github.com/jmlester/the-ai-brief/internal/model"
	"github.com/jmlester/the-ai-brief/pkg/feed"
)

// Settings are the per-request generation settings. Empty fields fall back to
// the server configuration.
type Settings struct {
	APIKey          string `json:"apiKey,omitempty"`
	Provider        string `json:"provider,omitempty"`
	Model           string `json:"model"`
	Tone            string `json:"tone"`
	FocusTopics     string `json:"focusTopics"`
	TimeWindowHours int    `json:"timeWindowHours"`
}

type BriefRequest struct {
	Sources  []model.Source `json:"sources"`
	Settings *Settings      `json:"settings"`
}

type NewsRequest struct {
	Sources []model.Source `json:"sources"`
	Hours   float64        `json:"hours"`
}

type NewsResponse struct {
	Items   []model.NewsItem          `json:"items"`
	Results []model.SourceFetchResult `json:"results"`
}

type CheckRequest struct {
	Sources []model.Source `json:"sources"`
	Hours   float64        `json:"hours"`
}

type CheckResponse struct {
	Results []feed.CheckResult `json:"results"`
}

// BriefPayload is the terminal SSE event body and the shape cached as the
// latest brief.
type BriefPayload struct {
	Text               string                    `json:"text"`
	Sections           model.BriefSections       `json:"sections"`
	SourceResults      []model.SourceFetchResult `json:"sourceResults"`
	CoverageSummary    string                    `json:"coverageSummary"`
	ExpandedWindowUsed bool                      `json:"expandedWindowUsed"`
	DedupCount         int                       `json:"dedupCount"`
}

type ArchivedBriefResponse struct {
	ID                 string                    `json:"id"`
	Sections           model.BriefSections       `json:"sections"`
	SourceResults      []model.SourceFetchResult `json:"sourceResults"`
	CoverageSummary    string                    `json:"coverageSummary"`
	ModelUsed          string                    `json:"modelUsed"`
	ExpandedWindowUsed bool                      `json:"expandedWindowUsed"`
	CreatedAt          string                    `json:"createdAt"`
}

type ArchiveResponse struct {
	Briefs []ArchivedBriefResponse `json:"briefs"`
	Limit  int                     `json:"limit"`
}

type HealthHistoryResponse struct {
	SourceID  string                   `json:"sourceId"`
	Snapshots []HealthSnapshotResponse `json:"snapshots"`
}

type HealthSnapshotResponse struct {
	SourceName string `json:"sourceName"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Message    string `json:"message,omitempty"`
	CheckedAt  string `json:"checkedAt"`
}
