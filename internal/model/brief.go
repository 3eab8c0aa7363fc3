package model

import "time"

// StoryRef is one referenced story inside a brief section.
type StoryRef struct {
	Story  string `json:"story"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// StoryGroup is a themed group of stories in the Other Stories section.
type StoryGroup struct {
	Theme string     `json:"theme"`
	Items []StoryRef `json:"items"`
}

// PromptIdea is one entry of the Prompt Studio section.
type PromptIdea struct {
	Task         string `json:"task"`
	Prompt       string `json:"prompt"`
	BestFor      string `json:"bestFor"`
	InputFormat  string `json:"inputFormat"`
	OutputFormat string `json:"outputFormat"`
}

// BriefSections is the structured form of a generated brief. Every field is
// present even when the corresponding section was missing from the model
// output: strings default to empty and slices are never nil.
type BriefSections struct {
	Headline         string       `json:"headline"`
	Summary          string       `json:"summary"`
	OtherStories     []StoryGroup `json:"otherStories"`
	DeepDives        []StoryRef   `json:"deepDives"`
	PromptStudio     []PromptIdea `json:"promptStudio"`
	ToolsAndLaunches []StoryRef   `json:"toolsAndLaunches"`
	QuickLinks       []StoryRef   `json:"quickLinks"`
	Watchlist        []string     `json:"watchlist"`
}

// ArchivedBrief is one stored generation cycle.
type ArchivedBrief struct {
	ID                 string
	Sections           BriefSections
	SourceResults      []SourceFetchResult
	CoverageSummary    string
	ModelUsed          string
	ExpandedWindowUsed bool
	CreatedAt          time.Time
}
