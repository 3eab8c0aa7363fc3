package brief

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const sampleBrief = `Headline:
Frontier labs ship smaller, cheaper models.

Summary:
A wave of releases focused on efficiency. Pricing pressure is mounting across providers.

Other Stories:
- Theme: Models
  - Story: OpenAI released a distilled reasoning model.
    Source: OpenAI Blog
    URL: https://example.com/openai
  - Story: DeepMind published new scaling results.
    Source: DeepMind Blog
    URL: https://example.com/deepmind
- Theme: Policy
  - Story: The EU opened a consultation on model audits.
    Source: OECD AI Policy
    URL: https://example.com/eu

Deep Dives:
- Story: A close look at inference cost curves.
  Source: The Decoder | URL: https://example.com/costs

Prompt Studio:
1) Task: Meeting digest
   Prompt: Summarize this transcript into five decisions.
   Best For: Teams with long standups
   Input Format: Raw transcript text
   Output Format: Bulleted decisions

Tomorrow's Radar:
- Watch for the OpenAI developer event pricing announcement.
- NVIDIA earnings will signal infrastructure demand.`

func TestParse_FullDocument(t *testing.T) {
	got := Parse(sampleBrief)

	assert.Equal(t, "Frontier labs ship smaller, cheaper models.", got.Headline)
	assert.Equal(t,
		"A wave of releases focused on efficiency. Pricing pressure is mounting across providers.",
		got.Summary)

	assert.Equal(t, 2, len(got.OtherStories))
	assert.Equal(t, "Models", got.OtherStories[0].Theme)
	assert.Equal(t, 2, len(got.OtherStories[0].Items))
	assert.Equal(t, "OpenAI released a distilled reasoning model.", got.OtherStories[0].Items[0].Story)
	assert.Equal(t, "OpenAI Blog", got.OtherStories[0].Items[0].Source)
	assert.Equal(t, "https://example.com/openai", got.OtherStories[0].Items[0].URL)
	assert.Equal(t, "Policy", got.OtherStories[1].Theme)

	assert.Equal(t, 1, len(got.DeepDives))
	assert.Equal(t, "The Decoder", got.DeepDives[0].Source)
	assert.Equal(t, "https://example.com/costs", got.DeepDives[0].URL)

	assert.Equal(t, 1, len(got.PromptStudio))
	assert.Equal(t, "Meeting digest", got.PromptStudio[0].Task)
	assert.Equal(t, "Summarize this transcript into five decisions.", got.PromptStudio[0].Prompt)
	assert.Equal(t, "Teams with long standups", got.PromptStudio[0].BestFor)
	assert.Equal(t, "Raw transcript text", got.PromptStudio[0].InputFormat)
	assert.Equal(t, "Bulleted decisions", got.PromptStudio[0].OutputFormat)

	assert.Equal(t, 2, len(got.Watchlist))
	assert.Equal(t, "Watch for the OpenAI developer event pricing announcement.", got.Watchlist[0])
}

func TestParse_EmptyText(t *testing.T) {
	got := Parse("")

	assert.Equal(t, "", got.Headline)
	assert.Equal(t, "", got.Summary)
	assert.NotEqual(t, got.OtherStories, nil)
	assert.NotEqual(t, got.DeepDives, nil)
	assert.NotEqual(t, got.PromptStudio, nil)
	assert.NotEqual(t, got.QuickLinks, nil)
	assert.NotEqual(t, got.Watchlist, nil)
	assert.Equal(t, 0, len(got.OtherStories))
}

func TestParse_NoHeadingsFallsBackToHeadline(t *testing.T) {
	got := Parse("The model refused to follow the format today.")

	assert.Equal(t, "The model refused to follow the format today.", got.Headline)
	assert.Equal(t, "", got.Summary)
}

func TestParse_MarkdownHeadings(t *testing.T) {
	text := "## Headline:\nBig day for open source.\n\n## Summary:\nSeveral releases landed at once."

	got := Parse(text)

	assert.Equal(t, "Big day for open source.", got.Headline)
	assert.Equal(t, "Several releases landed at once.", got.Summary)
}

func TestParse_SignalSummaryHeadingIsSummary(t *testing.T) {
	text := "Signal Summary:\nJust a quiet day.\n\nSignals:\n- Theme: Misc\n  - Story: Nothing happened.\n    Source: Nowhere\n    URL: https://example.com"

	got := Parse(text)

	assert.Equal(t, "Just a quiet day.", got.Summary)
	assert.Equal(t, 1, len(got.OtherStories))
	assert.Equal(t, "Misc", got.OtherStories[0].Theme)
}

// Case-folding can change a rune's byte length (Ⱥ grows, İ shrinks), so label
// offsets must be located in the original bytes, not a lowered copy.
func TestParse_MultibyteRunesBeforeLabel(t *testing.T) {
	text := "Deep Dives:\n- Story: A look at model pricing\n" +
		strings.Repeat("Ⱥ", 20) + " Source: Somewhere Nice | URL: https://example.com/x"

	got := Parse(text)

	assert.Equal(t, 1, len(got.DeepDives))
	assert.Equal(t, "Somewhere Nice", got.DeepDives[0].Source)
	assert.Equal(t, "https://example.com/x", got.DeepDives[0].URL)
}

func TestParse_ShrinkingCaseFoldBeforeLabel(t *testing.T) {
	text := "Deep Dives:\n- Story: A look at model pricing\nİİİİ Source: Somewhere Nice"

	got := Parse(text)

	assert.Equal(t, 1, len(got.DeepDives))
	assert.Equal(t, "Somewhere Nice", got.DeepDives[0].Source)
}

func TestParse_ContinuationLinesJoinStory(t *testing.T) {
	text := "Deep Dives:\n- Story: The first half of a long sentence\n  that continues on the next line.\n  Source: Somewhere\n  URL: https://example.com/x"

	got := Parse(text)

	assert.Equal(t, 1, len(got.DeepDives))
	assert.Equal(t,
		"The first half of a long sentence that continues on the next line.",
		got.DeepDives[0].Story)
}
