package brief

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jmlester/the-ai-brief/internal/model"
)

func sampleSections() model.BriefSections {
	return model.BriefSections{
		Headline: "A big day for small models.",
		Summary:  "Several labs shipped distilled variants.",
		OtherStories: []model.StoryGroup{
			{Theme: "Models", Items: []model.StoryRef{
				{Story: "OpenAI shipped a mini model.", Source: "OpenAI Blog", URL: "https://example.com/mini"},
			}},
		},
		DeepDives: []model.StoryRef{
			{Story: "Inference costs keep falling.", Source: "The Decoder", URL: "https://example.com/costs"},
		},
		PromptStudio: []model.PromptIdea{
			{Task: "Daily digest", Prompt: "Summarize my inbox.", BestFor: "Busy mornings"},
		},
		Watchlist: []string{"Watch NVIDIA earnings."},
	}
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(sampleSections())

	assert.Equal(t, true, strings.HasPrefix(out, "# The AI Brief"))
	assert.Equal(t, true, strings.Contains(out, "## A big day for small models."))
	assert.Equal(t, true, strings.Contains(out, "### Models"))
	assert.Equal(t, true, strings.Contains(out, "- OpenAI shipped a mini model. (OpenAI Blog) — https://example.com/mini"))
	assert.Equal(t, true, strings.Contains(out, "**Prompt:** Summarize my inbox."))
	assert.Equal(t, true, strings.Contains(out, "## Tomorrow's Radar"))
	// Empty sections are omitted entirely.
	assert.Equal(t, false, strings.Contains(out, "Quick Links"))
}

func TestFormatPlainText(t *testing.T) {
	out := FormatPlainText(sampleSections())

	assert.Equal(t, true, strings.HasPrefix(out, "The AI Brief"))
	assert.Equal(t, true, strings.Contains(out, "    - OpenAI shipped a mini model. (OpenAI Blog)"))
	assert.Equal(t, true, strings.Contains(out, "  Daily digest: Summarize my inbox."))
	assert.Equal(t, false, strings.Contains(out, "**"))
}
