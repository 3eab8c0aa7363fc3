package brief

import (
	"fmt"
	"strings"

	"github.com/jmlester/the-ai-brief/internal/model"
)

type Tone string

const (
	ToneExecutive Tone = "executive"
	TonePractical Tone = "practical"
	ToneBuilder   Tone = "builder"
)

const maxPromptItems = 20

var toneDescriptions = map[Tone]string{
	ToneExecutive: "executive, concise, outcomes-focused",
	TonePractical: "practical, clear, with actionable takeaways",
	ToneBuilder:   "builder-focused, with experiments and prompts",
}

// BuildPrompt renders the instruction document sent to the generation model.
// It is a pure function of its inputs. The headings it dictates are the wire
// contract with Parse; changing one side means changing both.
func BuildPrompt(items []model.NewsItem, tone Tone, focusTopics string, preferredSources []string, windowHours int) string {
	toneDescription, ok := toneDescriptions[tone]
	if !ok {
		toneDescription = toneDescriptions[TonePractical]
	}

	var newsLines []string
	for _, item := range items {
		if len(newsLines) == maxPromptItems {
			break
		}
		newsLines = append(newsLines, fmt.Sprintf("- %s | %s | %s", item.Title, item.SourceName, item.URL))
	}
	newsBlock := strings.Join(newsLines, "\n")
	if newsBlock == "" {
		newsBlock = "- No items available"
	}

	topicsLine := strings.TrimSpace(focusTopics)
	if topicsLine == "" {
		topicsLine = "None provided."
	}
	preferredLine := "None"
	if len(preferredSources) > 0 {
		preferredLine = strings.Join(preferredSources, ", ")
	}
	windowLine := "24 hours"
	if windowHours > 0 {
		windowLine = fmt.Sprintf("%d hours", windowHours)
	}

	return fmt.Sprintf(`Create "The AI Brief" news brief. Tone: %s.
Focus on the last %s and avoid hype. Use the items below.
Focus topics: %s
Preferred sources: %s

Output format (use these exact headings and labels):
Headline:
<1 sentence>

Summary:
<3-5 sentences, readable paragraph>

Other Stories:
- Theme: <theme name>
  - Story: <1 sentence>
    Source: <source name>
    URL: <full link>
(Provide 3-4 themes.)

Deep Dives:
- Story: <1-2 sentences>
  Source: <source name>
  URL: <full link>
(Provide 2-3 items.)

Prompt Studio:
1) Task: <short task name>
   Prompt: <1-2 sentences, general daily utility prompt>
   Best For: <who/what it's best for>
   Input Format: <what the user should paste>
   Output Format: <what the model should return>
(Provide 2-3 prompts.)

Tomorrow's Radar:
- <2-3 full-sentence, concrete watch items tied to the provided sources>
(Do NOT include Source/URL lines here. Each bullet should be a single sentence. Avoid generic language. Each item must reference a specific company, product, model, or policy mentioned in the sources and be distinct from Other Stories and Deep Dives.)

Critical constraints:
- Do not ask the user for more sources or items.
- Do not include placeholders, caveats, or meta-commentary about missing data.
- If sources are limited, generalize carefully while staying grounded in the provided items.
- Avoid duplicate sentences across sections; each item should be unique.
- Ensure that each distinct source listed above is referenced at least once in Other Stories or Deep Dives so the brief reflects the full set of provided news.
- When you mention a source, use the exact source name from the list and base the sentence on the associated title and URL so it is grounded.

%s`, toneDescription, windowLine, topicsLine, preferredLine, newsBlock)
}
