package brief

import (
	"fmt"
	"strings"

	"github.com/jmlester/the-ai-brief/internal/model"
)

// FormatMarkdown renders a parsed brief back into a readable markdown
// document, used by the CLI and for exporting archived briefs.
func FormatMarkdown(sections model.BriefSections) string {
	var lines []string

	lines = append(lines, "# The AI Brief", "")
	lines = append(lines, "## "+sections.Headline, "")
	lines = append(lines, sections.Summary, "")

	if len(sections.OtherStories) > 0 {
		lines = append(lines, "## Other Stories", "")
		for _, group := range sections.OtherStories {
			lines = append(lines, "### "+group.Theme)
			for _, item := range group.Items {
				lines = append(lines, markdownStoryLine(item))
			}
			lines = append(lines, "")
		}
	}

	if len(sections.DeepDives) > 0 {
		lines = append(lines, "## Deep Dives", "")
		for _, item := range sections.DeepDives {
			lines = append(lines, markdownStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.PromptStudio) > 0 {
		lines = append(lines, "## Prompt Studio", "")
		for _, idea := range sections.PromptStudio {
			lines = append(lines, "### "+idea.Task)
			lines = append(lines, "**Prompt:** "+idea.Prompt)
			if idea.BestFor != "" {
				lines = append(lines, "**Best For:** "+idea.BestFor)
			}
			if idea.InputFormat != "" {
				lines = append(lines, "**Input:** "+idea.InputFormat)
			}
			if idea.OutputFormat != "" {
				lines = append(lines, "**Output:** "+idea.OutputFormat)
			}
			lines = append(lines, "")
		}
	}

	if len(sections.ToolsAndLaunches) > 0 {
		lines = append(lines, "## Tools & Launches", "")
		for _, item := range sections.ToolsAndLaunches {
			lines = append(lines, markdownStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.QuickLinks) > 0 {
		lines = append(lines, "## Quick Links", "")
		for _, item := range sections.QuickLinks {
			lines = append(lines, markdownStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.Watchlist) > 0 {
		lines = append(lines, "## Tomorrow's Radar", "")
		for _, entry := range sections.Watchlist {
			lines = append(lines, "- "+entry)
		}
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func markdownStoryLine(item model.StoryRef) string {
	line := "- " + item.Story
	if item.Source != "" {
		line += fmt.Sprintf(" (%s)", item.Source)
	}
	if item.URL != "" {
		line += " — " + item.URL
	}
	return line
}

// FormatPlainText renders a brief without markup, for terminals and logs.
func FormatPlainText(sections model.BriefSections) string {
	var lines []string

	lines = append(lines, "The AI Brief", sections.Headline, "", sections.Summary, "")

	if len(sections.OtherStories) > 0 {
		lines = append(lines, "Other Stories:")
		for _, group := range sections.OtherStories {
			lines = append(lines, "  "+group.Theme+":")
			for _, item := range group.Items {
				lines = append(lines, "    - "+plainStoryLine(item))
			}
		}
		lines = append(lines, "")
	}

	if len(sections.DeepDives) > 0 {
		lines = append(lines, "Deep Dives:")
		for _, item := range sections.DeepDives {
			lines = append(lines, "  - "+plainStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.PromptStudio) > 0 {
		lines = append(lines, "Prompt Studio:")
		for _, idea := range sections.PromptStudio {
			lines = append(lines, fmt.Sprintf("  %s: %s", idea.Task, idea.Prompt))
		}
		lines = append(lines, "")
	}

	if len(sections.ToolsAndLaunches) > 0 {
		lines = append(lines, "Tools & Launches:")
		for _, item := range sections.ToolsAndLaunches {
			lines = append(lines, "  - "+plainStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.QuickLinks) > 0 {
		lines = append(lines, "Quick Links:")
		for _, item := range sections.QuickLinks {
			lines = append(lines, "  - "+plainStoryLine(item))
		}
		lines = append(lines, "")
	}

	if len(sections.Watchlist) > 0 {
		lines = append(lines, "Tomorrow's Radar:")
		for _, entry := range sections.Watchlist {
			lines = append(lines, "  - "+entry)
		}
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func plainStoryLine(item model.StoryRef) string {
	if item.Source != "" {
		return fmt.Sprintf("%s (%s)", item.Story, item.Source)
	}
	return item.Story
}
