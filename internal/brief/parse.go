package brief

import (
	"regexp"
	"strings"

	"github.com/jmlester/the-ai-brief/internal/model"
)

// Parse decomposes generated brief text into its sections. It is a total
// function: any input, including empty text or text without a single
// recognizable heading, yields a valid BriefSections. The output never
// carries nil slices.
//
// The model is asked for fixed headings but gets no grammar guarantee, so the
// parser is prefix-based and case-insensitive, tolerates markdown heading
// markers, and falls back to treating the whole response as the headline when
// no headline section is found.
func Parse(text string) model.BriefSections {
	sections := splitSections(text)

	headline := strings.TrimSpace(strings.Join(sections["headline"], " "))
	if headline == "" {
		headline = strings.TrimSpace(text)
	}

	return model.BriefSections{
		Headline:         headline,
		Summary:          strings.TrimSpace(strings.Join(sections["summary"], " ")),
		OtherStories:     parseSignals(sections["signals"]),
		DeepDives:        parseStoryList(sections["deepdives"]),
		PromptStudio:     parsePromptPack(sections["promptpack"]),
		ToolsAndLaunches: parseStoryList(sections["tools"]),
		QuickLinks:       parseStoryList(sections["quicklinks"]),
		Watchlist:        cleanBullets(sections["watchlist"]),
	}
}

// Heading tokens in match order. The summary group is checked before signals
// so "Signal Summary" does not open the signals section.
var headingKeys = []struct {
	key      string
	prefixes []string
}{
	{"headline", []string{"headline", "topline"}},
	{"summary", []string{"summary", "other headlines summary", "signal summary"}},
	{"signals", []string{"other stories", "signals"}},
	{"deepdives", []string{"deep dives"}},
	{"promptpack", []string{"prompt studio"}},
	{"tools", []string{"tools & launches", "tools and launches"}},
	{"quicklinks", []string{"quick links", "also worth reading", "worth reading"}},
	{"watchlist", []string{"tomorrow's radar", "tomorrows radar", "watchlist"}},
}

func splitSections(text string) map[string][]string {
	sections := make(map[string][]string)
	var currentKey string
	var buffer []string

	commit := func() {
		if currentKey != "" && len(buffer) > 0 {
			sections[currentKey] = buffer
		}
		buffer = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if key := headingFor(trimmed); key != "" {
			commit()
			currentKey = key
			continue
		}
		if trimmed != "" {
			buffer = append(buffer, trimmed)
		}
	}
	commit()

	return sections
}

func headingFor(line string) string {
	// Tolerate markdown headings like "## Headline:".
	probe := strings.ToLower(strings.TrimLeft(line, "# "))
	for _, group := range headingKeys {
		for _, prefix := range group.prefixes {
			if strings.HasPrefix(probe, prefix) {
				return group.key
			}
		}
	}
	return ""
}

// labelIndex returns the byte offset of the first "<label>:" in line,
// matched case-insensitively, or -1. Labels are ASCII, so the scan compares
// fixed-width windows of the original bytes; indexing into a ToLower copy
// would drift whenever a rune's case pair changes byte length.
func labelIndex(line, label string) int {
	marker := label + ":"
	for i := 0; i+len(marker) <= len(line); i++ {
		if strings.EqualFold(line[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

// hasLabel reports whether line contains "<label>:" anywhere, ignoring case.
func hasLabel(line, label string) bool {
	return labelIndex(line, label) != -1
}

// valueAfterLabel returns everything after the first "<label>:" occurrence,
// with separator characters stripped. Lines without the label come back
// trimmed as-is.
func valueAfterLabel(line, label string) string {
	idx := labelIndex(line, label)
	if idx == -1 {
		return strings.TrimSpace(line)
	}
	rest := line[idx+len(label)+1:]
	return strings.TrimSpace(strings.TrimLeft(rest, ": -"))
}

// parseSourceURL handles "Source:" lines, including the combined form
// "Source: X | URL: Y". The split happens at the "url:" marker's position
// when one is present on the same line; otherwise the whole remainder is the
// source name. A source name containing the literal text "url:" would
// mis-split; no stricter grammar is guessed.
func parseSourceURL(line string) (source, url string) {
	si := labelIndex(line, "Source")
	if si == -1 {
		return valueAfterLabel(line, "Source"), ""
	}
	ui := labelIndex(line, "URL")
	if ui > si {
		source = strings.TrimSpace(line[si+len("source:") : ui])
		source = strings.TrimSpace(strings.Trim(source, "|"))
		url = strings.TrimSpace(line[ui+len("url:"):])
		return source, url
	}
	return valueAfterLabel(line, "Source"), ""
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "•")
}

func stripBullet(line string) string {
	if strings.HasPrefix(line, "- ") {
		return strings.TrimSpace(line[2:])
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "•"))
}

func parseSignals(lines []string) []model.StoryGroup {
	groups := []model.StoryGroup{}
	var theme string
	var items []model.StoryRef
	var story, source, url string

	flushItem := func() {
		if strings.TrimSpace(story) != "" {
			items = append(items, model.StoryRef{
				Story:  strings.TrimSpace(story),
				Source: source,
				URL:    url,
			})
		}
		story, source, url = "", "", ""
	}
	flushGroup := func() {
		flushItem()
		if strings.TrimSpace(theme) != "" {
			groups = append(groups, model.StoryGroup{Theme: strings.TrimSpace(theme), Items: items})
		}
		theme = ""
		items = nil
	}

	for _, line := range lines {
		switch {
		case hasLabel(line, "Theme"):
			flushGroup()
			theme = valueAfterLabel(line, "Theme")
		case isBullet(line):
			flushItem()
			cleaned := stripBullet(line)
			if hasLabel(cleaned, "Story") {
				story = valueAfterLabel(cleaned, "Story")
			} else {
				story = cleaned
			}
		case hasLabel(line, "Story"):
			story = valueAfterLabel(line, "Story")
		case hasLabel(line, "Source"):
			parsedSource, parsedURL := parseSourceURL(line)
			source = parsedSource
			if parsedURL != "" {
				url = parsedURL
			}
		case hasLabel(line, "URL"):
			url = valueAfterLabel(line, "URL")
		default:
			if story == "" {
				story = line
			} else {
				story += " " + line
			}
		}
	}
	flushGroup()

	return groups
}

func parseStoryList(lines []string) []model.StoryRef {
	items := []model.StoryRef{}
	var story, source, url string

	flush := func() {
		if strings.TrimSpace(story) != "" {
			items = append(items, model.StoryRef{
				Story:  strings.TrimSpace(story),
				Source: source,
				URL:    url,
			})
		}
		story, source, url = "", "", ""
	}

	for _, line := range lines {
		switch {
		case isBullet(line):
			flush()
			cleaned := stripBullet(line)
			if hasLabel(cleaned, "Story") {
				story = valueAfterLabel(cleaned, "Story")
			} else {
				story = cleaned
			}
		case hasLabel(line, "Story"):
			story = valueAfterLabel(line, "Story")
		case hasLabel(line, "Source"):
			parsedSource, parsedURL := parseSourceURL(line)
			source = parsedSource
			if parsedURL != "" {
				url = parsedURL
			}
		case hasLabel(line, "URL"):
			url = valueAfterLabel(line, "URL")
		default:
			if story == "" {
				story = line
			} else {
				story += " " + line
			}
		}
	}
	flush()

	return items
}

var listNumberRe = regexp.MustCompile(`^\d+[).]\s*`)

func parsePromptPack(lines []string) []model.PromptIdea {
	items := []model.PromptIdea{}
	var current model.PromptIdea

	complete := func(idea model.PromptIdea) bool {
		return idea.Task != "" || idea.Prompt != "" || idea.BestFor != "" ||
			idea.InputFormat != "" || idea.OutputFormat != ""
	}
	flush := func() {
		if complete(current) {
			items = append(items, current)
		}
		current = model.PromptIdea{}
	}

	for _, line := range lines {
		cleaned := listNumberRe.ReplaceAllString(line, "")
		numbered := cleaned != line
		switch {
		case numbered:
			flush()
			if hasLabel(cleaned, "Task") {
				current.Task = valueAfterLabel(cleaned, "Task")
			}
		case hasLabel(cleaned, "Task"):
			flush()
			current.Task = valueAfterLabel(cleaned, "Task")
		case hasLabel(cleaned, "Prompt"):
			current.Prompt = valueAfterLabel(cleaned, "Prompt")
		case hasLabel(cleaned, "Best For"):
			current.BestFor = valueAfterLabel(cleaned, "Best For")
		case hasLabel(cleaned, "Input Format"):
			current.InputFormat = valueAfterLabel(cleaned, "Input Format")
		case hasLabel(cleaned, "Output Format"):
			current.OutputFormat = valueAfterLabel(cleaned, "Output Format")
		default:
			if current.Prompt == "" {
				current.Prompt = line
			} else {
				current.Prompt += " " + line
			}
		}
	}
	flush()

	return items
}

func cleanBullets(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "- "):
			line = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "•"):
			line = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		case listNumberRe.MatchString(line):
			line = listNumberRe.ReplaceAllString(line, "")
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
