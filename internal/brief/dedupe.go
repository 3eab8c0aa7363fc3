package brief

import (
	"sort"
	"strings"

	"github.com/jmlester/the-ai-brief/internal/model"
)

// NormalizeTitle builds the dedup key for a story title: lowercase, collapse
// non-alphanumeric runs to spaces, drop tokens of two characters or fewer.
// Wire-service repeats across outlets land on the same key even when
// punctuation or casing differ. Short-titled distinct stories can collide;
// that tradeoff is accepted.
func NormalizeTitle(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	var kept []string
	for _, token := range strings.Fields(b.String()) {
		if len(token) > 2 {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}

// Dedupe collapses near-duplicate stories onto one item per normalized title,
// keeping the one with the later publish time. The output membership does not
// depend on input order; the output is sorted newest first so repeated calls
// are stable.
func Dedupe(items []model.NewsItem) []model.NewsItem {
	best := make(map[string]model.NewsItem, len(items))
	for _, item := range items {
		key := NormalizeTitle(item.Title)
		existing, ok := best[key]
		if !ok || item.PublishedAt.After(existing.PublishedAt) {
			best[key] = item
		}
	}

	out := make([]model.NewsItem, 0, len(best))
	for _, item := range best {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Rank orders items for prompt construction: preferred sources first, then
// recency. The sort is stable so equal items keep their relative order.
func Rank(items []model.NewsItem, preferredSources []string) []model.NewsItem {
	preferred := make(map[string]bool, len(preferredSources))
	for _, name := range preferredSources {
		preferred[name] = true
	}

	ranked := make([]model.NewsItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		lhs, rhs := preferred[ranked[i].SourceName], preferred[ranked[j].SourceName]
		if lhs != rhs {
			return lhs
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})
	return ranked
}
