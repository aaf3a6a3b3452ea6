package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/syndesk/syndesk/internal/content"
)

// Relevance point values. Signals are additive and applied independently,
// so a query can stack title, tag and description points.
const (
	pointsExactTitle      = 100
	pointsTitleContains   = 50
	pointsTitleWord       = 20
	pointsDescription     = 15
	pointsTag             = 10
	pointsCategory        = 8
	pointsDescriptionWord = 5
)

// Result is one scored search hit. Highlighted fields wrap every
// case-insensitive occurrence of the literal query in <mark> spans.
type Result struct {
	Article          content.Article `json:"article"`
	Score            int             `json:"score"`
	HighlightedTitle string          `json:"highlighted_title"`
	HighlightedDesc  string          `json:"highlighted_description"`
}

// Searcher scores free-text queries against the static article corpus. The
// corpus is small and compiled in, so scoring everything in memory and
// paginating afterwards is fine; a large dynamic corpus would need a real
// search index instead.
type Searcher struct {
	registry *content.Registry
}

func NewSearcher(registry *content.Registry) *Searcher {
	return &Searcher{registry: registry}
}

// Relevance scores one article against a query. Comparison is
// case-insensitive on both sides. Zero means no signal matched and the
// article is excluded from results.
func Relevance(query string, a content.Article) int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}
	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)
	category := strings.ToLower(a.Category)

	score := 0
	queryWords := strings.Fields(query)

	// Title signals are first-match-wins: exact beats containment beats
	// per-word, they never stack with each other.
	switch {
	case title == query:
		score += pointsExactTitle
	case strings.Contains(title, query):
		score += pointsTitleContains
	default:
		titleWords := strings.Fields(title)
		for _, qw := range queryWords {
			for _, tw := range titleWords {
				if strings.Contains(tw, qw) {
					score += pointsTitleWord
					break
				}
			}
		}
	}

	// Same for description: whole-query containment, else per-word.
	if strings.Contains(description, query) {
		score += pointsDescription
	} else {
		for _, qw := range queryWords {
			if strings.Contains(description, qw) {
				score += pointsDescriptionWord
			}
		}
	}

	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			score += pointsTag
		}
	}

	if strings.Contains(category, query) {
		score += pointsCategory
	}

	return score
}

// Search scores the whole corpus, sorts by score descending (slug ascending
// on ties) and applies offset/limit over the scored set.
func (s *Searcher) Search(query, category string, limit, offset int) []Result {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	results := make([]Result, 0)
	for _, a := range s.registry.All() {
		if category != "" && a.Category != category {
			continue
		}
		score := Relevance(query, a)
		if score == 0 {
			continue
		}
		results = append(results, Result{
			Article:          a,
			Score:            score,
			HighlightedTitle: Highlight(a.Title, query),
			HighlightedDesc:  Highlight(a.Description, query),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Article.Slug < results[j].Article.Slug
	})

	if offset >= len(results) {
		return []Result{}
	}
	results = results[offset:]
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Highlight wraps every case-insensitive occurrence of the literal query in
// text with <mark>…</mark>. The query goes through regexp.QuoteMeta first:
// user queries like "c++" or "a.b" must match literally, not as patterns.
func Highlight(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		// QuoteMeta makes this unreachable for any input; fail open.
		return text
	}
	return re.ReplaceAllString(text, "<mark>$0</mark>")
}
