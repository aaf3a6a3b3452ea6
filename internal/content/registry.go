package content

// Article is the static metadata for one help article. The set of articles
// is compiled into the binary and immutable at runtime; engagement rows that
// reference a slug outside this set are rejected at ingest and dropped from
// rankings.
type Article struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	ReadTimeMinutes int      `json:"read_time_minutes"`
}

// Registry is an immutable lookup over the compiled article set.
type Registry struct {
	bySlug   map[string]Article
	ordered  []Article
	byCat    map[string][]Article
	catNames []string
}

// NewRegistry builds a registry from a fixed article list. Later duplicates
// of a slug are ignored; the first occurrence wins.
func NewRegistry(articles []Article) *Registry {
	r := &Registry{
		bySlug: make(map[string]Article, len(articles)),
		byCat:  make(map[string][]Article),
	}
	for _, a := range articles {
		if _, dup := r.bySlug[a.Slug]; dup {
			continue
		}
		r.bySlug[a.Slug] = a
		r.ordered = append(r.ordered, a)
		if _, seen := r.byCat[a.Category]; !seen {
			r.catNames = append(r.catNames, a.Category)
		}
		r.byCat[a.Category] = append(r.byCat[a.Category], a)
	}
	return r
}

// BySlug returns the article for slug, or nil when the slug is unknown.
func (r *Registry) BySlug(slug string) *Article {
	a, ok := r.bySlug[slug]
	if !ok {
		return nil
	}
	return &a
}

// All returns every article in declaration order. The returned slice is a
// copy; callers may not mutate the registry through it.
func (r *Registry) All() []Article {
	out := make([]Article, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByCategory returns the articles in one category, declaration order.
func (r *Registry) ByCategory(category string) []Article {
	src := r.byCat[category]
	out := make([]Article, len(src))
	copy(out, src)
	return out
}

// Categories returns the distinct category names in first-seen order.
func (r *Registry) Categories() []string {
	out := make([]string, len(r.catNames))
	copy(out, r.catNames)
	return out
}

// Len reports the number of articles in the registry.
func (r *Registry) Len() int {
	return len(r.ordered)
}
