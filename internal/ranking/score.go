package ranking

import (
	"fmt"
	"math"
)

// Counters are the engagement aggregates for one article, recomputed from
// the raw view/rating event rows for a given time window.
//
// Invariants: UniqueViews <= TotalViews, AverageReadPercentage in [0,100],
// AverageRating in [0,5] and 0 whenever RatingCount is 0.
type Counters struct {
	Slug                  string  `json:"slug"`
	TotalViews            int     `json:"total_views"`
	UniqueViews           int     `json:"unique_views"`
	AverageReadPercentage float64 `json:"average_read_percentage"`
	RatingCount           int     `json:"rating_count"`
	AverageRating         float64 `json:"average_rating"`
}

// Scoring weights. These are a tuning choice, not derived from data: adjust
// freely as long as Score stays monotone non-decreasing in every input.
const (
	weightTotalViews = 0.3
	weightUniqueView = 0.2
	weightRating     = 0.3
	weightReadDepth  = 0.2
)

// Score computes the popularity score for one article's counters.
//
// Counts go through ln(n+1): the +1 keeps ln defined at zero, and the log
// dampens outliers so an article with orders of magnitude more views cannot
// permanently dominate the ranking. A zero-rating article contributes 0 to
// the rating term (AverageRating is 0 by invariant, never NaN). All-zero
// counters score exactly 0.
func Score(c Counters) float64 {
	rating := c.AverageRating
	if c.RatingCount == 0 {
		rating = 0
	}
	return weightTotalViews*math.Log(float64(c.TotalViews)+1) +
		weightUniqueView*math.Log(float64(c.UniqueViews)+1) +
		weightRating*rating*math.Log(float64(c.RatingCount)+1) +
		weightReadDepth*(c.AverageReadPercentage/100)
}

// FormatViews renders a view count for display: 999 → "999",
// 12345 → "12.3k", 4200000 → "4.2M".
func FormatViews(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 1000000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}
