package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreZeroInput(t *testing.T) {
	assert.Equal(t, 0.0, Score(Counters{}))
}

func TestScoreConcreteValue(t *testing.T) {
	c := Counters{
		TotalViews:            1000,
		UniqueViews:           400,
		AverageRating:         4.5,
		RatingCount:           20,
		AverageReadPercentage: 80,
	}
	// 0.3*ln(1001) + 0.2*ln(401) + 0.3*4.5*ln(21) + 0.2*0.8
	assert.InDelta(t, 7.54, Score(c), 0.01)
}

func TestScoreNoRatingsIsNotNaN(t *testing.T) {
	c := Counters{TotalViews: 10, UniqueViews: 5, RatingCount: 0, AverageRating: 0}
	got := Score(c)
	assert.False(t, got != got, "score must not be NaN")
	assert.Greater(t, got, 0.0)
}

func TestScoreMonotonicity(t *testing.T) {
	base := Counters{
		TotalViews:            50,
		UniqueViews:           20,
		AverageRating:         3.5,
		RatingCount:           8,
		AverageReadPercentage: 40,
	}
	baseScore := Score(base)

	tests := []struct {
		name string
		bump func(Counters) Counters
	}{
		{"total views", func(c Counters) Counters { c.TotalViews += 100; return c }},
		{"unique views", func(c Counters) Counters { c.UniqueViews += 10; return c }},
		{"average rating", func(c Counters) Counters { c.AverageRating = 5; return c }},
		{"rating count", func(c Counters) Counters { c.RatingCount += 5; return c }},
		{"read percentage", func(c Counters) Counters { c.AverageReadPercentage = 90; return c }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.GreaterOrEqual(t, Score(tt.bump(base)), baseScore)
		})
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{12345, "12.3k"},
		{999999, "1000.0k"},
		{1000000, "1.0M"},
		{4200000, "4.2M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatViews(tt.in))
	}
}
