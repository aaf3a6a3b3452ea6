package ranking

import (
	"fmt"
	"time"
)

// Timeframe is the lookback window for popularity queries.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

// ParseTimeframe validates a timeframe string. Empty defaults to "all".
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear, TimeframeAll:
		return Timeframe(s), nil
	case "":
		return TimeframeAll, nil
	default:
		return "", fmt.Errorf("invalid timeframe %q", s)
	}
}

// Since returns the lower bound of the window ending at now. The zero
// time means no lower bound ("all").
func (t Timeframe) Since(now time.Time) time.Time {
	switch t {
	case TimeframeDay:
		return now.AddDate(0, 0, -1)
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}
