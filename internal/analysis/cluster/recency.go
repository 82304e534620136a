package cluster

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AncientMinutes is returned for timestamps that cannot be parsed.
const AncientMinutes = math.MaxInt32

var unitMinutes = map[string]int{
	"minute": 1,
	"hour":   60,
	"day":    1440,
	"week":   10080,
	"month":  43200,
	"year":   525600,
}

var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month|year)s?\s+ago$`)

// ParseRelativeTime converts strings such as "2 hours ago" into minutes ago.
// Anything else, including "just now", yields AncientMinutes.
func ParseRelativeTime(s string) int {
	m := relativeTimeRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return AncientMinutes
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return AncientMinutes
	}

	unit := unitMinutes[m[2]]
	if n > AncientMinutes/unit {
		return AncientMinutes
	}
	return n * unit
}

// RecencyBonus returns the trending bonus for a thought posted minutesAgo.
func RecencyBonus(minutesAgo int) int {
	switch {
	case minutesAgo < 60:
		return 10
	case minutesAgo < 1440:
		return 5
	default:
		return 1
	}
}

var formatUnits = []struct {
	name    string
	minutes int
}{
	{"year", 525600},
	{"month", 43200},
	{"week", 10080},
	{"day", 1440},
	{"hour", 60},
	{"minute", 1},
}

// FormatRelativeTime renders t relative to now using the grammar
// ParseRelativeTime accepts, in the largest whole unit.
func FormatRelativeTime(now, t time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	for _, u := range formatUnits {
		if minutes >= u.minutes {
			n := minutes / u.minutes
			return pluralize(n, u.name)
		}
	}
	return pluralize(0, "minute")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
