package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// timestampLayouts covers the ISO8601 variants the evaluation API emits. Python's
// isoformat omits the zone for naive UTC datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatCurrency renders a USD amount with four decimals below one dollar and two above.
// Amounts are rounded to four decimals before the precision is picked, so
// 0.99999 prints as "$1.00".
func FormatCurrency(usd float64) string {
	rounded := math.Round(usd*1e4) / 1e4
	if math.Abs(rounded) < 1 {
		return fmt.Sprintf("$%.4f", rounded)
	}
	return fmt.Sprintf("$%.2f", rounded)
}

// FormatLatency renders a millisecond latency as "850ms" or "1.5s".
func FormatLatency(ms float64) string {
	rounded := math.Round(ms)
	if rounded < 1000 {
		return fmt.Sprintf("%.0fms", rounded)
	}
	return fmt.Sprintf("%.1fs", ms/1000)
}

// FormatPercent renders a 0..1 ratio as a percentage with one decimal.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// ParseTimestamp parses an API timestamp. Values without a zone are taken as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders an API timestamp in local time, or returns it unchanged when unparseable.
func FormatTimestamp(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.Local().Format("2006-01-02 15:04")
}

// RelativeTime describes how long ago t was relative to now.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
