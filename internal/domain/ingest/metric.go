package ingest

import (
	"strconv"
	"strings"
)

// ParseMetricValue collapses a source metric into one representative number.
// The ad library discloses most metrics as ranges ("1000-5000"); a range is
// worth its midpoint. Plain numeric strings keep their digits, anything
// unparseable is zero — partial metric data should degrade the score, not
// abort ingestion.
func ParseMetricValue(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if v == "" {
			return 0
		}
		if strings.Contains(v, "-") {
			parts := strings.SplitN(v, "-", 2)
			lo := parseDigits(parts[0])
			hi := parseDigits(parts[1])
			return (lo + hi) / 2
		}
		return parseDigits(v)
	default:
		return 0
	}
}

// parseDigits strips everything but digits and parses the remainder.
// Failed parses are zero.
func parseDigits(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n)
}
