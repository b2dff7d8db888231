// Package timeutil parses the compact ages used by `stash list --since`.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	agePattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	ageUnits   = map[string]time.Duration{
		"h":      time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      7 * day,
		"week":   7 * day,
		"weeks":  7 * day,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
	// largest first for FormatAge
	ageLabels = []struct {
		label string
		unit  time.Duration
	}{
		{"y", 365 * day},
		{"mo", 30 * day},
		{"w", 7 * day},
		{"d", day},
		{"h", time.Hour},
	}
)

// ParseAge parses an age such as "3d", "2w" or "1y6mo". Months are 30 days
// and years 365.
func ParseAge(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("timeutil: empty age")
	}
	var total time.Duration
	for len(strings.TrimSpace(remaining)) > 0 {
		m := agePattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, fmt.Errorf("timeutil: invalid age segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid age value %q: %w", m[1], err)
		}
		unit, ok := ageUnits[m[2]]
		if !ok {
			return 0, fmt.Errorf("timeutil: unsupported age unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("timeutil: age must be greater than zero")
	}
	return total, nil
}

// FormatAge renders d with the largest fitting units, e.g. "1y2w". Anything
// under an hour is "0h".
func FormatAge(d time.Duration) string {
	var b strings.Builder
	for _, l := range ageLabels {
		if d < l.unit {
			continue
		}
		n := d / l.unit
		d -= n * l.unit
		fmt.Fprintf(&b, "%d%s", n, l.label)
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// Since returns now minus the parsed age.
func Since(now time.Time, age string) (time.Time, error) {
	d, err := ParseAge(age)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
