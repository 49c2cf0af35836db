package utils

import (
	"fmt"
	"time"
)

// LoadLocation resolves an IANA zone name, falling back to UTC for an empty name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", name, err)
	}
	return loc, nil
}

// PrettyDate formats a time for human readable alert messages.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}

// SameLocalDay reports whether a and b fall on the same calendar day in loc.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
