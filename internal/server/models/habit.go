package models

import (
	"slices"
	"time"
)

// DateLayout is the format of habit completion dates.
const DateLayout = "2006-01-02"

// Habit is a named practice with the set of days it was completed on.
// CompletedDates never holds duplicates and is kept sorted.
type Habit struct {
	ID             string
	OwnerID        string
	Name           string
	CompletedDates []string
	CreatedAt      time.Time
}

// Toggle flips membership of date in CompletedDates: a present date is
// removed, an absent one is added. It reports whether the date is present
// after the call.
func (h *Habit) Toggle(date string) bool {
	set := make(map[string]struct{}, len(h.CompletedDates)+1)
	for _, d := range h.CompletedDates {
		set[d] = struct{}{}
	}

	_, present := set[date]
	if present {
		delete(set, date)
	} else {
		set[date] = struct{}{}
	}

	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	h.CompletedDates = dates

	return !present
}
