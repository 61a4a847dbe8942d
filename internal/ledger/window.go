package ledger

import (
	"time"

	"gorm.io/gorm"
)

// Window bounds a date filter. A nil bound leaves that side open, which is
// how the trailing-days reports behave: they cut off the past but never the
// future.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// SinceDays returns a window open on the right, starting days before now.
func SinceDays(now time.Time, days int) Window {
	start := now.AddDate(0, 0, -days)
	return Window{Start: &start}
}

// Between returns a window inclusive on both ends.
func Between(start, end time.Time) Window {
	return Window{Start: &start, End: &end}
}

func (w Window) apply(q *gorm.DB, column string) *gorm.DB {
	if w.Start != nil {
		q = q.Where(column+" >= ?", *w.Start)
	}
	if w.End != nil {
		q = q.Where(column+" <= ?", *w.End)
	}
	return q
}
