// Package localtime produces civil date and datetime strings at a fixed UTC
// offset, independent of the host's timezone configuration. Both stored visit
// times and date-bucketed queries use this offset so "today" means the same
// thing everywhere.
package localtime

import (
	"fmt"
	"time"
)

const (
	datetimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Formatter renders wall-clock time in one fixed offset.
type Formatter struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Formatter pinned to the given whole-hour UTC offset.
func New(offsetHours int) *Formatter {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return &Formatter{
		loc: time.FixedZone(name, offsetHours*3600),
		now: time.Now,
	}
}

// Now returns the current civil datetime and date strings.
func (f *Formatter) Now() (datetime, date string) {
	t := f.now().In(f.loc)
	return t.Format(datetimeLayout), t.Format(dateLayout)
}

// Today returns the current civil date string.
func (f *Formatter) Today() string {
	return f.now().In(f.loc).Format(dateLayout)
}

// DaysAgo returns the civil date string n days before today.
func (f *Formatter) DaysAgo(n int) string {
	return f.now().In(f.loc).AddDate(0, 0, -n).Format(dateLayout)
}

// Location exposes the fixed-offset location so schedulers can fire at
// midnight in the same offset the data is bucketed by.
func (f *Formatter) Location() *time.Location {
	return f.loc
}
