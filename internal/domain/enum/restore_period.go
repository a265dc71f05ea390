package enum

import (
	"fmt"
	"time"
)

// RestorePeriod selects how far back a restore reaches.
type RestorePeriod string

const (
	RestoreOneDay    RestorePeriod = "1-day"
	RestoreThreeDays RestorePeriod = "3-days"
	RestoreOneWeek   RestorePeriod = "1-week"
	RestoreOneMonth  RestorePeriod = "1-month"
	RestoreAll       RestorePeriod = "all"
)

func ParseRestorePeriod(s string) (RestorePeriod, error) {
	p := RestorePeriod(s)
	switch p {
	case RestoreOneDay, RestoreThreeDays, RestoreOneWeek, RestoreOneMonth, RestoreAll:
		return p, nil
	}
	return "", fmt.Errorf("unknown restore period %q", s)
}

// Cutoff returns the earliest timestamp affected by the period. Calendar
// arithmetic is used so "1-month" follows month lengths.
func (p RestorePeriod) Cutoff(now time.Time) time.Time {
	switch p {
	case RestoreOneDay:
		return now.AddDate(0, 0, -1)
	case RestoreThreeDays:
		return now.AddDate(0, 0, -3)
	case RestoreOneWeek:
		return now.AddDate(0, 0, -7)
	case RestoreOneMonth:
		return now.AddDate(0, -1, 0)
	}
	return time.Unix(0, 0).UTC()
}
