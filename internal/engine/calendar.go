package engine

import (
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

// OnDate returns the first hackathon whose inclusive [start, end] interval
// contains day. The comparison is at day granularity in UTC; time of day is
// ignored. When several hackathons overlap the same day only the first match
// (input order) is surfaced. Callers that need every overlapping event have
// to scan the list themselves.
func OnDate(hs []models.Hackathon, day time.Time) *models.Hackathon {
	d := truncateToDay(day)
	for i := range hs {
		start := truncateToDay(hs[i].StartDate)
		end := truncateToDay(hs[i].EndDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		h := hs[i]
		return &h
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
