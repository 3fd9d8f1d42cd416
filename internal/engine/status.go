package engine

import (
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

// Classify derives the lifecycle phase of an event from its start and end
// instants. Boundaries are inclusive: now == start and now == end both
// classify as ongoing. Records where end precedes start are not validated;
// the raw comparisons decide.
func Classify(start, end, now time.Time) models.Phase {
	if now.Before(start) {
		return models.PhaseUpcoming
	}
	if now.After(end) {
		return models.PhasePast
	}
	return models.PhaseOngoing
}

// ClassifyAll returns a copy of hs with the derived Status overwritten on
// every record. Whatever Status the rows arrived with is discarded.
func ClassifyAll(hs []models.Hackathon, now time.Time) []models.Hackathon {
	out := make([]models.Hackathon, len(hs))
	copy(out, hs)
	for i := range out {
		out[i].Status = Classify(out[i].StartDate, out[i].EndDate, now)
	}
	return out
}
