package engine

import (
	"testing"
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

func TestNextUpcoming_PicksEarliestStart(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	hs := ClassifyAll([]models.Hackathon{
		{Title: "Finished", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 3)},
		{Title: "Running", StartDate: day(2025, 6, 9), EndDate: day(2025, 6, 12)},
		{Title: "Next", StartDate: day(2025, 6, 20), EndDate: day(2025, 6, 22)},
		{Title: "After", StartDate: day(2025, 7, 1), EndDate: day(2025, 7, 2)},
	}, now)

	got := NextUpcoming(hs)
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Title != "Next" {
		t.Fatalf("expected Next, got %s", got.Title)
	}
	if got.Status != models.PhaseUpcoming {
		t.Fatalf("selected record must be upcoming, got %s", got.Status)
	}
}

func TestNextUpcoming_TieKeepsInputOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sameStart := day(2025, 6, 20)
	hs := ClassifyAll([]models.Hackathon{
		{Title: "First", StartDate: sameStart, EndDate: day(2025, 6, 21)},
		{Title: "Second", StartDate: sameStart, EndDate: day(2025, 6, 25)},
	}, now)

	got := NextUpcoming(hs)
	if got == nil || got.Title != "First" {
		t.Fatalf("tie must resolve to the earliest input entry, got %+v", got)
	}
}

func TestNextUpcoming_NoneUpcoming(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	hs := ClassifyAll([]models.Hackathon{
		{Title: "Done", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 3)},
	}, now)

	if got := NextUpcoming(hs); got != nil {
		t.Fatalf("expected nil, got %s", got.Title)
	}
	if got := NextUpcoming(nil); got != nil {
		t.Fatal("empty list must select nothing")
	}
}

func TestNextUpcoming_DropsTargetOnceStarted(t *testing.T) {
	hs := []models.Hackathon{
		{Title: "Soon", StartDate: day(2025, 6, 20), EndDate: day(2025, 6, 22)},
		{Title: "Later", StartDate: day(2025, 7, 1), EndDate: day(2025, 7, 3)},
	}

	before := time.Date(2025, 6, 19, 23, 59, 0, 0, time.UTC)
	if got := NextUpcoming(ClassifyAll(hs, before)); got == nil || got.Title != "Soon" {
		t.Fatalf("expected Soon before its start, got %+v", got)
	}

	// The instant the start passes, reclassification moves the selection on.
	after := day(2025, 6, 20)
	if got := NextUpcoming(ClassifyAll(hs, after)); got == nil || got.Title != "Later" {
		t.Fatalf("expected Later once Soon started, got %+v", got)
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
