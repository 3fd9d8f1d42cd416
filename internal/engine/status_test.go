package engine

import (
	"testing"
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

func TestClassify(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want models.Phase
	}{
		{"before start", start.Add(-time.Minute), models.PhaseUpcoming},
		{"exactly at start", start, models.PhaseOngoing},
		{"between start and end", start.Add(24 * time.Hour), models.PhaseOngoing},
		{"exactly at end", end, models.PhaseOngoing},
		{"after end", end.Add(time.Second), models.PhasePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(start, end, tt.now); got != tt.want {
				t.Fatalf("Classify(now=%s) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestClassify_EndBeforeStartNotValidated(t *testing.T) {
	// Malformed intervals propagate whatever the raw comparisons yield.
	start := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	if got := Classify(start, end, now); got != models.PhaseUpcoming {
		t.Fatalf("expected upcoming from raw comparison, got %s", got)
	}
}

func TestClassifyAll_OverwritesInboundStatus(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	in := []models.Hackathon{
		{
			Title:     "Live",
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			Status:    models.PhasePast, // stale inbound value
		},
		{
			Title:     "Later",
			StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	out := ClassifyAll(in, now)
	if out[0].Status != models.PhaseOngoing {
		t.Fatalf("expected ongoing, got %s", out[0].Status)
	}
	if out[1].Status != models.PhaseUpcoming {
		t.Fatalf("expected upcoming, got %s", out[1].Status)
	}
	if in[0].Status != models.PhasePast {
		t.Fatal("ClassifyAll must not mutate its input")
	}
}
