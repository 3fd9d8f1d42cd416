package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

// fakeStore serves canned collections, optionally blocking each call until
// its release channel closes.
type fakeStore struct {
	hackathons     []models.Hackathon
	participants   []models.ParticipantRecord
	hackathonErr   error
	participantErr error
	releaseFetches chan struct{} // nil means respond immediately
	hackathonCalls atomic.Int32
}

func (f *fakeStore) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	f.hackathonCalls.Add(1)
	if f.releaseFetches != nil {
		select {
		case <-f.releaseFetches:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.hackathons, f.hackathonErr
}

func (f *fakeStore) ListParticipants(ctx context.Context, limit int) ([]models.ParticipantRecord, error) {
	if f.releaseFetches != nil {
		select {
		case <-f.releaseFetches:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.participants, f.participantErr
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestSession_FetchPopulatesSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		hackathons: []models.Hackathon{
			{Title: "Next", StartDate: now.Add(48 * time.Hour), EndDate: now.Add(72 * time.Hour)},
		},
		participants: []models.ParticipantRecord{
			{ProfileName: "Alice", Score: 80, TimeSpent: 125},
		},
	}

	s := NewSession(SessionConfig{
		Store:  store,
		Logger: quietLogger(),
		Tick:   time.Hour, // ticks irrelevant here
		Now:    func() time.Time { return now },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap.Loaded && len(snap.Leaderboard) == 1
	})

	snap := s.Snapshot()
	if snap.NextUpcoming == nil || snap.NextUpcoming.Title != "Next" {
		t.Fatalf("expected Next selected, got %+v", snap.NextUpcoming)
	}
	if snap.TimeRemaining != "2d 0h 0m" {
		t.Fatalf("expected 2d 0h 0m, got %q", snap.TimeRemaining)
	}
	if snap.Leaderboard[0].UserName != "Alice" || snap.Leaderboard[0].TimeSpent != "2h 5m" {
		t.Fatalf("unexpected leaderboard entry %+v", snap.Leaderboard[0])
	}
}

func TestSession_FetchFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{
		hackathonErr:   errors.New("db down"),
		participantErr: errors.New("db down"),
	}

	s := NewSession(SessionConfig{Store: store, Logger: quietLogger(), Tick: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, func() bool { return s.Snapshot().Loaded })

	snap := s.Snapshot()
	if len(snap.Hackathons) != 0 || len(snap.Leaderboard) != 0 {
		t.Fatalf("expected empty collections, got %+v", snap)
	}
	if snap.TimeRemaining != CountdownPlaceholder {
		t.Fatalf("expected placeholder countdown, got %q", snap.TimeRemaining)
	}
}

func TestSession_TickBeforeFirstFetchIsNoop(t *testing.T) {
	store := &fakeStore{releaseFetches: make(chan struct{})}

	s := NewSession(SessionConfig{
		Store:  store,
		Logger: quietLogger(),
		Tick:   5 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// Let several ticks fire while both fetches are still outstanding.
	time.Sleep(40 * time.Millisecond)

	snap := s.Snapshot()
	if snap.Loaded {
		t.Fatal("snapshot must not be marked loaded before the fetch completes")
	}
	if snap.ComputedAt != (time.Time{}) {
		t.Fatal("ticks before the first fetch must not publish")
	}
}

func TestSession_TickAdvancesSelection(t *testing.T) {
	start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	var clock atomic.Int64
	clock.Store(start.Add(-time.Hour).UnixNano())

	store := &fakeStore{
		hackathons: []models.Hackathon{
			{Title: "Soon", StartDate: start, EndDate: start.Add(24 * time.Hour)},
		},
	}

	s := NewSession(SessionConfig{
		Store:  store,
		Logger: quietLogger(),
		Tick:   5 * time.Millisecond,
		Now:    func() time.Time { return time.Unix(0, clock.Load()).UTC() },
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap.NextUpcoming != nil && snap.NextUpcoming.Title == "Soon"
	})

	// Advance the clock past the start; the next tick must reclassify and
	// drop the countdown target.
	clock.Store(start.Add(time.Minute).UnixNano())

	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap.NextUpcoming == nil && snap.TimeRemaining == CountdownPlaceholder
	})
}

func TestSession_TeardownDropsStaleCompletion(t *testing.T) {
	release := make(chan struct{})
	store := &fakeStore{
		hackathons: []models.Hackathon{
			{Title: "Never seen", StartDate: day(2030, 1, 1), EndDate: day(2030, 1, 2)},
		},
		releaseFetches: release,
	}

	s := NewSession(SessionConfig{Store: store, Logger: quietLogger(), Tick: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	waitFor(t, func() bool { return store.hackathonCalls.Load() > 0 })

	// Tear the session down while both fetches are still outstanding, then
	// let them complete.
	cancel()
	close(release)
	time.Sleep(30 * time.Millisecond)

	snap := s.Snapshot()
	if snap.Loaded || len(snap.Hackathons) != 0 {
		t.Fatalf("stale completion mutated a torn-down session: %+v", snap)
	}
}
