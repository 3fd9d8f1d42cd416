package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

// Store is the slice of the storage interface the session needs. Failures
// surface as errors here; the session logs them and carries on with an
// empty collection.
type Store interface {
	ListHackathons(ctx context.Context) ([]models.Hackathon, error)
	ListParticipants(ctx context.Context, limit int) ([]models.ParticipantRecord, error)
}

// Snapshot is the derived view state at a single instant: the classified
// hackathon list, the nearest upcoming event with its countdown display,
// and the ranked leaderboard.
type Snapshot struct {
	Hackathons    []models.Hackathon        `json:"hackathons"`
	NextUpcoming  *models.Hackathon         `json:"next_upcoming"`
	TimeRemaining string                    `json:"time_remaining"`
	Leaderboard   []models.LeaderboardEntry `json:"leaderboard"`
	Loaded        bool                      `json:"loaded"`
	ComputedAt    time.Time                 `json:"computed_at"`
}

// SessionConfig configures a Session. Store is required; everything else
// has a usable zero-value default.
type SessionConfig struct {
	Store            Store
	Logger           *log.Logger
	Tick             time.Duration    // default one minute
	LeaderboardLimit int              // default DefaultLeaderboardLimit
	Now              func() time.Time // default time.Now, injectable for tests
}

// Session owns the in-memory collections for one active view of the
// hackathon page. A single owner goroutine applies fetch results and timer
// ticks, so every derived computation observes the collections atomically.
// Cancelling the context passed to Start stops the ticker and drops any
// fetch completion that lands afterwards.
type Session struct {
	store  Store
	logger *log.Logger
	tick   time.Duration
	limit  int
	now    func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Minute
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = DefaultLeaderboardLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		store:  cfg.Store,
		logger: cfg.Logger,
		tick:   cfg.Tick,
		limit:  cfg.LeaderboardLimit,
		now:    cfg.Now,
	}
	s.snap = Snapshot{TimeRemaining: CountdownPlaceholder}
	return s
}

// Start launches the owner goroutine and issues both one-shot fetches.
// It returns immediately; Snapshot reflects results as they land.
func (s *Session) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Session) run(ctx context.Context) {
	hackCh := make(chan []models.Hackathon, 1)
	partCh := make(chan []models.ParticipantRecord, 1)

	// The two fetches are causally independent; each degrades to an empty
	// collection on failure. Sends race against ctx so a completion after
	// teardown is dropped instead of mutating a dead session.
	go func() {
		items, err := s.store.ListHackathons(ctx)
		if err != nil {
			s.logger.Printf("session: hackathon fetch failed: %v", err)
			items = nil
		}
		select {
		case hackCh <- items:
		case <-ctx.Done():
		}
	}()
	go func() {
		items, err := s.store.ListParticipants(ctx, s.limit)
		if err != nil {
			s.logger.Printf("session: participant fetch failed: %v", err)
			items = nil
		}
		select {
		case partCh <- items:
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	var hackathons []models.Hackathon
	var participants []models.ParticipantRecord
	loaded := false

	for {
		select {
		case <-ctx.Done():
			return
		case items := <-hackCh:
			hackathons = items
			loaded = true
			hackCh = nil // one-shot
			s.publish(hackathons, participants, loaded)
		case items := <-partCh:
			participants = items
			partCh = nil // one-shot
			s.publish(hackathons, participants, loaded)
		case <-ticker.C:
			if !loaded {
				// Nothing to reclassify before the first fetch lands.
				continue
			}
			s.publish(hackathons, participants, loaded)
		}
	}
}

// publish recomputes every derived projection from the current collections
// and the current instant, then swaps the snapshot in one write.
func (s *Session) publish(hackathons []models.Hackathon, participants []models.ParticipantRecord, loaded bool) {
	now := s.now()
	classified := ClassifyAll(hackathons, now)
	next := NextUpcoming(classified)

	snap := Snapshot{
		Hackathons:    classified,
		NextUpcoming:  next,
		TimeRemaining: CountdownDisplay(next, now),
		Leaderboard:   Rank(participants, s.limit),
		Loaded:        loaded,
		ComputedAt:    now,
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Snapshot returns the most recently published view state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
