package models

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRecord is one row of the hackathon_participants table joined
// with the participant's profile name. Numeric fields that are NULL in
// storage arrive here as zero values.
type ParticipantRecord struct {
	ID             uuid.UUID `json:"id"`
	HackathonID    uuid.UUID `json:"hackathon_id"`
	UserID         uuid.UUID `json:"user_id"`
	Score          int       `json:"score"`
	TimeSpent      int       `json:"time_spent"` // minutes
	SolvedProblems int       `json:"solved_problems"`
	ProfileName    string    `json:"profile_name"` // may be empty
	CreatedAt      time.Time `json:"created_at"`
}

// LeaderboardEntry is a fully derived, never persisted projection of one
// ParticipantRecord. Rank is positional in the ranked output, not stored
// per user.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserName       string `json:"user_name"`
	Score          int    `json:"score"`
	SolvedProblems int    `json:"solved_problems"`
	TimeSpent      string `json:"time_spent"` // formatted "Xh Ym"
}
