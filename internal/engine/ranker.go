package engine

import (
	"fmt"
	"sort"

	"github.com/raushan22882917/f-7556/internal/models"
)

// DefaultLeaderboardLimit caps the leaderboard when the caller does not ask
// for a specific size.
const DefaultLeaderboardLimit = 10

// anonymousName stands in for participants whose profile row carries no name.
const anonymousName = "Anonymous"

// Rank transforms raw participant records into a ranked leaderboard.
//
// Records are ordered by score descending with a stable sort: equal scores
// keep their input order, so repeated runs over the same snapshot produce
// identical output. Ranks are contiguous 1-based positions in the truncated
// sequence — two tied scores still get two distinct ranks.
func Rank(records []models.ParticipantRecord, limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	sorted := make([]models.ParticipantRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(sorted))
	for i, rec := range sorted {
		name := rec.ProfileName
		if name == "" {
			name = anonymousName
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:           i + 1,
			UserName:       name,
			Score:          rec.Score,
			SolvedProblems: rec.SolvedProblems,
			TimeSpent:      FormatTimeSpent(rec.TimeSpent),
		})
	}
	return entries
}

// FormatTimeSpent renders minutes as "Xh Ym": 125 -> "2h 5m", 0 -> "0h 0m".
// Negative input is treated as absent.
func FormatTimeSpent(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
