package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raushan22882917/f-7556/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// hackathonCols is the column list shared by every hackathon query.
const hackathonCols = `id, title, slug, description, start_date, end_date,
	banner_image_url, organization_image_url, prize_money, offerings, created_at`

func scanHackathon(scan func(dest ...any) error) (models.Hackathon, error) {
	var h models.Hackathon
	var description, banner, orgImage *string
	var prize *float64

	err := scan(
		&h.ID, &h.Title, &h.Slug, &description, &h.StartDate, &h.EndDate,
		&banner, &orgImage, &prize, &h.Offerings, &h.CreatedAt,
	)
	if err != nil {
		return h, err
	}

	if description != nil {
		h.Description = *description
	}
	if banner != nil {
		h.BannerImageURL = *banner
	}
	if orgImage != nil {
		h.OrganizationImageURL = *orgImage
	}
	if prize != nil {
		h.PrizeMoney = *prize
	}

	return h, nil
}

// ListHackathons returns every hackathon ordered by start_date ascending.
// The ordering matters downstream: the nearest-upcoming selection takes the
// first upcoming entry in list order.
func (s *Store) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM hackathons ORDER BY start_date ASC, created_at ASC", hackathonCols))
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()

	var out []models.Hackathon
	for rows.Next() {
		h, err := scanHackathon(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan hackathon: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetHackathon fetches one hackathon by ID.
func (s *Store) GetHackathon(ctx context.Context, id uuid.UUID) (models.Hackathon, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		"SELECT %s FROM hackathons WHERE id = $1", hackathonCols), id)

	h, err := scanHackathon(row.Scan)
	if err == pgx.ErrNoRows {
		return h, ErrNotFound
	}
	if err != nil {
		return h, fmt.Errorf("get hackathon: %w", err)
	}
	return h, nil
}

// buildParticipantsQuery assembles the leaderboard source query. When scoped
// is true the query is restricted to one hackathon; otherwise it is the
// global top-N the page-level view uses. NULL score/time/solved columns are
// coalesced to zero, and the profile join is LEFT so participants without a
// profile row still appear (with an empty name).
func buildParticipantsQuery(hackathonID uuid.UUID, scoped bool, limit int) (string, []any) {
	query := `SELECT hp.id, hp.hackathon_id, hp.user_id,
		COALESCE(hp.score, 0), COALESCE(hp.time_spent, 0), COALESCE(hp.solved_problems, 0),
		COALESCE(p.name, ''), hp.created_at
	FROM hackathon_participants hp
	LEFT JOIN profiles p ON p.user_id = hp.user_id`

	var args []any
	argIdx := 1
	if scoped {
		query += fmt.Sprintf(" WHERE hp.hackathon_id = $%d", argIdx)
		args = append(args, hackathonID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY COALESCE(hp.score, 0) DESC, hp.created_at ASC LIMIT $%d", argIdx)
	args = append(args, clampLimit(limit))

	return query, args
}

// clampLimit keeps the query bounded: defaults to 10, caps at 100.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (s *Store) queryParticipants(ctx context.Context, query string, args []any) ([]models.ParticipantRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var out []models.ParticipantRecord
	for rows.Next() {
		var r models.ParticipantRecord
		err := rows.Scan(
			&r.ID, &r.HackathonID, &r.UserID,
			&r.Score, &r.TimeSpent, &r.SolvedProblems,
			&r.ProfileName, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListParticipants returns the global top-N participant records ordered by
// score descending, joined with the profile display name.
func (s *Store) ListParticipants(ctx context.Context, limit int) ([]models.ParticipantRecord, error) {
	query, args := buildParticipantsQuery(uuid.Nil, false, limit)
	return s.queryParticipants(ctx, query, args)
}

// ListHackathonParticipants is the per-event variant of ListParticipants.
func (s *Store) ListHackathonParticipants(ctx context.Context, hackathonID uuid.UUID, limit int) ([]models.ParticipantRecord, error) {
	query, args := buildParticipantsQuery(hackathonID, true, limit)
	return s.queryParticipants(ctx, query, args)
}

// RegisterParticipant enrolls a user in a hackathon. Re-registering is a
// no-op rather than an error.
func (s *Store) RegisterParticipant(ctx context.Context, hackathonID, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO hackathon_participants (hackathon_id, user_id, score, time_spent, solved_problems)
		VALUES ($1, $2, 0, 0, 0)
		ON CONFLICT (hackathon_id, user_id) DO NOTHING
	`, hackathonID, userID)
	if err != nil {
		return fmt.Errorf("register participant: %w", err)
	}
	return nil
}
