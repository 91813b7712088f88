package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Season struct {
	ID           int
	StartDate    time.Time
	EndDate      time.Time
	CurrentRound int
	IsActive     bool
}

type SeasonStore struct {
	db *pgxpool.Pool
}

func NewSeasonStore(db *pgxpool.Pool) *SeasonStore {
	return &SeasonStore{db: db}
}

func (s *SeasonStore) Active(ctx context.Context) (*Season, error) {
	se := &Season{}
	err := s.db.QueryRow(ctx, `
		SELECT id, start_date, end_date, current_round, is_active
		FROM seasons WHERE is_active = TRUE
	`).Scan(&se.ID, &se.StartDate, &se.EndDate, &se.CurrentRound, &se.IsActive)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return se, err
}

func (s *SeasonStore) Create(ctx context.Context, start, end time.Time) (*Season, error) {
	// Deactivate current season
	_, _ = s.db.Exec(ctx, `UPDATE seasons SET is_active = FALSE WHERE is_active = TRUE`)

	se := &Season{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO seasons (start_date, end_date, current_round, is_active)
		VALUES ($1, $2, 0, TRUE)
		RETURNING id, start_date, end_date, current_round, is_active
	`, start, end).Scan(&se.ID, &se.StartDate, &se.EndDate, &se.CurrentRound, &se.IsActive)
	return se, err
}

// AdvanceRound bumps the season's round counter after a round has been
// simulated and persisted, returning the new round number.
func (s *SeasonStore) AdvanceRound(ctx context.Context, seasonID int) (int, error) {
	var round int
	err := s.db.QueryRow(ctx, `
		UPDATE seasons SET current_round = current_round + 1
		WHERE id = $1 RETURNING current_round
	`, seasonID).Scan(&round)
	return round, err
}
