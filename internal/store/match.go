package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ksolsim/football-simulator/internal/sim"
)

// Match is a completed fixture. The full result, event log included, is a
// JSONB document; the score and seed are lifted into columns so listings
// and standings never touch the blob.
type Match struct {
	ID        uuid.UUID
	SeasonID  int
	Round     int
	HomeID    int64
	AwayID    int64
	HomeGoals int
	AwayGoals int
	Seed      int64
	Result    sim.Result
	PlayedAt  time.Time
}

type MatchStore struct {
	db *pgxpool.Pool
}

func NewMatchStore(db *pgxpool.Pool) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) Insert(ctx context.Context, m *Match) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO matches (id, season_id, round, home_id, away_id,
		                     home_goals, away_goals, seed, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID, m.SeasonID, m.Round, m.HomeID, m.AwayID,
		m.HomeGoals, m.AwayGoals, m.Seed, m.Result)
	return err
}

func (s *MatchStore) Get(ctx context.Context, id uuid.UUID) (*Match, error) {
	m := &Match{}
	err := s.db.QueryRow(ctx, `
		SELECT id, season_id, round, home_id, away_id,
		       home_goals, away_goals, seed, result, played_at
		FROM matches WHERE id = $1
	`, id).Scan(
		&m.ID, &m.SeasonID, &m.Round, &m.HomeID, &m.AwayID,
		&m.HomeGoals, &m.AwayGoals, &m.Seed, &m.Result, &m.PlayedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// BySeason lists a season's results without the event-log blobs.
func (s *MatchStore) BySeason(ctx context.Context, seasonID int) ([]Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, season_id, round, home_id, away_id,
		       home_goals, away_goals, seed, played_at
		FROM matches WHERE season_id = $1
		ORDER BY round, played_at
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(
			&m.ID, &m.SeasonID, &m.Round, &m.HomeID, &m.AwayID,
			&m.HomeGoals, &m.AwayGoals, &m.Seed, &m.PlayedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
