package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ksolsim/football-simulator/internal/roster"
)

// Club is a stored club: identity, Elo rating and the full squad, which
// lives in a JSONB column since rosters are read-only value objects.
type Club struct {
	ID        int64
	Name      string
	Venue     string
	Elo       int
	Starters  []roster.Player
	Bench     []roster.Player
	CreatedAt time.Time
}

// Team materializes the stored squad as a roster for the engine.
func (c *Club) Team() *roster.Team {
	return &roster.Team{
		ID:       c.ID,
		Name:     c.Name,
		Venue:    c.Venue,
		Starters: c.Starters,
		Bench:    c.Bench,
	}
}

type squadDoc struct {
	Starters []roster.Player `json:"starters"`
	Bench    []roster.Player `json:"bench"`
}

type ClubStore struct {
	db *pgxpool.Pool
}

func NewClubStore(db *pgxpool.Pool) *ClubStore {
	return &ClubStore{db: db}
}

// Upsert saves a club's roster, keeping an existing Elo on conflict.
func (s *ClubStore) Upsert(ctx context.Context, t *roster.Team, elo int) (*Club, error) {
	doc := squadDoc{Starters: t.Starters, Bench: t.Bench}
	c := &Club{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO clubs (id, name, venue, squad, elo) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name,
		                               venue = EXCLUDED.venue,
		                               squad = EXCLUDED.squad
		RETURNING id, name, venue, squad, elo, created_at
	`, t.ID, t.Name, t.Venue, doc, elo).Scan(
		&c.ID, &c.Name, &c.Venue, &doc, &c.Elo, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Starters, c.Bench = doc.Starters, doc.Bench
	return c, nil
}

func (s *ClubStore) Get(ctx context.Context, id int64) (*Club, error) {
	c := &Club{}
	var doc squadDoc
	err := s.db.QueryRow(ctx, `
		SELECT id, name, venue, squad, elo, created_at FROM clubs WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Venue, &doc, &c.Elo, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Starters, c.Bench = doc.Starters, doc.Bench
	return c, nil
}

func (s *ClubStore) List(ctx context.Context) ([]Club, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, venue, squad, elo, created_at FROM clubs ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Club
	for rows.Next() {
		var c Club
		var doc squadDoc
		if err := rows.Scan(&c.ID, &c.Name, &c.Venue, &doc, &c.Elo, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Starters, c.Bench = doc.Starters, doc.Bench
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *ClubStore) SetElo(ctx context.Context, id int64, elo int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE clubs SET elo = $2 WHERE id = $1
	`, id, elo)
	return err
}
