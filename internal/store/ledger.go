package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxType string

const (
	TxPrize       TxType = "prize"
	TxGoalBonus   TxType = "goal_bonus"
	TxWages       TxType = "wages"
	TxSeasonAward TxType = "season_award"
)

// Transaction is one line in a club's ledger. Amounts are integral currency
// units; wages are negative, prizes positive.
type Transaction struct {
	ID        int64
	ClubID    int64
	Type      TxType
	Amount    int64
	MatchID   *uuid.UUID
	CreatedAt time.Time
}

type LedgerStore struct {
	db *pgxpool.Pool
}

func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Record(ctx context.Context, clubID int64, txType TxType, amount int64, matchID *uuid.UUID) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions (club_id, type, amount, match_id) VALUES ($1, $2, $3, $4)
	`, clubID, txType, amount, matchID)
	return err
}

func (s *LedgerStore) ClubHistory(ctx context.Context, clubID int64, limit int) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, club_id, type, amount, match_id, created_at
		FROM transactions WHERE club_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, clubID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.ClubID, &t.Type, &t.Amount, &t.MatchID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Balance folds a club's entire ledger into a single figure.
func (s *LedgerStore) Balance(ctx context.Context, clubID int64) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE club_id = $1
	`, clubID).Scan(&balance)
	return balance, err
}
