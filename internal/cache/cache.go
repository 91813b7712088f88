package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

const (
	// KeyKickoffQueue is a sorted set of fixture IDs scored by kickoff time.
	KeyKickoffQueue = "fixtures:kickoff"

	// KeyMatchResult caches a completed match result as JSON.
	KeyMatchResult = "match:%s:result"

	// KeyScorerBoard ranks players by goals for a season.
	KeyScorerBoard = "leaderboard:scorers:season:%d"

	// KeyClubBoard ranks clubs by Elo rating for a season.
	KeyClubBoard = "leaderboard:clubs:season:%d"
)
