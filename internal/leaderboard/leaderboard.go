// Package leaderboard keeps season boards in Redis sorted sets: top scorers
// by goals and clubs by Elo rating. Postgres stays the source of truth; the
// boards are rebuildable projections.
package leaderboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ksolsim/football-simulator/internal/cache"
	"github.com/redis/go-redis/v9"
)

type Entry struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
	Rank  int64   `json:"rank"`
}

type Service struct {
	rdb *redis.Client
}

func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

// AddGoals credits a player's goals on the season scorer board.
func (s *Service) AddGoals(ctx context.Context, seasonID int, playerID int64, goals int) error {
	if goals == 0 {
		return nil
	}
	key := fmt.Sprintf(cache.KeyScorerBoard, seasonID)
	return s.rdb.ZIncrBy(ctx, key, float64(goals), strconv.FormatInt(playerID, 10)).Err()
}

// TopScorers returns the top N players by goals for a season.
func (s *Service) TopScorers(ctx context.Context, seasonID int, count int64) ([]Entry, error) {
	key := fmt.Sprintf(cache.KeyScorerBoard, seasonID)
	return s.topFromSortedSet(ctx, key, count)
}

// SetClubRating records a club's current Elo on the season club board.
func (s *Service) SetClubRating(ctx context.Context, seasonID int, clubID int64, elo int) error {
	key := fmt.Sprintf(cache.KeyClubBoard, seasonID)
	return s.rdb.ZAdd(ctx, key, redis.Z{
		Score:  float64(elo),
		Member: strconv.FormatInt(clubID, 10),
	}).Err()
}

// TopClubs returns the top N clubs by Elo for a season.
func (s *Service) TopClubs(ctx context.Context, seasonID int, count int64) ([]Entry, error) {
	key := fmt.Sprintf(cache.KeyClubBoard, seasonID)
	return s.topFromSortedSet(ctx, key, count)
}

// ClubRank returns one club's rank and rating for a season.
func (s *Service) ClubRank(ctx context.Context, seasonID int, clubID int64) (*Entry, error) {
	key := fmt.Sprintf(cache.KeyClubBoard, seasonID)
	member := strconv.FormatInt(clubID, 10)

	rank, err := s.rdb.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		return nil, err
	}

	return &Entry{ID: clubID, Score: score, Rank: rank + 1}, nil
}

// ResetSeason drops both boards for a season.
func (s *Service) ResetSeason(ctx context.Context, seasonID int) error {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, fmt.Sprintf(cache.KeyScorerBoard, seasonID))
	pipe.Del(ctx, fmt.Sprintf(cache.KeyClubBoard, seasonID))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Service) topFromSortedSet(ctx context.Context, key string, count int64) ([]Entry, error) {
	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, count-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		id, _ := strconv.ParseInt(member, 10, 64)
		entries = append(entries, Entry{
			ID:    id,
			Score: z.Score,
			Rank:  int64(i + 1),
		})
	}
	return entries, nil
}
