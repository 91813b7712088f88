package fixture

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ksolsim/football-simulator/internal/cache"
	"github.com/redis/go-redis/v9"
)

// KickoffQueue is a Redis sorted set of fixture IDs scored by kickoff time.
// The server polls Due to find fixtures ready to simulate.
type KickoffQueue struct {
	rdb *redis.Client
}

func NewKickoffQueue(rdb *redis.Client) *KickoffQueue {
	return &KickoffQueue{rdb: rdb}
}

// Push schedules a fixture for the given kickoff time. Re-pushing moves it.
func (q *KickoffQueue) Push(ctx context.Context, id uuid.UUID, kickoff time.Time) error {
	return q.rdb.ZAdd(ctx, cache.KeyKickoffQueue, redis.Z{
		Score:  float64(kickoff.UnixMilli()),
		Member: id.String(),
	}).Err()
}

// Peek returns up to count fixtures whose kickoff has passed, earliest
// first, without removing them. Safe to expose on a read path.
func (q *KickoffQueue) Peek(ctx context.Context, now time.Time, count int64) ([]uuid.UUID, error) {
	members, err := q.rdb.ZRangeByScore(ctx, cache.KeyKickoffQueue, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: count,
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Due removes and returns up to count fixtures whose kickoff has passed,
// earliest first. Only the consumer that actually simulates the fixtures
// may call this; readers use Peek.
func (q *KickoffQueue) Due(ctx context.Context, now time.Time, count int64) ([]uuid.UUID, error) {
	members, err := q.rdb.ZRangeByScore(ctx, cache.KeyKickoffQueue, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: count,
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			// Junk entry; drop it rather than wedge the queue.
			q.rdb.ZRem(ctx, cache.KeyKickoffQueue, m)
			continue
		}
		if err := q.rdb.ZRem(ctx, cache.KeyKickoffQueue, m).Err(); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Remove unschedules a fixture.
func (q *KickoffQueue) Remove(ctx context.Context, id uuid.UUID) error {
	return q.rdb.ZRem(ctx, cache.KeyKickoffQueue, id.String()).Err()
}

// Size reports how many fixtures are waiting.
func (q *KickoffQueue) Size(ctx context.Context) (int64, error) {
	return q.rdb.ZCard(ctx, cache.KeyKickoffQueue).Result()
}
