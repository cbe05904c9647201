package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQuotaStore keeps each counter in a hash and relies on WATCH/MULTI for
// optimistic concurrency.
type RedisQuotaStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisQuotaStore(client *redis.Client) *RedisQuotaStore {
	return &RedisQuotaStore{
		client: client,
		prefix: "jobintel:quota",
		now:    time.Now,
	}
}

// ConnectRedis parses a redis:// URL, falling back to a bare address.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (s *RedisQuotaStore) key(userID, feature string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, userID, feature)
}

func (s *RedisQuotaStore) CheckAndIncrement(ctx context.Context, userID, feature string, limit int) error {
	key := s.key(userID, feature)

	txf := func(tx *redis.Tx) error {
		today := DayKey(s.now())

		vals, err := tx.HMGet(ctx, key, "count", "date").Result()
		if err != nil {
			return err
		}
		count, date := 0, ""
		if raw, ok := vals[0].(string); ok {
			count, _ = strconv.Atoi(raw)
		}
		if raw, ok := vals[1].(string); ok {
			date = raw
		}

		next, ok := nextCount(count, date, today, limit)
		if !ok {
			return ErrQuotaExhausted
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "count", next, "date", today)
			pipe.Expire(ctx, key, 48*time.Hour)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= quotaMaxAttempts*5; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil || errors.Is(err, ErrQuotaExhausted) {
			return err
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to update quota: %w", err)
	}
	return ErrQuotaConflict
}
