package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/job-intel/internal/config"
	"gorm.io/gorm"
)

// ErrQuotaExhausted is the expected refusal once a feature's daily limit is
// spent. It is not an internal failure.
var ErrQuotaExhausted = errors.New("daily quota exhausted")

// ErrQuotaConflict is returned when a store gives up retrying write conflicts.
var ErrQuotaConflict = errors.New("quota update conflict")

const quotaMaxAttempts = 10

// QuotaStore is the atomic per-user, per-feature, per-day counter.
type QuotaStore interface {
	// CheckAndIncrement returns nil when the call fits within limit and has
	// been counted, ErrQuotaExhausted otherwise. Concurrent callers on the
	// same (userID, feature) never both succeed past limit.
	CheckAndIncrement(ctx context.Context, userID, feature string, limit int) error
}

// DayKey is the UTC calendar day used to scope counters.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// nextCount applies the ledger rule: a counter stamped with another day is
// read as zero, and the increment is refused when it would exceed limit.
func nextCount(count int, storedDate, today string, limit int) (int, bool) {
	if storedDate != today {
		count = 0
	}
	if count+1 > limit {
		return count, false
	}
	return count + 1, true
}

// NewQuotaStore builds the ledger backend named in cfg. db and redisURL are
// only used by the backends that need them.
func NewQuotaStore(ctx context.Context, cfg *config.QuotaConfig, db *gorm.DB, redisURL string) (QuotaStore, error) {
	switch cfg.Backend {
	case config.QuotaBackendMemory:
		return NewMemoryQuotaStore(), nil
	case config.QuotaBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres quota backend needs a database")
		}
		return NewQuotaRepository(db), nil
	case config.QuotaBackendRedis:
		client, err := ConnectRedis(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisQuotaStore(client), nil
	default:
		return nil, fmt.Errorf("unknown quota backend %q", cfg.Backend)
	}
}
