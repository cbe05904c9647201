package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/job-intel/internal/model"
)

// MemoryQuotaStore keeps counters in process. Used by tests and by the
// "memory" backend for local runs.
type MemoryQuotaStore struct {
	mu       sync.Mutex
	counters map[string]model.QuotaCounter
	now      func() time.Time
}

func NewMemoryQuotaStore() *MemoryQuotaStore {
	return &MemoryQuotaStore{
		counters: make(map[string]model.QuotaCounter),
		now:      time.Now,
	}
}

func (s *MemoryQuotaStore) CheckAndIncrement(ctx context.Context, userID, feature string, limit int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := DayKey(now)
	key := userID + "/" + feature
	counter := s.counters[key]

	next, ok := nextCount(counter.Count, counter.Date, today, limit)
	if !ok {
		return ErrQuotaExhausted
	}

	s.counters[key] = model.QuotaCounter{
		UserID:    userID,
		Feature:   feature,
		Count:     next,
		Date:      today,
		UpdatedAt: now,
	}
	return nil
}

// Counter returns a copy of the stored counter, if any.
func (s *MemoryQuotaStore) Counter(userID, feature string) (model.QuotaCounter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[userID+"/"+feature]
	return c, ok
}
