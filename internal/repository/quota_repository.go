package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotaRepository is the transactional ledger on Postgres.
type QuotaRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewQuotaRepository(db *gorm.DB) *QuotaRepository {
	return &QuotaRepository{db: db, now: time.Now}
}

func (r *QuotaRepository) CheckAndIncrement(ctx context.Context, userID, feature string, limit int) error {
	var lastErr error
	for attempt := 1; attempt <= quotaMaxAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.incrementTx(tx, userID, feature, limit)
		})
		if err == nil || errors.Is(err, ErrQuotaExhausted) {
			return err
		}
		if !isWriteConflict(err) {
			return fmt.Errorf("failed to update quota: %w", err)
		}
		lastErr = err
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrQuotaConflict, quotaMaxAttempts, lastErr)
}

func (r *QuotaRepository) incrementTx(tx *gorm.DB, userID, feature string, limit int) error {
	now := r.now()
	today := DayKey(now)

	seed := model.QuotaCounter{UserID: userID, Feature: feature, Date: today, UpdatedAt: now}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return err
	}

	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var counter model.QuotaCounter
	if err := query.Where("user_id = ? AND feature = ?", userID, feature).First(&counter).Error; err != nil {
		return err
	}

	next, ok := nextCount(counter.Count, counter.Date, today, limit)
	if !ok {
		return ErrQuotaExhausted
	}

	return tx.Model(&model.QuotaCounter{}).
		Where("user_id = ? AND feature = ?", userID, feature).
		Updates(map[string]any{
			"count":      next,
			"date":       today,
			"updated_at": now,
		}).Error
}

// isWriteConflict reports serialization failures and deadlocks, the two
// outcomes Postgres expects the client to retry.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
