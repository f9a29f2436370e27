package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (e *Engine) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return e.db.WithContext(ctx).Transaction(fn)
}

// Row locks are only issued on Postgres. SQLite serialises writers itself and
// the engine runs it on a single connection.
func supportsRowLocks(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "postgres"
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	if supportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func forShare(tx *gorm.DB) *gorm.DB {
	if supportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return tx
}

func loadEvent(tx *gorm.DB, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	return &event, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
