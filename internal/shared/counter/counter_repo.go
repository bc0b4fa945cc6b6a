package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string, scope string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue hands out the next number in a named sequence. The scope
// partitions a sequence, e.g. the entitlement year for request numbers.
// Raw UPSERT so concurrent callers can never draw the same value.
func (r *repository) GetNextValue(ctx context.Context, counterType string, scope string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO portal_counters (counter_type, scope, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, scope) DO UPDATE
		SET last_value = portal_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
