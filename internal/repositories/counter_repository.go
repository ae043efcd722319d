package repositories

import (
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next atomically increments the named sequence and returns the new value.
// The upsert seeds the row at 1 on first use.
func (r *CounterRepository) Next(name string) (int, error) {
	var seq int
	err := r.db.Raw(`
		INSERT INTO counters (name, seq) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, name).Scan(&seq).Error

	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to advance counter")
	}
	return seq, nil
}
