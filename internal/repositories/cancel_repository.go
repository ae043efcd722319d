package repositories

import (
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type CancelRepository struct {
	db *gorm.DB
}

func NewCancelRepository(db *gorm.DB) *CancelRepository {
	return &CancelRepository{db: db}
}

// Record appends one cancellation event
func (r *CancelRepository) Record(userID, rcID, reason string, weight int) error {
	event := models.CancelEvent{
		UserID: userID,
		RcID:   rcID,
		Reason: reason,
		Weight: weight,
	}
	if err := r.db.Create(&event).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record cancel event")
	}
	return nil
}

// TotalFor returns a user's aggregated cancellation count
func (r *CancelRepository) TotalFor(userID string) (int, error) {
	var total int
	err := r.db.Model(&models.CancelEvent{}).
		Select("COALESCE(SUM(weight), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sum cancel events")
	}
	return total, nil
}

// CancelBoardRow is one line of the cancellation board.
type CancelBoardRow struct {
	UserID string
	Total  int
}

// Board aggregates cancellation totals per user, worst offenders first.
// Users whose adjustments cancel out to zero or below are skipped.
func (r *CancelRepository) Board(limit int) ([]CancelBoardRow, error) {
	var rows []CancelBoardRow
	err := r.db.Model(&models.CancelEvent{}).
		Select("user_id, SUM(weight) AS total").
		Group("user_id").
		Having("SUM(weight) > 0").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build cancel board")
	}
	return rows, nil
}

// Adjust shifts a user's total by delta via a compensating event
func (r *CancelRepository) Adjust(userID string, delta int) error {
	return r.Record(userID, "", models.CancelReasonManualAdjust, delta)
}

// SetTotal rewrites a user's total to an absolute value by recording the
// difference from the current sum.
func (r *CancelRepository) SetTotal(userID string, total int) error {
	current, err := r.TotalFor(userID)
	if err != nil {
		return err
	}
	if total == current {
		return nil
	}
	return r.Record(userID, "", models.CancelReasonManualSet, total-current)
}
