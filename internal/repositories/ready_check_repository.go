package repositories

import (
	"time"

	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type ReadyCheckRepository struct {
	db *gorm.DB
}

func NewReadyCheckRepository(db *gorm.DB) *ReadyCheckRepository {
	return &ReadyCheckRepository{db: db}
}

// CreatePending creates a pending check with its member snapshot, but only
// if no other pending check exists. Returns (nil, nil) when one does, so
// concurrent triggers collapse into a no-op.
func (r *ReadyCheckRepository) CreatePending(rcID string, userIDs []string, deadline time.Time) (*models.ReadyCheck, error) {
	var created *models.ReadyCheck

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ReadyCheck{}).
			Where("status = ?", models.ReadyCheckPending).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		check := models.ReadyCheck{
			RcID:     rcID,
			Status:   models.ReadyCheckPending,
			Deadline: deadline,
		}
		if err := tx.Create(&check).Error; err != nil {
			return err
		}

		members := make([]models.ReadyCheckMember, len(userIDs))
		for i, userID := range userIDs {
			members[i] = models.ReadyCheckMember{
				RcID:     rcID,
				UserID:   userID,
				Position: i,
			}
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		created = &check
		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create ready check")
	}
	return created, nil
}

// GetByRcID retrieves a check by its id
func (r *ReadyCheckRepository) GetByRcID(rcID string) (*models.ReadyCheck, error) {
	var check models.ReadyCheck
	result := r.db.Where("rc_id = ?", rcID).First(&check)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "ready check not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get ready check")
	}

	return &check, nil
}

// GetPending returns the current pending check, or NOT_FOUND
func (r *ReadyCheckRepository) GetPending() (*models.ReadyCheck, error) {
	var check models.ReadyCheck
	result := r.db.Where("status = ?", models.ReadyCheckPending).First(&check)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "no pending ready check")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get pending check")
	}

	return &check, nil
}

// Members returns the member snapshot in position order
func (r *ReadyCheckRepository) Members(rcID string) ([]models.ReadyCheckMember, error) {
	var members []models.ReadyCheckMember
	result := r.db.Where("rc_id = ?", rcID).Order("position ASC").Find(&members)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list members")
	}
	return members, nil
}

// Confirm flips a member's flag. The update is conditional on the check
// still being pending and the member not yet confirmed, so stale and double
// clicks degrade to typed errors instead of corrupting state.
func (r *ReadyCheckRepository) Confirm(rcID, userID string) error {
	check, err := r.GetByRcID(rcID)
	if err != nil {
		return err
	}
	if check.Status != models.ReadyCheckPending {
		return errors.New(errors.ErrCodeCheckNotPending, "ready check is no longer pending")
	}

	var member models.ReadyCheckMember
	result := r.db.Where("rc_id = ? AND user_id = ?", rcID, userID).First(&member)
	if result.Error == gorm.ErrRecordNotFound {
		return errors.New(errors.ErrCodeNotInCheck, "not part of this ready check")
	}
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get member")
	}

	update := r.db.Model(&models.ReadyCheckMember{}).
		Where("rc_id = ? AND user_id = ? AND confirmed = ?", rcID, userID, false).
		Update("confirmed", true)
	if update.Error != nil {
		return errors.Wrap(update.Error, errors.ErrCodeInternalError, "failed to confirm")
	}
	if update.RowsAffected == 0 {
		return errors.New(errors.ErrCodeAlreadyConfirmed, "already confirmed")
	}
	return nil
}

// ConfirmAll marks every member confirmed (simulation fills use this)
func (r *ReadyCheckRepository) ConfirmAll(rcID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	result := r.db.Model(&models.ReadyCheckMember{}).
		Where("rc_id = ? AND user_id IN ?", rcID, userIDs).
		Update("confirmed", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to confirm members")
	}
	return nil
}

// AllConfirmed reports whether no member is left unconfirmed
func (r *ReadyCheckRepository) AllConfirmed(rcID string) (bool, error) {
	var count int64
	result := r.db.Model(&models.ReadyCheckMember{}).
		Where("rc_id = ? AND confirmed = ?", rcID, false).Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count unconfirmed")
	}
	return count == 0, nil
}

// TransitionStatus moves a check from one status to another. Returns false
// without error when the check already left the expected status, which lets
// the completion path and the expiry timer race safely.
func (r *ReadyCheckRepository) TransitionStatus(rcID, from, to string) (bool, error) {
	now := time.Now()
	result := r.db.Model(&models.ReadyCheck{}).
		Where("rc_id = ? AND status = ?", rcID, from).
		Updates(map[string]interface{}{"status": to, "ended_at": &now})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to transition ready check")
	}
	return result.RowsAffected > 0, nil
}

// SetStatusMessageID remembers the countdown display reference
func (r *ReadyCheckRepository) SetStatusMessageID(rcID, messageID string) error {
	result := r.db.Model(&models.ReadyCheck{}).Where("rc_id = ?", rcID).
		Update("status_message_id", messageID)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to save message ref")
	}
	return nil
}
