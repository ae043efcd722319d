package repositories

import (
	"time"

	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type QueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Add appends a user to the waiting line
func (r *QueueRepository) Add(userID string) error {
	var count int64
	if err := r.db.Model(&models.QueueEntry{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check queue membership")
	}
	if count > 0 {
		return errors.New(errors.ErrCodeAlreadyQueued, "already in the queue")
	}

	entry := models.QueueEntry{
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := r.db.Create(&entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to join queue")
	}
	return nil
}

// Remove takes a user out of the waiting line
func (r *QueueRepository) Remove(userID string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.QueueEntry{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to leave queue")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotQueued, "not in the queue")
	}
	return nil
}

// RemoveMany drops a set of users from the line, tolerating absentees
func (r *QueueRepository) RemoveMany(userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	result := r.db.Where("user_id IN ?", userIDs).Delete(&models.QueueEntry{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove from queue")
	}
	return nil
}

// List returns the whole line in join order
func (r *QueueRepository) List() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	result := r.db.Order("joined_at ASC, id ASC").Find(&entries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list queue")
	}
	return entries, nil
}

// First returns the first n entries in join order
func (r *QueueRepository) First(n int) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	result := r.db.Order("joined_at ASC, id ASC").Limit(n).Find(&entries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to read queue front")
	}
	return entries, nil
}

// Count returns the line length
func (r *QueueRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.QueueEntry{}).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count queue")
	}
	return count, nil
}

// Contains reports whether a user is in the line
func (r *QueueRepository) Contains(userID string) (bool, error) {
	var count int64
	result := r.db.Model(&models.QueueEntry{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check queue membership")
	}
	return count > 0, nil
}

// MoveToFront rewrites the join timestamps of the given users so they sort
// ahead of everyone else, preserving the order of userIDs among themselves.
func (r *QueueRepository) MoveToFront(userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var oldest models.QueueEntry
		base := time.Now()
		result := tx.Order("joined_at ASC").First(&oldest)
		if result.Error == nil {
			base = oldest.JoinedAt
		} else if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		// Walk backwards so userIDs[0] ends up earliest.
		for i, userID := range userIDs {
			joinedAt := base.Add(-time.Duration(len(userIDs)-i) * time.Second)
			if err := tx.Model(&models.QueueEntry{}).Where("user_id = ?", userID).
				Update("joined_at", joinedAt).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to reprioritize queue")
	}
	return nil
}

// Clear empties the line
func (r *QueueRepository) Clear() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.QueueEntry{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to clear queue")
	}
	return result.RowsAffected, nil
}
