package repositories

import (
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ActiveForMatch returns the non-reverted rating rows of a match
func (r *HistoryRepository) ActiveForMatch(matchID int) ([]models.RatingHistory, error) {
	var histories []models.RatingHistory
	result := r.db.Where("match_id = ? AND reverted = ?", matchID, false).Find(&histories)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get rating history")
	}
	return histories, nil
}

// ForUser returns a player's rating trail, newest first
func (r *HistoryRepository) ForUser(userID string, limit int) ([]models.RatingHistory, error) {
	var histories []models.RatingHistory
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&histories)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get rating history")
	}
	return histories, nil
}

// RecordVote appends a captain's result vote to the audit trail. A repeat
// vote by the same user is ignored; the authoritative copy lives on the
// match row.
func (r *HistoryRepository) RecordVote(matchID int, userID, choice string) error {
	var count int64
	if err := r.db.Model(&models.Vote{}).
		Where("match_id = ? AND user_id = ?", matchID, userID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check vote")
	}
	if count > 0 {
		return nil
	}

	vote := models.Vote{MatchID: matchID, UserID: userID, Choice: choice}
	if err := r.db.Create(&vote).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record vote")
	}
	return nil
}

// Votes returns the vote audit of a match
func (r *HistoryRepository) Votes(matchID int) ([]models.Vote, error) {
	var votes []models.Vote
	result := r.db.Where("match_id = ?", matchID).Order("created_at ASC").Find(&votes)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list votes")
	}
	return votes, nil
}
