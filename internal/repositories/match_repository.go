package repositories

import (
	"time"

	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create persists a match with its immutable team assignments
func (r *MatchRepository) Create(match *models.Match, players []models.MatchPlayer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		if err := tx.Create(&players).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create match")
	}
	return nil
}

// GetByMatchID retrieves a match by its public id
func (r *MatchRepository) GetByMatchID(matchID int) (*models.Match, error) {
	var match models.Match
	result := r.db.Where("match_id = ?", matchID).First(&match)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "match not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get match")
	}

	return &match, nil
}

// Players returns the team assignments of a match
func (r *MatchRepository) Players(matchID int) ([]models.MatchPlayer, error) {
	var players []models.MatchPlayer
	result := r.db.Where("match_id = ?", matchID).Order("id ASC").Find(&players)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get match players")
	}
	return players, nil
}

// Team returns the user ids on one side
func (r *MatchRepository) Team(matchID int, team string) ([]string, error) {
	players, err := r.Players(matchID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range players {
		if p.Team == team {
			out = append(out, p.UserID)
		}
	}
	return out, nil
}

// ActiveMatchFor finds the non-terminal match a user participates in,
// NOT_FOUND when there is none.
func (r *MatchRepository) ActiveMatchFor(userID string) (*models.Match, error) {
	var match models.Match
	result := r.db.
		Joins("JOIN match_players ON match_players.match_id = matches.match_id").
		Where("match_players.user_id = ?", userID).
		Where("matches.status NOT IN ?", models.TerminalMatchStatuses).
		First(&match)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "no active match")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to find active match")
	}

	return &match, nil
}

// TransitionStatus is the compare-and-set gate for lifecycle side effects:
// the caller that wins the transition performs them, everyone else sees
// false and stands down.
func (r *MatchRepository) TransitionStatus(matchID int, from []string, to string, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	result := r.db.Model(&models.Match{}).
		Where("match_id = ? AND status IN ?", matchID, from).
		Updates(updates)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to transition match")
	}
	return result.RowsAffected > 0, nil
}

// SetCaptainVote records a captain's vote once; a second vote by the same
// side is rejected.
func (r *MatchRepository) SetCaptainVote(matchID int, team, choice string) (bool, error) {
	column := "cap_vote_a"
	if team == models.TeamB {
		column = "cap_vote_b"
	}

	result := r.db.Model(&models.Match{}).
		Where("match_id = ? AND status = ? AND "+column+" = ?", matchID, models.MatchStatusVoting, "").
		Update(column, choice)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to record vote")
	}
	return result.RowsAffected > 0, nil
}

// ClearCaptainVotes resets both votes when a recorded result is annulled
func (r *MatchRepository) ClearCaptainVotes(matchID int) error {
	result := r.db.Model(&models.Match{}).Where("match_id = ?", matchID).
		Updates(map[string]interface{}{"cap_vote_a": "", "cap_vote_b": ""})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to clear votes")
	}
	return nil
}

// SaveRefs persists collaborator references (thread, rooms, messages)
func (r *MatchRepository) SaveRefs(matchID int, refs map[string]interface{}) error {
	result := r.db.Model(&models.Match{}).Where("match_id = ?", matchID).Updates(refs)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to save match refs")
	}
	return nil
}

// ApplyRatings closes out the rating side of a finalized match in one
// transaction: player ratings and game counts move, and history rows are
// appended.
func (r *MatchRepository) ApplyRatings(histories []models.RatingHistory) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, h := range histories {
			result := tx.Model(&models.Player{}).Where("user_id = ?", h.UserID).
				Updates(map[string]interface{}{
					"rating":       gorm.Expr("rating + ?", h.Delta),
					"games_played": gorm.Expr("games_played + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return tx.Create(&histories).Error
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to apply ratings")
	}
	return nil
}

// RevertRatings undoes the non-reverted history rows of a match: deltas are
// subtracted back, game counts decremented, and the rows flagged.
func (r *MatchRepository) RevertRatings(matchID int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var histories []models.RatingHistory
		if err := tx.Where("match_id = ? AND reverted = ?", matchID, false).
			Find(&histories).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, h := range histories {
			result := tx.Model(&models.Player{}).Where("user_id = ?", h.UserID).
				Updates(map[string]interface{}{
					"rating":       gorm.Expr("rating - ?", h.Delta),
					"games_played": gorm.Expr("CASE WHEN games_played > 0 THEN games_played - 1 ELSE 0 END"),
				})
			if result.Error != nil {
				return result.Error
			}

			if err := tx.Model(&models.RatingHistory{}).Where("id = ?", h.ID).
				Updates(map[string]interface{}{"reverted": true, "reverted_at": &now}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to revert ratings")
	}
	return nil
}

// RecentClosed returns recently decided matches for the history board
func (r *MatchRepository) RecentClosed(limit int) ([]models.Match, error) {
	var matches []models.Match
	result := r.db.Where("status = ?", models.MatchStatusClosed).
		Order("closed_at DESC").Limit(limit).Find(&matches)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list closed matches")
	}
	return matches, nil
}
