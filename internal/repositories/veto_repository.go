package repositories

import (
	"time"

	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type VetoRepository struct {
	db *gorm.DB
}

func NewVetoRepository(db *gorm.DB) *VetoRepository {
	return &VetoRepository{db: db}
}

// CreateState starts a veto: state row plus the pool in configured order,
// first turn handed to team A.
func (r *VetoRepository) CreateState(matchID int, captainA, captainB string, pool []string, turnEndsAt time.Time) (*models.VetoState, error) {
	state := models.VetoState{
		MatchID:     matchID,
		CaptainA:    captainA,
		CaptainB:    captainB,
		CurrentTeam: models.TeamA,
		TurnEndsAt:  &turnEndsAt,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&state).Error; err != nil {
			return err
		}

		maps := make([]models.VetoMap, len(pool))
		for i, name := range pool {
			maps[i] = models.VetoMap{
				MatchID:  matchID,
				Name:     name,
				Position: i,
			}
		}
		return tx.Create(&maps).Error
	})

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create veto")
	}
	return &state, nil
}

// GetState retrieves the veto of a match
func (r *VetoRepository) GetState(matchID int) (*models.VetoState, error) {
	var state models.VetoState
	result := r.db.Where("match_id = ?", matchID).First(&state)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "veto not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get veto")
	}

	return &state, nil
}

// Maps returns the full pool in configured order, banned rows included
func (r *VetoRepository) Maps(matchID int) ([]models.VetoMap, error) {
	var maps []models.VetoMap
	result := r.db.Where("match_id = ?", matchID).Order("position ASC").Find(&maps)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list veto maps")
	}
	return maps, nil
}

// Remaining returns the unbanned maps in configured order
func (r *VetoRepository) Remaining(matchID int) ([]models.VetoMap, error) {
	var maps []models.VetoMap
	result := r.db.Where("match_id = ? AND banned = ?", matchID, false).
		Order("position ASC").Find(&maps)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list remaining maps")
	}
	return maps, nil
}

// Ban marks one map banned on behalf of team. Conditional on the map being
// unbanned and the turn still belonging to team, so a double-click or a
// captain racing the auto-ban timer burns exactly one map per turn.
func (r *VetoRepository) Ban(matchID int, name, team string) (bool, error) {
	result := r.db.Model(&models.VetoMap{}).
		Where("match_id = ? AND name = ? AND banned = ?", matchID, name, false).
		Where("? = (SELECT current_team FROM veto_states WHERE veto_states.match_id = ?)", team, matchID).
		Update("banned", true)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to ban map")
	}
	return result.RowsAffected > 0, nil
}

// PassTurn flips the turn to the other team and arms the next deadline.
// Conditional on the expected current team, which keeps a stale timer from
// double-advancing.
func (r *VetoRepository) PassTurn(matchID int, fromTeam, toTeam string, turnEndsAt time.Time) (bool, error) {
	result := r.db.Model(&models.VetoState{}).
		Where("match_id = ? AND current_team = ?", matchID, fromTeam).
		Updates(map[string]interface{}{
			"current_team": toTeam,
			"turn_ends_at": &turnEndsAt,
		})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to pass turn")
	}
	return result.RowsAffected > 0, nil
}

// Finish records the decided map and ends the turn cycle
func (r *VetoRepository) Finish(matchID int, picked string) error {
	result := r.db.Model(&models.VetoState{}).Where("match_id = ?", matchID).
		Updates(map[string]interface{}{
			"current_team": "",
			"turn_ends_at": nil,
			"picked":       picked,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to finish veto")
	}
	return nil
}

// SetCaptain swaps in a new captain for one side
func (r *VetoRepository) SetCaptain(matchID int, team, userID string) error {
	column := "captain_a"
	if team == models.TeamB {
		column = "captain_b"
	}

	result := r.db.Model(&models.VetoState{}).Where("match_id = ?", matchID).
		Update(column, userID)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to set captain")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "veto not found")
	}
	return nil
}

// SetVetoMessageID remembers the veto board reference
func (r *VetoRepository) SetVetoMessageID(matchID int, messageID string) error {
	result := r.db.Model(&models.VetoState{}).Where("match_id = ?", matchID).
		Update("veto_message_id", messageID)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to save veto message ref")
	}
	return nil
}
