package repositories

import (
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

// SettingsRepository manages the single-row runtime settings tables.
// Defaults come from the static config on first access; admin commands
// update the rows afterwards.
type SettingsRepository struct {
	db *gorm.DB

	defaultReadySeconds int
	defaultTurnSeconds  int
	defaultMaps         []string
}

func NewSettingsRepository(db *gorm.DB, readySeconds, turnSeconds int, mapPool []string) *SettingsRepository {
	return &SettingsRepository{
		db:                  db,
		defaultReadySeconds: readySeconds,
		defaultTurnSeconds:  turnSeconds,
		defaultMaps:         mapPool,
	}
}

// Queue returns the queue settings row, creating it from defaults on first
// access.
func (r *SettingsRepository) Queue() (*models.QueueSettings, error) {
	var settings models.QueueSettings
	result := r.db.First(&settings)

	if result.Error == gorm.ErrRecordNotFound {
		settings = models.QueueSettings{
			ReadyEnabled: true,
			ReadySeconds: r.defaultReadySeconds,
		}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to seed queue settings")
		}
		return &settings, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get queue settings")
	}

	return &settings, nil
}

// UpdateQueue applies a partial update; nil fields keep their value.
func (r *SettingsRepository) UpdateQueue(readyEnabled *bool, readySeconds *int) (*models.QueueSettings, error) {
	settings, err := r.Queue()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if readyEnabled != nil {
		updates["ready_enabled"] = *readyEnabled
	}
	if readySeconds != nil {
		if *readySeconds < 10 || *readySeconds > 600 {
			return nil, errors.New(errors.ErrCodeValidation, "ready seconds must be between 10 and 600")
		}
		updates["ready_seconds"] = *readySeconds
	}
	if len(updates) == 0 {
		return settings, nil
	}

	if err := r.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update queue settings")
	}
	return r.Queue()
}

// Veto returns the veto settings row, creating it from defaults on first
// access.
func (r *SettingsRepository) Veto() (*models.VetoSettings, error) {
	var settings models.VetoSettings
	result := r.db.First(&settings)

	if result.Error == gorm.ErrRecordNotFound {
		settings = models.VetoSettings{
			CaptainMode: models.CaptainModeRandom,
			TurnSeconds: r.defaultTurnSeconds,
		}
		settings.SetMapList(r.defaultMaps)
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to seed veto settings")
		}
		return &settings, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get veto settings")
	}

	return &settings, nil
}

// UpdateVeto applies a partial update; nil fields keep their value.
func (r *SettingsRepository) UpdateVeto(captainMode *string, maps []string, turnSeconds *int) (*models.VetoSettings, error) {
	settings, err := r.Veto()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if captainMode != nil {
		if *captainMode != models.CaptainModeRandom && *captainMode != models.CaptainModeHighest {
			return nil, errors.New(errors.ErrCodeValidation, "captain mode must be random or highest")
		}
		updates["captain_mode"] = *captainMode
	}
	if maps != nil {
		if len(maps) < 2 {
			return nil, errors.New(errors.ErrCodeValidation, "map pool needs at least two maps")
		}
		tmp := models.VetoSettings{}
		tmp.SetMapList(maps)
		updates["maps"] = tmp.Maps
	}
	if turnSeconds != nil {
		if *turnSeconds < 10 || *turnSeconds > 600 {
			return nil, errors.New(errors.ErrCodeValidation, "turn seconds must be between 10 and 600")
		}
		updates["turn_seconds"] = *turnSeconds
	}
	if len(updates) == 0 {
		return settings, nil
	}

	if err := r.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update veto settings")
	}
	return r.Veto()
}
