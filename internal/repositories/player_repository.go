package repositories

import (
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByUserID retrieves a player by platform user id
func (r *PlayerRepository) GetByUserID(userID string) (*models.Player, error) {
	var player models.Player
	result := r.db.Where("user_id = ?", userID).First(&player)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "player not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get player")
	}

	return &player, nil
}

// Upsert ensures a player row exists, seeding the baseline rating on first
// sight and refreshing the display name on every call.
func (r *PlayerRepository) Upsert(userID, displayName string, baselineRating int) (*models.Player, error) {
	var player models.Player
	result := r.db.Where("user_id = ?", userID).First(&player)

	if result.Error == gorm.ErrRecordNotFound {
		player = models.Player{
			UserID:      userID,
			DisplayName: displayName,
			Rating:      baselineRating,
		}
		if err := r.db.Create(&player).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create player")
		}
		return &player, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get player")
	}

	if displayName != "" && displayName != player.DisplayName {
		player.DisplayName = displayName
		if err := r.db.Model(&models.Player{}).Where("user_id = ?", userID).
			Update("display_name", displayName).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update display name")
		}
	}

	return &player, nil
}

// GetMany retrieves players for a set of user ids
func (r *PlayerRepository) GetMany(userIDs []string) ([]models.Player, error) {
	var players []models.Player
	if len(userIDs) == 0 {
		return players, nil
	}

	result := r.db.Where("user_id IN ?", userIDs).Find(&players)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get players")
	}
	return players, nil
}

// SetBanned flips the queue ban flag
func (r *PlayerRepository) SetBanned(userID string, banned bool) error {
	result := r.db.Model(&models.Player{}).Where("user_id = ?", userID).Update("banned", banned)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update ban flag")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "player not found")
	}
	return nil
}

// CreateSynthetic creates a simulation player at the given rating
func (r *PlayerRepository) CreateSynthetic(userID, displayName string, rating int) (*models.Player, error) {
	player := models.Player{
		UserID:      userID,
		DisplayName: displayName,
		Rating:      rating,
		Synthetic:   true,
	}
	if err := r.db.Create(&player).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create synthetic player")
	}
	return &player, nil
}

// LeaderboardRow is one rendered leaderboard line.
type LeaderboardRow struct {
	UserID      string
	DisplayName string
	Rating      int
	Games       int
	Wins        int
}

// WinRate returns wins over games, 0 for unplayed players.
func (row LeaderboardRow) WinRate() float64 {
	if row.Games == 0 {
		return 0
	}
	return float64(row.Wins) / float64(row.Games)
}

// Leaderboard returns players with at least one game, with wins counted from
// closed matches, ordered by rating then win-rate.
func (r *PlayerRepository) Leaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.Raw(`
		SELECT p.user_id, p.display_name, p.rating, p.games_played AS games,
			COALESCE(w.wins, 0) AS wins
		FROM players p
		LEFT JOIN (
			SELECT mp.user_id, COUNT(*) AS wins
			FROM match_players mp
			JOIN matches m ON m.match_id = mp.match_id
			WHERE m.status = ? AND m.winner = mp.team
			GROUP BY mp.user_id
		) w ON w.user_id = p.user_id
		WHERE p.games_played > 0
		ORDER BY p.rating DESC,
			CASE WHEN p.games_played = 0 THEN 0
				ELSE CAST(COALESCE(w.wins, 0) AS float) / p.games_played END DESC
		LIMIT ?
	`, models.MatchStatusClosed, limit).Scan(&rows).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build leaderboard")
	}
	return rows, nil
}

// WipeAll removes every player, rating history row, vote, and cancel event.
// Matches stay for the record.
func (r *PlayerRepository) WipeAll() error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.RatingHistory{}, &models.Vote{}, &models.CancelEvent{},
			&models.QueueEntry{}, &models.Player{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to wipe players")
	}
	return nil
}
