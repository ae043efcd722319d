package services

import (
	"fmt"

	"github.com/scrimhub/scrimbot/internal/config"
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/internal/security"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"github.com/scrimhub/scrimbot/pkg/logger"
	"github.com/scrimhub/scrimbot/pkg/utils"
)

// AdminService is the moderation surface: simulation fills, destructive
// resets, cancellation adjustments, and runtime settings. Permission checks
// live in the handler; everything here assumes an authorized caller except
// Wipe, which re-verifies the admin key itself.
type AdminService struct {
	cfg *config.Config

	playerRepo   *repositories.PlayerRepository
	queueRepo    *repositories.QueueRepository
	matchRepo    *repositories.MatchRepository
	cancelRepo   *repositories.CancelRepository
	vetoRepo     *repositories.VetoRepository
	settingsRepo *repositories.SettingsRepository

	queue  *QueueService
	boards *BoardsService
}

func NewAdminService(
	cfg *config.Config,
	playerRepo *repositories.PlayerRepository,
	queueRepo *repositories.QueueRepository,
	matchRepo *repositories.MatchRepository,
	cancelRepo *repositories.CancelRepository,
	vetoRepo *repositories.VetoRepository,
	settingsRepo *repositories.SettingsRepository,
	queue *QueueService,
	boards *BoardsService,
) *AdminService {
	return &AdminService{
		cfg:          cfg,
		playerRepo:   playerRepo,
		queueRepo:    queueRepo,
		matchRepo:    matchRepo,
		cancelRepo:   cancelRepo,
		vetoRepo:     vetoRepo,
		settingsRepo: settingsRepo,
		queue:        queue,
		boards:       boards,
	}
}

// Fill tops the queue up with synthetic players (f_1, f_2, ...) for
// end-to-end dry runs. Synthetic players auto-confirm ready checks.
func (s *AdminService) Fill(count int) error {
	if count < 1 || count > 100 {
		return errors.New(errors.ErrCodeValidation, "fill count must be within 1..100")
	}

	added := 0
	for i := 1; added < count && i <= 1000; i++ {
		userID := fmt.Sprintf("f_%d", i)

		if _, err := s.playerRepo.GetByUserID(userID); err != nil {
			if !errors.Is(err, errors.ErrCodeNotFound) {
				return err
			}
			if _, err := s.playerRepo.CreateSynthetic(userID, userID, s.cfg.BaselineRating); err != nil {
				return err
			}
		}

		err := s.queueRepo.Add(userID)
		if errors.Is(err, errors.ErrCodeAlreadyQueued) {
			continue
		}
		if err != nil {
			return err
		}
		added++
	}

	logger.Info("queue filled", "added", added)
	s.queue.RefreshPanel()
	return s.queue.Trigger()
}

// ClearQueue empties the waiting line.
func (s *AdminService) ClearQueue() (int64, error) {
	removed, err := s.queueRepo.Clear()
	if err != nil {
		return 0, err
	}
	logger.Warn("queue cleared", "removed", removed)
	s.queue.RefreshPanel()
	return removed, nil
}

// Wipe erases all players, ratings, votes, and cancellations. The caller
// must present the configured admin key; matches stay for the record.
func (s *AdminService) Wipe(adminKey string) error {
	if !security.VerifyAdminKey(adminKey, s.cfg.AdminKey) {
		return errors.New(errors.ErrCodeUnauthorized, "bad admin key")
	}

	if err := s.playerRepo.WipeAll(); err != nil {
		return err
	}

	logger.Warn("player data wiped")
	s.queue.RefreshPanel()
	s.boards.RefreshLeaderboard()
	s.boards.RefreshCancelBoard()
	return nil
}

// WipeWithToken is the signed-token variant of Wipe for tooling that holds
// a short-lived admin token instead of the raw key.
func (s *AdminService) WipeWithToken(token string) error {
	if s.cfg.JWTSecret == "" {
		return errors.New(errors.ErrCodeUnauthorized, "token auth is not configured")
	}
	if _, err := security.ValidateAdminToken(token, security.ScopeWipe, s.cfg.JWTSecret); err != nil {
		return errors.Wrap(err, errors.ErrCodeUnauthorized, "bad admin token")
	}
	return s.Wipe(s.cfg.AdminKey)
}

// AdjustCancels shifts a user's cancellation total by delta.
func (s *AdminService) AdjustCancels(userID string, delta int) error {
	if err := s.cancelRepo.Adjust(userID, delta); err != nil {
		return err
	}
	s.boards.RefreshCancelBoard()
	return nil
}

// SetCancels rewrites a user's cancellation total to an absolute value.
func (s *AdminService) SetCancels(userID string, total int) error {
	if total < 0 {
		return errors.New(errors.ErrCodeValidation, "total must not be negative")
	}
	if err := s.cancelRepo.SetTotal(userID, total); err != nil {
		return err
	}
	s.boards.RefreshCancelBoard()
	return nil
}

// SetCaptain swaps in a new captain for one side of a running veto. The
// replacement must be on that team.
func (s *AdminService) SetCaptain(matchID int, team, userID string) error {
	if team != models.TeamA && team != models.TeamB {
		return errors.New(errors.ErrCodeValidation, "team must be A or B")
	}

	members, err := s.matchRepo.Team(matchID, team)
	if err != nil {
		return err
	}
	if !utils.Contains(members, userID) {
		return errors.New(errors.ErrCodeValidation, "player is not on that team")
	}

	if err := s.vetoRepo.SetCaptain(matchID, team, userID); err != nil {
		return err
	}
	logger.Info("captain replaced", "match_id", matchID, "team", team, "user_id", userID)
	return nil
}

// ConfigureQueue applies a partial queue settings update.
func (s *AdminService) ConfigureQueue(readyEnabled *bool, readySeconds *int) (*models.QueueSettings, error) {
	settings, err := s.settingsRepo.UpdateQueue(readyEnabled, readySeconds)
	if err != nil {
		return nil, err
	}
	logger.Info("queue settings updated", "ready_enabled", settings.ReadyEnabled, "ready_seconds", settings.ReadySeconds)
	return settings, nil
}

// ConfigureVeto applies a partial veto settings update.
func (s *AdminService) ConfigureVeto(captainMode *string, maps []string, turnSeconds *int) (*models.VetoSettings, error) {
	settings, err := s.settingsRepo.UpdateVeto(captainMode, maps, turnSeconds)
	if err != nil {
		return nil, err
	}
	logger.Info("veto settings updated", "captain_mode", settings.CaptainMode,
		"turn_seconds", settings.TurnSeconds, "pool_size", len(settings.MapList()))
	return settings, nil
}

// BanPlayer blocks a user from queueing (or lifts the block).
func (s *AdminService) BanPlayer(userID string, banned bool) error {
	if err := s.playerRepo.SetBanned(userID, banned); err != nil {
		return err
	}
	if banned {
		// Banned players cannot keep their queue slot.
		if err := s.queueRepo.Remove(userID); err != nil && !errors.Is(err, errors.ErrCodeNotQueued) {
			return err
		}
		s.queue.RefreshPanel()
	}
	logger.Warn("player ban flag changed", "user_id", userID, "banned", banned)
	return nil
}

// Export writes the xlsx workbook with leaderboard and history.
func (s *AdminService) Export(path string) error {
	return s.boards.ExportWorkbook(path)
}
