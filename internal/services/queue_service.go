package services

import (
	"fmt"
	"sync"

	"github.com/scrimhub/scrimbot/internal/actions"
	"github.com/scrimhub/scrimbot/internal/config"
	"github.com/scrimhub/scrimbot/internal/gateway"
	"github.com/scrimhub/scrimbot/internal/metrics"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/internal/security"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

// QueueService manages the waiting line and decides when enough players
// are ready to gate through a ready check (or straight into a match when
// the check is disabled).
type QueueService struct {
	cfg *config.Config

	queueRepo    *repositories.QueueRepository
	playerRepo   *repositories.PlayerRepository
	matchRepo    *repositories.MatchRepository
	settingsRepo *repositories.SettingsRepository

	readyChecks *ReadyCheckService
	matches     *MatchService

	messenger gateway.Messenger

	mu       sync.Mutex
	panelRef string
}

func NewQueueService(
	cfg *config.Config,
	queueRepo *repositories.QueueRepository,
	playerRepo *repositories.PlayerRepository,
	matchRepo *repositories.MatchRepository,
	settingsRepo *repositories.SettingsRepository,
	readyChecks *ReadyCheckService,
	matches *MatchService,
	messenger gateway.Messenger,
) *QueueService {
	return &QueueService{
		cfg:          cfg,
		queueRepo:    queueRepo,
		playerRepo:   playerRepo,
		matchRepo:    matchRepo,
		settingsRepo: settingsRepo,
		readyChecks:  readyChecks,
		matches:      matches,
		messenger:    messenger,
	}
}

// Join puts a user into the waiting line, registering them at the baseline
// rating on first sight.
func (s *QueueService) Join(userID, displayName string) error {
	if displayName != "" {
		displayName = security.SanitizeDisplayName(displayName)
	}
	player, err := s.playerRepo.Upsert(userID, displayName, s.cfg.BaselineRating)
	if err != nil {
		return err
	}
	if player.Banned {
		return errors.New(errors.ErrCodeBanned, "you are banned from the queue")
	}

	if _, err := s.matchRepo.ActiveMatchFor(userID); err == nil {
		return errors.New(errors.ErrCodeAlreadyInMatch, "finish your current match first")
	} else if !errors.Is(err, errors.ErrCodeNotFound) {
		return err
	}

	if err := s.queueRepo.Add(userID); err != nil {
		return err
	}

	logger.Info("queue join", "user_id", userID)
	s.RefreshPanel()
	return s.Trigger()
}

// Leave takes a user out of the waiting line.
func (s *QueueService) Leave(userID string) error {
	if err := s.queueRepo.Remove(userID); err != nil {
		return err
	}

	logger.Info("queue leave", "user_id", userID)
	s.RefreshPanel()
	return nil
}

// Trigger re-evaluates the queue: with a full complement waiting it starts
// a ready check, or the match directly when checks are disabled. Idempotent
// and safe to call at any time, including startup recovery.
func (s *QueueService) Trigger() error {
	count, err := s.queueRepo.Count()
	if err != nil {
		return err
	}
	metrics.QueueSize.Set(float64(count))

	if count < int64(s.cfg.MatchSize()) {
		return nil
	}

	settings, err := s.settingsRepo.Queue()
	if err != nil {
		return err
	}

	if !settings.ReadyEnabled {
		return s.matches.TryStartFromQueue()
	}

	entries, err := s.queueRepo.First(s.cfg.MatchSize())
	if err != nil {
		return err
	}
	userIDs := make([]string, len(entries))
	for i, e := range entries {
		userIDs[i] = e.UserID
	}
	return s.readyChecks.Start(userIDs)
}

// RefreshPanel re-renders the join/leave panel with the live queue size.
func (s *QueueService) RefreshPanel() {
	count, err := s.queueRepo.Count()
	if err != nil {
		logger.Error("queue count failed", "error", err)
		return
	}
	metrics.QueueSize.Set(float64(count))

	s.mu.Lock()
	defer s.mu.Unlock()
	ref, err := s.messenger.Upsert(gateway.ChannelQueue, s.panelRef, gateway.Payload{
		Title: "Matchmaking queue",
		Body:  fmt.Sprintf("%d/%d waiting", count, s.cfg.MatchSize()),
		Buttons: []gateway.Button{
			{ID: actions.JoinQueue{}.Encode(), Label: "Join", Style: gateway.StyleSuccess},
			{ID: actions.LeaveQueue{}.Encode(), Label: "Leave", Style: gateway.StyleSecondary},
		},
	})
	if err != nil {
		logger.Error("queue panel upsert failed", "error", err)
		return
	}
	s.panelRef = ref
}
