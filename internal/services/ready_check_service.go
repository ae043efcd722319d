package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scrimhub/scrimbot/internal/actions"
	"github.com/scrimhub/scrimbot/internal/gateway"
	"github.com/scrimhub/scrimbot/internal/metrics"
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/internal/scheduler"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

// retriggerer re-runs the queue evaluation after an expiry evicts players.
type retriggerer interface {
	Trigger() error
}

// ReadyCheckService runs the confirmation gate between a full queue and a
// match. At most one check is pending at a time; completion and expiry race
// through a conditional status update, so exactly one of them acts.
type ReadyCheckService struct {
	rcRepo       *repositories.ReadyCheckRepository
	queueRepo    *repositories.QueueRepository
	playerRepo   *repositories.PlayerRepository
	cancelRepo   *repositories.CancelRepository
	settingsRepo *repositories.SettingsRepository

	matches *MatchService
	boards  *BoardsService
	timers  *scheduler.TimerSet

	messenger gateway.Messenger
	notifier  gateway.Notifier

	requeue retriggerer
}

func NewReadyCheckService(
	rcRepo *repositories.ReadyCheckRepository,
	queueRepo *repositories.QueueRepository,
	playerRepo *repositories.PlayerRepository,
	cancelRepo *repositories.CancelRepository,
	settingsRepo *repositories.SettingsRepository,
	matches *MatchService,
	boards *BoardsService,
	timers *scheduler.TimerSet,
	messenger gateway.Messenger,
	notifier gateway.Notifier,
) *ReadyCheckService {
	return &ReadyCheckService{
		rcRepo:       rcRepo,
		queueRepo:    queueRepo,
		playerRepo:   playerRepo,
		cancelRepo:   cancelRepo,
		settingsRepo: settingsRepo,
		matches:      matches,
		boards:       boards,
		timers:       timers,
		messenger:    messenger,
		notifier:     notifier,
	}
}

// SetRequeue wires the queue trigger back-reference after construction.
func (s *ReadyCheckService) SetRequeue(r retriggerer) {
	s.requeue = r
}

// rcRefreshInterval is how often the countdown display re-renders between
// confirm events.
const rcRefreshInterval = 5 * time.Second

func rcTimerKey(rcID string) string {
	return "rc:" + rcID
}

func rcUIKey(rcID string) string {
	return "rc-ui:" + rcID
}

// Start launches a ready check over the given participants. While another
// check is pending this is a success no-op, so concurrent triggers collapse.
func (s *ReadyCheckService) Start(userIDs []string) error {
	settings, err := s.settingsRepo.Queue()
	if err != nil {
		return err
	}

	rcID := uuid.NewString()
	timeout := time.Duration(settings.ReadySeconds) * time.Second
	deadline := time.Now().Add(timeout)

	check, err := s.rcRepo.CreatePending(rcID, userIDs, deadline)
	if err != nil {
		return err
	}
	if check == nil {
		return nil
	}

	metrics.ReadyChecksStarted.Inc()
	logger.Info("ready check started", "rc_id", rcID, "members", len(userIDs), "seconds", settings.ReadySeconds)

	// Synthetic players confirm themselves; humans get pinged.
	players, err := s.playerRepo.GetMany(userIDs)
	if err == nil {
		var synthetic []string
		for _, p := range players {
			if p.Synthetic {
				synthetic = append(synthetic, p.UserID)
				continue
			}
			btn := gateway.Button{
				ID:    actions.ConfirmReady{RcID: rcID}.Encode(),
				Label: "I'm ready",
				Style: gateway.StyleSuccess,
			}
			if err := s.notifier.Notify(p.UserID, "Your match is ready — confirm to play.", btn); err != nil {
				logger.Error("ready notify failed", "rc_id", rcID, "user_id", p.UserID, "error", err)
			}
		}
		if len(synthetic) > 0 {
			if err := s.rcRepo.ConfirmAll(rcID, synthetic); err != nil {
				logger.Error("synthetic confirm failed", "rc_id", rcID, "error", err)
			}
		}
	}

	s.renderStatus(rcID)
	s.timers.Schedule(rcTimerKey(rcID), timeout, func() { s.expire(rcID) })
	s.timers.Tick(rcUIKey(rcID), rcRefreshInterval, func() { s.renderStatus(rcID) })

	// Synthetic-only fills may already be fully confirmed.
	if done, err := s.rcRepo.AllConfirmed(rcID); err == nil && done {
		return s.complete(rcID)
	}
	return nil
}

// Confirm marks one participant ready; the last confirmation completes the
// check and starts the match.
func (s *ReadyCheckService) Confirm(userID, rcID string) error {
	if err := s.rcRepo.Confirm(rcID, userID); err != nil {
		return err
	}

	s.renderStatus(rcID)

	done, err := s.rcRepo.AllConfirmed(rcID)
	if err != nil {
		return err
	}
	if !done {
		return nil
	}
	return s.complete(rcID)
}

// complete moves the confirmed ten to the queue front and hands over to the
// match starter. The status update decides the race against the expiry
// timer.
func (s *ReadyCheckService) complete(rcID string) error {
	won, err := s.rcRepo.TransitionStatus(rcID, models.ReadyCheckPending, models.ReadyCheckComplete)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	s.timers.Cancel(rcTimerKey(rcID))
	s.timers.Cancel(rcUIKey(rcID))

	members, err := s.rcRepo.Members(rcID)
	if err != nil {
		return err
	}
	userIDs := make([]string, len(members))
	for i, m := range members {
		userIDs[i] = m.UserID
	}

	if err := s.queueRepo.MoveToFront(userIDs); err != nil {
		return err
	}

	s.renderStatus(rcID)
	logger.Info("ready check complete", "rc_id", rcID)
	return s.matches.TryStartFromQueue()
}

// expire is the deadline timer: unconfirmed members are evicted from the
// queue and charged a cancellation, then the queue is re-evaluated.
func (s *ReadyCheckService) expire(rcID string) {
	won, err := s.rcRepo.TransitionStatus(rcID, models.ReadyCheckPending, models.ReadyCheckExpired)
	if err != nil {
		logger.Error("ready check expiry failed", "rc_id", rcID, "error", err)
		return
	}
	if !won {
		return
	}

	s.timers.Cancel(rcUIKey(rcID))
	metrics.ReadyChecksExpired.Inc()

	members, err := s.rcRepo.Members(rcID)
	if err != nil {
		logger.Error("member read failed", "rc_id", rcID, "error", err)
		return
	}

	var evicted []string
	for _, m := range members {
		if !m.Confirmed {
			evicted = append(evicted, m.UserID)
		}
	}

	if err := s.queueRepo.RemoveMany(evicted); err != nil {
		logger.Error("eviction failed", "rc_id", rcID, "error", err)
	}
	for _, userID := range evicted {
		if err := s.cancelRepo.Record(userID, rcID, models.CancelReasonReadyExpired, 1); err != nil {
			logger.Error("cancel event failed", "rc_id", rcID, "user_id", userID, "error", err)
		}
	}

	s.renderStatus(rcID)
	s.boards.RefreshCancelBoard()
	logger.Info("ready check expired", "rc_id", rcID, "evicted", len(evicted))

	if s.requeue != nil {
		if err := s.requeue.Trigger(); err != nil {
			logger.Error("retrigger after expiry failed", "rc_id", rcID, "error", err)
		}
	}
}

// renderStatus re-renders the countdown display for a check.
func (s *ReadyCheckService) renderStatus(rcID string) {
	check, err := s.rcRepo.GetByRcID(rcID)
	if err != nil {
		return
	}
	members, err := s.rcRepo.Members(rcID)
	if err != nil {
		return
	}

	confirmed := 0
	for _, m := range members {
		if m.Confirmed {
			confirmed++
		}
	}

	var title, body string
	var buttons []gateway.Button
	switch check.Status {
	case models.ReadyCheckPending:
		title = "Ready check"
		body = fmt.Sprintf("%d/%d confirmed — %ds left",
			confirmed, len(members), int(time.Until(check.Deadline).Seconds()))
		buttons = []gateway.Button{{
			ID:    actions.ConfirmReady{RcID: rcID}.Encode(),
			Label: "I'm ready",
			Style: gateway.StyleSuccess,
		}}
	case models.ReadyCheckComplete:
		title = "Ready check complete"
		body = "Everyone confirmed. Building teams..."
	case models.ReadyCheckExpired:
		title = "Ready check expired"
		body = fmt.Sprintf("%d/%d confirmed in time.", confirmed, len(members))
	}

	ref, err := s.messenger.Upsert(gateway.ChannelQueue, check.StatusMessageID, gateway.Payload{
		Title:   title,
		Body:    body,
		Buttons: buttons,
	})
	if err != nil {
		logger.Error("ready status upsert failed", "rc_id", rcID, "error", err)
		return
	}
	if ref != check.StatusMessageID {
		if err := s.rcRepo.SetStatusMessageID(rcID, ref); err != nil {
			logger.Error("ready status ref save failed", "rc_id", rcID, "error", err)
		}
	}
}
