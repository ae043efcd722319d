package handlers

import (
	"github.com/scrimhub/scrimbot/internal/config"
	"github.com/scrimhub/scrimbot/internal/services"
	"github.com/scrimhub/scrimbot/pkg/errors"
)

// HandlerManager is the inbound edge: it decodes platform interactions and
// commands, enforces admin permissions, and dispatches into the services.
type HandlerManager struct {
	Config      *config.Config
	Queue       *services.QueueService
	ReadyChecks *services.ReadyCheckService
	Matches     *services.MatchService
	Admin       *services.AdminService
	Boards      *services.BoardsService
}

func NewHandlerManager(
	cfg *config.Config,
	queue *services.QueueService,
	readyChecks *services.ReadyCheckService,
	matches *services.MatchService,
	admin *services.AdminService,
	boards *services.BoardsService,
) *HandlerManager {
	return &HandlerManager{
		Config:      cfg,
		Queue:       queue,
		ReadyChecks: readyChecks,
		Matches:     matches,
		Admin:       admin,
		Boards:      boards,
	}
}

// requireAdmin gates mutations behind the configured admin list.
func (m *HandlerManager) requireAdmin(userID string) error {
	if !m.Config.IsAdmin(userID) {
		return errors.New(errors.ErrCodeForbidden, "admin only")
	}
	return nil
}
