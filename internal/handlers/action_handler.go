package handlers

import (
	"fmt"

	"github.com/scrimhub/scrimbot/internal/actions"
	"github.com/scrimhub/scrimbot/pkg/errors"
)

// HandleAction routes one button interaction. The decode step yields a
// closed set of typed variants, so this switch is exhaustive: a new action
// variant that is not handled here is a bug, not a silently ignored string.
func (m *HandlerManager) HandleAction(userID, displayName, actionID string) error {
	action, err := actions.Decode(actionID)
	if err != nil {
		return err
	}

	switch a := action.(type) {
	case actions.JoinQueue:
		return m.Queue.Join(userID, displayName)
	case actions.LeaveQueue:
		return m.Queue.Leave(userID)
	case actions.ConfirmReady:
		return m.ReadyChecks.Confirm(userID, a.RcID)
	case actions.BanMap:
		return m.Matches.HandleBan(userID, a.MatchID, a.Map)
	case actions.CastVote:
		return m.Matches.HandleVote(userID, a.MatchID, a.Team)
	case actions.AdminSetWinner:
		if err := m.requireAdmin(userID); err != nil {
			return err
		}
		return m.Matches.SetWinner(a.MatchID, a.Team, userID)
	default:
		return errors.New(errors.ErrCodeInternalError, fmt.Sprintf("unhandled action %T", action))
	}
}
