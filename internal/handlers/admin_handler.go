package handlers

import (
	"github.com/scrimhub/scrimbot/internal/models"
)

// Admin command surface. Every entry point verifies the caller before any
// mutation; Wipe additionally re-verifies the admin key inside the service.

func (m *HandlerManager) ForceWin(adminID string, matchID int, team string) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Matches.ForceWin(matchID, team, adminID)
}

func (m *HandlerManager) ReverseMatch(adminID string, matchID int) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Matches.Reverse(matchID)
}

func (m *HandlerManager) CancelMatch(adminID string, matchID int) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Matches.Cancel(matchID)
}

func (m *HandlerManager) SetWinner(adminID string, matchID int, team string) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Matches.SetWinner(matchID, team, adminID)
}

func (m *HandlerManager) SetCaptain(adminID string, matchID int, team, userID string) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.SetCaptain(matchID, team, userID)
}

func (m *HandlerManager) FillQueue(adminID string, count int) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.Fill(count)
}

func (m *HandlerManager) ClearQueue(adminID string) (int64, error) {
	if err := m.requireAdmin(adminID); err != nil {
		return 0, err
	}
	return m.Admin.ClearQueue()
}

func (m *HandlerManager) Wipe(adminID, adminKey string) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.Wipe(adminKey)
}

func (m *HandlerManager) AdjustCancels(adminID, userID string, delta int) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.AdjustCancels(userID, delta)
}

func (m *HandlerManager) SetCancels(adminID, userID string, total int) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.SetCancels(userID, total)
}

func (m *HandlerManager) ConfigureQueue(adminID string, readyEnabled *bool, readySeconds *int) (*models.QueueSettings, error) {
	if err := m.requireAdmin(adminID); err != nil {
		return nil, err
	}
	return m.Admin.ConfigureQueue(readyEnabled, readySeconds)
}

func (m *HandlerManager) ConfigureVeto(adminID string, captainMode *string, maps []string, turnSeconds *int) (*models.VetoSettings, error) {
	if err := m.requireAdmin(adminID); err != nil {
		return nil, err
	}
	return m.Admin.ConfigureVeto(captainMode, maps, turnSeconds)
}

func (m *HandlerManager) BanPlayer(adminID, userID string, banned bool) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.BanPlayer(userID, banned)
}

func (m *HandlerManager) Export(adminID, path string) error {
	if err := m.requireAdmin(adminID); err != nil {
		return err
	}
	return m.Admin.Export(path)
}
