package gateway

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

// Logging is a stand-in adapter that logs every outbound operation and hands
// back synthetic references. It keeps the core runnable without a platform
// connection.
type Logging struct{}

func NewLogging() *Logging {
	return &Logging{}
}

func (g *Logging) Upsert(channel, ref string, p Payload) (string, error) {
	if ref == "" {
		ref = uuid.NewString()
	}
	logger.Debug("gateway upsert", "channel", channel, "ref", ref, "title", p.Title)
	return ref, nil
}

func (g *Logging) Delete(channel, ref string) error {
	logger.Debug("gateway delete", "channel", channel, "ref", ref)
	return nil
}

func (g *Logging) UpsertInThread(threadID, ref string, p Payload) (string, error) {
	if ref == "" {
		ref = uuid.NewString()
	}
	logger.Debug("gateway thread upsert", "thread", threadID, "ref", ref, "title", p.Title)
	return ref, nil
}

func (g *Logging) SendToThread(threadID string, p Payload) (string, error) {
	ref := uuid.NewString()
	logger.Debug("gateway thread send", "thread", threadID, "ref", ref, "title", p.Title)
	return ref, nil
}

func (g *Logging) Create(name string, memberIDs []string) (string, error) {
	id := uuid.NewString()
	logger.Info("gateway space created", "space", id, "name", name, "members", len(memberIDs))
	return id, nil
}

func (g *Logging) Archive(threadID string) error {
	logger.Info("gateway space archived", "space", threadID)
	return nil
}

func (g *Logging) CreateTeamRooms(matchID int, teamA, teamB []string) (string, string, error) {
	roomA := fmt.Sprintf("voice-a-%d", matchID)
	roomB := fmt.Sprintf("voice-b-%d", matchID)
	logger.Info("gateway voice rooms created", "match_id", matchID)
	return roomA, roomB, nil
}

func (g *Logging) Destroy(roomIDs ...string) error {
	logger.Info("gateway voice rooms destroyed", "rooms", roomIDs)
	return nil
}

func (g *Logging) Notify(userID, text string, b Button) error {
	logger.Debug("gateway notify", "user_id", userID, "button", b.ID)
	return nil
}
