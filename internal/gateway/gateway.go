// Package gateway defines the collaborator interfaces the core needs from
// the chat platform: shared displays, private coordination spaces, per-team
// voice rooms, and out-of-band notifications. The concrete platform adapter
// lives outside this repository; a logging stub is provided for local runs
// and tests.
package gateway

// Logical display channels. The adapter decides where each one lives.
const (
	ChannelQueue        = "queue"
	ChannelLeaderboard  = "leaderboard"
	ChannelMatchHistory = "match-history"
	ChannelCancelBoard  = "cancel-board"
	ChannelReview       = "review"
	ChannelLogs         = "logs"
)

// Button styles understood by adapters.
const (
	StylePrimary   = "primary"
	StyleSuccess   = "success"
	StyleDanger    = "danger"
	StyleSecondary = "secondary"
)

// Button is one interactive component. ID carries an encoded action
// (see internal/actions) that comes back on click.
type Button struct {
	ID       string
	Label    string
	Style    string
	Disabled bool
}

// Payload is a renderable display: a titled body plus optional buttons.
type Payload struct {
	Title   string
	Body    string
	Buttons []Button
}

// Messenger manages shared persistent displays. Upsert edits the referenced
// message when it still exists and otherwise recreates it, returning the
// reference the caller should remember. An empty ref means "create".
type Messenger interface {
	Upsert(channel, ref string, p Payload) (string, error)
	Delete(channel, ref string) error

	// Thread variants address a coordination space instead of a channel.
	UpsertInThread(threadID, ref string, p Payload) (string, error)
	SendToThread(threadID string, p Payload) (string, error)
}

// Spaces manages private coordination spaces (threads) for a match.
type Spaces interface {
	Create(name string, memberIDs []string) (string, error)
	Archive(threadID string) error
}

// VoiceRooms manages the per-team voice channels of a match.
type VoiceRooms interface {
	CreateTeamRooms(matchID int, teamA, teamB []string) (roomA, roomB string, err error)
	Destroy(roomIDs ...string) error
}

// Notifier delivers a private message with one action button.
type Notifier interface {
	Notify(userID, text string, b Button) error
}
