// Package actions encodes and decodes the identifiers carried by interactive
// buttons. Decoding produces one of a closed set of typed variants so
// handlers can switch exhaustively instead of matching string prefixes.
package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
)

// Action is implemented by every decodable button action.
type Action interface {
	Encode() string
	isAction()
}

// JoinQueue puts the clicking user into the waiting queue.
type JoinQueue struct{}

// LeaveQueue removes the clicking user from the waiting queue.
type LeaveQueue struct{}

// ConfirmReady marks the clicking user confirmed in a ready-check.
type ConfirmReady struct {
	RcID string
}

// BanMap bans one map in a running veto.
type BanMap struct {
	MatchID int
	Map     string
}

// CastVote records a captain's result vote.
type CastVote struct {
	MatchID int
	Team    string
}

// AdminSetWinner resolves a disputed match from the review prompt.
type AdminSetWinner struct {
	MatchID int
	Team    string
}

func (JoinQueue) isAction()      {}
func (LeaveQueue) isAction()     {}
func (ConfirmReady) isAction()   {}
func (BanMap) isAction()         {}
func (CastVote) isAction()       {}
func (AdminSetWinner) isAction() {}

func (JoinQueue) Encode() string  { return "queue_join" }
func (LeaveQueue) Encode() string { return "queue_leave" }

func (a ConfirmReady) Encode() string {
	return "rc_confirm_" + a.RcID
}

func (a BanMap) Encode() string {
	return fmt.Sprintf("veto_ban_%d::%s", a.MatchID, a.Map)
}

func (a CastVote) Encode() string {
	return fmt.Sprintf("capvote_%s_%d", a.Team, a.MatchID)
}

func (a AdminSetWinner) Encode() string {
	return fmt.Sprintf("admin_setwin_%s_%d", a.Team, a.MatchID)
}

// Decode parses a button identifier into its action variant. Unknown or
// malformed identifiers come back as VALIDATION_ERROR.
func Decode(id string) (Action, error) {
	switch id {
	case "queue_join":
		return JoinQueue{}, nil
	case "queue_leave":
		return LeaveQueue{}, nil
	}

	if rcID, ok := strings.CutPrefix(id, "rc_confirm_"); ok {
		if rcID == "" {
			return nil, badAction(id)
		}
		return ConfirmReady{RcID: rcID}, nil
	}

	if rest, ok := strings.CutPrefix(id, "veto_ban_"); ok {
		idPart, mapName, found := strings.Cut(rest, "::")
		if !found || mapName == "" {
			return nil, badAction(id)
		}
		matchID, err := strconv.Atoi(idPart)
		if err != nil {
			return nil, badAction(id)
		}
		return BanMap{MatchID: matchID, Map: mapName}, nil
	}

	if rest, ok := strings.CutPrefix(id, "capvote_"); ok {
		team, matchID, err := teamAndMatch(rest)
		if err != nil {
			return nil, badAction(id)
		}
		return CastVote{MatchID: matchID, Team: team}, nil
	}

	if rest, ok := strings.CutPrefix(id, "admin_setwin_"); ok {
		team, matchID, err := teamAndMatch(rest)
		if err != nil {
			return nil, badAction(id)
		}
		return AdminSetWinner{MatchID: matchID, Team: team}, nil
	}

	return nil, badAction(id)
}

func teamAndMatch(rest string) (string, int, error) {
	team, idPart, found := strings.Cut(rest, "_")
	if !found {
		return "", 0, fmt.Errorf("missing separator")
	}
	if team != models.TeamA && team != models.TeamB {
		return "", 0, fmt.Errorf("bad team %q", team)
	}
	matchID, err := strconv.Atoi(idPart)
	if err != nil {
		return "", 0, err
	}
	return team, matchID, nil
}

func badAction(id string) error {
	return errors.New(errors.ErrCodeValidation, fmt.Sprintf("unrecognized action %q", id))
}
