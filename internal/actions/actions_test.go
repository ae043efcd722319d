package actions

import (
	"testing"

	"github.com/scrimhub/scrimbot/pkg/errors"
)

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{
			name:   "Join queue",
			action: JoinQueue{},
		},
		{
			name:   "Leave queue",
			action: LeaveQueue{},
		},
		{
			name:   "Confirm ready",
			action: ConfirmReady{RcID: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"},
		},
		{
			name:   "Ban map",
			action: BanMap{MatchID: 42, Map: "Icebox"},
		},
		{
			name:   "Captain vote A",
			action: CastVote{MatchID: 7, Team: "A"},
		},
		{
			name:   "Captain vote B",
			action: CastVote{MatchID: 7, Team: "B"},
		},
		{
			name:   "Admin set winner",
			action: AdminSetWinner{MatchID: 13, Team: "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.action.Encode())
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.action.Encode(), err)
			}
			if decoded != tt.action {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.action.Encode(), decoded, tt.action)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{
			name: "Empty",
			id:   "",
		},
		{
			name: "Unknown verb",
			id:   "queue_purge",
		},
		{
			name: "Confirm without id",
			id:   "rc_confirm_",
		},
		{
			name: "Ban without map",
			id:   "veto_ban_42::",
		},
		{
			name: "Ban without separator",
			id:   "veto_ban_42",
		},
		{
			name: "Ban with non-numeric match",
			id:   "veto_ban_abc::Ascent",
		},
		{
			name: "Vote with bad team",
			id:   "capvote_C_7",
		},
		{
			name: "Vote with non-numeric match",
			id:   "capvote_A_x",
		},
		{
			name: "Set winner with bad team",
			id:   "admin_setwin_X_9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.id)
			if err == nil {
				t.Fatalf("Decode(%q) expected error, got nil", tt.id)
			}
			if !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("Decode(%q) code = %s, want VALIDATION_ERROR", tt.id, errors.Code(err))
			}
		})
	}
}

func TestEncode_MapNamesWithSpaces(t *testing.T) {
	a := BanMap{MatchID: 3, Map: "The Range"}

	decoded, err := Decode(a.Encode())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded != a {
		t.Errorf("Decode() = %#v, want %#v", decoded, a)
	}
}
