package models

import (
	"testing"
)

func TestMatch_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{
			name:   "Voting match",
			status: MatchStatusVoting,
			want:   false,
		},
		{
			name:   "Review match",
			status: MatchStatusReview,
			want:   false,
		},
		{
			name:   "Closed match",
			status: MatchStatusClosed,
			want:   true,
		},
		{
			name:   "Abandoned match",
			status: MatchStatusAbandoned,
			want:   true,
		},
		{
			name:   "Reversed match",
			status: MatchStatusReversed,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{MatchID: 1, Status: tt.status}
			if got := m.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchConstants(t *testing.T) {
	if TeamA != "A" || TeamB != "B" {
		t.Errorf("team labels = %q/%q, want A/B", TeamA, TeamB)
	}
	if MatchStatusVoting != "voting" {
		t.Errorf("MatchStatusVoting = %q, want %q", MatchStatusVoting, "voting")
	}
	if len(TerminalMatchStatuses) != 3 {
		t.Errorf("len(TerminalMatchStatuses) = %d, want 3", len(TerminalMatchStatuses))
	}
}

func TestVetoSettings_MapListRoundTrip(t *testing.T) {
	s := &VetoSettings{}
	s.SetMapList([]string{"Ascent", "Bind", "Haven"})

	got := s.MapList()
	want := []string{"Ascent", "Bind", "Haven"}
	if len(got) != len(want) {
		t.Fatalf("len(MapList()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MapList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVetoSettings_MapListSkipsEmpty(t *testing.T) {
	s := &VetoSettings{Maps: "Ascent, ,Bind,,"}

	got := s.MapList()
	if len(got) != 2 {
		t.Fatalf("len(MapList()) = %d, want 2", len(got))
	}
	if got[0] != "Ascent" || got[1] != "Bind" {
		t.Errorf("MapList() = %v, want [Ascent Bind]", got)
	}
}
