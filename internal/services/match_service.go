package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/scrimhub/scrimbot/internal/actions"
	"github.com/scrimhub/scrimbot/internal/config"
	"github.com/scrimhub/scrimbot/internal/gateway"
	"github.com/scrimhub/scrimbot/internal/metrics"
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/internal/rating"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/internal/scheduler"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

// MatchService drives a match from creation through veto, result voting,
// and rating settlement. Every transition that gates side effects is a
// conditional update, so a stale timer or a double click loses the race
// instead of double-applying.
type MatchService struct {
	cfg *config.Config

	matchRepo    *repositories.MatchRepository
	playerRepo   *repositories.PlayerRepository
	queueRepo    *repositories.QueueRepository
	vetoRepo     *repositories.VetoRepository
	historyRepo  *repositories.HistoryRepository
	counterRepo  *repositories.CounterRepository
	settingsRepo *repositories.SettingsRepository

	boards *BoardsService
	timers *scheduler.TimerSet

	messenger gateway.Messenger
	spaces    gateway.Spaces
	voice     gateway.VoiceRooms
}

func NewMatchService(
	cfg *config.Config,
	matchRepo *repositories.MatchRepository,
	playerRepo *repositories.PlayerRepository,
	queueRepo *repositories.QueueRepository,
	vetoRepo *repositories.VetoRepository,
	historyRepo *repositories.HistoryRepository,
	counterRepo *repositories.CounterRepository,
	settingsRepo *repositories.SettingsRepository,
	boards *BoardsService,
	timers *scheduler.TimerSet,
	messenger gateway.Messenger,
	spaces gateway.Spaces,
	voice gateway.VoiceRooms,
) *MatchService {
	return &MatchService{
		cfg:          cfg,
		matchRepo:    matchRepo,
		playerRepo:   playerRepo,
		queueRepo:    queueRepo,
		vetoRepo:     vetoRepo,
		historyRepo:  historyRepo,
		counterRepo:  counterRepo,
		settingsRepo: settingsRepo,
		boards:       boards,
		timers:       timers,
		messenger:    messenger,
		spaces:       spaces,
		voice:        voice,
	}
}

// vetoRefreshInterval is how often the veto board re-renders between bans,
// keeping the turn countdown current.
const vetoRefreshInterval = 10 * time.Second

func vetoTimerKey(matchID int) string {
	return fmt.Sprintf("veto:%d", matchID)
}

func vetoUIKey(matchID int) string {
	return fmt.Sprintf("veto-ui:%d", matchID)
}

// TryStartFromQueue creates a match from the queue front when enough
// players are waiting. With fewer, it is a no-op.
func (s *MatchService) TryStartFromQueue() error {
	size := s.cfg.MatchSize()
	entries, err := s.queueRepo.First(size)
	if err != nil {
		return err
	}
	if len(entries) < size {
		return nil
	}

	userIDs := make([]string, len(entries))
	for i, e := range entries {
		userIDs[i] = e.UserID
	}

	players, err := s.playerRepo.GetMany(userIDs)
	if err != nil {
		return err
	}
	rated := make([]rating.Rated, len(players))
	for i, p := range players {
		rated[i] = rating.Rated{UserID: p.UserID, Rating: p.Rating}
	}

	teams := rating.BalanceTeams(rated, s.cfg.TeamSize)

	matchID, err := s.counterRepo.Next(models.CounterMatchID)
	if err != nil {
		return err
	}

	teamAIDs := userIDsOf(teams.TeamA)
	teamBIDs := userIDsOf(teams.TeamB)

	threadID, err := s.spaces.Create(fmt.Sprintf("match-%d", matchID), userIDs)
	if err != nil {
		logger.Error("thread creation failed", "match_id", matchID, "error", err)
	}
	roomA, roomB, err := s.voice.CreateTeamRooms(matchID, teamAIDs, teamBIDs)
	if err != nil {
		logger.Error("voice room creation failed", "match_id", matchID, "error", err)
	}

	match := &models.Match{
		MatchID:         matchID,
		Status:          models.MatchStatusVoting,
		ThreadID:        threadID,
		VoiceAChannelID: roomA,
		VoiceBChannelID: roomB,
	}
	matchPlayers := make([]models.MatchPlayer, 0, len(userIDs))
	for _, id := range teamAIDs {
		matchPlayers = append(matchPlayers, models.MatchPlayer{MatchID: matchID, UserID: id, Team: models.TeamA})
	}
	for _, id := range teamBIDs {
		matchPlayers = append(matchPlayers, models.MatchPlayer{MatchID: matchID, UserID: id, Team: models.TeamB})
	}

	if err := s.matchRepo.Create(match, matchPlayers); err != nil {
		return err
	}
	if err := s.queueRepo.RemoveMany(userIDs); err != nil {
		return err
	}
	metrics.MatchesStarted.Inc()

	vetoSettings, err := s.settingsRepo.Veto()
	if err != nil {
		return err
	}
	captainA, captainB := pickCaptains(teams, vetoSettings.CaptainMode)

	turn := time.Duration(vetoSettings.TurnSeconds) * time.Second
	if _, err := s.vetoRepo.CreateState(matchID, captainA, captainB, vetoSettings.MapList(), time.Now().Add(turn)); err != nil {
		return err
	}

	s.postRecap(match, teamAIDs, teamBIDs, captainA, captainB)
	s.boards.UpsertMatchHistory(match)
	s.renderVetoBoard(matchID)
	s.timers.Schedule(vetoTimerKey(matchID), turn, func() { s.autoBan(matchID) })
	s.timers.Tick(vetoUIKey(matchID), vetoRefreshInterval, func() { s.renderVetoBoard(matchID) })

	logger.Info("match started", "match_id", matchID, "captain_a", captainA, "captain_b", captainB,
		"avg_a", rating.TeamAverage(teams.TeamA), "avg_b", rating.TeamAverage(teams.TeamB))
	return nil
}

func userIDsOf(team []rating.Rated) []string {
	out := make([]string, len(team))
	for i, p := range team {
		out[i] = p.UserID
	}
	return out
}

// pickCaptains selects one captain per side: highest rated, or uniformly at
// random.
func pickCaptains(teams rating.Teams, mode string) (string, string) {
	pick := func(team []rating.Rated) string {
		if mode == models.CaptainModeHighest {
			best := team[0]
			for _, p := range team[1:] {
				if p.Rating > best.Rating {
					best = p
				}
			}
			return best.UserID
		}
		return team[rand.Intn(len(team))].UserID
	}
	return pick(teams.TeamA), pick(teams.TeamB)
}

// HandleBan applies a captain's ban and advances the veto.
func (s *MatchService) HandleBan(userID string, matchID int, mapName string) error {
	state, err := s.vetoRepo.GetState(matchID)
	if err != nil {
		return err
	}
	if state.Picked != "" || state.CurrentTeam == "" {
		return errors.New(errors.ErrCodeInvalidState, "veto already finished")
	}

	side, err := captainSide(state, userID)
	if err != nil {
		return err
	}
	if side != state.CurrentTeam {
		return errors.New(errors.ErrCodeNotYourTurn, "not your turn")
	}

	banned, err := s.vetoRepo.Ban(matchID, mapName, side)
	if err != nil {
		return err
	}
	if !banned {
		return errors.New(errors.ErrCodeMapUnavailable, "map already banned or unknown")
	}

	s.timers.Cancel(vetoTimerKey(matchID))
	return s.advanceVeto(matchID, side)
}

func captainSide(state *models.VetoState, userID string) (string, error) {
	switch userID {
	case state.CaptainA:
		return models.TeamA, nil
	case state.CaptainB:
		return models.TeamB, nil
	}
	return "", errors.New(errors.ErrCodeNotACaptain, "only captains act here")
}

// autoBan is the veto turn timer: it bans a uniformly random remaining map
// on behalf of the stalled captain. A veto that finished in the meantime is
// left alone.
func (s *MatchService) autoBan(matchID int) {
	state, err := s.vetoRepo.GetState(matchID)
	if err != nil {
		return
	}
	if state.Picked != "" || state.CurrentTeam == "" {
		return
	}

	remaining, err := s.vetoRepo.Remaining(matchID)
	if err != nil || len(remaining) <= 1 {
		return
	}

	target := remaining[rand.Intn(len(remaining))].Name
	banned, err := s.vetoRepo.Ban(matchID, target, state.CurrentTeam)
	if err != nil || !banned {
		return
	}

	metrics.VetoAutoBans.Inc()
	logger.Info("veto auto-ban", "match_id", matchID, "map", target, "team", state.CurrentTeam)

	if err := s.advanceVeto(matchID, state.CurrentTeam); err != nil {
		logger.Error("veto advance after auto-ban failed", "match_id", matchID, "error", err)
	}
}

// advanceVeto either hands the turn to the other side or, at one remaining
// map, locks the pick and opens result voting.
func (s *MatchService) advanceVeto(matchID int, fromTeam string) error {
	remaining, err := s.vetoRepo.Remaining(matchID)
	if err != nil {
		return err
	}

	if len(remaining) == 1 {
		picked := remaining[0].Name
		if err := s.vetoRepo.Finish(matchID, picked); err != nil {
			return err
		}
		s.timers.Cancel(vetoTimerKey(matchID))
		s.timers.Cancel(vetoUIKey(matchID))
		if err := s.matchRepo.SaveRefs(matchID, map[string]interface{}{"picked_map": picked}); err != nil {
			return err
		}

		s.renderVetoBoard(matchID)
		s.postVotePrompt(matchID, picked)
		logger.Info("veto finished", "match_id", matchID, "map", picked)
		return nil
	}

	toTeam := models.TeamB
	if fromTeam == models.TeamB {
		toTeam = models.TeamA
	}

	vetoSettings, err := s.settingsRepo.Veto()
	if err != nil {
		return err
	}
	turn := time.Duration(vetoSettings.TurnSeconds) * time.Second

	passed, err := s.vetoRepo.PassTurn(matchID, fromTeam, toTeam, time.Now().Add(turn))
	if err != nil {
		return err
	}
	if passed {
		s.timers.Schedule(vetoTimerKey(matchID), turn, func() { s.autoBan(matchID) })
	}

	s.renderVetoBoard(matchID)
	return nil
}

// HandleVote records a captain's result vote. Agreement closes the match;
// disagreement escalates to admin review.
func (s *MatchService) HandleVote(userID string, matchID int, team string) error {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}
	if match.Status != models.MatchStatusVoting {
		return errors.New(errors.ErrCodeInvalidState, "match is not open for votes")
	}

	state, err := s.vetoRepo.GetState(matchID)
	if err != nil {
		return err
	}
	if state.Picked == "" {
		return errors.New(errors.ErrCodeVetoInProgress, "finish the veto first")
	}

	side, err := captainSide(state, userID)
	if err != nil {
		return err
	}

	set, err := s.matchRepo.SetCaptainVote(matchID, side, team)
	if err != nil {
		return err
	}
	if !set {
		return errors.New(errors.ErrCodeInvalidState, "vote already cast")
	}
	if err := s.historyRepo.RecordVote(matchID, userID, team); err != nil {
		logger.Error("vote audit failed", "match_id", matchID, "error", err)
	}

	match, err = s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}
	if match.CapVoteA == "" || match.CapVoteB == "" {
		return nil
	}

	if match.CapVoteA == match.CapVoteB {
		err := s.Finalize(matchID, match.CapVoteA)
		if errors.Is(err, errors.ErrCodeAlreadyClosed) {
			return nil
		}
		return err
	}

	// Captains disagree: freeze the match and ask an admin.
	moved, err := s.matchRepo.TransitionStatus(matchID,
		[]string{models.MatchStatusVoting}, models.MatchStatusReview, nil)
	if err != nil {
		return err
	}
	if moved {
		s.postReviewPrompt(matchID, match.CapVoteA, match.CapVoteB)
		logger.Warn("match escalated to review", "match_id", matchID,
			"vote_a", match.CapVoteA, "vote_b", match.CapVoteB)
	}
	return nil
}

// Finalize closes a match with a winner and settles ratings. The status
// compare-and-set makes it idempotent: the second caller gets
// ALREADY_CLOSED and no rating moves twice.
func (s *MatchService) Finalize(matchID int, winner string) error {
	if winner != models.TeamA && winner != models.TeamB {
		return errors.New(errors.ErrCodeValidation, "winner must be A or B")
	}
	if err := s.guardVetoNotRunning(matchID); err != nil {
		return err
	}

	now := time.Now()
	won, err := s.matchRepo.TransitionStatus(matchID,
		[]string{models.MatchStatusVoting, models.MatchStatusReview, models.MatchStatusReversed},
		models.MatchStatusClosed,
		map[string]interface{}{"winner": winner, "closed_at": &now})
	if err != nil {
		return err
	}
	if !won {
		return errors.New(errors.ErrCodeAlreadyClosed, "match already settled")
	}

	if err := s.settleRatings(matchID, winner); err != nil {
		return err
	}

	s.timers.Cancel(vetoTimerKey(matchID))
	s.timers.Cancel(vetoUIKey(matchID))
	s.teardownRooms(matchID)
	metrics.MatchesFinalized.Inc()
	s.refreshAfterResult(matchID)

	logger.Info("match finalized", "match_id", matchID, "winner", winner)
	return nil
}

func (s *MatchService) guardVetoNotRunning(matchID int) error {
	state, err := s.vetoRepo.GetState(matchID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	if state.Picked != "" {
		return nil
	}

	remaining, err := s.vetoRepo.Remaining(matchID)
	if err != nil {
		return err
	}
	if len(remaining) > 1 {
		return errors.New(errors.ErrCodeVetoInProgress, "veto still in progress")
	}
	return nil
}

func (s *MatchService) settleRatings(matchID int, winner string) error {
	matchPlayers, err := s.matchRepo.Players(matchID)
	if err != nil {
		return err
	}

	userIDs := make([]string, len(matchPlayers))
	teamOf := make(map[string]string, len(matchPlayers))
	for i, mp := range matchPlayers {
		userIDs[i] = mp.UserID
		teamOf[mp.UserID] = mp.Team
	}

	players, err := s.playerRepo.GetMany(userIDs)
	if err != nil {
		return err
	}

	// A participant whose row vanished mid-match (a wipe, typically)
	// re-enters at the baseline so the settlement covers everyone.
	present := make(map[string]bool, len(players))
	for _, p := range players {
		present[p.UserID] = true
	}
	for _, id := range userIDs {
		if present[id] {
			continue
		}
		p, err := s.playerRepo.Upsert(id, "", s.cfg.BaselineRating)
		if err != nil {
			return err
		}
		players = append(players, *p)
	}

	var teamA, teamB []rating.Rated
	for _, p := range players {
		r := rating.Rated{UserID: p.UserID, Rating: p.Rating}
		if teamOf[p.UserID] == models.TeamA {
			teamA = append(teamA, r)
		} else {
			teamB = append(teamB, r)
		}
	}

	avgA := rating.TeamAverage(teamA)
	avgB := rating.TeamAverage(teamB)
	deltaA, deltaB := rating.ComputeDeltas(avgA, avgB, winner, s.cfg.EloKFactor)

	histories := make([]models.RatingHistory, 0, len(players))
	for _, p := range players {
		delta := deltaA
		if teamOf[p.UserID] == models.TeamB {
			delta = deltaB
		}
		histories = append(histories, models.RatingHistory{
			UserID:    p.UserID,
			MatchID:   matchID,
			OldRating: p.Rating,
			NewRating: p.Rating + delta,
			Delta:     delta,
		})
	}

	return s.matchRepo.ApplyRatings(histories)
}

// Reverse rolls back a closed match: deltas come off, game counts drop,
// history rows are flagged instead of deleted.
func (s *MatchService) Reverse(matchID int) error {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}
	if match.Status != models.MatchStatusClosed {
		return errors.New(errors.ErrCodeNotClosed, "only closed matches can be reversed")
	}

	now := time.Now()
	won, err := s.matchRepo.TransitionStatus(matchID,
		[]string{models.MatchStatusClosed}, models.MatchStatusReversed,
		map[string]interface{}{"previous_winner": match.Winner, "winner": "", "reversed_at": &now})
	if err != nil {
		return err
	}
	if !won {
		return errors.New(errors.ErrCodeNotClosed, "match left closed state concurrently")
	}

	if err := s.matchRepo.RevertRatings(matchID); err != nil {
		return err
	}
	// The annulled votes must not carry into a later ruling.
	if err := s.matchRepo.ClearCaptainVotes(matchID); err != nil {
		return err
	}

	metrics.MatchesReversed.Inc()
	s.refreshAfterResult(matchID)
	logger.Info("match reversed", "match_id", matchID, "previous_winner", match.Winner)
	return nil
}

// Cancel abandons a match with no rating effect. Mid-veto cancels are
// rejected so an in-flight elimination cannot be yanked away; finish or
// let the auto-bans run out first.
func (s *MatchService) Cancel(matchID int) error {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}
	if match.IsTerminal() {
		return errors.New(errors.ErrCodeAlreadyClosed, "match already settled")
	}
	if err := s.guardVetoNotRunning(matchID); err != nil {
		return err
	}

	now := time.Now()
	won, err := s.matchRepo.TransitionStatus(matchID,
		[]string{models.MatchStatusVoting, models.MatchStatusReview},
		models.MatchStatusAbandoned,
		map[string]interface{}{"canceled_at": &now})
	if err != nil {
		return err
	}
	if !won {
		return errors.New(errors.ErrCodeAlreadyClosed, "match already settled")
	}

	s.timers.Cancel(vetoTimerKey(matchID))
	s.timers.Cancel(vetoUIKey(matchID))
	s.teardownRooms(matchID)
	metrics.MatchesCanceled.Inc()
	s.refreshAfterResult(matchID)

	logger.Info("match canceled", "match_id", matchID)
	return nil
}

// SetWinner is the admin override: on an open match it is a forced
// finalize, on a closed one a reverse followed by a re-finalize with the
// new winner.
func (s *MatchService) SetWinner(matchID int, team, adminID string) error {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}

	if match.Status == models.MatchStatusClosed {
		if match.Winner == team {
			return nil
		}
		if err := s.Reverse(matchID); err != nil {
			return err
		}
	}

	if err := s.Finalize(matchID, team); err != nil {
		return err
	}

	if err := s.matchRepo.SaveRefs(matchID, map[string]interface{}{"admin_set_winner_id": adminID}); err != nil {
		logger.Error("admin ref save failed", "match_id", matchID, "error", err)
	}
	return nil
}

// ForceWin finalizes an open match by admin decree.
func (s *MatchService) ForceWin(matchID int, team, adminID string) error {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return err
	}
	if match.Status == models.MatchStatusClosed {
		return errors.New(errors.ErrCodeAlreadyClosed, "match already settled")
	}
	return s.SetWinner(matchID, team, adminID)
}

func (s *MatchService) teardownRooms(matchID int) {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil {
		return
	}
	if match.ThreadID != "" {
		if err := s.spaces.Archive(match.ThreadID); err != nil {
			logger.Error("thread archive failed", "match_id", matchID, "error", err)
		}
	}
	var rooms []string
	if match.VoiceAChannelID != "" {
		rooms = append(rooms, match.VoiceAChannelID)
	}
	if match.VoiceBChannelID != "" {
		rooms = append(rooms, match.VoiceBChannelID)
	}
	if len(rooms) > 0 {
		if err := s.voice.Destroy(rooms...); err != nil {
			logger.Error("voice teardown failed", "match_id", matchID, "error", err)
		}
	}
}

func (s *MatchService) refreshAfterResult(matchID int) {
	s.boards.RefreshLeaderboard()
	if match, err := s.matchRepo.GetByMatchID(matchID); err == nil {
		s.boards.UpsertMatchHistory(match)
	}
}

func (s *MatchService) postRecap(match *models.Match, teamA, teamB []string, captainA, captainB string) {
	if match.ThreadID == "" {
		return
	}

	body := fmt.Sprintf("Team A (captain %s): %s\nTeam B (captain %s): %s",
		captainA, strings.Join(teamA, ", "), captainB, strings.Join(teamB, ", "))
	ref, err := s.messenger.SendToThread(match.ThreadID, gateway.Payload{
		Title: fmt.Sprintf("Match #%d", match.MatchID),
		Body:  body,
	})
	if err != nil {
		logger.Error("recap post failed", "match_id", match.MatchID, "error", err)
		return
	}
	if err := s.matchRepo.SaveRefs(match.MatchID, map[string]interface{}{"recap_message_id": ref}); err != nil {
		logger.Error("recap ref save failed", "match_id", match.MatchID, "error", err)
	}
}

func (s *MatchService) renderVetoBoard(matchID int) {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil || match.ThreadID == "" {
		return
	}
	state, err := s.vetoRepo.GetState(matchID)
	if err != nil {
		return
	}
	maps, err := s.vetoRepo.Maps(matchID)
	if err != nil {
		return
	}

	var b strings.Builder
	var buttons []gateway.Button
	for _, m := range maps {
		if m.Banned {
			fmt.Fprintf(&b, "✗ %s\n", m.Name)
			continue
		}
		fmt.Fprintf(&b, "• %s\n", m.Name)
		if state.Picked == "" {
			buttons = append(buttons, gateway.Button{
				ID:    actions.BanMap{MatchID: matchID, Map: m.Name}.Encode(),
				Label: m.Name,
				Style: gateway.StyleDanger,
			})
		}
	}

	title := fmt.Sprintf("Map veto — Team %s to ban", state.CurrentTeam)
	if state.TurnEndsAt != nil {
		title = fmt.Sprintf("Map veto — Team %s to ban, %ds left",
			state.CurrentTeam, int(time.Until(*state.TurnEndsAt).Seconds()))
	}
	if state.Picked != "" {
		title = fmt.Sprintf("Map locked: %s", state.Picked)
	}

	ref, err := s.messenger.UpsertInThread(match.ThreadID, state.VetoMessageID, gateway.Payload{
		Title:   title,
		Body:    b.String(),
		Buttons: buttons,
	})
	if err != nil {
		logger.Error("veto board upsert failed", "match_id", matchID, "error", err)
		return
	}
	if ref != state.VetoMessageID {
		if err := s.vetoRepo.SetVetoMessageID(matchID, ref); err != nil {
			logger.Error("veto ref save failed", "match_id", matchID, "error", err)
		}
	}
}

func (s *MatchService) postVotePrompt(matchID int, picked string) {
	match, err := s.matchRepo.GetByMatchID(matchID)
	if err != nil || match.ThreadID == "" {
		return
	}

	ref, err := s.messenger.SendToThread(match.ThreadID, gateway.Payload{
		Title: "Report the result",
		Body:  fmt.Sprintf("Played on %s. Captains, who won?", picked),
		Buttons: []gateway.Button{
			{ID: actions.CastVote{MatchID: matchID, Team: models.TeamA}.Encode(), Label: "Team A won", Style: gateway.StylePrimary},
			{ID: actions.CastVote{MatchID: matchID, Team: models.TeamB}.Encode(), Label: "Team B won", Style: gateway.StylePrimary},
		},
	})
	if err != nil {
		logger.Error("vote prompt failed", "match_id", matchID, "error", err)
		return
	}
	if err := s.matchRepo.SaveRefs(matchID, map[string]interface{}{"vote_message_id": ref}); err != nil {
		logger.Error("vote ref save failed", "match_id", matchID, "error", err)
	}
}

func (s *MatchService) postReviewPrompt(matchID int, voteA, voteB string) {
	ref, err := s.messenger.Upsert(gateway.ChannelReview, "", gateway.Payload{
		Title: fmt.Sprintf("Match #%d needs a ruling", matchID),
		Body:  fmt.Sprintf("Captain A says %s won, captain B says %s won.", voteA, voteB),
		Buttons: []gateway.Button{
			{ID: actions.AdminSetWinner{MatchID: matchID, Team: models.TeamA}.Encode(), Label: "Team A won", Style: gateway.StyleSuccess},
			{ID: actions.AdminSetWinner{MatchID: matchID, Team: models.TeamB}.Encode(), Label: "Team B won", Style: gateway.StyleSuccess},
		},
	})
	if err != nil {
		logger.Error("review prompt failed", "match_id", matchID, "error", err)
		return
	}
	if err := s.matchRepo.SaveRefs(matchID, map[string]interface{}{"review_message_id": ref}); err != nil {
		logger.Error("review ref save failed", "match_id", matchID, "error", err)
	}
}
