package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/scrimhub/scrimbot/internal/gateway"
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/pkg/errors"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

const boardLimit = 20

// BoardsService renders the shared displays: leaderboard, match history,
// and the cancellation board. Message references are held in memory; a lost
// reference just means the next refresh recreates the display.
type BoardsService struct {
	playerRepo *repositories.PlayerRepository
	matchRepo  *repositories.MatchRepository
	cancelRepo *repositories.CancelRepository
	messenger  gateway.Messenger

	mu             sync.Mutex
	leaderboardRef string
	cancelRef      string
}

func NewBoardsService(
	playerRepo *repositories.PlayerRepository,
	matchRepo *repositories.MatchRepository,
	cancelRepo *repositories.CancelRepository,
	messenger gateway.Messenger,
) *BoardsService {
	return &BoardsService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		cancelRepo: cancelRepo,
		messenger:  messenger,
	}
}

// RefreshLeaderboard re-renders the rating board. Display failures are
// logged, not propagated.
func (s *BoardsService) RefreshLeaderboard() {
	rows, err := s.playerRepo.Leaderboard(boardLimit)
	if err != nil {
		logger.Error("leaderboard query failed", "error", err)
		return
	}

	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString("No rated players yet.")
	}
	for i, row := range rows {
		fmt.Fprintf(&b, "%2d. %s — %d (%d games, %.0f%% WR)\n",
			i+1, row.DisplayName, row.Rating, row.Games, row.WinRate()*100)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ref, err := s.messenger.Upsert(gateway.ChannelLeaderboard, s.leaderboardRef, gateway.Payload{
		Title: "Leaderboard",
		Body:  b.String(),
	})
	if err != nil {
		logger.Error("leaderboard upsert failed", "error", err)
		return
	}
	s.leaderboardRef = ref
}

// UpsertMatchHistory writes or rewrites the history entry of one match.
// The message reference persists on the match row so the entry survives
// restarts and is updated in place on reversal.
func (s *BoardsService) UpsertMatchHistory(match *models.Match) {
	players, err := s.matchRepo.Players(match.MatchID)
	if err != nil {
		logger.Error("history players query failed", "match_id", match.MatchID, "error", err)
		return
	}

	var teamA, teamB []string
	for _, p := range players {
		if p.Team == models.TeamA {
			teamA = append(teamA, p.UserID)
		} else {
			teamB = append(teamB, p.UserID)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Map: %s\n", match.PickedMap)
	switch match.Status {
	case models.MatchStatusClosed:
		fmt.Fprintf(&b, "Winner: Team %s\n", match.Winner)
	case models.MatchStatusReversed:
		b.WriteString("Result reversed\n")
	case models.MatchStatusAbandoned:
		b.WriteString("Canceled\n")
	}
	fmt.Fprintf(&b, "Team A: %s\n", strings.Join(teamA, ", "))
	fmt.Fprintf(&b, "Team B: %s\n", strings.Join(teamB, ", "))

	ref, err := s.messenger.Upsert(gateway.ChannelMatchHistory, match.HistoryMessageID, gateway.Payload{
		Title: fmt.Sprintf("Match #%d", match.MatchID),
		Body:  b.String(),
	})
	if err != nil {
		logger.Error("history upsert failed", "match_id", match.MatchID, "error", err)
		return
	}
	if ref != match.HistoryMessageID {
		if err := s.matchRepo.SaveRefs(match.MatchID, map[string]interface{}{"history_message_id": ref}); err != nil {
			logger.Error("history ref save failed", "match_id", match.MatchID, "error", err)
		}
	}
}

// RefreshCancelBoard re-renders the missed-ready-check board.
func (s *BoardsService) RefreshCancelBoard() {
	rows, err := s.cancelRepo.Board(boardLimit)
	if err != nil {
		logger.Error("cancel board query failed", "error", err)
		return
	}

	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString("Nobody has missed a ready check. Keep it up.")
	}
	for i, row := range rows {
		fmt.Fprintf(&b, "%2d. %s — %d\n", i+1, row.UserID, row.Total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ref, err := s.messenger.Upsert(gateway.ChannelCancelBoard, s.cancelRef, gateway.Payload{
		Title: "Missed ready checks",
		Body:  b.String(),
	})
	if err != nil {
		logger.Error("cancel board upsert failed", "error", err)
		return
	}
	s.cancelRef = ref
}

// ExportWorkbook writes the leaderboard and recent match history into an
// xlsx workbook at path.
func (s *BoardsService) ExportWorkbook(path string) error {
	rows, err := s.playerRepo.Leaderboard(1000)
	if err != nil {
		return err
	}
	matches, err := s.matchRepo.RecentClosed(500)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const lbSheet = "Leaderboard"
	f.SetSheetName(f.GetSheetName(0), lbSheet)
	header := []interface{}{"Rank", "Player", "Rating", "Games", "Wins", "Win rate"}
	if err := f.SetSheetRow(lbSheet, "A1", &header); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write export header")
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{i + 1, row.DisplayName, row.Rating, row.Games, row.Wins, row.WinRate()}
		if err := f.SetSheetRow(lbSheet, cell, &values); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write export row")
		}
	}

	const histSheet = "Matches"
	if _, err := f.NewSheet(histSheet); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create history sheet")
	}
	histHeader := []interface{}{"Match", "Map", "Winner", "Closed at"}
	if err := f.SetSheetRow(histSheet, "A1", &histHeader); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write history header")
	}
	for i, m := range matches {
		closedAt := ""
		if m.ClosedAt != nil {
			closedAt = m.ClosedAt.Format("2006-01-02 15:04")
		}
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{m.MatchID, m.PickedMap, m.Winner, closedAt}
		if err := f.SetSheetRow(histSheet, cell, &values); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write history row")
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save export")
	}
	return nil
}
