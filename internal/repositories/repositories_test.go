package repositories

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/scrimhub/scrimbot/internal/database"
	"github.com/scrimhub/scrimbot/internal/models"
	"github.com/scrimhub/scrimbot/pkg/errors"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestQueueRepository_AddRemove(t *testing.T) {
	db := testDB(t)
	repo := NewQueueRepository(db)

	if err := repo.Add("u1"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := repo.Add("u1"); !errors.Is(err, errors.ErrCodeAlreadyQueued) {
		t.Errorf("second Add() code = %v, want ALREADY_QUEUED", err)
	}

	if err := repo.Remove("u1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := repo.Remove("u1"); !errors.Is(err, errors.ErrCodeNotQueued) {
		t.Errorf("second Remove() code = %v, want NOT_QUEUED", err)
	}
}

func TestQueueRepository_OrderAndMoveToFront(t *testing.T) {
	db := testDB(t)
	repo := NewQueueRepository(db)

	for _, u := range []string{"u1", "u2", "u3", "u4"} {
		if err := repo.Add(u); err != nil {
			t.Fatalf("Add(%s) error = %v", u, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	if err := repo.MoveToFront([]string{"u3", "u4"}); err != nil {
		t.Fatalf("MoveToFront() error = %v", err)
	}

	entries, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.UserID
	}
	want := []string{"u3", "u4", "u1", "u2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue order = %v, want %v", got, want)
		}
	}
}

func TestReadyCheckRepository_PendingExclusivity(t *testing.T) {
	db := testDB(t)
	repo := NewReadyCheckRepository(db)
	users := []string{"u1", "u2"}

	first, err := repo.CreatePending("rc-1", users, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}
	if first == nil {
		t.Fatal("CreatePending() returned nil check")
	}

	second, err := repo.CreatePending("rc-2", users, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("second CreatePending() error = %v", err)
	}
	if second != nil {
		t.Error("second CreatePending() should collapse to a no-op while one is pending")
	}

	// After the first check leaves pending, a new one may start.
	if _, err := repo.TransitionStatus("rc-1", models.ReadyCheckPending, models.ReadyCheckExpired); err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	third, err := repo.CreatePending("rc-3", users, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("third CreatePending() error = %v", err)
	}
	if third == nil {
		t.Error("CreatePending() should succeed once no check is pending")
	}
}

func TestReadyCheckRepository_ConfirmSemantics(t *testing.T) {
	db := testDB(t)
	repo := NewReadyCheckRepository(db)

	if _, err := repo.CreatePending("rc-1", []string{"u1", "u2"}, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}

	if err := repo.Confirm("rc-1", "stranger"); !errors.Is(err, errors.ErrCodeNotInCheck) {
		t.Errorf("Confirm(stranger) code = %v, want NOT_IN_THIS_CHECK", err)
	}

	if err := repo.Confirm("rc-1", "u1"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if err := repo.Confirm("rc-1", "u1"); !errors.Is(err, errors.ErrCodeAlreadyConfirmed) {
		t.Errorf("double Confirm() code = %v, want ALREADY_CONFIRMED", err)
	}

	done, err := repo.AllConfirmed("rc-1")
	if err != nil {
		t.Fatalf("AllConfirmed() error = %v", err)
	}
	if done {
		t.Error("AllConfirmed() = true with one member outstanding")
	}

	if err := repo.Confirm("rc-1", "u2"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	done, err = repo.AllConfirmed("rc-1")
	if err != nil {
		t.Fatalf("AllConfirmed() error = %v", err)
	}
	if !done {
		t.Error("AllConfirmed() = false after everyone confirmed")
	}

	// Confirms against a non-pending check are rejected.
	if _, err := repo.TransitionStatus("rc-1", models.ReadyCheckPending, models.ReadyCheckComplete); err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	if err := repo.Confirm("rc-1", "u2"); !errors.Is(err, errors.ErrCodeCheckNotPending) {
		t.Errorf("late Confirm() code = %v, want CHECK_NOT_PENDING", err)
	}
}

func TestReadyCheckRepository_TransitionStatusCAS(t *testing.T) {
	db := testDB(t)
	repo := NewReadyCheckRepository(db)

	if _, err := repo.CreatePending("rc-1", []string{"u1"}, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}

	won, err := repo.TransitionStatus("rc-1", models.ReadyCheckPending, models.ReadyCheckComplete)
	if err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	if !won {
		t.Fatal("first transition should win")
	}

	// A racing expiry timer loses quietly.
	won, err = repo.TransitionStatus("rc-1", models.ReadyCheckPending, models.ReadyCheckExpired)
	if err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	if won {
		t.Error("second transition should lose")
	}

	check, err := repo.GetByRcID("rc-1")
	if err != nil {
		t.Fatalf("GetByRcID() error = %v", err)
	}
	if check.Status != models.ReadyCheckComplete {
		t.Errorf("status = %s, want complete", check.Status)
	}
}

func TestMatchRepository_ActiveMatchFor(t *testing.T) {
	db := testDB(t)
	repo := NewMatchRepository(db)

	match := &models.Match{MatchID: 1, Status: models.MatchStatusVoting}
	players := []models.MatchPlayer{
		{MatchID: 1, UserID: "u1", Team: models.TeamA},
		{MatchID: 1, UserID: "u2", Team: models.TeamB},
	}
	if err := repo.Create(match, players); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	active, err := repo.ActiveMatchFor("u1")
	if err != nil {
		t.Fatalf("ActiveMatchFor() error = %v", err)
	}
	if active.MatchID != 1 {
		t.Errorf("MatchID = %d, want 1", active.MatchID)
	}

	if _, err := repo.ActiveMatchFor("outsider"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ActiveMatchFor(outsider) code = %v, want NOT_FOUND", err)
	}

	// Terminal matches release their participants.
	won, err := repo.TransitionStatus(1, []string{models.MatchStatusVoting}, models.MatchStatusAbandoned, nil)
	if err != nil || !won {
		t.Fatalf("TransitionStatus() = %v, %v", won, err)
	}
	if _, err := repo.ActiveMatchFor("u1"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ActiveMatchFor() after abandon code = %v, want NOT_FOUND", err)
	}
}

func TestMatchRepository_TransitionStatusCAS(t *testing.T) {
	db := testDB(t)
	repo := NewMatchRepository(db)

	match := &models.Match{MatchID: 5, Status: models.MatchStatusVoting}
	if err := repo.Create(match, []models.MatchPlayer{{MatchID: 5, UserID: "u1", Team: "A"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	from := []string{models.MatchStatusVoting, models.MatchStatusReview}
	won, err := repo.TransitionStatus(5, from, models.MatchStatusClosed, map[string]interface{}{"winner": "A"})
	if err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	if !won {
		t.Fatal("first close should win")
	}

	won, err = repo.TransitionStatus(5, from, models.MatchStatusClosed, map[string]interface{}{"winner": "B"})
	if err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}
	if won {
		t.Error("second close should lose")
	}

	got, err := repo.GetByMatchID(5)
	if err != nil {
		t.Fatalf("GetByMatchID() error = %v", err)
	}
	if got.Winner != "A" {
		t.Errorf("winner = %s, want A", got.Winner)
	}
}

func TestMatchRepository_SetCaptainVoteOnce(t *testing.T) {
	db := testDB(t)
	repo := NewMatchRepository(db)

	match := &models.Match{MatchID: 2, Status: models.MatchStatusVoting}
	if err := repo.Create(match, []models.MatchPlayer{{MatchID: 2, UserID: "u1", Team: "A"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	set, err := repo.SetCaptainVote(2, models.TeamA, "A")
	if err != nil {
		t.Fatalf("SetCaptainVote() error = %v", err)
	}
	if !set {
		t.Fatal("first vote should register")
	}

	set, err = repo.SetCaptainVote(2, models.TeamA, "B")
	if err != nil {
		t.Fatalf("SetCaptainVote() error = %v", err)
	}
	if set {
		t.Error("second vote by the same side should be rejected")
	}
}

func TestMatchRepository_ApplyAndRevertRatings(t *testing.T) {
	db := testDB(t)
	matchRepo := NewMatchRepository(db)
	playerRepo := NewPlayerRepository(db)

	if _, err := playerRepo.Upsert("u1", "One", 1000); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if _, err := playerRepo.Upsert("u2", "Two", 1000); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	histories := []models.RatingHistory{
		{UserID: "u1", MatchID: 9, OldRating: 1000, NewRating: 1012, Delta: 12},
		{UserID: "u2", MatchID: 9, OldRating: 1000, NewRating: 988, Delta: -12},
	}
	if err := matchRepo.ApplyRatings(histories); err != nil {
		t.Fatalf("ApplyRatings() error = %v", err)
	}

	p1, _ := playerRepo.GetByUserID("u1")
	p2, _ := playerRepo.GetByUserID("u2")
	if p1.Rating != 1012 || p1.GamesPlayed != 1 {
		t.Errorf("u1 = %d rating %d games, want 1012/1", p1.Rating, p1.GamesPlayed)
	}
	if p2.Rating != 988 {
		t.Errorf("u2 rating = %d, want 988", p2.Rating)
	}

	if err := matchRepo.RevertRatings(9); err != nil {
		t.Fatalf("RevertRatings() error = %v", err)
	}

	p1, _ = playerRepo.GetByUserID("u1")
	p2, _ = playerRepo.GetByUserID("u2")
	if p1.Rating != 1000 || p1.GamesPlayed != 0 {
		t.Errorf("u1 after revert = %d rating %d games, want 1000/0", p1.Rating, p1.GamesPlayed)
	}
	if p2.Rating != 1000 {
		t.Errorf("u2 after revert rating = %d, want 1000", p2.Rating)
	}

	// A second revert finds no active rows and changes nothing.
	if err := matchRepo.RevertRatings(9); err != nil {
		t.Fatalf("second RevertRatings() error = %v", err)
	}
	p1, _ = playerRepo.GetByUserID("u1")
	if p1.Rating != 1000 {
		t.Errorf("u1 after double revert = %d, want 1000", p1.Rating)
	}
}

func TestVetoRepository_BanCAS(t *testing.T) {
	db := testDB(t)
	repo := NewVetoRepository(db)

	pool := []string{"Ascent", "Bind", "Haven"}
	if _, err := repo.CreateState(1, "u1", "u2", pool, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("CreateState() error = %v", err)
	}

	// The turn is folded into the update: team B cannot ban while A holds it.
	banned, err := repo.Ban(1, "Bind", models.TeamB)
	if err != nil {
		t.Fatalf("Ban() error = %v", err)
	}
	if banned {
		t.Error("off-turn ban should be rejected")
	}

	banned, err = repo.Ban(1, "Bind", models.TeamA)
	if err != nil {
		t.Fatalf("Ban() error = %v", err)
	}
	if !banned {
		t.Fatal("first ban should land")
	}

	banned, err = repo.Ban(1, "Bind", models.TeamA)
	if err != nil {
		t.Fatalf("Ban() error = %v", err)
	}
	if banned {
		t.Error("repeat ban should be rejected")
	}

	remaining, err := repo.Remaining(1)
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("len(Remaining()) = %d, want 2", len(remaining))
	}
	if remaining[0].Name != "Ascent" || remaining[1].Name != "Haven" {
		t.Errorf("Remaining() = %s, %s; want Ascent, Haven", remaining[0].Name, remaining[1].Name)
	}
}

func TestVetoRepository_PassTurnCAS(t *testing.T) {
	db := testDB(t)
	repo := NewVetoRepository(db)

	if _, err := repo.CreateState(1, "u1", "u2", []string{"A1", "A2"}, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("CreateState() error = %v", err)
	}

	passed, err := repo.PassTurn(1, models.TeamA, models.TeamB, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("PassTurn() error = %v", err)
	}
	if !passed {
		t.Fatal("pass from the current team should land")
	}

	// A stale timer still holding team A must not advance the turn again.
	passed, err = repo.PassTurn(1, models.TeamA, models.TeamB, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("PassTurn() error = %v", err)
	}
	if passed {
		t.Error("stale pass should be rejected")
	}
}

func TestCounterRepository_Next(t *testing.T) {
	db := testDB(t)
	repo := NewCounterRepository(db)

	for want := 1; want <= 3; want++ {
		got, err := repo.Next(models.CounterMatchID)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}

	// Independent sequences do not interfere.
	got, err := repo.Next("other")
	if err != nil {
		t.Fatalf("Next(other) error = %v", err)
	}
	if got != 1 {
		t.Errorf("Next(other) = %d, want 1", got)
	}
}

func TestCancelRepository_BoardAndAdjust(t *testing.T) {
	db := testDB(t)
	repo := NewCancelRepository(db)

	for i := 0; i < 3; i++ {
		if err := repo.Record("u1", "rc-1", models.CancelReasonReadyExpired, 1); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := repo.Record("u2", "rc-2", models.CancelReasonReadyExpired, 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	board, err := repo.Board(10)
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if len(board) != 2 || board[0].UserID != "u1" || board[0].Total != 3 {
		t.Fatalf("Board() = %+v, want u1 first with 3", board)
	}

	if err := repo.Adjust("u1", -2); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	total, err := repo.TotalFor("u1")
	if err != nil {
		t.Fatalf("TotalFor() error = %v", err)
	}
	if total != 1 {
		t.Errorf("TotalFor() = %d, want 1", total)
	}

	if err := repo.SetTotal("u2", 5); err != nil {
		t.Fatalf("SetTotal() error = %v", err)
	}
	total, err = repo.TotalFor("u2")
	if err != nil {
		t.Fatalf("TotalFor() error = %v", err)
	}
	if total != 5 {
		t.Errorf("TotalFor() after SetTotal = %d, want 5", total)
	}

	// Totals at zero drop off the board.
	if err := repo.SetTotal("u2", 0); err != nil {
		t.Fatalf("SetTotal() error = %v", err)
	}
	board, err = repo.Board(10)
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if len(board) != 1 {
		t.Errorf("len(Board()) = %d, want 1", len(board))
	}
}

func TestSettingsRepository_DefaultsAndBounds(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepository(db, 60, 90, []string{"Ascent", "Bind", "Haven"})

	queue, err := repo.Queue()
	if err != nil {
		t.Fatalf("Queue() error = %v", err)
	}
	if !queue.ReadyEnabled || queue.ReadySeconds != 60 {
		t.Errorf("queue defaults = %v/%d, want true/60", queue.ReadyEnabled, queue.ReadySeconds)
	}

	veto, err := repo.Veto()
	if err != nil {
		t.Fatalf("Veto() error = %v", err)
	}
	if veto.CaptainMode != models.CaptainModeRandom || veto.TurnSeconds != 90 {
		t.Errorf("veto defaults = %s/%d, want random/90", veto.CaptainMode, veto.TurnSeconds)
	}
	if len(veto.MapList()) != 3 {
		t.Errorf("default pool size = %d, want 3", len(veto.MapList()))
	}

	bad := 5
	if _, err := repo.UpdateQueue(nil, &bad); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("UpdateQueue(5) code = %v, want VALIDATION_ERROR", err)
	}

	good := 120
	updated, err := repo.UpdateQueue(nil, &good)
	if err != nil {
		t.Fatalf("UpdateQueue() error = %v", err)
	}
	if updated.ReadySeconds != 120 {
		t.Errorf("ReadySeconds = %d, want 120", updated.ReadySeconds)
	}

	mode := "coinflip"
	if _, err := repo.UpdateVeto(&mode, nil, nil); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("UpdateVeto(coinflip) code = %v, want VALIDATION_ERROR", err)
	}
	if _, err := repo.UpdateVeto(nil, []string{"OnlyOne"}, nil); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("UpdateVeto(one map) code = %v, want VALIDATION_ERROR", err)
	}
}

func TestPlayerRepository_UpsertBaseline(t *testing.T) {
	db := testDB(t)
	repo := NewPlayerRepository(db)

	p, err := repo.Upsert("u1", "One", 1000)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if p.Rating != 1000 {
		t.Errorf("rating = %d, want baseline 1000", p.Rating)
	}

	// Re-upsert keeps the rating and refreshes the name.
	if err := db.Model(&models.Player{}).Where("user_id = ?", "u1").Update("rating", 1200).Error; err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	p, err = repo.Upsert("u1", "NewName", 1000)
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if p.Rating != 1200 {
		t.Errorf("rating after re-upsert = %d, want 1200", p.Rating)
	}

	p, err = repo.GetByUserID("u1")
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if p.DisplayName != "NewName" {
		t.Errorf("display name = %s, want NewName", p.DisplayName)
	}
}

func TestPlayerRepository_Leaderboard(t *testing.T) {
	db := testDB(t)
	playerRepo := NewPlayerRepository(db)
	matchRepo := NewMatchRepository(db)

	seed := []struct {
		userID string
		rating int
		games  int
	}{
		{"u1", 1100, 2},
		{"u2", 1100, 2},
		{"u3", 900, 1},
		{"fresh", 1000, 0},
	}
	for _, s := range seed {
		if _, err := playerRepo.Upsert(s.userID, s.userID, s.rating); err != nil {
			t.Fatalf("Upsert(%s) error = %v", s.userID, err)
		}
		if err := db.Model(&models.Player{}).Where("user_id = ?", s.userID).
			Updates(map[string]interface{}{"rating": s.rating, "games_played": s.games}).Error; err != nil {
			t.Fatalf("seed %s: %v", s.userID, err)
		}
	}

	// u1 won both closed matches, u2 won one; u2's other loss was in match 2.
	closed := time.Now()
	for matchID, winner := range map[int]string{1: "A", 2: "A"} {
		m := &models.Match{MatchID: matchID, Status: models.MatchStatusClosed, Winner: winner, ClosedAt: &closed}
		players := []models.MatchPlayer{
			{MatchID: matchID, UserID: "u1", Team: "A"},
			{MatchID: matchID, UserID: "u2", Team: map[int]string{1: "A", 2: "B"}[matchID]},
			{MatchID: matchID, UserID: "u3", Team: "B"},
		}
		if matchID == 2 {
			players = players[:2]
		}
		if err := matchRepo.Create(m, players); err != nil {
			t.Fatalf("Create(%d) error = %v", matchID, err)
		}
	}

	rows, err := playerRepo.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}

	// fresh has no games and is excluded; u1 outranks u2 on win-rate at
	// equal rating.
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[0].UserID != "u1" || rows[1].UserID != "u2" || rows[2].UserID != "u3" {
		t.Errorf("order = %s, %s, %s; want u1, u2, u3", rows[0].UserID, rows[1].UserID, rows[2].UserID)
	}
	if rows[0].Wins != 2 {
		t.Errorf("u1 wins = %d, want 2", rows[0].Wins)
	}
}
