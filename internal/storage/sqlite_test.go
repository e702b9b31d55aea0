package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{20, 5, 35} {
		if _, err := store.SaveScore("pacman", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pacman_classic", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pacman", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 35 || scores[1].Score != 20 || scores[2].Score != 5 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	classic, err := store.TopScores("pacman_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("pacman", (i+1)*5)
	}

	scores, err := store.TopScores("pacman", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 25 || scores[1].Score != 20 || scores[2].Score != 15 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores("pacman")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("pacman")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("pacman", 10)
	store.SaveScore("pacman", 30)
	store.SaveScore("pacman", 20)

	high, err = store.HighScore("pacman")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pacman", 10)
	store.SaveScore("pacman_classic", 30)
	if _, err := store.SaveRun(RunRecord{GameID: "pacman", Score: 10, MaxScore: 35, Reason: "timeout"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearScores("pacman"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("pacman", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("pacman", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("pacman_classic", 10); len(scores) != 1 {
		t.Error("Classic scores should not be affected by clearing pacman")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID:      "pacman",
		Seed:        42,
		Score:       35,
		MaxScore:    35,
		Won:         true,
		Reason:      "cleared",
		SecondsLeft: 12,
		Ticks:       900,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if run.Seed != 42 || run.Score != 35 || !run.Won || run.Reason != "cleared" || run.SecondsLeft != 12 || run.Ticks != 900 {
		t.Errorf("RunByID() = %+v, fields do not match", run)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID(missing) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID(missing) = %+v, expected nil", missing)
	}
}

func TestStoreSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunRecord{ID: "not-a-uuid", GameID: "pacman", Reason: "timeout"}); err == nil {
		t.Error("SaveRun() with bad id succeeded, expected error")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 4; i++ {
		id, err := store.SaveRun(RunRecord{GameID: "pacman", Score: i, MaxScore: 35, Reason: "timeout"})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}
	store.SaveRun(RunRecord{GameID: "pacman_classic", Score: 1, MaxScore: 35, Reason: "captured"})

	runs, err := store.RecentRuns("pacman", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if runs[0].ID != ids[3] || runs[2].ID != ids[1] {
		t.Errorf("RecentRuns() order = %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pacman", 10)
	store.SaveScore("pacman", 35)
	store.SaveRun(RunRecord{GameID: "pacman", Score: 35, MaxScore: 35, Won: true, Reason: "cleared"})
	store.SaveRun(RunRecord{GameID: "pacman", Score: 10, MaxScore: 35, Reason: "timeout"})

	stats, err := store.GetGameStats("pacman")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 35 || stats.TotalScore != 45 || stats.Wins != 1 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed is zero, expected a timestamp")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if got := all["pacman"]; got == nil || got.Wins != 1 || got.GamesCount != 2 {
		t.Errorf("GetAllGamesStats()[pacman] = %+v", got)
	}
}
