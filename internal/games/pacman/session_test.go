package pacman

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

// emptyConfig is the default configuration with nothing on the field.
func emptyConfig() config.PacmanConfig {
	cfg := config.DefaultPacmanConfig()
	cfg.Coins.Count = 0
	cfg.Cherries.Count = 0
	cfg.Enemies.Count = 0
	return cfg
}

func newSession(t *testing.T, cfg config.PacmanConfig, w, h int) *Session {
	t.Helper()
	s, err := NewSession(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if err := s.SetArenaSize(w, h); err != nil {
		t.Fatalf("SetArenaSize(%d, %d) error: %v", w, h, err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	return s
}

func TestNewSessionValidation(t *testing.T) {
	bad := config.DefaultPacmanConfig()
	bad.Arena.MinSpacing = 0
	if _, err := NewSession(bad, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewSession(min_spacing=0) error = %v, expected ErrInvalidConfiguration", err)
	}

	if _, err := NewSession(config.DefaultPacmanConfig(), nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewSession(nil rng) error = %v, expected ErrInvalidConfiguration", err)
	}
}

func TestSetArenaSizeRejectsBadArenas(t *testing.T) {
	s, err := NewSession(config.DefaultPacmanConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 800},
		{"negative height", 800, -1},
		{"player start outside", 100, 800},
		{"too short for player", 800, 460},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetArenaSize(tt.w, tt.h); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("SetArenaSize(%d, %d) error = %v, expected ErrInvalidConfiguration", tt.w, tt.h, err)
			}
		})
	}

	wide := config.DefaultPacmanConfig()
	wide.Enemies.Width = 200
	s, err = NewSession(wide, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if err := s.SetArenaSize(150, 800); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetArenaSize(150, 800) with wide enemies error = %v, expected ErrInvalidConfiguration", err)
	}
}

func TestResetPopulatesField(t *testing.T) {
	cfg := config.DefaultPacmanConfig()
	s := newSession(t, cfg, 1600, 880)
	snap := s.Snapshot()

	if snap.Phase != PhaseRunning {
		t.Fatalf("Phase = %v, expected running", snap.Phase)
	}
	if len(snap.Coins) != cfg.Coins.Count || len(snap.Cherries) != cfg.Cherries.Count || len(snap.Enemies) != cfg.Enemies.Count {
		t.Errorf("field = %d coins, %d cherries, %d enemies, expected %d, %d, %d",
			len(snap.Coins), len(snap.Cherries), len(snap.Enemies),
			cfg.Coins.Count, cfg.Cherries.Count, cfg.Enemies.Count)
	}
	if snap.Score != 0 || snap.RemainingSeconds != cfg.Timing.RoundSeconds {
		t.Errorf("Score = %d Remaining = %d, expected 0 and %d", snap.Score, snap.RemainingSeconds, cfg.Timing.RoundSeconds)
	}
	if snap.Player.Pos != (Point{X: 50, Y: 400}) || snap.Player.Direction != DirStill {
		t.Errorf("Player = %+v, expected still at (50, 400)", snap.Player)
	}
	if snap.MaxScore != 1*5+2*10+10*1 {
		t.Errorf("MaxScore = %d, expected 35", snap.MaxScore)
	}

	for i, e := range snap.Enemies {
		if e.Skin != enemySkin(i) {
			t.Errorf("enemy %d skin = %v, expected %v", i, e.Skin, enemySkin(i))
		}
	}
}

func TestResetBeforeArenaWaitsForSize(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 3
	s, err := NewSession(cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	// Nothing happens until the field exists.
	s.Tick()
	s.DecrementTimer()
	if snap := s.Snapshot(); snap.Ticks != 0 || snap.RemainingSeconds != cfg.Timing.RoundSeconds || len(snap.Coins) != 0 {
		t.Fatalf("before arena: %+v, expected an idle empty field", snap)
	}

	if err := s.SetArenaSize(1600, 880); err != nil {
		t.Fatalf("SetArenaSize() error: %v", err)
	}
	first := s.Snapshot().Coins
	if len(first) != 3 {
		t.Fatalf("coins after first SetArenaSize = %d, expected 3", len(first))
	}

	// Resizing again keeps the existing field.
	if err := s.SetArenaSize(1800, 900); err != nil {
		t.Fatalf("SetArenaSize() error: %v", err)
	}
	second := s.Snapshot().Coins
	for i := range first {
		if first[i].Pos != second[i].Pos {
			t.Errorf("coin %d moved from %+v to %+v on resize", i, first[i].Pos, second[i].Pos)
		}
	}
}

func TestEmptySessionWinsOnFirstTick(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 1000)

	s.Tick()

	snap := s.Snapshot()
	if !snap.Won || !snap.Over {
		t.Errorf("won = %v over = %v, expected both true", snap.Won, snap.Over)
	}
	if snap.Reason != ReasonCleared {
		t.Errorf("Reason = %v, expected cleared", snap.Reason)
	}
}

func TestTimeoutEndsGame(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 1
	cfg.Timing.RoundSeconds = 2
	s := newSession(t, cfg, 1600, 880)

	s.DecrementTimer()
	s.DecrementTimer()
	s.DecrementTimer() // already at zero

	snap := s.Snapshot()
	if snap.RemainingSeconds != 0 {
		t.Fatalf("RemainingSeconds = %d, expected 0", snap.RemainingSeconds)
	}
	if snap.Over {
		t.Fatal("session over before the next tick")
	}

	s.Tick()

	snap = s.Snapshot()
	if !snap.Over || snap.Won {
		t.Errorf("over = %v won = %v, expected over and lost", snap.Over, snap.Won)
	}
	if snap.Reason != ReasonTimeout {
		t.Errorf("Reason = %v, expected timeout", snap.Reason)
	}
	if snap.Player.Consumed {
		t.Error("player consumed, expected alive")
	}
}

func TestNoMovementAfterTimeout(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 1
	cfg.Timing.RoundSeconds = 1
	s := newSession(t, cfg, 1600, 880)

	s.SetDirection(DirRight)
	s.DecrementTimer()
	s.Tick()

	if x := s.Snapshot().Player.Pos.X; x != 50 {
		t.Errorf("player X = %d, expected 50 with no time left", x)
	}
}

func TestOperationsAreNoOpsWhenNotRunning(t *testing.T) {
	s, err := NewSession(emptyConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if err := s.SetArenaSize(1000, 1000); err != nil {
		t.Fatalf("SetArenaSize() error: %v", err)
	}

	s.SetDirection(DirRight)
	s.Tick()
	s.DecrementTimer()
	if snap := s.Snapshot(); snap.Phase != PhaseNotStarted || snap.Ticks != 0 {
		t.Errorf("not started: phase = %v ticks = %d, expected untouched", snap.Phase, snap.Ticks)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	s.Tick() // wins: empty field
	over := s.Snapshot()

	s.SetDirection(DirDown)
	s.Tick()
	s.DecrementTimer()
	after := s.Snapshot()
	if after.Ticks != over.Ticks || after.RemainingSeconds != over.RemainingSeconds || after.Player != over.Player {
		t.Errorf("terminal session changed: %+v -> %+v", over, after)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSession(t, config.DefaultPacmanConfig(), 1600, 880)

	snap := s.Snapshot()
	snap.Coins[0].Consumed = true
	snap.Enemies[0].Pos = Point{}

	again := s.Snapshot()
	if again.Coins[0].Consumed {
		t.Error("mutating a snapshot consumed a session coin")
	}
	if again.Enemies[0].Pos == (Point{}) {
		t.Error("mutating a snapshot moved a session enemy")
	}
}

func TestScoreMonotonicAndBounded(t *testing.T) {
	for _, clamp := range []bool{true, false} {
		cfg := config.DefaultPacmanConfig()
		cfg.Scoring.Clamp = clamp
		cfg.Timing.RoundSeconds = 60
		s := newSession(t, cfg, 1600, 880)
		rng := rand.New(rand.NewSource(11))
		dirs := []Direction{DirUp, DirRight, DirDown, DirLeft}

		last := 0
		for i := 0; i < 3000 && !s.Snapshot().Over; i++ {
			if i%25 == 0 {
				s.SetDirection(dirs[rng.Intn(len(dirs))])
			}
			s.Tick()
			if i%50 == 49 {
				s.DecrementTimer()
			}

			score := s.Snapshot().Score
			if score < last {
				t.Fatalf("clamp=%v tick %d: score dropped %d -> %d", clamp, i, last, score)
			}
			if clamp && score > s.MaxScore() {
				t.Fatalf("clamp=%v tick %d: score %d above max %d", clamp, i, score, s.MaxScore())
			}
			last = score
		}
	}
}

func TestPlacementRelaxesSpacing(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 6
	cfg.Arena.PlacementAttempts = 20000
	s, err := NewSession(cfg, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	// Far too crowded for six coins at full spacing.
	if err := s.SetArenaSize(500, 500); err != nil {
		t.Fatalf("SetArenaSize() error: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v, expected spacing to relax", err)
	}
	if n := len(s.Snapshot().Coins); n != 6 {
		t.Errorf("coins = %d, expected 6", n)
	}
}

func TestResetRestartsFinishedGame(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 1
	s := newSession(t, cfg, 1600, 880)
	s.player.Consumed = true
	s.Tick()
	if s.Snapshot().Phase != PhaseLost {
		t.Fatalf("Phase = %v, expected lost", s.Snapshot().Phase)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseRunning || snap.Reason != ReasonNone || snap.Player.Consumed || snap.Ticks != 0 {
		t.Errorf("after Reset: %+v, expected a fresh running session", snap)
	}
}
