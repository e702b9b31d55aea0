package pacman

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// Variant IDs.
const (
	IDClamped = "pacman"
	IDClassic = "pacman_classic"
)

var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the config file used by games created afterwards.
// Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to sessions created by Game.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig loads the configuration for a variant.
func LoadConfig(id string) (config.PacmanConfig, error) {
	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		return config.PacmanConfig{}, err
	}
	config.ApplyScoringMode(&cfg, id == IDClassic)
	return cfg, nil
}

func init() {
	registry.Register(IDClamped, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// Game runs a session on the platform's fixed-step clock: one movement tick
// per Step and one countdown second every TickRate steps.
type Game struct {
	classic bool
	rng     *rand.Rand
	cfg     config.PacmanConfig
	session *Session
	layout  Layout

	screenW  int
	screenH  int
	tickRate int
	steps    int // Steps since the last countdown second

	paused   bool
	tooSmall bool
	setupErr error
}

// New creates the Pac-Man game with the score capped at the maximum.
func New() *Game {
	return &Game{}
}

// NewClassic creates the variant whose score may exceed the maximum.
func NewClassic() *Game {
	return &Game{classic: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.classic {
		return IDClassic
	}
	return IDClamped
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.classic {
		return "Pac-Man (Classic scoring)"
	}
	return "Pac-Man"
}

// Reset starts a new game sized to the terminal.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.steps = 0
	g.paused = false
	g.tooSmall = false
	g.setupErr = nil
	g.session = nil

	pcfg, err := LoadConfig(g.ID())
	if err != nil {
		g.setupErr = err
		return
	}
	g.cfg = pcfg

	session, err := NewSession(pcfg, g.rng, WithLogger(logger))
	if err != nil {
		g.setupErr = err
		return
	}

	bounds, layout := TerminalLayout(g.screenW, g.screenH, pcfg.Arena)
	if err := session.SetArenaSize(bounds.Width, bounds.Height); err != nil {
		g.tooSmall = true
		g.setupErr = err
		return
	}
	if err := session.Reset(); err != nil {
		g.setupErr = err
		return
	}
	g.session = session
	g.layout = layout
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if d, ok := directionFor(in); ok {
		g.session.SetDirection(d)
	}
	g.session.Tick()

	g.steps++
	if g.steps >= g.tickRate {
		g.steps = 0
		g.session.DecrementTimer()
	}

	return core.StepResult{State: g.State()}
}

// directionFor maps steering actions to a direction. When several are
// held the first of up, down, left, right, stop wins.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	case in.Has(core.ActionStop):
		return DirStill, true
	default:
		return DirStill, false
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		reason := ""
		if g.setupErr != nil && !g.tooSmall {
			reason = g.setupErr.Error()
		}
		RenderTooSmall(dst, reason)
		return
	}
	RenderFrame(dst, g.session.Snapshot(), g.layout, g.paused)
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Over,
		Won:      snap.Won,
		Paused:   g.paused,
	}
}

// Snapshot returns the session state, or a zero snapshot if the game could
// not start.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

// Err reports why the last Reset could not start a session.
func (g *Game) Err() error {
	return g.setupErr
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Steer | Space: Stop | P: Pause | R: New game | Q: Quit"
}
