package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// helpHeight is the number of terminal rows below the arena.
const helpHeight = 1

// Options configures a game model.
type Options struct {
	Context   context.Context // Bounds the game's tickers; nil means Background
	GameID    string
	Seed      int64 // 0 means time-based
	FrameRate int   // Redraws per second; 0 means DefaultFrameRate
	Width     int   // Initial terminal size, replaced by the first resize
	Height    int
	Store     *storage.Store // May be nil
	Logger    *log.Logger    // May be nil
}

// Model is the Bubble Tea model for a live game. The session advances on
// its own tickers; the model steers it, redraws it at the frame rate and
// records the result when a game ends.
type Model struct {
	ctx       context.Context
	gameID    string
	cfg       config.PacmanConfig
	rng       *rand.Rand
	seed      int64 // Seed of the current session
	session   *pacman.Session
	events    *pacman.EventChannel
	cancel    context.CancelFunc // Stops the running ticker pair; nil when stopped
	screen    *core.Screen
	layout    pacman.Layout
	keys      KeyMap
	help      help.Model
	store     *storage.Store
	logger    *log.Logger
	frameRate int

	width    int
	height   int
	hasSize  bool
	tooSmall bool
	paused   bool
	recorded bool // Whether the current game's result has been stored
	err      error

	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given game variant. The first game
// starts as soon as the terminal size is known.
func NewModel(opts Options) (Model, error) {
	if !registry.Exists(opts.GameID) {
		return Model{}, fmt.Errorf("unknown game: %s", opts.GameID)
	}
	cfg, err := pacman.LoadConfig(opts.GameID)
	if err != nil {
		return Model{}, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	m := Model{
		ctx:       ctx,
		gameID:    opts.GameID,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		events:    pacman.NewEventChannel(64),
		screen:    core.NewScreen(opts.Width, opts.Height-helpHeight),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		store:     opts.Store,
		logger:    logger.With("game", opts.GameID),
		frameRate: frameRate,
		width:     opts.Width,
		height:    opts.Height,
	}
	if err := m.newSession(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init starts the redraw loop and the event listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.frameRate), waitForEvent(m.ctx, m.events))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height, m.hasSize = msg.Width, msg.Height, true
		m.help.Width = msg.Width
		m.applySize()
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(m.frameRate)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.ctx, m.events)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.paused || m.session.Snapshot().Over {
			m.Close()
			m.backToMenu = true
		}

	case core.ActionRestart:
		m.abandon()
		m.err = nil
		if err := m.newSession(); err != nil {
			m.err = err
		}

	case core.ActionPause:
		if m.session.Snapshot().Over {
			break
		}
		m.paused = !m.paused
		switch {
		case m.paused:
			m.stopRunner()
		case m.hasSize && !m.tooSmall:
			m.startRunner()
		}

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionStop:
		if !m.paused {
			m.session.SetDirection(directionFor(action))
		}
	}

	return m, nil
}

func directionFor(a core.Action) pacman.Direction {
	switch a {
	case core.ActionUp:
		return pacman.DirUp
	case core.ActionDown:
		return pacman.DirDown
	case core.ActionLeft:
		return pacman.DirLeft
	case core.ActionRight:
		return pacman.DirRight
	default:
		return pacman.DirStill
	}
}

// handleEvent reacts to session events. Only game over needs the platform:
// the HUD reads score and time from snapshots.
func (m *Model) handleEvent(evt pacman.Event) {
	over, ok := evt.(pacman.GameOverEvent)
	if !ok {
		return
	}
	// A late event from a game that was already replaced.
	if !m.session.Snapshot().Over {
		return
	}
	m.logger.Info("game over", "won", over.Won, "reason", over.Reason, "score", over.Score, "max", over.MaxScore)
	m.record(over.Reason.String())
}

// newSession stops the current game and starts a fresh one with the next
// seed. Without a known terminal size the field is placed on the first resize.
func (m *Model) newSession() error {
	m.stopRunner()
	m.seed = m.rng.Int63()
	m.paused = false
	m.recorded = false

	session, err := pacman.NewSession(m.cfg, rand.New(rand.NewSource(m.seed)),
		pacman.WithPublisher(m.events),
		pacman.WithLogger(m.logger),
	)
	if err != nil {
		return err
	}
	m.session = session
	if err := session.Reset(); err != nil {
		return err
	}
	if m.hasSize {
		m.applySize()
	}
	return nil
}

// applySize maps the terminal to an arena and resumes play if it fits.
func (m *Model) applySize() {
	rows := m.height - helpHeight
	m.screen.Resize(m.width, rows)
	bounds, layout := pacman.TerminalLayout(m.width, rows, m.cfg.Arena)
	m.layout = layout

	err := m.session.SetArenaSize(bounds.Width, bounds.Height)
	switch {
	case errors.Is(err, pacman.ErrInvalidConfiguration):
		m.tooSmall = true
		m.stopRunner()
		return
	case err != nil:
		m.err = err
		m.stopRunner()
		return
	}

	m.tooSmall = false
	m.err = nil
	if !m.paused {
		m.startRunner()
	}
}

// startRunner launches the movement and countdown tickers if they are
// not already running.
func (m *Model) startRunner() {
	if m.cancel != nil || m.session == nil {
		return
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	logger := m.logger
	runner := pacman.NewRunner(m.session, m.cfg, logger)
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("runner stopped", "error", err)
		}
	}()
}

func (m *Model) stopRunner() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// record stores the current game's result once.
func (m *Model) record(reason string) {
	if m.recorded || m.store == nil {
		m.recorded = true
		return
	}
	m.recorded = true

	snap := m.session.Snapshot()
	if snap.Score > 0 {
		if _, err := m.store.SaveScore(m.gameID, snap.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:      m.gameID,
		Seed:        m.seed,
		Score:       snap.Score,
		MaxScore:    snap.MaxScore,
		Won:         snap.Won,
		Reason:      reason,
		SecondsLeft: snap.RemainingSeconds,
		Ticks:       int64(snap.Ticks),
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id)
}

// abandon records a game that was left while still in play.
func (m *Model) abandon() {
	snap := m.session.Snapshot()
	if snap.Phase == pacman.PhaseRunning && snap.Ticks > 0 {
		m.record("abandoned")
	}
}

// Close stops the game and records it if it was still in play.
func (m *Model) Close() {
	m.stopRunner()
	m.abandon()
	m.events.Close()
}

// saveScreenshot saves the current frame as plain text under ~/.pacman/screenshots.
func (m *Model) saveScreenshot() error {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".pacman", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.gameID, timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// render draws the current frame into the screen buffer.
func (m *Model) render() {
	m.screen.Clear()
	switch {
	case m.err != nil:
		pacman.RenderTooSmall(m.screen, m.err.Error())
	case m.tooSmall || !m.hasSize:
		pacman.RenderTooSmall(m.screen, "")
	default:
		pacman.RenderFrame(m.screen, m.session.Snapshot(), m.layout, m.paused)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot returns the state of the current session.
func (m Model) Snapshot() pacman.Snapshot {
	return m.session.Snapshot()
}

// Paused reports whether play is paused.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the given variant in the local terminal. It reports whether
// the player left for the menu rather than quitting.
func Run(opts Options) (backToMenu bool, err error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	m, ok := final.(Model)
	if !ok {
		model.Close()
		return false, err
	}
	m.Close()
	return m.BackToMenu(), err
}
