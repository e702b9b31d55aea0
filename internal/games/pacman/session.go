package pacman

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Reason explains why a session ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCleared
	ReasonTimeout
	ReasonCaptured
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCleared:
		return "cleared"
	case ReasonTimeout:
		return "timeout"
	case ReasonCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Session owns one game: the player, the field, the score and the countdown.
// All methods are safe for concurrent use; the movement ticker, the
// countdown ticker and the input source may call them from different
// goroutines.
type Session struct {
	mu sync.Mutex

	cfg    config.PacmanConfig
	rng    Rand
	pub    Publisher
	logger *log.Logger

	bounds   Bounds
	hasArena bool
	placed   bool

	player   Player
	coins    []Entity
	cherries []Entity
	enemies  []Entity

	score     int
	maxScore  int
	remaining int
	ticks     uint64
	phase     Phase
	reason    Reason
}

// Option configures a Session.
type Option func(*Session)

// WithPublisher sets the collaborator notified of score, timer and game
// over events.
func WithPublisher(p Publisher) Option {
	return func(s *Session) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithLogger sets the logger used for placement warnings and lifecycle.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession validates cfg and returns a session that has not started.
// Call SetArenaSize and Reset to begin play.
func NewSession(cfg config.PacmanConfig, rng Rand, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	s := &Session{
		cfg:      cfg,
		rng:      rng,
		pub:      nopPublisher{},
		logger:   log.New(io.Discard),
		maxScore: cfg.MaxScore(),
		phase:    PhaseNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxScore returns the sum of every collectible value.
func (s *Session) MaxScore() int {
	return s.maxScore
}

// SetArenaSize records the arena size in pixels. If the session was reset
// before any arena was known, the field is populated now; later calls never
// move entities that are already placed.
func (s *Session) SetArenaSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: arena %dx%d", ErrInvalidConfiguration, width, height)
	}
	bounds := Bounds{Width: width, Height: height}
	if err := s.checkFits(bounds); err != nil {
		return err
	}

	s.mu.Lock()
	s.bounds = bounds
	s.hasArena = true
	var err error
	if s.phase == PhaseRunning && !s.placed {
		if err = s.placeLocked(); err != nil {
			s.phase = PhaseNotStarted
		}
	}
	s.mu.Unlock()
	return err
}

// checkFits rejects arenas that cannot hold the player start or that have
// no grid position for a kind of entity that must be placed.
func (s *Session) checkFits(b Bounds) error {
	p := s.cfg.Player
	if p.StartX+p.Width >= b.Width || p.StartY+p.Height >= b.Height {
		return fmt.Errorf("%w: player at (%d, %d) does not fit %dx%d arena",
			ErrInvalidConfiguration, p.StartX, p.StartY, b.Width, b.Height)
	}
	kinds := []struct {
		kind  Kind
		count int
		size  Size
	}{
		{KindCoin, s.cfg.Coins.Count, Size{W: s.cfg.Coins.Width, H: s.cfg.Coins.Height}},
		{KindCherry, s.cfg.Cherries.Count, Size{W: s.cfg.Cherries.Width, H: s.cfg.Cherries.Height}},
		{KindEnemy, s.cfg.Enemies.Count, Size{W: s.cfg.Enemies.Width, H: s.cfg.Enemies.Height}},
	}
	for _, k := range kinds {
		if k.count > 0 && gridCapacity(b, k.size, s.cfg.Arena.MinSpacing) < 1 {
			return fmt.Errorf("%w: no room for %s in %dx%d arena",
				ErrInvalidConfiguration, k.kind, b.Width, b.Height)
		}
	}
	return nil
}

// Reset starts a new game: the player returns to the start, the field is
// repopulated, the score is zeroed and the countdown restarts. Without an
// arena the field stays empty and the game waits for SetArenaSize.
func (s *Session) Reset() error {
	s.mu.Lock()
	p := s.cfg.Player
	s.player = Player{
		Pos:       Point{X: p.StartX, Y: p.StartY},
		Size:      Size{W: p.Width, H: p.Height},
		Direction: DirStill,
		Facing:    DirRight,
	}
	s.coins = nil
	s.cherries = nil
	s.enemies = nil
	s.placed = false
	s.score = 0
	s.remaining = s.cfg.Timing.RoundSeconds
	s.ticks = 0
	s.phase = PhaseRunning
	s.reason = ReasonNone

	if s.hasArena {
		if err := s.placeLocked(); err != nil {
			s.phase = PhaseNotStarted
			s.mu.Unlock()
			return err
		}
	}
	s.logger.Debug("session reset", "arena", fmt.Sprintf("%dx%d", s.bounds.Width, s.bounds.Height),
		"coins", len(s.coins), "cherries", len(s.cherries), "enemies", len(s.enemies))
	events := []Event{
		ScoreChangedEvent{Score: 0, MaxScore: s.maxScore},
		TimerEvent{Remaining: s.remaining},
	}
	s.mu.Unlock()

	s.publish(events)
	return nil
}

// placeLocked populates coins, then cherries, then enemies.
func (s *Session) placeLocked() error {
	coins := make([]Entity, 0, s.cfg.Coins.Count)
	cherries := make([]Entity, 0, s.cfg.Cherries.Count)
	enemies := make([]Entity, 0, s.cfg.Enemies.Count)
	s.coins, s.cherries, s.enemies = coins, cherries, enemies

	for i := 0; i < s.cfg.Coins.Count; i++ {
		size := Size{W: s.cfg.Coins.Width, H: s.cfg.Coins.Height}
		pos, err := s.placeRelaxed(KindCoin, size)
		if err != nil {
			return err
		}
		s.coins = append(s.coins, Entity{Kind: KindCoin, Pos: pos, Size: size, Skin: SkinCoin})
	}
	for i := 0; i < s.cfg.Cherries.Count; i++ {
		size := Size{W: s.cfg.Cherries.Width, H: s.cfg.Cherries.Height}
		pos, err := s.placeRelaxed(KindCherry, size)
		if err != nil {
			return err
		}
		s.cherries = append(s.cherries, Entity{Kind: KindCherry, Pos: pos, Size: size, Skin: SkinCherry})
	}
	for i := 0; i < s.cfg.Enemies.Count; i++ {
		size := Size{W: s.cfg.Enemies.Width, H: s.cfg.Enemies.Height}
		pos, err := s.placeRelaxed(KindEnemy, size)
		if err != nil {
			return err
		}
		s.enemies = append(s.enemies, Entity{Kind: KindEnemy, Pos: pos, Size: size, Skin: enemySkin(i)})
	}

	s.placed = true
	return nil
}

// placeRelaxed halves the spacing each time placement is exhausted and
// gives up once the spacing drops below one pixel.
func (s *Session) placeRelaxed(kind Kind, size Size) (Point, error) {
	req := PlacementRequest{
		Coins:       positions(s.coins),
		Enemies:     positions(s.enemies),
		Cherries:    positions(s.cherries),
		Player:      s.player.Pos,
		Size:        size,
		Bounds:      s.bounds,
		MaxAttempts: s.cfg.Arena.PlacementAttempts,
	}

	var lastErr error
	for spacing := s.cfg.Arena.MinSpacing; spacing >= 1; spacing /= 2 {
		req.MinSpacing = spacing
		pos, err := PlaceEntity(s.rng, req)
		if err == nil {
			return pos, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return Point{}, err
		}
		lastErr = err
		s.logger.Warn("placement exhausted, relaxing spacing",
			"kind", kind, "spacing", spacing, "next", spacing/2)
	}
	return Point{}, fmt.Errorf("place %s: %w", kind, lastErr)
}

func positions(es []Entity) []Point {
	out := make([]Point, len(es))
	for i, e := range es {
		out[i] = e.Pos
	}
	return out
}

// SetDirection changes the player's steering intent. Ignored unless running.
func (s *Session) SetDirection(d Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRunning {
		return
	}
	s.player.Direction = d
}

// Tick advances movement by one step and resolves the end of the game.
// Ignored unless running on a populated field.
func (s *Session) Tick() {
	s.mu.Lock()
	if !s.liveLocked() {
		s.mu.Unlock()
		return
	}
	s.ticks++

	var events []Event
	if s.remaining > 0 && s.movePlayer(s.player.Direction, s.cfg.Player.Speed) {
		s.moveEnemies(s.player.Direction.Opposite())
		if s.checkCollisions() {
			events = append(events, ScoreChangedEvent{Score: s.exposedScore(), MaxScore: s.maxScore})
		}
	}
	if evt, ok := s.resolveLocked(); ok {
		events = append(events, evt)
	}
	s.mu.Unlock()

	s.publish(events)
}

// DecrementTimer counts the round down by one second, stopping at zero.
// Ignored unless running on a populated field. Reaching zero ends the game
// on the next Tick.
func (s *Session) DecrementTimer() {
	s.mu.Lock()
	if !s.liveLocked() || s.remaining == 0 {
		s.mu.Unlock()
		return
	}
	s.remaining--
	evt := TimerEvent{Remaining: s.remaining}
	s.mu.Unlock()

	s.pub.Publish(evt)
}

func (s *Session) liveLocked() bool {
	return s.phase == PhaseRunning && s.placed
}

// resolveLocked applies the terminal checks in order: cleared, timeout,
// captured. It reports the game over event when the phase changed.
func (s *Session) resolveLocked() (Event, bool) {
	switch {
	case s.score >= s.maxScore:
		s.phase, s.reason = PhaseWon, ReasonCleared
	case s.remaining == 0:
		s.phase, s.reason = PhaseLost, ReasonTimeout
	case s.player.Consumed:
		s.phase, s.reason = PhaseLost, ReasonCaptured
	default:
		return nil, false
	}

	s.logger.Info("game over", "phase", s.phase, "reason", s.reason,
		"score", s.exposedScore(), "max", s.maxScore, "remaining", s.remaining)
	return GameOverEvent{
		Won:      s.phase == PhaseWon,
		Reason:   s.reason,
		Score:    s.exposedScore(),
		MaxScore: s.maxScore,
	}, true
}

// exposedScore applies the configured scoring mode.
func (s *Session) exposedScore() int {
	if s.cfg.Scoring.Clamp && s.score > s.maxScore {
		return s.maxScore
	}
	return s.score
}

func (s *Session) publish(events []Event) {
	for _, evt := range events {
		s.pub.Publish(evt)
	}
}

// Snapshot is a deep copy of the session state for rendering and tests.
type Snapshot struct {
	Player           Player
	Coins            []Entity
	Cherries         []Entity
	Enemies          []Entity
	Score            int
	MaxScore         int
	RemainingSeconds int
	Won              bool
	Over             bool
	Phase            Phase
	Reason           Reason
	Ticks            uint64
	Bounds           Bounds
}

// Snapshot returns a copy of the current state. Mutating it does not affect
// the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Player:           s.player,
		Coins:            append([]Entity(nil), s.coins...),
		Cherries:         append([]Entity(nil), s.cherries...),
		Enemies:          append([]Entity(nil), s.enemies...),
		Score:            s.exposedScore(),
		MaxScore:         s.maxScore,
		RemainingSeconds: s.remaining,
		Won:              s.phase == PhaseWon,
		Over:             s.phase == PhaseWon || s.phase == PhaseLost,
		Phase:            s.phase,
		Reason:           s.reason,
		Ticks:            s.ticks,
		Bounds:           s.bounds,
	}
}
