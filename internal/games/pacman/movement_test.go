package pacman

import (
	"math/rand"
	"testing"
)

func TestCanMove(t *testing.T) {
	b := Bounds{Width: 1000, Height: 1000}
	size := Size{W: 60, H: 60}

	tests := []struct {
		name     string
		pos      Point
		dir      Direction
		speed    int
		expected bool
	}{
		{"right inside", Point{50, 400}, DirRight, 8, true},
		{"right touching edge", Point{932, 400}, DirRight, 8, false},
		{"right one short of edge", Point{931, 400}, DirRight, 8, true},
		{"left to zero", Point{8, 400}, DirLeft, 8, false},
		{"left to one", Point{9, 400}, DirLeft, 8, true},
		{"down touching edge", Point{50, 932}, DirDown, 8, false},
		{"down inside", Point{50, 931}, DirDown, 8, true},
		{"up to zero", Point{50, 8}, DirUp, 8, false},
		{"up inside", Point{50, 9}, DirUp, 8, true},
		{"still", Point{50, 400}, DirStill, 8, false},
		{"zero speed", Point{50, 400}, DirRight, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canMove(tt.pos, size, b, tt.dir, tt.speed)
			if got != tt.expected {
				t.Errorf("canMove(%v, %v, %d) = %v, expected %v", tt.pos, tt.dir, tt.speed, got, tt.expected)
			}
		})
	}
}

func TestMovePlayerUpdatesFacing(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 1000)

	if !s.movePlayer(DirLeft, 8) {
		t.Fatal("movePlayer(left) rejected, expected accepted")
	}
	if s.player.Pos != (Point{X: 42, Y: 400}) {
		t.Errorf("Pos = %+v, expected (42, 400)", s.player.Pos)
	}
	if s.player.Facing != DirLeft {
		t.Errorf("Facing = %v, expected left", s.player.Facing)
	}

	// A rejected move leaves position and facing alone.
	s.player.Pos = Point{X: 50, Y: 5}
	if s.movePlayer(DirUp, 8) {
		t.Fatal("movePlayer(up) accepted at top edge, expected rejected")
	}
	if s.player.Pos != (Point{X: 50, Y: 5}) || s.player.Facing != DirLeft {
		t.Errorf("after rejected move Pos = %+v Facing = %v, expected unchanged", s.player.Pos, s.player.Facing)
	}
}

func TestRejectedMoveIsIdempotent(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 1000)
	s.player.Pos = Point{X: 935, Y: 400}

	for i := 0; i < 5; i++ {
		if s.movePlayer(DirRight, 8) {
			t.Fatalf("movePlayer(right) #%d accepted at edge", i)
		}
		if s.player.Pos.X != 935 {
			t.Fatalf("X = %d after #%d, expected 935", s.player.Pos.X, i)
		}
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 700)
	rng := rand.New(rand.NewSource(3))
	dirs := []Direction{DirUp, DirRight, DirDown, DirLeft, DirStill}

	for i := 0; i < 10000; i++ {
		before := s.player.Pos
		moved := s.movePlayer(dirs[rng.Intn(len(dirs))], 1+rng.Intn(40))
		p := s.player.Pos
		if p.X < 0 || p.X >= 1000-s.player.Size.W || p.Y < 0 || p.Y >= 700-s.player.Size.H {
			t.Fatalf("step %d: player at %+v left the arena", i, p)
		}
		if !moved && p != before {
			t.Fatalf("step %d: rejected move changed position %+v -> %+v", i, before, p)
		}
	}
}

func TestEnemiesMirrorPlayer(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 1000)
	s.maxScore = 100 // keep the session running
	s.enemies = []Entity{
		{Kind: KindEnemy, Pos: Point{X: 500, Y: 500}, Size: Size{W: 60, H: 60}},
		{Kind: KindEnemy, Pos: Point{X: 500, Y: 200}, Size: Size{W: 60, H: 60}, Vulnerable: true},
		{Kind: KindEnemy, Pos: Point{X: 500, Y: 800}, Size: Size{W: 60, H: 60}, Vulnerable: true, Consumed: true},
		{Kind: KindEnemy, Pos: Point{X: 5, Y: 650}, Size: Size{W: 60, H: 60}},
	}

	s.SetDirection(DirRight)
	s.Tick()

	expected := []Point{
		{X: 492, Y: 500}, // normal speed
		{X: 484, Y: 200}, // vulnerable, double speed
		{X: 500, Y: 800}, // consumed, stays
		{X: 5, Y: 650},   // would leave the arena
	}
	for i, e := range s.enemies {
		if e.Pos != expected[i] {
			t.Errorf("enemy %d at %+v, expected %+v", i, e.Pos, expected[i])
		}
	}
	if s.player.Pos.X != 58 {
		t.Errorf("player X = %d, expected 58", s.player.Pos.X)
	}
}

func TestEnemiesStayWhenPlayerBlocked(t *testing.T) {
	s := newSession(t, emptyConfig(), 1000, 1000)
	s.maxScore = 100
	s.player.Pos = Point{X: 4, Y: 400}
	s.enemies = []Entity{{Kind: KindEnemy, Pos: Point{X: 500, Y: 500}, Size: Size{W: 60, H: 60}}}

	s.SetDirection(DirLeft)
	s.Tick()

	if s.enemies[0].Pos != (Point{X: 500, Y: 500}) {
		t.Errorf("enemy at %+v, expected unchanged when player cannot move", s.enemies[0].Pos)
	}
}

func TestDirectionOrientation(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Orientation
	}{
		{DirRight, Orientation{Angle: 0}},
		{DirDown, Orientation{Angle: 90}},
		{DirUp, Orientation{Angle: -90}},
		{DirLeft, Orientation{Angle: 180, Mirror: true}},
		{DirStill, Orientation{Angle: 0}},
	}

	for _, tt := range tests {
		if got := tt.dir.Orientation(); got != tt.expected {
			t.Errorf("%v.Orientation() = %+v, expected %+v", tt.dir, got, tt.expected)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
		DirStill: DirStill,
	}
	for d, expected := range pairs {
		if got := d.Opposite(); got != expected {
			t.Errorf("%v.Opposite() = %v, expected %v", d, got, expected)
		}
	}
}
