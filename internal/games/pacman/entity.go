package pacman

import "github.com/vovakirdan/tui-pacman/internal/config"

// Point is a position in arena pixels. The origin is the top-left corner.
type Point struct {
	X, Y int
}

// Size is the width and height of a hitbox in arena pixels.
type Size struct {
	W, H int
}

// Bounds is the arena size in pixels.
type Bounds struct {
	Width, Height int
}

// Kind identifies what an entity is.
type Kind int

const (
	KindCoin Kind = iota
	KindCherry
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindCoin:
		return "coin"
	case KindCherry:
		return "cherry"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Value returns the points awarded for consuming an entity of this kind.
func (k Kind) Value(cfg config.PacmanConfig) int {
	switch k {
	case KindCoin:
		return cfg.Coins.Value
	case KindCherry:
		return cfg.Cherries.Value
	case KindEnemy:
		return cfg.Enemies.Value
	default:
		return 0
	}
}

// Skin is a render hint. It never affects the simulation.
type Skin int

const (
	SkinCoin Skin = iota
	SkinCherry
	SkinEnemyRed
	SkinEnemyBlue
	SkinEnemyVulnerable
)

// Entity is a coin, cherry or enemy on the field.
// Vulnerable is only meaningful for enemies.
type Entity struct {
	Kind       Kind
	Pos        Point
	Size       Size
	Consumed   bool
	Vulnerable bool
	Skin       Skin
}

// Center returns the integer center of the hitbox.
func (e Entity) Center() Point {
	return center(e.Pos, e.Size)
}

// Player is the user-controlled entity.
type Player struct {
	Pos       Point
	Size      Size
	Direction Direction
	Facing    Direction // Last direction that actually moved the player
	Consumed  bool
}

// Center returns the integer center of the player's hitbox.
func (p Player) Center() Point {
	return center(p.Pos, p.Size)
}

func center(pos Point, size Size) Point {
	return Point{X: pos.X + size.W/2, Y: pos.Y + size.H/2}
}

// enemySkin alternates red and blue by placement index.
func enemySkin(i int) Skin {
	if i%2 == 0 {
		return SkinEnemyRed
	}
	return SkinEnemyBlue
}
