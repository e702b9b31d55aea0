package pacman

// Direction is the player's steering intent.
type Direction int

const (
	DirStill Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirStill:
		return "still"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the direction enemies take when the player moves in d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirStill
	}
}

// Orientation is how a sprite facing a direction should be drawn.
type Orientation struct {
	Angle  int  // Degrees clockwise from facing right
	Mirror bool // Flip horizontally instead of rotating past 90
}

// Orientation returns the sprite orientation for d.
// Still keeps the default right-facing sprite.
func (d Direction) Orientation() Orientation {
	switch d {
	case DirDown:
		return Orientation{Angle: 90}
	case DirUp:
		return Orientation{Angle: -90}
	case DirLeft:
		return Orientation{Angle: 180, Mirror: true}
	default:
		return Orientation{}
	}
}

// delta returns the unit step for d.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}
