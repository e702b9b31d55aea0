package pacman

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// placementScale divides every coordinate before spacing is measured.
// Measured in arena pixels the effective gap is MinSpacing*placementScale.
const placementScale = 2

// Rand is the randomness source used for placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlacementRequest describes one placement. The slices are read-only views
// of the entities already on the field.
type PlacementRequest struct {
	Coins       []Point
	Enemies     []Point
	Cherries    []Point
	Player      Point
	Size        Size
	Bounds      Bounds
	MinSpacing  int
	MaxAttempts int
}

// PlaceEntity draws grid-aligned candidates until one is far enough from
// every coin, enemy, cherry and the player.
//
// x is drawn from [0, Width-Size.W) and y from [0, Height-Size.H); both must
// be multiples of MinSpacing. MaxAttempts bounds raw draws, including the
// ones rejected for being off the grid.
func PlaceEntity(rng Rand, req PlacementRequest) (Point, error) {
	if req.MinSpacing <= 0 {
		return Point{}, fmt.Errorf("%w: min spacing %d", ErrInvalidConfiguration, req.MinSpacing)
	}
	if req.MaxAttempts <= 0 {
		return Point{}, fmt.Errorf("%w: max attempts %d", ErrInvalidConfiguration, req.MaxAttempts)
	}
	spanX := req.Bounds.Width - req.Size.W
	spanY := req.Bounds.Height - req.Size.H
	if spanX <= 0 || spanY <= 0 {
		return Point{}, fmt.Errorf("%w: %dx%d entity does not fit %dx%d arena",
			ErrInvalidConfiguration, req.Size.W, req.Size.H, req.Bounds.Width, req.Bounds.Height)
	}

	for attempt := 0; attempt < req.MaxAttempts; attempt++ {
		candidate := Point{X: rng.Intn(spanX), Y: rng.Intn(spanY)}
		if candidate.X%req.MinSpacing != 0 || candidate.Y%req.MinSpacing != 0 {
			continue
		}
		if req.spaced(candidate) {
			return candidate, nil
		}
	}

	return Point{}, fmt.Errorf("%w: %d attempts at spacing %d", ErrPlacementExhausted, req.MaxAttempts, req.MinSpacing)
}

// spaced reports whether p keeps the minimum spacing from everything placed.
func (req PlacementRequest) spaced(p Point) bool {
	for _, group := range [][]Point{req.Coins, req.Enemies, req.Cherries} {
		for _, other := range group {
			if !farEnough(other, p, req.MinSpacing) {
				return false
			}
		}
	}
	return farEnough(req.Player, p, req.MinSpacing)
}

func farEnough(a, b Point, spacing int) bool {
	d := core.Distance(a.X/placementScale, a.Y/placementScale, b.X/placementScale, b.Y/placementScale)
	return d > float64(spacing)
}

// gridCapacity returns how many grid positions a placement can ever produce.
func gridCapacity(bounds Bounds, size Size, spacing int) int {
	spanX, spanY := bounds.Width-size.W, bounds.Height-size.H
	if spacing <= 0 || spanX <= 0 || spanY <= 0 {
		return 0
	}
	return core.CeilDiv(spanX, spacing) * core.CeilDiv(spanY, spacing)
}
