// Package config loads the YAML game configuration for Pac-Man.
package config

import (
	"errors"
	"fmt"
)

// PacmanConfig contains all configuration for the Pac-Man game.
// Arena coordinates are in "pixels"; the terminal maps cells to pixels
// through Arena.CellWidth and Arena.CellHeight.
type PacmanConfig struct {
	Arena    PacmanArena   `yaml:"arena"`
	Player   PacmanPlayer  `yaml:"player"`
	Coins    PacmanPickup  `yaml:"coins"`
	Cherries PacmanPickup  `yaml:"cherries"`
	Enemies  PacmanEnemies `yaml:"enemies"`
	Timing   PacmanTiming  `yaml:"timing"`
	Scoring  PacmanScoring `yaml:"scoring"`
}

// PacmanArena defines arena geometry and placement parameters.
type PacmanArena struct {
	CellWidth         int `yaml:"cell_width"`         // Pixels per terminal column
	CellHeight        int `yaml:"cell_height"`        // Pixels per terminal row
	MinSpacing        int `yaml:"min_spacing"`        // Placement spacing and grid step
	PlacementAttempts int `yaml:"placement_attempts"` // Raw draws before placement gives up
}

// PacmanPlayer defines the player's start position, hitbox and speed.
type PacmanPlayer struct {
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Speed  int `yaml:"speed"` // Pixels per movement tick
}

// PacmanPickup defines one kind of collectible item.
type PacmanPickup struct {
	Count  int `yaml:"count"`
	Value  int `yaml:"value"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PacmanEnemies defines the enemy ghosts.
type PacmanEnemies struct {
	Count  int `yaml:"count"`
	Value  int `yaml:"value"` // Points for capturing a vulnerable enemy
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// VulnerableSpeedMultiplier scales enemy speed while vulnerable.
	VulnerableSpeedMultiplier int `yaml:"vulnerable_speed_multiplier"`
}

// PacmanTiming defines round length and scheduler cadence.
type PacmanTiming struct {
	RoundSeconds      int `yaml:"round_seconds"`
	MoveIntervalMS    int `yaml:"move_interval_ms"`
	CountdownPeriodMS int `yaml:"countdown_period_ms"`
}

// PacmanScoring controls score semantics.
type PacmanScoring struct {
	// Clamp caps the reported score at the maximum collectible score.
	// When false, simultaneous pickups may push the score past the maximum.
	Clamp bool `yaml:"clamp"`
}

// MaxScore returns the total of every collectible value.
func (c PacmanConfig) MaxScore() int {
	return c.Cherries.Count*c.Cherries.Value +
		c.Enemies.Count*c.Enemies.Value +
		c.Coins.Count*c.Coins.Value
}

// Validate checks that the configuration describes a playable game.
func (c PacmanConfig) Validate() error {
	var errs []error

	if c.Arena.CellWidth <= 0 || c.Arena.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("arena cell size must be positive, got %dx%d",
			c.Arena.CellWidth, c.Arena.CellHeight))
	}
	if c.Arena.MinSpacing <= 0 {
		errs = append(errs, fmt.Errorf("arena min_spacing must be positive, got %d", c.Arena.MinSpacing))
	}
	if c.Arena.PlacementAttempts <= 0 {
		errs = append(errs, fmt.Errorf("arena placement_attempts must be positive, got %d", c.Arena.PlacementAttempts))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %dx%d", c.Player.Width, c.Player.Height))
	}
	if c.Player.StartX < 0 || c.Player.StartY < 0 {
		errs = append(errs, fmt.Errorf("player start must not be negative, got (%d, %d)", c.Player.StartX, c.Player.StartY))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player speed must not be negative, got %d", c.Player.Speed))
	}
	errs = append(errs, validatePickup("coins", c.Coins), validatePickup("cherries", c.Cherries))
	if c.Enemies.Count < 0 || c.Enemies.Value < 0 {
		errs = append(errs, errors.New("enemies count and value must not be negative"))
	}
	if c.Enemies.Count > 0 && (c.Enemies.Width <= 0 || c.Enemies.Height <= 0) {
		errs = append(errs, fmt.Errorf("enemies size must be positive, got %dx%d", c.Enemies.Width, c.Enemies.Height))
	}
	if c.Enemies.VulnerableSpeedMultiplier < 0 {
		errs = append(errs, errors.New("enemies vulnerable_speed_multiplier must not be negative"))
	}
	if c.Timing.RoundSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timing round_seconds must be positive, got %d", c.Timing.RoundSeconds))
	}
	if c.Timing.MoveIntervalMS <= 0 || c.Timing.CountdownPeriodMS <= 0 {
		errs = append(errs, errors.New("timing intervals must be positive"))
	}

	return errors.Join(errs...)
}

func validatePickup(name string, p PacmanPickup) error {
	if p.Count < 0 || p.Value < 0 {
		return fmt.Errorf("%s count and value must not be negative", name)
	}
	if p.Count > 0 && (p.Width <= 0 || p.Height <= 0) {
		return fmt.Errorf("%s size must be positive, got %dx%d", name, p.Width, p.Height)
	}
	return nil
}
