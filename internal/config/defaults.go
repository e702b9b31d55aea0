package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default Pac-Man configuration.
// It mirrors defaults/pacman.yaml and is used when the embedded file
// cannot be decoded.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Arena: PacmanArena{
			CellWidth:         20,
			CellHeight:        40,
			MinSpacing:        100,
			PlacementAttempts: 2_000_000,
		},
		Player: PacmanPlayer{
			StartX: 50,
			StartY: 400,
			Width:  60,
			Height: 60,
			Speed:  8,
		},
		Coins: PacmanPickup{
			Count:  10,
			Value:  1,
			Width:  40,
			Height: 40,
		},
		Cherries: PacmanPickup{
			Count:  1,
			Value:  5,
			Width:  40,
			Height: 40,
		},
		Enemies: PacmanEnemies{
			Count:                     2,
			Value:                     10,
			Width:                     60,
			Height:                    60,
			VulnerableSpeedMultiplier: 2,
		},
		Timing: PacmanTiming{
			RoundSeconds:      30,
			MoveIntervalMS:    20,
			CountdownPeriodMS: 1000,
		},
		Scoring: PacmanScoring{
			Clamp: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pacman", "pacman_classic":
		return defaultPacmanYAML
	default:
		return nil
	}
}
