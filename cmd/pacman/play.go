package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or the default one.

Variants:
  pacman          - Score is capped at the maximum
  pacman_classic  - Simultaneous pickups may push the score past the maximum

Controls:
  Arrows/WASD/HJKL - Steer
  Space            - Stop
  P                - Pause
  R                - New game
  Esc/B            - Back to menu (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  pacman play
  pacman play pacman_classic
  pacman play --seed 42 --config ./my-pacman.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := pacman.IDClamped
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'pacman list' to see variants", gameID)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	back, err := tui.Run(gameOptions(gameID, store, width, height))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if back {
		return menuLoop(store)
	}
	return nil
}

func gameOptions(gameID string, store *storage.Store, width, height int) tui.Options {
	return tui.Options{
		GameID:    gameID,
		Seed:      flagSeed,
		FrameRate: flagFPS,
		Width:     width,
		Height:    height,
		Store:     store,
		Logger:    logger,
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
