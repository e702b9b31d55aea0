package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the scoreboard.
Pause a game or finish it, then press Esc to come back here.

Examples:
  pacman menu
  pacman menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	return menuLoop(store)
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store *storage.Store) error {
	width, height := terminalSize()

	for {
		result, err := tui.RunMenu(store, width, height)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if result.Width > 0 && result.Height > 0 {
			width, height = result.Width, result.Height
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(store, width, height)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !back {
				return nil
			}

		default:
			back, err := tui.Run(gameOptions(result.GameID, store, width, height))
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !back {
				return nil
			}
		}
	}
}
