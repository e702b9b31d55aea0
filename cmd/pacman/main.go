// pacman is a terminal Pac-Man: collect every point before the clock runs
// out and keep away from the ghosts until a cherry makes them edible.
//
// Usage:
//
//	pacman list               - List game variants
//	pacman play [variant]     - Play a variant (default: pacman)
//	pacman menu               - Pick a variant interactively
//	pacman simulate [variant] - Run headless autopilot games
//	pacman serve              - Start SSH server for remote play
//	pacman scores <variant>   - Show high scores and recent runs
//
// Global flags:
//
//	--fps <rate>        - Set redraw/tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible placement
//	--db <path>         - Set database path (default: ~/.pacman/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pac-Man - collect the points, dodge the ghosts",
	Long: `Pac-Man for the terminal.

Collect every coin, cherry and ghost before the 30 second clock runs out.
Touching a ghost ends the game, unless you ate a cherry first: then the
ghosts turn blue, flee at double speed, and are worth points.

Available commands:
  list      - Show game variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  simulate  - Run headless autopilot games
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs

Examples:
  pacman play
  pacman play pacman_classic --seed 42
  pacman simulate --games 20 --save
  pacman serve --ssh :2222
  pacman scores pacman --runs`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Redraw rate, and simulation tick rate for headless play")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup configures logging and the game config path for every command.
// Interactive commands own the terminal, so without --log-file they log
// nothing; serve and simulate log to stderr.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case cmd.Name() == "serve" || cmd.Name() == "simulate":
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "pacman",
	})

	pacman.SetConfigPath(flagConfig)
	pacman.SetLogger(logger)
	return nil
}
