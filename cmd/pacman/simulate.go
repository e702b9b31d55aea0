package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagGames     int
	flagTurnEvery int
	flagSave      bool
	flagWidth     int
	flagHeight    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run headless autopilot games",
	Long: `Play games without a terminal. The autopilot steers at random on the
fixed-step clock: --fps steps make one second of the round.

Games run in parallel; the same --seed always produces the same results.

Examples:
  pacman simulate
  pacman simulate pacman_classic --games 50 --seed 7
  pacman simulate --games 20 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagTurnEvery, "turn-every", 15, "Steps between autopilot direction changes")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the results in the scores database")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 80, "Virtual terminal width")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 24, "Virtual terminal height")
}

// simResult is the outcome of one headless game.
type simResult struct {
	Seed  int64
	Steps int
	Snap  pacman.Snapshot
}

// headless is the part of the Pac-Man adapter the autopilot needs beyond
// registry.Game.
type headless interface {
	registry.Game
	Snapshot() pacman.Snapshot
	Err() error
}

// simConfig describes one batch of headless games.
type simConfig struct {
	GameID    string
	Games     int
	Seed      int64
	TickRate  int
	TurnEvery int
	Width     int
	Height    int
}

func runSimulate(cmd *cobra.Command, args []string) error {
	gameID := pacman.IDClamped
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'pacman list' to see variants", gameID)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := simConfig{
		GameID:    gameID,
		Games:     flagGames,
		Seed:      seed,
		TickRate:  flagFPS,
		TurnEvery: flagTurnEvery,
		Width:     flagWidth,
		Height:    flagHeight,
	}

	logger.Info("simulating", "game", gameID, "games", cfg.Games, "seed", seed)
	results, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printResults(gameID, results)

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		if err := saveResults(store, gameID, results); err != nil {
			return err
		}
		fmt.Printf("\nSaved %d runs to %s\n", len(results), flagDBPath)
	}
	return nil
}

// simulate plays cfg.Games games in parallel. Per-game seeds are drawn up
// front from cfg.Seed, so results do not depend on scheduling.
func simulate(ctx context.Context, cfg simConfig) ([]simResult, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("--games must be positive, got %d", cfg.Games)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, cfg.Games)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make([]simResult, cfg.Games)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, s := range seeds {
		eg.Go(func() error {
			res, err := playHeadless(ctx, cfg, s)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, s, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playHeadless runs one game to the end with the random autopilot.
func playHeadless(ctx context.Context, cfg simConfig, seed int64) (simResult, error) {
	created, err := registry.Create(cfg.GameID)
	if err != nil {
		return simResult{}, err
	}
	game, ok := created.(headless)
	if !ok {
		return simResult{}, fmt.Errorf("game %q cannot run headless", cfg.GameID)
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.Width,
		ScreenH:  cfg.Height,
		TickRate: tickRate,
		Seed:     seed,
	})
	if err := game.Err(); err != nil {
		return simResult{}, err
	}

	turnEvery := max(cfg.TurnEvery, 1)
	steer := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}
	pilot := rand.New(rand.NewSource(seed))

	// The countdown ends every round; the cap only guards a broken clock.
	maxSteps := (game.Snapshot().RemainingSeconds + 1) * tickRate * 2
	steps := 0
	for ; steps < maxSteps && !game.State().GameOver; steps++ {
		if steps%1024 == 0 && ctx.Err() != nil {
			return simResult{}, ctx.Err()
		}
		in := core.NewInputFrame()
		if steps%turnEvery == 0 {
			in.Set(steer[pilot.Intn(len(steer))])
		}
		game.Step(in)
	}

	return simResult{Seed: seed, Steps: steps, Snap: game.Snapshot()}, nil
}

func printResults(gameID string, results []simResult) {
	fmt.Printf("Simulation - %s\n\n", registry.Title(gameID))
	fmt.Printf("  %-4s  %-20s  %-6s  %-9s  %-10s  %s\n", "#", "Seed", "Result", "Score", "Reason", "Left")
	fmt.Printf("  %-4s  %-20s  %-6s  %-9s  %-10s  %s\n", "-", "----", "------", "-----", "------", "----")

	wins, total := 0, 0
	for i, r := range results {
		result := "lost"
		if r.Snap.Won {
			result = "won"
			wins++
		}
		total += r.Snap.Score
		fmt.Printf("  %-4d  %-20d  %-6s  %-9s  %-10s  %ds\n",
			i+1, r.Seed, result, fmt.Sprintf("%d/%d", r.Snap.Score, r.Snap.MaxScore),
			r.Snap.Reason, r.Snap.RemainingSeconds)
	}

	fmt.Println()
	fmt.Printf("Won %d of %d, average score %.1f\n", wins, len(results), float64(total)/float64(len(results)))
}

func saveResults(store *storage.Store, gameID string, results []simResult) error {
	for _, r := range results {
		if r.Snap.Score > 0 {
			if _, err := store.SaveScore(gameID, r.Snap.Score); err != nil {
				return err
			}
		}
		_, err := store.SaveRun(storage.RunRecord{
			GameID:      gameID,
			Seed:        r.Seed,
			Score:       r.Snap.Score,
			MaxScore:    r.Snap.MaxScore,
			Won:         r.Snap.Won,
			Reason:      r.Snap.Reason.String(),
			SecondsLeft: r.Snap.RemainingSeconds,
			Ticks:       int64(r.Snap.Ticks),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
