package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/platform/tui"
	"github.com/vovakirdan/minigames/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space/F      - Fire (shooter) or cast (fishing)
  Left/Right   - Pick difficulty on the title screen
  Enter        - Start
  P            - Pause / resume
  R            - Play again (after game over)
  Esc/B        - Back
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play shooter
  arcade play fishing --difficulty easy
  arcade play shooter --difficulty hard --mute
  arcade play shooter --seed 42
  arcade play fishing --config ./my-fishing.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addSessionFlags(playCmd)
}

// addSessionFlags registers the flags shared by play and menu.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	game, err := registry.Create(gameID, sess.opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	sess.logger.Info("game started", "game", gameID, "seed", sess.cfg.Seed)
	if err := tui.Run(game, sess.cfg, sess.gameOptions()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
