package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfit/internal/platform/tui"
	"github.com/vovakirdan/hexfit/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: hexfit).

Controls:
  Arrows/WASD  - Move the cursor
  Tab, 1-3     - Pick a piece from the tray
  Enter/Space  - Place the piece
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Back to menu (paused or game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Small pieces, the board is kept clearable sooner
  normal - Pieces grow with your score
  hard   - Starts close to the hardest piece mix
  fixed  - No progression, stays at the configured mix

Without --difficulty a picker is shown before the run.

Examples:
  hexfit play
  hexfit play hexfit_mini
  hexfit play --difficulty hard
  hexfit play --config ./my-hexfit.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "hexfit"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown mode %q\nRun 'hexfit list' to see available modes.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	cfg := terminalConfig()
	store := openStore()
	prefs := loadPrefs(store)

	if da, ok := game.(registry.DifficultyAware); ok && flagDifficulty == "" {
		preset, selErr := tui.RunDifficultySelector(game.Title(), cfg, prefs.Theme)
		if selErr != nil {
			closeStore(store)
			fail("%v", selErr)
		}
		// User pressed back or quit
		if preset == "" {
			closeStore(store)
			return
		}
		da.SetDifficulty(preset)
	}

	_, runErr := tui.Run(game, cfg, tui.GameOptions{
		Store:  store,
		Prefs:  prefs,
		Bell:   os.Stdout,
		Logger: sessionLogger(),
	})

	// Close store before potential exit
	closeStore(store)

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
