package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfit/internal/platform/tui"
	"github.com/vovakirdan/hexfit/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start hexfit with a mode picker menu",
	Long: `Start hexfit in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a run ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  T            - Next theme
  M            - Toggle sound
  Q            - Quit

Examples:
  hexfit menu
  hexfit menu --fps 60
  hexfit menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	cfg := terminalConfig()
	prefs := loadPrefs(store)
	sessLogger := sessionLogger()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, prefs, sessLogger)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}

		// Carry size and preference changes into the next screen
		cfg = menuResult.Config
		prefs = menuResult.Prefs

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, prefs.Theme)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		if da, ok := game.(registry.DifficultyAware); ok && flagDifficulty == "" {
			preset, selErr := tui.RunDifficultySelector(game.Title(), cfg, prefs.Theme)
			if selErr != nil {
				logger.Error("difficulty picker failed", "error", selErr)
				continue
			}
			if preset == "" {
				continue
			}
			da.SetDifficulty(preset)
		}

		// Fresh seed for each run unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, runErr := tui.Run(game, cfg, tui.GameOptions{
			Store:  store,
			Prefs:  prefs,
			Bell:   os.Stdout,
			Logger: sessLogger,
		})
		if runErr != nil {
			logger.Error("game failed", "error", runErr)
		}
		if !backToMenu {
			return
		}
	}
}
