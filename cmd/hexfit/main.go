// hexfit is a hex-grid block puzzle for the terminal.
//
// Usage:
//
//	hexfit list              - List available modes
//	hexfit play [mode]       - Play a mode (default: hexfit)
//	hexfit menu              - Start menu to pick modes interactively
//	hexfit scores [mode]     - Show high scores for a mode
//	hexfit serve             - Start SSH server for remote play
//	hexfit api               - Serve the leaderboard over HTTP
//	hexfit spawn             - Run the piece spawner on a random board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.hexfit/scores.db)
//	--config <path>       - Load a custom hexfit.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//
// HEXFIT_DB, HEXFIT_CONFIG and HEXFIT_LOG_LEVEL (also read from a .env file)
// provide defaults for the matching flags.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexfit/internal/config"
	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/games/hexfit"
	"github.com/vovakirdan/hexfit/internal/platform/tui"
	"github.com/vovakirdan/hexfit/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexfit",
	})
)

// envDefaults maps flags to the environment variables that override their defaults.
var envDefaults = map[string]string{
	"db":        "HEXFIT_DB",
	"config":    "HEXFIT_CONFIG",
	"log-level": "HEXFIT_LOG_LEVEL",
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexfit",
	Short: "HexFit - a hex-grid block puzzle in your terminal",
	Long: `HexFit is a block-placement puzzle on a hexagonal board.
Place the three offered pieces, fill complete lines along any of the
three hex axes to clear them, and keep going as long as something fits.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  scores   - View high scores
  serve    - Start SSH server for remote play
  api      - Serve the leaderboard over HTTP
  spawn    - Inspect the piece spawner

Examples:
  hexfit play
  hexfit play hexfit_mini --difficulty hard
  hexfit menu
  hexfit serve --ssh :2222
  hexfit api --http :8080
  hexfit spawn --fill 0.6 --seed 42`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexfit/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom hexfit.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive sessions to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(spawnCmd)
}

// setup applies environment defaults and configures logging and the game package.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for name, env := range envDefaults {
		if v := os.Getenv(env); v != "" && !flags.Changed(name) {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", flagLogLevel)
	}
	logger.SetLevel(level)

	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}

	hexfit.SetLogger(logger.WithPrefix("hexfit"))
	hexfit.SetConfigPath(flagConfig)
	hexfit.SetDifficultyPreset(flagDifficulty)
	return nil
}

// sessionLogger returns the logger for full-screen commands. Writing to
// stderr would tear the alt screen, so logs go to --log-file or nowhere.
func sessionLogger() *log.Logger {
	if flagLogFile == "" {
		return log.New(io.Discard)
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		logger.Warn("cannot create log directory", "error", err)
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("cannot open log file", "path", flagLogFile, "error", err)
		return log.New(io.Discard)
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "hexfit"})
	l.SetLevel(logger.GetLevel())
	hexfit.SetLogger(l.WithPrefix("hexfit"))
	return l
}

// openStore opens the scores database. A failure is logged and play
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("cannot close scores database", "error", err)
	}
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadPrefs reads stored preferences, defaulting the theme to the one in
// the loaded config.
func loadPrefs(store *storage.Store) tui.Preferences {
	cfg, err := config.LoadHexfit(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	return tui.LoadPreferences(store, "", cfg.Theme)
}

// fail prints an error the way every subcommand reports them and exits.
func fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "Error: "+strings.TrimSpace(msg))
	os.Exit(1)
}
