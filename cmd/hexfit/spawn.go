package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfit/internal/config"
	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

var (
	flagSpawnRadius int
	flagSpawnFill   float64
	flagSpawnJSON   bool
)

var spawnCmd = &cobra.Command{
	Use:   "spawn",
	Short: "Run the piece spawner on a randomly filled board",
	Long: `Fill a board to the given fraction with single cells, run the safe
spawner once and print the board, the tray and search statistics.
Useful for tuning spawn.tiers and spawn.need_clear_ratio.

Examples:
  hexfit spawn
  hexfit spawn --fill 0.7 --seed 42
  hexfit spawn --radius 3 --difficulty hard --json`,
	Args: cobra.NoArgs,
	Run:  runSpawn,
}

func init() {
	spawnCmd.Flags().IntVar(&flagSpawnRadius, "radius", 0, "Board radius (0 = from config)")
	spawnCmd.Flags().Float64Var(&flagSpawnFill, "fill", 0.5, "Fraction of cells to fill before spawning")
	spawnCmd.Flags().BoolVar(&flagSpawnJSON, "json", false, "Print the report as JSON")
}

// spawnReport is the output of one spawner run.
type spawnReport struct {
	Radius   int      `json:"radius"`
	Seed     int64    `json:"seed"`
	Cells    int      `json:"cells"`
	Filled   int      `json:"filled"`
	Tray     []string `json:"tray"`
	Attempts int      `json:"attempts"`
	Fallback bool     `json:"fallback"`
	Nodes    int      `json:"nodes"`
	Board    []string `json:"board"`
}

func runSpawn(_ *cobra.Command, _ []string) {
	if flagSpawnFill < 0 || flagSpawnFill > 1 {
		fail("--fill must be within [0, 1], got %v", flagSpawnFill)
	}

	cfg, err := config.LoadHexfit(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if preset, ok := config.ParsePreset(flagDifficulty); ok && flagDifficulty != "" {
		config.ApplyHexfitPreset(&cfg, preset)
	}
	radius := flagSpawnRadius
	if radius <= 0 {
		radius = cfg.Board.Radius
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	board := core.NewBoard(radius)
	if err := fillBoard(board, flagSpawnFill, rng); err != nil {
		fail("filling board: %v", err)
	}

	spawner := core.NewSpawner(catalog, cfg.SpawnParams(), rng)
	spawner.SetLogger(logger.WithPrefix("spawn"))
	tray, stats := spawner.SpawnWithStats(board)

	report := spawnReport{
		Radius:   board.Radius(),
		Seed:     seed,
		Cells:    board.Len(),
		Filled:   board.FilledCount(),
		Attempts: stats.Attempts,
		Fallback: stats.Fallback,
		Nodes:    stats.Nodes,
		Board:    boardRows(board),
	}
	for _, s := range tray {
		report.Tray = append(report.Tray, s.Name())
	}

	if flagSpawnJSON {
		out, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			fail("encoding report: %v", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return
	}

	for _, row := range report.Board {
		fmt.Println(row)
	}
	fmt.Println()
	fmt.Printf("Tray: %s\n", strings.Join(report.Tray, ", "))
	logger.Info("tray spawned",
		"seed", report.Seed,
		"filled", fmt.Sprintf("%d/%d", report.Filled, report.Cells),
		"attempts", report.Attempts,
		"nodes", report.Nodes,
		"fallback", report.Fallback,
	)
}

// fillBoard occupies round(fill * cells) random cells. Full lines are left
// in place; the spawner sees them as clearable.
func fillBoard(b *core.Board, fill float64, rng *rand.Rand) error {
	coords := b.Coords()
	rng.Shuffle(len(coords), func(i, j int) { coords[i], coords[j] = coords[j], coords[i] })

	n := int(fill*float64(len(coords)) + 0.5)
	colors := core.AllColors()
	for _, c := range coords[:n] {
		if err := b.Place(c, core.Dot, colors[rng.Intn(len(colors))]); err != nil {
			return fmt.Errorf("cell %v: %w", c, err)
		}
	}
	return nil
}

// boardRows draws the board as offset text rows, one per r.
func boardRows(b *core.Board) []string {
	radius := b.Radius()
	rows := make([]string, 0, 2*radius+1)
	for r := -radius; r <= radius; r++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", abs(r)))
		for q := -radius; q <= radius; q++ {
			cell, ok := b.Cell(core.C(q, r))
			if !ok {
				continue
			}
			if cell.Occupied {
				sb.WriteString("# ")
			} else {
				sb.WriteString(". ")
			}
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return rows
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
