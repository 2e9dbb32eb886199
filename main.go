package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/game"
	"github.com/pthm-cable/egodrive/input"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run a scripted drive without graphics")
	scriptPath := flag.String("script", "", "Drive script YAML for headless runs (empty = built-in)")
	restorePath := flag.String("restore", "", "Save file to resume from")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	saveDir := flag.String("save-dir", "", "Directory for bookmark saves")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and plots")
	plots := flag.Bool("plots", false, "Render path and speed plots into the output directory on exit")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	var script *input.Script
	if *scriptPath != "" {
		s, err := input.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			os.Exit(1)
		}
		script = s
	}

	opts := game.Options{
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SaveDir:        *saveDir,
		OutputDir:      *outputDir,
		RestorePath:    *restorePath,
		Headless:       *headless,
		Script:         script,
		Plots:          *plots,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		run(func() (*game.Game, error) { return game.NewGameWithOptions(opts) }, func(g *game.Game) bool {
			g.UpdateHeadless()
			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return false
			}
			return !g.Done()
		})
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "egodrive")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	run(func() (*game.Game, error) { return game.NewGameWithOptions(opts) }, func(g *game.Game) bool {
		if rl.WindowShouldClose() {
			return false
		}
		g.Update()
		g.Draw()
		return *maxTicks <= 0 || int(g.Tick()) < *maxTicks
	})
}

// run builds the game and calls frame until it returns false.
func run(build func() (*game.Game, error), frame func(*game.Game) bool) {
	g, err := build()
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting", "tick", g.Tick())
	for frame(g) {
	}
}
