// Package game wires the session, scene, telemetry and UI into the windowed
// viewer and the headless runner.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/input"
	"github.com/pthm-cable/egodrive/scene"
	"github.com/pthm-cable/egodrive/sim"
	"github.com/pthm-cable/egodrive/telemetry"
	"github.com/pthm-cable/egodrive/ui"
)

// maxFrameDT caps the wall-clock step so a stalled window does not launch
// the car.
const maxFrameDT = 0.1

// maxTrail bounds the trail overlay.
const maxTrail = 4096

// Options configures game behavior.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	SaveDir        string // directory for bookmark saves
	OutputDir      string // directory for CSV logs, config and plots
	RestorePath    string // save file to resume from
	Headless       bool
	Script         *input.Script // headless drive; nil uses the default
	Plots          bool          // render path and speed plots at Unload
	StepsPerUpdate int           // ticks per Update call
}

// Game holds the complete viewer state.
type Game struct {
	cfg     *config.Config
	session *sim.Session
	scene   *scene.Scene
	last    sim.Snapshot

	// Headless playback
	frames   []input.Frame
	frameIdx int

	// Telemetry
	collector        *telemetry.Collector
	trajectory       *telemetry.Trajectory
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	plotRows         []telemetry.TrajectoryRow
	logStats         bool
	saveDir          string
	plots            bool

	// Trail overlay, world frame
	trail []r3.Vec

	// Viewer
	camera     rl.Camera3D
	hud        *ui.HUD
	debugPanel *ui.DebugPanel
	helpPanel  *ui.HelpPanel
	perfPanel  *ui.PerfPanel
	uiOverlays *ui.OverlayRegistry
	audio      *audioPlayer

	paused         bool
	headless       bool
	stepsPerUpdate int

	screenWidth, screenHeight int32
}

// NewGameWithOptions creates a game from the global config. The window must
// already be open unless opts.Headless is set.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	session, err := sim.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	if opts.RestorePath != "" {
		save, err := sim.ReadSave(opts.RestorePath)
		if err != nil {
			return nil, err
		}
		if err := session.Restore(save); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", opts.RestorePath, err)
		}
		slog.Info("save restored", "path", opts.RestorePath, "tick", save.Tick)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:              cfg,
		session:          session,
		scene:            scene.New(session.Mounts, session.WheelRadius, scene.DefaultObstacles()),
		collector:        telemetry.NewCollector(statsWindow, cfg.Dynamics.DT),
		trajectory:       telemetry.NewTrajectory(cfg.Telemetry.SampleEvery),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		logStats:         opts.LogStats,
		saveDir:          opts.SaveDir,
		plots:            opts.Plots,
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		screenWidth:      int32(cfg.Screen.Width),
		screenHeight:     int32(cfg.Screen.Height),
	}
	session.OnTick = g.onTick

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, err
		}
		g.outputManager = om
	}

	if opts.Headless {
		script := opts.Script
		if script == nil {
			script = input.DefaultScript()
		}
		g.frames = script.Frames(cfg.Dynamics.DT)
		slog.Info("script loaded", "name", script.Name, "duration", script.Duration(), "frames", len(g.frames))
	} else {
		g.hud = ui.NewHUD()
		g.debugPanel = ui.NewDebugPanel()
		g.helpPanel = ui.NewHelpPanel(10, 80, 280)
		g.perfPanel = ui.NewPerfPanel(16, g.screenHeight-200)
		g.uiOverlays = ui.NewOverlayRegistry()
		g.audio = newAudioPlayer(cfg.Sound)
		g.camera = rl.Camera3D{
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}
	}

	g.last = session.Snapshot()
	g.scene.Sync(g.last)
	g.syncCamera()
	return g, nil
}

// Update reads the devices and advances the session by the frame time.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	dt := float64(rl.GetFrameTime())
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	f := g.readFrame(dt)
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(f)
		// Edge-triggered requests apply once per update.
		f.CameraToggle = false
		f.Respawn = false
	}

	g.scene.Sync(g.last)
	g.syncCamera()
}

// UpdateHeadless plays up to StepsPerUpdate scripted frames.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate && !g.Done(); i++ {
		g.step(g.frames[g.frameIdx])
		g.frameIdx++
	}
}

// Done reports whether the headless script has finished.
func (g *Game) Done() bool {
	return g.headless && g.frameIdx >= len(g.frames)
}

func (g *Game) step(f input.Frame) {
	g.last = g.session.Step(f)
	if g.audio != nil {
		g.audio.Observe(g.last.Cue, g.last.CueEntered)
	}
}

// Unload flushes output, renders plots and releases resources.
func (g *Game) Unload() {
	g.drainTrajectory()

	if g.plots {
		g.savePlots()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if g.audio != nil {
		g.audio.Unload()
	}

	slog.Info("run finished",
		"tick", g.last.Tick,
		"sim_time", g.last.Time,
		"odometer_m", g.last.State.S,
	)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.session.Tick()
}

// Snapshot returns the most recent session snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.last
}
