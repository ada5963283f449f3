package main

import (
	"flag"
	"log/slog"
	"os"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/camera"
	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/flotsam"
	"github.com/pthm-cable/swell/ocean"
	"github.com/pthm-cable/swell/renderer"
	"github.com/pthm-cable/swell/telemetry"
	"github.com/pthm-cable/swell/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited; headless defaults to 600)")
	seed := flag.Int64("seed", 0, "Spectrum seed override (0 = use config)")
	intensity := flag.String("intensity", "", "Greyscale PNG that scales wave amplitude by location")
	timeScale := flag.Float64("time-scale", 0, "Simulation speed multiplier (0 = use config)")
	logStats := flag.Bool("log-stats", false, "Log rolling perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV perf rows and config snapshot")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// CLI overrides land in the config so the snapshot records the
	// effective run settings.
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *timeScale > 0 {
		cfg.Sim.TimeScale = *timeScale
	}
	if *intensity != "" {
		cfg.Sim.IntensityMap = *intensity
	}

	sea, err := ocean.New(oceanParams(cfg))
	if err != nil {
		slog.Error("failed to build ocean", "error", err)
		os.Exit(1)
	}
	defer sea.Close()

	if cfg.Sim.IntensityMap != "" {
		m, err := ocean.LoadIntensityMap(cfg.Sim.IntensityMap)
		if err != nil {
			slog.Error("failed to load intensity map", "path", cfg.Sim.IntensityMap, "error", err)
			os.Exit(1)
		}
		sea.UseIntensityMap(m)
		slog.Info("intensity map attached", "path", cfg.Sim.IntensityMap, "width", m.Width(), "height", m.Height())
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", *outputDir, "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	if *headless {
		runHeadless(sea, perf, out, cfg, *frames, *logStats)
		return
	}
	runViewer(sea, perf, out, cfg, *frames, *logStats)
}

// oceanParams maps the config's sea section onto simulation parameters.
func oceanParams(cfg *config.Config) ocean.Params {
	return ocean.Params{
		GridDimension:  cfg.Sea.GridDimension,
		MeterDimension: cfg.Sea.MeterDimension,
		Expansion:      cfg.Sea.Expansion,
		Amplitude:      cfg.Sea.Amplitude,
		Gravity:        cfg.Sea.Gravity,
		Wind:           mgl32.Vec2{float32(cfg.Sea.Wind[0]), float32(cfg.Sea.Wind[1])},
		HeightScale:    cfg.Sea.HeightScale,
		DisplaceScale:  cfg.Sea.DisplaceScale,
		Seed:           cfg.Sim.Seed,
	}
}

// mergeStepTiming folds the simulation goroutine's phase timings into the
// current frame after the rendezvous.
func mergeStepTiming(perf *telemetry.PerfCollector, timing ocean.StepTiming) {
	perf.AddPhase(telemetry.PhaseEvolve, timing.Evolve)
	perf.AddPhase(telemetry.PhaseTransform, timing.Transform)
	perf.AddPhase(telemetry.PhaseAssemble, timing.Assemble)
	perf.AddPhase(telemetry.PhaseStitch, timing.Stitch)
}

// runHeadless drives a fixed number of frames without a window, purely to
// measure simulation throughput.
func runHeadless(sea *ocean.Ocean, perf *telemetry.PerfCollector, out *telemetry.OutputManager, cfg *config.Config, frames int, logStats bool) {
	if frames <= 0 {
		frames = 600
	}

	slog.Info("starting headless run",
		"frames", frames,
		"grid", cfg.Sea.GridDimension,
		"expansion", cfg.Sea.Expansion,
		"time_scale", cfg.Sim.TimeScale,
	)

	clock := newSimClock(cfg.Sim.TimeScale)
	runner := ocean.NewRunner(sea, nil)
	if err := runner.Execute(clock.Now); err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer runner.Terminate()

	start := time.Now()
	lastLog := start

	for frame := 1; frame <= frames; frame++ {
		perf.StartFrame()
		runner.Wait()
		mergeStepTiming(perf, sea.LastStepTiming())
		perf.EndFrame()
		perf.RecordFrame()

		if cfg.Telemetry.LogInterval > 0 && time.Since(lastLog).Seconds() >= cfg.Telemetry.LogInterval {
			stats := perf.Stats()
			if logStats {
				stats.LogStats()
			}
			if err := out.WritePerf(stats, int32(frame)); err != nil {
				slog.Warn("failed to append perf row", "error", err)
			}
			lastLog = time.Now()
		}
	}

	stats := perf.Stats()
	stats.LogStats()
	if err := out.WritePerf(stats, int32(frames)); err != nil {
		slog.Warn("failed to append perf row", "error", err)
	}
	slog.Info("headless run complete", "frames", frames, "elapsed", time.Since(start).Round(time.Millisecond))
}

// runViewer opens the window and drives the interactive loop. Each frame
// rendezvouses with the simulation goroutine, then uploads the published
// mesh and draws surface, flotsam and HUD.
func runViewer(sea *ocean.Ocean, perf *telemetry.PerfCollector, out *telemetry.OutputManager, cfg *config.Config, frames int, logStats bool) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swell")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	water := renderer.NewWaterRenderer()
	water.Init(sea)
	defer water.Unload()

	span := cfg.Derived.SeaSpan32
	cam := camera.New(mgl32.Vec3{0, 0, 0}, span)

	field := flotsam.New(sea, flotsam.Params{
		Count:      cfg.Flotsam.Count,
		DriftSpeed: float32(cfg.Flotsam.DriftSpeed),
		Wind:       mgl32.Vec2{float32(cfg.Sea.Wind[0]), float32(cfg.Sea.Wind[1])},
		Span:       span,
		Seed:       cfg.Sim.Seed,
	})

	hud := ui.NewHUD()
	controls := ui.Controls{
		HeightScale:   float32(cfg.Sea.HeightScale),
		DisplaceScale: float32(cfg.Sea.DisplaceScale),
		TimeScale:     float32(cfg.Sim.TimeScale),
		ShowFlotsam:   cfg.Flotsam.Count > 0,
	}
	panelX := int32(cfg.Screen.Width) - 250
	panel := ui.NewControlPanel(panelX, 10, 240)
	perfPanel := ui.NewPerfPanel(panelX, 244, 240)

	clock := newSimClock(cfg.Sim.TimeScale)
	runner := ocean.NewRunner(sea, nil)
	if err := runner.Execute(clock.Now); err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer runner.Terminate()

	paused := false
	lastLog := time.Now()
	frame := 0

	for !rl.WindowShouldClose() {
		frame++
		perf.StartFrame()

		// Camera input
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			delta := rl.GetMouseDelta()
			cam.Rotate(delta.X*0.005, delta.Y*0.005)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.Dolly(1 - wheel*0.1)
		}
		panStep := span * rl.GetFrameTime() * 0.25
		if rl.IsKeyDown(rl.KeyW) {
			cam.Pan(0, panStep)
		}
		if rl.IsKeyDown(rl.KeyS) {
			cam.Pan(0, -panStep)
		}
		if rl.IsKeyDown(rl.KeyA) {
			cam.Pan(-panStep, 0)
		}
		if rl.IsKeyDown(rl.KeyD) {
			cam.Pan(panStep, 0)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			paused = !paused
			if paused {
				clock.SetScale(0)
			} else {
				clock.SetScale(float64(controls.TimeScale))
			}
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			panel.Toggle()
		}

		// Rendezvous: the fresh frame is published inside this call.
		runner.Wait()
		mergeStepTiming(perf, sea.LastStepTiming())

		simTime := clock.Now()

		perf.StartPhase(telemetry.PhaseQuery)
		if controls.ShowFlotsam && !paused {
			field.Update(simTime, rl.GetFrameTime())
		}

		perf.StartPhase(telemetry.PhaseUpload)
		water.Upload(sea)

		perf.StartPhase(telemetry.PhaseDraw)
		camPos := cam.Position()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 10, B: 16, A: 255})

		rlCam := rl.NewCamera3D(
			rl.NewVector3(camPos.X(), camPos.Y(), camPos.Z()),
			rl.NewVector3(cam.Target.X(), cam.Target.Y(), cam.Target.Z()),
			rl.NewVector3(0, 1, 0),
			55,
			rl.CameraPerspective,
		)
		rl.BeginMode3D(rlCam)
		water.Draw(sea, [3]float32{camPos.X(), camPos.Y(), camPos.Z()})
		if controls.ShowFlotsam {
			field.ForEach(func(p *flotsam.Position) {
				base := rl.NewVector3(p.X, p.Y, p.Z)
				tip := rl.NewVector3(p.X+p.Normal.X()*4, p.Y+p.Normal.Y()*4, p.Z+p.Normal.Z()*4)
				rl.DrawSphere(base, 1.2, rl.Color{R: 235, G: 130, B: 40, A: 255})
				rl.DrawLine3D(base, tip, rl.Color{R: 235, G: 130, B: 40, A: 255})
			})
		}
		rl.EndMode3D()

		flotsamCount := 0
		if controls.ShowFlotsam {
			flotsamCount = field.Count()
		}
		hud.Draw(ui.HUDData{
			Title:        "Swell",
			GridDim:      cfg.Sea.GridDimension,
			TileSpan:     cfg.Sea.MeterDimension,
			Tiles:        cfg.Sea.Expansion,
			WindX:        cfg.Sea.Wind[0],
			WindY:        cfg.Sea.Wind[1],
			SimTime:      simTime,
			TimeScale:    controls.TimeScale,
			FlotsamCount: flotsamCount,
			FPS:          rl.GetFPS(),
			Paused:       paused,
		})

		prevTimeScale := controls.TimeScale
		panel.Draw(&controls)
		if controls.TimeScale != prevTimeScale && !paused {
			clock.SetScale(float64(controls.TimeScale))
		}
		sea.SetHeightScale(float64(controls.HeightScale))
		sea.SetDisplaceScale(float64(controls.DisplaceScale))

		perfPanel.Draw(perf.Stats())
		hud.DrawControls(int32(cfg.Screen.Width), int32(cfg.Screen.Height),
			"right-drag orbit | wheel zoom | WASD pan | P pause | TAB panel")

		rl.EndDrawing()

		perf.EndFrame()
		perf.RecordFrame()

		if cfg.Telemetry.LogInterval > 0 && time.Since(lastLog).Seconds() >= cfg.Telemetry.LogInterval {
			stats := perf.Stats()
			if logStats {
				stats.LogStats()
			}
			if err := out.WritePerf(stats, int32(frame)); err != nil {
				slog.Warn("failed to append perf row", "error", err)
			}
			lastLog = time.Now()
		}

		if frames > 0 && frame >= frames {
			break
		}
	}
}

// simClock is a scaled monotonic clock. Changing the scale rebases it so
// simulated time never jumps.
type simClock struct {
	mu    sync.Mutex
	start time.Time
	base  float64
	scale float64
}

func newSimClock(scale float64) *simClock {
	return &simClock{start: time.Now(), scale: scale}
}

// Now reports elapsed simulated seconds.
func (c *simClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base + time.Since(c.start).Seconds()*c.scale
}

// SetScale changes playback speed from this moment on.
func (c *simClock) SetScale(scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	c.base += now.Sub(c.start).Seconds() * c.scale
	c.start = now
	c.scale = scale
}
