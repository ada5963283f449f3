// Surface snapshot tool - renders one frame of the ocean to a PNG file.
//
// Usage: go run ./cmd/swellsnap -t 12.5 -out surface.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/camera"
	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/ocean"
	"github.com/pthm-cable/swell/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "surface.png", "Output PNG path")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	simTime := flag.Float64("t", 10, "Simulation time of the rendered frame in seconds")
	seed := flag.Int64("seed", 0, "Spectrum seed override (0 = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	sea, err := ocean.New(ocean.Params{
		GridDimension:  cfg.Sea.GridDimension,
		MeterDimension: cfg.Sea.MeterDimension,
		Expansion:      cfg.Sea.Expansion,
		Amplitude:      cfg.Sea.Amplitude,
		Gravity:        cfg.Sea.Gravity,
		Wind:           mgl32.Vec2{float32(cfg.Sea.Wind[0]), float32(cfg.Sea.Wind[1])},
		HeightScale:    cfg.Sea.HeightScale,
		DisplaceScale:  cfg.Sea.DisplaceScale,
		Seed:           cfg.Sim.Seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build ocean: %v\n", err)
		os.Exit(1)
	}
	defer sea.Close()

	if cfg.Sim.IntensityMap != "" {
		m, err := ocean.LoadIntensityMap(cfg.Sim.IntensityMap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load intensity map %s: %v\n", cfg.Sim.IntensityMap, err)
			os.Exit(1)
		}
		sea.UseIntensityMap(m)
	}

	// A hidden window still provides the GL context for offscreen rendering.
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Swell Snapshot")
	defer rl.CloseWindow()

	water := renderer.NewWaterRenderer()
	water.Init(sea)
	defer water.Unload()

	sea.Update(*simTime)
	sea.SwapBuffers()
	water.Upload(sea)

	cam := camera.New(mgl32.Vec3{0, 0, 0}, cfg.Derived.SeaSpan32)
	pos := cam.Position()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rlCam := rl.NewCamera3D(
		rl.NewVector3(pos.X(), pos.Y(), pos.Z()),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		55,
		rl.CameraPerspective,
	)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 16, A: 255})
	rl.BeginMode3D(rlCam)
	water.Draw(sea, [3]float32{pos.X(), pos.Y(), pos.Z()})
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Surface rendered to: %s (%dx%d at t=%.1fs)\n", *outPath, *width, *height, *simTime)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
