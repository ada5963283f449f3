// Package main benchmarks ocean surface synthesis across grid sizes and
// writes one timing row per size to CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/ocean"
	"github.com/pthm-cable/swell/telemetry"
)

// BenchRow is one grid size's aggregate timing.
type BenchRow struct {
	GridDimension int     `csv:"grid_dimension"`
	Frames        int     `csv:"frames"`
	AvgStepUS     int64   `csv:"avg_step_us"`
	MinStepUS     int64   `csv:"min_step_us"`
	MaxStepUS     int64   `csv:"max_step_us"`
	EvolvePct     float64 `csv:"evolve_pct"`
	TransformPct  float64 `csv:"transform_pct"`
	AssemblePct   float64 `csv:"assemble_pct"`
	StitchPct     float64 `csv:"stitch_pct"`
	StepsPerSec   float64 `csv:"steps_per_sec"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML (empty = use defaults)")
	frames := flag.Int("frames", 120, "Timed frames per grid size")
	sizes := flag.String("sizes", "64,128,256", "Comma-separated grid sizes")
	seed := flag.Int64("seed", 42, "Spectrum seed (fixed so runs compare)")
	outPath := flag.String("out", "", "CSV output path (empty = stdout)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	dims, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("bad -sizes: %v", err)
	}

	rows := make([]BenchRow, 0, len(dims))
	for _, dim := range dims {
		row, err := benchSize(cfg, dim, *frames, *seed)
		if err != nil {
			log.Fatalf("grid %d: %v", dim, err)
		}
		fmt.Printf("grid %4d: avg %s/step, %.1f steps/s (transform %.0f%%)\n",
			dim, time.Duration(row.AvgStepUS)*time.Microsecond, row.StepsPerSec, row.TransformPct)
		rows = append(rows, row)
	}

	if *outPath == "" {
		if err := gocsv.Marshal(rows, os.Stdout); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
		return
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *outPath, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// benchSize times simulation steps at one grid size, driven by a fixed
// 60 Hz step clock so runs are reproducible.
func benchSize(cfg *config.Config, dim, frames int, seed int64) (BenchRow, error) {
	p := ocean.Params{
		GridDimension:  dim,
		MeterDimension: cfg.Sea.MeterDimension,
		Expansion:      cfg.Sea.Expansion,
		Amplitude:      cfg.Sea.Amplitude,
		Gravity:        cfg.Sea.Gravity,
		Wind:           mgl32.Vec2{float32(cfg.Sea.Wind[0]), float32(cfg.Sea.Wind[1])},
		HeightScale:    cfg.Sea.HeightScale,
		DisplaceScale:  cfg.Sea.DisplaceScale,
		Seed:           seed,
	}
	sea, err := ocean.New(p)
	if err != nil {
		return BenchRow{}, err
	}
	defer sea.Close()

	const dt = 1.0 / 60

	// Warmup steps settle allocations before timing starts.
	for i := 0; i < 3; i++ {
		sea.Update(float64(i) * dt)
		sea.SwapBuffers()
	}

	perf := telemetry.NewPerfCollector(frames)
	start := time.Now()
	for i := 0; i < frames; i++ {
		perf.StartFrame()
		sea.Update(float64(i) * dt)
		sea.SwapBuffers()
		timing := sea.LastStepTiming()
		perf.AddPhase(telemetry.PhaseEvolve, timing.Evolve)
		perf.AddPhase(telemetry.PhaseTransform, timing.Transform)
		perf.AddPhase(telemetry.PhaseAssemble, timing.Assemble)
		perf.AddPhase(telemetry.PhaseStitch, timing.Stitch)
		perf.EndFrame()
		perf.RecordFrame()
	}
	elapsed := time.Since(start)

	stats := perf.Stats()
	return BenchRow{
		GridDimension: dim,
		Frames:        frames,
		AvgStepUS:     stats.AvgFrameWork.Microseconds(),
		MinStepUS:     stats.MinFrameWork.Microseconds(),
		MaxStepUS:     stats.MaxFrameWork.Microseconds(),
		EvolvePct:     stats.PhasePct[telemetry.PhaseEvolve],
		TransformPct:  stats.PhasePct[telemetry.PhaseTransform],
		AssemblePct:   stats.PhasePct[telemetry.PhaseAssemble],
		StitchPct:     stats.PhasePct[telemetry.PhaseStitch],
		StepsPerSec:   float64(frames) / elapsed.Seconds(),
	}, nil
}

// parseSizes splits a comma list of grid sizes.
func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	dims := make([]int, 0, len(parts))
	for _, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", part, err)
		}
		dims = append(dims, dim)
	}
	return dims, nil
}
