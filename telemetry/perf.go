package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulated frame. The first four run on the simulation
// goroutine, the rest on the render side.
const (
	PhaseEvolve    = "evolve"
	PhaseTransform = "transform"
	PhaseAssemble  = "assemble"
	PhaseStitch    = "stitch"
	PhaseUpload    = "upload"
	PhaseDraw      = "draw"
	PhaseQuery     = "query"
)

// PhaseOrder lists phases in pipeline order for display and export.
var PhaseOrder = []string{
	PhaseEvolve,
	PhaseTransform,
	PhaseAssemble,
	PhaseStitch,
	PhaseUpload,
	PhaseDraw,
	PhaseQuery,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameWork time.Duration
	Phases    map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock frame pacing
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase on the caller's goroutine.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// AddPhase merges an externally timed duration into the current frame. The
// simulation goroutine times its own phases; the render side folds them in
// here after the rendezvous.
func (p *PerfCollector) AddPhase(phase string, d time.Duration) {
	p.currentPhases[phase] += d
}

// EndFrame finishes timing the current frame and records the sample. The
// recorded frame work is the phase sum, not wall time, so simulation work
// that overlapped the draw still counts.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	var work time.Duration
	for _, d := range p.currentPhases {
		work += d
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameWork: work,
		Phases:    p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records wall-clock frame pacing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Per-frame work
	AvgFrameWork time.Duration
	MinFrameWork time.Duration
	MaxFrameWork time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame work
	PhasePct map[string]float64

	// Throughput
	FramesPerSecond float64

	// Wall-clock pacing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	// Pacing is always available (independent of frame samples)
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var totalWork time.Duration
	var minWork, maxWork time.Duration
	phaseSum := make(map[string]time.Duration)

	// Iterate over valid samples
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalWork += s.FrameWork

		if i == 0 || s.FrameWork < minWork {
			minWork = s.FrameWork
		}
		if s.FrameWork > maxWork {
			maxWork = s.FrameWork
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgWork := totalWork / time.Duration(p.sampleCount)

	// Calculate phase averages and percentages
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgWork > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgWork) * 100
		}
	}

	// Calculate throughput
	var framesPerSec float64
	if avgWork > 0 {
		framesPerSec = float64(time.Second) / float64(avgWork)
	}

	return PerfStats{
		AvgFrameWork:    avgWork,
		MinFrameWork:    minWork,
		MaxFrameWork:    maxWork,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		FramesPerSecond: framesPerSec,
		FrameDuration:   p.frameDuration,
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameWork.Microseconds(),
		"min_frame_us", s.MinFrameWork.Microseconds(),
		"max_frame_us", s.MaxFrameWork.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range PhaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameWork.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameWork.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameWork.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FramesPerSec float64 `csv:"frames_per_sec"`
	FPS          float64 `csv:"fps"`
	EvolvePct    float64 `csv:"evolve_pct"`
	TransformPct float64 `csv:"transform_pct"`
	AssemblePct  float64 `csv:"assemble_pct"`
	StitchPct    float64 `csv:"stitch_pct"`
	UploadPct    float64 `csv:"upload_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	QueryPct     float64 `csv:"query_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrameWork.Microseconds(),
		MinFrameUS:   s.MinFrameWork.Microseconds(),
		MaxFrameUS:   s.MaxFrameWork.Microseconds(),
		FramesPerSec: s.FramesPerSecond,
		FPS:          s.FPS,
		EvolvePct:    s.PhasePct[PhaseEvolve],
		TransformPct: s.PhasePct[PhaseTransform],
		AssemblePct:  s.PhasePct[PhaseAssemble],
		StitchPct:    s.PhasePct[PhaseStitch],
		UploadPct:    s.PhasePct[PhaseUpload],
		DrawPct:      s.PhasePct[PhaseDraw],
		QueryPct:     s.PhasePct[PhaseQuery],
	}
}
