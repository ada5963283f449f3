package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/swell/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	GridDim      int
	TileSpan     float64
	Tiles        int
	WindX        float64
	WindY        float64
	SimTime      float64
	TimeScale    float32
	FlotsamCount int
	FPS          int32
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Surface geometry
	rl.DrawText(
		fmt.Sprintf("Grid: %dx%d | Tile: %.0fm | Tiles: %dx%d",
			data.GridDim, data.GridDim, data.TileSpan, data.Tiles, data.Tiles),
		10, 35, 16, rl.LightGray,
	)

	// Sea state
	rl.DrawText(
		fmt.Sprintf("Wind: (%.0f, %.0f) | T: %.1fs | Speed: %.2fx | FPS: %d",
			data.WindX, data.WindY, data.SimTime, data.TimeScale, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	if data.FlotsamCount > 0 {
		statusText = fmt.Sprintf("%s | Flotsam: %d", statusText, data.FlotsamCount)
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new frame timing panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the rolling-window timing breakdown.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding

	panelHeight := padding*2 + 20 + 16 + int32(len(telemetry.PhaseOrder))*14 + r.Theme.LineHeight + 4
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := p.y + padding

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Work: %s | %.0f steps/s", stats.AvgFrameWork.Round(time.Microsecond), stats.FramesPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range telemetry.PhaseOrder {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	// Share of a 60 Hz frame the measured work fills.
	budget := float32(stats.AvgFrameWork) / float32(time.Second/60)
	r.DrawBar(x, y+2, "budget", budget, p.width-padding*2)
}
