package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controls holds the viewer settings adjustable from the HUD. The scale
// values are applied to the running simulation every frame; the flotsam
// toggle stays on the render side.
type Controls struct {
	HeightScale   float32
	DisplaceScale float32
	TimeScale     float32
	ShowFlotsam   bool
}

// ControlPanel renders the sea tuning sliders.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (p *ControlPanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *ControlPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *ControlPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the sliders and the flotsam toggle, writing adjusted values
// back into c. It returns the Y position below the panel.
func (p *ControlPanel) Draw(c *Controls) int32 {
	if !p.visible {
		return p.y
	}

	r := p.renderer
	padding := float32(r.Theme.Padding)

	panelHeight := int32(24 + 3*46 + 40 + int(padding)*2)
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	panelX := float32(p.x) + padding
	panelY := float32(p.y) + padding
	sliderWidth := float32(p.width) - padding*2 - 50

	rl.DrawText("Sea Tuning", int32(panelX), int32(panelY), 16, rl.White)
	panelY += 24

	// Wave height slider
	rl.DrawText("Wave height", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	c.HeightScale = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
		"0", "4",
		c.HeightScale, 0, 4,
	)
	rl.DrawText(fmt.Sprintf("%.2f", c.HeightScale), int32(panelX+sliderWidth+8), int32(panelY+2), 16, rl.RayWhite)
	panelY += 28

	// Crest sharpness slider
	rl.DrawText("Crest sharpness", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	c.DisplaceScale = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
		"0", "4",
		c.DisplaceScale, 0, 4,
	)
	rl.DrawText(fmt.Sprintf("%.2f", c.DisplaceScale), int32(panelX+sliderWidth+8), int32(panelY+2), 16, rl.RayWhite)
	panelY += 28

	// Time scale slider
	rl.DrawText("Time scale", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	c.TimeScale = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
		"0", "8",
		c.TimeScale, 0, 8,
	)
	rl.DrawText(fmt.Sprintf("%.2f", c.TimeScale), int32(panelX+sliderWidth+8), int32(panelY+2), 16, rl.RayWhite)
	panelY += 28

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(c.ShowFlotsam, "Hide Flotsam", "Show Flotsam")) {
		c.ShowFlotsam = !c.ShowFlotsam
	}
	panelY += 40

	return int32(panelY)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
