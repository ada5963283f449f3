// Package ui draws the viewer's HUD: status lines, the tuning sliders and
// the frame-timing panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	BarBg       rl.Color
	BarFill     rl.Color
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	BarHeight   int32
	FontSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 12, G: 22, B: 34, A: 235},
		PanelBorder: rl.Color{R: 50, G: 80, B: 110, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		BarBg:       rl.Color{R: 30, G: 40, B: 50, A: 255},
		BarFill:     rl.Color{R: 70, G: 150, B: 210, A: 255},
		Padding:     10,
		LineHeight:  16,
		LabelWidth:  90,
		BarHeight:   12,
		FontSize:    12,
	}
}
