package ocean

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// IntensityMap spatially attenuates wave amplitude: a single-channel sample
// grid addressed by normalized [0,1]² coordinates with bilinear filtering.
// Maps are immutable once built and safe to share.
type IntensityMap struct {
	width   int
	height  int
	samples []uint8
}

// NewIntensityMap wraps raw single-channel samples in row-major order.
func NewIntensityMap(samples []uint8, width, height int) (*IntensityMap, error) {
	if width < 1 || height < 1 || len(samples) != width*height {
		return nil, fmt.Errorf("ocean: intensity map wants %d samples for %dx%d, got %d",
			width*height, width, height, len(samples))
	}
	return &IntensityMap{width: width, height: height, samples: samples}, nil
}

// IntensityMapFromImage converts an image to greyscale samples.
func IntensityMapFromImage(img image.Image) *IntensityMap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	samples := make([]uint8, w*h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return &IntensityMap{width: w, height: h, samples: samples}
}

// LoadIntensityMap reads a PNG or JPEG file into an intensity map.
func LoadIntensityMap(path string) (*IntensityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ocean: open intensity map: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ocean: decode intensity map %s: %w", path, err)
	}
	return IntensityMapFromImage(img), nil
}

// Width reports the sample grid width.
func (m *IntensityMap) Width() int { return m.width }

// Height reports the sample grid height.
func (m *IntensityMap) Height() int { return m.height }

// Sample bilinearly interpolates the map at normalized (u, v). Texel
// indices clamp to the map edges; there is no wraparound.
func (m *IntensityMap) Sample(u, v float64) float64 {
	xf := clamp(u*float64(m.width), 0, float64(m.width-1))
	yf := clamp(v*float64(m.height), 0, float64(m.height-1))
	x0 := int(xf)
	y0 := int(yf)
	x1 := min(x0+1, m.width-1)
	y1 := min(y0+1, m.height-1)
	xt := xf - float64(x0)
	yt := yf - float64(y0)
	a := float64(m.samples[y0*m.width+x0]) / 255
	b := float64(m.samples[y0*m.width+x1]) / 255
	c := float64(m.samples[y1*m.width+x0]) / 255
	d := float64(m.samples[y1*m.width+x1]) / 255
	return quadLerp(a, b, c, d, xt, yt)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
