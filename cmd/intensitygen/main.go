// Package main generates greyscale intensity maps from layered Perlin
// noise, for the viewer's -intensity flag.
//
// Usage: go run ./cmd/intensitygen -out calm_patches.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/pthm-cable/swell/noise"
)

func main() {
	size := flag.Int("size", 256, "Image width and height in pixels")
	seed := flag.Int64("seed", 12345, "Noise seed")
	scale := flag.Float64("scale", 3.0, "Base noise frequency across the image")
	octaves := flag.Int("octaves", 4, "FBM detail level")
	lacunarity := flag.Float64("lacunarity", 2.0, "Frequency multiplier per octave")
	gain := flag.Float64("gain", 0.5, "Amplitude multiplier per octave")
	contrast := flag.Float64("contrast", 1.5, "Exponent shaping (higher = larger calm patches)")
	outPath := flag.String("out", "intensity.png", "Output PNG path")
	flag.Parse()

	p := noise.NewPerlin(*seed)
	img := image.NewGray(image.Rect(0, 0, *size, *size))

	for y := 0; y < *size; y++ {
		fy := (float64(y) + 0.5) / float64(*size) * *scale
		for x := 0; x < *size; x++ {
			fx := (float64(x) + 0.5) / float64(*size) * *scale

			v := p.FBM2D(fx, fy, *octaves, *lacunarity, *gain)
			// Signed FBM to [0, 1], then contrast shaping.
			v = math.Pow(clamp01((v+1)/2), *contrast)
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *outPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("failed to encode PNG: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d, seed %d)\n", *outPath, *size, *size, *seed)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
