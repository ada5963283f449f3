package ocean

import "github.com/go-gl/mathgl/mgl32"

// Params configures an Ocean. The wave parameters fix the statistical sea
// state for the lifetime of the spectral field; changing them means building
// a new Ocean. HeightScale and DisplaceScale are only starting values and
// stay adjustable on a live Ocean.
type Params struct {
	// GridDimension is the simulated grid resolution per axis. It must be a
	// power of two, at least 2. The full vertex mesh carries one extra
	// duplicated row and column for seamless tiling.
	GridDimension int
	// MeterDimension is the physical tile size in meters, shared by both
	// axes.
	MeterDimension float64
	// Expansion is the number of tile instances laid edge to edge per axis.
	Expansion int

	// Amplitude scales the wave spectrum. It is a spectrum constant, not a
	// wave height.
	Amplitude float64
	// Gravity in m/s².
	Gravity float64
	// Wind carries direction and speed in a single vector.
	Wind mgl32.Vec2

	// HeightScale exaggerates wave height vertically. Must be nonzero; the
	// paired normal correction divides by it.
	HeightScale float64
	// DisplaceScale sharpens crests by shifting vertices horizontally.
	// Zero disables choppiness entirely.
	DisplaceScale float64

	// Seed selects the random stream for the initial amplitudes. Zero seeds
	// from the wall clock.
	Seed int64
}

// DefaultParams returns the reference sea state: a 256m tile on a 256-cell
// grid, tiled 5x5, under a stiff diagonal wind.
func DefaultParams() Params {
	return Params{
		GridDimension:  256,
		MeterDimension: 256,
		Expansion:      5,
		Amplitude:      0.00005,
		Gravity:        9.81,
		Wind:           mgl32.Vec2{64, 64},
		HeightScale:    1,
		DisplaceScale:  1,
	}
}
