package ocean

import (
	"math"
	"math/cmplx"
	"math/rand"
)

const (
	tau = 2 * math.Pi

	// epsilon bounds the wavenumber magnitude treated as the DC term.
	// Cells under it carry no spectral energy and no displacement.
	epsilon = 1e-4

	// baseFrequency quantizes the dispersion relation. Every wave frequency
	// is a whole multiple of it, so the entire field repeats exactly every
	// tau/baseFrequency seconds.
	baseFrequency = tau / 200

	// damping suppresses wavelengths far below the largest-wave scale.
	damping = 0.001
)

// spectralCell holds everything about one wavenumber that never changes
// after construction.
type spectralCell struct {
	h0     complex128 // initial amplitude for k
	h0Conj complex128 // conjugated initial amplitude for -k
	kx, kz float64
	mag    float64 // |k|
	omega  float64 // quantized dispersion frequency
	x0, z0 float64 // undisplaced vertex position
}

// spectralField is the stationary sea state: one cell per transform grid
// point, drawn once and only read afterwards.
type spectralField struct {
	fftStride int
	cells     []spectralCell
}

// newSpectralField draws the initial amplitude pair for every wavenumber on
// the fftStride x fftStride grid and precomputes the per-cell constants the
// evolution step needs.
func newSpectralField(p Params, rng *rand.Rand) *spectralField {
	dim := p.GridDimension
	half := float64(dim) / 2
	f := &spectralField{
		fftStride: dim,
		cells:     make([]spectralCell, dim*dim),
	}
	i := 0
	for z := 0; z < dim; z++ {
		m := float64(z) - half
		kz := tau * m / p.MeterDimension
		for x := 0; x < dim; x++ {
			n := float64(x) - half
			kx := tau * n / p.MeterDimension
			c := &f.cells[i]
			c.kx = kx
			c.kz = kz
			c.mag = math.Hypot(kx, kz)
			c.omega = dispersion(p.Gravity, c.mag)
			c.x0 = p.MeterDimension * n / float64(dim)
			c.z0 = p.MeterDimension * m / float64(dim)
			c.h0 = initialAmplitude(p, kx, kz, rng)
			c.h0Conj = cmplx.Conj(initialAmplitude(p, -kx, -kz, rng))
			i++
		}
	}
	return f
}

// evolve fills the five frequency-domain fields for simulation time t.
// Height is h0(k)e^{iwt} + conj(h0(-k))e^{-iwt}; slopes and displacements
// derive from it without further randomness.
func (f *spectralField) evolve(t float64, b *fieldBuffers) {
	for i := range f.cells {
		c := &f.cells[i]
		sin, cos := math.Sincos(c.omega * t)
		h := c.h0*complex(cos, sin) + c.h0Conj*complex(cos, -sin)
		b.height[i] = h
		b.slopeX[i] = h * complex(0, c.kx)
		b.slopeZ[i] = h * complex(0, c.kz)
		if c.mag < epsilon {
			b.dispX[i] = 0
			b.dispZ[i] = 0
		} else {
			b.dispX[i] = h * complex(0, -c.kx/c.mag)
			b.dispZ[i] = h * complex(0, -c.kz/c.mag)
		}
	}
}

// dispersion maps wavenumber magnitude to angular frequency, rounded down to
// a whole multiple of baseFrequency so all phases realign once per period.
func dispersion(gravity, mag float64) float64 {
	return math.Floor(math.Sqrt(gravity*mag)/baseFrequency) * baseFrequency
}

// initialAmplitude draws h0 for one wavenumber: a complex Gaussian sample
// scaled by the spectrum density.
func initialAmplitude(p Params, kx, kz float64, rng *rand.Rand) complex128 {
	return normalComplex(rng) * complex(math.Sqrt(phillips(p, kx, kz)/2), 0)
}

// phillips evaluates the Phillips spectrum density at wavenumber (kx, kz).
// The density is zero at the DC term, peaks along the wind direction at the
// largest-wave scale L = windSpeed²/gravity, and is damped for wavelengths
// far below L.
func phillips(p Params, kx, kz float64) float64 {
	mag := math.Hypot(kx, kz)
	if mag < epsilon {
		return 0
	}
	windX := float64(p.Wind[0])
	windZ := float64(p.Wind[1])
	windSpeed := math.Hypot(windX, windZ)
	largestWave := windSpeed * windSpeed / p.Gravity
	l2 := largestWave * largestWave
	mag2 := mag * mag
	kDotWind := (kx*windX + kz*windZ) / (mag * windSpeed)
	smallWave2 := l2 * damping * damping
	return p.Amplitude *
		math.Exp(-1/(mag2*l2)) / (mag2 * mag2) *
		kDotWind * kDotWind *
		math.Exp(-mag2*smallWave2)
}

// normalComplex returns a complex number whose parts are independent
// standard normal samples, via the polar Box-Muller method: uniform draws on
// the square are rejected until they land inside the unit disk.
func normalComplex(rng *rand.Rand) complex128 {
	var u, v, w float64
	for {
		u = 2*rng.Float64() - 1
		v = 2*rng.Float64() - 1
		w = u*u + v*v
		if w < 1 {
			break
		}
	}
	w = math.Sqrt(-2 * math.Log(w) / w)
	return complex(u*w, v*w)
}
