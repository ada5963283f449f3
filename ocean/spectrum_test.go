package ocean

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPhillipsWindAlignment(t *testing.T) {
	p := testParams()
	p.Wind = mgl32.Vec2{10, 0}

	if got := phillips(p, 0, 0.5); got != 0 {
		t.Errorf("crosswind density = %g, want 0", got)
	}
	if got := phillips(p, 0.5, 0); got <= 0 {
		t.Errorf("downwind density = %g, want > 0", got)
	}
}

func TestPhillipsSymmetricUnderNegation(t *testing.T) {
	p := testParams()
	kx, kz := 0.3, 0.7
	if a, b := phillips(p, kx, kz), phillips(p, -kx, -kz); a != b {
		t.Errorf("density not symmetric: P(k) = %g, P(-k) = %g", a, b)
	}
}

func TestDispersionQuantized(t *testing.T) {
	const g = 9.81
	for _, mag := range []float64{0, 0.1, 0.7, 1.3, 12.345} {
		omega := dispersion(g, mag)
		steps := omega / baseFrequency
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			t.Errorf("dispersion(%g) = %g is not a multiple of the base frequency", mag, omega)
		}
		raw := math.Sqrt(g * mag)
		if omega > raw || raw-omega >= baseFrequency {
			t.Errorf("dispersion(%g) = %g, want the largest multiple at or below %g", mag, omega, raw)
		}
	}
}

func TestDispersionZeroAtRest(t *testing.T) {
	if got := dispersion(9.81, 0); got != 0 {
		t.Errorf("dispersion(0) = %g, want 0", got)
	}
}

func TestNormalComplexMoments(t *testing.T) {
	const n = 100000
	rng := rand.New(rand.NewSource(42))

	var sumRe, sumIm, sumRe2, sumIm2 float64
	for i := 0; i < n; i++ {
		c := normalComplex(rng)
		re, im := real(c), imag(c)
		sumRe += re
		sumIm += im
		sumRe2 += re * re
		sumIm2 += im * im
	}

	meanRe := sumRe / n
	meanIm := sumIm / n
	if math.Abs(meanRe) > 0.05 || math.Abs(meanIm) > 0.05 {
		t.Errorf("sample mean = (%g, %g), want near zero", meanRe, meanIm)
	}
	varRe := sumRe2/n - meanRe*meanRe
	varIm := sumIm2/n - meanIm*meanIm
	if varRe < 0.9 || varRe > 1.1 || varIm < 0.9 || varIm > 1.1 {
		t.Errorf("sample variance = (%g, %g), want near one", varRe, varIm)
	}
}
