package ocean

import (
	"math"
	"testing"
)

func TestNewIntensityMapValidation(t *testing.T) {
	if _, err := NewIntensityMap(make([]uint8, 6), 3, 2); err != nil {
		t.Errorf("NewIntensityMap(6 samples, 3x2) error = %v, want nil", err)
	}
	if _, err := NewIntensityMap(make([]uint8, 5), 3, 2); err == nil {
		t.Error("NewIntensityMap(5 samples, 3x2) succeeded, want error")
	}
	if _, err := NewIntensityMap(nil, 0, 0); err == nil {
		t.Error("NewIntensityMap(empty) succeeded, want error")
	}
}

func TestIntensitySampleConstant(t *testing.T) {
	samples := make([]uint8, 16)
	for i := range samples {
		samples[i] = 255
	}
	m, err := NewIntensityMap(samples, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	coords := [][2]float64{{0, 0}, {0.5, 0.5}, {1, 1}, {0.99, 0.01}, {-0.5, 2}}
	for _, c := range coords {
		if got := m.Sample(c[0], c[1]); got != 1 {
			t.Errorf("Sample(%v, %v) = %v, want 1", c[0], c[1], got)
		}
	}
}

func TestIntensitySampleGradient(t *testing.T) {
	// 2x2 map: left column black, right column white.
	m, err := NewIntensityMap([]uint8{0, 255, 0, 255}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		u, v float64
		want float64
	}{
		{0, 0, 0},         // texel (0,0)
		{0.5, 0, 1},       // u*width = 1: texel (1,0)
		{0.25, 0.25, 0.5}, // halfway between the columns
	}
	for _, tt := range tests {
		if got := m.Sample(tt.u, tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestIntensitySampleClampsEdges(t *testing.T) {
	m, err := NewIntensityMap([]uint8{10, 20, 30, 40}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Coordinates at or past 1.0 pin to the last texel instead of wrapping.
	if got, want := m.Sample(1, 1), 40.0/255; math.Abs(got-want) > 1e-9 {
		t.Errorf("Sample(1,1) = %v, want %v", got, want)
	}
	if got, want := m.Sample(5, -3), 20.0/255; math.Abs(got-want) > 1e-9 {
		t.Errorf("Sample(5,-3) = %v, want %v", got, want)
	}
}

func TestUseIntensityMapScalesHeights(t *testing.T) {
	plain, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	samples := make([]uint8, 4)
	for i := range samples {
		samples[i] = 51 // 0.2 in normalized terms
	}
	m, err := NewIntensityMap(samples, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	scaled.UseIntensityMap(m)

	plain.Update(2.5)
	scaled.Update(2.5)

	factor := 51.0 / 255
	stride := plain.Stride()
	for z := 0; z < stride-1; z++ {
		for x := 0; x < stride-1; x++ {
			i := z*stride + x
			want := float64(plain.write[i].Py) * factor
			got := float64(scaled.write[i].Py)
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("vertex %d height = %v, want %v (plain * %v)", i, got, want, factor)
			}
			wantNy := float64(plain.write[i].Ny) / factor
			if math.Abs(float64(scaled.write[i].Ny)-wantNy) > 1e-4 {
				t.Fatalf("vertex %d normal y = %v, want %v", i, scaled.write[i].Ny, wantNy)
			}
		}
	}
}

func TestZeroIntensityClampsToEpsilon(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewIntensityMap(make([]uint8, 4), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	o.UseIntensityMap(m)

	o.Update(2.5)
	for i, v := range o.write {
		if math.IsInf(float64(v.Ny), 0) || math.IsNaN(float64(v.Ny)) {
			t.Fatalf("vertex %d normal y = %v with zero intensity, want finite", i, v.Ny)
		}
	}
}

func TestRemoveIntensityMap(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	if o.RemoveIntensityMap() {
		t.Error("RemoveIntensityMap() = true on a fresh ocean, want false")
	}

	m, err := NewIntensityMap(make([]uint8, 4), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	o.UseIntensityMap(m)
	if !o.RemoveIntensityMap() {
		t.Error("RemoveIntensityMap() = false after attaching, want true")
	}
	if o.RemoveIntensityMap() {
		t.Error("RemoveIntensityMap() = true after removal, want false")
	}
}
