package ocean

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// testParams returns a small, fast sea state with a fixed seed.
func testParams() Params {
	return Params{
		GridDimension:  16,
		MeterDimension: 16,
		Expansion:      2,
		Amplitude:      0.0005,
		Gravity:        9.81,
		Wind:           mgl32.Vec2{16, 16},
		HeightScale:    1,
		DisplaceScale:  1,
		Seed:           42,
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		dim     int
		meter   float64
		wantErr string // "dimension", "spacing" or "" for success
	}{
		{"not a power of two", 100, 256, "dimension"},
		{"dimension one", 1, 256, "dimension"},
		{"spacing too fine", 256, 1, "spacing"},
		{"valid reference grid", 256, 256, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.GridDimension = tt.dim
			p.MeterDimension = tt.meter
			p.Seed = 42
			o, err := New(p)

			switch tt.wantErr {
			case "":
				if err != nil {
					t.Fatalf("New() error = %v, want nil", err)
				}
				if o.Stride() != tt.dim+1 {
					t.Errorf("Stride() = %d, want %d", o.Stride(), tt.dim+1)
				}
			case "dimension":
				var dimErr *GridDimensionError
				if !errors.As(err, &dimErr) {
					t.Fatalf("New() error = %v, want GridDimensionError", err)
				}
				if dimErr.Dim != tt.dim {
					t.Errorf("reported dimension %d, want %d", dimErr.Dim, tt.dim)
				}
			case "spacing":
				var spacingErr *GridSpacingError
				if !errors.As(err, &spacingErr) {
					t.Fatalf("New() error = %v, want GridSpacingError", err)
				}
				if spacingErr.Spacing >= minSpacing {
					t.Errorf("reported spacing %v, want < %v", spacingErr.Spacing, minSpacing)
				}
			}
		})
	}
}

func TestNewBuffersStartAtRest(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	stride := o.Stride()
	verts := o.VertexBuffer()
	if len(verts) != stride*stride {
		t.Fatalf("vertex buffer length = %d, want %d", len(verts), stride*stride)
	}
	for i, v := range verts {
		if v.Py != 0 {
			t.Fatalf("vertex %d starts at height %v, want 0", i, v.Py)
		}
		if v.Nx != 0 || v.Ny != 1 || v.Nz != 0 {
			t.Fatalf("vertex %d starts with normal (%v,%v,%v), want (0,1,0)", i, v.Nx, v.Ny, v.Nz)
		}
	}

	// The tile is centered: first and last columns mirror each other.
	half := float32(o.MeterDimension() / 2)
	if verts[0].Px != -half {
		t.Errorf("first vertex x = %v, want %v", verts[0].Px, -half)
	}
	if verts[stride-1].Px != half {
		t.Errorf("last column x = %v, want %v", verts[stride-1].Px, half)
	}
}

func TestBufferSizes(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	stride := o.Stride()
	if got, want := o.VertexBufferBytes(), stride*stride*24; got != want {
		t.Errorf("VertexBufferBytes() = %d, want %d", got, want)
	}
	if got, want := o.IndexCount(), 6*(stride-1)*(stride-1); got != want {
		t.Errorf("IndexCount() = %d, want %d", got, want)
	}
	if got, want := o.IndexBufferBytes(), o.IndexCount()*4; got != want {
		t.Errorf("IndexBufferBytes() = %d, want %d", got, want)
	}
	if got, want := o.InstanceCount(), 4; got != want {
		t.Errorf("InstanceCount() = %d, want %d", got, want)
	}
	if got, want := o.OffsetBufferBytes(), 4*8; got != want {
		t.Errorf("OffsetBufferBytes() = %d, want %d", got, want)
	}
}

func TestIndexBufferTopology(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	stride := uint32(o.Stride())
	indices := o.IndexBuffer()
	numVerts := stride * stride
	for i, idx := range indices {
		if idx >= numVerts {
			t.Fatalf("index %d out of range: %d >= %d", i, idx, numVerts)
		}
	}

	// No triangle may span the wrap seam: within each triangle the column
	// of every vertex stays within one step of the quad origin's column.
	for i := 0; i+2 < len(indices); i += 3 {
		c0 := indices[i] % stride
		for j := 1; j < 3; j++ {
			c := indices[i+j] % stride
			d := int(c) - int(c0)
			if d < -1 || d > 1 {
				t.Fatalf("triangle %d spans columns %d and %d", i/3, c0, c)
			}
		}
	}
}

func TestOffsetBufferLayout(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	meter := float32(o.MeterDimension())
	want := []TileOffset{
		{0, 0}, {meter, 0},
		{0, meter}, {meter, meter},
	}
	got := o.OffsetBuffer()
	if len(got) != len(want) {
		t.Fatalf("offset count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUpdatePeriodicity(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	const t0 = 1.3
	period := tau / baseFrequency

	o.Update(t0)
	first := make([]Vertex, len(o.write))
	copy(first, o.write)

	o.Update(t0 + period)
	maxDiff := 0.0
	for i, v := range o.write {
		for _, d := range []float64{
			float64(v.Px - first[i].Px),
			float64(v.Py - first[i].Py),
			float64(v.Pz - first[i].Pz),
			float64(v.Nx - first[i].Nx),
			float64(v.Ny - first[i].Ny),
			float64(v.Nz - first[i].Nz),
		} {
			if math.Abs(d) > maxDiff {
				maxDiff = math.Abs(d)
			}
		}
	}
	if maxDiff > 1e-6 {
		t.Errorf("fields %v apart after one full period, want <= 1e-6", maxDiff)
	}
}

func TestUpdateProducesWaves(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	o.Update(1.0)
	var peak float64
	for _, v := range o.write {
		if h := math.Abs(float64(v.Py)); h > peak {
			peak = h
		}
	}
	if peak == 0 {
		t.Error("surface stayed flat after Update")
	}
}

func TestSeamContinuity(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	o.Update(0.7)
	o.SwapBuffers()

	stride := o.Stride()
	meter := float32(o.MeterDimension())
	verts := o.VertexBuffer()

	for z := 0; z < stride-1; z++ {
		src := verts[z*stride]
		dst := verts[z*stride+stride-1]
		if dst.Px != src.Px+meter || dst.Py != src.Py || dst.Pz != src.Pz {
			t.Fatalf("row %d: last column (%v,%v,%v), want first column + (%v,0,0)",
				z, dst.Px, dst.Py, dst.Pz, meter)
		}
		if dst.Nx != src.Nx || dst.Ny != src.Ny || dst.Nz != src.Nz {
			t.Fatalf("row %d: seam normals differ", z)
		}
	}

	base := stride * (stride - 1)
	for x := 0; x < stride-1; x++ {
		src := verts[x]
		dst := verts[base+x]
		if dst.Px != src.Px || dst.Py != src.Py || dst.Pz != src.Pz+meter {
			t.Fatalf("column %d: last row (%v,%v,%v), want first row + (0,0,%v)",
				x, dst.Px, dst.Py, dst.Pz, meter)
		}
		if dst.Nx != src.Nx || dst.Ny != src.Ny || dst.Nz != src.Nz {
			t.Fatalf("column %d: seam normals differ", x)
		}
	}

	origin := verts[0]
	corner := verts[len(verts)-1]
	if corner.Px != origin.Px+meter || corner.Py != origin.Py || corner.Pz != origin.Pz+meter {
		t.Errorf("corner (%v,%v,%v), want origin + (%v,0,%v)",
			corner.Px, corner.Py, corner.Pz, meter, meter)
	}
	if corner.Nx != origin.Nx || corner.Ny != origin.Ny || corner.Nz != origin.Nz {
		t.Errorf("corner normal differs from origin normal")
	}
}

func TestZeroWavenumberExclusion(t *testing.T) {
	winds := []mgl32.Vec2{{16, 16}, {64, 0}, {0, 31}}
	amplitudes := []float64{0.00005, 0.05}

	for _, wind := range winds {
		for _, amp := range amplitudes {
			p := testParams()
			p.Wind = wind
			p.Amplitude = amp
			if got := phillips(p, 0, 0); got != 0 {
				t.Errorf("phillips(0,0) = %v for wind %v amplitude %v, want 0", got, wind, amp)
			}

			o, err := New(p)
			if err != nil {
				t.Fatal(err)
			}
			dim := p.GridDimension
			dc := (dim/2)*dim + dim/2
			if o.field.cells[dc].mag >= epsilon {
				t.Fatalf("cell %d is not the DC cell", dc)
			}
			o.field.evolve(2.1, o.fields)
			if o.fields.height[dc] != 0 {
				t.Errorf("DC height = %v, want 0", o.fields.height[dc])
			}
			if o.fields.dispX[dc] != 0 || o.fields.dispZ[dc] != 0 {
				t.Errorf("DC displacement = (%v,%v), want (0,0)",
					o.fields.dispX[dc], o.fields.dispZ[dc])
			}
		}
	}
}

func TestSwapBuffers(t *testing.T) {
	o, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	before := &o.VertexBuffer()[0]
	o.write[0].Py = 42
	o.SwapBuffers()

	if &o.VertexBuffer()[0] == before {
		t.Fatal("SwapBuffers did not exchange buffers")
	}
	if o.VertexBuffer()[0].Py != 42 {
		t.Errorf("published buffer lost the written frame")
	}

	o.SwapBuffers()
	if &o.VertexBuffer()[0] != before {
		t.Error("second swap did not restore the first buffer")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	a.Update(3.7)
	b.Update(3.7)
	for i := range a.write {
		if a.write[i] != b.write[i] {
			t.Fatalf("vertex %d differs between identically seeded oceans", i)
		}
	}
}
