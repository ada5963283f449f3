package ocean

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// queryOcean returns an ocean whose published heights the test controls
// directly. stride is 9, so vertex (xi, zi) sits at world
// (xi - 4.5, zi - 4.5).
func queryOcean(t *testing.T) *Ocean {
	t.Helper()
	p := testParams()
	p.GridDimension = 8
	p.MeterDimension = 8
	o, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestHeightAtVertexIsExact(t *testing.T) {
	o := queryOcean(t)
	half := float64(o.Stride()) / 2

	xi, zi := 3, 2
	o.read[zi*o.Stride()+xi].Py = 7.25

	loc := mgl32.Vec2{float32(float64(xi) - half), float32(float64(zi) - half)}
	if got := o.HeightAtLocation(loc); got != 7.25 {
		t.Errorf("HeightAtLocation(%v) = %v, want exactly 7.25", loc, got)
	}
}

func TestHeightAtCellMidpoint(t *testing.T) {
	o := queryOcean(t)
	stride := o.Stride()
	half := float64(stride) / 2

	// Quad with top-left at (3, 2): heights 0, 2 over 4, 6.
	o.read[2*stride+3].Py = 0
	o.read[2*stride+4].Py = 2
	o.read[3*stride+3].Py = 4
	o.read[3*stride+4].Py = 6

	loc := mgl32.Vec2{float32(3.5 - half), float32(2.5 - half)}
	if got := o.HeightAtLocation(loc); got != 3.0 {
		t.Errorf("HeightAtLocation(midpoint) = %v, want 3.0", got)
	}
}

func TestLocationWraparound(t *testing.T) {
	o := queryOcean(t)
	period := float32(o.Stride() - 1)

	locs := []mgl32.Vec2{
		{0, 0},
		{-1.5, -2.5},
		{1.25, 3.75},
	}
	for _, loc := range locs {
		base := o.locationToMeshPosition(loc)
		ahead := o.locationToMeshPosition(mgl32.Vec2{loc[0] + period, loc[1] + period})
		behind := o.locationToMeshPosition(mgl32.Vec2{loc[0] - period, loc[1] - period})

		if ahead.index != base.index || behind.index != base.index {
			t.Errorf("location %v: indices %d/%d/%d across periods, want all equal",
				loc, behind.index, base.index, ahead.index)
		}
		if math.Abs(ahead.xt-base.xt) > 1e-9 || math.Abs(ahead.zt-base.zt) > 1e-9 {
			t.Errorf("location %v: offsets drift across periods", loc)
		}
	}
}

func TestLocationMaxIndexFoldsToZero(t *testing.T) {
	o := queryOcean(t)
	half := float64(o.Stride()) / 2
	max := float64(o.Stride() - 1)

	// The duplicated last column lives at index stride-1; querying exactly
	// there folds to the first column.
	loc := mgl32.Vec2{float32(max - half), float32(max - half)}
	mp := o.locationToMeshPosition(loc)
	if mp.index != 0 || mp.xt != 0 || mp.zt != 0 {
		t.Errorf("max-index location maps to index %d (xt=%v, zt=%v), want origin cell",
			mp.index, mp.xt, mp.zt)
	}
}

func TestNormalInterpolationRenormalizes(t *testing.T) {
	o := queryOcean(t)
	stride := o.Stride()
	half := float64(stride) / 2

	// All four corner normals are scaled copies of (3,4,0); interpolation
	// plus renormalization must land on the unit version.
	for _, idx := range []int{2*stride + 3, 2*stride + 4, 3*stride + 3, 3*stride + 4} {
		o.read[idx].Nx = 6
		o.read[idx].Ny = 8
		o.read[idx].Nz = 0
	}

	loc := mgl32.Vec2{float32(3.5 - half), float32(2.5 - half)}
	_, normal := o.HeightNormalAtLocation(loc, 0)

	want := mgl32.Vec3{0.6, 0.8, 0}
	if math.Abs(float64(normal[0]-want[0])) > 1e-6 ||
		math.Abs(float64(normal[1]-want[1])) > 1e-6 ||
		math.Abs(float64(normal[2]-want[2])) > 1e-6 {
		t.Errorf("normal = %v, want %v", normal, want)
	}
	length := math.Sqrt(float64(normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2]))
	if math.Abs(length-1) > 1e-6 {
		t.Errorf("normal length = %v, want 1", length)
	}
}

func TestQueryReadsPublishedBufferOnly(t *testing.T) {
	o := queryOcean(t)

	o.Update(1.0)
	if got := o.HeightAtLocation(mgl32.Vec2{0.25, 0.25}); got != 0 {
		t.Errorf("query before swap = %v, want 0 (unpublished frame)", got)
	}

	o.SwapBuffers()
	published := o.HeightAtLocation(mgl32.Vec2{0.25, 0.25})

	// A further Update touches only the write buffer; the published answer
	// must hold steady until the next swap.
	o.Update(9.0)
	if again := o.HeightAtLocation(mgl32.Vec2{0.25, 0.25}); again != published {
		t.Errorf("published frame changed from %v to %v without a swap", published, again)
	}
}
