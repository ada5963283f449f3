// Package flotsam drifts marker buoys across the water surface. It is a
// demo consumer of the surface query API: buoys carry no physics of their
// own, they ride downwind at a fixed speed and snap their pose to the
// sampled surface every update.
package flotsam

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swell/ocean"
)

// Position is a buoy's world position. X and Z advance with drift; Y and
// Normal are resampled from the surface every update.
type Position struct {
	X, Y, Z float32
	Normal  mgl32.Vec3
}

// Drift is a buoy's horizontal velocity in meters per second.
type Drift struct {
	VX, VZ float32
}

// Params configures a buoy field.
type Params struct {
	// Count is the number of buoys.
	Count int
	// DriftSpeed is the downwind speed in meters per second.
	DriftSpeed float32
	// Wind sets the drift direction. Only the direction matters here; the
	// speed comes from DriftSpeed.
	Wind mgl32.Vec2
	// Span is the side length of the wrapped drift area, centered on the
	// origin. Zero means one tile of the given ocean.
	Span float32
	// Seed selects the random stream for placement. Zero seeds from the
	// wall clock.
	Seed int64
}

// Field owns the buoy entities over one ocean surface.
type Field struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Drift]
	filter *ecs.Filter2[Position, Drift]
	sea    *ocean.Ocean
	half   float32
	count  int
}

// New scatters p.Count buoys uniformly over the drift area. Each buoy gets
// its own downwind speed near p.DriftSpeed plus a little sideways set, so
// the field spreads out instead of marching in lockstep.
func New(sea *ocean.Ocean, p Params) *Field {
	if p.Span <= 0 {
		p.Span = float32(sea.MeterDimension())
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	world := ecs.NewWorld()
	f := &Field{
		world:  world,
		mapper: ecs.NewMap2[Position, Drift](world),
		filter: ecs.NewFilter2[Position, Drift](world),
		sea:    sea,
		half:   p.Span / 2,
		count:  p.Count,
	}

	dir := p.Wind
	if dir.Len() == 0 {
		dir = mgl32.Vec2{1, 0}
	}
	dir = dir.Normalize()
	perp := mgl32.Vec2{-dir.Y(), dir.X()}

	for i := 0; i < p.Count; i++ {
		pos := Position{
			X:      (rng.Float32() - 0.5) * p.Span,
			Z:      (rng.Float32() - 0.5) * p.Span,
			Normal: mgl32.Vec3{0, 1, 0},
		}
		speed := p.DriftSpeed * (0.6 + 0.8*rng.Float32())
		side := p.DriftSpeed * 0.3 * (rng.Float32() - 0.5)
		drift := Drift{
			VX: dir.X()*speed + perp.X()*side,
			VZ: dir.Y()*speed + perp.Y()*side,
		}
		f.mapper.NewEntity(&pos, &drift)
	}
	return f
}

// Count returns the number of buoys.
func (f *Field) Count() int { return f.count }

// Update advances every buoy by dt seconds and snaps its pose to the
// surface published for simulation time t.
func (f *Field) Update(t float64, dt float32) {
	query := f.filter.Query()
	for query.Next() {
		pos, drift := query.Get()

		pos.X = wrap(pos.X+drift.VX*dt, f.half)
		pos.Z = wrap(pos.Z+drift.VZ*dt, f.half)

		h, n := f.sea.HeightNormalAtLocation(mgl32.Vec2{pos.X, pos.Z}, t)
		pos.Y = h
		pos.Normal = n
	}
}

// ForEach calls fn with every buoy's position. The pointer is only valid
// during the call.
func (f *Field) ForEach(fn func(p *Position)) {
	query := f.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		fn(pos)
	}
}

// wrap folds v into [-half, half).
func wrap(v, half float32) float32 {
	for v >= half {
		v -= 2 * half
	}
	for v < -half {
		v += 2 * half
	}
	return v
}
