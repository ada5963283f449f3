// Package ocean synthesizes a tiling deep-water surface from a statistical
// wave spectrum, after Tessendorf's FFT formulation. A one-time spectral
// field drives per-frame synthesis of height, slope and displacement grids;
// the results land in a double-buffered vertex mesh whose duplicated edges
// are stitched for seamless tiling. A background Runner decouples the
// simulation from its consumer, and a bilinear query API reports height and
// normal at arbitrary world locations.
package ocean

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"
)

// Ocean owns one simulated water tile: the stationary spectral field, the
// transform plan, both vertex buffers and the static index/offset topology.
// One goroutine at a time may run Update; one consumer at a time may read
// the published buffer and the query API. The Runner upholds that split.
type Ocean struct {
	params    Params
	stride    int
	fftStride int

	field  *spectralField
	fields *fieldBuffers
	plan   *plan2D

	bufA  []Vertex
	bufB  []Vertex
	read  []Vertex
	write []Vertex

	indices []uint32
	offsets []TileOffset

	heightScale   atomicFloat
	displaceScale atomicFloat
	imap          atomic.Pointer[IntensityMap]

	timing StepTiming
}

// StepTiming splits one Update into its phase durations.
type StepTiming struct {
	Evolve    time.Duration
	Transform time.Duration
	Assemble  time.Duration
	Stitch    time.Duration
}

// New validates the grid and builds a ready Ocean: spectral field drawn,
// transform plan created, both vertex buffers at rest. The first Update
// writes a frame; SwapBuffers publishes it.
func New(p Params) (*Ocean, error) {
	dim := p.GridDimension
	if dim < 2 || dim&(dim-1) != 0 {
		return nil, &GridDimensionError{Dim: dim}
	}
	stride := dim + 1
	spacing := p.MeterDimension / float64(stride)
	if spacing < minSpacing {
		return nil, &GridSpacingError{Spacing: spacing}
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	o := &Ocean{
		params:    p,
		stride:    stride,
		fftStride: dim,
		field:     newSpectralField(p, rng),
		fields:    newFieldBuffers(dim * dim),
		plan:      newPlan2D(dim),
		bufA:      restingVertices(dim, p.MeterDimension),
		bufB:      restingVertices(dim, p.MeterDimension),
		indices:   surfaceIndices(stride),
		offsets:   tileOffsets(p.Expansion, p.MeterDimension),
	}
	o.read = o.bufA
	o.write = o.bufB
	o.heightScale.Store(p.HeightScale)
	o.displaceScale.Store(p.DisplaceScale)
	return o, nil
}

// Update synthesizes the surface at simulation time t into the write buffer.
// The read buffer is untouched until SwapBuffers publishes the new frame.
func (o *Ocean) Update(t float64) {
	start := time.Now()
	o.field.evolve(t, o.fields)
	evolved := time.Now()
	o.fields.transformAll(o.plan)
	transformed := time.Now()
	o.assemble()
	assembled := time.Now()
	o.stitchSeams()
	o.timing = StepTiming{
		Evolve:    evolved.Sub(start),
		Transform: transformed.Sub(evolved),
		Assemble:  assembled.Sub(transformed),
		Stitch:    time.Since(assembled),
	}
}

// SwapBuffers exchanges the read and write roles without copying. Under a
// Runner this happens inside the rendezvous; single-threaded callers pair it
// with Update themselves.
func (o *Ocean) SwapBuffers() {
	o.read, o.write = o.write, o.read
}

// Close joins the transform workers. The ocean must be idle; a Runner
// driving it must be terminated first. Queries on the published buffer stay
// valid afterwards, but Update must not be called again.
func (o *Ocean) Close() {
	o.plan.stop()
}

// assemble converts the transformed fields into write-buffer vertices. The
// alternating (-1)^(x+z) sign undoes the centered-spectrum shift in the
// transform output. Vertex normals carry the inverse of the height scaling
// so shading matches the displayed amplitude; they stay unnormalized here.
func (o *Ocean) assemble() {
	hs := o.heightScale.Load()
	ds := o.displaceScale.Load()
	imap := o.imap.Load()
	fft := o.fftStride
	fftF := float64(fft)
	write := o.write

	vi := 0
	ci := 0
	sign := 1.0
	for z := 0; z < fft; z++ {
		for x := 0; x < fft; x++ {
			cell := &o.field.cells[ci]
			height := real(o.fields.height[ci]) * sign
			slopeX := real(o.fields.slopeX[ci]) * sign
			slopeZ := real(o.fields.slopeZ[ci]) * sign
			dispX := real(o.fields.dispX[ci]) * sign
			dispZ := real(o.fields.dispZ[ci]) * sign

			posYFactor := hs
			normalYFactor := 1 / hs
			if imap != nil {
				intensity := imap.Sample(float64(x)/fftF, float64(z)/fftF)
				if intensity == 0 {
					intensity = epsilon
				}
				posYFactor *= intensity
				normalYFactor /= intensity
			}

			v := &write[vi]
			v.Px = float32(cell.x0 + ds*dispX)
			v.Py = float32(height * posYFactor)
			v.Pz = float32(cell.z0 + ds*dispZ)
			v.Nx = float32(-slopeX)
			v.Ny = float32(normalYFactor)
			v.Nz = float32(-slopeZ)

			vi++
			ci++
			sign = -sign
		}
		// The vertex grid is one column wider than the transform grid.
		vi++
		sign = -sign
	}
}

// stitchSeams fills the duplicated last column, last row and corner from
// their source edges, offset by the tile length, so neighboring instances
// abut exactly. Positions and normals both carry over.
func (o *Ocean) stitchSeams() {
	stride := o.stride
	meter := float32(o.params.MeterDimension)
	write := o.write

	for z := 0; z < stride-1; z++ {
		src := write[z*stride]
		src.Px += meter
		write[z*stride+stride-1] = src
	}
	base := stride * (stride - 1)
	for x := 0; x < stride-1; x++ {
		src := write[x]
		src.Pz += meter
		write[base+x] = src
	}
	corner := write[0]
	corner.Px += meter
	corner.Pz += meter
	write[len(write)-1] = corner
}

// VertexBuffer returns the published vertex buffer. The slice stays stable
// until the next SwapBuffers.
func (o *Ocean) VertexBuffer() []Vertex { return o.read }

// VertexBufferBytes reports the published buffer's size in bytes.
func (o *Ocean) VertexBufferBytes() int { return len(o.read) * vertexBytes }

// IndexBuffer returns the static triangle list shared by every frame.
func (o *Ocean) IndexBuffer() []uint32 { return o.indices }

// IndexBufferBytes reports the index buffer's size in bytes.
func (o *Ocean) IndexBufferBytes() int { return len(o.indices) * indexBytes }

// IndexCount reports how many indices one tile draws.
func (o *Ocean) IndexCount() int { return len(o.indices) }

// OffsetBuffer returns the per-instance tile translations.
func (o *Ocean) OffsetBuffer() []TileOffset { return o.offsets }

// OffsetBufferBytes reports the offset buffer's size in bytes.
func (o *Ocean) OffsetBufferBytes() int { return len(o.offsets) * offsetBytes }

// InstanceCount reports how many tile instances the offset buffer places.
func (o *Ocean) InstanceCount() int { return len(o.offsets) }

// Stride is the vertex grid dimension per axis, including the duplicated
// wrap row and column.
func (o *Ocean) Stride() int { return o.stride }

// MeterDimension is the physical tile size per axis.
func (o *Ocean) MeterDimension() float64 { return o.params.MeterDimension }

// LastStepTiming reports the phase durations of the most recent Update.
// Under a Runner, read it between rendezvous.
func (o *Ocean) LastStepTiming() StepTiming { return o.timing }

// HeightScale reports the current vertical exaggeration.
func (o *Ocean) HeightScale() float64 { return o.heightScale.Load() }

// SetHeightScale adjusts vertical exaggeration, effective next step. It can
// be called while the simulation runs.
func (o *Ocean) SetHeightScale(v float64) { o.heightScale.Store(v) }

// DisplaceScale reports the current crest sharpening factor.
func (o *Ocean) DisplaceScale() float64 { return o.displaceScale.Load() }

// SetDisplaceScale adjusts crest sharpening, effective next step.
func (o *Ocean) SetDisplaceScale(v float64) { o.displaceScale.Store(v) }

// UseIntensityMap attaches m, replacing any current map. The next simulated
// step samples it.
func (o *Ocean) UseIntensityMap(m *IntensityMap) { o.imap.Store(m) }

// RemoveIntensityMap detaches the current map and reports whether one was
// attached.
func (o *Ocean) RemoveIntensityMap() bool { return o.imap.Swap(nil) != nil }

// atomicFloat is a float64 readable from the simulation goroutine while the
// consumer stores new values.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }

func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
