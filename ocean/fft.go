package ocean

// plan2D runs unnormalized forward 2D complex DFTs over a fixed power-of-two
// grid: a row pass followed by a column pass, each chunked across the
// transform worker pool.
//
// Buffers are row-major [z][x] complex128. The synthesis step fills them in
// that same layout, so nothing is converted at this boundary.
type plan2D struct {
	pool *transformPool
}

func newPlan2D(n int) *plan2D {
	return &plan2D{pool: newTransformPool(n)}
}

// Transform replaces buf with its 2D DFT.
func (p *plan2D) Transform(buf []complex128) {
	p.pool.pass(buf, false)
	p.pool.pass(buf, true)
}

// stop joins the pool's workers. The plan must be idle.
func (p *plan2D) stop() { p.pool.stopWorkers() }

// fieldBuffers holds the five frequency-domain fields the synthesis step
// fills and transforms each frame: height, the two normal slopes and the two
// horizontal displacements.
type fieldBuffers struct {
	height []complex128
	slopeX []complex128
	slopeZ []complex128
	dispX  []complex128
	dispZ  []complex128
}

func newFieldBuffers(cells int) *fieldBuffers {
	return &fieldBuffers{
		height: make([]complex128, cells),
		slopeX: make([]complex128, cells),
		slopeZ: make([]complex128, cells),
		dispX:  make([]complex128, cells),
		dispZ:  make([]complex128, cells),
	}
}

// transformAll synthesizes all five fields into the spatial domain.
func (b *fieldBuffers) transformAll(p *plan2D) {
	p.Transform(b.height)
	p.Transform(b.slopeX)
	p.Transform(b.slopeZ)
	p.Transform(b.dispX)
	p.Transform(b.dispZ)
}
