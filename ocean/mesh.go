package ocean

// Vertex is one point of the simulated surface: interleaved position and
// normal, float32, matching the layout a GPU vertex buffer wants. Normals
// are stored unnormalized; shading and the query path normalize them.
type Vertex struct {
	Px, Py, Pz float32
	Nx, Ny, Nz float32
}

// TileOffset translates one drawn instance of the tile in the XZ plane.
type TileOffset struct {
	X, Z float32
}

const (
	vertexBytes    = 6 * 4
	offsetBytes    = 2 * 4
	indexBytes     = 4
	indicesPerQuad = 6
)

// restingVertices builds a flat stride x stride vertex grid centered on the
// origin, with up normals. Both swap buffers start from this state, so a
// consumer reading before the first published frame sees still water.
func restingVertices(gridDimension int, meter float64) []Vertex {
	stride := gridDimension + 1
	fft := float64(gridDimension)
	verts := make([]Vertex, stride*stride)
	i := 0
	for z := 0; z < stride; z++ {
		m := float64(z) - fft/2
		pz := float32(meter * m / fft)
		for x := 0; x < stride; x++ {
			n := float64(x) - fft/2
			verts[i] = Vertex{
				Px: float32(meter * n / fft),
				Pz: pz,
				Ny: 1,
			}
			i++
		}
	}
	return verts
}

// surfaceIndices builds the static triangle list over the stride x stride
// vertex grid, two triangles per quad. Vertices on the duplicated last
// column never start a quad, hence the extra skip at each row end.
func surfaceIndices(stride int) []uint32 {
	s := uint32(stride)
	limit := s * (s - 1)
	indices := make([]uint32, 0, indicesPerQuad*(stride-1)*(stride-1))
	for i := uint32(0); i < limit; {
		indices = append(indices, i, i+1, i+s)
		i++
		indices = append(indices, i, i+s, i+s-1)
		if (i+1)%s == 0 {
			i++
		}
	}
	return indices
}

// tileOffsets lays expansion² tile instances out in a square, row-major
// from the simulated tile at the origin.
func tileOffsets(expansion int, meter float64) []TileOffset {
	offsets := make([]TileOffset, expansion*expansion)
	for i := range offsets {
		offsets[i] = TileOffset{
			X: float32(float64(i%expansion) * meter),
			Z: float32(float64(i/expansion) * meter),
		}
	}
	return offsets
}
