// Package renderer draws the simulated sea with raylib.
package renderer

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swell/ocean"
)

// WaterRenderer owns one dynamic GPU mesh for the water tile and redraws it
// at every tile offset. The engine's indexed vertex buffer is expanded into
// flat triangles on upload, which keeps the mesh within the graphics API's
// 16-bit index reach at any grid size.
type WaterRenderer struct {
	mesh     rl.Mesh
	material rl.Material
	shader   rl.Shader

	cameraPosLoc int32

	// Flat triangle storage, refilled from the published vertex buffer
	// every frame. Referenced by the mesh for as long as it lives.
	positions []float32
	normals   []float32

	initialized bool
}

// NewWaterRenderer creates a water renderer for the given surface topology.
func NewWaterRenderer() *WaterRenderer {
	return &WaterRenderer{}
}

// Init uploads the mesh and loads the water shader (must be called after
// the raylib window is created).
func (w *WaterRenderer) Init(o *ocean.Ocean) {
	if w.initialized {
		return
	}

	n := o.IndexCount()
	w.positions = make([]float32, n*3)
	w.normals = make([]float32, n*3)
	w.fill(o)

	w.mesh = rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(n / 3),
	}
	w.mesh.Vertices = &w.positions[0]
	w.mesh.Normals = &w.normals[0]
	rl.UploadMesh(&w.mesh, true)

	w.shader = rl.LoadShader("shaders/water.vs", "shaders/water.fs")
	w.cameraPosLoc = rl.GetShaderLocation(w.shader, "cameraPos")

	// Set static uniforms
	set3 := func(name string, v [3]float32) {
		rl.SetShaderValue(w.shader, rl.GetShaderLocation(w.shader, name), v[:], rl.ShaderUniformVec3)
	}
	set3("waterColor", [3]float32{0.0, 0.5, 1.0})
	set3("ambientColor", [3]float32{0.160, 0.909, 0.960})
	set3("diffuseColor", [3]float32{0.160, 0.909, 0.960})
	set3("specularColor", [3]float32{1.0, 1.0, 1.0})
	set3("lightDirection", [3]float32{-0.375, -0.857, -0.375})
	setf := func(name string, v float32) {
		rl.SetShaderValue(w.shader, rl.GetShaderLocation(w.shader, name), []float32{v}, rl.ShaderUniformFloat)
	}
	setf("ambientFactor", 0.2)
	setf("specularFactor", 1.0)
	setf("specularExponent", 20)

	w.material = rl.LoadMaterialDefault()
	w.material.Shader = w.shader

	w.initialized = true
}

// Upload pushes the published vertex buffer to the GPU mesh.
func (w *WaterRenderer) Upload(o *ocean.Ocean) {
	w.fill(o)
	// raylib vertex buffer slots: 0 positions, 2 normals
	rl.UpdateMeshBuffer(w.mesh, 0, floatBytes(w.positions), 0)
	rl.UpdateMeshBuffer(w.mesh, 2, floatBytes(w.normals), 0)
}

// fill expands the indexed vertices into flat triangles.
func (w *WaterRenderer) fill(o *ocean.Ocean) {
	verts := o.VertexBuffer()
	i := 0
	for _, idx := range o.IndexBuffer() {
		v := &verts[idx]
		w.positions[i] = v.Px
		w.positions[i+1] = v.Py
		w.positions[i+2] = v.Pz
		w.normals[i] = v.Nx
		w.normals[i+1] = v.Ny
		w.normals[i+2] = v.Nz
		i += 3
	}
}

// Draw renders every tile instance. Call inside BeginMode3D.
func (w *WaterRenderer) Draw(o *ocean.Ocean, cameraPos [3]float32) {
	rl.SetShaderValue(w.shader, w.cameraPosLoc, cameraPos[:], rl.ShaderUniformVec3)
	for _, off := range o.OffsetBuffer() {
		rl.DrawMesh(w.mesh, w.material, rl.MatrixTranslate(off.X, 0, off.Z))
	}
}

// Unload frees resources.
func (w *WaterRenderer) Unload() {
	if w.initialized {
		rl.UnloadMesh(&w.mesh)
		rl.UnloadShader(w.shader)
		w.initialized = false
	}
}

// floatBytes reinterprets a float32 slice as raw bytes for buffer uploads.
func floatBytes(s []float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}
