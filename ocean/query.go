package ocean

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// meshPosition addresses one interpolation cell of the published mesh: the
// top-left vertex index plus fractional offsets across the cell.
//
//	a---b
//	| / |    xt runs over x, zt over z
//	c---d
type meshPosition struct {
	index int
	xt    float64
	zt    float64
}

// locationToMeshPosition maps a continuous world location onto the vertex
// grid with wraparound on [0, stride-1) per axis, so locations beyond the
// tile land on its periodic image. The mapping treats one grid unit as one
// meter and ignores horizontal displacement, so results are approximate
// whenever DisplaceScale is nonzero.
func (o *Ocean) locationToMeshPosition(loc mgl32.Vec2) meshPosition {
	xf := float64(loc[0]) + float64(o.stride)/2
	zf := float64(loc[1]) + float64(o.stride)/2
	max := float64(o.stride - 1)
	if xf >= max {
		xf -= math.Floor(xf/max) * max
	}
	for xf < 0 {
		xf += max
	}
	if zf >= max {
		zf -= math.Floor(zf/max) * max
	}
	for zf < 0 {
		zf += max
	}
	xi := int(xf)
	zi := int(zf)
	return meshPosition{
		index: zi*o.stride + xi,
		xt:    xf - float64(xi),
		zt:    zf - float64(zi),
	}
}

// HeightAtLocation samples the published surface height at a world location
// by bilinear interpolation.
func (o *Ocean) HeightAtLocation(loc mgl32.Vec2) float32 {
	return o.heightAt(o.locationToMeshPosition(loc))
}

// HeightNormalAtLocation samples height and normal at a world location. The
// normal is renormalized after interpolation. The time argument exists for
// interface parity with direct wave evaluation; sampling always reflects
// the most recently published frame.
func (o *Ocean) HeightNormalAtLocation(loc mgl32.Vec2, t float64) (float32, mgl32.Vec3) {
	mp := o.locationToMeshPosition(loc)
	return o.heightAt(mp), o.normalAt(mp)
}

func (o *Ocean) heightAt(mp meshPosition) float32 {
	read := o.read
	a := float64(read[mp.index].Py)
	b := float64(read[mp.index+1].Py)
	c := float64(read[mp.index+o.stride].Py)
	d := float64(read[mp.index+o.stride+1].Py)
	return float32(quadLerp(a, b, c, d, mp.xt, mp.zt))
}

func (o *Ocean) normalAt(mp meshPosition) mgl32.Vec3 {
	read := o.read
	a := read[mp.index]
	b := read[mp.index+1]
	c := read[mp.index+o.stride]
	d := read[mp.index+o.stride+1]
	xt := float32(mp.xt)
	zt := float32(mp.zt)
	na := mgl32.Vec3{a.Nx, a.Ny, a.Nz}
	nb := mgl32.Vec3{b.Nx, b.Ny, b.Nz}
	nc := mgl32.Vec3{c.Nx, c.Ny, c.Nz}
	nd := mgl32.Vec3{d.Nx, d.Ny, d.Nz}
	nab := na.Add(nb.Sub(na).Mul(xt))
	ncd := nc.Add(nd.Sub(nc).Mul(xt))
	return nab.Add(ncd.Sub(nab).Mul(zt)).Normalize()
}

// quadLerp interpolates inside a quad: a to b across the top, c to d across
// the bottom, then between the two by zt.
func quadLerp(a, b, c, d, xt, zt float64) float64 {
	ab := a + (b-a)*xt
	cd := c + (d-c)*xt
	return ab + (cd-ab)*zt
}
