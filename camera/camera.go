// Package camera provides an orbit camera for the 3D viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point on the water surface. Yaw sweeps around the
// vertical axis, pitch tilts between the horizon and straight down, and
// distance dollies along the view ray. It carries no window state; the
// renderer converts it to the graphics API's camera each frame.
type Camera struct {
	// Target is the point the camera orbits, in world coordinates
	Target mgl32.Vec3

	// Orbit angles in radians
	Yaw, Pitch float32

	// Distance from the target in meters
	Distance float32

	// Orbit constraints
	MinPitch, MaxPitch       float32
	MinDistance, MaxDistance float32
}

// New creates a camera looking down at the target from a comfortable angle.
// span is the side length of the viewed area; it sets the dolly range.
func New(target mgl32.Vec3, span float32) *Camera {
	return &Camera{
		Target:      target,
		Yaw:         -math.Pi / 4,
		Pitch:       0.5,
		Distance:    span * 0.75,
		MinPitch:    0.05,
		MaxPitch:    math.Pi/2 - 0.05,
		MinDistance: span * 0.05,
		MaxDistance: span * 3,
	}
}

// Position returns the camera's world position for the current orbit state.
func (c *Camera) Position() mgl32.Vec3 {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)
	return mgl32.Vec3{
		c.Target.X() + c.Distance*cp*cy,
		c.Target.Y() + c.Distance*sp,
		c.Target.Z() + c.Distance*cp*sy,
	}
}

// Rotate adjusts the orbit angles, clamping pitch away from the pole and
// the horizon.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// Dolly scales the orbit distance, clamped to the configured range.
func (c *Camera) Dolly(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Pan slides the target across the surface plane, perpendicular to and
// along the current view heading.
func (c *Camera) Pan(dRight, dForward float32) {
	sy, cy := sincos(c.Yaw)
	// View heading projected onto the plane points from the camera to the
	// target.
	fx, fz := -cy, -sy
	rx, rz := -sy, cy
	c.Target = mgl32.Vec3{
		c.Target.X() + dRight*rx + dForward*fx,
		c.Target.Y(),
		c.Target.Z() + dRight*rz + dForward*fz,
	}
}

func sincos(a float32) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
