package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 0}, 400)

	if cam.Distance != 300 {
		t.Errorf("expected distance 300, got %f", cam.Distance)
	}
	if cam.MinDistance != 20 || cam.MaxDistance != 1200 {
		t.Errorf("expected dolly range (20, 1200), got (%f, %f)", cam.MinDistance, cam.MaxDistance)
	}
}

func TestPositionStaysOnOrbitSphere(t *testing.T) {
	cam := New(mgl32.Vec3{10, 0, -5}, 400)

	for _, yaw := range []float32{0, 1, 2.5, -3} {
		cam.Yaw = yaw
		pos := cam.Position()
		dist := pos.Sub(cam.Target).Len()
		if math.Abs(float64(dist-cam.Distance)) > 0.01 {
			t.Errorf("yaw %f: orbit radius %f, want %f", yaw, dist, cam.Distance)
		}
	}
}

func TestPositionAboveTarget(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 0}, 400)
	cam.Pitch = math.Pi/2 - 0.05 // clamped top of range

	pos := cam.Position()
	if pos.Y() <= 0 {
		t.Errorf("expected camera above the surface, got y=%f", pos.Y())
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 0}, 400)

	cam.Rotate(0, -10) // Far below horizon
	if cam.Pitch != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.Pitch)
	}

	cam.Rotate(0, 10) // Far past the pole
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
}

func TestDollyClamps(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 0}, 400)

	cam.Dolly(0.001) // Far inside min range
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.Dolly(100000) // Far outside max range
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestPanKeepsHeight(t *testing.T) {
	cam := New(mgl32.Vec3{0, 3, 0}, 400)

	cam.Pan(25, -10)

	if cam.Target.Y() != 3 {
		t.Errorf("expected pan to keep target height 3, got %f", cam.Target.Y())
	}
	if cam.Target.X() == 0 && cam.Target.Z() == 0 {
		t.Error("expected pan to move the target")
	}
}

func TestPanFollowsHeading(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 0}, 400)
	cam.Yaw = math.Pi // camera east of target, forward = +x

	cam.Pan(0, 10)

	if cam.Target.X() < 9.9 {
		t.Errorf("expected forward pan along +x, got target x=%f", cam.Target.X())
	}
	if math.Abs(float64(cam.Target.Z())) > 0.01 {
		t.Errorf("expected no sideways drift, got target z=%f", cam.Target.Z())
	}
}
