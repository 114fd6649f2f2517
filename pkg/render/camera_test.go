package render

import (
	"math"
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

func TestSetFOVDegreesConvertsToRadians(t *testing.T) {
	cam := NewCamera()
	cam.SetFOVDegrees(90)
	if math.Abs(cam.FOV-math.Pi/2) > 1e-9 {
		t.Errorf("SetFOVDegrees(90) should set FOV to pi/2 radians, got %v", cam.FOV)
	}
}

func TestViewMatrixCachesUntilDirty(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(1, 2, 3))
	first := cam.ViewMatrix()

	second := cam.ViewMatrix()
	if first != second {
		t.Error("ViewMatrix should return a cached, identical result when nothing has changed")
	}

	cam.SetPosition(math3d.V3(4, 5, 6))
	third := cam.ViewMatrix()
	if third == first {
		t.Error("ViewMatrix should recompute after SetPosition marks the view dirty")
	}
}

func TestWorldToScreenProjectsOriginToCenter(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.V3(0, 0, 0))
	cam.SetFOV(math.Pi / 3)
	cam.SetAspectRatio(1.0)
	cam.SetClipPlanes(0.1, 100)

	x, y, _, visible := cam.WorldToScreen(math3d.V3(0, 0, 0), 100, 100)
	if !visible {
		t.Fatal("origin should be visible from a camera looking straight at it")
	}
	if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("origin should project to the screen center, got (%v, %v)", x, y)
	}
}

func TestWorldToScreenBehindCameraNotVisible(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.V3(0, 0, 0))

	_, _, _, visible := cam.WorldToScreen(math3d.V3(0, 0, 20), 100, 100)
	if visible {
		t.Error("a point behind the camera should not be visible")
	}
}
