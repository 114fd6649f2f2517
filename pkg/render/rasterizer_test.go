package render

import (
	"math"
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

func quadMesh() *models.Mesh {
	mesh := models.NewMesh("quad")
	mesh.Material = models.DefaultMaterial("quad")
	mesh.Material.DiffuseTexture = models.NewSolidTexture(4, math3d.V3(1, 1, 1))

	a := models.Vertex{Position: math3d.V3(-1, -1, 0), Normal: math3d.V3(0, 0, 1)}
	b := models.Vertex{Position: math3d.V3(1, -1, 0), Normal: math3d.V3(0, 0, 1)}
	c := models.Vertex{Position: math3d.V3(1, 1, 0), Normal: math3d.V3(0, 0, 1)}
	d := models.Vertex{Position: math3d.V3(-1, 1, 0), Normal: math3d.V3(0, 0, 1)}

	// Wound so FaceNormal() points toward +Z, facing the camera at z=5.
	mesh.Triangles = []models.Triangle{
		{V: [3]models.Vertex{a, b, c}},
		{V: [3]models.Vertex{a, c, d}},
	}
	return mesh
}

func testCamera(w, h int) *Camera {
	cam := NewCamera()
	cam.SetAspectRatio(float64(w) / float64(h))
	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.V3(0, 0, 0))
	return cam
}

func TestDrawMeshFillsInteriorPixels(t *testing.T) {
	w, h := 40, 40
	cam := testCamera(w, h)
	light := Light{Position: math3d.V3(0, 0, 5), Color: math3d.V3(1, 1, 1), Brightness: 1, Radius: 20}
	r := NewRasterizer(cam, []Light{light}, math3d.V3(0, 0, 0))

	f := NewFrame(w, h)
	r.DrawMesh(f, quadMesh(), math3d.Identity())

	center := f.Glyph[h/2*w+w/2]
	if center != BlockGlyph {
		t.Errorf("center pixel should be filled with the block glyph, got %q", center)
	}

	corner := f.Glyph[0]
	if corner != ' ' {
		t.Errorf("far corner pixel outside the quad's projection should stay blank, got %q", corner)
	}
}

func TestDrawMeshCullsBackFacingTriangle(t *testing.T) {
	w, h := 20, 20
	cam := testCamera(w, h)
	r := NewRasterizer(cam, nil, math3d.V3(0, 0, 0))

	mesh := quadMesh()
	// Reverse winding so the quad faces away from the camera.
	for i := range mesh.Triangles {
		mesh.Triangles[i].V[1], mesh.Triangles[i].V[2] = mesh.Triangles[i].V[2], mesh.Triangles[i].V[1]
	}

	f := NewFrame(w, h)
	r.DrawMesh(f, mesh, math3d.Identity())

	for i, g := range f.Glyph {
		if g != ' ' {
			t.Fatalf("back-facing quad should be fully culled, pixel %d got %q", i, g)
		}
	}
}

func TestDrawMeshNearerTriangleWinsDepthTest(t *testing.T) {
	w, h := 20, 20
	cam := testCamera(w, h)
	r := NewRasterizer(cam, nil, math3d.V3(0, 0, 0))

	near := quadMesh()
	near.Material.DiffuseTexture = models.NewSolidTexture(2, math3d.V3(1, 0, 0))

	far := quadMesh()
	far.Material.DiffuseTexture = models.NewSolidTexture(2, math3d.V3(0, 1, 0))
	far.Transform(math3d.Translate(math3d.V3(0, 0, -2)))

	f := NewFrame(w, h)
	r.DrawMesh(f, far, math3d.Identity())
	r.DrawMesh(f, near, math3d.Identity())

	// With no lights each quad shades to ambient (0.2) times its texel, so
	// the red quad gives (0.2, 0, 0) and the green one (0, 0.2, 0).
	center := f.Color[h/2*w+w/2]
	if center.R < 0.1 || center.G > 0.1 {
		t.Errorf("nearer red quad should win the depth test over the farther green quad, got %v", center)
	}
}

func TestEdgeCoeffsMatchesEdgeFunction(t *testing.T) {
	x0, y0, x1, y1 := 0.0, 0.0, 4.0, 0.0
	a, b, c := edgeCoeffs(x0, y0, x1, y1)

	px, py := 2.0, 3.0
	got := a*px + b*py + c
	want := (px-x0)*(y1-y0) - (x1-x0)*(py-y0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("edge coefficients disagree with the direct edge function: got %v want %v", got, want)
	}
}
