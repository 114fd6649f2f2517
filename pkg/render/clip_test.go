package render

import (
	"math"
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

func cv(x, y, z, w float64) clipVertex {
	return clipVertex{
		Clip:   math3d.V4(x, y, z, w),
		World:  math3d.V3(x, y, z),
		Vertex: models.Vertex{Position: math3d.V3(x, y, z)},
	}
}

func TestClipTriangleFullyInside(t *testing.T) {
	poly := [3]clipVertex{cv(-1, -1, 0, 1), cv(1, -1, 0, 1), cv(0, 1, 0, 1)}
	out := clipTriangleNear(poly)
	if len(out) != 3 {
		t.Fatalf("fully inside triangle should pass through unchanged, got %d verts", len(out))
	}
}

func TestClipTriangleFullyOutside(t *testing.T) {
	// z+w < 0 for all three: entirely behind the near plane.
	poly := [3]clipVertex{cv(-1, -1, -5, 1), cv(1, -1, -5, 1), cv(0, 1, -5, 1)}
	out := clipTriangleNear(poly)
	if len(out) != 0 {
		t.Fatalf("fully outside triangle should produce no vertices, got %d", len(out))
	}
}

func TestClipTriangleOneVertexOutsideProducesQuad(t *testing.T) {
	// Two vertices inside (z+w>=0), one outside (z+w<0): Sutherland-Hodgman
	// yields a 4-vertex polygon.
	poly := [3]clipVertex{cv(-1, -1, 1, 1), cv(1, -1, 1, 1), cv(0, 1, -3, 1)}
	out := clipTriangleNear(poly)
	if len(out) != 4 {
		t.Fatalf("one vertex outside should produce a quad, got %d verts", len(out))
	}
	tris := clipToTriangles(out)
	if len(tris) != 2 {
		t.Fatalf("quad should fan-retriangulate into 2 triangles, got %d", len(tris))
	}
}

func TestClipTriangleTwoVerticesOutsideProducesTriangle(t *testing.T) {
	poly := [3]clipVertex{cv(-1, -1, 1, 1), cv(1, -1, -5, 1), cv(0, 1, -5, 1)}
	out := clipTriangleNear(poly)
	if len(out) != 3 {
		t.Fatalf("two vertices outside should produce a single triangle, got %d verts", len(out))
	}
}

func TestClipIntersectionLiesOnNearPlane(t *testing.T) {
	a := cv(0, 0, 2, 1)  // inside: z+w = 3
	b := cv(0, 0, -4, 1) // outside: z+w = -3
	tParam := clipNearParam(a, b)
	mid := lerpClipVertex(a, b, tParam)
	if math.Abs(mid.Clip.Z+mid.Clip.W) > 1e-9 {
		t.Errorf("interpolated vertex should lie exactly on z+w=0, got %v", mid.Clip.Z+mid.Clip.W)
	}
}
