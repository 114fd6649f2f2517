package scene

import (
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

func oneTriMesh(name string) *models.Mesh {
	m := models.NewMesh(name)
	m.Material = models.DefaultMaterial(name)
	m.Triangles = []models.Triangle{{V: [3]models.Vertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(2, 0, 0)},
		{Position: math3d.V3(0, 2, 0)},
	}}}
	return m
}

func TestParseBehaviorUnknownVerbErrors(t *testing.T) {
	if _, err := ParseBehavior([]string{"not_a_verb", "1", "2"}); err == nil {
		t.Fatal("unknown verb should error at parse time")
	}
}

func TestParseBehaviorBadAxisErrors(t *testing.T) {
	if _, err := ParseBehavior([]string{"rotate", "cube", "Q", "10"}); err == nil {
		t.Fatal("rotate with an invalid axis should error at parse time")
	}
}

func TestRotateByNameMissingMeshNoOps(t *testing.T) {
	s := New(t.TempDir())
	s.Meshes = append(s.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})
	before := s.Meshes[0].Mesh.Triangles[0].V[0].Position

	b, err := ParseBehavior([]string{"rotate", "doesnotexist", "X", "45"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b.Apply(s)

	after := s.Meshes[0].Mesh.Triangles[0].V[0].Position
	if after != before {
		t.Error("applying a behavior to an unknown mesh name should silently no-op")
	}
}

func TestRotateAllAppliesToEveryMesh(t *testing.T) {
	s := New(t.TempDir())
	s.Meshes = append(s.Meshes,
		NamedMesh{Name: "a", Mesh: oneTriMesh("a")},
		NamedMesh{Name: "b", Mesh: oneTriMesh("b")},
	)
	before0 := s.Meshes[0].Mesh.Centroid()
	before1 := s.Meshes[1].Mesh.Centroid()

	b, err := ParseBehavior([]string{"rotate", "ALL", "Z", "90"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b.Apply(s)

	// Rotation about each mesh's own centroid leaves the centroid fixed.
	if s.Meshes[0].Mesh.Centroid().Distance(before0) > 1e-9 {
		t.Error("rotate ALL should rotate mesh 'a' about its own centroid")
	}
	if s.Meshes[1].Mesh.Centroid().Distance(before1) > 1e-9 {
		t.Error("rotate ALL should rotate mesh 'b' about its own centroid")
	}
	if s.Meshes[0].Mesh.Triangles[0].V[0].Position == math3d.V3(0, 0, 0) {
		t.Error("rotate ALL should have actually moved mesh 'a's vertices")
	}
}

func TestMoveToMovesTowardTargetNotPast(t *testing.T) {
	s := New(t.TempDir())
	s.Meshes = append(s.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})

	b, err := ParseBehavior([]string{"moveto", "cube", "10", "0", "0", "0.5"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	startCentroid := s.Meshes[0].Mesh.Centroid()
	b.Apply(s)
	afterCentroid := s.Meshes[0].Mesh.Centroid()

	if afterCentroid.X <= startCentroid.X {
		t.Errorf("moveto toward +X should increase centroid.X, got %v -> %v", startCentroid.X, afterCentroid.X)
	}
	if afterCentroid.X >= 10 {
		t.Errorf("a single 0.5 step should not overshoot the target, got %v", afterCentroid.X)
	}
}

func TestScaleMeshByIndexOutOfRangeNoOps(t *testing.T) {
	s := New(t.TempDir())
	s.Meshes = append(s.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})

	b, err := ParseBehavior([]string{"scalemesh", "5", "2", "2", "2"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	before := s.Meshes[0].Mesh.Triangles[0].V[0].Position
	b.Apply(s)
	after := s.Meshes[0].Mesh.Triangles[0].V[0].Position
	if after != before {
		t.Error("an out-of-range index should silently no-op, not panic or mutate the wrong mesh")
	}
}

func TestRotateRampsUpRatherThanJumpingToTarget(t *testing.T) {
	once := New(t.TempDir())
	once.Meshes = append(once.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})
	b, err := ParseBehavior([]string{"rotate", "cube", "Z", "90"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b.Apply(once)
	afterOne := once.Meshes[0].Mesh.Triangles[0].V[1].Position

	settled := New(t.TempDir())
	settled.Meshes = append(settled.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})
	b2, err := ParseBehavior([]string{"rotate", "cube", "Z", "90"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		b2.Apply(settled)
	}
	afterMany := settled.Meshes[0].Mesh.Triangles[0].V[1].Position

	if afterOne.Distance(afterMany) < 1e-6 {
		t.Error("a single application should ease toward the per-frame amount, not already match many applications")
	}
}

func TestColorizeReplacesTextureWithSolidColor(t *testing.T) {
	s := New(t.TempDir())
	s.Meshes = append(s.Meshes, NamedMesh{Name: "cube", Mesh: oneTriMesh("cube")})

	b, err := ParseBehavior([]string{"colorize", "0", "1", "0", "0"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b.Apply(s)

	tex := s.Meshes[0].Mesh.Material.DiffuseTexture
	if tex == nil {
		t.Fatal("colorize should assign a diffuse texture")
	}
	sampled := tex.Sample(0.5, 0.5)
	if sampled.X != 1 || sampled.Y != 0 || sampled.Z != 0 {
		t.Errorf("colorized texture should sample as solid red, got %v", sampled)
	}
}
