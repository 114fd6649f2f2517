package models

import (
	"strings"
	"testing"
)

func TestParseOBJTriangle(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src), "tri")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(mesh.Triangles))
	}
	tri := mesh.Triangles[0]
	if tri.V[1].Position.X != 1 || tri.V[2].Position.Y != 1 {
		t.Errorf("unexpected triangle positions: %+v", tri)
	}
}

func TestParseOBJQuadFanTriangulates(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	mesh, err := ParseOBJ(strings.NewReader(src), "quad")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(mesh.Triangles))
	}
}

func TestParseOBJFaceTokenForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1//1 2//1 3//1
f 1/1 2/2 3/3
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src), "forms")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Triangles) != 4 {
		t.Fatalf("got %d triangles, want 4", len(mesh.Triangles))
	}
	// v/t/n form carries both UV and normal.
	v := mesh.Triangles[0].V[0]
	if v.UV.X != 0 || v.Normal.Z != 1 {
		t.Errorf("v/t/n token did not resolve uv/normal: %+v", v)
	}
	// v//n form carries normal but no UV.
	v = mesh.Triangles[1].V[0]
	if v.UV.X != 0 || v.UV.Y != 0 || v.Normal.Z != 1 {
		t.Errorf("v//n token mismatch: %+v", v)
	}
	// bare v form carries neither uv nor normal.
	v = mesh.Triangles[3].V[0]
	if v.UV.X != 0 || v.UV.Y != 0 || v.Normal != (v.Normal) {
		t.Errorf("sanity check failed")
	}
	if v.Normal.X != 0 || v.Normal.Y != 0 || v.Normal.Z != 0 {
		t.Errorf("bare v token should leave normal zero, got %+v", v.Normal)
	}
}

func TestParseOBJSmoothFlag(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
s 1
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src), "smooth")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if !mesh.Smooth {
		t.Error("expected Smooth=true after 's 1'")
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(mesh.Triangles))
	}
	if mesh.Triangles[0].V[1].Position.X != 1 {
		t.Errorf("negative index resolved wrong: %+v", mesh.Triangles[0])
	}
}

func TestParseOBJMissingVertexErrors(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
f 1 2 5
`
	_, err := ParseOBJ(strings.NewReader(src), "bad")
	if err == nil {
		t.Error("expected error for out-of-range vertex index")
	}
}
