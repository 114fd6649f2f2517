package models

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// tiny1x1PNG is the smallest possible 1x1 transparent PNG, used to exercise
// real texture decoding without shipping a binary fixture.
const tiny1x1PNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func writeTestPNG(t *testing.T, dir, name string) {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tiny1x1PNG)
	if err != nil {
		t.Fatalf("decode tiny1x1PNG: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const testOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

const testMTL = `
newmtl mat
Kd 0.5 0.5 0.5
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFolderLoaderObjOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mesh.obj", testOBJ)

	mesh, err := NewFolderLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(mesh.Triangles))
	}
	if mesh.Material == nil {
		t.Fatal("expected a synthesized default material")
	}
	if mesh.Material.DiffuseTexture == nil {
		t.Fatal("expected a synthesized checker texture fallback")
	}
	if mesh.Material.DiffuseTexture.Width != 120 || mesh.Material.DiffuseTexture.Height != 120 {
		t.Errorf("checker texture size = %dx%d, want 120x120", mesh.Material.DiffuseTexture.Width, mesh.Material.DiffuseTexture.Height)
	}
}

func TestFolderLoaderWithMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mesh.obj", testOBJ)
	writeFile(t, dir, "mesh.mtl", testMTL)

	mesh, err := NewFolderLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Material.Name != "mat" {
		t.Errorf("Material.Name = %q, want mat", mesh.Material.Name)
	}
}

func TestFolderLoaderNoGeometryErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mesh.mtl", testMTL)

	_, err := NewFolderLoader().Load(dir)
	if err == nil {
		t.Error("expected error when folder has no geometry file")
	}
}

func TestFolderLoaderMaterialFallsBackToGLTFTexture(t *testing.T) {
	dir := t.TempDir()
	gltfTex := NewSolidTexture(4, math3d.V3(0.1, 0.2, 0.3))

	mat, err := NewFolderLoader().loadMaterial(dir, nil, nil, "mesh", gltfTex)
	if err != nil {
		t.Fatalf("loadMaterial: %v", err)
	}
	if mat.DiffuseTexture != gltfTex {
		t.Error("expected the glTF's own embedded/external texture to be used when no material or loose bitmap is present")
	}
}

func TestFolderLoaderMaterialTexturePreferredOverGLTFTexture(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "diffuse.png")
	gltfTex := NewSolidTexture(4, math3d.V3(0.1, 0.2, 0.3))

	mat, err := NewFolderLoader().loadMaterial(dir, nil, []string{"diffuse.png"}, "mesh", gltfTex)
	if err != nil {
		t.Fatalf("loadMaterial: %v", err)
	}
	if mat.DiffuseTexture == gltfTex {
		t.Error("a loose bitmap should take priority over the glTF fallback texture")
	}
}

func TestFolderLoaderNoGLTFTextureFallsBackToChecker(t *testing.T) {
	dir := t.TempDir()

	mat, err := NewFolderLoader().loadMaterial(dir, nil, nil, "mesh", nil)
	if err != nil {
		t.Fatalf("loadMaterial: %v", err)
	}
	if mat.DiffuseTexture == nil || mat.DiffuseTexture.Width != 120 {
		t.Error("expected the synthesized checker texture when no material, bitmap, or glTF texture is present")
	}
}

func TestFolderLoaderDuplicateGeometryWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", testOBJ)
	writeFile(t, dir, "b.obj", testOBJ)

	var warnings []string
	loader := &FolderLoader{Warn: func(s string) { warnings = append(warnings, s) }}
	_, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for duplicate geometry files")
	}
}
