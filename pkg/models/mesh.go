// Package models provides mesh, material, and texture ingestion: parsing
// wavefront geometry/material text files (and, as an alternate format,
// glTF/GLB binaries), triangulating faces, synthesizing placeholder
// textures, and smoothing vertex normals.
package models

import (
	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// Vertex holds the per-corner attributes of a triangle.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Triangle is three vertices in winding order. Meshes store triangles
// contiguously rather than as indexed vertex/face tables: the geometry
// format has no notion of a shared vertex after faces are triangulated, and
// normal smoothing works by position-equivalence class rather than shared
// index, so there is nothing an index buffer would save here.
type Triangle struct {
	V [3]Vertex
}

// FaceNormal returns the geometric (unnormalized-input) face normal of the
// triangle: normalize(cross(v1-v0, v2-v0)).
func (t Triangle) FaceNormal() math3d.Vec3 {
	e1 := t.V[1].Position.Sub(t.V[0].Position)
	e2 := t.V[2].Position.Sub(t.V[0].Position)
	return e1.Cross(e2).Normalize()
}

// Mesh is a named, contiguous triangle buffer with a single owned material.
type Mesh struct {
	Name      string
	Triangles []Triangle
	Material  *Material

	// Smooth records the geometry file's `s` flag; the loader consults it to
	// decide whether to run the normal smoother.
	Smooth bool

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty, named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes the axis-aligned bounding box from the current
// triangle buffer.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}
	min := m.Triangles[0].V[0].Position
	max := min
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			min = min.Min(v.Position)
			max = max.Max(v.Position)
		}
	}
	m.BoundsMin, m.BoundsMax = min, max
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Centroid returns the mean of all triangle-corner positions, which is what
// the mesh-relative behaviors (§4.8's rotate/scalemesh) pivot around — not
// the bounding-box center, which would be skewed by sparse geometry.
func (m *Mesh) Centroid() math3d.Vec3 {
	if len(m.Triangles) == 0 {
		return math3d.Vec3{}
	}
	sum := math3d.Vec3{}
	n := 0
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			sum = sum.Add(v.Position)
			n++
		}
	}
	return sum.Scale(1.0 / float64(n))
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Transform applies an absolute 4x4 transform to every vertex position and
// the matching inverse-transpose to every normal, then recomputes bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := math3d.NormalMatrix(mat)
	for i := range m.Triangles {
		for c := range m.Triangles[i].V {
			v := &m.Triangles[i].V[c]
			v.Position = mat.MulVec3(v.Position)
			v.Normal = normalMat.MulVec3(v.Normal).Normalize()
		}
	}
	m.CalculateBounds()
}

// TransformAboutCentroid applies mat as a transform relative to the mesh's
// own centroid: T(+c)*mat*T(-c), per §4.8's mesh-relative transform rule.
func (m *Mesh) TransformAboutCentroid(mat math3d.Mat4) {
	c := m.Centroid()
	abs := math3d.Translate(c).Mul(mat).Mul(math3d.Translate(c.Negate()))
	m.Transform(abs)
}

// Clone returns a deep, independent copy of the mesh's triangles but shares
// the Material pointer, so a change made through either mesh's Material
// (such as swaptex or colorize assigning DiffuseTexture) is seen by both.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]Triangle, len(m.Triangles)),
		Material:  m.Material,
		Smooth:    m.Smooth,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
