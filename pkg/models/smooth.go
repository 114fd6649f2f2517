package models

import "github.com/luccafm1/c3d-go/pkg/math3d"

// positionTolerance is the per-axis exact-equality tolerance (§4.3) used to
// decide whether two triangle corners belong to the same vertex.
const positionTolerance = 1e-6

// posKey quantizes a position to the tolerance: two positions compare equal
// iff they round to the same 10^-6 grid cell on every axis. This is linear
// time via a hash grid, but it is not the same relation as a naive O(n^2)
// tolerance comparison: two positions less than 10^-6 apart that round to
// neighbouring cells stay in separate classes.
type posKey struct{ x, y, z int64 }

func quantize(p math3d.Vec3) posKey {
	const scale = 1.0 / positionTolerance
	return posKey{
		x: int64(p.X*scale + sign(p.X)*0.5),
		y: int64(p.Y*scale + sign(p.Y)*0.5),
		z: int64(p.Z*scale + sign(p.Z)*0.5),
	}
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

type cornerRef struct {
	tri, corner int
}

// SmoothNormals recomputes every triangle corner's normal as the unweighted
// average of the face normals of all triangles sharing its position class
// (§4.3). It is idempotent: a second call on its own output reproduces the
// same unit normals within the stated tolerance, since face normals are a
// pure function of position and averaging+renormalizing an already-averaged
// set of identical vectors is a no-op.
func (m *Mesh) SmoothNormals() {
	groups := make(map[posKey][]cornerRef)
	for ti, tri := range m.Triangles {
		for ci := range tri.V {
			k := quantize(tri.V[ci].Position)
			groups[k] = append(groups[k], cornerRef{ti, ci})
		}
	}

	faceNormals := make([]math3d.Vec3, len(m.Triangles))
	for i, tri := range m.Triangles {
		faceNormals[i] = tri.FaceNormal()
	}

	for _, refs := range groups {
		sum := math3d.Vec3{}
		seenTri := make(map[int]bool)
		for _, ref := range refs {
			if seenTri[ref.tri] {
				continue
			}
			seenTri[ref.tri] = true
			sum = sum.Add(faceNormals[ref.tri])
		}
		n := len(seenTri)
		if n == 0 {
			continue
		}
		avg := sum.Scale(1.0 / float64(n)).Normalize()
		for _, ref := range refs {
			m.Triangles[ref.tri].V[ref.corner].Normal = avg
		}
	}
}

// FlatNormals assigns each triangle's geometric face normal to all three of
// its corners, for meshes whose smooth flag is unset.
func (m *Mesh) FlatNormals() {
	for i := range m.Triangles {
		n := m.Triangles[i].FaceNormal()
		for c := range m.Triangles[i].V {
			m.Triangles[i].V[c].Normal = n
		}
	}
}
