package render

import (
	"math"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

// Light is a point light, positioned and colored per the scene file's
// `[lights]` section (§4.8). Radius governs both the falloff and the hard
// cutoff distance; it has no relation to a physical light's extent.
type Light struct {
	Position   math3d.Vec3
	Color      math3d.Vec3
	Brightness float64
	Radius     float64
}

// Shade evaluates Blinn-Phong lighting at a shaded fragment: position,
// normal, the view vector to the camera, the surface's diffuse texel, and
// its material. Diffuse and ambient are never attenuated by distance;
// specular is, and lights beyond their radius contribute nothing at all
// (§4.6, §9). The ambient/diffuse/specular accumulators are each clamped to
// [0,1] componentwise before combining, then the result is lerped toward bg
// by the material's transparency and clamped to [0,1] again.
func Shade(pos, normal, viewDir math3d.Vec3, texel math3d.Vec3, mat *models.Material, lights []Light, bg math3d.Vec3) math3d.Vec3 {
	ambient := mat.Ambient
	diffuseSum := math3d.Vec3{}
	specularSum := math3d.Vec3{}

	n := normal.Normalize()
	v := viewDir.Normalize()

	for _, l := range lights {
		toLight := l.Position.Sub(pos)
		dist := toLight.Len()
		if dist > l.Radius {
			continue
		}
		if dist < 1e-4 {
			dist = 1e-4 // avoid a divide-by-zero / NaN pixel for a light coincident with the fragment
		}
		lDir := toLight.Scale(1.0 / dist)

		diff := math.Max(n.Dot(lDir), 0)
		if diff > 0 {
			diffuseSum = diffuseSum.Add(mat.Diffuse.Mul(l.Color).Scale(l.Brightness))

			halfway := lDir.Add(v).Normalize()
			specAngle := math.Max(n.Dot(halfway), 0)
			spec := math.Pow(specAngle, mat.Shininess)

			atten := 1.0 / (1.0 + (dist/l.Radius)*(dist/l.Radius))
			specularSum = specularSum.Add(mat.Specular.Mul(l.Color).Scale(spec * l.Brightness * atten))
		}
	}

	ambient = clampVec01(ambient)
	diffuseSum = clampVec01(diffuseSum)
	specularSum = clampVec01(specularSum)

	lit := ambient.Add(diffuseSum).Mul(texel).Add(specularSum)
	final := bg.Lerp(lit, mat.Transparency)

	return clampVec01(final)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampVec01(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(clamp01(v.X), clamp01(v.Y), clamp01(v.Z))
}
