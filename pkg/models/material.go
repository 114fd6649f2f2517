package models

import "github.com/luccafm1/c3d-go/pkg/math3d"

// Material holds the wavefront-style shading parameters a mesh renders
// with. Transparency is named after the `d` key it comes from, but this
// module treats d=1 as opaque (it is lerp weight toward the material's lit
// color, not toward the background), the reverse of the usual wavefront
// dissolve convention.
type Material struct {
	Name string

	Ambient  math3d.Vec3
	Diffuse  math3d.Vec3
	Specular math3d.Vec3

	Shininess         float64
	Transparency      float64
	IlluminationModel int

	DiffuseTexture  *Texture
	SpecularTexture *Texture
	NormalTexture   *Texture
}

// DefaultMaterial returns the record `newmtl` begins with before any key is
// overridden, per §4.2's key table.
func DefaultMaterial(name string) *Material {
	return &Material{
		Name:              name,
		Ambient:           math3d.V3(0.2, 0.2, 0.2),
		Diffuse:           math3d.V3(0.8, 0.8, 0.8),
		Specular:          math3d.V3(1, 1, 1),
		Shininess:         32,
		Transparency:      1.0,
		IlluminationModel: 2,
	}
}
