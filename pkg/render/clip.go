package render

import (
	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

// clipVertex carries every attribute the clipper needs to interpolate:
// clip-space position (for the inside test and the lerp parameter),
// world-space position (for lighting), and the normal/UV the rasterizer
// samples later.
type clipVertex struct {
	Clip   math3d.Vec4
	World  math3d.Vec3
	Vertex models.Vertex
}

// insideNear is the Sutherland-Hodgman "inside" predicate against the near
// plane in homogeneous clip space: z+w >= 0 (§4.4).
func insideNear(v clipVertex) bool {
	return v.Clip.Z+v.Clip.W >= 0
}

// clipNearParam returns the interpolation parameter t at which the segment
// a->b crosses the near plane, per §4.4's t = (Az+Aw) / ((Az+Aw)-(Bz+Bw)).
func clipNearParam(a, b clipVertex) float64 {
	da := a.Clip.Z + a.Clip.W
	db := b.Clip.Z + b.Clip.W
	return da / (da - db)
}

func lerpClipVertex(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		Clip:  a.Clip.Lerp(b.Clip, t),
		World: a.World.Lerp(b.World, t),
		Vertex: models.Vertex{
			Position: a.Vertex.Position.Lerp(b.Vertex.Position, t),
			Normal:   a.Vertex.Normal.Lerp(b.Vertex.Normal, t),
			UV:       a.Vertex.UV.Lerp(b.Vertex.UV, t),
		},
	}
}

// clipTriangleNear clips a single triangle against the near plane using
// Sutherland-Hodgman polygon clipping (§4.4). The input polygon always has
// exactly 3 vertices; the output has 0 (fully culled), 3, or 4 vertices. A
// 4-vertex result is the caller's job to fan-retriangulate as (0,1,2),
// (0,2,3).
func clipTriangleNear(poly [3]clipVertex) []clipVertex {
	in := poly[:]
	var out []clipVertex

	for i := range in {
		curr := in[i]
		prev := in[(i-1+len(in))%len(in)]

		currIn := insideNear(curr)
		prevIn := insideNear(prev)

		if currIn != prevIn {
			t := clipNearParam(prev, curr)
			out = append(out, lerpClipVertex(prev, curr, t))
		}
		if currIn {
			out = append(out, curr)
		}
	}

	return out
}

// clipToTriangles fan-retriangulates a clipped polygon (0, 3, or 4
// vertices) back into triangles, per §4.4.
func clipToTriangles(poly []clipVertex) [][3]clipVertex {
	switch len(poly) {
	case 3:
		return [][3]clipVertex{{poly[0], poly[1], poly[2]}}
	case 4:
		return [][3]clipVertex{
			{poly[0], poly[1], poly[2]},
			{poly[0], poly[2], poly[3]},
		}
	default:
		return nil
	}
}
