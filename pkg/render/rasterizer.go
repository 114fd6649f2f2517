package render

import (
	"math"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

// BlockGlyph is the filled block character every rasterized cell is drawn
// with (§4.6); the renderer never varies the glyph, only its foreground
// color.
const BlockGlyph = '█'

// Rasterizer walks a mesh's triangles through transform, near-plane clip,
// back-face cull, and perspective-correct barycentric rasterization with
// Blinn-Phong shading, writing into a Frame. The edge-function stepping
// technique (edgeCoeffs below) is the same incremental
// per-pixel update an optimized scanline rasterizer uses instead of
// recomputing barycentrics from scratch at every pixel.
type Rasterizer struct {
	Camera     *Camera
	Lights     []Light
	Background math3d.Vec3
}

// NewRasterizer creates a rasterizer bound to a camera and light list. The
// light list is a slice so callers can mutate it between frames (behaviors
// are the only mutators, per the concurrency model) without reallocating
// the rasterizer.
func NewRasterizer(camera *Camera, lights []Light, background math3d.Vec3) *Rasterizer {
	return &Rasterizer{Camera: camera, Lights: lights, Background: background}
}

// screenVertex is a triangle corner after the viewport projection (§4.5
// step 1): screen-space x/y, 1/w for perspective-correct interpolation,
// and the attributes carried through to the fragment.
type screenVertex struct {
	X, Y   float64
	InvW   float64
	World  math3d.Vec3
	Vertex models.Vertex
}

// edgeCoeffs computes the A, B, C coefficients of the edge function
// edge(x,y) = A*x + B*y + C for the directed edge (x0,y0)->(x1,y1), so that
// the per-pixel value can be updated incrementally (w += A per x step, w +=
// B per y step) instead of recomputed from the three vertex positions
// every time.
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	a = y1 - y0
	b = x0 - x1
	c = x1*y0 - x0*y1
	return
}

// DrawMesh transforms every triangle in mesh by transform, clips against
// the near plane, back-face culls, and rasterizes the survivors into f
// (§4.5).
func (r *Rasterizer) DrawMesh(f *Frame, mesh *models.Mesh, transform math3d.Mat4) {
	if mesh == nil || mesh.Material == nil {
		return
	}
	vp := r.Camera.ViewProjectionMatrix()
	normalMat := math3d.NormalMatrix(transform)
	camPos := r.Camera.Position

	for _, tri := range mesh.Triangles {
		var world [3]math3d.Vec3
		var worldNormal [3]math3d.Vec3
		for c := 0; c < 3; c++ {
			world[c] = transform.MulVec3(tri.V[c].Position)
			worldNormal[c] = normalMat.MulVec3(tri.V[c].Normal).Normalize()
		}

		// Back-face cull before projection (§4.5, §9): un-normalized,
		// sign-only, exact-zero-threshold test against the geometric face
		// normal and the vector from the camera to a vertex.
		faceNormal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		view := world[0].Sub(camPos)
		if faceNormal.Dot(view) >= 0 {
			continue
		}

		var poly [3]clipVertex
		for c := 0; c < 3; c++ {
			v := tri.V[c]
			v.Normal = worldNormal[c]
			poly[c] = clipVertex{
				Clip:   vp.MulVec4(math3d.V4FromV3(world[c], 1)),
				World:  world[c],
				Vertex: models.Vertex{Position: world[c], Normal: worldNormal[c], UV: v.UV},
			}
		}

		clipped := clipToTriangles(clipTriangleNear(poly))
		for _, ct := range clipped {
			r.rasterizeClipTriangle(f, ct, mesh.Material)
		}
	}
}

func (r *Rasterizer) rasterizeClipTriangle(f *Frame, ct [3]clipVertex, mat *models.Material) {
	var sv [3]screenVertex
	var ndcZ [3]float64
	for i, cv := range ct {
		if cv.Clip.W <= 0 {
			return
		}
		ndc := cv.Clip.PerspectiveDivide()
		ndcZ[i] = ndc.Z
		sv[i] = screenVertex{
			X:      (ndc.X + 1) * 0.5 * float64(f.Width),
			Y:      (1 - ndc.Y) * 0.5 * float64(f.Height),
			InvW:   1.0 / cv.Clip.W,
			World:  cv.World,
			Vertex: cv.Vertex,
		}
	}

	minX := int(math.Floor(math.Min(sv[0].X, math.Min(sv[1].X, sv[2].X))))
	maxX := int(math.Ceil(math.Max(sv[0].X, math.Max(sv[1].X, sv[2].X))))
	minY := int(math.Floor(math.Min(sv[0].Y, math.Min(sv[1].Y, sv[2].Y))))
	maxY := int(math.Ceil(math.Max(sv[0].Y, math.Max(sv[1].Y, sv[2].Y))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > f.Width {
		maxX = f.Width
	}
	if maxY > f.Height {
		maxY = f.Height
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	area := a0*sv[0].X + b0*sv[0].Y + c0
	if area == 0 {
		return
	}
	invArea := 1.0 / area

	startX := float64(minX) + 0.5
	startY := float64(minY) + 0.5

	w0Row := a0*startX + b0*startY + c0
	w1Row := a1*startX + b1*startY + c1
	w2Row := a2*startX + b2*startY + c2

	for y := minY; y < maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row

		for x := minX; x < maxX; x++ {
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				b0v := w0 * invArea
				b1v := w1 * invArea
				b2v := w2 * invArea

				invW := b0v*sv[0].InvW + b1v*sv[1].InvW + b2v*sv[2].InvW
				if invW != 0 {
					depth := (b0v*sv[0].InvW*ndcZ[0] + b1v*sv[1].InvW*ndcZ[1] + b2v*sv[2].InvW*ndcZ[2]) / invW

					wc := [3]float64{b0v * sv[0].InvW / invW, b1v * sv[1].InvW / invW, b2v * sv[2].InvW / invW}

					pos := sv[0].World.Scale(wc[0]).Add(sv[1].World.Scale(wc[1])).Add(sv[2].World.Scale(wc[2]))
					normal := sv[0].Vertex.Normal.Scale(wc[0]).Add(sv[1].Vertex.Normal.Scale(wc[1])).Add(sv[2].Vertex.Normal.Scale(wc[2]))
					if normal.LenSq() > 0 {
						normal = normal.Normalize()
						uv := sv[0].Vertex.UV.Scale(wc[0]).Add(sv[1].Vertex.UV.Scale(wc[1])).Add(sv[2].Vertex.UV.Scale(wc[2]))

						texel := mat.DiffuseTexture.Sample(uv.X, uv.Y)
						viewDir := r.Camera.Position.Sub(pos)
						color := Shade(pos, normal, viewDir, texel, mat, r.Lights, r.Background)

						f.TestAndSet(x, y, depth, Vec3{R: color.X, G: color.Y, B: color.Z}, BlockGlyph)
					}
				}
			}

			w0 += a0
			w1 += a1
			w2 += a2
		}

		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}
