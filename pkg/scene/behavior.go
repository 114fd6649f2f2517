package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/harmonica"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
)

// behaviorFPS is the frame rate springEase assumes when converting degrees-
// or units-per-frame into a ramp; it only shapes how quickly a freshly
// started behavior reaches its nominal per-frame amount, not the render
// loop's actual pacing.
const behaviorFPS = 30

// springEase ramps toward a per-frame target amount instead of applying it
// at full strength the instant a behavior starts.
type springEase struct {
	current, accel float64
	spring         harmonica.Spring
}

func newSpringEase() springEase {
	return springEase{spring: harmonica.NewSpring(harmonica.FPS(behaviorFPS), 4.0, 1.0)}
}

func (e *springEase) toward(target float64) float64 {
	e.current, e.accel = e.spring.Update(e.current, e.accel, target)
	return e.current
}

// Behavior is one `continuous`/`startup` line, already parsed into a verb
// and its typed arguments (§4.8). Applying an unknown name or an
// out-of-range index is a silent no-op (§7) — never an error, never a
// frame abort.
type Behavior interface {
	Apply(s *Scene)
}

// ParseBehavior turns a token list (verb followed by its arguments) into a
// Behavior. An unrecognized verb returns an error; malformed arguments to a
// known verb also return an error, since those are caught at scene-load
// time rather than silently ignored per frame (§7's "fatal ingest" vs.
// "bounds/index" distinction: bad syntax is a load-time error, a bad
// *index* at apply-time is a silent no-op).
func ParseBehavior(tokens []string) (Behavior, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty behavior line")
	}
	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "rotate":
		return parseRotate(args, false)
	case "rotate_id":
		return parseRotate(args, true)
	case "moveto":
		return parseMoveTo(args, false)
	case "moveto_id":
		return parseMoveTo(args, true)
	case "movetomesh":
		return parseMoveToMesh(args, false)
	case "movetomesh_id":
		return parseMoveToMesh(args, true)
	case "scalemesh":
		return parseScaleMesh(args)
	case "swaptex":
		return parseSwapTex(args, false)
	case "swaptex_id":
		return parseSwapTex(args, true)
	case "swapmesh":
		return parseSwapMesh(args, false)
	case "swapmesh_id":
		return parseSwapMesh(args, true)
	case "colorize":
		return parseColorize(args)
	case "loopmesh":
		return parseLoopMesh(args)
	default:
		return nil, fmt.Errorf("unknown behavior verb %q", verb)
	}
}

// target resolves either a name or an index to the same NamedMesh, per the
// verb table's name/`_id` twin forms. A miss (unknown name, out-of-range
// index) returns nil, which callers treat as a no-op.
type target struct {
	byName bool
	name   string
	index  int
}

func (t target) resolve(s *Scene) *NamedMesh {
	if t.byName {
		return s.MeshByName(t.name)
	}
	return s.MeshByIndex(t.index)
}

func parseTarget(tok string, byIndex bool) (target, error) {
	if !byIndex {
		return target{byName: true, name: tok}, nil
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return target{}, fmt.Errorf("index %q: %w", tok, err)
	}
	return target{index: idx}, nil
}

func parseFloat(tok string) (float64, error) {
	return strconv.ParseFloat(tok, 64)
}

// rotateBehavior rotates a mesh around its own centroid by a fixed number
// of degrees per frame, about one of the X/Y/Z axes (§4.8).
type rotateBehavior struct {
	t         target
	axis      byte
	degrees   float64
	allMeshes bool
	ease      springEase
}

func parseRotate(args []string, byIndex bool) (Behavior, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("rotate wants 3 args (target, axis, degrees), got %d", len(args))
	}
	axis := args[1]
	if len(axis) != 1 || (axis[0] != 'X' && axis[0] != 'Y' && axis[0] != 'Z') {
		return nil, fmt.Errorf("rotate axis must be X, Y, or Z, got %q", axis)
	}
	degrees, err := parseFloat(args[2])
	if err != nil {
		return nil, fmt.Errorf("rotate degrees: %w", err)
	}

	b := rotateBehavior{axis: axis[0], degrees: degrees, ease: newSpringEase()}
	if !byIndex && args[0] == "ALL" {
		b.allMeshes = true
		return &b, nil
	}
	t, err := parseTarget(args[0], byIndex)
	if err != nil {
		return nil, err
	}
	b.t = t
	return &b, nil
}

func rotationMatrix(axis byte, radians float64) math3d.Mat4 {
	switch axis {
	case 'X':
		return math3d.RotateX(radians)
	case 'Y':
		return math3d.RotateY(radians)
	default:
		return math3d.RotateZ(radians)
	}
}

func (b *rotateBehavior) Apply(s *Scene) {
	eased := b.ease.toward(b.degrees)
	m := rotationMatrix(b.axis, eased*math.Pi/180)
	if b.allMeshes {
		for i := range s.Meshes {
			s.Meshes[i].Mesh.TransformAboutCentroid(m)
		}
		return
	}
	nm := b.t.resolve(s)
	if nm == nil {
		return
	}
	nm.Mesh.TransformAboutCentroid(m)
}

// moveToBehavior translates a mesh, absolute, toward (X,Y,Z) by Step along
// the normalized direction from its centroid to that point (§4.8).
type moveToBehavior struct {
	t       target
	x, y, z float64
	step    float64
	ease    springEase
}

func parseMoveTo(args []string, byIndex bool) (Behavior, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("moveto wants 5 args (target, x, y, z, step), got %d", len(args))
	}
	t, err := parseTarget(args[0], byIndex)
	if err != nil {
		return nil, err
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return nil, err
	}
	return &moveToBehavior{t: t, x: vals[0], y: vals[1], z: vals[2], step: vals[3], ease: newSpringEase()}, nil
}

func (b *moveToBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil {
		return
	}
	moveToward(nm.Mesh, math3d.V3(b.x, b.y, b.z), b.ease.toward(b.step))
}

// moveToMeshBehavior moves src toward dst's centroid by step per frame
// (§4.8).
type moveToMeshBehavior struct {
	src, dst target
	step     float64
	ease     springEase
}

func parseMoveToMesh(args []string, byIndex bool) (Behavior, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("movetomesh wants 3 args (src, dst, step), got %d", len(args))
	}
	src, err := parseTarget(args[0], byIndex)
	if err != nil {
		return nil, err
	}
	dst, err := parseTarget(args[1], byIndex)
	if err != nil {
		return nil, err
	}
	step, err := parseFloat(args[2])
	if err != nil {
		return nil, fmt.Errorf("movetomesh step: %w", err)
	}
	return &moveToMeshBehavior{src: src, dst: dst, step: step, ease: newSpringEase()}, nil
}

func (b *moveToMeshBehavior) Apply(s *Scene) {
	src := b.src.resolve(s)
	dst := b.dst.resolve(s)
	if src == nil || dst == nil {
		return
	}
	moveToward(src.Mesh, dst.Mesh.Centroid(), b.ease.toward(b.step))
}

// moveToward translates mesh's every vertex by step along the normalized
// direction from its current centroid to target. A centroid already at
// target (zero-length direction) is a no-op, never a divide-by-zero.
func moveToward(mesh *models.Mesh, target math3d.Vec3, step float64) {
	dir := target.Sub(mesh.Centroid())
	if dir.LenSq() == 0 {
		return
	}
	dir = dir.Normalize()
	mesh.Transform(math3d.Translate(dir.Scale(step)))
}

// scaleMeshBehavior scales a mesh relative to its own centroid (§4.8).
type scaleMeshBehavior struct {
	t          target
	sx, sy, sz float64
}

func parseScaleMesh(args []string) (Behavior, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("scalemesh wants 4 args (index, sx, sy, sz), got %d", len(args))
	}
	t, err := parseTarget(args[0], true)
	if err != nil {
		return nil, err
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return nil, err
	}
	return &scaleMeshBehavior{t: t, sx: vals[0], sy: vals[1], sz: vals[2]}, nil
}

func (b *scaleMeshBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil {
		return
	}
	nm.Mesh.TransformAboutCentroid(math3d.Scale(math3d.V3(b.sx, b.sy, b.sz)))
}

// swapTexBehavior replaces a mesh's diffuse texture from a file path
// (§4.8). A load failure is not an error: Apply returns without emitting
// any diagnostic and the mesh keeps its current texture.
type swapTexBehavior struct {
	t    target
	path string
}

func parseSwapTex(args []string, byIndex bool) (Behavior, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("swaptex wants 2 args (target, path), got %d", len(args))
	}
	t, err := parseTarget(args[0], byIndex)
	if err != nil {
		return nil, err
	}
	return &swapTexBehavior{t: t, path: args[1]}, nil
}

func (b *swapTexBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil || nm.Mesh.Material == nil {
		return
	}
	tex, err := models.LoadTextureFile(b.path)
	if err != nil {
		return
	}
	nm.Mesh.Material.DiffuseTexture = tex
}

// swapMeshBehavior reloads a mesh's geometry and material from a folder
// (§4.8).
type swapMeshBehavior struct {
	t      target
	folder string
}

func parseSwapMesh(args []string, byIndex bool) (Behavior, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("swapmesh wants 2 args (target, folder), got %d", len(args))
	}
	t, err := parseTarget(args[0], byIndex)
	if err != nil {
		return nil, err
	}
	return &swapMeshBehavior{t: t, folder: args[1]}, nil
}

func (b *swapMeshBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil {
		return
	}
	loader := models.NewFolderLoader()
	mesh, err := loader.Load(filepath.Join(s.AssetRoot, "models", b.folder))
	if err != nil {
		return
	}
	nm.Mesh = mesh
	nm.AssetFolder = b.folder
}

// colorizeBehavior replaces a mesh's diffuse texture with a uniform
// 128x128 swatch (§4.8).
type colorizeBehavior struct {
	t       target
	r, g, b float64
}

func parseColorize(args []string) (Behavior, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("colorize wants 4 args (index, r, g, b), got %d", len(args))
	}
	t, err := parseTarget(args[0], true)
	if err != nil {
		return nil, err
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return nil, err
	}
	return &colorizeBehavior{t: t, r: vals[0], g: vals[1], b: vals[2]}, nil
}

func (b *colorizeBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil || nm.Mesh.Material == nil {
		return
	}
	nm.Mesh.Material.DiffuseTexture = models.NewSolidTexture(128, math3d.V3(b.r, b.g, b.b))
}

// loopMeshBehavior cycles a mesh's geometry through a sequence of files
// named <name>0.obj, <name>1.obj, ..., switching every frameCount frames
// (§4.8). The sequence ends at the first missing index and then starts
// again from <name>0.obj. Re-parsing is best-effort: if <name>0.obj is
// missing or a frame file fails to parse, the current geometry stays.
type loopMeshBehavior struct {
	t          target
	frameCount int
}

func parseLoopMesh(args []string) (Behavior, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("loopmesh wants 2 args (index, frame_count), got %d", len(args))
	}
	t, err := parseTarget(args[0], true)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("loopmesh frame_count: %w", err)
	}
	if count <= 0 {
		return nil, fmt.Errorf("loopmesh frame_count must be positive, got %d", count)
	}
	return &loopMeshBehavior{t: t, frameCount: count}, nil
}

func (b *loopMeshBehavior) Apply(s *Scene) {
	nm := b.t.resolve(s)
	if nm == nil {
		return
	}
	dir := filepath.Join(s.AssetRoot, "models", nm.AssetFolder)
	frames := 0
	for {
		if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("%s%d.obj", nm.Name, frames))); err != nil {
			break
		}
		frames++
	}
	if frames == 0 {
		return
	}
	step := (s.Frame / b.frameCount) % frames
	path := filepath.Join(dir, fmt.Sprintf("%s%d.obj", nm.Name, step))

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	mesh, err := models.ParseOBJ(f, nm.Name)
	if err != nil {
		return
	}
	mesh.Material = nm.Mesh.Material
	nm.Mesh = mesh
}

func parseFloats(tokens []string) ([]float64, error) {
	vals := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := parseFloat(tok)
		if err != nil {
			return nil, fmt.Errorf("arg %d (%q): %w", i, tok, err)
		}
		vals[i] = v
	}
	return vals, nil
}
