package models

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// faceToken is one "i", "i/t", "i//n", or "i/t/n" token off a face line.
// Indices are 1-based as they appear in the file; 0 means absent.
type faceToken struct {
	v, t, n int
}

func parseFaceToken(tok string) (faceToken, error) {
	parts := strings.Split(tok, "/")
	var ft faceToken
	var err error

	ft.v, err = strconv.Atoi(parts[0])
	if err != nil {
		return ft, fmt.Errorf("bad vertex index %q: %w", tok, err)
	}

	switch len(parts) {
	case 1: // i
	case 2: // i/t
		if parts[1] != "" {
			ft.t, err = strconv.Atoi(parts[1])
			if err != nil {
				return ft, fmt.Errorf("bad texcoord index %q: %w", tok, err)
			}
		}
	case 3:
		if parts[1] != "" { // i/t/n
			ft.t, err = strconv.Atoi(parts[1])
			if err != nil {
				return ft, fmt.Errorf("bad texcoord index %q: %w", tok, err)
			}
		}
		if parts[2] != "" { // i//n or i/t/n
			ft.n, err = strconv.Atoi(parts[2])
			if err != nil {
				return ft, fmt.Errorf("bad normal index %q: %w", tok, err)
			}
		}
	default:
		return ft, fmt.Errorf("unexpected face token %q", tok)
	}
	return ft, nil
}

// ParseOBJ reads a wavefront geometry stream and returns the mesh's
// triangle buffer and smooth flag. Every face, quad or larger n-gon, is
// fan-triangulated around its first vertex. It does not load any material
// or texture; the folder loader wires those in afterward.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	var positions []math3d.Vec3
	var uvs []math3d.Vec2
	var normals []math3d.Vec3

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(p[0], p[1]))
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(p[0], p[1], p[2]))
		case "s":
			if len(fields) < 2 {
				continue
			}
			switch strings.ToLower(fields[1]) {
			case "1", "on":
				mesh.Smooth = true
			case "0", "off":
				mesh.Smooth = false
			}
		case "f":
			if err := appendFace(mesh, fields[1:], positions, uvs, normals); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func appendFace(mesh *Mesh, tokens []string, positions []math3d.Vec3, uvs []math3d.Vec2, normals []math3d.Vec3) error {
	if len(tokens) < 3 {
		return fmt.Errorf("face has fewer than 3 vertices")
	}

	verts := make([]Vertex, len(tokens))
	for i, tok := range tokens {
		ft, err := parseFaceToken(tok)
		if err != nil {
			return err
		}
		v := Vertex{}
		idx := ft.v
		if idx < 0 {
			idx = len(positions) + idx + 1
		}
		if idx < 1 || idx > len(positions) {
			return fmt.Errorf("vertex index %d out of range (have %d)", idx, len(positions))
		}
		v.Position = positions[idx-1]

		if ft.t > 0 && ft.t <= len(uvs) {
			v.UV = uvs[ft.t-1]
		}
		if ft.n > 0 && ft.n <= len(normals) {
			v.Normal = normals[ft.n-1]
		}
		verts[i] = v
	}

	// Fan-triangulate: (0,1,2), (0,2,3), ... Quads are the i=1 case of this
	// general fan; n-gons beyond 4 cost nothing extra to support the same way.
	for i := 1; i < len(verts)-1; i++ {
		mesh.Triangles = append(mesh.Triangles, Triangle{V: [3]Vertex{verts[0], verts[i], verts[i+1]}})
	}
	return nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
