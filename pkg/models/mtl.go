package models

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// ParseMTL reads a wavefront material stream and returns every material
// record it defines as a slice, in file order. baseDir is used to
// resolve relative texture paths (map_Kd etc.) against the mesh folder.
// A texture that fails to load is a warning, not a parse failure: the
// material keeps its other fields and the map_* slot is left nil for the
// caller's own fallback (checker texture, solid color, ...).
func ParseMTL(r io.Reader, baseDir string) ([]*Material, error) {
	return ParseMTLWarn(r, baseDir, func(string) {})
}

// ParseMTLWarn is ParseMTL with a callback for texture-load warnings.
func ParseMTLWarn(r io.Reader, baseDir string, warn func(string)) ([]*Material, error) {
	var materials []*Material
	var current *Material

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := fields[0]
		args := fields[1:]

		if key == "newmtl" {
			if len(args) < 1 {
				return nil, fmt.Errorf("line %d: newmtl missing name", lineNo)
			}
			current = DefaultMaterial(args[0])
			materials = append(materials, current)
			continue
		}
		if current == nil {
			continue // stray key before any newmtl: ignore
		}

		switch key {
		case "Ka":
			rgb, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: Ka: %w", lineNo, err)
			}
			current.Ambient = vec3FromSlice(rgb)
		case "Kd":
			rgb, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: Kd: %w", lineNo, err)
			}
			current.Diffuse = vec3FromSlice(rgb)
		case "Ks":
			rgb, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: Ks: %w", lineNo, err)
			}
			current.Specular = vec3FromSlice(rgb)
		case "Ns":
			f, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: Ns: %w", lineNo, err)
			}
			current.Shininess = f
		case "d":
			f, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: d: %w", lineNo, err)
			}
			current.Transparency = f
		case "illum":
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: illum: %w", lineNo, err)
			}
			current.IlluminationModel = n
		case "map_Kd":
			tex, err := LoadTextureFile(resolvePath(baseDir, args[0]))
			if err != nil {
				warn(fmt.Sprintf("line %d: map_Kd %q: %v", lineNo, args[0], err))
				continue
			}
			current.DiffuseTexture = tex
		case "map_Ks":
			tex, err := LoadTextureFile(resolvePath(baseDir, args[0]))
			if err != nil {
				warn(fmt.Sprintf("line %d: map_Ks %q: %v", lineNo, args[0], err))
				continue
			}
			current.SpecularTexture = tex
		case "map_Bump", "bump":
			tex, err := LoadTextureFile(resolvePath(baseDir, args[0]))
			if err != nil {
				warn(fmt.Sprintf("line %d: map_Bump %q: %v", lineNo, args[0], err))
				continue
			}
			current.NormalTexture = tex
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl: %w", err)
	}
	return materials, nil
}

func vec3FromSlice(f []float64) math3d.Vec3 {
	return math3d.V3(f[0], f[1], f[2])
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
