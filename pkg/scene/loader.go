package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
	"github.com/luccafm1/c3d-go/pkg/render"
)

// Load parses the scene file at path and returns a fully assembled Scene,
// rooted at assetRoot (so `meshes` lines resolve against
// assetRoot/models/<folder>, §6). A missing or malformed geometry folder
// is a fatal error (§7); a missing optional file elsewhere is not — the
// loader delegates that distinction to models.FolderLoader.
func Load(path, assetRoot string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %q: %w", path, err)
	}
	defer f.Close()

	return LoadFrom(f, assetRoot)
}

// LoadFrom parses a scene from r, rooted at assetRoot.
func LoadFrom(r io.Reader, assetRoot string) (*Scene, error) {
	s := New(assetRoot)

	var section string
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		var err error
		switch section {
		case "camera":
			err = applyCameraLine(s, tokens)
		case "meshes":
			err = applyMeshLine(s, tokens)
		case "display":
			err = applyDisplayLine(s, tokens)
		case "lights":
			err = applyLightLine(s, tokens)
		case "continuous":
			err = appendBehavior(&s.Continuous, tokens)
		case "startup":
			err = appendBehavior(&s.Startup, tokens)
		default:
			err = fmt.Errorf("line outside any [section]")
		}
		if err != nil {
			return nil, fmt.Errorf("scene file line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	return s, nil
}

func applyCameraLine(s *Scene, tokens []string) error {
	switch tokens[0] {
	case "position":
		vals, err := floatArgs(tokens[1:], 3)
		if err != nil {
			return err
		}
		s.Camera.SetPosition(math3d.V3(vals[0], vals[1], vals[2]))
	case "fov":
		vals, err := floatArgs(tokens[1:], 1)
		if err != nil {
			return err
		}
		s.Camera.SetFOVDegrees(vals[0])
	case "speed":
		// Speed governs the input driver's movement rate, not the camera
		// model itself; the scene loader only needs to accept the line
		// without erroring, since nothing in this package drives input.
	default:
		return fmt.Errorf("unknown camera key %q", tokens[0])
	}
	return nil
}

func applyMeshLine(s *Scene, tokens []string) error {
	if len(tokens) != 7 {
		return fmt.Errorf("mesh line wants 7 fields (folder x y z sx sy sz), got %d", len(tokens))
	}
	folder := tokens[0]
	vals, err := floatArgs(tokens[1:], 6)
	if err != nil {
		return err
	}

	loader := models.NewFolderLoader()
	mesh, err := loader.Load(filepath.Join(s.AssetRoot, "models", folder))
	if err != nil {
		return fmt.Errorf("load mesh %q: %w", folder, err)
	}

	transform := math3d.Translate(math3d.V3(vals[0], vals[1], vals[2])).
		Mul(math3d.Scale(math3d.V3(vals[3], vals[4], vals[5])))
	mesh.Transform(transform)

	s.Meshes = append(s.Meshes, NamedMesh{Name: folder, Mesh: mesh, AssetFolder: folder})
	return nil
}

func applyDisplayLine(s *Scene, tokens []string) error {
	switch tokens[0] {
	case "background_color":
		vals, err := floatArgs(tokens[1:], 3)
		if err != nil {
			return err
		}
		s.Background = math3d.V3(vals[0]/255, vals[1]/255, vals[2]/255)
	default:
		return fmt.Errorf("unknown display key %q", tokens[0])
	}
	return nil
}

func applyLightLine(s *Scene, tokens []string) error {
	vals, err := floatArgs(tokens, 8)
	if err != nil {
		return err
	}
	s.Lights = append(s.Lights, render.Light{
		Position:   math3d.V3(vals[0], vals[1], vals[2]),
		Color:      math3d.V3(vals[3], vals[4], vals[5]),
		Brightness: vals[6],
		Radius:     vals[7],
	})
	return nil
}

func appendBehavior(list *[]Behavior, tokens []string) error {
	b, err := ParseBehavior(tokens)
	if err != nil {
		return err
	}
	*list = append(*list, b)
	return nil
}

func floatArgs(tokens []string, n int) ([]float64, error) {
	if len(tokens) != n {
		return nil, fmt.Errorf("wants %d numeric fields, got %d", n, len(tokens))
	}
	vals := make([]float64, n)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, tok, err)
		}
		vals[i] = v
	}
	return vals, nil
}
