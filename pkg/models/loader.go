package models

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// FolderLoader ingests a mesh folder per §4.2's folder-loading policy: one
// geometry file (wavefront .obj, or a glTF/GLB as an alternate format),
// an optional material file, an optional bitmap.
type FolderLoader struct {
	// Warn receives a diagnostic string for each ingest warning (duplicate
	// geometry/material, missing texture). A nil Warn discards them.
	Warn func(string)
}

// NewFolderLoader returns a loader that discards warnings.
func NewFolderLoader() *FolderLoader {
	return &FolderLoader{Warn: func(string) {}}
}

func (l *FolderLoader) warn(format string, args ...any) {
	if l.Warn != nil {
		l.Warn(fmt.Sprintf(format, args...))
	}
}

var geometryExts = map[string]bool{".obj": true}
var altGeometryExts = map[string]bool{".gltf": true, ".glb": true}
var materialExts = map[string]bool{".mtl": true}
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Load reads folder and returns a fully-assembled Mesh: geometry parsed,
// smooth normals computed if requested, material attached. Diffuse texture
// resolution falls through material file, loose bitmap, a glTF mesh's own
// embedded or external image, and finally a synthesized checker texture,
// named after the folder's base name.
func (l *FolderLoader) Load(folder string) (*Mesh, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read mesh folder %q: %w", folder, err)
	}

	var geomFiles, altGeomFiles, mtlFiles, imgFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		switch {
		case geometryExts[ext]:
			geomFiles = append(geomFiles, e.Name())
		case altGeometryExts[ext]:
			altGeomFiles = append(altGeomFiles, e.Name())
		case materialExts[ext]:
			mtlFiles = append(mtlFiles, e.Name())
		case imageExts[ext]:
			imgFiles = append(imgFiles, e.Name())
		}
	}
	sort.Strings(geomFiles)
	sort.Strings(altGeomFiles)
	sort.Strings(mtlFiles)
	sort.Strings(imgFiles)

	name := filepath.Base(folder)

	var mesh *Mesh
	var gltfTexture *Texture
	switch {
	case len(geomFiles) > 0:
		if len(geomFiles) > 1 {
			l.warn("mesh folder %q has %d geometry files, using %q", folder, len(geomFiles), geomFiles[len(geomFiles)-1])
		}
		geomPath := filepath.Join(folder, geomFiles[len(geomFiles)-1])
		f, err := os.Open(geomPath)
		if err != nil {
			return nil, fmt.Errorf("open geometry %q: %w", geomPath, err)
		}
		mesh, err = ParseOBJ(f, name)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse geometry %q: %w", geomPath, err)
		}
	case len(altGeomFiles) > 0:
		if len(altGeomFiles) > 1 {
			l.warn("mesh folder %q has %d alternate-format geometry files, using %q", folder, len(altGeomFiles), altGeomFiles[len(altGeomFiles)-1])
		}
		altPath := filepath.Join(folder, altGeomFiles[len(altGeomFiles)-1])
		var err error
		var img image.Image
		mesh, img, err = LoadGLBWithTexture(altPath)
		if err != nil {
			return nil, fmt.Errorf("load alternate geometry %q: %w", altPath, err)
		}
		if img != nil {
			gltfTexture = FromImage(img)
		}
	default:
		return nil, fmt.Errorf("mesh folder %q has no geometry file", folder)
	}

	if mesh.Smooth {
		mesh.SmoothNormals()
	} else {
		mesh.FlatNormals()
	}

	mat, err := l.loadMaterial(folder, mtlFiles, imgFiles, name, gltfTexture)
	if err != nil {
		return nil, err
	}
	mesh.Material = mat

	mesh.CalculateBounds()
	return mesh, nil
}

func (l *FolderLoader) loadMaterial(folder string, mtlFiles, imgFiles []string, name string, gltfTexture *Texture) (*Material, error) {
	var mat *Material

	if len(mtlFiles) > 0 {
		if len(mtlFiles) > 1 {
			l.warn("mesh folder %q has %d material files, using %q", folder, len(mtlFiles), mtlFiles[len(mtlFiles)-1])
		}
		mtlPath := filepath.Join(folder, mtlFiles[len(mtlFiles)-1])
		f, err := os.Open(mtlPath)
		if err != nil {
			return nil, fmt.Errorf("open material %q: %w", mtlPath, err)
		}
		materials, err := ParseMTLWarn(f, folder, func(msg string) { l.warn("mesh folder %q: %s", folder, msg) })
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse material %q: %w", mtlPath, err)
		}
		if len(materials) > 0 {
			mat = materials[0]
		}
	}
	if mat == nil {
		mat = DefaultMaterial(name)
	}

	if mat.DiffuseTexture == nil {
		if len(imgFiles) > 0 {
			imgPath := filepath.Join(folder, imgFiles[len(imgFiles)-1])
			tex, err := LoadTextureFile(imgPath)
			if err != nil {
				l.warn("mesh folder %q: failed to load bitmap %q: %v", folder, imgPath, err)
			} else {
				mat.DiffuseTexture = tex
			}
		}
	}
	if mat.DiffuseTexture == nil && gltfTexture != nil {
		mat.DiffuseTexture = gltfTexture
	}
	if mat.DiffuseTexture == nil {
		mat.DiffuseTexture = NewCheckerTexture(120, 120, 4, math3d.V3(1, 0, 1), math3d.V3(0, 0, 0))
	}

	return mat, nil
}
