// Package scene loads scene text files into a running world: camera,
// meshes, lights, display settings, and the per-frame behaviors that
// animate them (§4.8).
package scene

import (
	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/models"
	"github.com/luccafm1/c3d-go/pkg/render"
)

// NamedMesh pairs a loaded mesh with the scene-file name behaviors
// reference it by.
type NamedMesh struct {
	Name string
	Mesh *models.Mesh

	// AssetFolder is the folder the mesh was loaded from, kept so
	// swapmesh/loopmesh can re-load sibling files (§4.8).
	AssetFolder string
}

// Scene is the fully loaded, mutable world a renderer steps frame by
// frame. Behaviors are the only mutators (§5); everything else is read
// during rasterization.
type Scene struct {
	Camera *render.Camera
	Lights []render.Light
	Meshes []NamedMesh

	Background math3d.Vec3

	Continuous []Behavior
	Startup    []Behavior

	AssetRoot string

	// Frame is incremented once per rendered frame, after rasterization and
	// before composition (§5).
	Frame int

	// Running is cleared to stop the per-frame loop (§5).
	Running bool
}

// New returns an empty, running scene rooted at assetRoot (the directory
// containing `models/` that mesh folders are resolved against, §6).
func New(assetRoot string) *Scene {
	return &Scene{
		Camera:    render.NewCamera(),
		AssetRoot: assetRoot,
		Running:   true,
	}
}

// MeshByName returns the mesh named name, or nil if none matches. Lookup
// misses are not errors: behaviors silently no-op on an unknown name
// (§4.8, §7).
func (s *Scene) MeshByName(name string) *NamedMesh {
	for i := range s.Meshes {
		if s.Meshes[i].Name == name {
			return &s.Meshes[i]
		}
	}
	return nil
}

// MeshByIndex returns the mesh at index, or nil if index is out of range.
func (s *Scene) MeshByIndex(index int) *NamedMesh {
	if index < 0 || index >= len(s.Meshes) {
		return nil
	}
	return &s.Meshes[index]
}

// Step runs one frame's worth of behaviors (continuous every frame,
// startup only at frame 0), in registration order, before any
// rasterization happens for that frame (§5).
func (s *Scene) Step() {
	if s.Frame == 0 {
		for _, b := range s.Startup {
			b.Apply(s)
		}
	}
	for _, b := range s.Continuous {
		b.Apply(s)
	}
}

// Advance increments the frame counter; callers call this after
// rasterization and before composition, per §5's ordering rule.
func (s *Scene) Advance() {
	s.Frame++
}
