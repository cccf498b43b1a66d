// Package scene keeps the named meshes that make up a frame.
package scene

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/models"
)

var (
	// ErrUnknownMesh is returned when a visibility override names a mesh
	// that is not registered.
	ErrUnknownMesh = errors.New("unknown mesh")

	// ErrNilMesh is returned when a nil mesh is added.
	ErrNilMesh = errors.New("nil mesh")

	// ErrNilRegistry is returned when a nil registry is merged.
	ErrNilRegistry = errors.New("nil registry")
)

// DefaultColor is the display colour given to newly added meshes.
var DefaultColor = math3d.V3(250, 250, 250)

// Visibility is either Visible with a display colour, or Hidden.
type Visibility struct {
	color   math3d.Vec3
	visible bool
}

// Visible returns a Visibility that draws the mesh with c.
func Visible(c math3d.Vec3) Visibility {
	return Visibility{color: c, visible: true}
}

// Hidden returns a Visibility that skips the mesh entirely.
func Hidden() Visibility {
	return Visibility{}
}

// Color returns the display colour and whether the mesh is visible.
func (v Visibility) Color() (math3d.Vec3, bool) {
	return v.color, v.visible
}

// IsVisible reports whether the mesh should be drawn.
func (v Visibility) IsVisible() bool {
	return v.visible
}

func (v Visibility) String() string {
	if !v.visible {
		return "hidden"
	}
	return fmt.Sprintf("visible(%g,%g,%g)", v.color.X, v.color.Y, v.color.Z)
}

type entry struct {
	mesh       *models.Mesh
	visibility Visibility
}

// Registry maps unique names to meshes and their visibility. Names are
// iterated in the order they were first added.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// AddMesh registers mesh under name with DefaultColor. An existing mesh with
// the same name is replaced and keeps its position in the iteration order.
// Meshes that fail Validate are rejected and never reach a frame.
func (r *Registry) AddMesh(name string, mesh *models.Mesh) error {
	return r.put(name, mesh, Visible(DefaultColor))
}

func (r *Registry) put(name string, mesh *models.Mesh, vis Visibility) error {
	if mesh == nil {
		return fmt.Errorf("add %q: %w", name, ErrNilMesh)
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("add %q: %w", name, err)
	}
	if _, ok := r.entries[name]; !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry{mesh: mesh, visibility: vis}
	return nil
}

// AddScene merges other into r. Names present in both end up with other's
// mesh and visibility; the earlier entry is silently overwritten.
func (r *Registry) AddScene(other *Registry) error {
	if other == nil {
		return ErrNilRegistry
	}
	for _, name := range other.order {
		e := other.entries[name]
		if err := r.put(name, e.mesh, e.visibility); err != nil {
			return err
		}
	}
	return nil
}

// SetVisibility changes how the named mesh is displayed.
func (r *Registry) SetVisibility(name string, vis Visibility) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("set visibility of %q: %w", name, ErrUnknownMesh)
	}
	e.visibility = vis
	r.entries[name] = e
	return nil
}

// Mesh returns the mesh registered under name.
func (r *Registry) Mesh(name string) (*models.Mesh, bool) {
	e, ok := r.entries[name]
	return e.mesh, ok
}

// Visibility returns the visibility of the named mesh.
func (r *Registry) Visibility(name string) (Visibility, bool) {
	e, ok := r.entries[name]
	return e.visibility, ok
}

// Len returns the number of registered meshes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the registered names in iteration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// All yields every registered name and mesh, hidden ones included.
func (r *Registry) All() iter.Seq2[string, *models.Mesh] {
	return func(yield func(string, *models.Mesh) bool) {
		for _, name := range r.order {
			if !yield(name, r.entries[name].mesh) {
				return
			}
		}
	}
}

// Visible yields the meshes that are drawn, with their display colours.
func (r *Registry) Visible() iter.Seq2[*models.Mesh, math3d.Vec3] {
	return func(yield func(*models.Mesh, math3d.Vec3) bool) {
		for _, name := range r.order {
			e := r.entries[name]
			if !e.visibility.IsVisible() {
				continue
			}
			if !yield(e.mesh, e.visibility.color) {
				return
			}
		}
	}
}
