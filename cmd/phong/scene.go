package main

import (
	"fmt"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/scene"
	"github.com/taigrr/phong/pkg/shapes"
)

const (
	demoMesh       = "sphere"
	demoResolution = 52
)

// demoScene builds the stock scene: a striped sphere in the middle of the
// default 600x400 viewport.
func demoScene() (*scene.Registry, error) {
	sphere, err := shapes.Spheroid(math3d.V3(300, 200, 20), math3d.V3(160, 160, 160), demoResolution)
	if err != nil {
		return nil, fmt.Errorf("demo scene: %w", err)
	}
	shapes.Stripes(sphere, demoResolution)

	reg := scene.NewRegistry()
	if err := reg.AddMesh(demoMesh, sphere); err != nil {
		return nil, fmt.Errorf("demo scene: %w", err)
	}
	return reg, nil
}
