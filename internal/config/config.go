// Package config handles viewer configuration: defaults, YAML files and
// conversion into a render context.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/phong/pkg/input"
	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/render"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Display  DisplayConfig  `yaml:"display"`
	Lighting LightingConfig `yaml:"lighting"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds the viewport settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// DisplayConfig holds what is drawn and how.
type DisplayConfig struct {
	Background  RGB     `yaml:"background"`
	NodeColor   RGB     `yaml:"node_color"`
	NodeRadius  float64 `yaml:"node_radius"`
	Perspective float64 `yaml:"perspective"` // 0 disables
	Faces       bool    `yaml:"faces"`
	Edges       bool    `yaml:"edges"`
	Nodes       bool    `yaml:"nodes"`
}

// LightingConfig holds the light, the view and the material.
type LightingConfig struct {
	Light     Vec     `yaml:"light"`
	Color     Vec     `yaml:"color"`
	View      Vec     `yaml:"view"`
	Diffuse   float64 `yaml:"diffuse"`
	Specular  float64 `yaml:"specular"`
	Ambient   float64 `yaml:"ambient"`
	Shininess float64 `yaml:"shininess"`
}

// InputConfig holds key handling settings.
type InputConfig struct {
	Step float64 `yaml:"step"` // degrees per frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Vec is a 3-vector written as a YAML sequence: [0, 0, -1].
type Vec [3]float64

// Vec3 converts v.
func (v Vec) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// RGB is a colour written as a YAML sequence: [10, 10, 50].
type RGB [3]uint8

// Color converts c to an opaque render.Color.
func (c RGB) Color() render.Color {
	return render.RGB(c[0], c[1], c[2])
}

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Wireframe Viewer",
			Width:  600,
			Height: 400,
			FPS:    30,
		},
		Display: DisplayConfig{
			Background:  RGB{10, 10, 50},
			NodeColor:   RGB{250, 250, 250},
			NodeRadius:  4,
			Perspective: 0,
			Faces:       true,
			Edges:       true,
			Nodes:       false,
		},
		Lighting: LightingConfig{
			Light:     Vec{0, 0, -1},
			Color:     Vec{1, 1, 1},
			View:      Vec{0, 0, -1},
			Diffuse:   render.DefaultMaterial.Diffuse,
			Specular:  render.DefaultMaterial.Specular,
			Ambient:   render.DefaultMaterial.Ambient,
			Shininess: render.DefaultMaterial.Shininess,
		},
		Input: InputConfig{
			Step: input.DefaultStep,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings that would otherwise break rendering.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Window.FPS)
	case c.Display.Perspective < 0:
		return fmt.Errorf("%w: perspective %g is negative", ErrInvalid, c.Display.Perspective)
	case c.Display.NodeRadius < 0:
		return fmt.Errorf("%w: node radius %g is negative", ErrInvalid, c.Display.NodeRadius)
	case c.Input.Step <= 0:
		return fmt.Errorf("%w: step %g must be positive", ErrInvalid, c.Input.Step)
	case c.Lighting.View.Vec3().Len() == 0:
		return fmt.Errorf("%w: view direction is zero", ErrInvalid)
	}
	for _, k := range []struct {
		name string
		v    float64
	}{
		{"diffuse", c.Lighting.Diffuse},
		{"specular", c.Lighting.Specular},
		{"ambient", c.Lighting.Ambient},
		{"shininess", c.Lighting.Shininess},
	} {
		if k.v < 0 {
			return fmt.Errorf("%w: %s %g is negative", ErrInvalid, k.name, k.v)
		}
	}
	return nil
}

// RenderContext converts the config into a render context.
func (c *Config) RenderContext() render.Context {
	rc := render.DefaultContext(c.Window.Width, c.Window.Height)
	rc.Light = c.Lighting.Light.Vec3()
	rc.LightColor = c.Lighting.Color.Vec3()
	rc.View = c.Lighting.View.Vec3()
	rc.Material = render.Material{
		Diffuse:   c.Lighting.Diffuse,
		Specular:  c.Lighting.Specular,
		Ambient:   c.Lighting.Ambient,
		Shininess: c.Lighting.Shininess,
	}
	rc.Perspective = c.Display.Perspective
	rc.ShowFaces = c.Display.Faces
	rc.ShowEdges = c.Display.Edges
	rc.ShowNodes = c.Display.Nodes
	rc.Background = c.Display.Background.Color()
	rc.NodeColor = c.Display.NodeColor.Color()
	rc.NodeRadius = c.Display.NodeRadius
	return rc
}
