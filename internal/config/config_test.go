package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 600 || cfg.Window.Height != 400 {
		t.Errorf("expected 600x400, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Wireframe Viewer" {
		t.Errorf("expected title 'Wireframe Viewer', got %q", cfg.Window.Title)
	}
	if cfg.Display.Background != (RGB{10, 10, 50}) {
		t.Errorf("expected background 10,10,50, got %v", cfg.Display.Background)
	}
	if cfg.Display.Nodes {
		t.Error("expected nodes to be hidden by default")
	}
	if cfg.Input.Step != 5 {
		t.Errorf("expected step 5, got %g", cfg.Input.Step)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestDefaultRenderContext(t *testing.T) {
	got := Default().RenderContext()
	want := render.DefaultContext(600, 400)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 320
  height: 240
display:
  background: [0, 0, 0]
  perspective: 500
  nodes: true
lighting:
  light: [1, 0, 0]
  shininess: 8
input:
  step: 2.5
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 320 || cfg.Window.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	// Unset keys keep their defaults.
	if cfg.Window.Title != "Wireframe Viewer" || !cfg.Display.Edges {
		t.Errorf("defaults lost: %+v", cfg)
	}

	rc := cfg.RenderContext()
	if rc.Perspective != 500 || !rc.ShowNodes {
		t.Errorf("display settings not applied: %+v", rc)
	}
	if rc.Background != render.RGB(0, 0, 0) {
		t.Errorf("background = %v", rc.Background)
	}
	if rc.Light != math3d.V3(1, 0, 0) {
		t.Errorf("light = %v", rc.Light)
	}
	if rc.Material.Shininess != 8 || rc.Material.Diffuse != 0.4 {
		t.Errorf("material = %+v", rc.Material)
	}
	if cfg.Input.Step != 2.5 || cfg.Logging.Level != "debug" {
		t.Errorf("input/logging not applied: %+v %+v", cfg.Input, cfg.Logging)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 600 {
		t.Errorf("expected defaults, got %+v", cfg.Window)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("window:\n  width: wide\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("window:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero height", func(c *Config) { c.Window.Height = 0 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"negative perspective", func(c *Config) { c.Display.Perspective = -1 }},
		{"negative radius", func(c *Config) { c.Display.NodeRadius = -2 }},
		{"zero step", func(c *Config) { c.Input.Step = 0 }},
		{"zero view", func(c *Config) { c.Lighting.View = Vec{} }},
		{"negative ambient", func(c *Config) { c.Lighting.Ambient = -0.1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Display.Perspective = 250
	cfg.Display.NodeColor = RGB{1, 2, 3}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}
