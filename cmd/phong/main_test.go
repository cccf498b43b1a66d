package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/phong/internal/config"
	"github.com/taigrr/phong/pkg/render"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", "--nodes", "--perspective", "300")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Viewport:    600x400",
		"Layers:      faces, nodes",
		"Perspective: 300",
		"Mesh:        sphere (visible(250,250,250))",
		"Faces:       2704",
		"Center:      (300, 200, 20)",
		"Size:        (320, 320, 320)",
		"On screen:   true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if _, err := execute(t, "snapshot", "--out", path, "--keys", "dd", "--width", "600", "--height", "400"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 400 {
		t.Errorf("bounds = %v", b)
	}

	// Corner is background, the sphere centre is lit.
	r, g, b, _ := img.At(0, 0).RGBA()
	if bg := render.ColorMidnight; r>>8 != uint32(bg.R) || g>>8 != uint32(bg.G) || b>>8 != uint32(bg.B) {
		t.Errorf("corner = %d,%d,%d, want background", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(300, 200).RGBA()
	if r>>8 < 100 {
		t.Errorf("centre red = %d, want a lit face", r>>8)
	}
}

func TestConfigWritesEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phong.yaml")
	if _, err := execute(t, "config", "--out", path, "--perspective", "250", "--nodes"); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Perspective != 250 || !cfg.Display.Nodes {
		t.Errorf("flags not saved: %+v", cfg.Display)
	}
	if cfg.Display.Edges {
		t.Error("demo edge default not saved")
	}
}

func TestSnapshotBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if _, err := execute(t, "snapshot", "--out", path, "--keys", "dz"); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestRunUnknownBackend(t *testing.T) {
	_, err := execute(t, "run", "--backend", "teletype")
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("err = %v", err)
	}
}

func TestInvalidFlagConfig(t *testing.T) {
	if _, err := execute(t, "info", "--width", "0"); err == nil {
		t.Error("expected a validation error")
	}
}
