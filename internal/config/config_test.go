package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "tetris.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// chdir changes the working directory for the rest of the test and
// restores it on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

// isolate points HOME and the working directory at empty temp dirs so the
// search order falls through to the embedded default.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}

	def := Default()
	if cfg.Timing != def.Timing {
		t.Errorf("embedded timing = %+v, expected %+v", cfg.Timing, def.Timing)
	}
	if cfg.Piece != def.Piece {
		t.Errorf("embedded piece = %+v, expected %+v", cfg.Piece, def.Piece)
	}
	if cfg.Render != def.Render {
		t.Errorf("embedded render = %+v, expected %+v", cfg.Render, def.Render)
	}
	if cfg.Backend != def.Backend {
		t.Errorf("embedded backend = %q, expected %q", cfg.Backend, def.Backend)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timing.Gravity != time.Second {
		t.Errorf("Gravity = %v, expected 1s", cfg.Timing.Gravity)
	}
	if cfg.Timing.Frame != 500*time.Millisecond {
		t.Errorf("Frame = %v, expected 500ms", cfg.Timing.Frame)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
timing:
  gravity: 250ms
piece:
  color: green
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timing.Gravity != 250*time.Millisecond {
		t.Errorf("Gravity = %v, expected 250ms", cfg.Timing.Gravity)
	}
	// Unset fields keep their defaults.
	if cfg.Timing.Frame != 500*time.Millisecond {
		t.Errorf("Frame = %v, expected default 500ms", cfg.Timing.Frame)
	}

	p, err := cfg.Piece.Piece()
	if err != nil {
		t.Fatalf("Piece() failed: %v", err)
	}
	if p.Color != core.ColorGreen || p.Shape != core.ShapeI || p.X != 5 {
		t.Errorf("Piece() = %v, expected green I at x=5", p)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(dir, "configs"), "backend: tcell\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "tcell" {
		t.Errorf("Backend = %q, expected tcell from ./configs", cfg.Backend)
	}
}

func TestLoadUserConfigWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	if err := os.MkdirAll(filepath.Join(home, ".tetris"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".tetris", "config.yaml"), []byte("piece:\n  x: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Piece.X != 2 {
		t.Errorf("Piece.X = %d, expected 2 from user config", cfg.Piece.X)
	}
}

func TestLoadMalformedUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	if err := os.MkdirAll(filepath.Join(home, ".tetris"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := writeUserConfig(t, home, "piece: [x\n")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected parse error for malformed user config, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Load() error = %q, expected it to name %s", err, path)
	}
}

func TestLoadMalformedLocalConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(dir, "configs"), "timing: [not, a, map\n")

	if _, err := Load(""); err == nil {
		t.Fatal("expected parse error for malformed ./configs/tetris.yaml, got nil")
	}
}

func writeUserConfig(t *testing.T, home, content string) string {
	t.Helper()
	path := filepath.Join(home, ".tetris", "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/nonexistent/tetris.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "timing: [not, a, map\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero gravity", func(c *Config) { c.Timing.Gravity = 0 }, "timing.gravity"},
		{"negative frame", func(c *Config) { c.Timing.Frame = -time.Second }, "timing.frame"},
		{"bad shape", func(c *Config) { c.Piece.Shape = "Z" }, "piece"},
		{"bad color", func(c *Config) { c.Piece.Color = "mauve" }, "piece"},
		{"negative anchor", func(c *Config) { c.Piece.X = -1 }, "piece.x"},
		{"bad fill", func(c *Config) { c.Grid.FillColor = "nope" }, "grid.fill_color"},
		{"bad display color", func(c *Config) { c.Render.Color = "nope" }, "render.color"},
		{"no left keys", func(c *Config) { c.Keys.Left = nil }, "keys.left"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"no backend", func(c *Config) { c.Backend = "" }, "backend"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, expected ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %q, expected mention of %q", err, tc.want)
			}
		})
	}
}

func TestRenderGlyphs(t *testing.T) {
	r := RenderConfig{Filled: "██", Empty: ""}
	if r.FilledGlyph() != '█' {
		t.Errorf("FilledGlyph() = %q, expected first rune", r.FilledGlyph())
	}
	if r.EmptyGlyph() != ' ' {
		t.Errorf("EmptyGlyph() = %q, expected fallback space", r.EmptyGlyph())
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Timing != Default().Timing {
		t.Errorf("round-tripped timing = %+v", cfg.Timing)
	}
}
