// Package config provides YAML-based configuration loading for the game.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Config contains the complete game configuration.
type Config struct {
	Timing  TimingConfig `yaml:"timing"`
	Piece   PieceConfig  `yaml:"piece"`
	Grid    GridConfig   `yaml:"grid"`
	Render  RenderConfig `yaml:"render"`
	Keys    KeysConfig   `yaml:"keys"`
	Log     LogConfig    `yaml:"log"`
	Backend string       `yaml:"backend"`
}

// TimingConfig holds the two independent clocks of the engine.
type TimingConfig struct {
	Gravity time.Duration `yaml:"gravity"` // Interval between gravity ticks
	Frame   time.Duration `yaml:"frame"`   // Interval between rendered frames
}

// PieceConfig describes the single falling piece created at startup.
type PieceConfig struct {
	Shape    string `yaml:"shape"`
	Color    string `yaml:"color"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Rotation int    `yaml:"rotation"`
}

// GridConfig describes the initial grid content.
type GridConfig struct {
	FillColor string `yaml:"fill_color"` // Color stored in every empty cell
}

// RenderConfig controls how cells are drawn.
type RenderConfig struct {
	Filled        string `yaml:"filled"`
	Empty         string `yaml:"empty"`
	Color         string `yaml:"color"`           // Fixed display color for filled cells
	CellColors    bool   `yaml:"cell_colors"`     // Use each cell's stored color instead
	ColorAllCells bool   `yaml:"color_all_cells"` // Materialization colors all piece cells
}

// KeysConfig lists key names per action, in Bubble Tea spelling.
type KeysConfig struct {
	Up        []string `yaml:"up"`
	Down      []string `yaml:"down"`
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Interrupt []string `yaml:"interrupt"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	File  string `yaml:"file"`  // Empty disables logging
	Level string `yaml:"level"` // debug, info, warn, error
}

// Piece resolves the configured piece.
func (p PieceConfig) Piece() (core.Piece, error) {
	shape, err := core.ParseShape(p.Shape)
	if err != nil {
		return core.Piece{}, err
	}
	color, err := core.ParseColor(p.Color)
	if err != nil {
		return core.Piece{}, err
	}
	return core.Piece{
		Shape:    shape,
		Color:    color,
		Rotation: p.Rotation,
		X:        p.X,
		Y:        p.Y,
	}, nil
}

// Color resolves the color stored in empty grid cells.
func (g GridConfig) Color() (core.Color, error) {
	return core.ParseColor(g.FillColor)
}

// FilledGlyph returns the first rune of the filled glyph.
func (r RenderConfig) FilledGlyph() rune {
	return firstRune(r.Filled, '█')
}

// EmptyGlyph returns the first rune of the empty glyph.
func (r RenderConfig) EmptyGlyph() rune {
	return firstRune(r.Empty, ' ')
}

// DisplayColor resolves the fixed color filled cells are drawn with.
func (r RenderConfig) DisplayColor() (core.Color, error) {
	return core.ParseColor(r.Color)
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Timing.Gravity <= 0 {
		problems = append(problems, "timing.gravity must be positive")
	}
	if c.Timing.Frame <= 0 {
		problems = append(problems, "timing.frame must be positive")
	}
	if _, err := c.Piece.Piece(); err != nil {
		problems = append(problems, "piece: "+err.Error())
	}
	if c.Piece.X < 0 || c.Piece.Y < 0 {
		problems = append(problems, "piece.x and piece.y must not be negative")
	}
	if _, err := c.Grid.Color(); err != nil {
		problems = append(problems, "grid.fill_color: "+err.Error())
	}
	if _, err := c.Render.DisplayColor(); err != nil {
		problems = append(problems, "render.color: "+err.Error())
	}
	for name, keys := range map[string][]string{
		"up":        c.Keys.Up,
		"down":      c.Keys.Down,
		"left":      c.Keys.Left,
		"right":     c.Keys.Right,
		"interrupt": c.Keys.Interrupt,
	} {
		if len(keys) == 0 {
			problems = append(problems, fmt.Sprintf("keys.%s must list at least one key", name))
		}
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			problems = append(problems, "log.level: "+err.Error())
		}
	}
	if c.Backend == "" {
		problems = append(problems, "backend is required")
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
