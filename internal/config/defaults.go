package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultYAML []byte

// Default returns the built-in configuration: a red I piece at (5, 0),
// gravity every second and a frame every 500ms.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			Gravity: time.Second,
			Frame:   500 * time.Millisecond,
		},
		Piece: PieceConfig{
			Shape: "I",
			Color: "red",
			X:     5,
			Y:     0,
		},
		Grid: GridConfig{
			FillColor: "cyan",
		},
		Render: RenderConfig{
			Filled: "█",
			Empty:  " ",
			Color:  "cyan",
		},
		Keys: KeysConfig{
			Up:        []string{"w"},
			Down:      []string{"s"},
			Left:      []string{"a"},
			Right:     []string{"d"},
			Interrupt: []string{"ctrl+c"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Backend: "tea",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
