package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

//go:embed defaults/arcade.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/arcade.yaml.
func Default() Config {
	return Config{
		FPS: core.MaxLevel,
		Scores: ScoresConfig{
			Backend: BackendFile,
			Dir:     "~/.arcade/scores",
			DB:      "~/.arcade/arcade.db",
		},
		Input: InputConfig{
			HoldReleaseMS: 100,
		},
		Keys: map[string][]string{
			"escape":    {"esc", "p"},
			"up":        {"up", "w"},
			"down":      {"down", "s"},
			"left":      {"left", "a"},
			"right":     {"right", "d"},
			"primary":   {"z", "j"},
			"secondary": {"x", "k"},
			"drop":      {"space", "enter"},
			"next":      {"tab"},
			"prev":      {"shift+tab"},
		},
		Window: WindowConfig{
			CellSize: 24,
		},
		Screenshot: ScreenshotConfig{
			Scale: 4,
			Dir:   "~/.arcade/shots",
		},
		Web: WebConfig{
			Addr: ":8080",
		},
		SSH: SSHConfig{
			Addr:        ":2222",
			HostKey:     ".ssh/arcade_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
