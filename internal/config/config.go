// Package config provides YAML-based configuration loading and hot reload
// for the arcade.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Config contains all arcade settings.
type Config struct {
	FPS        int                 `yaml:"fps"`
	Seed       int64               `yaml:"seed"`
	Scores     ScoresConfig        `yaml:"scores"`
	Input      InputConfig         `yaml:"input"`
	Keys       map[string][]string `yaml:"keys"` // intent name -> key names
	Window     WindowConfig        `yaml:"window"`
	Screenshot ScreenshotConfig    `yaml:"screenshot"`
	Web        WebConfig           `yaml:"web"`
	SSH        SSHConfig           `yaml:"ssh"`
}

// ScoresConfig selects where best-score tables live.
type ScoresConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Dir     string `yaml:"dir"`
	DB      string `yaml:"db"`
}

// InputConfig tunes the terminal hold tracker.
type InputConfig struct {
	HoldReleaseMS int `yaml:"hold_release_ms"`
}

// WindowConfig defines the windowed frontend.
type WindowConfig struct {
	CellSize int `yaml:"cell_size"`
}

// ScreenshotConfig defines PNG export of frames.
type ScreenshotConfig struct {
	Scale int    `yaml:"scale"`
	Dir   string `yaml:"dir"`
}

// WebConfig defines the read-only HTTP API.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Runtime returns the settings a driver needs to run games.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: c.FPS, Seed: c.Seed}
}

// HoldRelease returns the hold tracker timeout.
func (c Config) HoldRelease() time.Duration {
	return time.Duration(c.Input.HoldReleaseMS) * time.Millisecond
}

// KeyMap inverts Keys into key name -> intent.
// A key bound to several intents triggers all of them.
func (c Config) KeyMap() (map[string]core.Intent, error) {
	m := make(map[string]core.Intent)
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		intent, ok := core.ParseIntent(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown intent %q in keys", name)
		}
		for _, key := range c.Keys[name] {
			m[strings.ToLower(key)] |= intent
		}
	}
	return m, nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	switch c.Scores.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown scores backend %q", c.Scores.Backend)
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
