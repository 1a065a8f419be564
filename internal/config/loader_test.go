package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "arcade.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
fps: 30
scores:
  backend: sqlite
keys:
  up: [k, up]
ssh:
  idle_timeout: 90s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.FPS != 30 || cfg.Scores.Backend != BackendSQLite {
		t.Errorf("fps = %d, backend = %q", cfg.FPS, cfg.Scores.Backend)
	}
	if cfg.Scores.DB != Default().Scores.DB {
		t.Errorf("db = %q, expected the default to survive", cfg.Scores.DB)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("idle_timeout = %v, expected 90s", cfg.SSH.IdleTimeout)
	}
	if got := cfg.Keys["down"]; !reflect.DeepEqual(got, []string{"down", "s"}) {
		t.Errorf("keys.down = %v, expected the default binding", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "fps: [1"},
		{"zero fps", "fps: 0"},
		{"unknown backend", "scores:\n  backend: redis"},
		{"unknown intent", "keys:\n  jump: [space]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.body)
			if _, err := Load(path); err == nil {
				t.Error("Load() succeeded, expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path succeeded")
	}
}

func TestKeyMap(t *testing.T) {
	cfg := Default()
	cfg.Keys["primary"] = []string{"Z", "space"}

	m, err := cfg.KeyMap()
	if err != nil {
		t.Fatalf("KeyMap() failed: %v", err)
	}

	tests := []struct {
		key      string
		expected core.Intent
	}{
		{"up", core.IntentUp},
		{"esc", core.IntentEscape},
		{"shift+tab", core.IntentPrev},
		{"z", core.IntentPrimary},
		{"space", core.IntentDrop | core.IntentPrimary},
		{"q", core.IntentNone},
	}
	for _, tt := range tests {
		if got := m[tt.key]; got != tt.expected {
			t.Errorf("KeyMap()[%q] = %v, expected %v", tt.key, got, tt.expected)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.arcade/x"); got != filepath.Join(home, ".arcade/x") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("ExpandHome() = %q, expected unchanged", got)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "fps: 20\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 16)
	errs := make(chan error, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path,
			func(c Config) {
				select {
				case changes <- c:
				default:
				}
			},
			func(err error) {
				select {
				case errs <- err:
				default:
				}
			})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "fps: 40\n")

	// A write may arrive as truncate + write; wait for the final content.
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case cfg := <-changes:
			reloaded = cfg.FPS == 40
		case err := <-errs:
			t.Fatalf("Watch reported %v", err)
		case <-timeout:
			t.Fatal("no reload after the file changed")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() = %v after cancel", err)
	}
}
