package tui

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/arcade"
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	_ "github.com/vovakirdan/grid-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/grid-arcade/internal/games/robots"
	_ "github.com/vovakirdan/grid-arcade/internal/games/snake"
)

func newModel(t *testing.T, cfg config.Config) (Model, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf)
	session, err := arcade.New("blocks", arcade.Options{
		Rand:   rand.New(rand.NewSource(1)),
		Logger: logger,
	})
	require.NoError(t, err)
	m, err := NewModel(session, cfg, logger)
	require.NoError(t, err)
	return m, &buf
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelRejectsBadKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string][]string{"jump": {"space"}}

	_, err := NewModel(nil, cfg, nil)
	assert.Error(t, err)
}

func TestModelKeyReachesGame(t *testing.T) {
	m, _ := newModel(t, config.Default())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, m.session.Input().Held(core.IntentRight))
}

func TestModelSwitchForgetsHeldKeys(t *testing.T) {
	m, _ := newModel(t, config.Default())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotEmpty(t, m.keys.lastSeen)
	m, _ = update(t, m, TickMsg(time.Now()))

	assert.NotEqual(t, "blocks", m.session.Current().ID())
	assert.Empty(t, m.keys.lastSeen)
	assert.False(t, m.session.Input().Held(core.IntentNext))
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _ := newModel(t, config.Default())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelEscapeInMenuQuits(t *testing.T) {
	m, _ := newModel(t, config.Default())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := update(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelTickStartsGame(t *testing.T) {
	m, _ := newModel(t, config.Default())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.True(t, m.session.Frame().Status.Phase.Playing())
}

func TestModelConfigReload(t *testing.T) {
	m, buf := newModel(t, config.Default())

	bad := config.Default()
	bad.Keys = map[string][]string{"jump": {"space"}}
	m, _ = update(t, m, ConfigMsg(bad))
	assert.Equal(t, core.IntentDrop, m.keys.Lookup("space"))
	assert.Contains(t, buf.String(), "ignoring reloaded config")

	good := config.Default()
	good.FPS = 40
	good.Keys = map[string][]string{"drop": {"b"}}
	m, _ = update(t, m, ConfigMsg(good))
	assert.Equal(t, 40, m.cfg.FPS)
	assert.Equal(t, core.IntentDrop, m.keys.Lookup("b"))
	assert.Equal(t, core.IntentNone, m.keys.Lookup("space"))
}

func TestModelView(t *testing.T) {
	m, _ := newModel(t, config.Default())

	plain := m.View()
	assert.Contains(t, plain, "Blocks")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Blocks")
}

func TestModelScreenshot(t *testing.T) {
	cfg := config.Default()
	cfg.Screenshot.Dir = t.TempDir()
	cfg.Screenshot.Scale = 1
	m, _ := newModel(t, cfg)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, m.notice, "saved blocks_")

	entries, err := os.ReadDir(cfg.Screenshot.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}
