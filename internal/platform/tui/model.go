package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/arcade"
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/render"
)

// Model is the Bubble Tea model for running an arcade session.
type Model struct {
	session  *arcade.Session
	screen   *core.Screen
	keys     *KeyMapper
	cfg      config.Config
	logger   *log.Logger
	width    int
	height   int
	notice   string // last screenshot result
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *arcade.Session, cfg config.Config, logger *log.Logger) (Model, error) {
	bindings, err := cfg.KeyMap()
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		session: session,
		screen:  core.NewScreen(render.Size(session.Frame())),
		keys:    NewKeyMapper(bindings, cfg.HoldRelease()),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigMsg:
		return m.handleConfig(config.Config(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.notice = m.saveScreenshot()
		return m, nil
	}

	m.keys.Press(KeyName(msg), time.Now(), m.session.Input())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keys.Expire(now, m.session.Input())
	prev := m.session.Current()
	if !m.session.Tick() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.session.Current() != prev {
		m.keys.ReleaseAll(prev.Input())
	}
	return m, tickCmd(m.cfg.FPS)
}

// handleConfig applies a hot-reloaded configuration.
func (m Model) handleConfig(cfg config.Config) (tea.Model, tea.Cmd) {
	bindings, err := cfg.KeyMap()
	if err != nil {
		m.logger.Warn("ignoring reloaded config", "error", err)
		return m, nil
	}
	m.keys.Rebind(bindings, cfg.HoldRelease())
	m.cfg = cfg
	m.logger.Info("config reloaded", "fps", cfg.FPS)
	return m, nil
}

// saveScreenshot writes the current frame as a PNG and returns a notice.
func (m Model) saveScreenshot() string {
	dir := config.ExpandHome(m.cfg.Screenshot.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "error", err)
		return "screenshot failed"
	}

	frame := m.session.Frame()
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", frame.Game, timestamp))

	f, err := os.Create(path)
	if err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return "screenshot failed"
	}
	defer f.Close()

	opt := render.DefaultImageOptions()
	opt.Scale = m.cfg.Screenshot.Scale
	if err := render.PNG(f, frame, opt); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + filepath.Base(path)
}

// View renders the current frame to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.session.Frame()
	m.screen.Resize(render.Size(frame))
	render.Text(m.screen, frame)

	out := RenderScreen(m.screen)
	if m.notice != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.notice)
	}
	if m.width == 0 || m.height == 0 {
		return out
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
}

// RunOptions configures Run.
type RunOptions struct {
	// ConfigPath is watched for edits when set; each reload is applied live.
	ConfigPath string
	// Adjust, when set, is applied to every reloaded config, e.g. to keep
	// command-line overrides.
	Adjust func(config.Config) config.Config
	Logger *log.Logger
}

// Run starts the Bubble Tea program for session and blocks until the
// player quits.
func Run(ctx context.Context, session *arcade.Session, cfg config.Config, opts RunOptions) error {
	model, err := NewModel(session, cfg, opts.Logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	if opts.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(watchCtx, opts.ConfigPath,
				func(c config.Config) {
					if opts.Adjust != nil {
						c = opts.Adjust(c)
					}
					p.Send(ConfigMsg(c))
				},
				func(err error) { model.logger.Warn("config reload failed", "error", err) },
			)
			if err != nil {
				model.logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
