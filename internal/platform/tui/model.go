package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/polycollide/internal/sim"
)

// BuildFunc creates a fresh simulation. The viewer calls it on restart and
// on scene reload.
type BuildFunc func() (*sim.Simulation, error)

// Options configures the viewer.
type Options struct {
	Width  int
	Height int
	Reload <-chan string // Changed scene files; nil disables reloading
	Logger *log.Logger
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const zoomFactor = 1.25

// Model is the Bubble Tea model for the live viewer.
type Model struct {
	build  BuildFunc
	sim    *sim.Simulation
	canvas *Canvas
	view   Viewport
	keys   KeyMap
	help   help.Model
	reload <-chan string
	logger *log.Logger

	width    int
	height   int
	paused   bool
	moved    bool // View panned or zoomed by the user
	quitting bool
	err      error
}

// NewModel builds the first simulation and returns the viewer model.
func NewModel(build BuildFunc, opts Options) (Model, error) {
	s, err := build()
	if err != nil {
		return Model{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		build:  build,
		sim:    s,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		reload: opts.Reload,
		logger: logger,
	}
	m.resize(opts.Width, opts.Height)
	return m, nil
}

// Init starts the tick loop and the reload subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.sim.Config().Step.TickRate), waitForReload(m.reload))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		m.logger.Info("scene changed", "path", filepath.Base(msg.Path))
		m.restart()
		return m, waitForReload(m.reload)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.step()
	case key.Matches(msg, m.keys.Restart):
		m.restart()
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1 / zoomFactor)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(zoomFactor)
	case key.Matches(msg, m.keys.Up):
		m.pan(0, -m.canvas.Height()/4)
	case key.Matches(msg, m.keys.Down):
		m.pan(0, m.canvas.Height()/4)
	case key.Matches(msg, m.keys.Left):
		m.pan(-m.canvas.Width()/4, 0)
	case key.Matches(msg, m.keys.Right):
		m.pan(m.canvas.Width()/4, 0)
	case key.Matches(msg, m.keys.Fit):
		m.fit()
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}
	return m, nil
}

// handleTick advances the simulation unless paused or failed.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && m.err == nil {
		m.step()
	}
	return m, tickCmd(m.sim.Config().Step.TickRate)
}

func (m *Model) step() {
	if err := m.sim.Step(m.sim.Config().DeltaTime()); err != nil {
		m.logger.Error("step failed", "scene", m.sim.Scene().ID, "tick", m.sim.Tick(), "error", err)
		m.err = err
		m.paused = true
	}
}

// restart rebuilds the simulation. A failed rebuild keeps the old one
// running and shows the error.
func (m *Model) restart() {
	s, err := m.build()
	if err != nil {
		m.logger.Error("rebuild failed", "error", err)
		m.err = err
		return
	}
	m.sim = s
	m.err = nil
	m.fit()
}

// resize reserves the status and help lines and refits if the user has not
// moved the view.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := height - 1 - lipgloss.Height(m.help.View(m.keys))
	if m.canvas == nil {
		m.canvas = NewCanvas(width, rows)
	} else {
		m.canvas.Resize(width, rows)
	}
	m.help.Width = width
	if !m.moved || m.view.Scale == 0 {
		m.fit()
	}
}

func (m *Model) fit() {
	m.moved = false
	m.view = Fit(WorldBounds(m.sim.World()), m.canvas.Width(), m.canvas.Height())
}

func (m *Model) zoom(f float64) {
	center := m.view.ToWorld(m.canvas.Width()/2, m.canvas.Height()/2)
	m.view.Scale *= f
	m.view.Origin.X = center.X - m.view.Scale*float64(m.canvas.Width())/2
	m.view.Origin.Y = center.Y - m.view.Scale*float64(m.canvas.Height())
	m.moved = true
}

func (m *Model) pan(dx, dy int) {
	m.view.Origin.X += float64(dx) * m.view.Scale
	m.view.Origin.Y += float64(dy) * m.view.Scale * 2
	m.moved = true
}

// saveScreenshot writes the current frame without colors to
// ~/.polycollide/screenshots.
func (m *Model) saveScreenshot() {
	m.canvas.Clear()
	Rasterize(m.canvas, m.sim.World(), m.view, m.sim.Contacts())

	dir := filepath.Join(os.Getenv("HOME"), ".polycollide", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%06d_%s.txt", m.sim.Scene().ID, m.sim.Tick(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.canvas.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Clear()
	Rasterize(m.canvas, m.sim.World(), m.view, m.sim.Contacts())

	var sb strings.Builder
	sb.WriteString(RenderCanvas(m.canvas))
	sb.WriteRune('\n')
	sb.WriteString(m.statusLine())
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) statusLine() string {
	stats := m.sim.Stats()
	line := statusStyle.Render(fmt.Sprintf("%s  tick %s  bodies %d  collisions %s  touches %s  corrections %s  depth %.3f",
		m.sim.Scene().ID,
		humanize.Comma(int64(m.sim.Tick())),
		m.sim.World().Len(),
		humanize.Comma(int64(stats.Collisions)),
		humanize.Comma(int64(stats.Touches)),
		humanize.Comma(int64(stats.Corrections)),
		stats.MaxDepth,
	))
	if m.paused {
		line += "  " + pausedStyle.Render("PAUSED")
	}
	if m.err != nil {
		line += "  " + errorStyle.Render(m.err.Error())
	}
	return line
}

// Paused reports whether the viewer is paused.
func (m Model) Paused() bool { return m.paused }

// Simulation returns the simulation being shown.
func (m Model) Simulation() *sim.Simulation { return m.sim }

// Run starts the viewer and blocks until it exits.
func Run(build BuildFunc, opts Options) error {
	m, err := NewModel(build, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
