package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/intro"
	"github.com/vovakirdan/tui-rain/internal/rain"
	"github.com/vovakirdan/tui-rain/internal/storage"
)

// thresholdStep is how much +/- move the reveal threshold.
const thresholdStep = 16

// Mode is the screen the host is showing.
type Mode int

const (
	ModeBoot Mode = iota
	ModeTerminal
	ModeRain
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBoot:
		return "boot"
	case ModeTerminal:
		return "terminal"
	case ModeRain:
		return "rain"
	default:
		return "unknown"
	}
}

// Options configures a Model.
type Options struct {
	Config config.RainConfig

	// Image is the reveal target; nil runs plain rain. ImageName labels it
	// in session records.
	Image     *rain.Bitmap
	ImageName string

	// Width and Height are the initial terminal size. Non-positive values
	// fall back to the configured screen size until the first resize.
	Width  int
	Height int

	SkipIntro bool
	Seed      int64

	// Clock returns monotonic milliseconds. Defaults to time since NewModel.
	Clock func() int64

	Logger   *log.Logger
	Lipgloss *lipgloss.Renderer
}

// frameSink keeps the rows pushed by the engine for the next View.
type frameSink struct {
	rows   []string
	pushes int
}

func (f *frameSink) RenderRows(rows []string) {
	f.rows = append(f.rows[:0], rows...)
	f.pushes++
}

// Model is the Bubble Tea model running intro screens and the rain engine.
type Model struct {
	cfg     config.RainConfig
	runtime core.RuntimeConfig
	clock   func() int64
	logger  *log.Logger

	engine *rain.Engine
	frame  *frameSink
	image  *rain.Bitmap
	totals *rain.Stats

	boot   core.Scene
	term   core.Scene
	screen *core.Screen
	mode   Mode

	// fading is set while an intro screen fades out; fade is its progress
	// in [0, 1].
	fading    bool
	fadeStart int64
	fade      float64
	textColor colorful.Color
	bgColor   colorful.Color

	keys     KeyMap
	help     help.Model
	showHelp bool
	text     lipgloss.Style
	status   lipgloss.Style

	quitting bool
}

// NewModel creates a model. The rain engine is built hidden and becomes
// visible when the intro finishes, or at once when the intro is skipped.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Engine.ScreenWidth, cfg.Engine.ScreenHeight
	}

	clock := opts.Clock
	if clock == nil {
		start := time.Now()
		clock = func() int64 { return time.Since(start).Milliseconds() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	lg := opts.Lipgloss
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}

	engineOpts := []rain.Option{
		rain.WithClock(clock),
		rain.WithLogger(logger),
		rain.WithLipgloss(lg),
	}
	if opts.Seed != 0 {
		engineOpts = append(engineOpts, rain.WithSeed(opts.Seed))
	}

	m := Model{
		cfg: cfg,
		runtime: core.RuntimeConfig{
			ScreenW:      width,
			ScreenH:      height,
			TickInterval: time.Duration(cfg.Engine.TickIntervalMs) * time.Millisecond,
			Seed:         opts.Seed,
		},
		clock:    clock,
		logger:   logger,
		engine:   rain.New(engineOpts...),
		frame:    &frameSink{},
		image:    opts.Image,
		totals:   &rain.Stats{},
		boot:     intro.NewBoot(cfg.Intro),
		term:     intro.NewTerminal(cfg.Intro),
		screen:   core.NewScreen(width, height),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		showHelp: cfg.Host.ShowHelp,
		text:     lg.NewStyle().Foreground(lipgloss.Color(orHex(cfg.Palette.Bright, "#00FF00"))),
		status:   lg.NewStyle().Foreground(lipgloss.Color("245")),

		textColor: hexColor(cfg.Palette.Bright, "#00FF00"),
		bgColor:   hexColor(cfg.Palette.Background, "#000000"),
	}

	ec, err := cfg.ToEngine(width, height)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	m.engine.Init(m.frame, ec)
	m.engine.SetMinImageBrightness(cfg.MinImageBrightness())
	if m.image != nil {
		m.engine.SetImage(m.image)
	}

	if cfg.Intro.Enabled && !opts.SkipIntro {
		m.startIntro()
	} else {
		m.enterRain()
	}
	return m, nil
}

func orHex(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func hexColor(s, def string) colorful.Color {
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	c, _ := colorful.Hex(def)
	return c
}

// Init starts the scheduler.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickInterval)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		m.step(m.clock())
		return m, tickCmd(m.runtime.TickInterval)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Skip):
		if m.mode != ModeRain {
			m.enterRain()
		}
	case key.Matches(msg, m.keys.Visibility):
		if m.mode == ModeRain {
			m.engine.SetVisible(!m.engine.Visible())
		}
	case key.Matches(msg, m.keys.Restart):
		m.restart()
	case key.Matches(msg, m.keys.Image):
		m.toggleImage()
	case key.Matches(msg, m.keys.Brighter):
		m.adjustThreshold(thresholdStep)
	case key.Matches(msg, m.keys.Dimmer):
		m.adjustThreshold(-thresholdStep)
	}
	return m, nil
}

// step advances whichever screen is active to now. A finished intro screen
// fades out before the next one starts.
func (m *Model) step(now int64) {
	if m.mode != ModeRain && m.fading {
		m.stepFade(now)
		return
	}
	switch m.mode {
	case ModeBoot:
		m.boot.Update(now)
		if m.boot.Done() {
			m.startFade(now)
		}
	case ModeTerminal:
		m.term.Update(now)
		if m.term.Done() {
			m.startFade(now)
		}
	case ModeRain:
		m.engine.Tick(now)
	}
}

func (m *Model) startFade(now int64) {
	m.fading = true
	m.fadeStart = now
	m.fade = 0
	m.stepFade(now)
}

// stepFade moves the fade on and leaves the intro screen once it is complete.
func (m *Model) stepFade(now int64) {
	if d := int64(m.cfg.Intro.FadeOutMs); d > 0 && now-m.fadeStart < d {
		m.fade = float64(now-m.fadeStart) / float64(d)
		return
	}
	m.fading, m.fade = false, 0
	switch m.mode {
	case ModeBoot:
		m.mode = ModeTerminal
		m.term.Reset(m.runtime, now)
		m.logger.Debug("mode changed", "mode", m.mode)
	case ModeTerminal:
		m.enterRain()
	}
}

func (m *Model) startIntro() {
	m.mode = ModeBoot
	m.fading, m.fade = false, 0
	m.engine.SetVisible(false)
	m.frame.rows = nil
	m.boot.Reset(m.runtime, m.clock())
	m.logger.Debug("mode changed", "mode", m.mode)
}

func (m *Model) enterRain() {
	m.mode = ModeRain
	m.fading, m.fade = false, 0
	m.engine.SetVisible(true)
	m.logger.Debug("mode changed", "mode", m.mode)
}

// restart replays the intro when it is enabled; otherwise only the rain
// starts over.
func (m *Model) restart() {
	m.collectStats()
	m.engine.Restart()
	if m.cfg.Intro.Enabled {
		m.startIntro()
		return
	}
	m.frame.rows = nil
}

func (m *Model) toggleImage() {
	if m.image == nil {
		return
	}
	if m.engine.ImageMode() {
		m.engine.SetImage(nil)
	} else {
		m.engine.SetImage(m.image)
	}
}

func (m *Model) adjustThreshold(delta int) {
	b := core.Clamp(int(m.engine.MinImageBrightness())+delta, 0, 255)
	m.engine.SetMinImageBrightness(uint8(b))
}

// resize rebuilds the grid for the new terminal size.
func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == m.runtime.ScreenW && height == m.runtime.ScreenH {
		return
	}
	m.runtime.ScreenW = width
	m.runtime.ScreenH = height
	m.screen.Resize(width, height)

	ec, err := m.cfg.ToEngine(width, height)
	if err != nil {
		m.logger.Error("cannot rebuild grid", "error", err)
		return
	}
	m.collectStats()
	m.engine.Init(m.frame, ec)
	m.frame.rows = nil
}

// collectStats folds the counters of the current grid into the running
// totals before it is torn down.
func (m *Model) collectStats() {
	s := m.engine.Stats()
	m.totals.Ticks += s.Ticks
	m.totals.DropsSpawned += s.DropsSpawned
	m.totals.DropsRetired += s.DropsRetired
	m.totals.RevealCycles += s.RevealCycles
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var rows []string
	switch m.mode {
	case ModeBoot, ModeTerminal:
		m.screen.Clear()
		if m.mode == ModeBoot {
			m.boot.Render(m.screen)
		} else {
			m.term.Render(m.screen)
		}
		rows = strings.Split(RenderScreen(m.screen, m.introStyle()), "\n")
	case ModeRain:
		if m.engine.Visible() {
			rows = m.frame.rows
		}
	}
	rows = padRows(rows, m.runtime.ScreenW, m.runtime.ScreenH)

	if m.showHelp && len(rows) > 0 {
		rows[len(rows)-1] = m.footer()
	}
	return strings.Join(rows, "\n")
}

// introStyle is the intro text style, blended towards the background while
// the screen fades out.
func (m Model) introStyle() lipgloss.Style {
	if !m.fading {
		return m.text
	}
	c := m.textColor.BlendRgb(m.bgColor, m.fade).Clamped()
	return m.text.Foreground(lipgloss.Color(c.Hex()))
}

// Fade reports whether an intro screen is fading out and how far it has got.
func (m Model) Fade() (bool, float64) {
	return m.fading, m.fade
}

// footer is the help line drawn over the bottom row.
func (m Model) footer() string {
	status := m.mode.String()
	if m.mode == ModeRain && m.engine.ImageMode() {
		status = fmt.Sprintf("%s %s min:%d", m.mode, m.engine.State(), m.engine.MinImageBrightness())
	}
	line := m.help.ShortHelpView(m.keys.ShortHelp()) + "  " + m.status.Render(status)
	return centerText(line, m.runtime.ScreenW)
}

// Mode returns the active screen.
func (m Model) Mode() Mode {
	return m.mode
}

// Engine returns the rain engine driven by the model.
func (m Model) Engine() *rain.Engine {
	return m.engine
}

// Stats returns engine counters accumulated over every grid the model built.
func (m Model) Stats() rain.Stats {
	s := m.engine.Stats()
	return rain.Stats{
		Ticks:        m.totals.Ticks + s.Ticks,
		DropsSpawned: m.totals.DropsSpawned + s.DropsSpawned,
		DropsRetired: m.totals.DropsRetired + s.DropsRetired,
		RevealCycles: m.totals.RevealCycles + s.RevealCycles,
	}
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the screensaver in the local terminal. When store is not nil
// the run is recorded as a "local" session. Returns the final engine
// counters.
func Run(opts Options, store *storage.Store) (rain.Stats, error) {
	model, err := NewModel(opts)
	if err != nil {
		return rain.Stats{}, err
	}

	rec := startRecord(store, storage.Session{
		Mode:   "local",
		User:   os.Getenv("USER"),
		Glyphs: opts.Config.Engine.Glyphs,
		Image:  opts.ImageName,
	}, model.logger)
	rec.attach(model.Stats)
	defer rec.finish()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return model.Stats(), fmt.Errorf("tui: %w", err)
	}
	return model.Stats(), nil
}
