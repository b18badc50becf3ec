// Package rain implements the falling-glyph "digital rain" effect.
//
// An Engine owns a grid of character cells. An external scheduler calls Tick
// at a fixed cadence; each tick advances the image reveal cycle, moves and
// mutates the drops of every column, expires faded cells, and hands one
// styled line per grid row to the Renderer supplied at Init.
//
// The engine holds no locks. Callers that drive Tick, SetImage, SetVisible
// or Restart from more than one goroutine must serialize those calls.
package rain

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Stats counts engine activity since Init.
type Stats struct {
	Ticks        int64
	DropsSpawned int64
	DropsRetired int64
	RevealCycles int64
}

// Engine is a single rain effect instance.
type Engine struct {
	cfg    Config
	dst    Renderer
	rng    *rand.Rand
	clock  func() int64
	logger *log.Logger
	lg     *lipgloss.Renderer

	cols, rows int
	columns    []column
	rowsOut    []string
	renderer   *RowRenderer
	visible    bool

	image              *Bitmap
	imageMode          bool
	brightness         []uint8
	minImageBrightness uint8
	state              RevealState
	transitionTime     int64

	// lastTick is the time of the previous Tick, valid once ticked is set.
	lastTick int64
	ticked   bool

	stats Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes the engine's randomness reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock sets the monotonic millisecond clock used by Init and Restart.
// Tick always uses the time it is given.
func WithClock(clock func() int64) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the logger for state transitions and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithLipgloss sets the lipgloss renderer used to style rows, e.g. one bound
// to an SSH session's output.
func WithLipgloss(r *lipgloss.Renderer) Option {
	return func(e *Engine) {
		e.lg = r
	}
}

// New creates an engine. It has no grid until Init is called.
func New(opts ...Option) *Engine {
	start := time.Now()
	e := &Engine{
		clock: func() int64 { return time.Since(start).Milliseconds() },
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Init builds the grid for cfg and starts rendering into dst. A nil dst or a
// config that yields an empty grid leaves the engine as a no-op.
func (e *Engine) Init(dst Renderer, cfg Config) {
	e.Deinit()
	e.cfg = cfg.normalized()
	e.dst = dst
	if dst == nil {
		return
	}
	e.build(e.clock())
}

func (e *Engine) build(now int64) {
	e.cols, e.rows = gridSize(e.cfg)
	if e.cols == 0 || e.rows == 0 {
		e.cols, e.rows = 0, 0
		return
	}
	e.columns = make([]column, e.cols)
	for i := range e.columns {
		e.columns[i] = newColumn(e.rows)
		// Desynchronize columns.
		e.columns[i].lastSpawn = now
		if e.cfg.DropSpawnIntervalMs > 0 {
			e.columns[i].lastSpawn += int64(e.rng.Intn(e.cfg.DropSpawnIntervalMs))
		}
	}
	e.rowsOut = make([]string, e.rows)
	e.renderer = NewRowRenderer(e.lg, e.cfg.Palette, e.cfg.Glyphs.Width())
	e.stats = Stats{}
	e.ticked, e.lastTick = false, 0

	e.state = StateNormal
	e.brightness = nil
	if e.imageMode {
		e.brightness = BrightnessMap(e.image, e.cols, e.rows)
		e.scheduleNextReveal(now)
	}
	e.logger.Debug("rain grid built", "cols", e.cols, "rows", e.rows)
}

// Deinit drops all grid and drop state. The image, if any, is kept for the
// next Init.
func (e *Engine) Deinit() {
	e.columns = nil
	e.rowsOut = nil
	e.renderer = nil
	e.cols, e.rows = 0, 0
	e.brightness = nil
	e.state = StateNormal
}

// Restart tears down and rebuilds the grid with the current config.
func (e *Engine) Restart() {
	dst, cfg := e.dst, e.cfg
	e.Init(dst, cfg)
}

// Tick advances the simulation to now (monotonic milliseconds) and pushes the
// composed rows to the renderer when visible.
func (e *Engine) Tick(now int64) {
	if e.dst == nil || len(e.columns) == 0 {
		return
	}
	e.stats.Ticks++

	// A repeated tick at the same time must not move the reveal cycle on:
	// the drain check would otherwise see drops retired by the first call.
	if !e.ticked || now != e.lastTick {
		e.updateReveal(now)
	}
	e.ticked, e.lastTick = true, now
	spawn := e.spawnAllowed()
	for i := range e.columns {
		e.stepColumn(&e.columns[i], now, spawn)
	}
	for i := range e.columns {
		e.updateFade(i, now)
	}
	e.composeRows(now)
	if e.visible {
		e.dst.RenderRows(e.rowsOut)
	}
}

// composeRows renders every grid row into rowsOut.
func (e *Engine) composeRows(now int64) {
	line := make([]Cell, e.cols)
	for y := 0; y < e.rows; y++ {
		for x := 0; x < e.cols; x++ {
			line[x] = e.columns[x].cells[y]
		}
		e.rowsOut[y] = e.renderer.RenderRow(line, func(x int) float64 {
			return fadeProgress(line[x], now, e.fadeDuration(x, y))
		})
	}
}

// SetImage supplies a reveal target. nil disables image mode and returns the
// engine to plain random rain.
func (e *Engine) SetImage(img *Bitmap) {
	e.image = img
	e.imageMode = img != nil
	e.state = StateNormal
	e.brightness = nil
	if !e.imageMode {
		e.logger.Debug("image cleared")
		return
	}
	e.logger.Debug("image set", "width", img.Width, "height", img.Height, "format", img.Format)
	if len(e.columns) > 0 {
		e.brightness = BrightnessMap(img, e.cols, e.rows)
		e.scheduleNextReveal(e.clock())
	}
}

// SetMinImageBrightness hides image cells darker than b during a reveal.
func (e *Engine) SetMinImageBrightness(b uint8) {
	e.minImageBrightness = b
}

// MinImageBrightness returns the current reveal threshold.
func (e *Engine) MinImageBrightness() uint8 {
	return e.minImageBrightness
}

// SetVisible controls whether rows are pushed to the renderer. The
// simulation keeps running while hidden.
func (e *Engine) SetVisible(v bool) {
	e.visible = v
}

// Visible reports whether rows are being pushed to the renderer.
func (e *Engine) Visible() bool {
	return e.visible
}

// ImageMode reports whether a reveal target is set.
func (e *Engine) ImageMode() bool {
	return e.imageMode
}

// State returns the current reveal state.
func (e *Engine) State() RevealState {
	return e.state
}

// Size returns the grid dimensions.
func (e *Engine) Size() (cols, rows int) {
	return e.cols, e.rows
}

// Config returns the normalized configuration in use.
func (e *Engine) Config() Config {
	return e.cfg
}

// Cell returns the cell at (col, row); out-of-range positions are empty.
func (e *Engine) Cell(col, row int) Cell {
	if col < 0 || col >= e.cols || row < 0 || row >= e.rows {
		return Cell{}
	}
	return e.columns[col].cells[row]
}

// ActiveDrops returns the number of active drops in a column.
func (e *Engine) ActiveDrops(col int) int {
	if col < 0 || col >= len(e.columns) {
		return 0
	}
	return e.columns[col].activeDrops()
}

// Frame returns the rows composed by the last tick.
func (e *Engine) Frame() []string {
	return e.rowsOut
}

// BrightnessMap returns the per-cell brightness of the current image, or nil.
func (e *Engine) BrightnessMap() []uint8 {
	return e.brightness
}

// DumpBrightnessMap writes the brightness map as ASCII art for debugging.
func (e *Engine) DumpBrightnessMap(w io.Writer) error {
	return WriteBrightnessMap(w, e.brightness, e.cols)
}

// Stats returns activity counters since the last Init.
func (e *Engine) Stats() Stats {
	return e.stats
}
