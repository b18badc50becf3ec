package rain

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// Palette holds the rain colours as hex strings ("#RRGGBB").
type Palette struct {
	Head       string // leading glyph
	Bright     string // start of a fade
	Body       string // freshly painted, not yet fading
	Background string // end of a fade
}

// DefaultPalette is green-on-black with a yellow-green head.
func DefaultPalette() Palette {
	return Palette{
		Head:       "#B6FF00",
		Bright:     "#00FF00",
		Body:       "#00A000",
		Background: "#000000",
	}
}

// fadeSteps quantizes fade progress so neighbouring cells share styles.
const fadeSteps = 16

// Renderer consumes the composed rows once per tick.
type Renderer interface {
	RenderRows(rows []string)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(rows []string)

// RenderRows calls f(rows).
func (f RendererFunc) RenderRows(rows []string) { f(rows) }

// RowRenderer composes grid rows into styled text lines.
type RowRenderer struct {
	lg     *lipgloss.Renderer
	head   colorful.Color
	bright colorful.Color
	body   colorful.Color
	bg     colorful.Color
	blank  string
	width  int
}

// NewRowRenderer builds a renderer for the given palette and glyph cell width.
// A nil lipgloss renderer uses lipgloss's default output.
func NewRowRenderer(lg *lipgloss.Renderer, p Palette, cellWidth int) *RowRenderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	if cellWidth < 1 {
		cellWidth = 1
	}
	def := DefaultPalette()
	return &RowRenderer{
		lg:     lg,
		head:   parseHex(p.Head, def.Head),
		bright: parseHex(p.Bright, def.Bright),
		body:   parseHex(p.Body, def.Body),
		bg:     parseHex(p.Background, def.Background),
		blank:  strings.Repeat(" ", cellWidth),
		width:  cellWidth,
	}
}

func parseHex(s, fallback string) colorful.Color {
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}

// CellColor returns the hex colour for a cell at the given fade progress, or
// "" for an empty cell.
func (r *RowRenderer) CellColor(c Cell, progress float64) string {
	switch {
	case c.Empty():
		return ""
	case c.IsHead:
		return r.head.Hex()
	case c.Fading:
		p := core.ClampF(progress, 0, 1)
		p = float64(int(p*fadeSteps)) / fadeSteps
		return r.bright.BlendRgb(r.bg, p).Clamped().Hex()
	default:
		return r.body.Hex()
	}
}

// token returns the text drawn for a cell, padded to the cell width.
func (r *RowRenderer) token(c Cell) string {
	if c.Empty() {
		return r.blank
	}
	g := string(c.Glyph)
	if w := runewidth.RuneWidth(c.Glyph); w < r.width {
		g += strings.Repeat(" ", r.width-w)
	}
	return g
}

// RenderRow composes one row. progress(x) supplies the fade progress of the
// cell in column x.
func (r *RowRenderer) RenderRow(cells []Cell, progress func(x int) float64) string {
	var sb strings.Builder
	sb.Grow(len(cells) * (r.width + 16))

	x := 0
	for x < len(cells) {
		color := r.CellColor(cells[x], progress(x))
		var run strings.Builder
		for x < len(cells) {
			c := r.CellColor(cells[x], progress(x))
			if c != color {
				break
			}
			run.WriteString(r.token(cells[x]))
			x++
		}
		if color == "" {
			sb.WriteString(run.String())
			continue
		}
		style := r.lg.NewStyle().Foreground(lipgloss.Color(color))
		sb.WriteString(style.Render(run.String()))
	}
	return sb.String()
}
