package rain

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// plainRenderer styles nothing, so rendered rows are just the glyph text.
func plainRenderer(width int) *RowRenderer {
	return NewRowRenderer(lipgloss.NewRenderer(io.Discard), DefaultPalette(), width)
}

func TestCellColor(t *testing.T) {
	r := plainRenderer(1)

	tests := []struct {
		name     string
		cell     Cell
		progress float64
		expected string
	}{
		{"empty", Cell{}, 0, ""},
		{"head", Cell{Glyph: 'x', IsHead: true}, 0, "#b6ff00"},
		{"body", Cell{Glyph: 'x'}, 0, "#00a000"},
		{"fade start", Cell{Glyph: 'x', Fading: true}, 0, "#00ff00"},
		{"fade half", Cell{Glyph: 'x', Fading: true}, 0.5, "#008000"},
		{"fade end", Cell{Glyph: 'x', Fading: true}, 1, "#000000"},
		{"fade past end", Cell{Glyph: 'x', Fading: true}, 3, "#000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.CellColor(tc.cell, tc.progress); got != tc.expected {
				t.Errorf("CellColor() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestCellColorQuantized(t *testing.T) {
	r := plainRenderer(1)
	c := Cell{Glyph: 'x', Fading: true}

	a := r.CellColor(c, 0.500)
	b := r.CellColor(c, 0.501)
	if a != b {
		t.Errorf("nearby progress values should share a colour: %q vs %q", a, b)
	}
}

func TestInvalidPaletteFallsBack(t *testing.T) {
	p := DefaultPalette()
	p.Head = "not-a-colour"
	r := NewRowRenderer(lipgloss.NewRenderer(io.Discard), p, 1)

	if got := r.CellColor(Cell{Glyph: 'x', IsHead: true}, 0); got != "#b6ff00" {
		t.Errorf("head colour = %q, expected default", got)
	}
}

func TestRenderRowPadsToCellWidth(t *testing.T) {
	r := plainRenderer(2)
	cells := []Cell{
		{Glyph: 'ア', IsHead: true},
		{},
		{Glyph: 'A'},
	}

	got := r.RenderRow(cells, func(int) float64 { return 0 })
	if expected := "ア  A "; got != expected {
		t.Errorf("RenderRow() = %q, expected %q", got, expected)
	}
}

func TestRenderRowEmpty(t *testing.T) {
	r := plainRenderer(1)
	got := r.RenderRow(make([]Cell, 4), func(int) float64 { return 0 })
	if got != "    " {
		t.Errorf("empty row = %q, expected four blanks", got)
	}
}

func TestRendererFunc(t *testing.T) {
	var got []string
	var dst Renderer = RendererFunc(func(rows []string) { got = rows })
	dst.RenderRows([]string{"a", "b"})
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("RendererFunc forwarded %v", got)
	}
}
