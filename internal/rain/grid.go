package rain

// Cell is one character position of the grid.
type Cell struct {
	Glyph     rune  // 0 means empty
	IsHead    bool  // leading glyph of a drop
	Fading    bool  // counting down towards empty
	FadeStart int64 // ms; may be backdated
}

// Empty reports whether the cell shows nothing.
func (c Cell) Empty() bool {
	return c.Glyph == 0
}

func (c *Cell) clear() {
	*c = Cell{}
}

// column is a vertical strip of the grid with the drops falling through it.
type column struct {
	cells     []Cell
	drops     []*drop
	lastSpawn int64
}

func newColumn(rows int) column {
	return column{cells: make([]Cell, rows)}
}

// activeDrops counts drops that have not yet scrolled off.
func (c *column) activeDrops() int {
	n := 0
	for _, d := range c.drops {
		if d.active {
			n++
		}
	}
	return n
}

// clearSolid empties every cell that is not fading. Fading cells are left to
// the fade tracker.
func (c *column) clearSolid() {
	for i := range c.cells {
		if !c.cells[i].Fading {
			c.cells[i].clear()
		}
	}
}

// retire removes inactive drops and returns how many were removed.
func (c *column) retire() int64 {
	kept := c.drops[:0]
	for _, d := range c.drops {
		if d.active {
			kept = append(kept, d)
		}
	}
	removed := len(c.drops) - len(kept)
	for i := len(kept); i < len(c.drops); i++ {
		c.drops[i] = nil
	}
	c.drops = kept
	return int64(removed)
}

// gridSize derives the column and row counts from pixel and cell dimensions.
func gridSize(cfg Config) (cols, rows int) {
	lineHeight := cfg.CharHeight + cfg.LineSpacing
	if cfg.CharWidth <= 0 || lineHeight <= 0 {
		return 0, 0
	}
	cols = cfg.ScreenWidth / cfg.CharWidth
	rows = cfg.ScreenHeight / lineHeight
	if cols < 0 || rows < 0 {
		return 0, 0
	}
	return cols, rows
}
