package rain

// glyphRing is the fixed-capacity character buffer of a drop. Index 0 of At
// is the head; pushing a new head overwrites the oldest tail glyph.
type glyphRing struct {
	buf  []rune
	head int
}

func newGlyphRing(n int) glyphRing {
	return glyphRing{buf: make([]rune, n)}
}

func (g *glyphRing) Len() int {
	return len(g.buf)
}

// At returns the i-th glyph counted from the head.
func (g *glyphRing) At(i int) rune {
	n := len(g.buf)
	return g.buf[((g.head-i)%n+n)%n]
}

// SetHead replaces the head glyph in place.
func (g *glyphRing) SetHead(r rune) {
	g.buf[g.head] = r
}

// Push drops the trailing glyph and makes r the new head.
func (g *glyphRing) Push(r rune) {
	g.head = (g.head + 1) % len(g.buf)
	g.buf[g.head] = r
}

// drop is one falling streak of glyphs in a column.
type drop struct {
	headRow     int // may be negative while above the grid
	length      int
	speedMs     int
	chars       glyphRing
	active      bool
	imageDrop   bool
	lastAdvance int64
	lastMutate  int64
}

// spawn creates one drop at the top of col.
func (e *Engine) spawn(col *column, now int64, imageDrop bool) *drop {
	cfg := &e.cfg
	d := &drop{
		headRow:     -1,
		active:      true,
		imageDrop:   imageDrop,
		lastAdvance: now,
		lastMutate:  now,
	}
	if imageDrop {
		d.length = e.rows
		d.speedMs = cfg.ImageDropSpeedMs
		// Stagger image drops so the reveal front has no hard edge.
		d.headRow = -e.rng.Intn(4)
	} else {
		d.length = cfg.MinDropLength + e.rng.Intn(cfg.MaxDropLength-cfg.MinDropLength+1)
		d.speedMs = cfg.MinSpeedMs
		if cfg.SpeedRangeMs > 0 {
			d.speedMs += e.rng.Intn(cfg.SpeedRangeMs)
		}
	}
	if d.length < 1 {
		d.length = 1
	}
	d.chars = newGlyphRing(d.length)
	for i := 0; i < d.length; i++ {
		d.chars.Push(cfg.Glyphs.Random(e.rng))
	}
	col.drops = append(col.drops, d)
	e.stats.DropsSpawned++
	return d
}

// advance mutates the head glyph and moves the drop down one row when its
// speed interval has elapsed.
func (e *Engine) advance(d *drop, now int64) {
	if !d.imageDrop && now-d.lastMutate > int64(e.cfg.HeadMutateIntervalMs) {
		d.chars.SetHead(e.cfg.Glyphs.Random(e.rng))
		d.lastMutate = now
	}
	elapsed := now - d.lastAdvance
	if elapsed > 0 && elapsed >= int64(d.speedMs) {
		d.headRow++
		d.chars.Push(e.cfg.Glyphs.Random(e.rng))
		d.lastAdvance = now
	}
	if d.headRow-d.length >= e.rows {
		d.active = false
	}
}

// paint writes the drop's glyphs into the column. Tail cells get a fade start
// backdated in proportion to their distance from the head, which yields a
// fade gradient without per-cell timers.
func (e *Engine) paint(col *column, d *drop, now int64) {
	if !d.active {
		return
	}
	step := int64(e.cfg.FadeDurationMs / (e.cfg.MaxDropLength + 2))
	for i := 0; i < d.length; i++ {
		row := d.headRow - i
		if row < 0 || row >= len(col.cells) {
			continue
		}
		cell := &col.cells[row]
		cell.Glyph = d.chars.At(i)
		cell.IsHead = i == 0
		if i == 0 {
			cell.Fading = false
			cell.FadeStart = 0
			continue
		}
		cell.Fading = true
		cell.FadeStart = now - int64(i)*step
	}
}

// stepColumn runs one tick of the drop simulator for a single column.
func (e *Engine) stepColumn(col *column, now int64, spawnAllowed bool) {
	if spawnAllowed && now-col.lastSpawn > int64(e.cfg.DropSpawnIntervalMs) {
		if e.rng.Intn(e.cfg.DropSpawnChance) == 0 {
			e.spawn(col, now, false)
		}
		col.lastSpawn = now
	}
	for _, d := range col.drops {
		if d.active {
			e.advance(d, now)
		}
	}
	e.stats.DropsRetired += col.retire()

	col.clearSolid()
	for _, d := range col.drops {
		e.paint(col, d, now)
	}
}
