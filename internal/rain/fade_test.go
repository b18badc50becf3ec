package rain

import "testing"

func TestFadeProgressMonotonic(t *testing.T) {
	c := Cell{Glyph: 'ア', Fading: true, FadeStart: 500}

	prev := -1.0
	for now := int64(400); now < 800; now += 7 {
		p := fadeProgress(c, now, 100)
		if p < prev {
			t.Fatalf("progress went backwards at %dms: %f < %f", now, p, prev)
		}
		prev = p
	}
	if p := fadeProgress(c, 450, 100); p != 0 {
		t.Errorf("progress before fade start = %f, expected 0", p)
	}
	if p := fadeProgress(c, 550, 100); p != 0.5 {
		t.Errorf("progress halfway = %f, expected 0.5", p)
	}
}

func TestFadeClearsExactlyAtDuration(t *testing.T) {
	cfg := exampleConfig()
	cfg.DropSpawnIntervalMs = 1 << 30
	e, _, _ := newTestEngine(t, cfg, 1)

	cell := &e.columns[3].cells[5]
	*cell = Cell{Glyph: 'ア', Fading: true, FadeStart: 1000}

	for now := int64(1000); now < 1000+int64(cfg.FadeDurationMs); now++ {
		e.updateFade(3, now)
		if cell.Empty() {
			t.Fatalf("cell cleared early at %dms", now)
		}
	}
	e.updateFade(3, 1000+int64(cfg.FadeDurationMs))
	if !cell.Empty() || cell.Fading {
		t.Errorf("cell should be cleared once progress reaches 1, got %+v", *cell)
	}
}

func TestFadeOutlivesDrop(t *testing.T) {
	cfg := exampleConfig()
	cfg.DropSpawnIntervalMs = 1 << 30
	cfg.FadeDurationMs = 1000
	e, _, _ := newTestEngine(t, cfg, 1)

	col := &e.columns[0]
	d := e.spawn(col, 0, false)
	d.headRow = 1
	e.Tick(1)

	// Retire the drop; its tail cell keeps fading on its own.
	d.active = false
	e.Tick(2)
	if len(col.drops) != 0 {
		t.Fatal("inactive drop should be removed")
	}
	if c := e.Cell(0, 0); c.Empty() || !c.Fading {
		t.Errorf("tail cell should keep fading after its drop retired, got %+v", c)
	}
	if c := e.Cell(0, 1); !c.Empty() {
		t.Errorf("head cell should clear once no drop covers it, got %+v", c)
	}

	e.Tick(2000)
	if !e.Cell(0, 0).Empty() {
		t.Error("tail cell should expire once its fade completes")
	}
}

func TestPaintBackdatesTail(t *testing.T) {
	cfg := exampleConfig()
	cfg.MinDropLength, cfg.MaxDropLength = 4, 4
	cfg.FadeDurationMs = 120
	cfg.DropSpawnIntervalMs = 1 << 30
	e, _, _ := newTestEngine(t, cfg, 1)

	col := &e.columns[0]
	d := e.spawn(col, 0, false)
	d.headRow = 3
	col.clearSolid()
	e.paint(col, d, 1000)

	step := int64(cfg.FadeDurationMs / (cfg.MaxDropLength + 2))
	for i := 0; i < 4; i++ {
		c := col.cells[3-i]
		if c.Glyph != d.chars.At(i) {
			t.Errorf("row %d glyph = %q, expected %q", 3-i, c.Glyph, d.chars.At(i))
		}
		if i == 0 {
			if !c.IsHead || c.Fading {
				t.Errorf("head cell = %+v", c)
			}
			continue
		}
		if want := 1000 - int64(i)*step; c.FadeStart != want {
			t.Errorf("row %d fade start = %d, expected %d", 3-i, c.FadeStart, want)
		}
	}
}

func TestLaterDropOverwrites(t *testing.T) {
	cfg := exampleConfig()
	cfg.DropSpawnIntervalMs = 1 << 30
	e, _, _ := newTestEngine(t, cfg, 1)

	col := &e.columns[0]
	first := e.spawn(col, 0, false)
	second := e.spawn(col, 0, false)
	first.headRow = 2
	second.headRow = 1
	col.clearSolid()
	e.paint(col, first, 0)
	e.paint(col, second, 0)

	if c := col.cells[1]; c.Glyph != second.chars.At(0) || !c.IsHead {
		t.Errorf("row 1 should show the later drop's head, got %+v", c)
	}
	if c := col.cells[2]; c.Glyph != first.chars.At(0) || !c.IsHead {
		t.Errorf("row 2 should show the earlier drop's head, got %+v", c)
	}
}
