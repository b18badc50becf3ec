package rain

import (
	"reflect"
	"testing"
)

// solidBitmap returns a w x h ARGB8888 bitmap where column x has the grey
// level shade(x).
func solidBitmap(w, h int, shade func(x int) uint8) *Bitmap {
	bm := &Bitmap{Width: w, Height: h, Format: FormatARGB8888, Data: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := shade(x)
			i := (y*w + x) * 4
			bm.Data[i], bm.Data[i+1], bm.Data[i+2], bm.Data[i+3] = v, v, v, 0xFF
		}
	}
	return bm
}

// revealConfig is a 3 column x 4 row grid with short reveal timings.
func revealConfig() Config {
	cfg := DefaultConfig()
	cfg.ScreenWidth, cfg.ScreenHeight = 24, 32
	cfg.CharWidth, cfg.CharHeight = 8, 8
	cfg.MinDropLength, cfg.MaxDropLength = 2, 2
	cfg.ImageRevealMinDurationMs, cfg.ImageRevealMaxDurationMs = 300, 300
	cfg.ImageEraseDurationMs = 200
	cfg.ImageRevealMinIntervalMs, cfg.ImageRevealMaxIntervalMs = 500, 500
	cfg.ImageDropSpeedMs = 20
	return cfg
}

func TestNoRevealWithoutImage(t *testing.T) {
	cfg := revealConfig()
	e, _, _ := newTestEngine(t, cfg, 1)

	for now := int64(0); now < 5000; now += 20 {
		e.Tick(now)
		if e.State() != StateNormal {
			t.Fatalf("state %v at %dms without an image", e.State(), now)
		}
	}
}

func TestRevealWaitsForAllColumnsToDrain(t *testing.T) {
	cfg := revealConfig()
	cfg.DropSpawnIntervalMs = 0
	cfg.DropSpawnChance = 1
	e, _, _ := newTestEngine(t, cfg, 21)
	e.SetImage(solidBitmap(3, 4, func(int) uint8 { return 200 }))

	// Staggered lifetimes: fast, medium, slow.
	for i, speed := range []int{10, 30, 60} {
		d := e.spawn(&e.columns[i], 0, false)
		d.speedMs = speed
	}
	e.setState(StateClearing, 0)
	spawned := e.Stats().DropsSpawned

	sawPartial := false
	revealedAt := int64(-1)
	for now := int64(5); now < 2000 && revealedAt < 0; now += 5 {
		clear := e.screenClear()
		active := 0
		for i := range e.columns {
			if e.ActiveDrops(i) > 0 {
				active++
			}
		}
		if active > 0 && active < len(e.columns) {
			sawPartial = true
		}

		e.Tick(now)

		switch e.State() {
		case StateClearing:
			if e.Stats().DropsSpawned != spawned {
				t.Fatalf("drop spawned while clearing at %dms", now)
			}
		case StateRevealing:
			if !clear {
				t.Fatalf("revealed at %dms while %d columns still had drops", now, active)
			}
			revealedAt = now
		default:
			t.Fatalf("unexpected state %v at %dms", e.State(), now)
		}
	}

	if revealedAt < 0 {
		t.Fatal("never reached revealing")
	}
	if !sawPartial {
		t.Error("expected a period where only some columns had drained")
	}
	// The slow column needs 7 advances of 60ms to scroll off.
	if revealedAt < 7*60 {
		t.Errorf("revealed at %dms, before the slowest column drained", revealedAt)
	}
	for i := range e.columns {
		if e.ActiveDrops(i) != 1 {
			t.Errorf("column %d has %d drops, expected one image drop", i, e.ActiveDrops(i))
		}
		if !e.columns[i].drops[0].imageDrop {
			t.Errorf("column %d drop is not an image drop", i)
		}
	}
}

func TestRevealFullCycle(t *testing.T) {
	cfg := revealConfig()
	e, clock, _ := newTestEngine(t, cfg, 4)
	e.SetImage(solidBitmap(3, 4, func(int) uint8 { return 255 }))

	var order []RevealState
	last := e.State()
	order = append(order, last)
	for now := int64(0); now < 10000 && e.Stats().RevealCycles == 0; now += 20 {
		clock.now = now
		e.Tick(now)
		if s := e.State(); s != last {
			order = append(order, s)
			last = s
		}
	}

	expected := []RevealState{StateNormal, StateClearing, StateRevealing, StateErasing, StateNormal}
	if len(order) != len(expected) {
		t.Fatalf("state order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("state order = %v, expected %v", order, expected)
		}
	}
	if e.Stats().RevealCycles != 1 {
		t.Errorf("RevealCycles = %d, expected 1", e.Stats().RevealCycles)
	}
}

func TestRepeatedTickHoldsRevealCycle(t *testing.T) {
	cfg := revealConfig()
	e, clock, _ := newTestEngine(t, cfg, 4)
	e.SetImage(solidBitmap(3, 4, func(int) uint8 { return 255 }))

	seen := map[RevealState]bool{}
	for now := int64(0); now < 10000 && e.Stats().RevealCycles == 0; now += 20 {
		clock.now = now
		e.Tick(now)
		state, before := e.State(), takeSnapshot(e)
		spawned := e.Stats().DropsSpawned

		e.Tick(now)
		if e.State() != state {
			t.Fatalf("repeated tick at %dms moved %v to %v", now, state, e.State())
		}
		if e.Stats().DropsSpawned != spawned {
			t.Fatalf("repeated tick at %dms spawned drops", now)
		}
		if !reflect.DeepEqual(before, takeSnapshot(e)) {
			t.Fatalf("repeated tick at %dms changed the grid in %v", now, state)
		}
		seen[state] = true
	}

	if e.Stats().RevealCycles != 1 {
		t.Fatalf("RevealCycles = %d, expected one full cycle", e.Stats().RevealCycles)
	}
	for _, s := range []RevealState{StateClearing, StateRevealing, StateErasing} {
		if !seen[s] {
			t.Errorf("cycle never ticked in %v", s)
		}
	}
}

func TestBlackImageHidesImageDrops(t *testing.T) {
	for _, tc := range []struct {
		name string
		img  *Bitmap
	}{
		{"zero size", &Bitmap{Format: FormatARGB8888}},
		{"black", solidBitmap(3, 4, func(int) uint8 { return 0 })},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := revealConfig()
			cfg.ImageRevealMinDurationMs, cfg.ImageRevealMaxDurationMs = 2000, 2000
			e, _, _ := newTestEngine(t, cfg, 8)
			e.SetImage(tc.img)
			e.SetMinImageBrightness(0)

			e.setState(StateClearing, 0)
			revealed := false
			for now := int64(20); now < 1500; now += 20 {
				e.Tick(now)
				if e.State() != StateRevealing {
					continue
				}
				revealed = true
				for x := 0; x < e.cols; x++ {
					for y := 0; y < e.rows; y++ {
						if !e.Cell(x, y).Empty() {
							t.Fatalf("cell (%d,%d) lit during the reveal at %dms", x, y, now)
						}
					}
				}
			}
			if !revealed {
				t.Error("never reached revealing")
			}
		})
	}
}

func TestRevealHidesDarkCells(t *testing.T) {
	cfg := revealConfig()
	cfg.ImageRevealMinDurationMs, cfg.ImageRevealMaxDurationMs = 2000, 2000
	e, _, _ := newTestEngine(t, cfg, 8)
	e.SetImage(solidBitmap(3, 4, func(x int) uint8 {
		if x == 0 {
			return 0
		}
		return 255
	}))
	e.SetMinImageBrightness(128)

	// Skip straight to the reveal.
	e.setState(StateClearing, 0)
	litBright := false
	for now := int64(20); now < 1500; now += 20 {
		e.Tick(now)
		if e.State() != StateRevealing {
			continue
		}
		for y := 0; y < e.rows; y++ {
			if !e.Cell(0, y).Empty() {
				t.Fatalf("dark cell (0,%d) visible during reveal at %dms", y, now)
			}
			if !e.Cell(1, y).Empty() {
				litBright = true
			}
		}
	}
	if !litBright {
		t.Error("bright cells should show during the reveal")
	}
}

func TestRevealScalesFadeByBrightness(t *testing.T) {
	cfg := revealConfig()
	e, _, _ := newTestEngine(t, cfg, 8)
	e.SetImage(solidBitmap(3, 4, func(x int) uint8 { return []uint8{0, 51, 255}[x] }))

	if d := e.fadeDuration(2, 0); d != int64(cfg.FadeDurationMs) {
		t.Errorf("outside a reveal fade = %d, expected %d", d, cfg.FadeDurationMs)
	}

	e.state = StateRevealing
	tests := []struct {
		col      int
		expected int64
	}{
		{0, 1},
		{1, 51 * 100 * 5 / 255},
		{2, int64(cfg.FadeDurationMs) * 5},
	}
	for _, tc := range tests {
		if d := e.fadeDuration(tc.col, 0); d != tc.expected {
			t.Errorf("fadeDuration(col %d) = %d, expected %d", tc.col, d, tc.expected)
		}
	}
}

func TestClearingImageReturnsToRandomRain(t *testing.T) {
	cfg := revealConfig()
	e, clock, _ := newTestEngine(t, cfg, 2)
	e.SetImage(solidBitmap(3, 4, func(int) uint8 { return 255 }))

	for now := int64(0); now < 1500 && e.State() == StateNormal; now += 20 {
		clock.now = now
		e.Tick(now)
	}
	if e.State() == StateNormal {
		t.Fatal("reveal cycle never started")
	}

	e.SetImage(nil)
	if e.BrightnessMap() != nil {
		t.Error("brightness map should be cleared")
	}
	if e.ImageMode() {
		t.Error("image mode should be off")
	}
	for now := int64(1500); now < 20000; now += 20 {
		e.Tick(now)
		if e.State() != StateNormal {
			t.Fatalf("state %v at %dms after clearing the image", e.State(), now)
		}
	}
	if e.Stats().RevealCycles != 0 {
		t.Error("no reveal cycle should complete after clearing the image")
	}
}
