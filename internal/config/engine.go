package config

import (
	"github.com/vovakirdan/tui-rain/internal/rain"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

// ToEngine converts the configuration into engine knobs for a screen of
// cols x rows terminal cells. Non-positive sizes fall back to the configured
// screen size.
func (c RainConfig) ToEngine(cols, rows int) (rain.Config, error) {
	glyphs := rain.Katakana
	if c.Engine.Glyphs != "" {
		s, err := registry.Lookup(c.Engine.Glyphs)
		if err != nil {
			return rain.Config{}, err
		}
		glyphs = s
	}

	e := c.Engine
	if cols <= 0 {
		cols = e.ScreenWidth
	}
	if rows <= 0 {
		rows = e.ScreenHeight
	}
	charWidth := e.CharWidth
	if charWidth == 0 {
		charWidth = glyphs.Width()
	}

	def := rain.DefaultPalette()
	return rain.Config{
		ScreenWidth:  cols,
		ScreenHeight: rows,
		CharWidth:    charWidth,
		CharHeight:   e.CharHeight,
		LineSpacing:  e.LineSpacing,

		MinDropLength: e.MinDropLength,
		MaxDropLength: e.MaxDropLength,

		TickIntervalMs:       e.TickIntervalMs,
		FadeDurationMs:       e.FadeDurationMs,
		HeadMutateIntervalMs: e.HeadMutateIntervalMs,
		DropSpawnIntervalMs:  e.DropSpawnIntervalMs,
		DropSpawnChance:      e.DropSpawnChance,
		MinSpeedMs:           e.MinSpeedMs,
		SpeedRangeMs:         e.SpeedRangeMs,

		ImageRevealMinDurationMs: e.Reveal.MinDurationMs,
		ImageRevealMaxDurationMs: e.Reveal.MaxDurationMs,
		ImageEraseDurationMs:     e.Reveal.EraseMs,
		ImageRevealMinIntervalMs: e.Reveal.MinIntervalMs,
		ImageRevealMaxIntervalMs: e.Reveal.MaxIntervalMs,
		ImageDropSpeedMs:         e.Reveal.DropSpeedMs,

		Glyphs: glyphs,
		Palette: rain.Palette{
			Head:       orDefault(c.Palette.Head, def.Head),
			Bright:     orDefault(c.Palette.Bright, def.Bright),
			Body:       orDefault(c.Palette.Body, def.Body),
			Background: orDefault(c.Palette.Background, def.Background),
		},
	}, nil
}

// MinImageBrightness returns the reveal threshold clamped to a byte.
func (c RainConfig) MinImageBrightness() uint8 {
	b := c.Engine.Reveal.MinBrightness
	switch {
	case b < 0:
		return 0
	case b > 255:
		return 255
	}
	return uint8(b)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
