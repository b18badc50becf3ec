package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-rain/internal/registry"
)

// Validate checks every knob and returns all problems joined into one error.
func (c RainConfig) Validate() error {
	var errs []error
	e := c.Engine

	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("engine.%s must be positive, got %d", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}
	ordered := func(lo, hi string, a, b int) {
		if a > b {
			errs = append(errs, fmt.Errorf("%s (%d) exceeds %s (%d)", lo, a, hi, b))
		}
	}

	if e.CharWidth < 0 {
		errs = append(errs, fmt.Errorf("engine.char_width must not be negative, got %d", e.CharWidth))
	}
	positive("char_height", e.CharHeight)
	positive("min_drop_length", e.MinDropLength)
	positive("tick_interval_ms", e.TickIntervalMs)
	positive("fade_duration_ms", e.FadeDurationMs)
	nonNegative("engine.line_spacing", e.LineSpacing)
	nonNegative("engine.head_mutate_interval_ms", e.HeadMutateIntervalMs)
	nonNegative("engine.drop_spawn_interval_ms", e.DropSpawnIntervalMs)
	nonNegative("engine.min_speed_ms", e.MinSpeedMs)
	nonNegative("engine.speed_range_ms", e.SpeedRangeMs)
	nonNegative("engine.reveal.drop_speed_ms", e.Reveal.DropSpeedMs)
	if e.DropSpawnChance < 1 {
		errs = append(errs, fmt.Errorf("engine.drop_spawn_chance must be at least 1, got %d", e.DropSpawnChance))
	}
	ordered("engine.min_drop_length", "engine.max_drop_length", e.MinDropLength, e.MaxDropLength)
	ordered("engine.reveal.min_duration_ms", "engine.reveal.max_duration_ms", e.Reveal.MinDurationMs, e.Reveal.MaxDurationMs)
	ordered("engine.reveal.min_interval_ms", "engine.reveal.max_interval_ms", e.Reveal.MinIntervalMs, e.Reveal.MaxIntervalMs)
	if e.Reveal.MinBrightness < 0 || e.Reveal.MinBrightness > 255 {
		errs = append(errs, fmt.Errorf("engine.reveal.min_brightness must be in 0..255, got %d", e.Reveal.MinBrightness))
	}
	if e.Glyphs != "" && !registry.Exists(e.Glyphs) {
		errs = append(errs, fmt.Errorf("engine.glyphs: unknown glyph set %q", e.Glyphs))
	}
	if e.Density != "" {
		if _, err := ParseDensity(e.Density); err != nil {
			errs = append(errs, err)
		}
	}

	for name, hex := range map[string]string{
		"head":       c.Palette.Head,
		"bright":     c.Palette.Bright,
		"body":       c.Palette.Body,
		"background": c.Palette.Background,
	} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("palette.%s: %q is not a #RRGGBB colour", name, hex))
		}
	}

	in := c.Intro
	nonNegative("intro.boot_line_delay_ms", in.BootLineDelayMs)
	nonNegative("intro.colon_pause_ms", in.ColonPauseMs)
	nonNegative("intro.mem_interval_ms", in.MemIntervalMs)
	nonNegative("intro.char_delay_ms", in.CharDelayMs)
	nonNegative("intro.newline_delay_ms", in.NewlineDelayMs)
	nonNegative("intro.hold_ms", in.HoldMs)
	nonNegative("intro.fade_out_ms", in.FadeOutMs)
	if in.MemStep <= 0 && in.MemLimit > 0 {
		errs = append(errs, fmt.Errorf("intro.mem_step must be positive when mem_limit is set, got %d", in.MemStep))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration:\n%w", err)
	}
	return nil
}
