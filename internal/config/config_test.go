package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRainConfig()) {
		t.Errorf("embedded defaults differ from DefaultRainConfig():\n%+v\n%+v", cfg, DefaultRainConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rain.yaml")
	data := []byte("engine:\n  glyphs: binary\n  fade_duration_ms: 250\nintro:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Engine.Glyphs != "binary" || cfg.Engine.FadeDurationMs != 250 {
		t.Errorf("overrides not applied: %+v", cfg.Engine)
	}
	if cfg.Intro.Enabled {
		t.Error("intro should be disabled")
	}
	// Untouched keys keep their defaults.
	if cfg.Engine.MaxDropLength != 16 {
		t.Errorf("max_drop_length = %d, expected default 16", cfg.Engine.MaxDropLength)
	}
	if len(cfg.Intro.BootLines) != len(DefaultBootLines) {
		t.Errorf("boot lines = %d, expected the default listing", len(cfg.Intro.BootLines))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should fail")
	}
}

func TestParseReplacesBootLines(t *testing.T) {
	cfg, err := Parse([]byte("intro:\n  boot_lines:\n    - \"HELLO\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Intro.BootLines) != 1 || cfg.Intro.BootLines[0] != "HELLO" {
		t.Errorf("boot lines = %q, expected [HELLO]", cfg.Intro.BootLines)
	}
}

func TestParseAppliesDensity(t *testing.T) {
	cfg, err := Parse([]byte("engine:\n  density: storm\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.DropSpawnIntervalMs != 80 || cfg.Engine.DropSpawnChance != 2 {
		t.Errorf("storm preset not applied: %+v", cfg.Engine)
	}

	if _, err := Parse([]byte("engine:\n  density: hurricane\n")); err == nil {
		t.Error("unknown density should fail")
	}
}

func TestDensityPresets(t *testing.T) {
	tests := []struct {
		preset   DensityPreset
		interval int
		chance   int
	}{
		{DensityDrizzle, 400, 8},
		{DensityNormal, 200, 5},
		{DensityStorm, 80, 2},
		{DensityFixed, 200, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRainConfig()
			ApplyDensityPreset(&cfg, tc.preset)
			if cfg.Engine.DropSpawnIntervalMs != tc.interval {
				t.Errorf("interval = %d, expected %d", cfg.Engine.DropSpawnIntervalMs, tc.interval)
			}
			if cfg.Engine.DropSpawnChance != tc.chance {
				t.Errorf("chance = %d, expected %d", cfg.Engine.DropSpawnChance, tc.chance)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset should validate: %v", err)
			}
		})
	}

	if p, err := ParseDensity(" Storm "); err != nil || p != DensityStorm {
		t.Errorf("ParseDensity(Storm) = %q, %v", p, err)
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := DefaultRainConfig()
	cfg.Engine.MinDropLength = 20
	cfg.Engine.MaxDropLength = 10
	cfg.Engine.CharHeight = 0
	cfg.Engine.DropSpawnChance = 0
	cfg.Engine.Glyphs = "klingon"
	cfg.Palette.Head = "green"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	msg := err.Error()
	for _, want := range []string{"max_drop_length", "char_height", "drop_spawn_chance", "klingon", "palette.head"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should mention %q:\n%s", want, msg)
		}
	}
}

func TestToEngine(t *testing.T) {
	cfg := DefaultRainConfig()

	ec, err := cfg.ToEngine(100, 30)
	if err != nil {
		t.Fatalf("ToEngine() failed: %v", err)
	}
	if ec.ScreenWidth != 100 || ec.ScreenHeight != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", ec.ScreenWidth, ec.ScreenHeight)
	}
	if ec.CharWidth != 2 {
		t.Errorf("katakana char width = %d, expected 2", ec.CharWidth)
	}
	if ec.Glyphs.ID != "katakana" {
		t.Errorf("glyphs = %q", ec.Glyphs.ID)
	}

	ec, err = cfg.ToEngine(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ec.ScreenWidth != 80 || ec.ScreenHeight != 24 {
		t.Errorf("fallback screen = %dx%d, expected 80x24", ec.ScreenWidth, ec.ScreenHeight)
	}

	cfg.Engine.Glyphs = "binary"
	ec, err = cfg.ToEngine(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if ec.CharWidth != 1 {
		t.Errorf("binary char width = %d, expected 1", ec.CharWidth)
	}

	cfg.Engine.Glyphs = "klingon"
	if _, err := cfg.ToEngine(10, 10); err == nil {
		t.Error("unknown glyph set should fail")
	}
}

func TestMinImageBrightness(t *testing.T) {
	cfg := DefaultRainConfig()
	for in, want := range map[int]uint8{-5: 0, 0: 0, 100: 100, 300: 255} {
		cfg.Engine.Reveal.MinBrightness = in
		if got := cfg.MinImageBrightness(); got != want {
			t.Errorf("MinImageBrightness(%d) = %d, expected %d", in, got, want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultRainConfig()
	cfg.Engine.Glyphs = "greek"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Engine.Glyphs != "greek" {
		t.Errorf("glyphs = %q after round trip", back.Engine.Glyphs)
	}
}

func TestMarshalRoundTripDefaults(t *testing.T) {
	cfg := DefaultRainConfig()
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("marshalled defaults failed to parse: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("defaults changed in round trip:\n%+v\n%+v", back, cfg)
	}
}
