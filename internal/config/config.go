// Package config provides YAML-based configuration loading, density presets
// and validation for the rain screensaver.
package config

// RainConfig is the whole configuration file.
type RainConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Palette PaletteConfig `yaml:"palette"`
	Intro   IntroConfig   `yaml:"intro"`
	Host    HostConfig    `yaml:"host"`
}

// EngineConfig holds the numeric knobs of the rain engine. Durations are in
// milliseconds.
type EngineConfig struct {
	ScreenWidth  int `yaml:"screen_width"`  // used when the terminal size is unknown
	ScreenHeight int `yaml:"screen_height"` // used when the terminal size is unknown
	CharWidth    int `yaml:"char_width"`    // 0 = width of the glyph set
	CharHeight   int `yaml:"char_height"`
	LineSpacing  int `yaml:"line_spacing"`

	MinDropLength int `yaml:"min_drop_length"`
	MaxDropLength int `yaml:"max_drop_length"`

	TickIntervalMs       int `yaml:"tick_interval_ms"`
	FadeDurationMs       int `yaml:"fade_duration_ms"`
	HeadMutateIntervalMs int `yaml:"head_mutate_interval_ms"`
	DropSpawnIntervalMs  int `yaml:"drop_spawn_interval_ms"`
	DropSpawnChance      int `yaml:"drop_spawn_chance"`
	MinSpeedMs           int `yaml:"min_speed_ms"`
	SpeedRangeMs         int `yaml:"speed_range_ms"`

	Reveal RevealConfig `yaml:"reveal"`

	Glyphs  string `yaml:"glyphs"`  // glyph set id
	Density string `yaml:"density"` // preset name, empty keeps the values above
}

// RevealConfig defines the image reveal cycle.
type RevealConfig struct {
	MinDurationMs int `yaml:"min_duration_ms"`
	MaxDurationMs int `yaml:"max_duration_ms"`
	EraseMs       int `yaml:"erase_ms"`
	MinIntervalMs int `yaml:"min_interval_ms"`
	MaxIntervalMs int `yaml:"max_interval_ms"`
	DropSpeedMs   int `yaml:"drop_speed_ms"`
	MinBrightness int `yaml:"min_brightness"` // 0..255
}

// PaletteConfig holds hex colours ("#RRGGBB").
type PaletteConfig struct {
	Head       string `yaml:"head"`
	Bright     string `yaml:"bright"`
	Body       string `yaml:"body"`
	Background string `yaml:"background"`
}

// IntroConfig drives the boot listing and the terminal typing screen.
type IntroConfig struct {
	Enabled bool `yaml:"enabled"`

	BootLines       []string `yaml:"boot_lines"`
	BootLineDelayMs int      `yaml:"boot_line_delay_ms"`
	ColonPauseMs    int      `yaml:"colon_pause_ms"`
	MemStep         int      `yaml:"mem_step"`
	MemIntervalMs   int      `yaml:"mem_interval_ms"`
	MemLimit        int      `yaml:"mem_limit"`

	Prompt         string `yaml:"prompt"`
	CharDelayMs    int    `yaml:"char_delay_ms"`
	NewlineDelayMs int    `yaml:"newline_delay_ms"`
	CursorBlinkMs  int    `yaml:"cursor_blink_ms"`
	HoldMs         int    `yaml:"hold_ms"` // measured from the start of the terminal screen

	FadeOutMs int `yaml:"fade_out_ms"` // boot and terminal screens fade to the background
}

// HostConfig holds settings for the terminal host.
type HostConfig struct {
	ShowHelp bool   `yaml:"show_help"`
	Image    string `yaml:"image"` // reveal target, empty for none
}

// DensityPreset is a named rain intensity.
type DensityPreset string

const (
	DensityDrizzle DensityPreset = "drizzle"
	DensityNormal  DensityPreset = "normal"
	DensityStorm   DensityPreset = "storm"
	DensityFixed   DensityPreset = "fixed"
)
