package rain

// Config holds the numeric knobs of the rain effect. All durations are in
// milliseconds.
type Config struct {
	ScreenWidth  int // pixels (or terminal columns)
	ScreenHeight int // pixels (or terminal rows)
	CharWidth    int
	CharHeight   int
	LineSpacing  int // added to CharHeight to get the effective line height

	MinDropLength int
	MaxDropLength int

	TickIntervalMs       int // cadence the host is expected to call Tick at
	FadeDurationMs       int
	HeadMutateIntervalMs int
	DropSpawnIntervalMs  int
	DropSpawnChance      int // a drop spawns with probability 1/DropSpawnChance per attempt
	MinSpeedMs           int
	SpeedRangeMs         int

	ImageRevealMinDurationMs int
	ImageRevealMaxDurationMs int
	ImageEraseDurationMs     int
	ImageRevealMinIntervalMs int
	ImageRevealMaxIntervalMs int
	ImageDropSpeedMs         int

	Glyphs  GlyphSet
	Palette Palette
}

// DefaultConfig returns the stock configuration for a 128x128 display with
// 8x8 character cells.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  128,
		ScreenHeight: 128,
		CharWidth:    8,
		CharHeight:   8,

		MinDropLength: 6,
		MaxDropLength: 16,

		TickIntervalMs:       40,
		FadeDurationMs:       100,
		HeadMutateIntervalMs: 10,
		DropSpawnIntervalMs:  200,
		DropSpawnChance:      5,
		MinSpeedMs:           10,
		SpeedRangeMs:         100,

		ImageRevealMinDurationMs: 3000,
		ImageRevealMaxDurationMs: 5000,
		ImageEraseDurationMs:     2000,
		ImageRevealMinIntervalMs: 8000,
		ImageRevealMaxIntervalMs: 15000,
		ImageDropSpeedMs:         10,

		Glyphs:  Katakana,
		Palette: DefaultPalette(),
	}
}

// normalized returns a copy with degenerate values pulled into a usable range.
func (c Config) normalized() Config {
	if c.MinDropLength < 1 {
		c.MinDropLength = 1
	}
	if c.MaxDropLength < c.MinDropLength {
		c.MaxDropLength = c.MinDropLength
	}
	if c.FadeDurationMs < 1 {
		c.FadeDurationMs = 1
	}
	if c.HeadMutateIntervalMs < 0 {
		c.HeadMutateIntervalMs = 0
	}
	if c.DropSpawnIntervalMs < 0 {
		c.DropSpawnIntervalMs = 0
	}
	if c.DropSpawnChance < 1 {
		c.DropSpawnChance = 1
	}
	if c.MinSpeedMs < 0 {
		c.MinSpeedMs = 0
	}
	if c.SpeedRangeMs < 0 {
		c.SpeedRangeMs = 0
	}
	if c.ImageRevealMaxDurationMs < c.ImageRevealMinDurationMs {
		c.ImageRevealMaxDurationMs = c.ImageRevealMinDurationMs
	}
	if c.ImageRevealMaxIntervalMs < c.ImageRevealMinIntervalMs {
		c.ImageRevealMaxIntervalMs = c.ImageRevealMinIntervalMs
	}
	if c.ImageDropSpeedMs < 0 {
		c.ImageDropSpeedMs = 0
	}
	if len(c.Glyphs.Runes) == 0 {
		c.Glyphs = Katakana
	}
	if c.Palette == (Palette{}) {
		c.Palette = DefaultPalette()
	}
	return c
}
