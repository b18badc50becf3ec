package config

import (
	_ "embed"
)

//go:embed defaults/rain.yaml
var defaultRainYAML []byte

// DefaultBootLines is the stock BIOS listing shown before the rain starts.
var DefaultBootLines = []string{
	"Retro Computer BIOS v1.03",
	"640K RAM SYSTEM",
	"Phoenix Systems Ltd.",
	"Copyright 1988-1999",
	"CPU = 8086",
	"RAM = 640K",
	"Video BIOS shadowed",
	"UMB upper memory initialized",
	"Checking memory: {MEM} KB",
	"Initializing devices...",
	"Primary master disk: 20MB ST-225",
	"Primary slave disk: None",
	"Secondary master disk: None",
	"Secondary slave disk: None",
	"Floppy drive A: 1.44MB 3.5in",
	"Floppy drive B: None",
	"Serial port(s): COM1 COM2",
	"Parallel port(s): LPT1",
	"Detecting display: OK",
	"Detecting keyboard: OK",
	"\nREADY.",
}

// DefaultPrompt is the text typed on the terminal screen.
const DefaultPrompt = "> wake up, Neo...\n> the Matrix has you...\n> follow the white rabbit.\n> knock, knock, Neo."

// DefaultRainConfig returns the default configuration.
func DefaultRainConfig() RainConfig {
	return RainConfig{
		Engine: EngineConfig{
			ScreenWidth:  80,
			ScreenHeight: 24,
			CharWidth:    0,
			CharHeight:   1,
			LineSpacing:  0,

			MinDropLength: 6,
			MaxDropLength: 16,

			TickIntervalMs:       40,
			FadeDurationMs:       100,
			HeadMutateIntervalMs: 10,
			DropSpawnIntervalMs:  200,
			DropSpawnChance:      5,
			MinSpeedMs:           10,
			SpeedRangeMs:         100,

			Reveal: RevealConfig{
				MinDurationMs: 3000,
				MaxDurationMs: 5000,
				EraseMs:       2000,
				MinIntervalMs: 8000,
				MaxIntervalMs: 15000,
				DropSpeedMs:   10,
				MinBrightness: 0,
			},

			Glyphs: "katakana",
		},
		Palette: PaletteConfig{
			Head:       "#B6FF00",
			Bright:     "#00FF00",
			Body:       "#00A000",
			Background: "#000000",
		},
		Intro: IntroConfig{
			Enabled:         true,
			BootLines:       append([]string(nil), DefaultBootLines...),
			BootLineDelayMs: 250,
			ColonPauseMs:    350,
			MemStep:         32,
			MemIntervalMs:   10,
			MemLimit:        640,
			Prompt:          DefaultPrompt,
			CharDelayMs:     60,
			NewlineDelayMs:  600,
			CursorBlinkMs:   500,
			HoldMs:          3000,
			FadeOutMs:       400,
		},
		Host: HostConfig{
			ShowHelp: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRainYAML
}
