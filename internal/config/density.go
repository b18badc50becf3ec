package config

import (
	"fmt"
	"strings"
)

// ParseDensity resolves a preset name, case-insensitively.
func ParseDensity(name string) (DensityPreset, error) {
	switch p := DensityPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case DensityDrizzle, DensityNormal, DensityStorm, DensityFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown density %q (want drizzle, normal, storm or fixed)", name)
	}
}

// DensityPresets lists the preset names in increasing intensity.
func DensityPresets() []DensityPreset {
	return []DensityPreset{DensityDrizzle, DensityNormal, DensityStorm, DensityFixed}
}

// ApplyDensityPreset modifies the engine spawn and speed knobs for a preset.
func ApplyDensityPreset(cfg *RainConfig, preset DensityPreset) {
	e := &cfg.Engine
	switch preset {
	case DensityDrizzle:
		e.DropSpawnIntervalMs = 400
		e.DropSpawnChance = 8
		e.MinSpeedMs = 40
		e.SpeedRangeMs = 160
	case DensityNormal:
		e.DropSpawnIntervalMs = 200
		e.DropSpawnChance = 5
		e.MinSpeedMs = 10
		e.SpeedRangeMs = 100
	case DensityStorm:
		e.DropSpawnIntervalMs = 80
		e.DropSpawnChance = 2
		e.MinSpeedMs = 10
		e.SpeedRangeMs = 60
	case DensityFixed:
		// Every attempt spawns and every drop falls at the same speed.
		e.DropSpawnChance = 1
		e.SpeedRangeMs = 0
	}
	e.Density = string(preset)
}
