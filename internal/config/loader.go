package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the rain configuration.
// Search order: customPath -> ~/.rain/configs/rain.yaml -> ./configs/rain.yaml -> embedded default
//
// Files are decoded over DefaultRainConfig, so a file only needs the keys it
// changes. A density preset named in the file is applied before returning.
func Load(customPath string) (RainConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came from:
// a file path, or "embedded" / "builtin".
func LoadWithSource(customPath string) (RainConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRainConfig(), "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultRainConfig(), "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("rain.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", "rain.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRainYAML)
	if err != nil {
		return DefaultRainConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML over the defaults and applies the density preset it
// names, if any.
func Parse(data []byte) (RainConfig, error) {
	cfg := DefaultRainConfig()
	// Drop the default listing so a file's boot_lines replaces it whole.
	cfg.Intro.BootLines = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultRainConfig(), err
	}
	if cfg.Intro.BootLines == nil {
		cfg.Intro.BootLines = append([]string(nil), DefaultBootLines...)
	}
	if cfg.Engine.Density != "" {
		preset, err := ParseDensity(cfg.Engine.Density)
		if err != nil {
			return DefaultRainConfig(), err
		}
		ApplyDensityPreset(&cfg, preset)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML with two-space indentation. Wider indents make
// yaml.v3 write block scalars with a leading newline that it cannot read back.
func Marshal(cfg RainConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.rain, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rain")
}
