package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/config"
)

var (
	flagDefaults bool
	flagInit     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration rain would run with, after the search order
(--config, ~/.rain/configs/rain.yaml, ./configs/rain.yaml, embedded
defaults) and density presets are applied. The source is printed to stderr.

Examples:
  rain config
  rain config --defaults > my-rain.yaml
  rain config --init          # write defaults to ~/.rain/configs/rain.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default configuration")
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the defaults to the user config path if it does not exist")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	if flagInit {
		path := config.UserConfigPath("rain.yaml")
		if path == "" {
			return errors.New("resolving user config path: home directory unavailable")
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	cfg, src, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", src)
	_, err = os.Stdout.Write(data)
	return err
}
