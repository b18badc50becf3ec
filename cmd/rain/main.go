// rain is a terminal "digital rain" screensaver with an optional image
// reveal, playable locally or served over SSH.
//
// Usage:
//
//	rain run                 - Start the screensaver in this terminal
//	rain serve               - Start SSH server for remote viewing
//	rain sessions            - Browse recorded viewing sessions
//	rain charsets            - List available glyph sets
//	rain brightness <image>  - Print an image's brightness map
//	rain config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--db <path>         - Sessions database (default: ~/.rain/sessions.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rain",
	Short: "Digital rain for your terminal",
	Long: `rain fills the terminal with falling glyph streaks. Given an image it
periodically clears the screen and lets synchronized drops paint the image
out of the rain before washing it away again.

Available commands:
  run         - Start the screensaver in this terminal
  serve       - Start SSH server for remote viewing
  sessions    - Browse recorded viewing sessions
  charsets    - List available glyph sets
  brightness  - Print an image's brightness map
  config      - Print the effective configuration

Examples:
  rain run
  rain run --image face.png --skip-intro
  rain run --glyphs binary --density storm
  rain serve --ssh :2222
  rain brightness face.png --cols 60 --rows 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rain/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(charsetsCmd)
	rootCmd.AddCommand(brightnessCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads and validates the configuration named by --config.
func loadConfig() (config.RainConfig, string, error) {
	cfg, src, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, src, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, src, fmt.Errorf("validating config: %w", err)
	}
	return cfg, src, nil
}

// newLogger builds the logger for a command. fallback is used when --log-file
// is not set; an empty fallback means stderr. The returned func closes the
// log file, if one was opened.
func newLogger(prefix, fallback string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	path := flagLogFile
	if path == "" {
		path = fallback
	}
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", openErr)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeLog, nil
}
