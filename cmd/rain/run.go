package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/imagefile"
	"github.com/vovakirdan/tui-rain/internal/platform/tui"
	"github.com/vovakirdan/tui-rain/internal/rain"
	"github.com/vovakirdan/tui-rain/internal/storage"
)

var (
	flagImage     string
	flagSkipIntro bool
	flagGlyphs    string
	flagDensity   string
	flagSeed      int64
	flagNoStore   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the screensaver in this terminal",
	Long: `Start the digital rain in the current terminal.

Unless skipped, a BIOS-style boot listing and a typed terminal prompt play
first; the rain starts when they finish.

Controls:
  Space      - Show/hide the rain
  R          - Restart (replays the intro when enabled)
  I          - Toggle the image reveal
  +/-        - Raise/lower the reveal brightness threshold
  Enter      - Skip the intro
  ?          - Toggle the help footer
  Q/Ctrl+C   - Quit

Density options:
  drizzle - Sparse, slow drops
  normal  - The default mix
  storm   - Dense, fast drops
  fixed   - Every spawn attempt succeeds, constant speed

Examples:
  rain run
  rain run --image face.png
  rain run --glyphs binary --density storm --skip-intro
  rain run --seed 42 --config ./my-rain.yaml`,
	Args: cobra.NoArgs,
	RunE: runRain,
}

func init() {
	runCmd.Flags().StringVar(&flagImage, "image", "", "Image to reveal (png, jpeg, gif, bmp, webp)")
	runCmd.Flags().BoolVar(&flagSkipIntro, "skip-intro", false, "Start directly with the rain")
	runCmd.Flags().StringVar(&flagGlyphs, "glyphs", "", "Glyph set id (see 'rain charsets')")
	runCmd.Flags().StringVar(&flagDensity, "density", "", "Density preset: drizzle, normal, storm, fixed")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	runCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not record the session")
}

// isTerminal reports whether fd is an interactive terminal.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runRain(_ *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout.Fd()) {
		return errors.New("rain run needs an interactive terminal; use 'rain brightness <image>' for non-interactive output")
	}

	cfg, src, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyRunFlags(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating flags: %w", err)
	}

	logger, closeLog, err := newLogger("rain", filepath.Join(config.UserDir(), "rain.log"))
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "config", src, "glyphs", cfg.Engine.Glyphs)

	imagePath := flagImage
	if imagePath == "" {
		imagePath = cfg.Host.Image
	}
	var img *rain.Bitmap
	if imagePath != "" {
		var format string
		img, format, err = imagefile.Load(imagePath)
		if err != nil {
			return fmt.Errorf("loading image: %w", err)
		}
		logger.Info("image loaded", "path", imagePath, "format", format, "width", img.Width, "height", img.Height)
	}

	width, height := cfg.Engine.ScreenWidth, cfg.Engine.ScreenHeight
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open session storage (optional - run works without it)
	var store *storage.Store
	if !flagNoStore {
		var openErr error
		store, openErr = storage.Open(flagDBPath)
		if openErr != nil {
			logger.Warn("could not open sessions database", "error", openErr)
			store = nil
		} else {
			defer store.Close()
		}
	}

	stats, err := tui.Run(tui.Options{
		Config:    cfg,
		Image:     img,
		ImageName: imageLabel(imagePath),
		Width:     width,
		Height:    height,
		SkipIntro: flagSkipIntro,
		Seed:      flagSeed,
		Logger:    logger,
	}, store)
	if err != nil {
		return fmt.Errorf("running rain: %w", err)
	}

	logger.Info("finished",
		"ticks", stats.Ticks,
		"drops", stats.DropsSpawned,
		"reveals", stats.RevealCycles,
	)
	return nil
}

// applyRunFlags folds command-line overrides into cfg.
func applyRunFlags(cfg *config.RainConfig) error {
	if flagGlyphs != "" {
		cfg.Engine.Glyphs = flagGlyphs
	}
	if flagDensity != "" {
		preset, err := config.ParseDensity(flagDensity)
		if err != nil {
			return fmt.Errorf("parsing --density: %w", err)
		}
		cfg.Engine.Density = string(preset)
		config.ApplyDensityPreset(cfg, preset)
	}
	return nil
}

// imageLabel is the name stored with sessions for an image path.
func imageLabel(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
