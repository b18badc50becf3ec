package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rain/internal/imagefile"
	"github.com/vovakirdan/tui-rain/internal/rain"
)

var (
	flagCols int
	flagRows int
	flagRaw  bool
)

var brightnessCmd = &cobra.Command{
	Use:   "brightness <image>",
	Short: "Print an image's brightness map",
	Long: `Decode an image, sample it down to a grid the way the reveal does, and
print the result as ASCII art (or numbers with --raw).

Without --cols/--rows the grid fills the terminal, or 80x24 when stdout is
not a terminal.

Examples:
  rain brightness face.png
  rain brightness face.png --cols 60 --rows 20
  rain brightness face.png --raw > face.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBrightness,
}

func init() {
	brightnessCmd.Flags().IntVar(&flagCols, "cols", 0, "Grid columns (0 = terminal width)")
	brightnessCmd.Flags().IntVar(&flagRows, "rows", 0, "Grid rows (0 = terminal height)")
	brightnessCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print numeric brightness values")
}

func runBrightness(_ *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	img, format, err := imagefile.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	cols, rows := 80, 24
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			cols, rows = w, h-1
		}
	}
	if flagCols > 0 {
		cols = flagCols
	}
	if flagRows > 0 {
		rows = flagRows
	}

	// One terminal cell per grid cell, whatever the glyph set.
	cfg.Engine.CharWidth = 1
	cfg.Engine.CharHeight = 1
	cfg.Engine.LineSpacing = 0
	ec, err := cfg.ToEngine(cols, rows)
	if err != nil {
		return fmt.Errorf("building engine config: %w", err)
	}

	engine := rain.New()
	engine.Init(rain.RendererFunc(func([]string) {}), ec)
	engine.SetImage(img)
	gridCols, gridRows := engine.Size()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if !flagRaw {
		fmt.Fprintf(os.Stderr, "%s %dx%d -> %dx%d\n", format, img.Width, img.Height, gridCols, gridRows)
		if err := engine.DumpBrightnessMap(out); err != nil {
			return fmt.Errorf("writing brightness map: %w", err)
		}
		return nil
	}

	m := engine.BrightnessMap()
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			if c > 0 {
				out.WriteByte(' ')
			}
			fmt.Fprintf(out, "%3d", m[r*gridCols+c])
		}
		out.WriteByte('\n')
	}
	return nil
}
