package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/registry"
)

var charsetsCmd = &cobra.Command{
	Use:   "charsets",
	Short: "List available glyph sets",
	Long:  `Shows every glyph set the rain can draw with, its cell width and a sample.`,
	Args:  cobra.NoArgs,
	Run:   runCharsets,
}

func runCharsets(_ *cobra.Command, _ []string) {
	sets := registry.List()

	if len(sets) == 0 {
		fmt.Println("No glyph sets available.")
		return
	}

	fmt.Println("Available glyph sets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sets {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %6s  %5s  %s\n", maxIDLen, "ID", "Title", "Glyphs", "Width", "Sample")
	fmt.Printf("  %-*s  %-10s  %6s  %5s  %s\n", maxIDLen, "--", "-----", "------", "-----", "------")

	for _, s := range sets {
		fmt.Printf("  %-*s  %-10s  %6d  %5d  %s\n", maxIDLen, s.ID, s.Title, s.Glyphs, s.Width, s.Sample)
	}

	fmt.Println()
	fmt.Println("Run 'rain run --glyphs <id>' to use a set.")
}
