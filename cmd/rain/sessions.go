package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rain/internal/platform/tui"
	"github.com/vovakirdan/tui-rain/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded viewing sessions",
	Long: `Show recent local and SSH viewing sessions with aggregate statistics.

In an interactive terminal this opens a browser; use --plain (or pipe the
output) for a text listing.

Examples:
  rain sessions
  rain sessions --plain --limit 5
  rain sessions --clear`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the browser")
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to list in plain mode")
	sessionsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session")
}

func runSessions(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			return fmt.Errorf("clearing sessions: %w", err)
		}
		fmt.Println("All sessions deleted.")
		return nil
	}

	if !flagPlain && isatty.IsTerminal(os.Stdout.Fd()) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunSessions(store, width, height); err != nil {
			return fmt.Errorf("running session browser: %w", err)
		}
		return nil
	}

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Println("Recent Sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'rain run' to record the first one!")
		return nil
	}

	fmt.Printf("  %-5s  %-5s  %-12s  %-16s  %-9s  %s\n", "ID", "Mode", "User", "Started", "Duration", "Reveals")
	fmt.Printf("  %-5s  %-5s  %-12s  %-16s  %-9s  %s\n", "--", "----", "----", "-------", "--------", "-------")
	for _, s := range sessions {
		duration := "running"
		if s.Ended {
			duration = (time.Duration(s.DurationSecs) * time.Second).String()
		}
		fmt.Printf("  %-5d  %-5s  %-12s  %-16s  %-9s  %d\n",
			s.ID, s.Mode, s.User, s.StartedAt.Local().Format("2006-01-02 15:04"), duration, s.RevealCycles)
	}

	stats, err := store.StatsByMode()
	if err != nil {
		return nil
	}
	fmt.Println()
	for _, mode := range []string{"local", "ssh"} {
		st, ok := stats[mode]
		if !ok {
			continue
		}
		fmt.Printf("%-5s  %d sessions, %s watched, longest %s\n", mode, st.Count,
			(time.Duration(st.TotalSecs) * time.Second).String(),
			(time.Duration(st.LongestSecs) * time.Second).String())
	}
	return nil
}
