// Package intro implements the text screens shown before the rain: a BIOS
// style boot listing and a terminal that types a short message.
//
// Both are core.Scene values driven by the host's tick timestamps. All
// animation state lives in explicit state structs owned by each scene.
package intro

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/core"
)

// MemToken is replaced by an animated memory counter in a boot line.
const MemToken = "{MEM}"

type bootPhase int

const (
	phaseIdle bootPhase = iota
	phaseMem
	phaseColon
	phaseLineDone
)

// BootState is the progress of the boot listing.
type BootState struct {
	Index    int      // next line of the listing to process
	Lines    []string // lines currently on screen
	Mem      int      // memory counter of a {MEM} line
	LastStep int64    // last counter step or colon pause start
	LastLine int64    // when the previous line finished
	Finished bool
	phase    bootPhase
}

var (
	_ core.Scene = (*Boot)(nil)
	_ core.Scene = (*Terminal)(nil)
)

// Boot prints the listing one line at a time.
type Boot struct {
	cfg   config.IntroConfig
	state BootState
}

// NewBoot creates a boot scene. Call Reset before the first Update.
func NewBoot(cfg config.IntroConfig) *Boot {
	return &Boot{cfg: cfg}
}

// Reset rewinds to an empty screen.
func (b *Boot) Reset(_ core.RuntimeConfig, now int64) {
	b.state = BootState{LastLine: now, LastStep: now}
}

// State returns a copy of the current progress.
func (b *Boot) State() BootState {
	s := b.state
	s.Lines = append([]string(nil), b.state.Lines...)
	return s
}

// Done reports whether every line has been shown and the last line delay
// has passed.
func (b *Boot) Done() bool {
	return b.state.Finished
}

// Update advances the listing by at most one step.
func (b *Boot) Update(now int64) {
	s := &b.state
	if s.Finished {
		return
	}
	if s.Index >= len(b.cfg.BootLines) {
		if now-s.LastLine > int64(b.cfg.BootLineDelayMs) {
			s.Finished = true
		}
		return
	}

	line := b.cfg.BootLines[s.Index]
	switch {
	case s.phase == phaseLineDone:
		s.phase = phaseIdle
		s.Index++
		s.LastLine = now

	case strings.Contains(line, MemToken):
		b.stepMem(line, now)

	case s.phase == phaseColon:
		if now-s.LastStep > int64(b.cfg.ColonPauseMs) {
			s.Lines[len(s.Lines)-1] = line
			s.phase = phaseLineDone
		}

	case strings.Contains(line, ":"):
		// Show the label, pause, then fill in the value.
		s.Lines = append(s.Lines, line[:strings.Index(line, ":")+1])
		s.LastStep = now
		s.phase = phaseColon

	default:
		if now-s.LastLine > int64(b.cfg.BootLineDelayMs) {
			s.Lines = append(s.Lines, line)
			s.Index++
			s.LastLine = now
		}
	}
}

// stepMem counts the memory check up to its limit.
func (b *Boot) stepMem(line string, now int64) {
	s := &b.state
	if s.phase == phaseIdle {
		s.phase = phaseMem
		s.Mem = 0
		s.LastStep = now
		s.Lines = append(s.Lines, memLine(line, 0))
	}
	if b.cfg.MemStep <= 0 || s.Mem >= b.cfg.MemLimit {
		s.Mem = core.Max(b.cfg.MemLimit, 0)
		s.Lines[len(s.Lines)-1] = memLine(line, s.Mem)
		s.phase = phaseLineDone
		return
	}
	if now-s.LastStep > int64(b.cfg.MemIntervalMs) {
		s.Mem = core.Min(s.Mem+b.cfg.MemStep, b.cfg.MemLimit)
		s.LastStep = now
		s.Lines[len(s.Lines)-1] = memLine(line, s.Mem)
		if s.Mem >= b.cfg.MemLimit {
			s.phase = phaseLineDone
		}
	}
}

func memLine(line string, mem int) string {
	return strings.Replace(line, MemToken, strconv.Itoa(mem), 1)
}

// Render draws the listing anchored to the bottom of the screen.
func (b *Boot) Render(dst *core.Screen) {
	dst.DrawLinesBottom(0, b.state.Lines)
}
