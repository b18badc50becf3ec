package intro

import (
	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/core"
)

// Cursor is drawn after the typed text while the cursor blink is on.
const Cursor = "_"

// TerminalState is the progress of the typing animation.
type TerminalState struct {
	Shown     int   // prompt runes typed so far
	Start     int64 // when the terminal screen appeared
	Now       int64 // time of the last Update
	LastChar  int64
	CursorOn  bool
	LastBlink int64
}

// Terminal types a prompt one character at a time.
type Terminal struct {
	cfg    config.IntroConfig
	prompt []rune
	state  TerminalState
}

// NewTerminal creates a terminal scene. Call Reset before the first Update.
func NewTerminal(cfg config.IntroConfig) *Terminal {
	return &Terminal{cfg: cfg, prompt: []rune(cfg.Prompt)}
}

// Reset clears the screen and restarts typing at now.
func (t *Terminal) Reset(_ core.RuntimeConfig, now int64) {
	t.state = TerminalState{Start: now, Now: now, LastChar: now, LastBlink: now, CursorOn: true}
}

// State returns a copy of the current progress.
func (t *Terminal) State() TerminalState {
	return t.state
}

// Text returns the typed part of the prompt.
func (t *Terminal) Text() string {
	return string(t.prompt[:t.state.Shown])
}

// Done reports whether the whole prompt is typed and the hold time, counted
// from when the terminal appeared, has passed.
func (t *Terminal) Done() bool {
	return t.state.Shown >= len(t.prompt) && t.state.Now-t.state.Start > int64(t.cfg.HoldMs)
}

// Update types the next character when its delay has passed. A newline
// waits longer than an ordinary character.
func (t *Terminal) Update(now int64) {
	s := &t.state
	s.Now = now
	if s.Shown < len(t.prompt) {
		delay := int64(t.cfg.CharDelayMs)
		if t.prompt[s.Shown] == '\n' {
			delay = int64(t.cfg.NewlineDelayMs)
		}
		if now-s.LastChar > delay {
			s.Shown++
			s.LastChar = now
		}
	}
	if t.cfg.CursorBlinkMs > 0 && now-s.LastBlink >= int64(t.cfg.CursorBlinkMs) {
		s.CursorOn = !s.CursorOn
		s.LastBlink = now
	}
}

// Render draws the typed text and cursor anchored to the bottom of the screen.
func (t *Terminal) Render(dst *core.Screen) {
	text := t.Text()
	if t.state.CursorOn {
		text += Cursor
	}
	dst.DrawLinesBottom(0, []string{text})
}
