package rain

// RevealState is the phase of the image reveal cycle.
type RevealState int

const (
	StateNormal    RevealState = iota // random rain
	StateClearing                     // no new drops, let the grid drain
	StateRevealing                    // synchronized image drops paint the image
	StateErasing                      // random rain washes the image away
)

// String returns the state name.
func (s RevealState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateClearing:
		return "clearing"
	case StateRevealing:
		return "revealing"
	case StateErasing:
		return "erasing"
	default:
		return "unknown"
	}
}

// spawnAllowed reports whether ordinary random drops may spawn.
func (e *Engine) spawnAllowed() bool {
	if !e.imageMode {
		return true
	}
	return e.state == StateNormal || e.state == StateErasing
}

// screenClear reports whether no column holds an active drop.
func (e *Engine) screenClear() bool {
	for i := range e.columns {
		if e.columns[i].activeDrops() > 0 {
			return false
		}
	}
	return true
}

// randomBetween returns a uniform value in [lo, hi].
func (e *Engine) randomBetween(lo, hi int) int64 {
	if hi <= lo {
		return int64(lo)
	}
	return int64(lo + e.rng.Intn(hi-lo+1))
}

func (e *Engine) scheduleNextReveal(now int64) {
	e.transitionTime = now + e.randomBetween(e.cfg.ImageRevealMinIntervalMs, e.cfg.ImageRevealMaxIntervalMs)
}

func (e *Engine) setState(s RevealState, now int64) {
	e.logger.Debug("reveal state", "from", e.state, "to", s, "now", now)
	e.state = s
}

// launchImageDrops starts one full-height image drop in every column at once.
func (e *Engine) launchImageDrops(now int64) {
	for i := range e.columns {
		e.spawn(&e.columns[i], now, true)
	}
}

// updateReveal advances the reveal state machine. It does nothing unless an
// image has been supplied.
func (e *Engine) updateReveal(now int64) {
	if !e.imageMode {
		return
	}
	switch e.state {
	case StateNormal:
		if now >= e.transitionTime {
			e.setState(StateClearing, now)
		}
	case StateClearing:
		if e.screenClear() {
			e.setState(StateRevealing, now)
			e.transitionTime = now + e.randomBetween(e.cfg.ImageRevealMinDurationMs, e.cfg.ImageRevealMaxDurationMs)
			e.launchImageDrops(now)
		}
	case StateRevealing:
		if now >= e.transitionTime {
			e.setState(StateErasing, now)
			e.transitionTime = now + int64(e.cfg.ImageEraseDurationMs)
			return
		}
		// Keep the image alive with another synchronized wave once the
		// previous one has scrolled off.
		if e.screenClear() {
			e.launchImageDrops(now)
		}
	case StateErasing:
		if now >= e.transitionTime {
			e.setState(StateNormal, now)
			e.scheduleNextReveal(now)
			e.stats.RevealCycles++
		}
	}
}
