package rain

// fadeDuration returns how long the cell at (col, row) takes to fade out.
// While an image is being revealed the duration scales with the cell's
// brightness so bright parts of the image linger.
func (e *Engine) fadeDuration(col, row int) int64 {
	base := int64(e.cfg.FadeDurationMs)
	if e.state != StateRevealing || len(e.brightness) == 0 {
		return base
	}
	b := int64(e.brightness[row*e.cols+col])
	d := b * base * 5 / 255
	if d < 1 {
		d = 1
	}
	return d
}

// hiddenByImage reports whether the cell is too dark to show during a reveal.
// Black cells are always hidden, whatever the threshold.
func (e *Engine) hiddenByImage(col, row int) bool {
	if e.state != StateRevealing || len(e.brightness) == 0 {
		return false
	}
	b := e.brightness[row*e.cols+col]
	return b == 0 || b < e.minImageBrightness
}

// fadeProgress returns how far a fading cell is towards empty, in [0, inf).
func fadeProgress(c Cell, now, duration int64) float64 {
	if duration < 1 {
		duration = 1
	}
	elapsed := now - c.FadeStart
	if elapsed < 0 {
		elapsed = 0
	}
	return float64(elapsed) / float64(duration)
}

// updateFade clears every fading cell of column x whose fade has completed,
// whether or not a drop still covers it.
func (e *Engine) updateFade(x int, now int64) {
	cells := e.columns[x].cells
	for y := range cells {
		cell := &cells[y]
		if cell.Empty() {
			continue
		}
		if e.hiddenByImage(x, y) {
			cell.clear()
			continue
		}
		if !cell.Fading {
			continue
		}
		if fadeProgress(*cell, now, e.fadeDuration(x, y)) >= 1.0 {
			cell.clear()
		}
	}
}
