package component

// Timer counts simulated seconds. A repeating timer wraps at Duration and
// reports JustFinished on the tick it wraps; a one-shot timer stays finished
// until Reset.
type Timer struct {
	Duration  float64
	Elapsed   float64
	Repeating bool

	justFinished bool
	finished     bool
}

func NewTimer(duration float64, repeating bool) Timer {
	return Timer{Duration: duration, Repeating: repeating}
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.justFinished = false
	if t.finished && !t.Repeating {
		return
	}
	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return
	}

	t.justFinished = true
	if !t.Repeating {
		t.finished = true
		t.Elapsed = t.Duration
		return
	}
	if t.Duration <= 0 {
		t.Elapsed = 0
		return
	}
	for t.Elapsed >= t.Duration {
		t.Elapsed -= t.Duration
	}
}

// JustFinished reports whether the last Tick crossed the end of a period.
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// Finished reports whether a one-shot timer has run out.
func (t *Timer) Finished() bool {
	return t.finished
}

func (t *Timer) Reset() {
	t.Elapsed = 0
	t.justFinished = false
	t.finished = false
}
