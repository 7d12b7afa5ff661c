package tui

import (
	"fmt"
	"math"
	"time"
)

// timerState tracks the current state of the stopwatch.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// timerModel is the stopwatch behind the Time view. It only measures; the
// entry it produces on stop is written to the store by the caller.
type timerModel struct {
	now func() time.Time

	state     timerState
	startTime time.Time
	pausedAt  time.Time
	pauseGap  time.Duration

	caseID      string
	caseTitle   string
	memberID    string
	description string
}

func newTimerModel(now func() time.Time) timerModel {
	if now == nil {
		now = time.Now
	}
	return timerModel{now: now, state: timerStopped}
}

func (t *timerModel) start(caseID, caseTitle, memberID, description string) {
	t.state = timerRunning
	t.startTime = t.now()
	t.pauseGap = 0
	t.caseID = caseID
	t.caseTitle = caseTitle
	t.memberID = memberID
	t.description = description
}

// stop halts the stopwatch and returns the measured time. ok is false when
// nothing was running.
func (t *timerModel) stop() (elapsed time.Duration, ok bool) {
	if t.state == timerStopped {
		return 0, false
	}
	elapsed = t.currentElapsed()
	t.state = timerStopped
	return elapsed, true
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += t.now().Sub(t.pausedAt)
	t.state = timerRunning
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t timerModel) running() bool {
	return t.state != timerStopped
}

func (t timerModel) paused() bool {
	return t.state == timerPaused
}

// currentElapsed reads the clock on every call; the footer and the Time view
// redraw on each tick.
func (t timerModel) currentElapsed() time.Duration {
	switch t.state {
	case timerStopped:
		return 0
	case timerPaused:
		return t.pausedAt.Sub(t.startTime) - t.pauseGap
	}
	return t.now().Sub(t.startTime) - t.pauseGap
}

// billedHours rounds a measured duration up to the next tenth of an hour,
// never less than 0.1.
func billedHours(d time.Duration) float64 {
	h := math.Ceil(d.Hours()*10) / 10
	if h < 0.1 {
		return 0.1
	}
	return h
}

func (t timerModel) view() string {
	label := fmt.Sprintf("%s  %s · %s", formatDuration(t.currentElapsed()), t.caseTitle, t.description)
	if t.paused() {
		return warningStyle.Render("⏸ PAUSED  " + label)
	}
	return timerRunningStyle.Render("● " + label)
}
