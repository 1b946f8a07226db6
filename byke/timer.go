package byke

import (
	"math"
	"time"
)

type TimerMode uint8

const (
	TimerModeOnce TimerMode = iota
	TimerModeRepeating
)

// Timer counts down a duration once or repeatedly. It must be advanced
// using Tick, usually with VirtualTime.Delta.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode

	finished       bool
	finishedInTick uint32
}

func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// Tick advances the timer by delta.
func (t *Timer) Tick(delta time.Duration) *Timer {
	t.finishedInTick = 0

	if t.finished && t.mode == TimerModeOnce {
		return t
	}

	t.elapsed += delta

	if t.duration <= 0 || t.elapsed < t.duration {
		return t
	}

	switch t.mode {
	case TimerModeOnce:
		t.elapsed = t.duration
		t.finished = true
		t.finishedInTick = 1

	case TimerModeRepeating:
		t.finishedInTick = uint32(min(math.MaxUint32, t.elapsed/t.duration))
		t.elapsed %= t.duration
	}

	return t
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Remaining() time.Duration {
	return t.duration - t.elapsed
}

// Fraction is zero for a fresh timer and one for a finished timer.
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}

	return float64(t.elapsed) / float64(t.duration)
}

// Finished returns true once a TimerModeOnce timer has run out.
// Repeating timers never finish.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished returns true if the timer ran out during the previous Tick.
func (t *Timer) JustFinished() bool {
	return t.finishedInTick > 0
}

// TimesFinishedThisTick returns how often a repeating timer ran out during the previous Tick.
func (t *Timer) TimesFinishedThisTick() int {
	return int(t.finishedInTick)
}

func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.finishedInTick = 0
}
