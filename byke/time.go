package byke

import (
	"time"
)

// VirtualTime is a resource tracking the time of the current frame.
// Setting Scale speeds up or slows down time starting at the next frame.
type VirtualTime struct {
	Elapsed   time.Duration
	Delta     time.Duration
	DeltaSecs float64

	Scale float64

	// fixed frame delta used instead of the wall clock, if not zero
	step time.Duration
}

// SteppedTime creates a VirtualTime that advances by step each frame,
// independent of the wall clock. Useful for headless runs and tests.
func SteppedTime(step time.Duration) VirtualTime {
	return VirtualTime{Scale: 1, step: step}
}

func (v *VirtualTime) advance(delta time.Duration) {
	v.Delta = time.Duration(float64(delta) * v.Scale)
	v.DeltaSecs = v.Delta.Seconds()
	v.Elapsed += v.Delta
}

func updateVirtualTime(v *VirtualTime, lastTime *Local[time.Time]) {
	if v.step > 0 {
		v.advance(v.step)
		return
	}

	now := time.Now()

	if lastTime.Value.IsZero() {
		// first frame, there is no delta yet
		lastTime.Value = now
		return
	}

	v.advance(now.Sub(lastTime.Value))
	lastTime.Value = now
}
