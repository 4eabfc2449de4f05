package game

import (
	"time"

	"mcvox/internal/config"
)

const (
	idleFPS    = 60
	spinWindow = 200 * time.Microsecond
)

// FPSLimiter paces the frame loop against a deadline that advances by one
// frame period per call, so short frames do not accumulate drift.
type FPSLimiter struct {
	next time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// framePeriod returns the target frame time for limit, or 0 for unlimited.
// An idle viewer (no chunk work queued) never runs faster than idleFPS.
func framePeriod(limit int, idle bool) time.Duration {
	if idle && (limit <= 0 || limit > idleFPS) {
		limit = idleFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait blocks until the next frame deadline. It sleeps until spinWindow
// before the deadline and spins the rest.
func (f *FPSLimiter) Wait(idle bool) {
	period := framePeriod(config.GetFPSLimit(), idle)
	if period == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now()
	}
	f.next = f.next.Add(period)

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// A hitch longer than one period restarts the schedule.
	if late := -time.Until(f.next); late > period {
		f.next = time.Now().Add(period)
	}
}
