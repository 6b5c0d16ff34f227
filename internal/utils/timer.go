package utils

import (
	"context"
	"time"

	"github.com/2214372851/YunChat/providers/observability"
)

// Timer measures the wall-clock time of one operation, typically a chat turn
// from the request leaving until the final delta arrives. A Timer is running
// from the moment [NewTimer] returns; [Timer.Stop] freezes the measurement
// and [Timer.Observe] reports it on the context's observer.
type Timer struct {
	startedAt time.Time
	captured  time.Duration
	running   bool
}

// NewTimer returns a started timer.
func NewTimer() *Timer {
	return &Timer{startedAt: time.Now(), running: true}
}

// Restart discards any captured measurement and begins a new one.
func (timer *Timer) Restart() {
	timer.startedAt = time.Now()
	timer.captured = 0
	timer.running = true
}

// Stop freezes the measurement and returns it. Stopping an already stopped
// timer keeps the first capture.
func (timer *Timer) Stop() time.Duration {
	if timer.running {
		timer.captured = time.Since(timer.startedAt)
		timer.running = false
	}
	return timer.captured
}

// Elapsed returns the captured duration of a stopped timer, or the time
// spent so far while the timer is still running.
func (timer *Timer) Elapsed() time.Duration {
	if timer.running {
		return time.Since(timer.startedAt)
	}
	return timer.captured
}

// Observe stops the timer and emits msg as a debug event on the context's
// observer, with the measured duration as the leading attribute. Without an
// observer attached the timer is still stopped, so Elapsed keeps reporting
// the capture.
func (timer *Timer) Observe(ctx context.Context, msg string, attrs ...observability.Attribute) {
	duration := timer.Stop()

	observer := observability.ObserverFromContext(ctx)
	if observer == nil {
		return
	}
	fields := make([]observability.Attribute, 0, len(attrs)+1)
	fields = append(fields, observability.Duration(observability.AttrDuration, duration))
	fields = append(fields, attrs...)
	observer.Debug(ctx, msg, fields...)
}
