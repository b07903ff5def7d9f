package watch

import (
	"context"
	"time"
)

// Debounce calls fn once for every burst of signals on in, after in has been quiet for
// wait. It returns when ctx is done (with ctx.Err()) or when in is closed (with nil);
// a burst still pending when in closes is flushed first.
func Debounce(ctx context.Context, in <-chan struct{}, wait time.Duration, fn func()) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending bool
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-in:
			if !ok {
				if pending {
					fn()
				}
				return nil
			}
			pending = true
			stop()
			timer = time.NewTimer(wait)
			fire = timer.C
		case <-fire:
			pending = false
			fire = nil
			fn()
		}
	}
}
