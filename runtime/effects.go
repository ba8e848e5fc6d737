package runtime

import (
	"context"
	"time"
)

// PostFunc sends a message into the host.
// It returns false when the message queue is full.
type PostFunc func(Message) bool

// Effect runs work in a background goroutine.
// Use the provided context for cancellation and PostFunc to emit messages.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

// After posts msg once after delay. A non-positive delay posts at once.
func After(delay time.Duration, msg Message) Effect {
	if msg == nil {
		return Effect{}
	}
	return timed(delay, false, func(time.Time) Message { return msg })
}

// Every calls fn after each interval and posts what it returns; nil skips
// the post. The next interval starts once fn returns, so a slow fn such as
// a file poll never queues up behind itself.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	if interval <= 0 || fn == nil {
		return Effect{}
	}
	return timed(interval, true, fn)
}

func timed(d time.Duration, repeat bool, fn func(time.Time) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if post == nil {
				return
			}
			if d <= 0 {
				if msg := fn(time.Now()); msg != nil {
					post(msg)
				}
				return
			}
			timer := time.NewTimer(d)
			defer timer.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-timer.C:
					if msg := fn(now); msg != nil {
						post(msg)
					}
					if !repeat {
						return
					}
					timer.Reset(d)
				}
			}
		},
	}
}
