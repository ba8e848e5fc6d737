package runtime

import (
	"context"
	"testing"
	"time"
)

func TestAfter_Immediate(t *testing.T) {
	calls := 0
	effect := After(0, ResizeMsg{Cols: 1, Rows: 1})
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected immediate post, got %d", calls)
	}
}

func TestAfter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	effect := After(time.Hour, QuitMsg{})
	effect.Run(ctx, func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no post after cancel, got %d", calls)
	}
}

func TestEvery_Invalid(t *testing.T) {
	if Every(0, func(time.Time) Message { return InvalidateMsg{} }).Run != nil {
		t.Fatal("expected no effect for invalid interval")
	}
	if Every(10*time.Millisecond, nil).Run != nil {
		t.Fatal("expected no effect for nil callback")
	}
	if After(time.Millisecond, nil).Run != nil {
		t.Fatal("expected no effect for nil message")
	}
}

func TestEvery_WaitsForSlowCallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stamps []time.Time
	effect := Every(2*time.Millisecond, func(now time.Time) Message {
		stamps = append(stamps, now)
		time.Sleep(10 * time.Millisecond)
		if len(stamps) == 2 {
			cancel()
		}
		return nil
	})
	effect.Run(ctx, func(Message) bool { return true })
	if len(stamps) != 2 {
		t.Fatalf("callbacks = %d, want 2", len(stamps))
	}
	if gap := stamps[1].Sub(stamps[0]); gap < 12*time.Millisecond {
		t.Fatalf("gap = %v, want the interval to restart after the callback", gap)
	}
}

func TestEvery_SkipsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticks := 0
	posted := make(chan Message, 8)
	effect := Every(time.Millisecond, func(time.Time) Message {
		ticks++
		if ticks < 3 {
			return nil
		}
		cancel()
		return InvalidateMsg{}
	})
	effect.Run(ctx, func(msg Message) bool {
		posted <- msg
		return true
	})
	select {
	case msg := <-posted:
		if _, ok := msg.(InvalidateMsg); !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
	default:
		t.Fatal("expected a post on the third tick")
	}
	if ticks < 3 {
		t.Fatalf("ticks = %d, want at least 3", ticks)
	}
}
