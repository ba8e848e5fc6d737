package runtime

import (
	"math"
	"sync"
	"sync/atomic"
)

// Damage accumulates dirty viewport rows and posts a single invalidate
// message while a render is pending.
type Damage struct {
	post    func(Message) bool
	pending atomic.Bool

	mu    sync.Mutex
	dirty bool
	start int
	end   int
}

// NewDamage creates a damage tracker wired to a post function.
func NewDamage(post func(Message) bool) *Damage {
	return &Damage{post: post}
}

// Mark records rows start through end and requests a render pass.
func (d *Damage) Mark(start, end int) {
	if d == nil || end < start {
		return
	}
	d.add(start, end)
	d.Invalidate()
}

// MarkAll records the whole viewport.
func (d *Damage) MarkAll() {
	d.Mark(0, math.MaxInt)
}

// Invalidate posts an InvalidateMsg unless one is already queued.
func (d *Damage) Invalidate() {
	if d == nil || d.post == nil {
		return
	}
	if d.pending.CompareAndSwap(false, true) {
		if !d.post(InvalidateMsg{}) {
			d.pending.Store(false)
		}
	}
}

func (d *Damage) add(start, end int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dirty {
		d.dirty = true
		d.start, d.end = start, end
		return
	}
	d.start = min(d.start, start)
	d.end = max(d.end, end)
}

// take returns the pending range clamped to [0, rows-1] and clears it.
func (d *Damage) take(rows int) (start, end int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Store(false)
	if !d.dirty {
		return 0, 0, false
	}
	d.dirty = false
	start = max(d.start, 0)
	end = min(d.end, rows-1)
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}
