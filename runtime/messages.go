package runtime

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Message represents an event flowing into the host loop.
// Messages come from the terminal, timers, or background goroutines.
type Message interface {
	isMessage()
}

// ResizeMsg reports a new grid size. MetricsChanged is set when the glyph
// cell size changed too.
type ResizeMsg struct {
	Cols           int
	Rows           int
	MetricsChanged bool
}

func (ResizeMsg) isMessage() {}

// DamageMsg marks viewport rows Start through End (inclusive) for redraw.
type DamageMsg struct {
	Start int
	End   int
}

func (DamageMsg) isMessage() {}

// ResetMsg forgets everything drawn and repaints the whole viewport.
type ResetMsg struct{}

func (ResetMsg) isMessage() {}

// UpdateMsg runs Fn on the loop goroutine. Fn may mutate the grid buffer
// and mark damage through the host.
type UpdateMsg struct {
	Fn func(h *Host)
}

func (UpdateMsg) isMessage() {}

// EventMsg carries a terminal event read from the event source.
type EventMsg struct {
	Event tcell.Event
}

func (EventMsg) isMessage() {}

// TickMsg is sent on each host tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// InvalidateMsg wakes the loop to render pending damage.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// QuitMsg stops the loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}
