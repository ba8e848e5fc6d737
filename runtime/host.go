// Package runtime drives a foreground render layer from a message loop.
package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-term/backend"
	"github.com/odvcencio/furry-term/render"
)

var (
	// ErrNoSurface is returned by Run when the host has nothing to draw on.
	ErrNoSurface = errors.New("runtime: surface is required")

	// ErrNoBuffer is returned by Run when the host has nothing to draw.
	ErrNoBuffer = errors.New("runtime: buffer is required")
)

// UpdateFunc handles messages the host does not consume itself and
// returns true if the whole viewport needs a redraw.
type UpdateFunc func(h *Host, msg Message) bool

// EventSource supplies terminal events. tcell screens satisfy it.
type EventSource interface {
	PollEvent() tcell.Event
}

// Sizer reports the initial grid size of a surface.
type Sizer interface {
	Size() (cols, rows int)
}

// Resizer is implemented by grid buffers that follow the viewport size.
type Resizer interface {
	Resize(cols, rows int)
}

// HostConfig configures a Host.
type HostConfig struct {
	Surface       backend.Surface
	Buffer        render.GridBuffer
	Events        EventSource
	Update        UpdateFunc
	Logger        *slog.Logger
	Observer      RenderObserver
	MessageBuffer int
	TickRate      time.Duration

	// Cols and Rows set the initial size. When zero the surface is asked
	// through Sizer.
	Cols int
	Rows int
}

// Host owns a foreground layer and renders damaged rows of a grid buffer
// from a single goroutine.
type Host struct {
	surface  backend.Surface
	buffer   render.GridBuffer
	layer    *render.Foreground
	events   EventSource
	update   UpdateFunc
	logger   *slog.Logger
	observer RenderObserver
	messages chan Message
	tickRate time.Duration
	damage   *Damage
	session  ulid.ULID
	cols     int
	rows     int

	taskMu         sync.Mutex
	taskCtx        context.Context
	pendingEffects []Effect

	running bool
	frame   int64
	totals  render.Stats
}

// NewHost creates a host from config.
func NewHost(cfg HostConfig) *Host {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	session := ulid.Make()
	logger = logger.With("session", session.String())
	h := &Host{
		surface:  cfg.Surface,
		buffer:   cfg.Buffer,
		events:   cfg.Events,
		update:   cfg.Update,
		logger:   logger,
		observer: cfg.Observer,
		messages: make(chan Message, bufferSize),
		tickRate: cfg.TickRate,
		session:  session,
		cols:     cfg.Cols,
		rows:     cfg.Rows,
	}
	if h.surface != nil {
		h.layer = render.New(h.surface, render.WithLogger(logger))
		if sizer, ok := h.surface.(Sizer); ok && h.cols == 0 && h.rows == 0 {
			h.cols, h.rows = sizer.Size()
		}
	}
	h.damage = NewDamage(h.tryPost)
	return h
}

// Session returns the id stamped on every frame of this host.
func (h *Host) Session() ulid.ULID {
	return h.session
}

// Size returns the current viewport size.
func (h *Host) Size() (cols, rows int) {
	return h.cols, h.rows
}

// Buffer returns the grid buffer being rendered.
func (h *Host) Buffer() render.GridBuffer {
	return h.buffer
}

// Totals returns layer stats summed over every frame. Call it from the
// loop goroutine or after Run returns.
func (h *Host) Totals() render.Stats {
	return h.totals
}

// Frames returns the number of frames rendered so far. Call it from the
// loop goroutine or after Run returns.
func (h *Host) Frames() int64 {
	return h.frame
}

// Damage marks viewport rows start through end for redraw.
// It is safe to call from any goroutine.
func (h *Host) Damage(start, end int) {
	h.damage.Mark(start, end)
}

// DamageAll marks the whole viewport for redraw.
func (h *Host) DamageAll() {
	h.damage.MarkAll()
}

// Reset requests that the layer forget its state and repaint.
func (h *Host) Reset() {
	h.Post(ResetMsg{})
}

// Quit requests that Run return.
func (h *Host) Quit() {
	h.Post(QuitMsg{})
}

// Post sends a message to the loop, dropping it when the queue is full.
func (h *Host) Post(msg Message) {
	if !h.tryPost(msg) {
		h.logger.Warn("message dropped", "type", messageType(msg))
	}
}

// TryPost sends a message to the loop without blocking.
func (h *Host) TryPost(msg Message) bool {
	return h.tryPost(msg)
}

func (h *Host) tryPost(msg Message) bool {
	if h == nil || h.messages == nil || msg == nil {
		return false
	}
	select {
	case h.messages <- msg:
		return true
	default:
		return false
	}
}

// Spawn starts an effect using the host task context.
// If Run has not started, the effect is queued until start.
func (h *Host) Spawn(effect Effect) {
	if h == nil || effect.Run == nil {
		return
	}
	h.taskMu.Lock()
	ctx := h.taskCtx
	if ctx == nil {
		h.pendingEffects = append(h.pendingEffects, effect)
		h.taskMu.Unlock()
		return
	}
	h.taskMu.Unlock()
	go effect.Run(ctx, h.tryPost)
}

// After schedules a delayed message.
func (h *Host) After(delay time.Duration, msg Message) {
	h.Spawn(After(delay, msg))
}

// Every schedules a recurring message.
func (h *Host) Every(interval time.Duration, fn func(time.Time) Message) {
	h.Spawn(Every(interval, fn))
}

// Run starts the loop until quit or context cancellation.
func (h *Host) Run(ctx context.Context) error {
	if h.surface == nil {
		return ErrNoSurface
	}
	if h.buffer == nil {
		return ErrNoBuffer
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	defer h.stopTasks(taskCancel)

	h.logger.Info("host started", "cols", h.cols, "rows", h.rows)
	defer func() {
		h.logger.Info("host stopped", "frames", h.frame, "painted", h.totals.Painted)
	}()

	h.resize(h.cols, h.rows, false)
	h.running = true
	h.startTasks(taskCtx)

	if h.events != nil {
		go h.pollEvents(taskCtx)
	}

	var ticks <-chan time.Time
	if h.tickRate > 0 {
		ticker := time.NewTicker(h.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	h.render()
	for h.running {
		select {
		case <-ctx.Done():
			h.running = false
		case msg := <-h.messages:
			h.handle(msg)
		case now := <-ticks:
			h.handle(TickMsg{Time: now})
		}
		if h.running {
			h.render()
		}
	}
	return ctx.Err()
}

func (h *Host) handle(msg Message) {
	switch m := msg.(type) {
	case ResizeMsg:
		h.resize(m.Cols, m.Rows, m.MetricsChanged)
	case DamageMsg:
		if m.End >= m.Start {
			h.damage.add(m.Start, m.End)
		}
	case ResetMsg:
		h.layer.Reset()
		h.damage.add(0, h.rows-1)
		h.logger.Debug("layer reset")
	case UpdateMsg:
		if m.Fn != nil {
			m.Fn(h)
		}
	case InvalidateMsg:
	case QuitMsg:
		h.running = false
	case EventMsg:
		if ev, ok := m.Event.(*tcell.EventResize); ok {
			cols, rows := ev.Size()
			h.resize(cols, rows, false)
		}
		h.dispatch(msg)
	default:
		h.dispatch(msg)
	}
}

func (h *Host) dispatch(msg Message) {
	if h.update != nil && h.update(h, msg) {
		h.damage.add(0, h.rows-1)
	}
}

func (h *Host) resize(cols, rows int, metricsChanged bool) {
	cols, rows = max(cols, 0), max(rows, 0)
	h.cols, h.rows = cols, rows
	h.layer.Resize(cols, rows, metricsChanged)
	if r, ok := h.buffer.(Resizer); ok {
		r.Resize(cols, rows)
	}
	h.damage.add(0, rows-1)
	h.logger.Debug("host resized", "cols", cols, "rows", rows, "metrics_changed", metricsChanged)
}

func (h *Host) render() {
	start, end, ok := h.damage.take(h.rows)
	if !ok {
		return
	}
	began := time.Now()
	stats := h.layer.Render(h.buffer, start, end)
	if f, ok := h.surface.(backend.Flusher); ok {
		f.Show()
	}
	h.frame++
	h.totals.Add(stats)
	if h.observer != nil {
		h.observer.ObserveRender(RenderStats{
			Session:  h.session,
			Frame:    h.frame,
			StartRow: start,
			EndRow:   end,
			Layer:    stats,
			Started:  began,
			Duration: time.Since(began),
		})
	}
}

func (h *Host) pollEvents(ctx context.Context) {
	for {
		ev := h.events.PollEvent()
		if ctx.Err() != nil {
			return
		}
		if ev == nil {
			continue
		}
		h.Post(EventMsg{Event: ev})
	}
}

func (h *Host) startTasks(ctx context.Context) {
	h.taskMu.Lock()
	h.taskCtx = ctx
	effects := h.pendingEffects
	h.pendingEffects = nil
	h.taskMu.Unlock()
	for _, effect := range effects {
		go effect.Run(ctx, h.tryPost)
	}
}

func (h *Host) stopTasks(cancel context.CancelFunc) {
	cancel()
	h.taskMu.Lock()
	h.taskCtx = nil
	h.taskMu.Unlock()
}

func messageType(msg Message) string {
	switch msg.(type) {
	case ResizeMsg:
		return "resize"
	case DamageMsg:
		return "damage"
	case ResetMsg:
		return "reset"
	case UpdateMsg:
		return "update"
	case EventMsg:
		return "event"
	case TickMsg:
		return "tick"
	case InvalidateMsg:
		return "invalidate"
	case QuitMsg:
		return "quit"
	default:
		return "custom"
	}
}
