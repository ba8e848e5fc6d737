package runtime

import (
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-term/render"
)

// RenderStats describes one render pass of the host.
type RenderStats struct {
	Session  ulid.ULID
	Frame    int64
	StartRow int
	EndRow   int
	Layer    render.Stats
	Started  time.Time
	Duration time.Duration
}

// RenderObserver receives stats after every frame is presented.
type RenderObserver interface {
	ObserveRender(stats RenderStats)
}

// RenderObserverFunc adapts a function to RenderObserver.
type RenderObserverFunc func(RenderStats)

// ObserveRender calls f.
func (f RenderObserverFunc) ObserveRender(stats RenderStats) {
	f(stats)
}

// LogObserver returns an observer that logs each frame at debug level.
func LogObserver(logger *slog.Logger) RenderObserver {
	return RenderObserverFunc(func(s RenderStats) {
		logger.Debug("frame rendered",
			"session", s.Session.String(),
			"frame", s.Frame,
			slog.Group("rows", slog.Int("start", s.StartRow), slog.Int("end", s.EndRow)),
			"painted", s.Layer.Painted,
			"cleared", s.Layer.Cleared,
			"unchanged", s.Layer.Unchanged,
			"duration", s.Duration,
		)
	})
}
