package backend

// Flusher is an optional interface for surfaces that buffer drawing and
// need an explicit present step after a render pass.
type Flusher interface {
	Show()
}
