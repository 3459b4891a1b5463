package modeling

// Middleware implements one slice of a component's per-cycle behavior. A
// component that outgrows a single Tick method can be decomposed into
// several middlewares, each independently testable.
type Middleware interface {
	Tick() bool
}

// MiddlewareHolder runs a list of middlewares in order every cycle.
type MiddlewareHolder struct {
	middlewares []Middleware
}

// AddMiddleware appends m to the list run on every Tick.
func (h *MiddlewareHolder) AddMiddleware(m Middleware) {
	h.middlewares = append(h.middlewares, m)
}

// Middlewares returns the middlewares registered so far.
func (h *MiddlewareHolder) Middlewares() []Middleware {
	return h.middlewares
}

// Tick runs every middleware, returning true if any of them made progress.
func (h *MiddlewareHolder) Tick() bool {
	madeProgress := false

	for _, m := range h.middlewares {
		if m.Tick() {
			madeProgress = true
		}
	}

	return madeProgress
}
