// Package timing provides the discrete-event core that drives every
// component forward: a notion of simulated time, an event queue ordered by
// that time, and the engines that drain the queue.
package timing

// VTimeInSec is a point in simulated time, measured in seconds.
type VTimeInSec float64

// Handler owns events and reacts to them.
type Handler interface {
	Handle(e Event) error
}

// Event is something scheduled to happen at a specific simulated time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
	IsSecondary() bool
}

// EventBase supplies the bookkeeping fields shared by every event type.
type EventBase struct {
	ID        string
	Ts        VTimeInSec
	H         Handler
	Secondary bool
}

// Time returns when the event should fire.
func (e EventBase) Time() VTimeInSec { return e.Ts }

// Handler returns who should handle the event.
func (e EventBase) Handler() Handler { return e.H }

// IsSecondary reports whether the event should be handled only after all
// primary events at the same timestamp have been processed.
func (e EventBase) IsSecondary() bool { return e.Secondary }

// TimeTeller can report the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events to be run in the future.
type EventScheduler interface {
	Schedule(e Event)
}
