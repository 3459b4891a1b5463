package modeling

import (
	"sync"

	"github.com/3p1phany/myDRAMsim/sim/timing"
	"github.com/3p1phany/myDRAMsim/sim/timing/id"
)

// tickEvent is the event a TickScheduler reschedules every cycle.
type tickEvent struct {
	timing.EventBase
}

func makeTickEvent(h timing.Handler, t timing.VTimeInSec, secondary bool) tickEvent {
	return tickEvent{
		EventBase: timing.EventBase{
			ID:        id.Generate(),
			Ts:        t,
			H:         h,
			Secondary: secondary,
		},
	}
}

// Ticker is anything that can advance its state by one cycle.
type Ticker interface {
	Tick() bool
}

// TickScheduler keeps a Ticker's Tick events flowing through an Engine
// without ever scheduling more than one pending tick at a time.
type TickScheduler struct {
	lock      sync.Mutex
	handler   timing.Handler
	freq      timing.Freq
	engine    timing.Engine
	secondary bool

	nextTickTime timing.VTimeInSec
}

// NewTickScheduler creates a scheduler for primary (default priority) tick
// events.
func NewTickScheduler(
	handler timing.Handler,
	engine timing.Engine,
	freq timing.Freq,
) *TickScheduler {
	return &TickScheduler{
		handler:      handler,
		engine:       engine,
		freq:         freq,
		nextTickTime: -1,
	}
}

// NewSecondaryTickScheduler creates a scheduler whose tick events are
// always handled after primary events at the same timestamp. Connections
// use this so that components have already produced their outgoing
// messages before the connection tries to move them.
func NewSecondaryTickScheduler(
	handler timing.Handler,
	engine timing.Engine,
	freq timing.Freq,
) *TickScheduler {
	s := NewTickScheduler(handler, engine, freq)
	s.secondary = true

	return s
}

// TickLater schedules a tick at the next cycle boundary after the engine's
// current time, unless one is already pending.
func (s *TickScheduler) TickLater() {
	s.lock.Lock()
	defer s.lock.Unlock()

	next := s.freq.NextTick(s.engine.CurrentTime())
	if s.nextTickTime >= next {
		return
	}

	s.nextTickTime = next
	s.engine.Schedule(makeTickEvent(s.handler, next, s.secondary))
}

// TickingComponent gives a Component a per-cycle Tick without requiring it
// to manage event scheduling itself: implement Ticker, then let
// TickingComponent keep rescheduling Tick as long as it reports progress.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// NotifyRecv restarts ticking when a message arrives on an idle component.
func (c *TickingComponent) NotifyRecv(_ Port) {
	c.TickLater()
}

// NotifyPortFree restarts ticking when outgoing capacity frees up.
func (c *TickingComponent) NotifyPortFree(_ Port) {
	c.TickLater()
}

// Handle runs the underlying Ticker and reschedules itself if it made
// progress.
func (c *TickingComponent) Handle(_ timing.Event) error {
	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a TickingComponent named name, driven at freq
// by engine, delegating its per-cycle work to ticker.
func NewTickingComponent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)

	return tc
}

// NewSecondaryTickingComponent is like NewTickingComponent but schedules
// secondary tick events.
func NewSecondaryTickingComponent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine, freq)

	return tc
}
