package timing

import (
	"github.com/3p1phany/myDRAMsim/sim/hooking"
)

// HookPosBeforeEvent fires immediately before an event is handled.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent fires immediately after an event is handled.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// SerialEngine runs every event on a single goroutine, in time order. It is
// the engine used by unit and acceptance tests, where determinism matters
// more than throughput.
type SerialEngine struct {
	hooking.HookableBase

	queue      EventQueue
	now        VTimeInSec
	endHandler []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine with an empty event queue.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{queue: NewEventQueue()}
}

// Schedule enqueues an event to be handled in the future.
func (e *SerialEngine) Schedule(evt Event) {
	e.queue.Push(evt)
}

// CurrentTime returns the time of the event currently being processed.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.now
}

// Run drains the event queue until it is empty.
func (e *SerialEngine) Run() error {
	for e.queue.Len() > 0 {
		evt := e.queue.Pop()
		e.now = evt.Time()

		if e.NumHooks() > 0 {
			e.InvokeHook(hooking.HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt})
		}

		if err := evt.Handler().Handle(evt); err != nil {
			return err
		}

		if e.NumHooks() > 0 {
			e.InvokeHook(hooking.HookCtx{Domain: e, Pos: HookPosAfterEvent, Item: evt})
		}
	}

	e.Finished()

	return nil
}

// RegisterSimulationEndHandler registers a callback to run once Run drains
// the queue.
func (e *SerialEngine) RegisterSimulationEndHandler(handler SimulationEndHandler) {
	e.endHandler = append(e.endHandler, handler)
}

// Finished invokes every registered SimulationEndHandler.
func (e *SerialEngine) Finished() {
	for _, h := range e.endHandler {
		h.Handle(e.now)
	}
}
