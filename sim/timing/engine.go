package timing

import "github.com/3p1phany/myDRAMsim/sim/hooking"

// SimulationEndHandler is notified once an Engine finishes running.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// Engine drains an EventQueue, advancing simulated time as it goes.
type Engine interface {
	hooking.Hookable
	TimeTeller
	EventScheduler

	Run() error
	RegisterSimulationEndHandler(handler SimulationEndHandler)
	Finished()
}
