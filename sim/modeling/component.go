package modeling

import (
	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/naming"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// Component is a simulated hardware block: it has a name, ports to
// exchange messages through, hooks to observe it with, and a way to react
// to scheduled events.
type Component interface {
	naming.Named
	timing.Handler
	hooking.Hookable
	PortOwner

	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// ComponentBase bundles the boilerplate every Component needs.
type ComponentBase struct {
	naming.NamedBase
	hooking.HookableBase
	PortOwnerBase
}

// NewComponentBase creates a ComponentBase with the given name.
func NewComponentBase(name string) *ComponentBase {
	return &ComponentBase{
		NamedBase:     naming.MakeNamedBase(name),
		PortOwnerBase: MakePortOwnerBase(),
	}
}
