// Package directconnection provides a zero-latency Connection: anything
// sent on one plugged-in port is delivered to its destination the moment
// the connection next ticks, with no propagation delay of its own.
package directconnection

import (
	"sync"

	"github.com/3p1phany/myDRAMsim/sim/modeling"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// Port is the subset of modeling.Port a DirectConnection needs.
type Port = modeling.Port

// DirectConnection connects an arbitrary number of ports with no simulated
// latency: a message sent this cycle is deliverable as soon as the
// connection ticks.
type DirectConnection struct {
	*modeling.TickingComponent

	lock       sync.Mutex
	nextPortID int
	ports      []Port
	ends       map[modeling.RemotePort]Port
}

// PlugIn registers port with the connection.
func (c *DirectConnection) PlugIn(port modeling.Port) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.ports = append(c.ports, port)
	c.ends[port.AsRemote()] = port

	port.SetConnection(c)
}

// NotifySend wakes the connection up so it forwards the newly sent message.
func (c *DirectConnection) NotifySend() {
	c.TickLater()
}

// NotifyAvailable wakes the connection up so it retries a delivery that had
// previously stalled.
func (c *DirectConnection) NotifyAvailable(_ modeling.Port) {
	c.TickLater()
}

// Tick forwards at most one pending message from each plugged-in port,
// starting from a port that rotates every tick so that no single port
// starves the others.
func (c *DirectConnection) Tick() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if len(c.ports) == 0 {
		return false
	}

	madeProgress := false

	for i := 0; i < len(c.ports); i++ {
		portID := (i + c.nextPortID) % len(c.ports)
		src := c.ports[portID]

		if c.forwardOne(src) {
			madeProgress = true
		}
	}

	c.nextPortID = (c.nextPortID + 1) % len(c.ports)

	return madeProgress
}

func (c *DirectConnection) forwardOne(src Port) bool {
	msg := src.PeekOutgoing()
	if msg == nil {
		return false
	}

	dst, ok := c.ends[msg.Meta().Dst]
	if !ok {
		panic("direct connection: destination port " +
			string(msg.Meta().Dst) + " is not plugged in")
	}

	if err := dst.Deliver(msg); err != nil {
		return false
	}

	src.RetrieveOutgoing()

	return true
}

// NewDirectConnection creates a DirectConnection named name, driven at freq
// on engine. Its ticks run after every other component's at the same
// timestamp so that outgoing buffers are populated before it looks at them.
func NewDirectConnection(
	name string,
	engine timing.Engine,
	freq timing.Freq,
) *DirectConnection {
	c := &DirectConnection{
		ends: make(map[modeling.RemotePort]Port),
	}
	c.TickingComponent = modeling.NewSecondaryTickingComponent(name, engine, freq, c)

	return c
}
