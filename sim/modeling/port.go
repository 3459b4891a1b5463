package modeling

import (
	"sync"

	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/naming"
	"github.com/3p1phany/myDRAMsim/sim/simulation"
)

// HookPosPortMsgSend fires when a message leaves a port's outgoing buffer.
var HookPosPortMsgSend = &hooking.HookPos{Name: "Port Msg Send"}

// HookPosPortMsgRecv fires when a message is deposited into a port's
// incoming buffer.
var HookPosPortMsgRecv = &hooking.HookPos{Name: "Port Msg Recv"}

// Connection ferries messages between the ports plugged into it.
type Connection interface {
	naming.Named
	PlugIn(port Port)
	NotifySend()
	NotifyAvailable(port Port)
}

// SendError reports that a Send or Deliver could not be completed because
// the destination buffer was full.
type SendError struct{}

// Port is the only way a Component talks to the outside world. Sends and
// deliveries are buffered so that a full downstream neighbor stalls the
// sender instead of losing messages.
type Port interface {
	naming.Named
	hooking.Hookable

	AsRemote() RemotePort
	SetConnection(conn Connection)

	Send(msg Msg) *SendError
	CanSend() bool
	RetrieveIncoming() Msg
	PeekIncoming() Msg

	Deliver(msg Msg) *SendError
	RetrieveOutgoing() Msg
	PeekOutgoing() Msg
}

type portImpl struct {
	hooking.HookableBase

	lock sync.Mutex
	name string
	conn Connection
	comp NotifyTarget

	incoming []Msg
	outgoing []Msg
	inCap    int
	outCap   int
}

// NotifyTarget is the subset of Component a Port needs in order to wake its
// owner up when traffic arrives or drains.
type NotifyTarget interface {
	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// AsRemote returns the address other components should use as this port's
// destination.
func (p *portImpl) AsRemote() RemotePort { return RemotePort(p.name) }

// Name returns the port's name.
func (p *portImpl) Name() string { return p.name }

// SetConnection attaches the connection responsible for moving this port's
// outgoing traffic.
func (p *portImpl) SetConnection(conn Connection) {
	if p.conn != nil {
		panic("port " + p.name + " already has a connection")
	}

	p.conn = conn
}

// CanSend reports whether the outgoing buffer has room.
func (p *portImpl) CanSend() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.outgoing) < p.outCap
}

// Send queues msg for delivery by the attached connection.
func (p *portImpl) Send(msg Msg) *SendError {
	p.lock.Lock()

	if len(p.outgoing) >= p.outCap {
		p.lock.Unlock()
		return &SendError{}
	}

	wasEmpty := len(p.outgoing) == 0
	p.outgoing = append(p.outgoing, msg)

	if p.NumHooks() > 0 {
		p.InvokeHook(hooking.HookCtx{Domain: p, Pos: HookPosPortMsgSend, Item: msg})
	}

	p.lock.Unlock()

	if wasEmpty && p.conn != nil {
		p.conn.NotifySend()
	}

	return nil
}

// Deliver places an inbound message into the incoming buffer.
func (p *portImpl) Deliver(msg Msg) *SendError {
	p.lock.Lock()

	if len(p.incoming) >= p.inCap {
		p.lock.Unlock()
		return &SendError{}
	}

	wasEmpty := len(p.incoming) == 0
	p.incoming = append(p.incoming, msg)

	if p.NumHooks() > 0 {
		p.InvokeHook(hooking.HookCtx{Domain: p, Pos: HookPosPortMsgRecv, Item: msg})
	}

	p.lock.Unlock()

	if wasEmpty && p.comp != nil {
		p.comp.NotifyRecv(p)
	}

	return nil
}

// RetrieveIncoming pops the oldest inbound message, or nil if none pending.
func (p *portImpl) RetrieveIncoming() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.incoming) == 0 {
		return nil
	}

	msg := p.incoming[0]
	p.incoming = p.incoming[1:]

	return msg
}

// PeekIncoming returns the oldest inbound message without removing it.
func (p *portImpl) PeekIncoming() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.incoming) == 0 {
		return nil
	}

	return p.incoming[0]
}

// RetrieveOutgoing pops the oldest outbound message, notifying the owner
// that outgoing capacity opened up.
func (p *portImpl) RetrieveOutgoing() Msg {
	p.lock.Lock()

	if len(p.outgoing) == 0 {
		p.lock.Unlock()
		return nil
	}

	msg := p.outgoing[0]
	p.outgoing = p.outgoing[1:]
	freedUp := len(p.outgoing) == p.outCap-1

	p.lock.Unlock()

	if freedUp && p.comp != nil {
		p.comp.NotifyPortFree(p)
	}

	return msg
}

// PeekOutgoing returns the oldest outbound message without removing it.
func (p *portImpl) PeekOutgoing() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.outgoing) == 0 {
		return nil
	}

	return p.outgoing[0]
}

// PortBuilder configures and builds Ports.
type PortBuilder struct {
	component      NotifyTarget
	simulation     simulation.Simulation
	incomingBufCap int
	outgoingBufCap int
}

// WithComponent sets the component that owns the port being built.
func (b PortBuilder) WithComponent(c NotifyTarget) PortBuilder {
	b.component = c
	return b
}

// WithSimulation sets the simulation the port should register with.
func (b PortBuilder) WithSimulation(s simulation.Simulation) PortBuilder {
	b.simulation = s
	return b
}

// WithIncomingBufCap sets the incoming buffer capacity.
func (b PortBuilder) WithIncomingBufCap(n int) PortBuilder {
	b.incomingBufCap = n
	return b
}

// WithOutgoingBufCap sets the outgoing buffer capacity.
func (b PortBuilder) WithOutgoingBufCap(n int) PortBuilder {
	b.outgoingBufCap = n
	return b
}

// Build creates the port under the given name.
func (b PortBuilder) Build(name string) Port {
	naming.NameMustBeValid(name)

	p := &portImpl{
		name:   name,
		comp:   b.component,
		inCap:  b.incomingBufCap,
		outCap: b.outgoingBufCap,
	}

	if b.simulation != nil {
		b.simulation.RegisterPort(p)
	}

	return p
}
