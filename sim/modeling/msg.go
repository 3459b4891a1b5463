// Package modeling provides the component/port/message plumbing that
// simulated hardware blocks are built from: components exchange Msgs over
// Ports, and TickingComponent gives a component a per-cycle Tick without it
// having to manage its own event scheduling.
package modeling

import "github.com/3p1phany/myDRAMsim/sim/timing/id"

// RemotePort names a port that lives on another component, as seen from the
// message routing layer.
type RemotePort string

// Msg is a piece of information exchanged between components.
type Msg interface {
	Meta() MsgMeta
	Clone() Msg
}

// MsgMeta is the metadata every Msg carries regardless of its payload.
type MsgMeta struct {
	ID       string
	Src, Dst RemotePort
}

// Req is a message that expects a Rsp in return.
type Req interface {
	Msg
	GenerateRsp() Rsp
}

// Rsp indicates the completion of a Req.
type Rsp interface {
	Msg
	GetRspTo() string
}

// NewID returns a fresh message identifier.
func NewID() string {
	return id.Generate()
}
