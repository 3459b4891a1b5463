// Package trafficgen provides a synthetic read/write traffic source for
// exercising a memory controller end to end, outside of any test harness.
package trafficgen

import (
	"math/rand"

	"github.com/3p1phany/myDRAMsim/mem/mem"
	"github.com/3p1phany/myDRAMsim/sim/modeling"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// Agent drives a mix of random reads and writes at a downstream memory
// port until its request budget is exhausted, then waits for every
// outstanding response before going idle.
type Agent struct {
	*modeling.TickingComponent

	LowModule  modeling.Port
	MaxAddress uint64

	ReadLeft, WriteLeft int
	WrittenAddresses    map[uint64]bool
	PendingReadReq      map[string]*mem.ReadReq
	PendingWriteReq     map[string]*mem.WriteReq

	memPort modeling.Port
	rng     *rand.Rand
}

// NewAgent creates an Agent named name, driven at freq on engine, that will
// issue numReads reads and numWrites writes to addresses below maxAddress.
func NewAgent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	seed int64,
	numReads, numWrites int,
	maxAddress uint64,
) *Agent {
	a := &Agent{
		LowModule:        nil,
		MaxAddress:       maxAddress,
		ReadLeft:         numReads,
		WriteLeft:        numWrites,
		WrittenAddresses: make(map[uint64]bool),
		PendingReadReq:   make(map[string]*mem.ReadReq),
		PendingWriteReq:  make(map[string]*mem.WriteReq),
		rng:              rand.New(rand.NewSource(seed)),
	}
	a.TickingComponent = modeling.NewTickingComponent(name, engine, freq, a)

	a.memPort = modeling.PortBuilder{}.
		WithComponent(a).
		WithIncomingBufCap(1024).
		WithOutgoingBufCap(1024).
		Build(name + ".MemPort")
	a.AddPort("Mem", a.memPort)

	return a
}

// Done reports whether every request has been issued and answered.
func (a *Agent) Done() bool {
	return a.ReadLeft == 0 && a.WriteLeft == 0 &&
		len(a.PendingReadReq) == 0 && len(a.PendingWriteReq) == 0
}

// Tick processes one pending response, if any, then issues one new request
// if the budget and address bookkeeping allow it.
func (a *Agent) Tick() bool {
	madeProgress := a.processResponse()

	if a.ReadLeft == 0 && a.WriteLeft == 0 {
		return madeProgress
	}

	if a.shouldRead() {
		return a.doRead() || madeProgress
	}

	return a.doWrite() || madeProgress
}

func (a *Agent) processResponse() bool {
	msg := a.memPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	switch rsp := msg.(type) {
	case *mem.WriteDoneRsp:
		delete(a.PendingWriteReq, rsp.RespondTo)
	case *mem.DataReadyRsp:
		delete(a.PendingReadReq, rsp.RespondTo)
	}

	return true
}

func (a *Agent) shouldRead() bool {
	if len(a.WrittenAddresses) == 0 || a.ReadLeft == 0 {
		return false
	}

	if a.WriteLeft == 0 {
		return true
	}

	return a.rng.Float64() > 0.5
}

func (a *Agent) doRead() bool {
	address := a.randomWrittenAddress()
	if a.addressInFlight(address) {
		return false
	}

	req := mem.ReadReqBuilder{}.
		WithSrc(a.memPort.AsRemote()).
		WithDst(a.LowModule.AsRemote()).
		WithAddress(address).
		WithByteSize(4).
		Build()

	if err := a.memPort.Send(req); err != nil {
		return false
	}

	a.PendingReadReq[req.ID] = req
	a.ReadLeft--

	return true
}

func (a *Agent) doWrite() bool {
	address := a.rng.Uint64() % (a.MaxAddress / 4) * 4
	if a.addressInFlight(address) {
		return false
	}

	data := make([]byte, 4)
	a.rng.Read(data)

	req := mem.WriteReqBuilder{}.
		WithSrc(a.memPort.AsRemote()).
		WithDst(a.LowModule.AsRemote()).
		WithAddress(address).
		WithData(data).
		Build()

	if err := a.memPort.Send(req); err != nil {
		return false
	}

	a.PendingWriteReq[req.ID] = req
	a.WriteLeft--
	a.WrittenAddresses[address] = true

	return true
}

func (a *Agent) randomWrittenAddress() uint64 {
	target := a.rng.Intn(len(a.WrittenAddresses))

	i := 0
	for addr := range a.WrittenAddresses {
		if i == target {
			return addr
		}

		i++
	}

	panic("unreachable")
}

func (a *Agent) addressInFlight(addr uint64) bool {
	for _, r := range a.PendingReadReq {
		if r.Address == addr {
			return true
		}
	}

	for _, w := range a.PendingWriteReq {
		if w.Address == addr {
			return true
		}
	}

	return false
}
