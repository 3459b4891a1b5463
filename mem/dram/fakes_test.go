package dram

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/mem"
	"github.com/3p1phany/myDRAMsim/sim/modeling"
	"github.com/3p1phany/myDRAMsim/sim/naming"
	"github.com/3p1phany/myDRAMsim/sim/hooking"
)

// fakePort is a hand-rolled modeling.Port that records what was sent and
// lets a test script what PeekIncoming/RetrieveIncoming return.
type fakePort struct {
	naming.NamedBase
	hooking.HookableBase

	incoming modeling.Msg
	sent     []modeling.Msg
	sendErr  *modeling.SendError
}

func newFakePort() *fakePort {
	p := &fakePort{}
	p.NamedBase = naming.MakeNamedBase("TopPort")

	return p
}

func (p *fakePort) AsRemote() modeling.RemotePort       { return modeling.RemotePort(p.Name()) }
func (p *fakePort) SetConnection(_ modeling.Connection) {}

func (p *fakePort) Send(msg modeling.Msg) *modeling.SendError {
	if p.sendErr != nil {
		return p.sendErr
	}

	p.sent = append(p.sent, msg)

	return nil
}

func (p *fakePort) CanSend() bool { return p.sendErr == nil }

func (p *fakePort) RetrieveIncoming() modeling.Msg {
	msg := p.incoming
	p.incoming = nil

	return msg
}

func (p *fakePort) PeekIncoming() modeling.Msg { return p.incoming }

func (p *fakePort) Deliver(msg modeling.Msg) *modeling.SendError {
	p.incoming = msg
	return nil
}

func (p *fakePort) RetrieveOutgoing() modeling.Msg { return nil }
func (p *fakePort) PeekOutgoing() modeling.Msg     { return nil }

// fakeAddrConverter shifts external addresses down by a fixed offset and
// internal addresses back up by the same offset.
type fakeAddrConverter struct {
	offset uint64
	calls  []uint64
}

func (c *fakeAddrConverter) ConvertInternalToExternal(addr uint64) uint64 {
	return addr + c.offset
}

func (c *fakeAddrConverter) ConvertExternalToInternal(addr uint64) uint64 {
	c.calls = append(c.calls, addr)
	return addr - c.offset
}

// fakeSplitter records the transaction it was asked to split and applies a
// scripted mutation to it.
type fakeSplitter struct {
	onSplit func(t *signal.Transaction)
}

func (s *fakeSplitter) Split(t *signal.Transaction) {
	if s.onSplit != nil {
		s.onSplit(t)
	}
}

// fakeSubTransQueue scripts CanPush/Tick and records Push calls.
type fakeSubTransQueue struct {
	canPush bool
	tick    bool
	pushed  []*signal.Transaction
}

func (q *fakeSubTransQueue) CanPush(int) bool { return q.canPush }
func (q *fakeSubTransQueue) Push(t *signal.Transaction) {
	q.pushed = append(q.pushed, t)
}
func (q *fakeSubTransQueue) Tick() bool { return q.tick }

// fakeCmdQueue scripts GetCommandToIssue/FinishRefresh.
type fakeCmdQueue struct {
	toIssue       *signal.Command
	finishRefresh func(ref *signal.Command) *signal.Command
}

func (q *fakeCmdQueue) CanAccept(*signal.Command) bool  { return true }
func (q *fakeCmdQueue) Accept(*signal.Command) bool     { return true }
func (q *fakeCmdQueue) QueueEmpty() bool                { return true }
func (q *fakeCmdQueue) QueueUsage() int                 { return 0 }
func (q *fakeCmdQueue) GetQueueIndex(_, _, _ int) int   { return 0 }
func (q *fakeCmdQueue) GetCommandToIssue() *signal.Command {
	return q.toIssue
}

func (q *fakeCmdQueue) FinishRefresh(ref *signal.Command) *signal.Command {
	if q.finishRefresh != nil {
		return q.finishRefresh(ref)
	}

	return nil
}

func (q *fakeCmdQueue) ArbitratePagePolicy() {}

// fakeChannel scripts PendingRefCommand and records StartCommand/UpdateTiming
// calls.
type fakeChannel struct {
	pendingRef  *signal.Command
	started     []*signal.Command
	updated     []*signal.Command
	tickResult  bool
	openRow     map[[3]int]int
	rowHitCount map[[3]int]int
}

func (c *fakeChannel) GetReadyCommand(cmd *signal.Command) *signal.Command { return cmd }
func (c *fakeChannel) StartCommand(cmd *signal.Command) {
	c.started = append(c.started, cmd)
}

func (c *fakeChannel) UpdateTiming(cmd *signal.Command) {
	c.updated = append(c.updated, cmd)
}

func (c *fakeChannel) OpenRow(rank, bg, bank int) int {
	if c.openRow == nil {
		return -1
	}

	return c.openRow[[3]int{rank, bg, bank}]
}

func (c *fakeChannel) RowHitCount(rank, bg, bank int) int {
	if c.rowHitCount == nil {
		return 0
	}

	return c.rowHitCount[[3]int{rank, bg, bank}]
}

func (c *fakeChannel) PendingRefCommand() *signal.Command { return c.pendingRef }
func (c *fakeChannel) Tick() bool                         { return c.tickResult }

// dpmMissOnceChannel models one row miss per distinct address: the first
// GetReadyCommand call for a given hex_addr hands back a synthesized
// PRECHARGE, and every call after that echoes the command unchanged, the
// way org.BankImpl treats an already-open row. It never reports a pending
// row-hit successor, so on-demand PRECHARGE always clears immediately.
type dpmMissOnceChannel struct {
	missed  map[uint64]bool
	started []*signal.Command
	updated []*signal.Command
}

func newDPMMissOnceChannel() *dpmMissOnceChannel {
	return &dpmMissOnceChannel{missed: make(map[uint64]bool)}
}

func (c *dpmMissOnceChannel) GetReadyCommand(cmd *signal.Command) *signal.Command {
	if cmd.IsReadWrite() && !c.missed[cmd.HexAddr] {
		c.missed[cmd.HexAddr] = true

		return &signal.Command{
			Kind:     signal.CmdKindPrecharge,
			Location: cmd.Location,
			HexAddr:  cmd.HexAddr,
		}
	}

	return cmd
}

func (c *dpmMissOnceChannel) StartCommand(cmd *signal.Command) {
	c.started = append(c.started, cmd)
}

func (c *dpmMissOnceChannel) UpdateTiming(cmd *signal.Command) {
	c.updated = append(c.updated, cmd)
}

func (c *dpmMissOnceChannel) OpenRow(_, _, _ int) int            { return -1 }
func (c *dpmMissOnceChannel) RowHitCount(_, _, _ int) int        { return 0 }
func (c *dpmMissOnceChannel) PendingRefCommand() *signal.Command { return nil }
func (c *dpmMissOnceChannel) Tick() bool                         { return false }

var _ mem.AddressConverter = (*fakeAddrConverter)(nil)
