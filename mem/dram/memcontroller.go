package dram

import (
	"reflect"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/org"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/trans"
	"github.com/3p1phany/myDRAMsim/mem/mem"
	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/modeling"
)

// Comp is a memory controller. It accepts ReadReq/WriteReq on its Top
// port, splits each into burst-sized subtransactions, schedules the
// DRAM commands those subtransactions need through a command-queue set,
// and responds once every subtransaction of a transaction has completed.
type Comp struct {
	*modeling.TickingComponent
	modeling.MiddlewareHolder

	topPort modeling.Port

	storage             *mem.Storage
	addrConverter       mem.AddressConverter
	subTransSplitter    trans.SubTransSplitter
	addrMapper          addressmapping.Mapper
	subTransactionQueue trans.SubTransactionQueue
	cmdQueue            cmdq.CommandQueue
	channel             org.Channel

	inflightTransactions []*signal.Transaction
}

// Tick updates the memory controller's internal state.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick advances every stage of the controller's pipeline by one cycle.
func (m *middleware) Tick() (madeProgress bool) {
	madeProgress = m.respond() || madeProgress
	madeProgress = m.channel.Tick() || madeProgress
	m.cmdQueue.ArbitratePagePolicy()
	madeProgress = m.issue() || madeProgress
	madeProgress = m.subTransactionQueue.Tick() || madeProgress
	madeProgress = m.parseTop() || madeProgress

	return madeProgress
}

func (m *middleware) parseTop() (madeProgress bool) {
	msg := m.topPort.PeekIncoming()
	if msg == nil {
		return false
	}

	t := &signal.Transaction{}

	switch req := msg.(type) {
	case *mem.ReadReq:
		t.Read = req
		t.Type = signal.TransactionTypeRead
	case *mem.WriteReq:
		t.Write = req
		t.Type = signal.TransactionTypeWrite
	}

	m.assignTransInternalAddress(t)
	m.subTransSplitter.Split(t)

	if !m.subTransactionQueue.CanPush(len(t.SubTransactions)) {
		return false
	}

	m.subTransactionQueue.Push(t)
	m.inflightTransactions = append(m.inflightTransactions, t)
	m.topPort.RetrieveIncoming()

	m.traceTransactionStart(msg)

	return true
}

func (m *middleware) assignTransInternalAddress(t *signal.Transaction) {
	if m.addrConverter != nil {
		t.InternalAddress = m.addrConverter.ConvertExternalToInternal(
			t.GlobalAddress())
		return
	}

	t.InternalAddress = t.GlobalAddress()
}

// issue picks the next command to send to the channel. A refresh that has
// come due takes priority: the interlock drains its affected queues one
// command at a time until the refresh itself is clear to issue. Only on a
// cycle where the interlock has nothing ready do the queues the refresh
// does not touch issue as usual.
func (m *middleware) issue() (madeProgress bool) {
	if ref := m.channel.PendingRefCommand(); ref != nil {
		if cmd := m.cmdQueue.FinishRefresh(ref); cmd != nil {
			m.channel.StartCommand(cmd)
			m.channel.UpdateTiming(cmd)

			return true
		}
	}

	cmd := m.cmdQueue.GetCommandToIssue()
	if cmd == nil {
		return false
	}

	m.channel.StartCommand(cmd)
	m.channel.UpdateTiming(cmd)

	return true
}

func (m *middleware) respond() (madeProgress bool) {
	for i, t := range m.inflightTransactions {
		if t.IsCompleted() {
			done := m.finalizeTransaction(t, i)
			if done {
				return true
			}
		}
	}

	return false
}

func (m *middleware) finalizeTransaction(
	t *signal.Transaction,
	i int,
) (done bool) {
	if t.Type == signal.TransactionTypeWrite {
		done = m.finalizeWriteTrans(t, i)
	} else {
		done = m.finalizeReadTrans(t, i)
	}

	if done {
		m.traceTransactionComplete(t)
	}

	return done
}

func (m *middleware) finalizeWriteTrans(
	t *signal.Transaction,
	i int,
) (done bool) {
	err := m.storage.Write(t.InternalAddress, t.Write.Data)
	if err != nil {
		panic(err)
	}

	writeDone := mem.WriteDoneRspBuilder{}.
		WithSrc(m.topPort.AsRemote()).
		WithDst(t.Write.Src).
		WithRspTo(t.Write.ID).
		Build()

	sendErr := m.topPort.Send(writeDone)
	if sendErr == nil {
		m.inflightTransactions = append(
			m.inflightTransactions[:i],
			m.inflightTransactions[i+1:]...)

		return true
	}

	return false
}

func (m *middleware) finalizeReadTrans(
	t *signal.Transaction,
	i int,
) (done bool) {
	data, err := m.storage.Read(t.InternalAddress, t.Read.AccessByteSize)
	if err != nil {
		panic(err)
	}

	dataReady := mem.DataReadyRspBuilder{}.
		WithSrc(m.topPort.AsRemote()).
		WithDst(t.Read.Src).
		WithRspTo(t.Read.ID).
		WithData(data).
		Build()

	sendErr := m.topPort.Send(dataReady)
	if sendErr == nil {
		m.inflightTransactions = append(
			m.inflightTransactions[:i],
			m.inflightTransactions[i+1:]...)

		return true
	}

	return false
}

func (m *middleware) traceTransactionStart(msg modeling.Msg) {
	ctx := hooking.HookCtx{
		Domain: m.Comp,
		Pos:    hooking.HookPosTaskStart,
		Item: hooking.TaskStart{
			ID:   msg.Meta().ID,
			Kind: "req_in",
			What: reflect.TypeOf(msg).Elem().Name(),
		},
	}

	m.Comp.InvokeHook(ctx)
}

func (m *middleware) traceTransactionComplete(t *signal.Transaction) {
	ctx := hooking.HookCtx{
		Domain: m.Comp,
		Pos:    hooking.HookPosTaskEnd,
	}

	if t.Type == signal.TransactionTypeWrite {
		ctx.Item = hooking.TaskEnd{ID: t.Write.ID}
	} else {
		ctx.Item = hooking.TaskEnd{ID: t.Read.ID}
	}

	m.Comp.InvokeHook(ctx)
}
