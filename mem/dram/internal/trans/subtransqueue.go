package trans

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

// A SubTransactionQueue buffers subtransactions between the transaction
// layer and the command queue, generating and pushing a Command for each
// subtransaction the command queue has room to accept.
type SubTransactionQueue interface {
	CanPush(n int) bool
	Push(t *signal.Transaction)
	Tick() bool
}

// FCFSSubTransactionQueue is a first-come-first-served SubTransactionQueue:
// subtransactions are pushed into a single FIFO and drained into the
// command queue in arrival order, one per Tick, as soon as the command
// queue can accept the resulting command.
type FCFSSubTransactionQueue struct {
	Capacity   int
	CmdQueue   cmdq.CommandQueue
	CmdCreator CommandCreator

	pending []*signal.SubTransaction
}

// CanPush reports whether n more subtransactions fit before Capacity is
// reached.
func (q *FCFSSubTransactionQueue) CanPush(n int) bool {
	return len(q.pending)+n <= q.Capacity
}

// Push enqueues every subtransaction of t, in order.
func (q *FCFSSubTransactionQueue) Push(t *signal.Transaction) {
	q.pending = append(q.pending, t.SubTransactions...)
}

// Tick creates a command for the head subtransaction, if the command
// queue has room for it, and removes it from the FIFO once accepted.
func (q *FCFSSubTransactionQueue) Tick() bool {
	if len(q.pending) == 0 {
		return false
	}

	head := q.pending[0]

	if head.Command == nil {
		head.Command = q.CmdCreator.Create(head)
	}

	if !q.CmdQueue.CanAccept(head.Command) {
		return false
	}

	if !q.CmdQueue.Accept(head.Command) {
		return false
	}

	q.pending = q.pending[1:]

	return true
}

// PendingWritesTo returns the number of buffered subtransactions, not yet
// accepted into the command queue, that write the given bank triple and
// row.
func (q *FCFSSubTransactionQueue) PendingWritesTo(rank, bankGroup, bank, row int) int {
	return q.countPendingTo(rank, bankGroup, bank, row, (*signal.Transaction).IsWrite)
}

// PendingReadsTo returns the number of buffered subtransactions, not yet
// accepted into the command queue, that read the given bank triple and row.
func (q *FCFSSubTransactionQueue) PendingReadsTo(rank, bankGroup, bank, row int) int {
	return q.countPendingTo(rank, bankGroup, bank, row, (*signal.Transaction).IsRead)
}

func (q *FCFSSubTransactionQueue) countPendingTo(
	rank, bankGroup, bank, row int,
	matches func(*signal.Transaction) bool,
) int {
	n := 0

	for _, st := range q.pending {
		loc := st.Location
		if loc.Rank == rank && loc.BankGroup == bankGroup && loc.Bank == bank &&
			loc.Row == row && matches(st.Transaction) {
			n++
		}
	}

	return n
}
