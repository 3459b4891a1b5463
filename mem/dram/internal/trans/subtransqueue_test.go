package trans_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/trans"
)

// fakeCmdQueue scripts CanAccept so a test can stall the FIFO's head
// without a real cmdq.CommandQueueImpl.
type fakeCmdQueue struct {
	canAccept bool
	accepted  []*signal.Command
}

func (q *fakeCmdQueue) CanAccept(*signal.Command) bool { return q.canAccept }
func (q *fakeCmdQueue) Accept(cmd *signal.Command) bool {
	q.accepted = append(q.accepted, cmd)
	return true
}
func (q *fakeCmdQueue) QueueEmpty() bool              { return len(q.accepted) == 0 }
func (q *fakeCmdQueue) QueueUsage() int                { return len(q.accepted) }
func (q *fakeCmdQueue) GetQueueIndex(_, _, _ int) int  { return 0 }
func (q *fakeCmdQueue) GetCommandToIssue() *signal.Command { return nil }
func (q *fakeCmdQueue) FinishRefresh(*signal.Command) *signal.Command { return nil }
func (q *fakeCmdQueue) ArbitratePagePolicy()                          {}

func subTransAt(t *signal.Transaction, rank, bankGroup, bank, row int) *signal.SubTransaction {
	return &signal.SubTransaction{
		Transaction: t,
		Location: addressmapping.Location{
			Rank: rank, BankGroup: bankGroup, Bank: bank, Row: row,
		},
	}
}

var _ = Describe("FCFSSubTransactionQueue as an ExternalBufferView", func() {
	var (
		cmdQueue *fakeCmdQueue
		queue    *trans.FCFSSubTransactionQueue
	)

	BeforeEach(func() {
		cmdQueue = &fakeCmdQueue{canAccept: false}
		queue = &trans.FCFSSubTransactionQueue{
			Capacity:   8,
			CmdQueue:   cmdQueue,
			CmdCreator: trans.OpenPageCommandCreator{},
		}
	})

	It("counts buffered reads and writes separately, by bank triple and row", func() {
		read := &signal.Transaction{Type: signal.TransactionTypeRead}
		write := &signal.Transaction{Type: signal.TransactionTypeWrite}

		read.SubTransactions = []*signal.SubTransaction{subTransAt(read, 0, 0, 1, 5)}
		write.SubTransactions = []*signal.SubTransaction{
			subTransAt(write, 0, 0, 1, 5),
			subTransAt(write, 0, 0, 1, 5),
		}

		queue.Push(read)
		queue.Push(write)

		Expect(queue.PendingReadsTo(0, 0, 1, 5)).To(Equal(1))
		Expect(queue.PendingWritesTo(0, 0, 1, 5)).To(Equal(2))
		Expect(queue.PendingReadsTo(0, 0, 1, 6)).To(Equal(0))
		Expect(queue.PendingWritesTo(0, 0, 2, 5)).To(Equal(0))
	})

	It("stops counting a subtransaction once Tick has moved it into the command queue", func() {
		cmdQueue.canAccept = true

		read := &signal.Transaction{Type: signal.TransactionTypeRead}
		read.SubTransactions = []*signal.SubTransaction{subTransAt(read, 0, 0, 0, 3)}
		queue.Push(read)

		Expect(queue.PendingReadsTo(0, 0, 0, 3)).To(Equal(1))

		Expect(queue.Tick()).To(BeTrue())

		Expect(queue.PendingReadsTo(0, 0, 0, 3)).To(Equal(0))
		Expect(cmdQueue.accepted).To(HaveLen(1))
	})
})
