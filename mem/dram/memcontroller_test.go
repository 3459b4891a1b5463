package dram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/mem"
	"github.com/3p1phany/myDRAMsim/sim/simulation"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

var _ = Describe("MemController", func() {
	var (
		topPort             *fakePort
		addrConverter       *fakeAddrConverter
		subTransSplitter    *fakeSplitter
		subTransactionQueue *fakeSubTransQueue
		cmdQueue            *fakeCmdQueue
		channel             *fakeChannel
		storage             *mem.Storage

		memCtrl           *Comp
		memCtrlMiddleware *middleware
	)

	BeforeEach(func() {
		topPort = newFakePort()
		subTransactionQueue = &fakeSubTransQueue{}
		subTransSplitter = &fakeSplitter{}
		addrConverter = &fakeAddrConverter{}
		cmdQueue = &fakeCmdQueue{}
		channel = &fakeChannel{}
		storage = mem.NewStorage(4 * 1024 * 1024)

		sim := simulation.New(timing.NewSerialEngine())
		memCtrl = MakeBuilder().WithSimulation(sim).Build("MemCtrl")
		memCtrl.topPort = topPort
		memCtrl.subTransactionQueue = subTransactionQueue
		memCtrl.subTransSplitter = subTransSplitter
		memCtrl.addrConverter = addrConverter
		memCtrl.cmdQueue = cmdQueue
		memCtrl.channel = channel
		memCtrl.storage = storage
		memCtrlMiddleware = memCtrl.Middlewares()[0].(*middleware)
	})

	Context("parse top", func() {
		It("should do nothing if no message", func() {
			madeProgress := memCtrlMiddleware.parseTop()

			Expect(madeProgress).To(BeFalse())
		})

		It("should stall if the subtransaction queue is full", func() {
			read := mem.ReadReqBuilder{}.WithAddress(0x1000).Build()
			topPort.incoming = read

			subTransSplitter.onSplit = func(t *signal.Transaction) {
				Expect(t.Read).To(BeIdenticalTo(read))
				t.SubTransactions = make([]*signal.SubTransaction, 3)
			}
			subTransactionQueue.canPush = false

			madeProgress := memCtrlMiddleware.parseTop()

			Expect(madeProgress).To(BeFalse())
			Expect(topPort.incoming).To(BeIdenticalTo(read))
		})

		It("should push subtransactions to the subtransaction queue", func() {
			read := mem.ReadReqBuilder{}.WithAddress(0x1000).Build()
			topPort.incoming = read

			subTransSplitter.onSplit = func(t *signal.Transaction) {
				Expect(t.Read).To(BeIdenticalTo(read))
				for i := 0; i < 3; i++ {
					t.SubTransactions = append(t.SubTransactions, &signal.SubTransaction{})
				}
			}
			subTransactionQueue.canPush = true

			madeProgress := memCtrlMiddleware.parseTop()

			Expect(madeProgress).To(BeTrue())
			Expect(memCtrl.inflightTransactions).To(HaveLen(1))
			Expect(subTransactionQueue.pushed).To(HaveLen(1))
			Expect(topPort.incoming).To(BeNil())
		})
	})

	Context("issue", func() {
		It("should not issue if nothing is ready", func() {
			madeProgress := memCtrlMiddleware.issue()

			Expect(madeProgress).To(BeFalse())
		})

		It("should issue a ready command", func() {
			cmd := &signal.Command{Kind: signal.CmdKindActivate}
			cmdQueue.toIssue = cmd

			madeProgress := memCtrlMiddleware.issue()

			Expect(madeProgress).To(BeTrue())
			Expect(channel.started).To(ContainElement(cmd))
			Expect(channel.updated).To(ContainElement(cmd))
		})

		It("drains the refresh interlock before ordinary issue", func() {
			ref := &signal.Command{Kind: signal.CmdKindRefresh}
			pre := &signal.Command{Kind: signal.CmdKindPrecharge}
			channel.pendingRef = ref
			cmdQueue.finishRefresh = func(r *signal.Command) *signal.Command {
				Expect(r).To(BeIdenticalTo(ref))
				return pre
			}
			cmdQueue.toIssue = &signal.Command{Kind: signal.CmdKindActivate}

			madeProgress := memCtrlMiddleware.issue()

			Expect(madeProgress).To(BeTrue())
			Expect(channel.started).To(ContainElement(pre))
			Expect(channel.started).NotTo(ContainElement(cmdQueue.toIssue))
		})

		It("falls through to ordinary issue once the refresh has nothing to drain", func() {
			channel.pendingRef = &signal.Command{Kind: signal.CmdKindRefresh}
			cmdQueue.finishRefresh = func(*signal.Command) *signal.Command { return nil }
			cmd := &signal.Command{Kind: signal.CmdKindActivate}
			cmdQueue.toIssue = cmd

			madeProgress := memCtrlMiddleware.issue()

			Expect(madeProgress).To(BeTrue())
			Expect(channel.started).To(ContainElement(cmd))
		})
	})

	Context("respond", func() {
		It("should do nothing if there is no transaction", func() {
			madeProgress := memCtrlMiddleware.respond()

			Expect(madeProgress).To(BeFalse())
		})

		It("should do nothing if no transaction has completed", func() {
			t := &signal.Transaction{}
			t.SubTransactions = append(t.SubTransactions,
				&signal.SubTransaction{Transaction: t, Completed: false})
			memCtrl.inflightTransactions = append(memCtrl.inflightTransactions, t)

			madeProgress := memCtrlMiddleware.respond()

			Expect(madeProgress).To(BeFalse())
		})

		It("should send a write-done response", func() {
			write := mem.WriteReqBuilder{}.
				WithAddress(0x40).
				WithData([]byte{1, 2, 3, 4}).
				Build()
			t := &signal.Transaction{
				Type:            signal.TransactionTypeWrite,
				InternalAddress: 0x40,
				Write:           write,
			}
			t.SubTransactions = append(t.SubTransactions,
				&signal.SubTransaction{Transaction: t, Completed: true})
			memCtrl.inflightTransactions = append(memCtrl.inflightTransactions, t)

			madeProgress := memCtrlMiddleware.respond()

			Expect(madeProgress).To(BeTrue())
			data, _ := storage.Read(0x40, 4)
			Expect(data).To(Equal([]byte{1, 2, 3, 4}))
			Expect(memCtrl.inflightTransactions).NotTo(ContainElement(t))
			Expect(topPort.sent).To(HaveLen(1))
		})

		It("should send a data-ready response", func() {
			err := storage.Write(0x40, []byte{1, 2, 3, 4})
			Expect(err).NotTo(HaveOccurred())

			read := mem.ReadReqBuilder{}.WithAddress(0x40).WithByteSize(4).Build()
			t := &signal.Transaction{
				Type:            signal.TransactionTypeRead,
				InternalAddress: 0x40,
				Read:            read,
			}
			t.SubTransactions = append(t.SubTransactions,
				&signal.SubTransaction{Transaction: t, Completed: true})
			memCtrl.inflightTransactions = append(memCtrl.inflightTransactions, t)

			madeProgress := memCtrlMiddleware.respond()

			Expect(madeProgress).To(BeTrue())
			Expect(memCtrl.inflightTransactions).NotTo(ContainElement(t))
			Expect(topPort.sent).To(HaveLen(1))

			rsp := topPort.sent[0].(*mem.DataReadyRsp)
			Expect(rsp.Data).To(Equal([]byte{1, 2, 3, 4}))
		})
	})
})
