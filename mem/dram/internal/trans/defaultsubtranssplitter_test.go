package trans_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/trans"
	"github.com/3p1phany/myDRAMsim/mem/mem"
)

var _ = Describe("Default SubTransSplitter", func() {
	It("splits a transfer at every burst boundary it crosses", func() {
		read := mem.ReadReqBuilder{}.WithAddress(1020).WithByteSize(128).Build()
		transaction := &signal.Transaction{
			Type: signal.TransactionTypeRead,
			Read: read,
		}

		splitter := trans.NewSubTransSplitter(6)

		splitter.Split(transaction)

		Expect(transaction.SubTransactions).To(HaveLen(3))
		Expect(transaction.SubTransactions[0].Address).To(Equal(uint64(1020)))
		Expect(transaction.SubTransactions[0].ByteSize).To(Equal(uint64(4)))
		Expect(transaction.SubTransactions[2].ByteSize).To(Equal(uint64(60)))
	})

	It("splits an aligned single-burst transfer into exactly one piece", func() {
		read := mem.ReadReqBuilder{}.WithAddress(1024).WithByteSize(64).Build()
		transaction := &signal.Transaction{
			Type: signal.TransactionTypeRead,
			Read: read,
		}

		trans.NewSubTransSplitter(6).Split(transaction)

		Expect(transaction.SubTransactions).To(HaveLen(1))
	})
})
