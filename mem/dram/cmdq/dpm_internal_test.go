package cmdq

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newSingleBankDPMQueue() *CommandQueueImpl {
	q := &CommandQueueImpl{
		Structure:        PerBank,
		Ranks:            1,
		BankGroups:       1,
		Banks:            1,
		CapacityPerQueue: 4,
		ChannelPolicy:    DPM,
	}
	q.build()

	return q
}

var _ = Describe("page policy arbiter", func() {
	It("does not arbitrate before clk reaches 1000", func() {
		q := newSingleBankDPMQueue()

		for i := 0; i < 999; i++ {
			q.ArbitratePagePolicy()
		}

		Expect(q.clk).To(Equal(uint64(999)))
		Expect(q.rowBufPolicy[0]).To(Equal(OpenPage))
	})

	It("does not arbitrate at clk=500", func() {
		q := newSingleBankDPMQueue()

		for i := 0; i < 500; i++ {
			q.ArbitratePagePolicy()
		}

		Expect(q.clk).To(Equal(uint64(500)))
		Expect(q.rowBufPolicy[0]).To(Equal(OpenPage))
	})

	It("scenario S3: OPEN_PAGE with ratio 0.2 drops to SMART_CLOSE", func() {
		q := newSingleBankDPMQueue()
		q.trueRowHitCount[0] = 2
		q.totalCommandCount[0] = 10

		for i := 0; i < 1000; i++ {
			q.ArbitratePagePolicy()
		}

		Expect(q.bankSM[0]).To(Equal(0))
		Expect(q.rowBufPolicy[0]).To(Equal(SmartClose))
	})

	It("scenario S4: SMART_CLOSE with ratio 0.8 rises to OPEN_PAGE", func() {
		q := newSingleBankDPMQueue()
		q.rowBufPolicy[0] = SmartClose
		q.bankSM[0] = 1
		q.trueRowHitCount[0] = 8
		q.totalCommandCount[0] = 10

		for i := 0; i < 1000; i++ {
			q.ArbitratePagePolicy()
		}

		Expect(q.bankSM[0]).To(Equal(3))
		Expect(q.rowBufPolicy[0]).To(Equal(OpenPage))
	})

	It("treats a zero total_command_count as ratio zero, not a division fault", func() {
		q := newSingleBankDPMQueue()
		q.trueRowHitCount[0] = 0
		q.totalCommandCount[0] = 0

		Expect(func() {
			for i := 0; i < 1000; i++ {
				q.ArbitratePagePolicy()
			}
		}).NotTo(Panic())

		Expect(q.rowBufPolicy[0]).To(Equal(SmartClose))
	})

	It("keeps bank_sm within [0,3] across repeated arbitration windows", func() {
		q := newSingleBankDPMQueue()
		q.trueRowHitCount[0] = 0
		q.totalCommandCount[0] = 100

		for w := 0; w < 5; w++ {
			for i := 0; i < 1000; i++ {
				q.ArbitratePagePolicy()
			}

			Expect(q.bankSM[0]).To(BeNumerically(">=", 0))
			Expect(q.bankSM[0]).To(BeNumerically("<=", 3))
		}
	})
})
