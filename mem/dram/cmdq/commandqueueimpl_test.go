package cmdq_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

func readAt(id string, hexAddr uint64, rank, bank, row, col int) *signal.Command {
	return &signal.Command{
		ID:      id,
		Kind:    signal.CmdKindRead,
		HexAddr: hexAddr,
		Location: addressmapping.Location{
			Rank: rank, Bank: bank, Row: row, Column: col,
		},
	}
}

func writeAt(id string, hexAddr uint64, rank, bank, row, col int) *signal.Command {
	c := readAt(id, hexAddr, rank, bank, row, col)
	c.Kind = signal.CmdKindWrite

	return c
}

var _ = Describe("CommandQueueImpl", func() {
	var (
		channel *fakeChannel
		q       *cmdq.CommandQueueImpl
	)

	BeforeEach(func() {
		channel = newFakeChannel()
		q = &cmdq.CommandQueueImpl{
			Structure:        cmdq.PerBank,
			Ranks:            2,
			BankGroups:       1,
			Banks:            2,
			CapacityPerQueue: 4,
			ChannelPolicy:    cmdq.OpenPage,
			Channel:          channel,
		}
	})

	Describe("accepting commands", func() {
		It("accepts up to capacity and rejects overflow", func() {
			for i := 0; i < 4; i++ {
				cmd := readAt("r", uint64(i), 0, 0, 5, 0)
				Expect(q.CanAccept(cmd)).To(BeTrue())
				Expect(q.Accept(cmd)).To(BeTrue())
			}

			overflow := readAt("r", 99, 0, 0, 5, 0)
			Expect(q.CanAccept(overflow)).To(BeFalse())
			Expect(q.Accept(overflow)).To(BeFalse())
		})

		It("saturates a capacity-one queue after a single add", func() {
			q.CapacityPerQueue = 1

			cmd := readAt("r", 1, 0, 0, 5, 0)
			Expect(q.Accept(cmd)).To(BeTrue())
			Expect(q.Accept(readAt("r", 2, 0, 0, 5, 0))).To(BeFalse())
		})

		It("returns nil from an empty queue set", func() {
			Expect(q.GetCommandToIssue()).To(BeNil())
		})
	})

	Describe("scenario S1: three row hits under OPEN_PAGE", func() {
		It("issues all three commands in order", func() {
			channel.setOpenRow(0, 0, 0, 5)

			a := readAt("a", 1, 0, 0, 5, 0)
			b := readAt("b", 2, 0, 0, 5, 1)
			c := readAt("c", 3, 0, 0, 5, 2)

			Expect(q.Accept(a)).To(BeTrue())
			Expect(q.Accept(b)).To(BeTrue())
			Expect(q.Accept(c)).To(BeTrue())

			got1 := q.GetCommandToIssue()
			Expect(got1).To(BeIdenticalTo(a))

			got2 := q.GetCommandToIssue()
			Expect(got2).To(BeIdenticalTo(b))

			got3 := q.GetCommandToIssue()
			Expect(got3).To(BeIdenticalTo(c))
		})
	})

	Describe("scenario S2: SMART_CLOSE upgrades the last row-hit sibling", func() {
		It("upgrades only the final command to auto-precharge", func() {
			q.ChannelPolicy = cmdq.SmartClose
			channel.setOpenRow(0, 0, 0, 5)

			a := readAt("a", 1, 0, 0, 5, 0)
			b := readAt("b", 2, 0, 0, 5, 1)
			c := readAt("c", 3, 0, 0, 5, 2)

			Expect(q.Accept(a)).To(BeTrue())
			Expect(q.Accept(b)).To(BeTrue())
			Expect(q.Accept(c)).To(BeTrue())

			got1 := q.GetCommandToIssue()
			Expect(got1.Kind).To(Equal(signal.CmdKindRead))

			got2 := q.GetCommandToIssue()
			Expect(got2.Kind).To(Equal(signal.CmdKindRead))

			got3 := q.GetCommandToIssue()
			Expect(got3.Kind).To(Equal(signal.CmdKindReadPrecharge))
		})
	})

	Describe("scenario S6: write-after-read dependency", func() {
		It("never selects the write while its read predecessor is queued", func() {
			channel.setOpenRow(0, 0, 0, 7)

			read := readAt("rd", 1, 0, 0, 7, 3)
			write := writeAt("wr", 2, 0, 0, 7, 3)

			Expect(q.Accept(read)).To(BeTrue())
			Expect(q.Accept(write)).To(BeTrue())

			got := q.GetCommandToIssue()
			Expect(got).To(BeIdenticalTo(read))

			// Once the read has actually issued and left the queue, the
			// dependency is gone and the write is free to issue too.
			Expect(q.GetCommandToIssue()).To(BeIdenticalTo(write))
		})
	})

	Describe("scenario S5: refresh interlock leaves other ranks free", func() {
		It("keeps issuing to rank 1 while rank 0 drains for refresh", func() {
			channel.setOpenRow(1, 0, 0, 9)

			rank1Read := readAt("rd1", 5, 1, 0, 9, 0)
			Expect(q.Accept(rank1Read)).To(BeTrue())

			rank0Write := writeAt("wr0", 6, 0, 0, 3, 0)
			Expect(q.Accept(rank0Write)).To(BeTrue())

			ref := &signal.Command{
				Kind:     signal.CmdKindRefresh,
				Location: addressmapping.Location{Rank: 0},
			}

			pre := &signal.Command{
				Kind:     signal.CmdKindPrecharge,
				Location: addressmapping.Location{Rank: 0},
			}

			step := 0
			channel.ReadyFunc = func(cmd *signal.Command) *signal.Command {
				if cmd.IsRefresh() {
					step++
					if step == 1 {
						return pre
					}

					return ref
				}

				return cmd
			}

			p := q.FinishRefresh(ref)
			Expect(p).To(BeIdenticalTo(pre))

			got := q.GetCommandToIssue()
			Expect(got).To(BeIdenticalTo(rank1Read))

			r := q.FinishRefresh(ref)
			Expect(r).To(BeIdenticalTo(ref))
		})
	})

	Describe("erase invariant", func() {
		It("panics with CommandMissingError when the ready command can't be found", func() {
			channel.setOpenRow(0, 0, 0, 4)

			cmd := readAt("a", 1, 0, 0, 4, 0)
			Expect(q.Accept(cmd)).To(BeTrue())

			// The oracle hands back a READ that does not correspond to
			// anything actually queued: the erase invariant is broken.
			channel.ReadyFunc = func(c *signal.Command) *signal.Command {
				return readAt("ghost", 404, 0, 0, 4, 0)
			}

			Expect(func() { q.GetCommandToIssue() }).To(Panic())
		})
	})
})
