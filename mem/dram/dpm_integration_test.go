package dram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/sim/simulation"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// This exercises the real cmdq.CommandQueueImpl and middleware.Tick together,
// with no cmdq/channel fakes standing in for the scheduler under test: it is
// the only test in the package that would catch ArbitratePagePolicy going
// unreachable from Tick again.
var _ = Describe("MemController DPM integration", func() {
	It("moves a bank from OPEN_PAGE to SMART_CLOSE once its row-hit ratio drops, and the transition changes what issues next", func() {
		channel := newDPMMissOnceChannel()
		q := &cmdq.CommandQueueImpl{
			Structure:        cmdq.PerBank,
			Ranks:            1,
			BankGroups:       1,
			Banks:            1,
			CapacityPerQueue: 1,
			ChannelPolicy:    cmdq.DPM,
			Channel:          channel,
		}

		sim := simulation.New(timing.NewSerialEngine())
		memCtrl := MakeBuilder().WithSimulation(sim).Build("MemCtrl")
		memCtrl.topPort = newFakePort()
		memCtrl.subTransactionQueue = &fakeSubTransQueue{}
		memCtrl.subTransSplitter = &fakeSplitter{}
		memCtrl.cmdQueue = q
		memCtrl.channel = channel

		// Every command the miss-once channel serves takes a PRECHARGE
		// plus the read itself, and the PRECHARGE always clears the
		// demand-hit bookkeeping, so the bank never earns a true row hit:
		// exactly 500 two-tick commands land the 1000th tick, the DPM
		// arbitration boundary, on the last command's read.
		var nextAddr uint64
		for i := 0; i < 500; i++ {
			nextAddr++
			cmd := &signal.Command{
				ID:      "auto",
				Kind:    signal.CmdKindRead,
				HexAddr: nextAddr,
				Location: addressmapping.Location{
					Row: int(nextAddr),
				},
			}
			Expect(q.Accept(cmd)).To(BeTrue())

			memCtrl.Tick() // serves the PRECHARGE the miss-once channel owes
			memCtrl.Tick() // serves the read itself
		}

		rw := readWriteCommands(channel.started)
		Expect(len(rw)).To(Equal(500))

		Expect(rw[498].Kind).To(Equal(signal.CmdKindRead))
		Expect(rw[499].Kind).To(Equal(signal.CmdKindReadPrecharge))
	})
})

func readWriteCommands(started []*signal.Command) []*signal.Command {
	var rw []*signal.Command

	for _, cmd := range started {
		if cmd.IsReadWrite() {
			rw = append(rw, cmd)
		}
	}

	return rw
}
