// Package dram builds and wires a DRAM memory controller: address
// mapping, transaction splitting, the command-scheduling core, and the
// per-bank timing oracle that backs it, all driven by one JEDEC-style
// timing-parameter configuration.
package dram

import (
	"fmt"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/org"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/trans"
	"github.com/3p1phany/myDRAMsim/mem/mem"
	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/modeling"
	"github.com/3p1phany/myDRAMsim/sim/simulation"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// Builder configures and constructs a memory controller.
type Builder struct {
	simulation       simulation.Simulation
	freq             timing.Freq
	useGlobalStorage bool
	storage          *mem.Storage
	addrConverter    mem.AddressConverter
	hooks            []hooking.Hook

	protocol             Protocol
	queueStructure       cmdq.QueueStructure
	rowBufPolicy         cmdq.RowBufPolicy
	transactionQueueSize int
	commandQueueSize     int
	busWidth             int
	burstLength          int
	deviceWidth          int
	numChannel           int
	numRank              int
	numBankGroup         int
	numBank              int
	numRow               int
	numCol               int

	burstCycle int
	tAL        int
	tCL        int
	tCWL       int
	tRL        int
	tWL        int
	readDelay  int
	writeDelay int
	tRCD       int
	tRP        int
	tRAS       int
	tCCDL      int
	tCCDS      int
	tRTRS      int
	tRTP       int
	tWTRL      int
	tWTRS      int
	tWR        int
	tPPD       int
	tRC        int
	tRRDL      int
	tRRDS      int
	tRCDRD     int
	tRCDWR     int
	tREFI      int
	tRFC       int
	tRFCb      int
}

// MakeBuilder creates a Builder seeded with DDR3-shaped defaults.
func MakeBuilder() Builder {
	return Builder{
		freq:                 1600 * timing.MHz,
		protocol:             DDR3,
		queueStructure:       cmdq.PerBank,
		rowBufPolicy:         cmdq.DPM,
		transactionQueueSize: 32,
		commandQueueSize:     8,
		busWidth:             64,
		burstLength:          8,
		deviceWidth:          16,
		numChannel:           1,
		numRank:              2,
		numBankGroup:         1,
		numBank:              8,
		numRow:               32768,
		numCol:               1024,
		burstCycle:           4,
		tAL:                  0,
		tCL:                  11,
		tCWL:                 8,
		tRCD:                 11,
		tRP:                  11,
		tRAS:                 28,
		tCCDL:                4,
		tCCDS:                4,
		tRTRS:                1,
		tRTP:                 6,
		tWTRL:                6,
		tWTRS:                6,
		tWR:                  12,
		tPPD:                 0,
		tRRDL:                5,
		tRRDS:                5,
		tRCDRD:               24,
		tRCDWR:               20,
		tREFI:                6240,
		tRFC:                 208,
		tRFCb:                1950,
	}
}

// WithSimulation sets the simulation the controller runs under.
func (b Builder) WithSimulation(s simulation.Simulation) Builder {
	b.simulation = s
	return b
}

// WithFreq sets the controller's clock frequency.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithGlobalStorage asks the controller to read and write a shared
// storage instead of allocating its own, addressed by global physical
// address.
func (b Builder) WithGlobalStorage(s *mem.Storage) Builder {
	b.storage = s
	b.useGlobalStorage = true

	return b
}

// WithInterleavingAddrConversion configures the rule that converts a
// global physical address into this controller's internal address, for
// systems where several controllers interleave one address space.
func (b Builder) WithInterleavingAddrConversion(
	interleaveGranularity uint64,
	numTotalUnit, currentUnitIndex int,
	lowerBound uint64,
) Builder {
	b.addrConverter = mem.InterleavingConverter{
		InterleavingSize:    interleaveGranularity,
		TotalNumOfElements:  numTotalUnit,
		CurrentElementIndex: currentUnitIndex,
		Offset:              lowerBound,
	}

	return b
}

// WithProtocol sets the DDR-family protocol.
func (b Builder) WithProtocol(p Protocol) Builder {
	b.protocol = p
	return b
}

// WithQueueStructure selects PerBank or PerRank command queue grouping.
func (b Builder) WithQueueStructure(s cmdq.QueueStructure) Builder {
	b.queueStructure = s
	return b
}

// WithRowBufPolicy sets the channel-level row-buffer policy. DPM enables
// the adaptive page-policy arbiter; the other three values are static.
func (b Builder) WithRowBufPolicy(p cmdq.RowBufPolicy) Builder {
	b.rowBufPolicy = p
	return b
}

// WithTransactionQueueSize sets how many transactions may be buffered
// ahead of the command queues.
func (b Builder) WithTransactionQueueSize(n int) Builder {
	b.transactionQueueSize = n
	return b
}

// WithCommandQueueSize sets the capacity of every command queue.
func (b Builder) WithCommandQueueSize(n int) Builder {
	b.commandQueueSize = n
	return b
}

// WithBusWidth sets the number of bits transferred out of the banks at
// once.
func (b Builder) WithBusWidth(n int) Builder {
	b.busWidth = n
	return b
}

// WithBurstLength sets the number of beats in one burst.
func (b Builder) WithBurstLength(n int) Builder {
	b.burstLength = n
	return b
}

// WithDeviceWidth sets the number of bits a single DRAM device delivers.
func (b Builder) WithDeviceWidth(n int) Builder {
	b.deviceWidth = n
	return b
}

// WithNumChannel sets the number of channels the controller manages.
func (b Builder) WithNumChannel(n int) Builder {
	b.numChannel = n
	return b
}

// WithNumRank sets the number of ranks per channel.
func (b Builder) WithNumRank(n int) Builder {
	b.numRank = n
	return b
}

// WithNumBankGroup sets the number of bank groups per rank.
func (b Builder) WithNumBankGroup(n int) Builder {
	b.numBankGroup = n
	return b
}

// WithNumBank sets the number of banks per bank group.
func (b Builder) WithNumBank(n int) Builder {
	b.numBank = n
	return b
}

// WithNumRow sets the number of rows per bank.
func (b Builder) WithNumRow(n int) Builder {
	b.numRow = n
	return b
}

// WithNumCol sets the number of columns per row.
func (b Builder) WithNumCol(n int) Builder {
	b.numCol = n
	return b
}

// WithAdditionalHooks attaches hook to the controller and every bank.
func (b Builder) WithAdditionalHooks(h hooking.Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// WithTAL sets the additional latency to column access, in cycles.
func (b Builder) WithTAL(cycle int) Builder { b.tAL = cycle; return b }

// WithTCL sets the column-access strobe latency, in cycles.
func (b Builder) WithTCL(cycle int) Builder { b.tCL = cycle; return b }

// WithTCWL sets the column write strobe latency, in cycles.
func (b Builder) WithTCWL(cycle int) Builder { b.tCWL = cycle; return b }

// WithTRCD sets the row-to-column delay, in cycles.
func (b Builder) WithTRCD(cycle int) Builder { b.tRCD = cycle; return b }

// WithTRP sets the row precharge latency, in cycles.
func (b Builder) WithTRP(cycle int) Builder { b.tRP = cycle; return b }

// WithTRAS sets the row access strobe latency, in cycles.
func (b Builder) WithTRAS(cycle int) Builder { b.tRAS = cycle; return b }

// WithTCCDL sets the same-bank-group column-to-column delay, in cycles.
func (b Builder) WithTCCDL(cycle int) Builder { b.tCCDL = cycle; return b }

// WithTCCDS sets the cross-bank-group column-to-column delay, in cycles.
func (b Builder) WithTCCDS(cycle int) Builder { b.tCCDS = cycle; return b }

// WithTRTRS sets the rank-to-rank switching latency, in cycles.
func (b Builder) WithTRTRS(cycle int) Builder { b.tRTRS = cycle; return b }

// WithTRTP sets the read-to-precharge latency, in cycles.
func (b Builder) WithTRTP(cycle int) Builder { b.tRTP = cycle; return b }

// WithTWTRL sets the same-bank-group write-to-read latency, in cycles.
func (b Builder) WithTWTRL(cycle int) Builder { b.tWTRL = cycle; return b }

// WithTWTRS sets the cross-bank-group write-to-read latency, in cycles.
func (b Builder) WithTWTRS(cycle int) Builder { b.tWTRS = cycle; return b }

// WithTWR sets the write recovery time, in cycles.
func (b Builder) WithTWR(cycle int) Builder { b.tWR = cycle; return b }

// WithTPPD sets the precharge-to-precharge delay, in cycles.
func (b Builder) WithTPPD(cycle int) Builder { b.tPPD = cycle; return b }

// WithTRRDL sets the same-bank-group activate-to-activate latency, in
// cycles.
func (b Builder) WithTRRDL(cycle int) Builder { b.tRRDL = cycle; return b }

// WithTRRDS sets the cross-bank-group activate-to-activate latency, in
// cycles.
func (b Builder) WithTRRDS(cycle int) Builder { b.tRRDS = cycle; return b }

// WithTRCDRD sets the GDDR/HBM activate-to-read latency, in cycles.
func (b Builder) WithTRCDRD(cycle int) Builder { b.tRCDRD = cycle; return b }

// WithTRCDWR sets the GDDR/HBM activate-to-write latency, in cycles.
func (b Builder) WithTRCDWR(cycle int) Builder { b.tRCDWR = cycle; return b }

// WithTREFI sets the refresh interval, in cycles.
func (b Builder) WithTREFI(cycle int) Builder { b.tREFI = cycle; return b }

// WithRFC sets the all-bank refresh cycle time, in cycles.
func (b Builder) WithRFC(cycle int) Builder { b.tRFC = cycle; return b }

// WithRFCb sets the per-bank refresh-to-activate latency, in cycles.
func (b Builder) WithRFCb(cycle int) Builder { b.tRFCb = cycle; return b }

// Build constructs the memory controller.
func (b Builder) Build(name string) *Comp {
	m := &Comp{
		addrConverter: b.addrConverter,
	}
	m.TickingComponent = modeling.NewTickingComponent(
		name, b.simulation.GetEngine(), b.freq, m)

	b.attachHooks(m)
	b.buildChannel(name, m)

	burstLengthBytes := b.busWidth / 8 * b.burstLength

	m.addrMapper = addressmapping.MakeBuilder().
		WithBurstLengthBytes(burstLengthBytes).
		WithColumns(b.numCol).
		WithBanks(b.numBank).
		WithBankGroups(b.numBankGroup).
		WithRanks(b.numRank).
		WithRows(b.numRow).
		Build()

	numAccessUnitBit, _ := log2(uint64(burstLengthBytes))
	m.subTransSplitter = &trans.DefaultSubTransSplitter{
		UnitBits:   numAccessUnitBit,
		AddrMapper: m.addrMapper,
	}

	cmdQueue := &cmdq.CommandQueueImpl{
		Structure:        b.queueStructure,
		Ranks:            b.numRank,
		BankGroups:       b.numBankGroup,
		Banks:            b.numBank,
		CapacityPerQueue: b.commandQueueSize,
		ChannelPolicy:    b.rowBufPolicy,
		Channel:          m.channel,
	}
	m.cmdQueue = cmdQueue

	var cmdCreator trans.CommandCreator = trans.OpenPageCommandCreator{}
	if b.rowBufPolicy == cmdq.ClosePage {
		cmdCreator = trans.ClosePageCommandCreator{}
	}

	subTransactionQueue := &trans.FCFSSubTransactionQueue{
		Capacity:   b.transactionQueueSize,
		CmdQueue:   m.cmdQueue,
		CmdCreator: cmdCreator,
	}
	m.subTransactionQueue = subTransactionQueue

	// The ready picker's row-hit sibling count (spec.md §4.2 step 4a) looks
	// past the command queue at whatever is still buffered in the
	// subtransaction queue, so a burst that hasn't been turned into a
	// command yet still counts toward an auto-precharge decision.
	cmdQueue.ExternalBuffer = subTransactionQueue

	if b.useGlobalStorage {
		m.storage = b.storage
	} else {
		devicePerRank := b.busWidth / b.deviceWidth
		bankSize := b.numCol * b.numRow * b.deviceWidth / 8
		rankSize := bankSize * b.numBank * devicePerRank
		totalSize := rankSize * b.numRank * b.numChannel
		m.storage = mem.NewStorage(uint64(totalSize))
	}

	m.topPort = modeling.PortBuilder{}.
		WithComponent(m).
		WithSimulation(b.simulation).
		WithIncomingBufCap(1024).
		WithOutgoingBufCap(1024).
		Build(name + ".TopPort")
	m.AddPort("Top", m.topPort)

	mw := &middleware{Comp: m}
	m.AddMiddleware(mw)

	return m
}

func (b Builder) attachHooks(hookable hooking.Hookable) {
	for _, hook := range b.hooks {
		hookable.AcceptHook(hook)
	}
}

func (b Builder) buildChannel(name string, m *Comp) {
	t := b.generateTiming()
	channel := &org.ChannelImpl{
		Timing:                t,
		RefreshIntervalCycles: b.tREFI,
	}

	channel.Banks = org.MakeBanks(b.numRank, b.numBankGroup, b.numBank)

	for i := 0; i < b.numRank; i++ {
		for j := 0; j < b.numBankGroup; j++ {
			for k := 0; k < b.numBank; k++ {
				bankName := fmt.Sprintf("%s.Bank[%d][%d][%d]", name, i, j, k)
				bank := org.NewBankImpl(bankName)
				bank.CmdCycles = map[signal.CommandKind]int{
					signal.CmdKindRead:           b.readDelay,
					signal.CmdKindReadPrecharge:  b.tRP,
					signal.CmdKindWrite:          b.writeDelay,
					signal.CmdKindWritePrecharge: b.tRP,
					signal.CmdKindActivate:       b.tRCD - b.tAL,
					signal.CmdKindPrecharge:      b.tRP,
					signal.CmdKindRefreshBank:    b.tRFCb,
					signal.CmdKindRefresh:        b.tRFC,
				}

				if b.protocol.isGDDR() || b.protocol.isHBM() {
					bank.CmdCycles[signal.CmdKindActivate] = b.tRCDRD - b.tAL
				}

				b.attachHooks(bank)

				channel.Banks[i][j][k] = bank
			}
		}
	}

	m.channel = channel
}

// generateTiming derives every inter-command timing constraint from the
// configured JEDEC parameters. Self-refresh entry/exit is out of scope:
// this controller never issues SRE/SRX, so no timing table entries exist
// for them.
//
//nolint:funlen
func (b *Builder) generateTiming() org.Timing {
	t := org.Timing{
		SameBank:              org.MakeTimeTable(),
		OtherBanksInBankGroup: org.MakeTimeTable(),
		SameRank:              org.MakeTimeTable(),
		OtherRanks:            org.MakeTimeTable(),
	}

	b.calculateBurstCycle()

	b.tRL = b.tAL + b.tCL
	b.tWL = b.tAL + b.tCWL
	b.readDelay = b.tRL + b.burstCycle
	b.writeDelay = b.tRL + b.burstCycle
	b.tRC = b.tRAS + b.tRP

	readToReadL := max(b.burstCycle, b.tCCDL)
	readToReadS := max(b.burstCycle, b.tCCDS)
	readToReadO := b.burstCycle + b.tRTRS
	readToWrite := b.tRL + b.burstCycle - b.tWL + b.tRTRS
	readToWriteO := b.readDelay + b.burstCycle + b.tRTRS - b.writeDelay
	readToPrecharge := b.tAL + b.tRTP
	readpToAct := b.tAL + b.burstCycle + b.tRTP + b.tRP

	writeToReadL := b.writeDelay + b.tWTRL
	writeToReadS := b.writeDelay + b.tWTRS
	writeToReadO := b.writeDelay + b.burstCycle + b.tRTRS - b.readDelay
	writeToWriteL := max(b.burstCycle, b.tCCDL)
	writeToWriteS := max(b.burstCycle, b.tCCDS)
	writeToWriteO := b.burstCycle
	writeToPrecharge := b.tWL + b.burstCycle + b.tWR

	prechargeToActivate := b.tRP
	prechargeToPrecharge := b.tPPD
	readToActivate := readToPrecharge + prechargeToActivate
	writeToActivate := writeToPrecharge + prechargeToActivate

	activateToActivate := b.tRC
	activateToActivateL := b.tRRDL
	activateToActivateS := b.tRRDS
	activateToPrecharge := b.tRAS
	activateToRead := b.tRCD - b.tAL
	activateToWrite := b.tRCD - b.tAL

	if b.protocol.isGDDR() || b.protocol.isHBM() {
		activateToRead = b.tRCDRD
		activateToWrite = b.tRCDWR
	}

	activateToRefresh := b.tRC

	refreshToRefresh := b.tREFI
	refreshToActivate := b.tRFC
	refreshToActivateBank := b.tRFCb

	if b.numBankGroup == 1 {
		readToReadL = max(b.burstCycle, b.tCCDS)
		writeToReadL = b.writeDelay + b.tWTRS
		writeToWriteL = max(b.burstCycle, b.tCCDS)
		activateToActivateL = b.tRRDS
	}

	t.SameBank[signal.CmdKindRead] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindPrecharge, MinCycleInBetween: readToPrecharge},
	}
	t.OtherBanksInBankGroup[signal.CmdKindRead] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: readToWrite},
	}
	t.SameRank[signal.CmdKindRead] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadS},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadS},
	}
	t.OtherRanks[signal.CmdKindRead] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadO},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWriteO},
	}

	t.SameBank[signal.CmdKindWrite] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteL},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadL},
		{NextCmdKind: signal.CmdKindPrecharge, MinCycleInBetween: writeToPrecharge},
	}
	t.OtherBanksInBankGroup[signal.CmdKindWrite] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteL},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadL},
	}
	t.SameRank[signal.CmdKindWrite] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadS},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteS},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadS},
	}
	t.OtherRanks[signal.CmdKindWrite] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadO},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteO},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadO},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: writeToWriteO},
	}

	t.SameBank[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: readpToAct},
		{NextCmdKind: signal.CmdKindRefresh, MinCycleInBetween: readToActivate},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: readToActivate},
	}
	t.OtherBanksInBankGroup[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadL},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: readToWrite},
	}
	t.SameRank[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadS},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadS},
	}
	t.OtherRanks[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: readToReadO},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: readToWriteO},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: readToReadO},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: readToWriteO},
	}

	t.SameBank[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: writeToActivate},
		{NextCmdKind: signal.CmdKindRefresh, MinCycleInBetween: writeToActivate},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: writeToActivate},
	}
	t.OtherBanksInBankGroup[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadL},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteL},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadL},
	}
	t.SameRank[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadS},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteS},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadS},
	}
	t.OtherRanks[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: writeToReadO},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: writeToWriteO},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: writeToReadO},
	}

	t.SameBank[signal.CmdKindActivate] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: activateToActivate},
		{NextCmdKind: signal.CmdKindRead, MinCycleInBetween: activateToRead},
		{NextCmdKind: signal.CmdKindWrite, MinCycleInBetween: activateToWrite},
		{NextCmdKind: signal.CmdKindReadPrecharge, MinCycleInBetween: activateToRead},
		{NextCmdKind: signal.CmdKindWritePrecharge, MinCycleInBetween: activateToWrite},
		{NextCmdKind: signal.CmdKindPrecharge, MinCycleInBetween: activateToPrecharge},
	}
	t.OtherBanksInBankGroup[signal.CmdKindActivate] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: activateToActivateL},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: activateToRefresh},
	}
	t.SameRank[signal.CmdKindActivate] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: activateToActivateS},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: activateToRefresh},
	}

	t.SameBank[signal.CmdKindPrecharge] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: prechargeToActivate},
		{NextCmdKind: signal.CmdKindRefresh, MinCycleInBetween: prechargeToActivate},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: prechargeToActivate},
	}

	if b.protocol.isGDDR() || b.protocol == LPDDR4 {
		t.OtherBanksInBankGroup[signal.CmdKindPrecharge] = []org.TimeTableEntry{
			{NextCmdKind: signal.CmdKindPrecharge, MinCycleInBetween: prechargeToPrecharge},
		}
		t.SameRank[signal.CmdKindPrecharge] = []org.TimeTableEntry{
			{NextCmdKind: signal.CmdKindPrecharge, MinCycleInBetween: prechargeToPrecharge},
		}
	}

	t.SameRank[signal.CmdKindRefreshBank] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: refreshToActivateBank},
		{NextCmdKind: signal.CmdKindRefresh, MinCycleInBetween: refreshToActivateBank},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: refreshToActivateBank},
	}
	t.OtherBanksInBankGroup[signal.CmdKindRefreshBank] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: refreshToActivate},
		{NextCmdKind: signal.CmdKindRefreshBank, MinCycleInBetween: refreshToRefresh},
	}

	t.SameRank[signal.CmdKindRefresh] = []org.TimeTableEntry{
		{NextCmdKind: signal.CmdKindActivate, MinCycleInBetween: refreshToActivate},
		{NextCmdKind: signal.CmdKindRefresh, MinCycleInBetween: refreshToActivate},
	}

	return t
}

func (b *Builder) calculateBurstCycle() {
	if b.burstLength == 0 {
		panic("burst length cannot be 0")
	}

	switch b.protocol {
	case GDDR5:
		b.burstCycle = b.burstLength / 4
	case GDDR5X:
		b.burstCycle = b.burstLength / 8
	case GDDR6:
		b.burstCycle = b.burstLength / 16
	default:
		b.burstCycle = b.burstLength / 2
	}
}

// log2 returns the log2 of n and whether n is an exact power of two.
func log2(n uint64) (int, bool) {
	oneCount := 0
	onePos := 0

	for i := 0; i < 64; i++ {
		if n&(1<<uint(i)) > 0 {
			onePos = i
			oneCount++
		}
	}

	return onePos, oneCount == 1
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
