package cmdq

import (
	"log"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

// arbitrationPeriod is the fixed number of cycles between two evaluations
// of the page-policy arbiter.
const arbitrationPeriod = 1000

// fairnessCap is the number of consecutive row hits a bank may serve
// before an on-demand PRECHARGE is allowed to jump the queue regardless
// of pending row-hit successors.
const fairnessCap = 4

// CommandQueueImpl is the default CommandQueue: a set of per-bank or
// per-rank queues, a round-robin ready picker, an on-demand precharge
// arbiter, a DPM page-policy arbiter, and a refresh interlock, all
// operating against a Channel timing oracle.
type CommandQueueImpl struct {
	// Structure selects PerBank or PerRank queue grouping. Any other
	// value is a construction-time error.
	Structure QueueStructure

	// Ranks, BankGroups, Banks give the channel geometry the index
	// function is derived from.
	Ranks, BankGroups, Banks int

	// CapacityPerQueue bounds every queue's length.
	CapacityPerQueue int

	// ChannelPolicy is the channel-level row-buffer policy every queue is
	// seeded with. DPM additionally activates the page-policy arbiter.
	ChannelPolicy RowBufPolicy

	// Channel is the timing oracle queues consult to find ready commands.
	Channel Channel

	// ExternalBuffer optionally lets the ready picker count row-hit
	// siblings living in the controller's read queue and write buffer. A
	// nil ExternalBuffer means no such siblings are counted.
	ExternalBuffer ExternalBufferView

	// Stats optionally receives observability counters. A nil Stats
	// discards them.
	Stats StatsSink

	// Logger receives DPM per-arbitration-cycle snapshots. Defaults to
	// log.Default() when nil.
	Logger *log.Logger

	// Queues, one per index produced by GetQueueIndex.
	Queues []Queue

	victimCmds         [][]*signal.Command
	trueRowHitCount    []int
	demandRowHitCount  []int
	totalCommandCount  []int
	rowBufPolicy       []RowBufPolicy
	bankSM             []int
	rankQueueEmpty     []bool
	nextQueueIndex     int
	clk                uint64
	isInRef            bool
	refQIndices        map[int]bool
	built              bool
}

// build lazily allocates the per-queue state vectors and validates the
// configuration. Panics with a *ConfigError on an unsupported queue
// structure, matching the fatal-at-construction contract.
func (q *CommandQueueImpl) build() {
	if q.built {
		return
	}

	if q.Structure != PerBank && q.Structure != PerRank {
		panic(&ConfigError{Field: "queue_structure", Value: q.Structure})
	}

	n := q.numQueues()

	q.Queues = make([]Queue, n)
	q.victimCmds = make([][]*signal.Command, n)
	q.trueRowHitCount = make([]int, n)
	q.demandRowHitCount = make([]int, n)
	q.totalCommandCount = make([]int, n)
	q.rowBufPolicy = make([]RowBufPolicy, n)
	q.bankSM = make([]int, n)
	q.rankQueueEmpty = make([]bool, q.Ranks)
	q.refQIndices = make(map[int]bool)

	initial := q.ChannelPolicy
	if initial == DPM {
		initial = OpenPage
	}

	for i := range q.rowBufPolicy {
		q.rowBufPolicy[i] = initial
		q.bankSM[i] = 3
	}

	if q.Logger == nil {
		q.Logger = log.Default()
	}

	q.built = true
}

func (q *CommandQueueImpl) numQueues() int {
	if q.Structure == PerRank {
		return q.Ranks
	}

	return q.Ranks * q.BankGroups * q.Banks
}

// GetQueueIndex maps a bank triple to its queue index, per Structure.
func (q *CommandQueueImpl) GetQueueIndex(rank, bankGroup, bank int) int {
	q.build()

	if q.Structure == PerRank {
		return rank
	}

	banksTotal := q.BankGroups * q.Banks

	return rank*banksTotal + bankGroup*q.Banks + bank
}

// WillAccept reports whether the queue for the given bank triple has room
// for one more command.
func (q *CommandQueueImpl) WillAccept(rank, bankGroup, bank int) bool {
	q.build()

	idx := q.GetQueueIndex(rank, bankGroup, bank)

	return len(q.Queues[idx]) < q.CapacityPerQueue
}

// CanAccept reports whether cmd's target queue has room. It is the
// command-shaped counterpart of WillAccept.
func (q *CommandQueueImpl) CanAccept(cmd *signal.Command) bool {
	return q.WillAccept(cmd.Rank(), cmd.BankGroup(), cmd.Bank())
}

// Accept appends cmd to its mapped queue. It returns false, and clears
// that queue's victim list, if the queue is already full: a congested
// queue cannot usefully keep row-hit bookkeeping around.
func (q *CommandQueueImpl) Accept(cmd *signal.Command) bool {
	q.build()

	idx := q.GetQueueIndex(cmd.Rank(), cmd.BankGroup(), cmd.Bank())

	if len(q.Queues[idx]) >= q.CapacityPerQueue {
		q.victimCmds[idx] = nil
		return false
	}

	q.Queues[idx] = append(q.Queues[idx], cmd)
	q.rankQueueEmpty[cmd.Rank()] = false

	return true
}

// QueueEmpty reports whether every queue is empty.
func (q *CommandQueueImpl) QueueEmpty() bool {
	q.build()

	for _, queue := range q.Queues {
		if len(queue) > 0 {
			return false
		}
	}

	return true
}

// QueueUsage returns the total number of commands across every queue.
func (q *CommandQueueImpl) QueueUsage() int {
	q.build()

	n := 0
	for _, queue := range q.Queues {
		n += len(queue)
	}

	return n
}

// getNextQueue advances the round-robin pointer and returns its new
// value.
func (q *CommandQueueImpl) getNextQueue() int {
	q.nextQueueIndex = (q.nextQueueIndex + 1) % len(q.Queues)
	return q.nextQueueIndex
}

// GetCommandToIssue scans queues round-robin for the first legal command,
// applies row-hit and auto-precharge bookkeeping, removes it from its
// queue, and returns it. It returns nil if nothing is ready to issue.
func (q *CommandQueueImpl) GetCommandToIssue() *signal.Command {
	q.build()

	n := len(q.Queues)

	for i := 0; i < n; i++ {
		idx := q.getNextQueue()

		if q.isInRef && q.refQIndices[idx] {
			continue
		}

		cmd := q.getFirstReadyInQueue(idx)
		if !cmd.IsValid() {
			continue
		}

		if !cmd.IsReadWrite() {
			// A bare PRECHARGE/ACTIVATE: its R/W successors stay queued.
			return cmd
		}

		autoPRE := q.wantsAutoPrecharge(idx, cmd)

		// eraseRW must run against cmd's pre-upgrade kind: cmd is the
		// queue's own entry (the timing oracle hands back the same
		// pointer it was given for a row-hit), so mutating its Kind
		// before erasing would make the entry unfindable by either
		// eraseRW branch.
		if err := q.eraseRW(idx, cmd, autoPRE); err != nil {
			panic(err)
		}

		if autoPRE {
			cmd.Kind = signal.AutoPrechargeUpgrade(cmd.Kind)
		}

		q.totalCommandCount[idx]++

		return cmd
	}

	return nil
}

// wantsAutoPrecharge counts row-hit siblings targeting cmd's row across
// the rest of its queue and, when the target queue still has spare
// capacity, the external read queue / write buffer. It reports true when
// the queue's effective policy is SmartClose and cmd is the only sibling,
// meaning cmd should be upgraded to its auto-precharge form.
func (q *CommandQueueImpl) wantsAutoPrecharge(idx int, cmd *signal.Command) bool {
	if q.rowBufPolicy[idx] != SmartClose {
		return false
	}

	return q.countRowHitSiblings(idx, cmd) == 1
}

func (q *CommandQueueImpl) countRowHitSiblings(idx int, cmd *signal.Command) int {
	count := 0

	for _, other := range q.Queues[idx] {
		if other == cmd {
			continue
		}

		if other.IsReadWrite() && other.Location.SameRow(cmd.Location) {
			count++
		}
	}

	if len(q.Queues[idx]) < q.CapacityPerQueue && q.ExternalBuffer != nil {
		count += q.ExternalBuffer.PendingWritesTo(
			cmd.Rank(), cmd.BankGroup(), cmd.Bank(), cmd.Row())
		count += q.ExternalBuffer.PendingReadsTo(
			cmd.Rank(), cmd.BankGroup(), cmd.Bank(), cmd.Row())
	}

	// cmd itself is always a sibling of its own row hit.
	return count + 1
}

// getFirstReadyInQueue scans queue idx front-to-back for the first
// command the timing oracle deems ready, applying write-after-read
// dependency checks, on-demand precharge arbitration, and true/demand
// row-hit bookkeeping along the way.
func (q *CommandQueueImpl) getFirstReadyInQueue(idx int) *signal.Command {
	queue := q.Queues[idx]

	for i, cmd := range queue {
		ready := q.Channel.GetReadyCommand(cmd)
		if !ready.IsValid() {
			continue
		}

		trueRowHit := false

		switch {
		case ready.IsReadWrite():
			if ready.IsWrite() && q.hasRWDependency(cmd, queue[:i]) {
				continue
			}

			if cmd.InducedPrecharge {
				cmd.InducedPrecharge = false
			} else {
				q.demandRowHitCount[idx]++
				trueRowHit = true
			}

		case ready.Kind == signal.CmdKindPrecharge:
			if !q.arbitratePrecharge(idx, cmd, queue[i+1:]) {
				continue
			}

			cmd.InducedPrecharge = true

			for _, victim := range q.victimCmds[idx] {
				if victim.Row() == ready.Row() {
					trueRowHit = true
					break
				}
			}

			q.victimCmds[idx] = append(q.victimCmds[idx], ready)
		}

		if trueRowHit {
			q.trueRowHitCount[idx]++
		}

		return ready
	}

	return nil
}

// hasRWDependency reports whether any predecessor of c in queue is a READ
// targeting the same bank triple, row and column: a write-after-read
// hazard that must block c until the read has issued.
func (q *CommandQueueImpl) hasRWDependency(c *signal.Command, predecessors []*signal.Command) bool {
	for _, p := range predecessors {
		if p.IsRead() && p.Location == c.Location {
			return true
		}
	}

	return false
}

// arbitratePrecharge decides whether an on-demand PRECHARGE targeting
// cmd's bank triple may issue now. It may not jump ahead of an earlier
// command targeting the same bank triple, and may not close a row that
// still has pending row-hit successors unless the bank has already
// served the fairness cap of consecutive hits.
func (q *CommandQueueImpl) arbitratePrecharge(idx int, cmd *signal.Command, successors []*signal.Command) bool {
	queue := q.Queues[idx]

	for _, p := range queue {
		if p == cmd {
			break
		}

		if p.Location.SameBank(cmd.Location) {
			return false
		}
	}

	openRow := q.Channel.OpenRow(cmd.Rank(), cmd.BankGroup(), cmd.Bank())

	pendingRowHit := false

	for _, s := range successors {
		if s.IsReadWrite() && s.Row() == openRow && s.Location.SameBank(cmd.Location) {
			pendingRowHit = true
			break
		}
	}

	hitCount := q.Channel.RowHitCount(cmd.Rank(), cmd.BankGroup(), cmd.Bank())

	if pendingRowHit && hitCount < fairnessCap {
		return false
	}

	if q.Stats != nil {
		q.Stats.Increment("num_ondemand_pres")
	}

	return true
}

// eraseRW removes the first queue entry matching cmd's hex_addr and type,
// accounting for an auto-precharge upgrade: when autoPRE is true, the
// queued entry is still in its non-precharge form.
func (q *CommandQueueImpl) eraseRW(idx int, cmd *signal.Command, autoPRE bool) error {
	queue := q.Queues[idx]

	wantKind := cmd.Kind
	if autoPRE {
		wantKind = signal.NonPrechargeForm(cmd.Kind)
	}

	for i, entry := range queue {
		if entry.HexAddr == cmd.HexAddr && entry.Kind == wantKind {
			q.Queues[idx] = append(queue[:i], queue[i+1:]...)
			return nil
		}
	}

	return &CommandMissingError{HexAddr: cmd.HexAddr, Kind: cmd.Kind}
}

// FinishRefresh drains the queues a pending refresh touches, computing the
// affected index set on first entry, forwarding whatever prerequisite or
// REFRESH the timing oracle reports, and clearing per-queue counters once
// the REFRESH itself is returned.
func (q *CommandQueueImpl) FinishRefresh(ref *signal.Command) *signal.Command {
	q.build()

	if !q.isInRef {
		q.isInRef = true
		q.refQIndices = q.getRefQIndices(ref)
	}

	ready := q.Channel.GetReadyCommand(ref)
	if !ready.IsValid() {
		return nil
	}

	if ready.IsRefresh() {
		for idx := range q.refQIndices {
			q.victimCmds[idx] = nil
			q.totalCommandCount[idx] = 0
			q.trueRowHitCount[idx] = 0
			q.demandRowHitCount[idx] = 0
		}

		q.refQIndices = make(map[int]bool)
		q.isInRef = false
	}

	return ready
}

// getRefQIndices computes the set of queue indices a pending refresh
// freezes.
func (q *CommandQueueImpl) getRefQIndices(ref *signal.Command) map[int]bool {
	indices := make(map[int]bool)

	if ref.Kind == signal.CmdKindRefreshBank {
		indices[q.GetQueueIndex(ref.Rank(), ref.BankGroup(), ref.Bank())] = true
		return indices
	}

	if q.Structure == PerRank {
		indices[ref.Rank()] = true
		return indices
	}

	for g := 0; g < q.BankGroups; g++ {
		for b := 0; b < q.Banks; b++ {
			indices[q.GetQueueIndex(ref.Rank(), g, b)] = true
		}
	}

	return indices
}

// ArbitratePagePolicy runs the DPM hysteresis transition once per
// arbitration period. It is a no-op outside DPM mode or between
// arbitration boundaries.
func (q *CommandQueueImpl) ArbitratePagePolicy() {
	q.build()

	q.clk++

	if q.ChannelPolicy != DPM {
		return
	}

	if q.clk < arbitrationPeriod || q.clk%arbitrationPeriod != 0 {
		return
	}

	snapshot := make([]byte, len(q.Queues))

	for i := range q.Queues {
		a := q.trueRowHitCount[i]
		b := q.totalCommandCount[i]

		switch q.rowBufPolicy[i] {
		case OpenPage:
			q.arbitrateFromOpenPage(i, a, b)
		case SmartClose:
			q.arbitrateFromSmartClose(i, a, b)
		}

		if q.rowBufPolicy[i] == OpenPage {
			snapshot[i] = 'O'
		} else {
			snapshot[i] = '#'
		}
	}

	q.Logger.Printf(
		"dram cmdq: dpm snapshot clk=%d true_row_hit=%v demand_row_hit=%v total=%v policy=%s",
		q.clk, q.trueRowHitCount, q.demandRowHitCount, q.totalCommandCount, snapshot)
}

func (q *CommandQueueImpl) arbitrateFromOpenPage(i, a, b int) {
	switch {
	case b == 0, a < b>>2:
		q.bankSM[i] = 0
		q.rowBufPolicy[i] = SmartClose
	case a < b>>1:
		q.bankSM[i] = clampSM(q.bankSM[i] - 1)
		if q.bankSM[i] <= 1 {
			q.rowBufPolicy[i] = SmartClose
		}
	default:
		q.bankSM[i] = clampSM(q.bankSM[i] + 1)
		if q.bankSM[i] <= 1 {
			q.rowBufPolicy[i] = SmartClose
		}
	}
}

func (q *CommandQueueImpl) arbitrateFromSmartClose(i, a, b int) {
	switch {
	case 4*a >= 3*b:
		q.bankSM[i] = 3
		q.rowBufPolicy[i] = OpenPage
	case a >= b>>1:
		q.bankSM[i] = clampSM(q.bankSM[i] + 1)
		if q.bankSM[i] >= 2 {
			q.rowBufPolicy[i] = OpenPage
		}
	default:
		q.bankSM[i] = clampSM(q.bankSM[i] - 1)
		if q.bankSM[i] >= 2 {
			q.rowBufPolicy[i] = OpenPage
		}
	}
}

func clampSM(v int) int {
	if v < 0 {
		return 0
	}

	if v > 3 {
		return 3
	}

	return v
}
