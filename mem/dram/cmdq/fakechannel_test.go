package cmdq_test

import "github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"

// fakeChannel is a hand-rolled stand-in for the timing oracle. Every
// method is driven by a plain field or closure so tests can script
// exactly the oracle behavior a scenario needs.
type fakeChannel struct {
	// ReadyFunc decides what GetReadyCommand returns for a given command.
	// Defaults to "always ready" when nil.
	ReadyFunc func(cmd *signal.Command) *signal.Command

	// openRow maps a bank triple to its open row, keyed by
	// (rank,bankGroup,bank).
	openRow map[[3]int]int

	// rowHit maps a bank triple to its consecutive row-hit count.
	rowHit map[[3]int]int

	// pendingRef is returned once by PendingRefCommand, then cleared.
	pendingRef *signal.Command
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		openRow: make(map[[3]int]int),
		rowHit:  make(map[[3]int]int),
	}
}

func (f *fakeChannel) GetReadyCommand(cmd *signal.Command) *signal.Command {
	if f.ReadyFunc != nil {
		return f.ReadyFunc(cmd)
	}

	return cmd
}

func (f *fakeChannel) setOpenRow(rank, bg, bank, row int) {
	f.openRow[[3]int{rank, bg, bank}] = row
}

func (f *fakeChannel) OpenRow(rank, bg, bank int) int {
	if row, ok := f.openRow[[3]int{rank, bg, bank}]; ok {
		return row
	}

	return -1
}

func (f *fakeChannel) setRowHitCount(rank, bg, bank, n int) {
	f.rowHit[[3]int{rank, bg, bank}] = n
}

func (f *fakeChannel) RowHitCount(rank, bg, bank int) int {
	return f.rowHit[[3]int{rank, bg, bank}]
}

func (f *fakeChannel) PendingRefCommand() *signal.Command {
	ref := f.pendingRef
	f.pendingRef = nil

	return ref
}
