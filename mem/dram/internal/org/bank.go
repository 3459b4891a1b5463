package org

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/naming"
)

// A Bank is a single DRAM bank: it tracks which row (if any) is open, how
// many consecutive row hits it has served since the last ACTIVATE, and the
// earliest cycle at which each next command kind is legal given the
// command it is currently busy executing.
type Bank interface {
	naming.Named
	hooking.Hookable

	// GetReadyCommand returns cmd if it may issue this cycle, a
	// prerequisite (ACTIVATE/PRECHARGE) that must issue first, or nil if
	// nothing is legal yet.
	GetReadyCommand(cmd *signal.Command) *signal.Command

	// StartCommand records that cmd has issued this cycle: it updates the
	// open row, row-hit counter and its own completion timer.
	StartCommand(cmd *signal.Command)

	// UpdateTiming records that a command issued somewhere in the channel
	// now blocks a command of cmdKind from issuing on this bank for
	// cycleNeeded more cycles.
	UpdateTiming(cmdKind signal.CommandKind, cycleNeeded int)

	// Tick advances the bank's internal clock by one cycle.
	Tick() bool

	// OpenRow returns the currently open row, or -1 if the bank is closed.
	OpenRow() int

	// RowHitCount returns the number of consecutive row hits served since
	// the last ACTIVATE.
	RowHitCount() int
}
