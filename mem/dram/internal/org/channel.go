package org

import "github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"

// Channel is the timing oracle the command scheduler treats as an external,
// read-only collaborator: it answers whether a command is legal to issue
// right now, applies the timing consequences once one does, and manufactures
// the periodic refresh commands the RefreshInterlock drains queues around.
type Channel interface {
	// GetReadyCommand returns cmd if it is legal to issue this cycle, a
	// prerequisite command (ACTIVATE/PRECHARGE) in its place, or nil.
	GetReadyCommand(cmd *signal.Command) *signal.Command

	// StartCommand applies the state change of issuing cmd to the bank it
	// targets.
	StartCommand(cmd *signal.Command)

	// UpdateTiming fans a just-issued command's timing consequences out to
	// its own bank and to every sibling bank the Timing tables name.
	UpdateTiming(cmd *signal.Command)

	// OpenRow returns the row currently open on the named bank, or -1.
	OpenRow(rank, bankGroup, bank int) int

	// RowHitCount returns the named bank's consecutive row-hit count since
	// its last ACTIVATE.
	RowHitCount(rank, bankGroup, bank int) int

	// PendingRefCommand returns the next refresh command the channel wants
	// scheduled, or nil if none is due yet.
	PendingRefCommand() *signal.Command

	// Tick advances every bank's internal clock by one cycle.
	Tick() bool
}
