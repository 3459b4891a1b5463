// Package org models the physical organization of a DRAM channel: its
// ranks, bank groups and banks, and the inter-command timing constraints
// each bank enforces. This is the "timing oracle" the command scheduler
// treats as a read-only, external collaborator: it never inspects timing
// state directly, only reaches it through the Channel interface.
package org

import "github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"

// TimeTableEntry records how many cycles must elapse after a command of one
// kind before a command of NextCmdKind may issue.
type TimeTableEntry struct {
	NextCmdKind       signal.CommandKind
	MinCycleInBetween int
}

// TimeTable maps a just-issued command kind to the constraints it imposes
// on commands that follow it.
type TimeTable map[signal.CommandKind][]TimeTableEntry

// MakeTimeTable creates an empty TimeTable ready to be populated per
// command kind.
func MakeTimeTable() TimeTable {
	return make(TimeTable)
}

// Timing bundles the four TimeTables a bank consults after a command
// issues: the constraints it places on itself, on its bank-group
// neighbors, on other banks in the same rank, and on banks in other ranks.
type Timing struct {
	SameBank              TimeTable
	OtherBanksInBankGroup TimeTable
	SameRank              TimeTable
	OtherRanks            TimeTable
}
