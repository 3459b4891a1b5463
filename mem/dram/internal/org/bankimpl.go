package org

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/sim/hooking"
	"github.com/3p1phany/myDRAMsim/sim/naming"
)

// BankImpl is the default Bank implementation: a per-kind busy timer for
// the command currently executing, plus a per-next-kind earliest-issue
// cycle used to enforce the inter-command timing constraints that
// UpdateTiming installs.
type BankImpl struct {
	naming.NamedBase
	hooking.HookableBase

	// CmdCycles gives the number of cycles a command of a given kind keeps
	// the bank busy once it issues.
	CmdCycles map[signal.CommandKind]int

	clk uint64

	openRow     int
	rowHitCount int

	busyUntil     uint64
	executing     *signal.Command
	earliestCycle map[signal.CommandKind]uint64
}

// NewBankImpl creates a BankImpl named name, initially closed.
func NewBankImpl(name string) *BankImpl {
	return &BankImpl{
		NamedBase:     naming.MakeNamedBase(name),
		openRow:       -1,
		earliestCycle: make(map[signal.CommandKind]uint64),
	}
}

// OpenRow returns the currently open row, or -1 if none.
func (b *BankImpl) OpenRow() int {
	return b.openRow
}

// RowHitCount returns the number of consecutive row hits since the last
// ACTIVATE.
func (b *BankImpl) RowHitCount() int {
	return b.rowHitCount
}

// GetReadyCommand returns cmd if it is legal to issue this cycle, a
// prerequisite command in its place, or nil if nothing can issue yet.
func (b *BankImpl) GetReadyCommand(cmd *signal.Command) *signal.Command {
	if b.executing != nil {
		return nil
	}

	if b.clk < b.earliestCycle[cmd.Kind] {
		return nil
	}

	switch cmd.Kind {
	case signal.CmdKindRead, signal.CmdKindWrite,
		signal.CmdKindReadPrecharge, signal.CmdKindWritePrecharge:
		if b.openRow != cmd.Row() {
			return b.activatePrereq(cmd)
		}

		return cmd
	case signal.CmdKindPrecharge:
		if b.openRow < 0 {
			return nil
		}

		return cmd
	default:
		return cmd
	}
}

func (b *BankImpl) activatePrereq(cmd *signal.Command) *signal.Command {
	if b.openRow >= 0 {
		return &signal.Command{
			Kind:     signal.CmdKindPrecharge,
			Location: cmd.Location,
			HexAddr:  cmd.HexAddr,
		}
	}

	return &signal.Command{
		Kind:     signal.CmdKindActivate,
		Location: cmd.Location,
		HexAddr:  cmd.HexAddr,
	}
}

// StartCommand records that cmd has issued on this cycle.
func (b *BankImpl) StartCommand(cmd *signal.Command) {
	switch cmd.Kind {
	case signal.CmdKindActivate:
		b.openRow = cmd.Row()
		b.rowHitCount = 0
	case signal.CmdKindPrecharge:
		b.openRow = -1
		b.rowHitCount = 0
	case signal.CmdKindRead, signal.CmdKindWrite:
		b.rowHitCount++
	case signal.CmdKindReadPrecharge, signal.CmdKindWritePrecharge:
		b.rowHitCount++
		b.openRow = -1
		b.rowHitCount = 0
	case signal.CmdKindRefresh, signal.CmdKindRefreshBank:
		b.openRow = -1
		b.rowHitCount = 0
	}

	cycles := b.CmdCycles[cmd.Kind]
	if cycles < 1 {
		cycles = 1
	}

	b.executing = cmd
	b.busyUntil = b.clk + uint64(cycles)
}

// UpdateTiming installs a new earliest-issue cycle for cmdKind if
// cycleNeeded pushes it further out than what is already recorded.
func (b *BankImpl) UpdateTiming(cmdKind signal.CommandKind, cycleNeeded int) {
	earliest := b.clk + uint64(cycleNeeded)
	if earliest > b.earliestCycle[cmdKind] {
		b.earliestCycle[cmdKind] = earliest
	}
}

// Tick advances the bank's clock and completes the executing command once
// its busy time elapses.
func (b *BankImpl) Tick() bool {
	b.clk++

	if b.executing != nil && b.clk >= b.busyUntil {
		b.executing = nil
		return true
	}

	return false
}
