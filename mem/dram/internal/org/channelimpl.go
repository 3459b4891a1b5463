package org

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

// ChannelImpl is the default Channel implementation: a grid of Banks plus
// the Timing tables that describe how a just-issued command on one bank
// delays commands on its neighbors.
type ChannelImpl struct {
	Banks  Banks
	Timing Timing

	// RefreshIntervalCycles is tREFI: the number of cycles between two
	// refreshes of the same rank.
	RefreshIntervalCycles int

	clk               uint64
	nextRefreshRank   int
	lastRefreshCycle  []uint64
	refreshInProgress bool
}

func (c *ChannelImpl) init() {
	if c.lastRefreshCycle != nil {
		return
	}

	c.lastRefreshCycle = make([]uint64, c.Banks.NumRanks())
}

// GetReadyCommand asks the bank cmd targets whether cmd may issue now.
func (c *ChannelImpl) GetReadyCommand(cmd *signal.Command) *signal.Command {
	if cmd.IsRefresh() {
		return c.getReadyRefresh(cmd)
	}

	bank := c.Banks.GetBank(cmd.Rank(), cmd.BankGroup(), cmd.Bank())

	return bank.GetReadyCommand(cmd)
}

// getReadyRefresh checks every bank a REFRESH/REFRESH_BANK touches for an
// open row and returns a PRECHARGE for the first one it finds; the refresh
// itself is returned once none of them still needs a PRECHARGE first. Bank
// busy state and timing constraints are not consulted.
func (c *ChannelImpl) getReadyRefresh(cmd *signal.Command) *signal.Command {
	for _, loc := range c.locationsForRefresh(cmd) {
		bank := c.Banks.GetBank(loc.Rank, loc.BankGroup, loc.Bank)
		if bank.OpenRow() >= 0 {
			return &signal.Command{
				Kind:     signal.CmdKindPrecharge,
				Location: loc,
				HexAddr:  cmd.HexAddr,
			}
		}
	}

	return cmd
}

// locationsForRefresh lists every bank a REFRESH or REFRESH_BANK command
// touches.
func (c *ChannelImpl) locationsForRefresh(cmd *signal.Command) []addressmapping.Location {
	if cmd.Kind == signal.CmdKindRefreshBank {
		return []addressmapping.Location{cmd.Location}
	}

	var locs []addressmapping.Location

	for g := 0; g < c.Banks.NumBankGroups(); g++ {
		for k := 0; k < c.Banks.NumBanks(); k++ {
			locs = append(locs, addressmapping.Location{
				Channel:   cmd.Location.Channel,
				Rank:      cmd.Rank(),
				BankGroup: g,
				Bank:      k,
			})
		}
	}

	return locs
}

// StartCommand applies cmd's state change to every bank it targets.
func (c *ChannelImpl) StartCommand(cmd *signal.Command) {
	if cmd.IsRefresh() {
		for _, loc := range c.locationsForRefresh(cmd) {
			bank := c.Banks.GetBank(loc.Rank, loc.BankGroup, loc.Bank)
			bank.StartCommand(cmd)
		}

		c.init()
		c.lastRefreshCycle[cmd.Rank()] = c.clk

		return
	}

	bank := c.Banks.GetBank(cmd.Rank(), cmd.BankGroup(), cmd.Bank())
	bank.StartCommand(cmd)
}

// UpdateTiming fans out the timing consequences of a just-issued command to
// its own bank and every sibling the Timing tables describe.
func (c *ChannelImpl) UpdateTiming(cmd *signal.Command) {
	for _, entry := range c.Timing.SameBank[cmd.Kind] {
		bank := c.Banks.GetBank(cmd.Rank(), cmd.BankGroup(), cmd.Bank())
		bank.UpdateTiming(entry.NextCmdKind, entry.MinCycleInBetween)
	}

	for _, entry := range c.Timing.OtherBanksInBankGroup[cmd.Kind] {
		for k := 0; k < c.Banks.NumBanks(); k++ {
			if k == cmd.Bank() {
				continue
			}

			bank := c.Banks.GetBank(cmd.Rank(), cmd.BankGroup(), k)
			bank.UpdateTiming(entry.NextCmdKind, entry.MinCycleInBetween)
		}
	}

	for _, entry := range c.Timing.SameRank[cmd.Kind] {
		for g := 0; g < c.Banks.NumBankGroups(); g++ {
			if g == cmd.BankGroup() {
				continue
			}

			for k := 0; k < c.Banks.NumBanks(); k++ {
				bank := c.Banks.GetBank(cmd.Rank(), g, k)
				bank.UpdateTiming(entry.NextCmdKind, entry.MinCycleInBetween)
			}
		}
	}

	for _, entry := range c.Timing.OtherRanks[cmd.Kind] {
		for r := 0; r < c.Banks.NumRanks(); r++ {
			if r == cmd.Rank() {
				continue
			}

			for g := 0; g < c.Banks.NumBankGroups(); g++ {
				for k := 0; k < c.Banks.NumBanks(); k++ {
					bank := c.Banks.GetBank(r, g, k)
					bank.UpdateTiming(entry.NextCmdKind, entry.MinCycleInBetween)
				}
			}
		}
	}
}

// OpenRow returns the row open on the named bank, or -1.
func (c *ChannelImpl) OpenRow(rank, bankGroup, bank int) int {
	return c.Banks.GetBank(rank, bankGroup, bank).OpenRow()
}

// RowHitCount returns the named bank's consecutive row-hit count.
func (c *ChannelImpl) RowHitCount(rank, bankGroup, bank int) int {
	return c.Banks.GetBank(rank, bankGroup, bank).RowHitCount()
}

// PendingRefCommand returns an all-bank REFRESH for the next rank due for
// refresh, or nil if no rank has reached its refresh interval yet.
func (c *ChannelImpl) PendingRefCommand() *signal.Command {
	c.init()

	if c.RefreshIntervalCycles <= 0 {
		return nil
	}

	numRanks := c.Banks.NumRanks()

	for i := 0; i < numRanks; i++ {
		rank := (c.nextRefreshRank + i) % numRanks

		if c.clk-c.lastRefreshCycle[rank] >= uint64(c.RefreshIntervalCycles) {
			c.nextRefreshRank = (rank + 1) % numRanks

			return &signal.Command{
				Kind:     signal.CmdKindRefresh,
				Location: addressmapping.Location{Rank: rank},
			}
		}
	}

	return nil
}

// Tick advances every bank's clock by one cycle.
func (c *ChannelImpl) Tick() bool {
	c.clk++

	madeProgress := false

	for r := 0; r < c.Banks.NumRanks(); r++ {
		for g := 0; g < c.Banks.NumBankGroups(); g++ {
			for k := 0; k < c.Banks.NumBanks(); k++ {
				if c.Banks.GetBank(r, g, k).Tick() {
					madeProgress = true
				}
			}
		}
	}

	return madeProgress
}
