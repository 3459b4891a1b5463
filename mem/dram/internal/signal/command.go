// Package signal defines the DRAM-level vocabulary the command scheduler
// operates on: Commands issued to a channel, and the Transactions and
// SubTransactions they are decomposed from.
package signal

import "github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"

// CommandKind identifies the DRAM command a Command carries.
type CommandKind int

// The zero value, CmdKindInvalid, is the sentinel returned wherever the
// scheduler has nothing legal to issue.
const (
	CmdKindInvalid CommandKind = iota
	CmdKindRead
	CmdKindWrite
	CmdKindReadPrecharge
	CmdKindWritePrecharge
	CmdKindActivate
	CmdKindPrecharge
	CmdKindRefresh
	CmdKindRefreshBank
)

func (k CommandKind) String() string {
	switch k {
	case CmdKindRead:
		return "READ"
	case CmdKindWrite:
		return "WRITE"
	case CmdKindReadPrecharge:
		return "READ_PRECHARGE"
	case CmdKindWritePrecharge:
		return "WRITE_PRECHARGE"
	case CmdKindActivate:
		return "ACTIVATE"
	case CmdKindPrecharge:
		return "PRECHARGE"
	case CmdKindRefresh:
		return "REFRESH"
	case CmdKindRefreshBank:
		return "REFRESH_BANK"
	default:
		return "INVALID"
	}
}

// Command is one DRAM-level operation targeting a specific bank triple.
// HexAddr identifies the transaction the command was decomposed from and
// is used to find the matching queue entry once the command is ready to
// issue; it is not a real address.
type Command struct {
	ID       string
	Kind     CommandKind
	Location addressmapping.Location
	HexAddr  uint64

	// InducedPrecharge marks an R/W command whose row-hit accounting has
	// already been attributed to the PRECHARGE that will close its row,
	// so first_ready_in_queue must not double count it.
	InducedPrecharge bool
}

// IsValid reports whether the command carries a concrete kind.
func (c *Command) IsValid() bool {
	return c != nil && c.Kind != CmdKindInvalid
}

// IsRead reports whether the command is a plain or auto-precharge read.
func (c *Command) IsRead() bool {
	return c.Kind == CmdKindRead || c.Kind == CmdKindReadPrecharge
}

// IsWrite reports whether the command is a plain or auto-precharge write.
func (c *Command) IsWrite() bool {
	return c.Kind == CmdKindWrite || c.Kind == CmdKindWritePrecharge
}

// IsReadWrite reports whether the command transfers data, i.e. it is not a
// pure ACTIVATE/PRECHARGE/REFRESH.
func (c *Command) IsReadWrite() bool {
	return c.IsRead() || c.IsWrite()
}

// IsRefresh reports whether the command is an all-bank or per-bank refresh.
func (c *Command) IsRefresh() bool {
	return c.Kind == CmdKindRefresh || c.Kind == CmdKindRefreshBank
}

// Rank, BankGroup, Bank, Row and Column read the command's target location.
func (c *Command) Rank() int      { return c.Location.Rank }
func (c *Command) BankGroup() int { return c.Location.BankGroup }
func (c *Command) Bank() int      { return c.Location.Bank }
func (c *Command) Row() int       { return c.Location.Row }
func (c *Command) Column() int    { return c.Location.Column }
func (c *Command) Channel() int   { return c.Location.Channel }

// AutoPrechargeUpgrade returns the auto-precharge form of a plain READ or
// WRITE command kind, or kind unchanged if it is neither.
func AutoPrechargeUpgrade(kind CommandKind) CommandKind {
	switch kind {
	case CmdKindRead:
		return CmdKindReadPrecharge
	case CmdKindWrite:
		return CmdKindWritePrecharge
	default:
		return kind
	}
}

// NonPrechargeForm returns the plain READ/WRITE kind that an auto-precharge
// kind was upgraded from, or kind unchanged if it already is one.
func NonPrechargeForm(kind CommandKind) CommandKind {
	switch kind {
	case CmdKindReadPrecharge:
		return CmdKindRead
	case CmdKindWritePrecharge:
		return CmdKindWrite
	default:
		return kind
	}
}
