// Package addressmapping turns a flat system address into the DRAM
// coordinates (channel/rank/bank group/bank/row/column) the command
// scheduler organizes its queues around.
package addressmapping

// Location names a single DRAM bank triple, plus the row and column within
// it that a command targets.
type Location struct {
	Channel   int
	Rank      int
	BankGroup int
	Bank      int
	Row       int
	Column    int
}

// SameBank reports whether l and other name the same (rank, bank group,
// bank) triple, ignoring row and column.
func (l Location) SameBank(other Location) bool {
	return l.Rank == other.Rank &&
		l.BankGroup == other.BankGroup &&
		l.Bank == other.Bank
}

// SameRow reports whether l and other target the same bank triple and row.
func (l Location) SameRow(other Location) bool {
	return l.SameBank(other) && l.Row == other.Row
}
