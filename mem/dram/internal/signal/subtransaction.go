package signal

import "github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"

// SubTransaction is the piece of a Transaction that maps onto a single DRAM
// burst: transactions wider than one burst are split into one
// SubTransaction per burst-aligned chunk so that each chunk can be turned
// into its own Command and scheduled independently.
type SubTransaction struct {
	Transaction *Transaction

	Address  uint64
	ByteSize uint64
	Data     []byte

	Location addressmapping.Location

	// Command is set once the command creator has decomposed this
	// subtransaction, so a subtransaction that waits for queue space keeps
	// the same Command across ticks instead of getting a new one each time.
	Command *Command

	Completed bool
}
