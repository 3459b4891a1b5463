package trans

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/addressmapping"
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

// A SubTransSplitter cuts a Transaction into burst-aligned SubTransactions.
type SubTransSplitter interface {
	Split(t *signal.Transaction)
}

// DefaultSubTransSplitter splits a transaction at burst-unit boundaries:
// every chunk of 2^UnitBits bytes the transaction's address range crosses
// becomes its own SubTransaction, so each maps onto exactly one DRAM
// burst.
type DefaultSubTransSplitter struct {
	UnitBits int

	// AddrMapper resolves each subtransaction's byte address to the bank
	// triple, row and column it targets. A nil AddrMapper leaves
	// Location zeroed, useful for tests that only care about the split
	// boundaries.
	AddrMapper addressmapping.Mapper
}

// NewSubTransSplitter returns a DefaultSubTransSplitter whose burst unit
// is 2^unitBits bytes.
func NewSubTransSplitter(unitBits int) *DefaultSubTransSplitter {
	return &DefaultSubTransSplitter{UnitBits: unitBits}
}

// Split populates t.SubTransactions with one entry per burst-unit chunk
// t's address range crosses.
func (s *DefaultSubTransSplitter) Split(t *signal.Transaction) {
	address := t.GlobalAddress()
	size := t.AccessByteSize()

	unitSize := uint64(1) << uint(s.UnitBits)
	unitMask := unitSize - 1

	end := address + size

	for addr := address; addr < end; {
		chunkEnd := (addr &^ unitMask) + unitSize
		if chunkEnd > end {
			chunkEnd = end
		}

		sub := &signal.SubTransaction{
			Transaction: t,
			Address:     addr,
			ByteSize:    chunkEnd - addr,
		}

		if s.AddrMapper != nil {
			sub.Location = s.AddrMapper.Map(addr)
		}

		if t.IsWrite() {
			offset := addr - address
			sub.Data = sliceOrNil(t.Write.Data, offset, chunkEnd-addr)
		}

		t.SubTransactions = append(t.SubTransactions, sub)

		addr = chunkEnd
	}
}

func sliceOrNil(data []byte, offset, length uint64) []byte {
	if data == nil || offset+length > uint64(len(data)) {
		return nil
	}

	return data[offset : offset+length]
}
