package signal

import "github.com/3p1phany/myDRAMsim/mem/mem"

// TransactionType distinguishes a read transaction from a write.
type TransactionType int

// The two transaction types a memory controller accepts.
const (
	TransactionTypeRead TransactionType = iota
	TransactionTypeWrite
)

// Transaction is the state associated with servicing one ReadReq or
// WriteReq end to end: from arrival, through the SubTransactions it is
// split into, to the response sent back to the requester.
type Transaction struct {
	Type  TransactionType
	Read  *mem.ReadReq
	Write *mem.WriteReq

	InternalAddress uint64
	SubTransactions []*SubTransaction
}

// GlobalAddress returns the system address the transaction accesses.
func (t *Transaction) GlobalAddress() uint64 {
	if t.Type == TransactionTypeRead {
		return t.Read.Address
	}

	return t.Write.Address
}

// AccessByteSize returns the number of bytes the transaction accesses.
func (t *Transaction) AccessByteSize() uint64 {
	if t.Type == TransactionTypeRead {
		return t.Read.AccessByteSize
	}

	return uint64(len(t.Write.Data))
}

// IsRead reports whether the transaction is a read.
func (t *Transaction) IsRead() bool {
	return t.Type == TransactionTypeRead
}

// IsWrite reports whether the transaction is a write.
func (t *Transaction) IsWrite() bool {
	return t.Type == TransactionTypeWrite
}

// IsCompleted reports whether every subtransaction has finished.
func (t *Transaction) IsCompleted() bool {
	for _, st := range t.SubTransactions {
		if !st.Completed {
			return false
		}
	}

	return true
}
