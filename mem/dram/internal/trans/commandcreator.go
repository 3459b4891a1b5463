// Package trans turns a Transaction into the SubTransactions the command
// scheduler queues, and back-fills each SubTransaction with the Command
// that will actually be issued for it.
package trans

import (
	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
	"github.com/3p1phany/myDRAMsim/sim/timing/id"
)

// A CommandCreator decomposes a SubTransaction into the Command that will
// carry it to DRAM. The two implementations below differ only in whether
// every command they create is plain or in its auto-precharge form;
// the queue-level SMART_CLOSE upgrade in cmdq still applies independently
// on top of whichever form this creator hands it.
type CommandCreator interface {
	Create(subTrans *signal.SubTransaction) *signal.Command
}

func kindFor(t *signal.Transaction) signal.CommandKind {
	if t.IsRead() {
		return signal.CmdKindRead
	}

	return signal.CmdKindWrite
}

// OpenPageCommandCreator creates plain READ/WRITE commands, leaving the
// row open for a later row hit.
type OpenPageCommandCreator struct{}

// Create builds the plain-form command for subTrans.
func (OpenPageCommandCreator) Create(subTrans *signal.SubTransaction) *signal.Command {
	return &signal.Command{
		ID:       id.Generate(),
		Kind:     kindFor(subTrans.Transaction),
		Location: subTrans.Location,
		HexAddr:  subTrans.Address,
	}
}

// ClosePageCommandCreator creates auto-precharge commands, closing the
// row as soon as the transfer completes.
type ClosePageCommandCreator struct{}

// Create builds the auto-precharge command for subTrans.
func (ClosePageCommandCreator) Create(subTrans *signal.SubTransaction) *signal.Command {
	return &signal.Command{
		ID:       id.Generate(),
		Kind:     signal.AutoPrechargeUpgrade(kindFor(subTrans.Transaction)),
		Location: subTrans.Location,
		HexAddr:  subTrans.Address,
	}
}
