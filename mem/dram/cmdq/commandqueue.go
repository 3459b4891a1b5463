// Package cmdq implements the command-scheduling core: per-channel command
// queues, the row-hit/precharge arbitration that picks which queued
// command may issue, the adaptive page-policy arbiter, and the refresh
// interlock that drains queues around a pending refresh.
package cmdq

import (
	"fmt"

	"github.com/3p1phany/myDRAMsim/mem/dram/internal/signal"
)

// QueueStructure selects how commands are grouped into queues.
type QueueStructure int

// The two supported queue groupings.
const (
	// PerBank gives every (rank, bank group, bank) triple its own queue.
	PerBank QueueStructure = iota
	// PerRank gives every rank a single shared queue across all its banks.
	PerRank
)

// RowBufPolicy is the row-buffer management policy a queue operates under.
type RowBufPolicy int

// The four row-buffer policies a queue can hold.
const (
	OpenPage RowBufPolicy = iota
	ClosePage
	SmartClose
	// DPM is a channel-level mode, never held by an individual queue: it
	// seeds every queue at OpenPage and lets the PagePolicyArbiter move
	// each one between OpenPage and SmartClose from then on.
	DPM
)

// ConfigError reports that the command queue was built with an
// unsupported configuration. It is fatal at construction time.
type ConfigError struct {
	Field string
	Value interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cmdq: unsupported %s: %v", e.Field, e.Value)
}

// CommandMissingError reports that eraseRW could not find the command it
// was asked to remove: an invariant the whole scheduler depends on (every
// command returned for issue originated in a queue) has been violated.
type CommandMissingError struct {
	HexAddr uint64
	Kind    signal.CommandKind
}

func (e *CommandMissingError) Error() string {
	return fmt.Sprintf(
		"cmdq: command missing from its queue: hex_addr=%#x kind=%s",
		e.HexAddr, e.Kind)
}

// Queue is one command queue: an ordered, insertion-order sequence of
// pending commands, all mapping to the same bank triple (PerBank) or rank
// (PerRank).
type Queue []*signal.Command

// CommandQueue is the scheduling core's public surface: the set of
// per-channel queues, the ready picker, the page-policy arbiter and the
// refresh interlock, exposed as a single interface so a channel can be
// wired against any implementation.
type CommandQueue interface {
	CanAccept(cmd *signal.Command) bool
	Accept(cmd *signal.Command) bool
	QueueEmpty() bool
	QueueUsage() int
	GetQueueIndex(rank, bankGroup, bank int) int
	GetCommandToIssue() *signal.Command
	FinishRefresh(ref *signal.Command) *signal.Command
	ArbitratePagePolicy()
}

// Channel is the read-only timing oracle the command queue consults: it
// answers whether a command is ready, reports per-bank state, and hands
// back the next refresh command that is due.
type Channel interface {
	GetReadyCommand(cmd *signal.Command) *signal.Command
	OpenRow(rank, bankGroup, bank int) int
	RowHitCount(rank, bankGroup, bank int) int
	PendingRefCommand() *signal.Command
}

// ExternalBufferView lets the command queue count row-hit siblings that
// live outside its own queues, in the controller's read queue and write
// buffer, without giving it any ability to mutate those buffers.
type ExternalBufferView interface {
	// PendingWritesTo returns the number of buffered writes targeting the
	// given bank triple and row.
	PendingWritesTo(rank, bankGroup, bank, row int) int
	// PendingReadsTo returns the number of buffered reads targeting the
	// given bank triple and row.
	PendingReadsTo(rank, bankGroup, bank, row int) int
}

// StatsSink receives the scheduler's observability counters.
type StatsSink interface {
	Increment(name string)
}
