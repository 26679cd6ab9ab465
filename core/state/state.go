// (c) 2024, adapted for this module, shaped on the teacher's statedb.go
// wrapper conventions (thin exported methods, doc comments on exported
// surface only). See the file LICENSE for licensing terms.

// Package state implements the world-state access layer: the State
// interface external collaborators (and core/vm) consult, plus an
// in-memory implementation with journaled snapshots, pending batches, an
// EIP-2929 access list, and EIP-1153 transient storage (spec.md §4.4).
package state

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/holoevm/evmcore/core/types"
)

// SnapshotID names a point-in-time of the state (spec.md §3 Snapshot).
// Opaque to callers beyond equality; only this package assigns meaning
// to the underlying int.
type SnapshotID int

//go:generate mockgen -source state.go -destination state_mock.go -package state

// State is the world-state database interface consumed by core/vm
// (spec.md §4.4, §6). Every operation listed there is fallible in spirit
// (returns a zero value on miss rather than panicking) except the three
// explicitly documented as returning an error: RevertToSnapshot,
// CommitBatch, RollbackBatch.
type State interface {
	Exists(addr common.Address) bool
	GetAccount(addr common.Address) (Account, bool)
	SetAccount(addr common.Address, acc Account)
	DeleteAccount(addr common.Address)

	GetStorage(addr common.Address, key common.Hash) common.Hash
	SetStorage(addr common.Address, key, value common.Hash)

	GetCode(hash common.Hash) []byte
	SetCode(code []byte) common.Hash

	GetTransient(addr common.Address, key common.Hash) common.Hash
	SetTransient(addr common.Address, key, value common.Hash)

	CreateSnapshot() SnapshotID
	CommitSnapshot(id SnapshotID)
	RevertToSnapshot(id SnapshotID) error

	BeginBatch()
	CommitBatch() error
	RollbackBatch() error

	StateRoot() common.Hash
	CommitChanges() common.Hash

	// AddLog appends a log entry; reverted along with whatever snapshot
	// was open when it was appended (spec.md §3 Log entry).
	AddLog(log types.Log)
	Logs() []types.Log

	// MarkSelfDestruct records addr for end-of-transaction removal; actual
	// deletion happens in EndTransaction per the fork-gated rule in
	// spec.md §3 Account ("post-Cancun: only if created in same
	// transaction").
	MarkSelfDestruct(addr common.Address, createdThisTx bool)

	// AccessList exposes the EIP-2929 warm/cold tracker scoped to the
	// current transaction (spec.md §4.5).
	AccessList() *AccessList

	// EndTransaction clears transient storage, applies queued
	// selfdestructs, and resets the access list - the boundary spec.md's
	// transient-storage and access-list sections call "end of
	// transaction".
	EndTransaction(isCancun bool)
}
