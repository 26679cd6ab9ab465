// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.
//
// Implements spec.md §9's design note: "implement snapshots as a
// write-ahead journal of inverse operations keyed by snapshot id. commit
// discards the journal segment; revert replays it in reverse."

package state

import (
	"github.com/ethereum/go-ethereum/common"
)

// journalEntry is an inverse operation: applying revert undoes exactly the
// mutation that produced it.
type journalEntry interface {
	revert(s *MemoryState)
}

type (
	accountChange struct {
		addr    common.Address
		existed bool
		prev    Account
	}
	storageChange struct {
		addr     common.Address
		key      common.Hash
		prev     common.Hash
		hadSlot  bool
	}
	transientChange struct {
		addr common.Address
		key  common.Hash
		prev common.Hash
	}
	logAppend struct{}
	selfDestructMark struct {
		addr common.Address
	}
	addressWarmed struct {
		addr common.Address
	}
	slotWarmed struct {
		addr common.Address
		slot common.Hash
	}
)

func (c accountChange) revert(s *MemoryState) {
	if c.existed {
		s.accounts[c.addr] = c.prev
	} else {
		delete(s.accounts, c.addr)
	}
}

func (c storageChange) revert(s *MemoryState) {
	m := s.storage[c.addr]
	if m == nil {
		return
	}
	if c.hadSlot {
		m[c.key] = c.prev
	} else {
		delete(m, c.key)
	}
}

func (c transientChange) revert(s *MemoryState) {
	m := s.transient[c.addr]
	if m == nil {
		return
	}
	if c.prev == (common.Hash{}) {
		delete(m, c.key)
	} else {
		m[c.key] = c.prev
	}
}

func (logAppend) revert(s *MemoryState) {
	s.logs = s.logs[:len(s.logs)-1]
}

func (c selfDestructMark) revert(s *MemoryState) {
	s.selfDestructs.Remove(c.addr)
	delete(s.selfDestructCreated, c.addr)
}

func (c addressWarmed) revert(s *MemoryState) {
	s.accessList.addresses.Remove(c.addr)
}

func (c slotWarmed) revert(s *MemoryState) {
	s.accessList.slots.Remove(slotKey{c.addr, c.slot})
}

// journal is the append-only log of inverse operations backing every
// MemoryState mutation. Snapshots and batches both address into it by
// recording its length at creation time.
type journal struct {
	entries []journalEntry
}

func (j *journal) append(e journalEntry) {
	j.entries = append(j.entries, e)
}

func (j *journal) mark() int {
	return len(j.entries)
}

// revertTo replays entries[mark:] in reverse order against s, then
// truncates the journal to mark.
func (j *journal) revertTo(s *MemoryState, mark int) {
	for i := len(j.entries) - 1; i >= mark; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:mark]
}

// discard drops the journal segment from mark onward without replaying
// it. Nothing calls it: CommitSnapshot and CommitBatch leave committed
// entries in the journal, where an enclosing snapshot can still revert
// them.
func (j *journal) discard(mark int) {
	j.entries = j.entries[:mark]
}
