// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package state

import (
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"

	"github.com/holoevm/evmcore/core/types"
)

// codeCacheBytes bounds the fastcache-backed bytecode store. Bytecode is
// content-addressed by its keccak256 hash, so the cache never needs
// invalidation - a hit is always correct.
const codeCacheBytes = 64 * 1024 * 1024

// MemoryState is the in-memory State implementation: no persistence, no
// trie, just maps guarded by a journal (spec.md §4.4). It is the
// reference implementation this module ships; a production embedder is
// expected to swap in a trie-backed one behind the same interface.
type MemoryState struct {
	mu sync.Mutex

	accounts  map[common.Address]Account
	storage   map[common.Address]map[common.Hash]common.Hash
	transient map[common.Address]map[common.Hash]common.Hash
	code      *fastcache.Cache

	logs                []types.Log
	selfDestructs       mapset.Set[common.Address]
	selfDestructCreated map[common.Address]bool
	accessList          *AccessList

	journal journal

	// snapshots maps an issued SnapshotID to the journal mark recorded at
	// CreateSnapshot time.
	snapshots   map[SnapshotID]int
	nextSnap    SnapshotID
	batchMark   int
	batchOpen   bool
}

// NewMemoryState returns an empty in-memory state.
func NewMemoryState() *MemoryState {
	s := &MemoryState{
		accounts:            make(map[common.Address]Account),
		storage:             make(map[common.Address]map[common.Hash]common.Hash),
		transient:           make(map[common.Address]map[common.Hash]common.Hash),
		code:                fastcache.New(codeCacheBytes),
		selfDestructs:       mapset.NewThreadUnsafeSet[common.Address](),
		selfDestructCreated: make(map[common.Address]bool),
		snapshots:           make(map[SnapshotID]int),
	}
	s.accessList = NewAccessList(&s.journal)
	return s
}

func (s *MemoryState) Exists(addr common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[addr]
	return ok
}

func (s *MemoryState) GetAccount(addr common.Address) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[addr]
	if !ok {
		return Account{}, false
	}
	return acc.Copy(), true
}

func (s *MemoryState) SetAccount(addr common.Address, acc Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.accounts[addr]
	s.journal.append(accountChange{addr: addr, existed: existed, prev: prev})
	s.accounts[addr] = acc
}

func (s *MemoryState) DeleteAccount(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.accounts[addr]
	if !existed {
		return
	}
	s.journal.append(accountChange{addr: addr, existed: true, prev: prev})
	delete(s.accounts, addr)
}

func (s *MemoryState) GetStorage(addr common.Address, key common.Hash) common.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage[addr][key]
}

func (s *MemoryState) SetStorage(addr common.Address, key, value common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.storage[addr]
	prev, hadSlot := m[key]
	s.journal.append(storageChange{addr: addr, key: key, prev: prev, hadSlot: hadSlot})
	if m == nil {
		m = make(map[common.Hash]common.Hash)
		s.storage[addr] = m
	}
	if value == (common.Hash{}) {
		delete(m, key)
	} else {
		m[key] = value
	}
}

func (s *MemoryState) GetCode(hash common.Hash) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hash == EmptyCodeHash {
		return nil
	}
	if v, ok := s.code.HasGet(nil, hash.Bytes()); ok {
		return v
	}
	return nil
}

func (s *MemoryState) SetCode(code []byte) common.Hash {
	if len(code) == 0 {
		return EmptyCodeHash
	}
	hash := crypto.Keccak256Hash(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code.Set(hash.Bytes(), code)
	return hash
}

func (s *MemoryState) GetTransient(addr common.Address, key common.Hash) common.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transient[addr][key]
}

func (s *MemoryState) SetTransient(addr common.Address, key, value common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.transient[addr]
	prev := m[key]
	s.journal.append(transientChange{addr: addr, key: key, prev: prev})
	if m == nil {
		m = make(map[common.Hash]common.Hash)
		s.transient[addr] = m
	}
	if value == (common.Hash{}) {
		delete(m, key)
	} else {
		m[key] = value
	}
}

func (s *MemoryState) CreateSnapshot() SnapshotID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSnap
	s.nextSnap++
	s.snapshots[id] = s.journal.mark()
	return id
}

// CommitSnapshot discards the bookkeeping for id without touching state;
// per spec.md §9 a commit keeps the journal segment reachable by the
// enclosing snapshot/batch rather than replaying it.
func (s *MemoryState) CommitSnapshot(id SnapshotID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
}

func (s *MemoryState) RevertToSnapshot(id SnapshotID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark, ok := s.snapshots[id]
	if !ok {
		return ErrNotFound
	}
	s.journal.revertTo(s, mark)
	delete(s.snapshots, id)
	return nil
}

// BeginBatch opens a batch of operations orthogonal to snapshots (spec.md
// §9 Open Question: batches may span several call frames and their own
// snapshots; only one batch may be open at a time on a given state).
func (s *MemoryState) BeginBatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchMark = s.journal.mark()
	s.batchOpen = true
}

func (s *MemoryState) CommitBatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.batchOpen {
		return ErrResourceError
	}
	s.batchOpen = false
	return nil
}

func (s *MemoryState) RollbackBatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.batchOpen {
		return ErrResourceError
	}
	s.journal.revertTo(s, s.batchMark)
	s.batchOpen = false
	return nil
}

// StateRoot is not computed by the in-memory implementation - there is no
// trie to root. It returns the zero hash; a trie-backed State is expected
// to override this meaningfully.
func (s *MemoryState) StateRoot() common.Hash {
	return common.Hash{}
}

// CommitChanges is a no-op settle point for the in-memory implementation:
// nothing is buffered beyond the journal, which it leaves as it is.
// Present to satisfy State for embedders that do persist.
func (s *MemoryState) CommitChanges() common.Hash {
	return s.StateRoot()
}

func (s *MemoryState) AddLog(log types.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal.append(logAppend{})
	s.logs = append(s.logs, log)
}

func (s *MemoryState) Logs() []types.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Log, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *MemoryState) MarkSelfDestruct(addr common.Address, createdThisTx bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selfDestructs.Contains(addr) {
		s.journal.append(selfDestructMark{addr: addr})
	}
	s.selfDestructs.Add(addr)
	if createdThisTx {
		s.selfDestructCreated[addr] = true
	}
}

func (s *MemoryState) AccessList() *AccessList {
	return s.accessList
}

// EndTransaction applies queued selfdestructs, clears transient storage,
// and resets the access list (spec.md §3 Account, §4 Transient storage,
// §4.5 Access list). Pre-Cancun every marked address is removed; from
// Cancun onward (EIP-6780) only addresses created in the same
// transaction are actually deleted.
func (s *MemoryState) EndTransaction(isCancun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, addr := range s.selfDestructs.ToSlice() {
		if !isCancun || s.selfDestructCreated[addr] {
			delete(s.accounts, addr)
			delete(s.storage, addr)
			log.Debug("account removed at end of transaction", "address", addr, "cancun", isCancun)
		}
	}
	s.selfDestructs.Clear()
	s.selfDestructCreated = make(map[common.Address]bool)

	s.transient = make(map[common.Address]map[common.Hash]common.Hash)
	s.accessList.Reset()
}

var _ State = (*MemoryState)(nil)
