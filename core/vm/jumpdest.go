// (c) 2024, adapted for this module. Grounded on spec.md §9 "Valid-jumpdest
// bitmap: precompute on first reference to a code blob; cache keyed by
// code_hash. One bit per code byte; skip PUSH data spans" and on the
// go-ethereum-family convention of a packed bitvec (observed throughout
// the pack's core/vm analysis.go-style helpers). See the file LICENSE
// for licensing terms.

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// bitvec is a bit vector with one bit per code byte: set means the byte
// at that offset is a valid JUMPDEST.
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8] & (1 << (pos % 8))) != 0
}

// newBitvec scans code once, marking every JUMPDEST (0x5B) byte that is
// not inside a PUSH's immediate data as valid.
func newBitvec(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			bits.set(pc)
			continue
		}
		if op.IsPush() {
			pc += uint64(op.PushBytes())
		}
	}
	return bits
}

// isValidJumpdest reports whether dest names a JUMPDEST byte not inside
// PUSH data (spec.md §4.10).
func isValidJumpdest(bits bitvec, code []byte, dest uint64) bool {
	if dest >= uint64(len(code)) {
		return false
	}
	if OpCode(code[dest]) != JUMPDEST {
		return false
	}
	return bits.codeSegment(dest)
}

// jumpdestCacheSize bounds the number of distinct code blobs whose
// bitvec is retained at once.
const jumpdestCacheSize = 4096

// jumpdestCache memoizes bitvec construction by code hash (spec.md §9).
// hashicorp/golang-lru's non-generic API matches the version pinned by
// the teacher's dependency tree.
type jumpdestCache struct {
	cache *lru.Cache
}

func newJumpdestCache() *jumpdestCache {
	c, err := lru.New(jumpdestCacheSize)
	if err != nil {
		panic(err)
	}
	return &jumpdestCache{cache: c}
}

// get returns the cached bitvec for codeHash, building and storing it
// from code on a miss.
func (jc *jumpdestCache) get(codeHash common.Hash, code []byte) bitvec {
	if v, ok := jc.cache.Get(codeHash); ok {
		return v.(bitvec)
	}
	bits := newBitvec(code)
	jc.cache.Add(codeHash, bits)
	return bits
}
