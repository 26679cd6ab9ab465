// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/params"
)

// Memory is the EVM's byte-addressable, word-granular, quadratic-cost
// growable buffer (spec.md §3, §4.3). Growth and its gas accounting are
// split deliberately: memoryGasCost computes and charges the cost, Resize
// performs the mechanical grow, so "charge before mutate" (spec.md §9) is
// structural rather than convention.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the committed memory size in bytes (MSIZE, spec.md §4.8).
func (m *Memory) Len() int { return len(m.store) }

// Resize grows the backing store to size bytes, a no-op if already that
// large or smaller. Callers must have already charged expansion gas.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// Copy moves length bytes from src to dst within the same buffer,
// handling overlap correctly (MCOPY, EIP-5656). Callers must have already
// charged expansion gas and resized memory to cover both windows.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// Set writes value into the memory region [offset, offset+len).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("invalid memory: store write out of bounds")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val, left-zero-padded/truncated to 32 bytes, at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store write out of bounds")
	}
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// GetCopy returns an independent copy of the region [offset, offset+size).
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy := make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return cpy
	}
	return nil
}

// GetPtr returns a slice view (not a copy) of [offset, offset+size).
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return nil
}

// Data returns the entire backing store. No opcode handler calls it;
// RETURN/REVERT/CALL take their windows through GetCopy.
func (m *Memory) Data() []byte { return m.store }

// Load32 reads the 32-byte word at [offset, offset+32). It does not
// zero-extend: the window must lie inside the committed memory, otherwise
// the slice expression panics.
func (m *Memory) Load32(offset uint64) *uint256.Int {
	v := new(uint256.Int)
	v.SetBytes(m.store[offset : offset+32])
	return v
}

// words returns ceil(size/32), the unit memory expansion is priced in.
func words(size uint64) uint64 {
	return (size + 31) / 32
}

// memoryGasCost computes the cost to expand memory from its current size
// to newSize bytes, per spec.md §3:
// expansion_cost(old_words, new_words) = 3*Δw + (new_w² - old_w²)/512.
// Returns 0 if no expansion is needed. The first argument is the memory's
// current byte length.
func memoryGasCost(curLen uint64, newSize uint64) (uint64, error) {
	if newSize == 0 {
		return 0, nil
	}
	// Overflow check: newSize comes from offset+len computed from u256
	// stack operands elsewhere; guard the word-count math here too.
	if newSize > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	newSizeWords := words(newSize)
	newSizeRounded := newSizeWords * 32
	if newSizeRounded <= curLen {
		return 0, nil
	}
	newCost := newSizeWords*newSizeWords/params.QuadCoeffDiv + params.MemoryGas*newSizeWords
	curWords := words(curLen)
	curCost := curWords*curWords/params.QuadCoeffDiv + params.MemoryGas*curWords
	if newCost < curCost {
		// Should not happen given the rounding above, but guard anyway.
		return 0, nil
	}
	return newCost - curCost, nil
}
