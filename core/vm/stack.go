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
	"sync"

	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/params"
)

// stackPool recycles the backing slice of Stack values across frames; EVM
// calls nest and return at high frequency, so this keeps the hot loop from
// allocating a fresh backing slice per CALL/CREATE. Pooled slices start at
// capacity 16 and grow on demand.
var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is the EVM's 1024-slot LIFO of 256-bit words (spec.md §3, §4.2).
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

func (st *Stack) Len() int {
	return len(st.data)
}

func (st *Stack) Data() []uint256.Int {
	return st.data
}

// push appends a value to the top of the stack. Callers must have already
// validated against StackLimit via the dispatcher's static precondition
// check (spec.md §4.6); this is the "unsafe" variant.
func (st *Stack) push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns the n-th deep value without popping (0 = top).
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-n-1]
}

func (st *Stack) swap(n int) {
	st.data[st.len()-n], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n]
}

func (st *Stack) len() int { return len(st.data) }

func (st *Stack) dup(n int) {
	st.push(&st.data[st.len()-n])
}

// PushSafe validates capacity before writing, for callers outside the
// dispatcher whose static precondition check has not already run. Nothing
// in this module calls it.
func (st *Stack) PushSafe(d *uint256.Int) error {
	if len(st.data) >= params.StackLimit {
		return ErrStackOverflow
	}
	st.push(d)
	return nil
}

// PopSafe validates non-emptiness before reading.
func (st *Stack) PopSafe() (uint256.Int, error) {
	if len(st.data) < 1 {
		return uint256.Int{}, ErrStackUnderflow
	}
	return st.pop(), nil
}
