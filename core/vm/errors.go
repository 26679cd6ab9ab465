// Copyright 2015 The go-ethereum Authors
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

import "errors"

// Sentinel errors returned by opcode handlers and the dispatcher. Each one
// except ErrExecutionReverted consumes all remaining gas in the frame that
// raised it; ErrDepthExceeded and ErrInsufficientBalance are the two
// non-fatal exceptions called out in spec.md §7 — CALL/CREATE observe them
// as "push 0", not as a frame-consuming error.
var (
	ErrOutOfGas             = errors.New("out of gas")
	ErrStackUnderflow       = errors.New("stack underflow")
	ErrStackOverflow        = errors.New("stack overflow")
	ErrInvalidJump          = errors.New("invalid jump destination")
	ErrInvalidOpcode        = errors.New("invalid opcode")
	ErrWriteProtection      = errors.New("write protection")
	ErrDepthExceeded        = errors.New("max call depth exceeded")
	ErrInsufficientBalance  = errors.New("insufficient balance for transfer")
	ErrExecutionReverted    = errors.New("execution reverted")
	ErrContractAddrCollision = errors.New("contract address collision")
	ErrMaxInitCodeSizeExceeded = errors.New("max initcode size exceeded")
	ErrMaxCodeSizeExceeded  = errors.New("max code size exceeded")
	ErrInvalidCodeEntry     = errors.New("invalid code: must not begin with 0xef")
	ErrGasUintOverflow      = errors.New("gas uint64 overflow")
	ErrNonceUintOverflow    = errors.New("nonce uint64 overflow")
	ErrReturnDataOutOfBounds = errors.New("return data out of bounds")
)

// errStopToken is returned internally by opcode handlers to unwind the
// interpreter loop on a normal STOP/RETURN/SELFDESTRUCT without treating
// the halt as failure (REVERT returns ErrExecutionReverted instead). It is
// never surfaced to callers.
var errStopToken = errors.New("stop token")
