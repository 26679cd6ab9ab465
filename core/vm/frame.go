// (c) 2024, adapted for this module, grounded on the teacher family's
// contract.go (per DioneProtocol-coreth's interpreter.go references to
// Contract.Code/Gas/UseGas/GetOp/Caller/Address). See the file LICENSE
// for licensing terms.

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ContractRef is anything that can appear as the caller or callee of a
// Frame - an externally-owned account stub or another Frame.
type ContractRef interface {
	Address() common.Address
}

// AccountRef implements ContractRef for externally-owned accounts with
// no associated Frame.
type AccountRef common.Address

func (ar AccountRef) Address() common.Address { return common.Address(ar) }

// Frame is the per-call execution context named in spec.md §3: code, PC,
// gas, stack, memory, return buffer, caller, callee, value, input, static
// flag, depth, create flag. It owns its Stack and Memory for the
// duration of one Interpreter.Run.
type Frame struct {
	caller ContractRef
	self   ContractRef

	Code     []byte
	CodeHash common.Hash
	jumpdest *bitvec // attached by EVM.runFrame before Run; cached by code hash for deployed code

	Input []byte

	Gas   uint64
	value *uint256.Int

	IsStatic bool
	IsCreate bool
	Depth    int

	Stack  *Stack
	Memory *Memory

	// ReturnData is the last sub-call's return data, exposed via
	// RETURNDATASIZE/RETURNDATACOPY.
	ReturnData []byte
}

// NewFrame constructs a root or nested call frame.
func NewFrame(caller, self ContractRef, code []byte, codeHash common.Hash, value *uint256.Int, gas uint64) *Frame {
	if value == nil {
		value = new(uint256.Int)
	}
	return &Frame{
		caller:   caller,
		self:     self,
		Code:     code,
		CodeHash: codeHash,
		value:    value,
		Gas:      gas,
		Stack:    newstack(),
		Memory:   NewMemory(),
	}
}

func (f *Frame) Caller() common.Address { return f.caller.Address() }
func (f *Frame) Address() common.Address { return f.self.Address() }
func (f *Frame) Value() *uint256.Int      { return f.value }

// CallerRef and SelfRef expose the raw ContractRef, letting a nested
// DELEGATECALL forward its own caller identity unchanged.
func (f *Frame) CallerRef() ContractRef { return f.caller }
func (f *Frame) SelfRef() ContractRef   { return f.self }

// UseGas deducts amount from the frame's remaining gas, returning false
// (and leaving gas untouched) if amount exceeds what remains.
func (f *Frame) UseGas(amount uint64) bool {
	if f.Gas < amount {
		return false
	}
	f.Gas -= amount
	return true
}

// RefundGas credits amount back, used when a sub-call returns unused gas.
func (f *Frame) RefundGas(amount uint64) {
	f.Gas += amount
}

// GetOp returns the opcode at pc, or STOP past the end of code (the
// implicit trailing STOP every EVM program has).
func (f *Frame) GetOp(pc uint64) OpCode {
	if pc < uint64(len(f.Code)) {
		return OpCode(f.Code[pc])
	}
	return STOP
}

// validJumpdest reports whether dest is a JUMPDEST not embedded in PUSH
// data, consulting the bitvec EVM.runFrame attached before Run began.
func (f *Frame) validJumpdest(dest uint64) bool {
	if f.jumpdest == nil {
		return false
	}
	return isValidJumpdest(*f.jumpdest, f.Code, dest)
}

// Release returns the frame's Stack to its pool. Memory is not pooled -
// its backing array size varies too widely to make pooling worthwhile.
func (f *Frame) Release() {
	returnStack(f.Stack)
}
