// (c) 2024, adapted for this module, grounded on the DioneProtocol-coreth
// interpreter.go dispatch loop and jump-table shape observed throughout
// the go-ethereum family. See the file LICENSE for licensing terms.

package vm

import "github.com/holoevm/evmcore/params"

// executionFunc is an opcode's handler body. It receives the running pc
// (mutable so JUMP/JUMPI/PUSH_n can redirect or skip it) and the active
// Interpreter/Frame, and returns the frame's return-data buffer plus an
// error. A nil error means "fall through to pc++"; errStopToken and
// ErrExecutionReverted are the two halt sentinels the interpreter
// recognizes as non-fatal (spec.md §4.6 Continue/Stop/Return/Revert);
// every other error is fatal and consumes all remaining gas.
type executionFunc func(pc *uint64, interpreter *Interpreter, frame *Frame) ([]byte, error)

// gasFunc computes an opcode's dynamic gas charge, given the already-
// resized memory and prior-to-pop stack (spec.md §4.6).
type gasFunc func(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error)

// memorySizeFunc computes the memory size (in bytes) an opcode's
// operands require, from the stack before it is popped.
type memorySizeFunc func(stack *Stack) (size uint64, overflow bool)

// operation is one jump-table entry: {handler, base gas, min stack
// depth, max stack depth} per spec.md §4.6, plus the optional dynamic
// gas/memory-size calculators most opcodes with variable cost need.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
}

// JumpTable is the 256-entry static dispatch table (spec.md §9 "flat
// array of 256 records"). Unpopulated entries default to the zero
// operation, which the interpreter treats as InvalidOpcode.
type JumpTable [256]*operation

func minStack(pops, push int) int { return pops }
func maxStack(pops, push int) int { return int(params.StackLimit) - push + pops }

// newFrontierInstructionSet is the base table every later fork's table is
// derived from by copying and patching individual entries - the same
// technique go-ethereum-family interpreters use to avoid repeating 256
// entries per fork.
func newFrontierInstructionSet() JumpTable {
	var tbl JumpTable
	tbl[STOP] = &operation{execute: opStop, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}
	tbl[ADD] = &operation{execute: opAdd, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MUL] = &operation{execute: opMul, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SUB] = &operation{execute: opSub, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[DIV] = &operation{execute: opDiv, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SDIV] = &operation{execute: opSdiv, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MOD] = &operation{execute: opMod, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SMOD] = &operation{execute: opSmod, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ADDMOD] = &operation{execute: opAddmod, constantGas: params.GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[MULMOD] = &operation{execute: opMulmod, constantGas: params.GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[EXP] = &operation{execute: opExp, constantGas: params.GasSlowStep, dynamicGas: gasExpFrontier, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: params.GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[LT] = &operation{execute: opLt, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[GT] = &operation{execute: opGt, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SLT] = &operation{execute: opSlt, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SGT] = &operation{execute: opSgt, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EQ] = &operation{execute: opEq, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ISZERO] = &operation{execute: opIszero, constantGas: params.GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[AND] = &operation{execute: opAnd, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[OR] = &operation{execute: opOr, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[XOR] = &operation{execute: opXor, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[NOT] = &operation{execute: opNot, constantGas: params.GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BYTE] = &operation{execute: opByte, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[KECCAK256] = &operation{execute: opKeccak256, constantGas: params.Keccak256Gas, dynamicGas: gasKeccak256, minStack: minStack(2, 1), maxStack: maxStack(2, 1), memorySize: memoryKeccak256}

	tbl[ADDRESS] = &operation{execute: opAddress, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[BALANCE] = &operation{execute: opBalance, constantGas: params.GasExtStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[ORIGIN] = &operation{execute: opOrigin, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLER] = &operation{execute: opCaller, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLVALUE] = &operation{execute: opCallValue, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATALOAD] = &operation{execute: opCallDataLoad, constantGas: params.GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CALLDATASIZE] = &operation{execute: opCallDataSize, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATACOPY] = &operation{execute: opCallDataCopy, constantGas: params.GasFastestStep, dynamicGas: gasCallDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCallDataCopy}
	tbl[CODESIZE] = &operation{execute: opCodeSize, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CODECOPY] = &operation{execute: opCodeCopy, constantGas: params.GasFastestStep, dynamicGas: gasCodeCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCodeCopy}
	tbl[GASPRICE] = &operation{execute: opGasprice, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[EXTCODESIZE] = &operation{execute: opExtCodeSize, constantGas: params.GasExtStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[EXTCODECOPY] = &operation{execute: opExtCodeCopy, constantGas: params.GasExtStep, dynamicGas: gasExtCodeCopy, minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryExtCodeCopy}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: params.GasFastestStep, dynamicGas: gasReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryReturnDataCopy}

	tbl[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: params.GasExtStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[COINBASE] = &operation{execute: opCoinbase, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[NUMBER] = &operation{execute: opNumber, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[DIFFICULTY] = &operation{execute: opDifficulty, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GASLIMIT] = &operation{execute: opGasLimit, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}

	tbl[POP] = &operation{execute: opPop, constantGas: params.GasQuickStep, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[MLOAD] = &operation{execute: opMload, constantGas: params.GasFastestStep, dynamicGas: gasMLoad, minStack: minStack(1, 1), maxStack: maxStack(1, 1), memorySize: memoryMLoad}
	tbl[MSTORE] = &operation{execute: opMstore, constantGas: params.GasFastestStep, dynamicGas: gasMStore, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMStore}
	tbl[MSTORE8] = &operation{execute: opMstore8, constantGas: params.GasFastestStep, dynamicGas: gasMStore8, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMStore8}
	tbl[SLOAD] = &operation{execute: opSload, constantGas: params.GasQuickStep, dynamicGas: gasSLoadFrontier, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStoreFrontier, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[JUMP] = &operation{execute: opJump, constantGas: params.GasMidStep, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[JUMPI] = &operation{execute: opJumpi, constantGas: params.GasSlowStep, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[PC] = &operation{execute: opPc, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[MSIZE] = &operation{execute: opMsize, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GAS] = &operation{execute: opGas, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[JUMPDEST] = &operation{execute: opJumpdest, constantGas: params.JumpdestGas, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}

	for i := 1; i <= 32; i++ {
		tbl[int(PUSH1)+i-1] = &operation{execute: opPush(i), constantGas: params.GasFastestStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	}
	for i := 1; i <= 16; i++ {
		tbl[int(DUP1)+i-1] = &operation{execute: opDup(i), constantGas: params.GasFastestStep, minStack: minStack(i, i+1), maxStack: maxStack(i, i+1)}
		tbl[int(SWAP1)+i-1] = &operation{execute: opSwap(i), constantGas: params.GasFastestStep, minStack: minStack(i+1, i+1), maxStack: maxStack(i+1, i+1)}
	}
	for i := 0; i <= 4; i++ {
		tbl[int(LOG0)+i] = &operation{execute: opLog(i), dynamicGas: makeGasLog(uint64(i)), minStack: minStack(2+i, 0), maxStack: maxStack(2+i, 0), memorySize: memoryLog}
	}

	tbl[CREATE] = &operation{execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasCreate, minStack: minStack(3, 1), maxStack: maxStack(3, 1), memorySize: memoryCreate}
	tbl[CALL] = &operation{execute: opCall, constantGas: params.CallGasFrontier, dynamicGas: gasCall, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[CALLCODE] = &operation{execute: opCallCode, constantGas: params.CallGasFrontier, dynamicGas: gasCallCode, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[RETURN] = &operation{execute: opReturn, memorySize: memoryReturn, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[INVALID] = &operation{execute: opInvalid, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}
	tbl[SELFDESTRUCT] = &operation{execute: opSelfdestruct, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	return tbl
}

func newHomesteadInstructionSet() JumpTable {
	tbl := newFrontierInstructionSet()
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.CallGasFrontier, dynamicGas: gasDelegateCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryDelegateCall}
	return tbl
}

func newTangerineWhistleInstructionSet() JumpTable {
	tbl := newHomesteadInstructionSet()
	tbl[BALANCE].constantGas = params.BalanceGasEIP150
	tbl[EXTCODESIZE].constantGas = params.ExtcodeSizeGasEIP150
	tbl[SLOAD].constantGas = params.SloadGasEIP150
	tbl[EXTCODECOPY].constantGas = params.ExtcodeCopyBaseEIP150
	tbl[CALL].constantGas = params.CallGasEIP150
	tbl[CALLCODE].constantGas = params.CallGasEIP150
	tbl[DELEGATECALL].constantGas = params.CallGasEIP150
	tbl[SELFDESTRUCT] = &operation{execute: opSelfdestruct, dynamicGas: gasSelfdestructEIP150, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	return tbl
}

func newSpuriousDragonInstructionSet() JumpTable {
	tbl := newTangerineWhistleInstructionSet()
	tbl[EXP].dynamicGas = gasExpEIP158
	return tbl
}

func newByzantiumInstructionSet() JumpTable {
	tbl := newSpuriousDragonInstructionSet()
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.CallGasEIP150, dynamicGas: gasStaticCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryStaticCall}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: params.GasFastestStep, dynamicGas: gasReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryReturnDataCopy}
	tbl[REVERT] = &operation{execute: opRevert, memorySize: memoryRevert, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	return tbl
}

func newConstantinopleInstructionSet() JumpTable {
	tbl := newByzantiumInstructionSet()
	tbl[SHL] = &operation{execute: opShl, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SHR] = &operation{execute: opShr, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SAR] = &operation{execute: opSar, constantGas: params.GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.ExtcodeHashGasConstantinople, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, minStack: minStack(4, 1), maxStack: maxStack(4, 1), memorySize: memoryCreate2}
	return tbl
}

func newPetersburgInstructionSet() JumpTable { return newConstantinopleInstructionSet() }

func newIstanbulInstructionSet() JumpTable {
	tbl := newPetersburgInstructionSet()
	tbl[CHAINID] = &operation{execute: opChainID, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: params.GasFastStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SLOAD].constantGas = params.SloadGasEIP1884
	tbl[BALANCE].constantGas = params.BalanceGasEIP1884
	tbl[EXTCODEHASH].constantGas = params.ExtcodeHashGasEIP1884
	return tbl
}

func newBerlinInstructionSet() JumpTable {
	tbl := newIstanbulInstructionSet()
	tbl[SLOAD] = &operation{execute: opSload, dynamicGas: gasSLoadEIP2929, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStoreEIP2929, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[EXTCODECOPY] = &operation{execute: opExtCodeCopy, dynamicGas: gasExtCodeCopyEIP2929, minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryExtCodeCopy}
	tbl[EXTCODESIZE] = &operation{execute: opExtCodeSize, dynamicGas: gasEip2929AccountCheck, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, dynamicGas: gasEip2929AccountCheck, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BALANCE] = &operation{execute: opBalance, dynamicGas: gasEip2929AccountCheck, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CALL] = &operation{execute: opCall, dynamicGas: gasCallEIP2929, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[CALLCODE] = &operation{execute: opCallCode, dynamicGas: gasCallCodeEIP2929, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, dynamicGas: gasDelegateCallEIP2929, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryDelegateCall}
	tbl[STATICCALL] = &operation{execute: opStaticCall, dynamicGas: gasStaticCallEIP2929, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryStaticCall}
	tbl[SELFDESTRUCT] = &operation{execute: opSelfdestruct, dynamicGas: gasSelfdestructEIP2929, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	return tbl
}

func newLondonInstructionSet() JumpTable {
	tbl := newBerlinInstructionSet()
	tbl[BASEFEE] = &operation{execute: opBaseFee, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStoreEIP3529, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	return tbl
}

func newMergeInstructionSet() JumpTable { return newLondonInstructionSet() }

func newShanghaiInstructionSet() JumpTable {
	tbl := newMergeInstructionSet()
	tbl[PUSH0] = &operation{execute: opPush0, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

func newCancunInstructionSet() JumpTable {
	tbl := newShanghaiInstructionSet()
	tbl[TLOAD] = &operation{execute: opTload, constantGas: params.WarmStorageReadCostEIP2929, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[TSTORE] = &operation{execute: opTstore, constantGas: params.WarmStorageReadCostEIP2929, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[MCOPY] = &operation{execute: opMcopy, constantGas: params.GasFastestStep, dynamicGas: gasMcopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryMcopy}
	tbl[BLOBHASH] = &operation{execute: opBlobHash, constantGas: params.GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: params.GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

// instructionSetForRules selects the jump table matching the highest
// activated fork in rules (spec.md §4.6/§6).
func instructionSetForRules(rules params.Rules) JumpTable {
	switch {
	case rules.IsCancun:
		return newCancunInstructionSet()
	case rules.IsShanghai:
		return newShanghaiInstructionSet()
	case rules.IsMerge:
		return newMergeInstructionSet()
	case rules.IsLondon:
		return newLondonInstructionSet()
	case rules.IsBerlin:
		return newBerlinInstructionSet()
	case rules.IsIstanbul:
		return newIstanbulInstructionSet()
	case rules.IsPetersburg:
		return newPetersburgInstructionSet()
	case rules.IsConstantinople:
		return newConstantinopleInstructionSet()
	case rules.IsByzantium:
		return newByzantiumInstructionSet()
	case rules.IsSpuriousDragon:
		return newSpuriousDragonInstructionSet()
	case rules.IsTangerineWhistle:
		return newTangerineWhistleInstructionSet()
	case rules.IsHomestead:
		return newHomesteadInstructionSet()
	default:
		return newFrontierInstructionSet()
	}
}
