// (c) 2024, adapted for this module, grounded on the go-ethereum-family
// gas_table.go/memory_table.go split (observed in every full core/vm
// package in the pack) and on spec.md §4.3/§4.7-§4.12's gas formulas.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/params"
)

// calcMemSize64 returns off+length as a uint64, reporting overflow. Used
// by every memorySizeFunc that reads an (offset, length) pair off the
// stack (spec.md §4.3 "ensure(offset+len)").
func calcMemSize64(off, length *uint256.Int) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	if !off.IsUint64() || !length.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off.Uint64(), length.Uint64())
}

func calcMemSize64WithUint(off, length uint64) (uint64, bool) {
	if length > math.MaxUint64-off {
		return 0, true
	}
	return off + length, false
}

func memoryOffsetLen(stack *Stack, offIdx, lenIdx int) (size uint64, overflow bool) {
	return calcMemSize64(stack.Back(offIdx), stack.Back(lenIdx))
}

// stackUint64 clamps a stack operand to uint64, saturating at MaxUint64 -
// any operation this large fails the memory-expansion overflow check
// further down the pipeline anyway.
func stackUint64(v *uint256.Int) uint64 {
	if v.IsUint64() {
		return v.Uint64()
	}
	return math.MaxUint64
}

func memoryMLoad(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stackUint64(stack.Back(0)), 32)
}
func memoryMStore(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stackUint64(stack.Back(0)), 32)
}
func memoryMStore8(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stackUint64(stack.Back(0)), 1)
}
func memoryMcopy(stack *Stack) (uint64, bool) {
	a, o1 := calcMemSize64(stack.Back(0), stack.Back(2))
	b, o2 := calcMemSize64(stack.Back(1), stack.Back(2))
	if o1 || o2 {
		return 0, true
	}
	if b > a {
		return b, false
	}
	return a, false
}
func memoryKeccak256(stack *Stack) (uint64, bool)      { return memoryOffsetLen(stack, 0, 1) }
func memoryCallDataCopy(stack *Stack) (uint64, bool)   { return memoryOffsetLen(stack, 0, 2) }
func memoryCodeCopy(stack *Stack) (uint64, bool)       { return memoryOffsetLen(stack, 0, 2) }
func memoryExtCodeCopy(stack *Stack) (uint64, bool)    { return memoryOffsetLen(stack, 1, 3) }
func memoryReturnDataCopy(stack *Stack) (uint64, bool) { return memoryOffsetLen(stack, 0, 2) }
func memoryReturn(stack *Stack) (uint64, bool)         { return memoryOffsetLen(stack, 0, 1) }
func memoryRevert(stack *Stack) (uint64, bool)         { return memoryOffsetLen(stack, 0, 1) }
func memoryLog(stack *Stack) (uint64, bool)            { return memoryOffsetLen(stack, 0, 1) }
func memoryCreate(stack *Stack) (uint64, bool)         { return memoryOffsetLen(stack, 1, 2) }
func memoryCreate2(stack *Stack) (uint64, bool)        { return memoryOffsetLen(stack, 1, 2) }

func memoryCall(stack *Stack) (uint64, bool) {
	in, inOverflow := calcMemSize64(stack.Back(3), stack.Back(4))
	out, outOverflow := calcMemSize64(stack.Back(5), stack.Back(6))
	if inOverflow || outOverflow {
		return 0, true
	}
	if in > out {
		return in, false
	}
	return out, false
}
func memoryDelegateCall(stack *Stack) (uint64, bool) {
	in, inOverflow := calcMemSize64(stack.Back(2), stack.Back(3))
	out, outOverflow := calcMemSize64(stack.Back(4), stack.Back(5))
	if inOverflow || outOverflow {
		return 0, true
	}
	if in > out {
		return in, false
	}
	return out, false
}
func memoryStaticCall(stack *Stack) (uint64, bool) { return memoryDelegateCall(stack) }

func gasMLoad(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(uint64(mem.Len()), memorySize)
}
func gasMStore(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(uint64(mem.Len()), memorySize)
}
func gasMStore8(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(uint64(mem.Len()), memorySize)
}
func gasMcopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	return expansion + words(stackUint64(stack.Back(2)))*params.MemoryGas, nil
}

func gasKeccak256(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := math.SafeMul(words(stackUint64(stack.Back(1))), params.Keccak256WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return expansion + wordGas, nil
}

// gasMemoryCopy charges MemoryGas (3 per word) on top of memory
// expansion, the shared shape of CALLDATACOPY/CODECOPY/RETURNDATACOPY
// (spec.md §4.3).
func gasMemoryCopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64, lenIdx int) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := math.SafeMul(words(stackUint64(stack.Back(lenIdx))), params.MemoryGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return expansion + wordGas, nil
}

func gasCallDataCopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasMemoryCopy(evm, frame, stack, mem, memorySize, 2)
}
func gasCodeCopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasMemoryCopy(evm, frame, stack, mem, memorySize, 2)
}

func gasReturnDataCopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	end := new(uint256.Int).Add(stack.Back(1), stack.Back(2))
	if !end.IsUint64() || uint64(len(frame.ReturnData)) < end.Uint64() {
		return 0, ErrReturnDataOutOfBounds
	}
	return gasMemoryCopy(evm, frame, stack, mem, memorySize, 2)
}

func gasExtCodeCopy(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasMemoryCopy(evm, frame, stack, mem, memorySize, 3)
}

func gasExtCodeCopyEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasMemoryCopy(evm, frame, stack, mem, memorySize, 3)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(0).Bytes20())
	return gas + accessCost(evm, addr), nil
}

func gasEip2929AccountCheck(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.Address(stack.Back(0).Bytes20())
	return accessCost(evm, addr), nil
}

// accessCost marks addr warm if it is not already, returning the EIP-2929
// cold/warm account-access cost (spec.md §4.5).
func accessCost(evm *EVM, addr common.Address) uint64 {
	if evm.State.AccessList().MarkAddressWarm(addr) {
		return params.ColdAccountAccessCostEIP2929
	}
	return params.WarmStorageReadCostEIP2929
}

func gasExpFrontier(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return expByteCost(stack.Back(1), params.ExpByteFrontier)
}

func gasExpEIP158(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return expByteCost(stack.Back(1), params.ExpByteEIP158)
}

func expByteCost(exponent *uint256.Int, perByte uint64) (uint64, error) {
	byteLen := (exponent.BitLen() + 7) / 8
	gas, overflow := math.SafeMul(uint64(byteLen), perByte)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasSLoadFrontier(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func gasSLoadEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	slot := common.Hash(stack.Back(0).Bytes32())
	if evm.State.AccessList().MarkSlotWarm(frame.Address(), slot) {
		return params.ColdSloadCostEIP2929, nil
	}
	return params.WarmStorageReadCostEIP2929, nil
}

// gasSStoreFrontier implements the pre-Constantinople flat SSTORE cost:
// 20000 for a zero->non-zero write, 5000 otherwise, with a flat 15000
// refund when a non-zero slot is cleared.
func gasSStoreFrontier(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	key := common.Hash(stack.Back(0).Bytes32())
	newVal := stack.Back(1)
	current := evm.State.GetStorage(frame.Address(), key)
	isZeroCurrent := current == (common.Hash{})
	isZeroNew := newVal.IsZero()
	switch {
	case isZeroCurrent && !isZeroNew:
		return params.SstoreSetGasEIP2200, nil
	case !isZeroCurrent && isZeroNew:
		evm.addRefund(params.SstoreClearsScheduleRefundEIP2200)
		return params.SstoreResetGasEIP2200, nil
	default:
		return params.SstoreResetGasEIP2200, nil
	}
}

// gasSStoreEIP2929 layers the EIP-2929 cold-slot surcharge on top of the
// EIP-2200 net-metering rule below (Berlin activates both together).
func gasSStoreEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return sstoreNetGasEIP2200(evm, frame, stack, params.SstoreClearsScheduleRefundEIP2200)
}

// gasSStoreEIP3529 is the same net-metering rule with the post-London
// refund amount (EIP-3529 drops the flat 15000 clear refund to 4800).
func gasSStoreEIP3529(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return sstoreNetGasEIP2200(evm, frame, stack, params.SstoreClearsScheduleRefundEIP3529)
}

// sstoreNetGasEIP2200 implements the EIP-2200 net-metering table named in
// spec.md §4.9, layered with the EIP-2929 cold-slot surcharge, and
// parameterized by the clear-refund amount (which EIP-3529 changes).
func sstoreNetGasEIP2200(evm *EVM, frame *Frame, stack *Stack, clearRefund uint64) (uint64, error) {
	if frame.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	addr := frame.Address()
	key := common.Hash(stack.Back(0).Bytes32())
	newVal := common.Hash(stack.Back(1).Bytes32())
	current := evm.State.GetStorage(addr, key)

	var coldCharge uint64
	if evm.State.AccessList().MarkSlotWarm(addr, key) {
		coldCharge = params.ColdSloadCostEIP2929
	}

	if current == newVal {
		return params.WarmStorageReadCostEIP2929 + coldCharge, nil
	}
	original := evm.originalStorage(addr, key)
	if original == current {
		if original == (common.Hash{}) {
			return params.SstoreSetGasEIP2200 + coldCharge, nil
		}
		if newVal == (common.Hash{}) {
			evm.addRefund(clearRefund)
		}
		return params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929 + coldCharge, nil
	}
	// Dirty write: slot already touched earlier this transaction.
	if original != (common.Hash{}) {
		if current == (common.Hash{}) {
			evm.subRefund(clearRefund)
		}
		if newVal == (common.Hash{}) {
			evm.addRefund(clearRefund)
		}
	}
	if original == newVal {
		if original == (common.Hash{}) {
			evm.addRefund(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
		} else {
			evm.addRefund(params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929)
		}
	}
	return params.WarmStorageReadCostEIP2929 + coldCharge, nil
}

func makeGasLog(topics uint64) gasFunc {
	return func(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
		if err != nil {
			return 0, err
		}
		length := stackUint64(stack.Back(1))
		gas := params.LogGas + topics*params.LogTopicGas
		dataGas, overflow := math.SafeMul(length, params.LogDataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return expansion + gas + dataGas, nil
	}
}

func gasCreate(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	size := stackUint64(stack.Back(2))
	if size > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	return expansion + words(size)*params.InitCodeWordGas, nil
}

func gasCreate2(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	size := stackUint64(stack.Back(2))
	if size > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	wordCost, overflow := math.SafeMul(words(size), params.Keccak256WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return expansion + words(size)*params.InitCodeWordGas + wordCost, nil
}

// callValueAndAccessSurcharge computes the access-list/value/new-account
// surcharge shared by CALL/CALLCODE/DELEGATECALL/STATICCALL (spec.md
// §4.11 steps 2-4).
func callValueAndAccessSurcharge(evm *EVM, addr common.Address, value *uint256.Int) uint64 {
	gas := accessCost(evm, addr)
	if value != nil && !value.IsZero() {
		gas += params.CallValueTransferGas
		if evm.accountIsEmptyOrMissing(addr) {
			gas += params.CallNewAccountGas
		}
	}
	return gas
}

func gasCall(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(1).Bytes20())
	value := stack.Back(2)
	if frame.IsStatic && !value.IsZero() {
		return 0, ErrWriteProtection
	}
	return expansion + callValueAndAccessSurcharge(evm, addr, value), nil
}

func gasCallEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCall(evm, frame, stack, mem, memorySize)
}

func gasCallCode(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(1).Bytes20())
	value := stack.Back(2)
	gas := expansion + accessCost(evm, addr)
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}
	return gas, nil
}

func gasCallCodeEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCallCode(evm, frame, stack, mem, memorySize)
}

func gasDelegateCall(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(1).Bytes20())
	return expansion + accessCost(evm, addr), nil
}

func gasDelegateCallEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasDelegateCall(evm, frame, stack, mem, memorySize)
}

func gasStaticCall(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expansion, err := memoryGasCost(uint64(mem.Len()), memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(1).Bytes20())
	return expansion + accessCost(evm, addr), nil
}

func gasStaticCallEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasStaticCall(evm, frame, stack, mem, memorySize)
}

// gasSelfdestructEIP150 adds EIP-150's flat 5000 cost plus a 25000
// surcharge (EIP-161) when the beneficiary account is empty or does not
// yet exist.
func gasSelfdestructEIP150(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas := params.CallNewAccountGas / 5 // 25000/5 = 5000, the EIP-150 SELFDESTRUCT base cost.
	beneficiary := common.Address(stack.Back(0).Bytes20())
	if evm.accountIsEmptyOrMissing(beneficiary) {
		gas += params.CallNewAccountGas
	}
	return gas, nil
}

// gasSelfdestructEIP2929 layers the EIP-2929 cold-address surcharge on
// top of the EIP-150/EIP-161 cost above.
func gasSelfdestructEIP2929(evm *EVM, frame *Frame, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasSelfdestructEIP150(evm, frame, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	beneficiary := common.Address(stack.Back(0).Bytes20())
	if evm.State.AccessList().MarkAddressWarm(beneficiary) {
		gas += params.ColdAccountAccessCostEIP2929
	}
	return gas, nil
}

// callGas implements the EIP-150 63/64 retention rule (spec.md §4.11
// step 6): the callee may be forwarded at most floor(63*remaining/64),
// capped by the amount requested on the stack.
func callGas(availableGas, requestedGas uint64) uint64 {
	availableGas -= availableGas / 64
	if requestedGas > availableGas {
		return availableGas
	}
	return requestedGas
}
