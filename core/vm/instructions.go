// (c) 2024, adapted for this module, grounded on the DioneProtocol-coreth
// core/vm/instructions.go opcode bodies (post-uint256 migration, the
// shape every repo in the pack that still vendors go-ethereum's VM
// follows) and on spec.md §4.7-§4.12's per-opcode semantics. See the
// file LICENSE for licensing terms.

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/params"
)

func opStop(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, errStopToken
}

func opAdd(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y, z := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y, z := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opExp(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	base, exponent := frame.Stack.pop(), frame.Stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	back, num := frame.Stack.pop(), frame.Stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

func opLt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, y := frame.Stack.pop(), frame.Stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	th, val := frame.Stack.pop(), frame.Stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, value := frame.Stack.pop(), frame.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, value := frame.Stack.pop(), frame.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, value := frame.Stack.pop(), frame.Stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

func opKeccak256(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, size := frame.Stack.pop(), frame.Stack.peek()
	data := frame.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil
}

func opAddress(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(addressToWord(frame.Address()))
	return nil, nil
}

func opBalance(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	slot := frame.Stack.peek()
	addr := common.Address(slot.Bytes20())
	acc, _ := in.evm.State.GetAccount(addr)
	if acc.Balance != nil {
		slot.Set(acc.Balance)
	} else {
		slot.Clear()
	}
	return nil, nil
}

func opOrigin(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(addressToWord(in.evm.TxContext.Origin))
	return nil, nil
}

func opCaller(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(addressToWord(frame.Caller()))
	return nil, nil
}

func opCallValue(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).Set(frame.Value()))
	return nil, nil
}

func opCallDataLoad(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(frame.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(uint64(len(frame.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	memOffset, dataOffset, length := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	dataOff, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOff = 0xffffffffffffffff
	}
	data := getData(frame.Input, dataOff, length.Uint64())
	frame.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(uint64(len(frame.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	memOffset, codeOffset, length := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	codeOff, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOff = 0xffffffffffffffff
	}
	data := getData(frame.Code, codeOff, length.Uint64())
	frame.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opGasprice(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.TxContext.GasPrice)
	frame.Stack.push(v)
	return nil, nil
}

func opExtCodeSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	slot := frame.Stack.peek()
	addr := common.Address(slot.Bytes20())
	acc, ok := in.evm.State.GetAccount(addr)
	if !ok {
		slot.Clear()
		return nil, nil
	}
	code := in.evm.State.GetCode(acc.CodeHash)
	slot.SetUint64(uint64(len(code)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	addrWord, memOffset, codeOffset, length := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	addr := common.Address(addrWord.Bytes20())
	var code []byte
	if acc, ok := in.evm.State.GetAccount(addr); ok {
		code = in.evm.State.GetCode(acc.CodeHash)
	}
	codeOff, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOff = 0xffffffffffffffff
	}
	data := getData(code, codeOff, length.Uint64())
	frame.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opExtCodeHash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	slot := frame.Stack.peek()
	addr := common.Address(slot.Bytes20())
	acc, ok := in.evm.State.GetAccount(addr)
	if !ok || in.evm.accountIsEmptyOrMissing(addr) {
		slot.Clear()
		return nil, nil
	}
	slot.SetBytes(acc.CodeHash.Bytes())
	return nil, nil
}

func opReturnDataSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(uint64(len(frame.ReturnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	memOffset, dataOffset, length := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	end := new(uint256.Int).Add(&dataOffset, &length)
	end64, overflow := end.Uint64WithOverflow()
	if overflow || uint64(len(frame.ReturnData)) < end64 {
		return nil, ErrReturnDataOutOfBounds
	}
	frame.Memory.Set(memOffset.Uint64(), length.Uint64(), frame.ReturnData[offset64:end64])
	return nil, nil
}

func opBlockhash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	num := frame.Stack.peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil, nil
	}
	upper := in.evm.BlockContext.BlockNumber.Uint64()
	var lower uint64
	if upper > 256 {
		lower = upper - 256
	}
	if num64 >= upper || num64 < lower {
		num.Clear()
		return nil, nil
	}
	num.SetBytes(in.evm.GetHash(num64).Bytes())
	return nil, nil
}

func opCoinbase(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(addressToWord(in.evm.BlockContext.Coinbase))
	return nil, nil
}

func opTimestamp(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.BlockContext.Time)
	frame.Stack.push(v)
	return nil, nil
}

func opNumber(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.BlockContext.BlockNumber)
	frame.Stack.push(v)
	return nil, nil
}

// opDifficulty serves both DIFFICULTY (pre-Merge) and PREVRANDAO
// (post-Merge, EIP-4399) - the two share an opcode byte.
func opDifficulty(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if in.evm.Rules.IsMerge {
		v := new(uint256.Int).SetBytes(in.evm.BlockContext.Random.Bytes())
		frame.Stack.push(v)
		return nil, nil
	}
	v, _ := uint256.FromBig(in.evm.BlockContext.Difficulty)
	frame.Stack.push(v)
	return nil, nil
}

func opGasLimit(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(in.evm.BlockContext.GasLimit))
	return nil, nil
}

func opChainID(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.ChainConfig.ChainID)
	frame.Stack.push(v)
	return nil, nil
}

func opSelfBalance(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	acc, _ := in.evm.State.GetAccount(frame.Address())
	if acc.Balance != nil {
		frame.Stack.push(new(uint256.Int).Set(acc.Balance))
	} else {
		frame.Stack.push(new(uint256.Int))
	}
	return nil, nil
}

func opBaseFee(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.BlockContext.BaseFee)
	frame.Stack.push(v)
	return nil, nil
}

func opBlobHash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	idx := frame.Stack.peek()
	if i, overflow := idx.Uint64WithOverflow(); !overflow && i < uint64(len(in.evm.TxContext.BlobHashes)) {
		idx.SetBytes(in.evm.TxContext.BlobHashes[i].Bytes())
	} else {
		idx.Clear()
	}
	return nil, nil
}

func opBlobBaseFee(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v, _ := uint256.FromBig(in.evm.BlockContext.BlobBaseFee)
	frame.Stack.push(v)
	return nil, nil
}

func opPop(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.pop()
	return nil, nil
}

func opMload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := frame.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(frame.Memory.GetPtr(int64(offset), 32))
	return nil, nil
}

func opMstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	mStart, val := frame.Stack.pop(), frame.Stack.pop()
	frame.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	off, val := frame.Stack.pop(), frame.Stack.pop()
	frame.Memory.Set(off.Uint64(), 1, []byte{byte(val.Uint64())})
	return nil, nil
}

func opSload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	loc := frame.Stack.peek()
	hash := common.Hash(loc.Bytes32())
	val := in.evm.State.GetStorage(frame.Address(), hash)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	loc, val := frame.Stack.pop(), frame.Stack.pop()
	in.evm.State.SetStorage(frame.Address(), common.Hash(loc.Bytes32()), common.Hash(val.Bytes32()))
	return nil, nil
}

func opTload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	loc := frame.Stack.peek()
	val := in.evm.State.GetTransient(frame.Address(), common.Hash(loc.Bytes32()))
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opTstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	loc, val := frame.Stack.pop(), frame.Stack.pop()
	in.evm.State.SetTransient(frame.Address(), common.Hash(loc.Bytes32()), common.Hash(val.Bytes32()))
	return nil, nil
}

func opMcopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	dst, src, length := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	frame.Memory.Copy(dst.Uint64(), src.Uint64(), length.Uint64())
	return nil, nil
}

func opJump(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	dest := frame.Stack.pop()
	if !frame.validJumpdest(dest.Uint64()) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpi(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	dest, cond := frame.Stack.pop(), frame.Stack.pop()
	if !cond.IsZero() {
		if !frame.validJumpdest(dest.Uint64()) {
			return nil, ErrInvalidJump
		}
		*pc = dest.Uint64()
		return nil, nil
	}
	return nil, nil
}

func opPc(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(uint64(frame.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int).SetUint64(frame.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, nil
}

func opPush0(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stack.push(new(uint256.Int))
	return nil, nil
}

// opPush returns a handler for PUSH1..PUSH32, reading n immediate bytes
// following pc and advancing it past them.
func opPush(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		codeLen := uint64(len(frame.Code))
		start := *pc + 1
		v := new(uint256.Int)
		if start >= codeLen {
			v.Clear()
		} else {
			end := start + uint64(n)
			if end > codeLen {
				end = codeLen
			}
			v.SetBytes(frame.Code[start:end])
			if end < start+uint64(n) {
				v.Lsh(v, 8*uint(start+uint64(n)-end))
			}
		}
		frame.Stack.push(v)
		*pc += uint64(n)
		return nil, nil
	}
}

func opDup(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		frame.Stack.dup(n)
		return nil, nil
	}
}

func opSwap(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		frame.Stack.swap(n + 1)
		return nil, nil
	}
}

func opLog(size int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		if frame.IsStatic {
			return nil, ErrWriteProtection
		}
		mStart, mSize := frame.Stack.pop(), frame.Stack.pop()
		topics := make([]common.Hash, size)
		for i := 0; i < size; i++ {
			t := frame.Stack.pop()
			topics[i] = common.Hash(t.Bytes32())
		}
		data := frame.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		in.evm.addLog(frame.Address(), topics, data)
		return nil, nil
	}
}

func opCreate(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	value, offset, size := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	input := frame.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := callGas(frame.Gas, frame.Gas)
	frame.UseGas(gas)
	ret, addr, returnGas, err := in.evm.Create(frame.Address(), input, gas, &value)
	pushCreateResult(frame, addr, err)
	frame.RefundGas(returnGas)
	frame.ReturnData = ret
	if err == ErrExecutionReverted {
		return ret, nil
	}
	return nil, nil
}

func opCreate2(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	value, offset, size := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	salt := frame.Stack.pop()
	input := frame.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := callGas(frame.Gas, frame.Gas)
	frame.UseGas(gas)
	ret, addr, returnGas, err := in.evm.Create2(frame.Address(), input, gas, &value, &salt)
	pushCreateResult(frame, addr, err)
	frame.RefundGas(returnGas)
	frame.ReturnData = ret
	if err == ErrExecutionReverted {
		return ret, nil
	}
	return nil, nil
}

func pushCreateResult(frame *Frame, addr common.Address, err error) {
	if err != nil && err != ErrExecutionReverted {
		frame.Stack.push(new(uint256.Int))
		return
	}
	frame.Stack.push(addressToWord(addr))
}

// CALL/CALLCODE pop (gas, addr, value, argsOffset, argsSize, retOffset,
// retSize); DELEGATECALL/STATICCALL pop the same minus value.

func opCall(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	requested, addrWord, value := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	argsOffset, argsSize := frame.Stack.pop(), frame.Stack.pop()
	retOffset, retSize := frame.Stack.pop(), frame.Stack.pop()
	addr := common.Address(addrWord.Bytes20())

	args := frame.Memory.GetCopy(int64(argsOffset.Uint64()), int64(argsSize.Uint64()))
	gas := callGas(frame.Gas, requested.Uint64())
	frame.UseGas(gas)
	if !value.IsZero() {
		gas += params.CallStipend
	}
	ret, returnGas, err := in.evm.Call(frame, addr, args, gas, &value)
	pushCallResult(frame, err)
	frame.RefundGas(returnGas)
	writeCallOutput(frame, retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, nil
}

func opCallCode(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	requested, addrWord, value := frame.Stack.pop(), frame.Stack.pop(), frame.Stack.pop()
	argsOffset, argsSize := frame.Stack.pop(), frame.Stack.pop()
	retOffset, retSize := frame.Stack.pop(), frame.Stack.pop()
	addr := common.Address(addrWord.Bytes20())

	args := frame.Memory.GetCopy(int64(argsOffset.Uint64()), int64(argsSize.Uint64()))
	gas := callGas(frame.Gas, requested.Uint64())
	frame.UseGas(gas)
	if !value.IsZero() {
		gas += params.CallStipend
	}
	ret, returnGas, err := in.evm.CallCode(frame, addr, args, gas, &value)
	pushCallResult(frame, err)
	frame.RefundGas(returnGas)
	writeCallOutput(frame, retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, nil
}

func opDelegateCall(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	requested, addrWord := frame.Stack.pop(), frame.Stack.pop()
	argsOffset, argsSize := frame.Stack.pop(), frame.Stack.pop()
	retOffset, retSize := frame.Stack.pop(), frame.Stack.pop()
	addr := common.Address(addrWord.Bytes20())

	args := frame.Memory.GetCopy(int64(argsOffset.Uint64()), int64(argsSize.Uint64()))
	gas := callGas(frame.Gas, requested.Uint64())
	frame.UseGas(gas)
	ret, returnGas, err := in.evm.DelegateCall(frame, addr, args, gas)
	pushCallResult(frame, err)
	frame.RefundGas(returnGas)
	writeCallOutput(frame, retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, nil
}

func opStaticCall(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	requested, addrWord := frame.Stack.pop(), frame.Stack.pop()
	argsOffset, argsSize := frame.Stack.pop(), frame.Stack.pop()
	retOffset, retSize := frame.Stack.pop(), frame.Stack.pop()
	addr := common.Address(addrWord.Bytes20())

	args := frame.Memory.GetCopy(int64(argsOffset.Uint64()), int64(argsSize.Uint64()))
	gas := callGas(frame.Gas, requested.Uint64())
	frame.UseGas(gas)
	ret, returnGas, err := in.evm.StaticCall(frame, addr, args, gas)
	pushCallResult(frame, err)
	frame.RefundGas(returnGas)
	writeCallOutput(frame, retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, nil
}

func pushCallResult(frame *Frame, err error) {
	if err != nil {
		frame.Stack.push(new(uint256.Int))
		return
	}
	frame.Stack.push(new(uint256.Int).SetOne())
}

// writeCallOutput copies up to retSize bytes of the callee's return data
// into memory at retOffset, clamping when the callee returned less.
func writeCallOutput(frame *Frame, retOffset, retSize uint64, ret []byte) {
	frame.ReturnData = ret
	if retSize == 0 {
		return
	}
	n := retSize
	if uint64(len(ret)) < n {
		n = uint64(len(ret))
	}
	frame.Memory.Set(retOffset, n, ret[:n])
}

func opReturn(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, size := frame.Stack.pop(), frame.Stack.pop()
	ret := frame.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, errStopToken
}

func opRevert(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, size := frame.Stack.pop(), frame.Stack.pop()
	ret := frame.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, ErrExecutionReverted
}

func opInvalid(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, ErrInvalidOpcode
}

func opSelfdestruct(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	beneficiary := frame.Stack.pop()
	in.evm.selfDestruct(frame, common.Address(beneficiary.Bytes20()))
	return nil, errStopToken
}

// addressToWord left-zero-pads addr into a 256-bit stack word.
func addressToWord(addr common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes(addr.Bytes())
}
