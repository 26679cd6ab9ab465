// (c) 2024, adapted for this module, grounded on the DioneProtocol-coreth
// core/vm/interpreter.go fetch-decode-execute loop (stack depth check,
// memory resize, constant-then-dynamic gas charge, dispatch) and on
// spec.md §4.6 and §9. See the file LICENSE for licensing terms.

package vm

import "github.com/holoevm/evmcore/internal/metrics"

// Interpreter runs one Frame's code against its jump table. It holds no
// per-call state of its own - everything that varies call to call lives
// on the Frame - so a single Interpreter is shared across every nested
// call an EVM makes in a transaction.
type Interpreter struct {
	evm   *EVM
	table JumpTable
}

// Run executes frame.Code starting at pc 0 until a halting opcode, an
// error, or the frame runs out of gas (spec.md §4.6). The returned error
// is nil on STOP, ErrExecutionReverted on REVERT (ret holds the revert
// reason), and any other sentinel on a gas-consuming failure.
func (in *Interpreter) Run(frame *Frame) ([]byte, error) {
	var (
		pc   = uint64(0)
		mem  = frame.Memory
		stck = frame.Stack
		ret  []byte
		err  error
	)

	for {
		op := frame.GetOp(pc)
		operation := in.table[op]
		if operation == nil || operation.execute == nil {
			return nil, ErrInvalidOpcode
		}

		if n := stck.Len(); n < operation.minStack {
			return nil, ErrStackUnderflow
		} else if n > operation.maxStack {
			return nil, ErrStackOverflow
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(stck)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			memorySize = size
		}

		if operation.constantGas > 0 {
			if !frame.UseGas(operation.constantGas) {
				return nil, ErrOutOfGas
			}
		}
		if memorySize > 0 {
			if cost, err := memoryGasCost(uint64(mem.Len()), memorySize); err != nil {
				return nil, err
			} else if !frame.UseGas(cost) {
				return nil, ErrOutOfGas
			} else {
				mem.Resize(words(memorySize) * 32)
			}
		}
		if operation.dynamicGas != nil {
			cost, derr := operation.dynamicGas(in.evm, frame, stck, mem, memorySize)
			if derr != nil {
				return nil, derr
			}
			if !frame.UseGas(cost) {
				return nil, ErrOutOfGas
			}
		}

		metrics.OpcodesExecuted.WithLabelValues(op.String()).Inc()

		ret, err = operation.execute(&pc, in, frame)
		if err != nil {
			if err == errStopToken {
				return ret, nil
			}
			return ret, err
		}
		pc++
	}
}
