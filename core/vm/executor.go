// (c) 2024, adapted for this module, grounded on spec.md §4.14's executor
// responsibilities and on the wyf-ACCEPT-eth2030 core package's
// IntrinsicGas/IntrinsicGasWithAccessList (core/gas_estimator.go), the
// closest full state-transition implementation in the pack. See the file
// LICENSE for licensing terms.

// Package vm's Executor is the single external entry point spec.md §6
// names: it turns one transaction-shaped call into a root Call or Create,
// charging intrinsic gas and pre-warming the access list the way a real
// chain's StateTransition does before ever touching the interpreter.
package vm

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/core/types"
	"github.com/holoevm/evmcore/internal/metrics"
	"github.com/holoevm/evmcore/params"
)

// ErrIntrinsicGasOverflow and ErrIntrinsicGasExceedsLimit are the two ways
// the intrinsic-gas floor can reject a call before any state is touched.
var (
	ErrIntrinsicGasOverflow     = errors.New("intrinsic gas computation overflowed")
	ErrIntrinsicGasExceedsLimit = errors.New("intrinsic gas exceeds gas limit")
)

// CallKind distinguishes a plain CALL-shaped transaction from the two
// contract-creation shapes (spec.md §4.14).
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindCreate
	CallKindCreate2
)

// AccessTuple is one EIP-2930 access-list entry: an address plus the
// storage keys under it the caller wants pre-warmed.
type AccessTuple struct {
	Address     common.Address
	StorageKeys []common.Hash
}

// TxCall is the transaction-shaped unit of work Executor.Execute consumes
// (spec.md §6): everything a CALL, CREATE, or CREATE2 needs that is not
// already carried by BlockContext.
type TxCall struct {
	Kind  CallKind
	From  common.Address
	To    common.Address // ignored when Kind is CallKindCreate/CallKindCreate2
	Value *uint256.Int
	Input []byte

	GasLimit uint64
	GasPrice *big.Int

	AccessList []AccessTuple

	// Salt is consulted only for CallKindCreate2 (EIP-1014).
	Salt *uint256.Int
}

// ExecutionResult is what Executor.Execute returns for one TxCall (spec.md
// §6): status, gas accounting, logs, return data, and - for a successful
// creation - the deployed address.
type ExecutionResult struct {
	Success        bool
	GasUsed        uint64
	ReturnData     []byte
	Logs           []types.Log
	CreatedAddress common.Address
	NewStateRoot   common.Hash
	Err            error
}

// Executor is the boundary spec.md §6 names: one call in, one result out,
// with ctx accepted purely for caller-side wall-clock cancellation - it is
// never threaded into the interpreter loop itself (spec.md §5).
type Executor interface {
	Execute(ctx context.Context, call TxCall, block BlockContext, rules params.Rules) (ExecutionResult, error)
}

// executor is the only Executor implementation this module ships. It
// holds the chain configuration (needed for CHAINID and for resolving
// further Rules, neither of which spec.md's Execute signature carries
// directly) and the world state the transaction runs against.
type executor struct {
	chainConfig *params.ChainConfig
	state       state.State
}

// NewExecutor returns an Executor bound to st and chainConfig. Each
// Execute call constructs its own EVM; st may be reused across many
// calls, with State.EndTransaction expected between them (spec.md §4).
func NewExecutor(st state.State, chainConfig *params.ChainConfig) Executor {
	return &executor{chainConfig: chainConfig, state: st}
}

func (e *executor) Execute(ctx context.Context, call TxCall, block BlockContext, rules params.Rules) (ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return ExecutionResult{}, err
	}

	if call.Value == nil {
		call.Value = new(uint256.Int)
	}
	isCreate := call.Kind == CallKindCreate || call.Kind == CallKindCreate2
	intrinsic, err := IntrinsicGas(call.Input, isCreate, call.AccessList)
	if err != nil {
		return ExecutionResult{Success: false, Err: err}, nil
	}
	if intrinsic > call.GasLimit {
		return ExecutionResult{Success: false, Err: ErrIntrinsicGasExceedsLimit}, nil
	}
	gasRemaining := call.GasLimit - intrinsic

	txCtx := TxContext{Origin: call.From, GasPrice: call.GasPrice}
	evm := NewEVM(e.state, block, txCtx, e.chainConfig, rules)

	// Pre-warming is intrinsic to the transaction, not to the call frame
	// it precedes: it happens outside of, and survives, whatever revert
	// Call/Create performs internally on failure - the same way the
	// caller's nonce bump in create() is never rolled back (spec.md
	// §4.14).
	e.prewarm(evm, call, block, rules)

	var (
		ret     []byte
		created common.Address
		callErr error
	)
	switch call.Kind {
	case CallKindCreate:
		var after uint64
		ret, created, after, callErr = evm.Create(call.From, call.Input, gasRemaining, call.Value)
		gasRemaining = after
	case CallKindCreate2:
		if call.Salt == nil {
			call.Salt = new(uint256.Int)
		}
		var after uint64
		ret, created, after, callErr = evm.Create2(call.From, call.Input, gasRemaining, call.Value, call.Salt)
		gasRemaining = after
	default:
		root := NewFrame(AccountRef(call.From), AccountRef(call.From), nil, common.Hash{}, call.Value, gasRemaining)
		defer root.Release()
		var after uint64
		ret, after, callErr = evm.Call(root, call.To, call.Input, gasRemaining, call.Value)
		gasRemaining = after
	}

	success := callErr == nil
	gasUsed := call.GasLimit - gasRemaining
	if success {
		refund := evm.RefundCounter()
		refundCap := gasUsed / params.RefundQuotientEIP3529
		if refund > refundCap {
			refund = refundCap
		}
		gasUsed -= refund
	}
	metrics.GasConsumed.Observe(float64(gasUsed))

	result := ExecutionResult{
		Success:        success,
		GasUsed:        gasUsed,
		ReturnData:     ret,
		NewStateRoot:   e.state.StateRoot(),
		CreatedAddress: created,
	}
	if success {
		result.Logs = e.state.Logs()
	} else if callErr != ErrExecutionReverted {
		result.Err = callErr
	}
	return result, nil
}

// prewarm marks the access-list entries EIP-2929 treats as warm from the
// first opcode onward: tx.origin, the call target (CallKindCall only; the
// address a CREATE/CREATE2 transaction deploys to is not pre-warmed), the
// coinbase (post-Shanghai, EIP-3651), every active precompile, and
// whatever the caller listed explicitly (spec.md §4.14, §4.5).
func (e *executor) prewarm(evm *EVM, call TxCall, block BlockContext, rules params.Rules) {
	al := e.state.AccessList()
	al.MarkAddressWarm(call.From)
	if call.Kind == CallKindCall {
		al.MarkAddressWarm(call.To)
	}
	if rules.IsShanghai {
		al.MarkAddressWarm(block.Coinbase)
	}
	for _, addr := range ActivePrecompileAddresses(rules) {
		al.MarkAddressWarm(addr)
	}
	for _, tuple := range call.AccessList {
		al.MarkAddressWarm(tuple.Address)
		for _, key := range tuple.StorageKeys {
			al.MarkSlotWarm(tuple.Address, key)
		}
	}
}

// IntrinsicGas computes the minimum gas a transaction must supply before
// any EVM execution occurs (spec.md §4.14): 21000 (or 53000 for a
// contract creation) plus 4 gas per zero calldata byte and 16 gas per
// non-zero byte (EIP-2028), plus the EIP-2930 access-list surcharge per
// listed address/storage key.
func IntrinsicGas(data []byte, isContractCreation bool, accessList []AccessTuple) (uint64, error) {
	var gas uint64
	if isContractCreation {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}

	if len(data) > 0 {
		var zeros uint64
		for _, b := range data {
			if b == 0 {
				zeros++
			}
		}
		nonZeros := uint64(len(data)) - zeros

		nzGas := nonZeros * params.TxDataNonZeroGasEIP2028
		if nonZeros != 0 && nzGas/nonZeros != params.TxDataNonZeroGasEIP2028 {
			return 0, ErrIntrinsicGasOverflow
		}
		if gas+nzGas < gas {
			return 0, ErrIntrinsicGasOverflow
		}
		gas += nzGas

		zGas := zeros * params.TxDataZeroGas
		if gas+zGas < gas {
			return 0, ErrIntrinsicGasOverflow
		}
		gas += zGas
	}

	for _, tuple := range accessList {
		if gas+params.TxAccessListAddressGas < gas {
			return 0, ErrIntrinsicGasOverflow
		}
		gas += params.TxAccessListAddressGas

		keyGas := uint64(len(tuple.StorageKeys)) * params.TxAccessListStorageKeyGas
		if gas+keyGas < gas {
			return 0, ErrIntrinsicGasOverflow
		}
		gas += keyGas
	}

	return gas, nil
}
