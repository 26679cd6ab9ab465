// (c) 2024, adapted for this module, grounded on the DioneProtocol-coreth
// core/vm/evm.go Call/Create orchestration (snapshotting, depth limit,
// the 63/64 gas-retention rule) and on spec.md §4.11-§4.12. See the file
// LICENSE for licensing terms.

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/core/types"
	"github.com/holoevm/evmcore/internal/metrics"
	"github.com/holoevm/evmcore/params"
)

// EVM is the execution context shared by every nested Call/Create in one
// transaction: the world state, block/transaction context, active fork
// rules, and the bookkeeping (refund counter, jumpdest cache, original-
// storage cache) the dynamic-gas layer needs (spec.md §3, §4.11-§4.12).
//
// One EVM is scoped to a single transaction. The embedding executor
// constructs a fresh one (or calls Reset) per transaction.
type EVM struct {
	State state.State

	BlockContext BlockContext
	TxContext    TxContext
	ChainConfig  *params.ChainConfig
	Rules        params.Rules

	interpreter *Interpreter
	jumpdests   *jumpdestCache

	depth  int
	refund uint64

	// originalStorageCache memoizes each (address, key) pair's value as of
	// the start of this transaction, the baseline EIP-2200 net-metering
	// needs and which must not itself be invalidated by writes later in
	// the same transaction.
	originalStorageCache map[common.Address]map[common.Hash]common.Hash

	// createdThisTx records addresses deployed earlier in this same
	// transaction, consulted by selfDestruct per the post-Cancun
	// EIP-6780 restriction (spec.md §3 Account).
	createdThisTx map[common.Address]bool
}

// NewEVM constructs an EVM for one transaction.
func NewEVM(st state.State, blockCtx BlockContext, txCtx TxContext, chainConfig *params.ChainConfig, rules params.Rules) *EVM {
	evm := &EVM{
		State:                 st,
		BlockContext:          blockCtx,
		TxContext:             txCtx,
		ChainConfig:           chainConfig,
		Rules:                 rules,
		jumpdests:             newJumpdestCache(),
		originalStorageCache:  make(map[common.Address]map[common.Hash]common.Hash),
		createdThisTx:         make(map[common.Address]bool),
	}
	evm.interpreter = &Interpreter{evm: evm, table: instructionSetForRules(rules)}
	return evm
}

// Reset readies evm for a new transaction sharing the same block context:
// resets the refund counter and original-storage cache. The access list
// and transient storage live in State and are reset via
// State.EndTransaction.
func (evm *EVM) Reset(txCtx TxContext) {
	evm.TxContext = txCtx
	evm.refund = 0
	evm.originalStorageCache = make(map[common.Address]map[common.Hash]common.Hash)
	evm.createdThisTx = make(map[common.Address]bool)
}

func (evm *EVM) addRefund(gas uint64)  { evm.refund += gas }
func (evm *EVM) subRefund(gas uint64) {
	if gas > evm.refund {
		evm.refund = 0
		return
	}
	evm.refund -= gas
}

// RefundCounter returns the accumulated gas refund, not yet capped to the
// EIP-3529/EIP-2200 gas_used/N rule - callers apply that cap themselves
// once total gas_used for the transaction is known (spec.md §4.12).
func (evm *EVM) RefundCounter() uint64 { return evm.refund }

func (evm *EVM) originalStorage(addr common.Address, key common.Hash) common.Hash {
	slots, ok := evm.originalStorageCache[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		evm.originalStorageCache[addr] = slots
	}
	if v, ok := slots[key]; ok {
		return v
	}
	v := evm.State.GetStorage(addr, key)
	slots[key] = v
	return v
}

// GetHash delegates to BlockContext.GetHash, or returns the zero hash if
// the embedding executor did not supply one.
func (evm *EVM) GetHash(number uint64) common.Hash {
	if evm.BlockContext.GetHash == nil {
		return common.Hash{}
	}
	return evm.BlockContext.GetHash(number)
}

func (evm *EVM) addLog(addr common.Address, topics []common.Hash, data []byte) {
	evm.State.AddLog(types.Log{Address: addr, Topics: topics, Data: data})
}

// selfDestruct transfers self's entire balance to beneficiary and marks
// self for end-of-transaction removal, gated per spec.md §3 Account
// (post-Cancun: only erased if created earlier in this same
// transaction - State.EndTransaction enforces that half of the rule).
func (evm *EVM) selfDestruct(frame *Frame, beneficiary common.Address) {
	addr := frame.Address()
	acc, _ := evm.State.GetAccount(addr)
	if acc.Balance != nil && !acc.Balance.IsZero() {
		ben, _ := evm.State.GetAccount(beneficiary)
		if ben.Balance == nil {
			ben.Balance = new(uint256.Int)
		}
		ben.Balance.Add(ben.Balance, acc.Balance)
		evm.State.SetAccount(beneficiary, ben)
		acc.Balance = new(uint256.Int)
		evm.State.SetAccount(addr, acc)
	}
	evm.State.MarkSelfDestruct(addr, evm.createdThisTx[addr])
}

// transfer moves value from from's balance to to's, failing with
// ErrInsufficientBalance rather than going negative (spec.md §4.11 step
// 1).
func (evm *EVM) transfer(from, to common.Address, value *uint256.Int) error {
	if value == nil || value.IsZero() {
		return nil
	}
	fromAcc, _ := evm.State.GetAccount(from)
	if fromAcc.Balance == nil || fromAcc.Balance.Lt(value) {
		return ErrInsufficientBalance
	}
	fromAcc.Balance = new(uint256.Int).Sub(fromAcc.Balance, value)
	evm.State.SetAccount(from, fromAcc)

	toAcc, ok := evm.State.GetAccount(to)
	if !ok {
		toAcc = state.EmptyAccount()
	}
	if toAcc.Balance == nil {
		toAcc.Balance = new(uint256.Int)
	}
	toAcc.Balance = new(uint256.Int).Add(toAcc.Balance, value)
	evm.State.SetAccount(to, toAcc)
	return nil
}

// runFrame snapshots state, runs the interpreter over frame, and rolls
// back to that snapshot on any error, ErrExecutionReverted included. The
// returned data is passed back with the error so a caller can propagate
// it as return data on revert (spec.md §4.12 step 5).
func (evm *EVM) runFrame(frame *Frame, readOnly bool) ([]byte, error) {
	metrics.CallDepth.Observe(float64(frame.Depth))
	snap := evm.State.CreateSnapshot()
	frame.IsStatic = frame.IsStatic || readOnly
	if len(frame.Code) > 0 {
		var bits bitvec
		if frame.CodeHash != (common.Hash{}) {
			// Deployed code: cache the bitvec by code hash, shared across
			// every account that happens to run the same bytecode.
			bits = evm.jumpdests.get(frame.CodeHash, frame.Code)
		} else {
			// Init code: each CREATE's code is transient and un-hashed at
			// this point, so build its bitvec uncached rather than risk a
			// zero-hash collision with unrelated init code.
			bits = newBitvec(frame.Code)
		}
		frame.jumpdest = &bits
	}

	ret, err := evm.interpreter.Run(frame)
	if err != nil {
		if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
			panic(revertErr)
		}
		return ret, err
	}
	evm.State.CommitSnapshot(snap)
	return ret, nil
}

// Call executes the code at addr as a nested message call (spec.md
// §4.11 CALL): value is transferred from frame's address to addr before
// the callee runs.
func (evm *EVM) Call(caller *Frame, addr common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	if evm.depth >= int(params.CallCreateDepth) {
		return nil, gas, ErrDepthExceeded
	}
	if value != nil && !value.IsZero() {
		fromAcc, _ := evm.State.GetAccount(caller.Address())
		if fromAcc.Balance == nil || fromAcc.Balance.Lt(value) {
			return nil, gas, ErrInsufficientBalance // spec.md §7: insufficient balance is a non-fatal "push 0", gas untouched.
		}
	}

	code, codeHash := evm.codeAt(addr)
	callee := NewFrame(caller.SelfRef(), AccountRef(addr), code, codeHash, value, gas)
	callee.Depth = evm.depth + 1
	defer callee.Release()

	if p, ok := ActivePrecompiles(evm.Rules)[addr]; ok {
		return evm.runPrecompile(caller, addr, p, input, gas, value)
	}

	evm.depth++
	if value != nil && !value.IsZero() {
		if err := evm.transfer(caller.Address(), addr, value); err != nil {
			evm.depth--
			return nil, gas, ErrInsufficientBalance
		}
	}
	callee.Input = input
	ret, err := evm.runFrame(callee, false)
	evm.depth--
	if evm.depth == 0 {
		metrics.GasConsumed.Observe(float64(gas - callee.Gas))
	}
	if err != nil && err != ErrExecutionReverted {
		return nil, 0, err
	}
	return ret, callee.Gas, normalizeHaltErr(err)
}

// CallCode is CALL's value-transfer semantics with DELEGATECALL's
// address/storage semantics: addr's code runs against the caller's own
// storage and address (spec.md §4.11 CALLCODE).
func (evm *EVM) CallCode(caller *Frame, addr common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	if evm.depth >= int(params.CallCreateDepth) {
		return nil, gas, ErrDepthExceeded
	}
	if value != nil && !value.IsZero() {
		fromAcc, _ := evm.State.GetAccount(caller.Address())
		if fromAcc.Balance == nil || fromAcc.Balance.Lt(value) {
			return nil, gas, ErrInsufficientBalance
		}
	}
	code, codeHash := evm.codeAt(addr)
	callee := NewFrame(caller.SelfRef(), caller.SelfRef(), code, codeHash, value, gas)
	callee.Depth = evm.depth + 1
	callee.Input = input
	defer callee.Release()

	if p, ok := ActivePrecompiles(evm.Rules)[addr]; ok {
		return evm.runPrecompile(caller, addr, p, input, gas, value)
	}

	evm.depth++
	ret, err := evm.runFrame(callee, false)
	evm.depth--
	if err != nil && err != ErrExecutionReverted {
		return nil, 0, err
	}
	return ret, callee.Gas, normalizeHaltErr(err)
}

// DelegateCall runs addr's code against the caller's address, storage,
// and value - no transfer, no new Depth's worth of caller identity
// (spec.md §4.11 DELEGATECALL).
func (evm *EVM) DelegateCall(caller *Frame, addr common.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	if evm.depth >= int(params.CallCreateDepth) {
		return nil, gas, ErrDepthExceeded
	}
	code, codeHash := evm.codeAt(addr)
	callee := NewFrame(caller.CallerRef(), caller.SelfRef(), code, codeHash, caller.Value(), gas)
	callee.Depth = evm.depth + 1
	callee.Input = input
	callee.IsStatic = caller.IsStatic
	defer callee.Release()

	if p, ok := ActivePrecompiles(evm.Rules)[addr]; ok {
		return evm.runPrecompile(caller, addr, p, input, gas, nil)
	}

	evm.depth++
	ret, err := evm.runFrame(callee, false)
	evm.depth--
	if err != nil && err != ErrExecutionReverted {
		return nil, 0, err
	}
	return ret, callee.Gas, normalizeHaltErr(err)
}

// StaticCall runs addr's code read-only: SSTORE/LOG/CREATE/SELFDESTRUCT
// and value-transferring CALL all fail with ErrWriteProtection (spec.md
// §4.11 STATICCALL).
func (evm *EVM) StaticCall(caller *Frame, addr common.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	if evm.depth >= int(params.CallCreateDepth) {
		return nil, gas, ErrDepthExceeded
	}
	code, codeHash := evm.codeAt(addr)
	callee := NewFrame(caller.SelfRef(), AccountRef(addr), code, codeHash, nil, gas)
	callee.Depth = evm.depth + 1
	callee.Input = input
	defer callee.Release()

	if p, ok := ActivePrecompiles(evm.Rules)[addr]; ok {
		return evm.runPrecompile(caller, addr, p, input, gas, nil)
	}

	evm.depth++
	ret, err := evm.runFrame(callee, true)
	evm.depth--
	if err != nil && err != ErrExecutionReverted {
		return nil, 0, err
	}
	return ret, callee.Gas, normalizeHaltErr(err)
}

func (evm *EVM) runPrecompile(caller *Frame, addr common.Address, p PrecompiledContract, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	metrics.PrecompileCalls.WithLabelValues(addr.Hex()).Inc()
	if value != nil && !value.IsZero() {
		if err := evm.transfer(caller.Address(), addr, value); err != nil {
			return nil, gas, ErrInsufficientBalance
		}
	}
	ret, remaining, err := RunPrecompiledContract(p, input, gas)
	return ret, remaining, err
}

// codeAt returns an account's code and code hash, both empty for an EOA
// or non-existent address.
func (evm *EVM) codeAt(addr common.Address) ([]byte, common.Hash) {
	acc, ok := evm.State.GetAccount(addr)
	if !ok || acc.CodeHash == state.EmptyCodeHash || acc.CodeHash == (common.Hash{}) {
		return nil, common.Hash{}
	}
	return evm.State.GetCode(acc.CodeHash), acc.CodeHash
}

// accountIsEmptyOrMissing reports whether addr should be treated as "no
// account here" for EIP-161/EIP-2929 purposes (spec.md §4.3 "if target
// account is empty or non-existent"). Pre-Spurious-Dragon, only
// existence counted, matching Frontier/Homestead's account model before
// EIP-161 introduced the empty-account concept (spec.md §3 Account,
// defined at spec.md:46); from Spurious Dragon on, an account that
// exists but is empty (zero balance, zero nonce, no code) is treated the
// same as a missing one.
func (evm *EVM) accountIsEmptyOrMissing(addr common.Address) bool {
	acc, ok := evm.State.GetAccount(addr)
	if !ok {
		return true
	}
	if evm.Rules.IsSpuriousDragon {
		return acc.IsEmpty()
	}
	return false
}

// normalizeHaltErr maps the halt sentinels a frame can legitimately stop
// on (nil, ErrExecutionReverted) straight through; any other error has
// already been turned into a gas-consuming failure by runFrame.
func normalizeHaltErr(err error) error {
	if err == errStopToken {
		return nil
	}
	return err
}

// Create deploys input as init code at the address derived from
// caller+nonce (spec.md §4.11 CREATE).
func (evm *EVM) Create(caller common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, common.Address, uint64, error) {
	callerAcc, _ := evm.State.GetAccount(caller)
	addr := crypto.CreateAddress(caller, callerAcc.Nonce)
	return evm.create(caller, addr, input, gas, value)
}

// Create2 deploys input at the CREATE2 address derived from
// caller+salt+keccak256(init code) (spec.md §4.11 CREATE2, EIP-1014).
func (evm *EVM) Create2(caller common.Address, input []byte, gas uint64, value *uint256.Int, salt *uint256.Int) ([]byte, common.Address, uint64, error) {
	addr := crypto.CreateAddress2(caller, salt.Bytes32(), crypto.Keccak256(input))
	return evm.create(caller, addr, input, gas, value)
}

func (evm *EVM) create(caller, addr common.Address, initCode []byte, gas uint64, value *uint256.Int) ([]byte, common.Address, uint64, error) {
	if evm.depth >= int(params.CallCreateDepth) {
		return nil, common.Address{}, gas, ErrDepthExceeded
	}
	if len(initCode) > params.MaxInitCodeSize {
		return nil, common.Address{}, gas, ErrMaxInitCodeSizeExceeded
	}
	if value != nil && !value.IsZero() {
		fromAcc, _ := evm.State.GetAccount(caller)
		if fromAcc.Balance == nil || fromAcc.Balance.Lt(value) {
			return nil, common.Address{}, gas, nil
		}
	}
	if existing, ok := evm.State.GetAccount(addr); ok && (!existing.IsEmpty() || existing.Nonce != 0) {
		return nil, common.Address{}, gas, ErrContractAddrCollision
	}

	// The caller's nonce bump is not rolled back even if the creation
	// below fails - matches the real chains in the pack (e.g. coreth's
	// evm.go: "We add this to the access list _before_ taking a
	// snapshot. Even if the creation fails, [this] should not be rolled
	// back").
	callerAcc, _ := evm.State.GetAccount(caller)
	callerAcc.Nonce++
	evm.State.SetAccount(caller, callerAcc)

	evm.depth++
	defer func() { evm.depth-- }()

	// Everything from here on - the value transfer, the new account's
	// nonce, and the deployed code - must be undone together if the
	// init code reverts or errors (spec.md §4.12 step 5/8), so it all
	// happens inside one snapshot taken before any of it runs.
	snap := evm.State.CreateSnapshot()

	if value != nil && !value.IsZero() {
		if err := evm.transfer(caller, addr, value); err != nil {
			if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
				panic(revertErr)
			}
			return nil, addr, gas, nil
		}
	}
	newAcc, _ := evm.State.GetAccount(addr)
	newAcc.Nonce = 1
	evm.State.SetAccount(addr, newAcc)

	frame := NewFrame(AccountRef(caller), AccountRef(addr), initCode, common.Hash{}, value, gas)
	frame.IsCreate = true
	evm.createdThisTx[addr] = true
	defer frame.Release()

	ret, err := evm.runFrame(frame, false)
	if err != nil {
		if err == ErrExecutionReverted {
			if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
				panic(revertErr)
			}
			return ret, addr, frame.Gas, err
		}
		if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
			panic(revertErr)
		}
		return nil, addr, 0, err
	}

	if len(ret) > 0 && ret[0] == 0xef {
		if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
			panic(revertErr)
		}
		return nil, addr, 0, ErrInvalidCodeEntry
	}
	if len(ret) > params.MaxCodeSize {
		if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
			panic(revertErr)
		}
		return nil, addr, 0, ErrMaxCodeSizeExceeded
	}
	depositCost := uint64(len(ret)) * params.CreateDataGas
	if !frame.UseGas(depositCost) {
		if revertErr := evm.State.RevertToSnapshot(snap); revertErr != nil {
			panic(revertErr)
		}
		return nil, addr, 0, ErrOutOfGas
	}
	codeHash := evm.State.SetCode(ret)
	deployed, _ := evm.State.GetAccount(addr)
	deployed.CodeHash = codeHash
	evm.State.SetAccount(addr, deployed)
	evm.State.CommitSnapshot(snap)
	return ret, addr, frame.Gas, nil
}
