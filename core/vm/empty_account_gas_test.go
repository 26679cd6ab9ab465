// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/params"
)

// homesteadOnlyEVM builds an EVM whose Rules predate Spurious Dragon, so
// the EIP-161 empty-account concept is not yet in effect - existence
// alone gates the new-account surcharge (spec.md §4.3, pre-EIP-161).
func homesteadOnlyEVM(t *testing.T, st *state.MemoryState) *EVM {
	t.Helper()
	cfg := &params.ChainConfig{ChainID: big.NewInt(1), HomesteadBlock: big.NewInt(0)}
	rules := cfg.Rules(big.NewInt(0), false, 0)
	blockCtx := BlockContext{
		BlockNumber: big.NewInt(0),
		Time:        big.NewInt(0),
		GasLimit:    30_000_000,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	txCtx := TxContext{Origin: testDeployer, GasPrice: big.NewInt(1)}
	return NewEVM(st, blockCtx, txCtx, cfg, rules)
}

// mainnetEVM builds an EVM over an existing state with every fork
// (including Spurious Dragon) active, the same rule set newTestEVM uses
// but parameterized on a caller-supplied state.
func mainnetEVM(t *testing.T, st *state.MemoryState) *EVM {
	t.Helper()
	cfg := params.MainnetChainConfig()
	rules := cfg.Rules(big.NewInt(20_000_000), true, 1_710_000_000)
	blockCtx := BlockContext{
		BlockNumber: big.NewInt(20_000_000),
		Time:        big.NewInt(1_710_000_000),
		BaseFee:     big.NewInt(1_000_000_000),
		GasLimit:    30_000_000,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	txCtx := TxContext{Origin: testDeployer, GasPrice: big.NewInt(1_000_000_000)}
	return NewEVM(st, blockCtx, txCtx, cfg, rules)
}

// callStackFor builds the 7-element operand stack gasCall/gasCallEIP2929
// read via Back(1)=addr and Back(2)=value; the remaining slots are unread
// by those gas functions and left zero.
func callStackFor(addr common.Address, value uint64) *Stack {
	s := newstack()
	s.push(new(uint256.Int))           // retLength (Back(6))
	s.push(new(uint256.Int))           // retOffset (Back(5))
	s.push(new(uint256.Int))           // argsLength (Back(4))
	s.push(new(uint256.Int))           // argsOffset (Back(3))
	s.push(new(uint256.Int).SetUint64(value)) // value (Back(2))
	addrWord := new(uint256.Int)
	addrWord.SetBytes(addr.Bytes())
	s.push(addrWord) // addr (Back(1))
	s.push(new(uint256.Int).SetUint64(100_000)) // gas (Back(0))
	return s
}

// A CALL carrying value to an account that exists but is empty (zero
// balance, zero nonce, empty code hash - e.g. state-cleared by EIP-161)
// must be charged the 25000 new-account surcharge exactly as if the
// account were missing entirely, from Spurious Dragon onward (spec.md
// §4.3's literal "empty or non-existent" rule).
func TestGasCall_SurchargesExistingEmptyAccountPostSpuriousDragon(t *testing.T) {
	st := state.NewMemoryState()
	evm := mainnetEVM(t, st)

	target := common.HexToAddress("0x00000000000000000000000000000000000099")
	st.SetAccount(target, state.EmptyAccount()) // exists, but empty

	stack := callStackFor(target, 1)
	mem := NewMemory()
	frame := NewFrame(AccountRef(testDeployer), AccountRef(testDeployer), nil, common.Hash{}, new(uint256.Int), 100_000)
	defer frame.Release()
	got, err := gasCallEIP2929(evm, frame, stack, mem, 0)
	require.NoError(t, err)
	// target is cold on first touch, so accessCost charges
	// ColdAccountAccessCostEIP2929, not the warm re-read price.
	require.Equal(t, params.ColdAccountAccessCostEIP2929+params.CallValueTransferGas+params.CallNewAccountGas, got)
}

// The same empty-but-existing account must NOT earn the surcharge
// pre-Spurious-Dragon: existence, not emptiness, was all that mattered
// before EIP-161.
func TestGasCall_DoesNotSurchargeExistingEmptyAccountPreSpuriousDragon(t *testing.T) {
	st := state.NewMemoryState()
	evm := homesteadOnlyEVM(t, st)

	target := common.HexToAddress("0x00000000000000000000000000000000000099")
	st.SetAccount(target, state.EmptyAccount())

	stack := callStackFor(target, 1)
	mem := NewMemory()
	frame := NewFrame(AccountRef(testDeployer), AccountRef(testDeployer), nil, common.Hash{}, new(uint256.Int), 100_000)
	defer frame.Release()
	got, err := gasCall(evm, frame, stack, mem, 0)
	require.NoError(t, err)
	require.Equal(t, params.ColdAccountAccessCostEIP2929+params.CallValueTransferGas, got,
		"pre-158 existence alone is sufficient to avoid the new-account surcharge")
}

// A value-carrying SELFDESTRUCT whose beneficiary exists but is empty
// must pay the same 25000 surcharge a genuinely missing beneficiary
// would (spec.md §4.3, EIP-161).
func TestGasSelfdestruct_SurchargesExistingEmptyBeneficiary(t *testing.T) {
	st := state.NewMemoryState()
	evm := mainnetEVM(t, st)

	beneficiary := common.HexToAddress("0x00000000000000000000000000000000000088")
	st.SetAccount(beneficiary, state.EmptyAccount())

	stack := newstack()
	addrWord := new(uint256.Int)
	addrWord.SetBytes(beneficiary.Bytes())
	stack.push(addrWord)

	got, err := gasSelfdestructEIP150(evm, nil, stack, nil, 0)
	require.NoError(t, err)
	require.Equal(t, params.CallNewAccountGas/5+params.CallNewAccountGas, got)
}

// EXTCODEHASH of an account that exists but is empty must push zero,
// same as a non-existent address (EIP-1052/EIP-161).
func TestOpExtCodeHash_ZeroForExistingEmptyAccount(t *testing.T) {
	st := state.NewMemoryState()
	evm := mainnetEVM(t, st)

	addr := common.HexToAddress("0x00000000000000000000000000000000000077")
	st.SetAccount(addr, state.EmptyAccount())

	frame := NewFrame(AccountRef(testDeployer), AccountRef(testDeployer), nil, common.Hash{}, new(uint256.Int), 100_000)
	defer frame.Release()
	addrWord := new(uint256.Int)
	addrWord.SetBytes(addr.Bytes())
	frame.Stack.push(addrWord)

	interp := &Interpreter{evm: evm}
	_, err := opExtCodeHash(nil, interp, frame)
	require.NoError(t, err)
	require.True(t, frame.Stack.peek().IsZero())
}
