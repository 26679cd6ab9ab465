// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/params"
)

func newTestExecutor(t *testing.T) (Executor, *state.MemoryState, BlockContext, params.Rules) {
	t.Helper()
	st := state.NewMemoryState()
	cfg := params.MainnetChainConfig()
	rules := cfg.Rules(big.NewInt(20_000_000), true, 1_710_000_000)
	blockCtx := BlockContext{
		Coinbase:    common.HexToAddress("0xc0ffee00000000000000000000000000000000"),
		BlockNumber: big.NewInt(20_000_000),
		Time:        big.NewInt(1_710_000_000),
		BaseFee:     big.NewInt(1_000_000_000),
		GasLimit:    30_000_000,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	return NewExecutor(st, cfg), st, blockCtx, rules
}

// A plain value-transfer CALL (no code, no calldata) is charged exactly
// the 21000 base intrinsic gas and nothing more.
func TestExecutor_PlainTransferChargesBaseIntrinsicGas(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	to := common.HexToAddress("0xa000000000000000000000000000000000000a")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	result, err := exec.Execute(context.Background(), TxCall{
		Kind:     CallKindCall,
		From:     from,
		To:       to,
		Value:    uint256.NewInt(100),
		GasLimit: 100_000,
		GasPrice: big.NewInt(1),
	}, blockCtx, rules)

	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, params.TxGas, result.GasUsed)
	require.Equal(t, uint256.NewInt(100), mustBalance(t, st, to))
}

// Intrinsic gas must count calldata at 16 gas/non-zero byte and 4
// gas/zero byte (EIP-2028) on top of the 21000 base.
func TestExecutor_IntrinsicGasCountsCalldata(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	to := common.HexToAddress("0xa000000000000000000000000000000000000a")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	input := []byte{0x00, 0x01, 0x00, 0x02} // 2 zero bytes, 2 non-zero bytes
	result, err := exec.Execute(context.Background(), TxCall{
		Kind:     CallKindCall,
		From:     from,
		To:       to,
		Value:    new(uint256.Int),
		Input:    input,
		GasLimit: 100_000,
		GasPrice: big.NewInt(1),
	}, blockCtx, rules)

	require.NoError(t, err)
	require.True(t, result.Success)
	want := params.TxGas + 2*params.TxDataZeroGas + 2*params.TxDataNonZeroGasEIP2028
	require.Equal(t, want, result.GasUsed)
}

// A call whose gas limit sits below the intrinsic-gas floor is rejected
// before touching the interpreter - no revert, no partial state change.
func TestExecutor_GasLimitBelowIntrinsicFails(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	to := common.HexToAddress("0xa000000000000000000000000000000000000a")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	result, err := exec.Execute(context.Background(), TxCall{
		Kind:     CallKindCall,
		From:     from,
		To:       to,
		Value:    new(uint256.Int),
		GasLimit: params.TxGas - 1,
		GasPrice: big.NewInt(1),
	}, blockCtx, rules)

	require.NoError(t, err)
	require.False(t, result.Success)
	require.ErrorIs(t, result.Err, ErrIntrinsicGasExceedsLimit)
}

// Executing against an already-cancelled context must fail fast with the
// context's error and never touch state - ctx is a caller-side wall-clock
// guard only, not a mid-interpreter cancellation hook.
func TestExecutor_CancelledContext(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Execute(ctx, TxCall{
		Kind:     CallKindCall,
		From:     from,
		To:       common.HexToAddress("0xa000000000000000000000000000000000000a"),
		GasLimit: 100_000,
	}, blockCtx, rules)
	require.ErrorIs(t, err, context.Canceled)
}

// Deploying a contract through the Executor must intrinsically charge the
// 53000 creation uplift and hand back a non-zero CREATE address.
func TestExecutor_CreateChargesCreationUplift(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	// PUSH1 0, PUSH1 0, RETURN - deploys empty runtime code.
	initCode := []byte{0x60, 0x00, 0x60, 0x00, 0xf3}
	result, err := exec.Execute(context.Background(), TxCall{
		Kind:     CallKindCreate,
		From:     from,
		Value:    new(uint256.Int),
		Input:    initCode,
		GasLimit: 200_000,
		GasPrice: big.NewInt(1),
	}, blockCtx, rules)

	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEqual(t, common.Address{}, result.CreatedAddress)
	require.GreaterOrEqual(t, result.GasUsed, params.TxGasContractCreation)
}

// A single SSTORE clear earns a refund that sits under the gas_used/5 cap
// (EIP-3529), so it is subtracted from GasUsed in full.
func TestExecutor_RefundUnderOneFifthCapAppliesInFull(t *testing.T) {
	exec, st, blockCtx, rules := newTestExecutor(t)
	from := common.HexToAddress("0xf000000000000000000000000000000000000f")
	to := common.HexToAddress("0xa000000000000000000000000000000000000a")
	st.SetAccount(from, state.Account{Balance: uint256.NewInt(1_000_000_000_000)})

	// Pre-seed a non-zero slot, then clear it with an SSTORE to 0 - this
	// earns the EIP-3529 clear-slot refund (4800 on a slot that turns out
	// to be cold, since MarkSlotWarm's own 2100 cold surcharge is folded
	// back out of the 5000 reset cost).
	st.SetStorage(to, common.Hash{}, common.HexToHash("0x01"))
	code := []byte{0x60, 0x00, 0x60, 0x00, 0x55, 0x00} // PUSH1 0, PUSH1 0, SSTORE, STOP
	codeHash := st.SetCode(code)
	st.SetAccount(to, state.Account{Balance: new(uint256.Int), CodeHash: codeHash})

	result, err := exec.Execute(context.Background(), TxCall{
		Kind:     CallKindCall,
		From:     from,
		To:       to,
		Value:    new(uint256.Int),
		GasLimit: 100_000,
		GasPrice: big.NewInt(1),
	}, blockCtx, rules)

	require.NoError(t, err)
	require.True(t, result.Success)
	// 21000 intrinsic + 3 + 3 + 5000 (SSTORE reset, cold) = 26006 raw;
	// refund 4800 sits under the 26006/5 = 5201 cap, so it applies in full.
	require.Equal(t, uint64(21206), result.GasUsed)
}

func mustBalance(t *testing.T, st *state.MemoryState, addr common.Address) *uint256.Int {
	t.Helper()
	acc, ok := st.GetAccount(addr)
	require.True(t, ok)
	return acc.Balance
}
