// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/params"
)

// A successful value-transfer CALL must snapshot once and commit that same
// snapshot - never reach RevertToSnapshot - and must debit the caller and
// credit the callee by exactly the transferred value (spec.md §4.11 CALL,
// step 1). Driving this through a mocked state.State (rather than
// MemoryState) isolates the assertion to EVM.Call's own sequencing of
// State calls, independent of the in-memory implementation.
func TestEVM_CallOnMockState_CommitsSnapshotAndTransfersValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockState := state.NewMockState(ctrl)

	caller := common.HexToAddress("0xf000000000000000000000000000000000000f")
	callee := common.HexToAddress("0xa000000000000000000000000000000000000a")
	const snap = state.SnapshotID(1)

	mockState.EXPECT().GetAccount(caller).
		Return(state.Account{Balance: uint256.NewInt(1_000)}, true).AnyTimes()
	mockState.EXPECT().GetAccount(callee).
		Return(state.Account{}, false).AnyTimes()
	mockState.EXPECT().GetCode(common.Hash{}).Return(nil).AnyTimes()

	mockState.EXPECT().SetAccount(caller, state.Account{Balance: uint256.NewInt(900)})
	mockState.EXPECT().SetAccount(callee, state.Account{Balance: uint256.NewInt(100), CodeHash: state.EmptyCodeHash})

	mockState.EXPECT().CreateSnapshot().Return(snap)
	mockState.EXPECT().CommitSnapshot(snap)
	// No EXPECT for RevertToSnapshot: gomock fails the test if EVM.Call
	// invokes it on this success path.

	cfg := params.MainnetChainConfig()
	rules := cfg.Rules(big.NewInt(20_000_000), true, 1_710_000_000)
	blockCtx := BlockContext{
		BlockNumber: big.NewInt(20_000_000),
		Time:        big.NewInt(1_710_000_000),
		BaseFee:     big.NewInt(1_000_000_000),
		GasLimit:    30_000_000,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	txCtx := TxContext{Origin: caller, GasPrice: big.NewInt(1_000_000_000)}
	evm := NewEVM(mockState, blockCtx, txCtx, cfg, rules)

	root := NewFrame(AccountRef(caller), AccountRef(caller), nil, common.Hash{}, new(uint256.Int), 100_000)
	defer root.Release()

	ret, gasLeft, err := evm.Call(root, callee, nil, 100_000, uint256.NewInt(100))
	require.NoError(t, err)
	require.Empty(t, ret)
	require.Equal(t, uint64(100_000), gasLeft, "a bare value transfer to an empty account costs no interpreter gas")
}

// A failed inner frame (OutOfGas on a callee with no gas at all to run a
// non-empty program) must revert the snapshot it opened rather than commit
// it (spec.md §4.12 step 5 analog for CALL).
func TestEVM_CallOnMockState_RevertsSnapshotOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockState := state.NewMockState(ctrl)

	caller := common.HexToAddress("0xf000000000000000000000000000000000000f")
	callee := common.HexToAddress("0xa000000000000000000000000000000000000a")
	const snap = state.SnapshotID(7)
	codeHash := common.HexToHash("0x01")
	// PUSH1 1, PUSH1 1, ADD, STOP - any non-empty, valid program; supplying
	// zero gas makes the very first opcode fail with ErrOutOfGas.
	code := []byte{0x60, 0x01, 0x60, 0x01, 0x01, 0x00}

	mockState.EXPECT().GetAccount(caller).
		Return(state.Account{Balance: new(uint256.Int)}, true).AnyTimes()
	mockState.EXPECT().GetAccount(callee).
		Return(state.Account{CodeHash: codeHash}, true).AnyTimes()
	mockState.EXPECT().GetCode(codeHash).Return(code).AnyTimes()

	mockState.EXPECT().CreateSnapshot().Return(snap)
	mockState.EXPECT().RevertToSnapshot(snap).Return(nil)
	// No EXPECT for CommitSnapshot or SetAccount: a zero-value transfer
	// skips transfer() entirely, and the failed frame must not commit.

	cfg := params.MainnetChainConfig()
	rules := cfg.Rules(big.NewInt(20_000_000), true, 1_710_000_000)
	blockCtx := BlockContext{
		BlockNumber: big.NewInt(20_000_000),
		Time:        big.NewInt(1_710_000_000),
		BaseFee:     big.NewInt(1_000_000_000),
		GasLimit:    30_000_000,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	txCtx := TxContext{Origin: caller, GasPrice: big.NewInt(1_000_000_000)}
	evm := NewEVM(mockState, blockCtx, txCtx, cfg, rules)

	root := NewFrame(AccountRef(caller), AccountRef(caller), nil, common.Hash{}, new(uint256.Int), 100_000)
	defer root.Release()

	_, _, err := evm.Call(root, callee, nil, 0, new(uint256.Int))
	require.ErrorIs(t, err, ErrOutOfGas)
}
