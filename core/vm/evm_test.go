// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/holoevm/evmcore/core/state"
)

// A CREATE whose init code REVERTs must undo everything it did to reach
// that point - the value transfer into the not-yet-deployed account and
// that account's nonce=1 bump - even though the caller's own nonce
// increment (a separate, never-reverted step) stands (spec.md §4.12).
func TestEVM_CreateRevertUndoesTransferAndNewAccountNonce(t *testing.T) {
	evm, st := newTestEVM(t)

	callerAcc := state.Account{Balance: uint256.NewInt(1_000)}
	st.SetAccount(testDeployer, callerAcc)

	// PUSH1 0, PUSH1 0, REVERT - reverts immediately with empty data.
	initCode := []byte{0x60, 0x00, 0x60, 0x00, 0xfd}

	ret, addr, _, err := evm.Create(testDeployer, initCode, 100_000, uint256.NewInt(100))
	require.ErrorIs(t, err, ErrExecutionReverted)
	require.Empty(t, ret)

	_, exists := st.GetAccount(addr)
	require.False(t, exists, "a reverted CREATE must leave no trace of the new account's nonce/value bump")

	gotCaller, _ := st.GetAccount(testDeployer)
	require.Equal(t, uint64(1_000), gotCaller.Balance.Uint64(), "the value transfer must be rolled back")
	require.Equal(t, uint64(1), gotCaller.Nonce, "the caller's own nonce bump is never rolled back")
}

// A successful CREATE leaves both the nonce bump and the deployed code in
// place, with the transferred value credited to the new account.
func TestEVM_CreateSuccessCommitsTransferAndCode(t *testing.T) {
	evm, st := newTestEVM(t)
	st.SetAccount(testDeployer, state.Account{Balance: uint256.NewInt(1_000)})

	// PUSH1 0, PUSH1 0, RETURN - deploys empty runtime code.
	initCode := []byte{0x60, 0x00, 0x60, 0x00, 0xf3}

	ret, addr, _, err := evm.Create(testDeployer, initCode, 100_000, uint256.NewInt(100))
	require.NoError(t, err)
	require.Empty(t, ret)

	newAcc, exists := st.GetAccount(addr)
	require.True(t, exists)
	require.Equal(t, uint64(1), newAcc.Nonce)
	require.Equal(t, uint64(100), newAcc.Balance.Uint64())

	gotCaller, _ := st.GetAccount(testDeployer)
	require.Equal(t, uint64(900), gotCaller.Balance.Uint64())
	require.Equal(t, uint64(1), gotCaller.Nonce)
}
