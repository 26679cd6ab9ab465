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

var (
	testDeployer = common.HexToAddress("0xd000000000000000000000000000000000000d")
	testContract = common.HexToAddress("0xc000000000000000000000000000000000000c")
)

func newTestEVM(t *testing.T) (*EVM, *state.MemoryState) {
	t.Helper()
	st := state.NewMemoryState()
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
	return NewEVM(st, blockCtx, txCtx, cfg, rules), st
}

// deployCode installs code at testContract without going through CREATE,
// so tests exercise the interpreter loop directly rather than the
// deposit-gas/size-cap machinery Create already covers elsewhere.
func deployCode(st *state.MemoryState, code []byte) common.Hash {
	return deployCodeAt(st, testContract, code)
}

func deployCodeAt(st *state.MemoryState, addr common.Address, code []byte) common.Hash {
	hash := st.SetCode(code)
	st.SetAccount(addr, state.Account{Balance: new(uint256.Int), CodeHash: hash})
	return hash
}

func rootFrame(gas uint64) *Frame {
	return NewFrame(AccountRef(testDeployer), AccountRef(testDeployer), nil, common.Hash{}, new(uint256.Int), gas)
}

// scenario 1: PUSH1 1, PUSH32 MAX_U256, ADD, STOP - wraps to 0, costs 9 gas.
func TestInterpreter_AddOverflow(t *testing.T) {
	evm, st := newTestEVM(t)
	code := append([]byte{0x60, 0x01, 0x7f}, make([]byte, 32)...)
	for i := range code[3:] {
		code[3+i] = 0xff
	}
	code = append(code, 0x01, 0x00) // ADD, STOP
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, gasLeft, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000-9), gasLeft)
}

// scenario 4: base 2 raised to exponent 0x0100, EXP - exponent needs 2
// bytes, dynamic cost 100, total 10+100+3+3 = 116 gas. EXP pops its base
// off the top of the stack and peeks its exponent beneath it, so the
// exponent must be pushed first to land second-from-top.
func TestInterpreter_ExpGas(t *testing.T) {
	evm, st := newTestEVM(t)
	code := []byte{0x61, 0x01, 0x00, 0x60, 0x02, 0x0a, 0x00} // PUSH2 0x0100, PUSH1 2, EXP, STOP
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, gasLeft, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000-116), gasLeft)
}

// scenario 6: PUSH1 0x5B, JUMP - the pushed value is PUSH1's immediate
// data, not a real JUMPDEST; JUMP must reject it and burn all gas.
func TestInterpreter_JumpIntoPushData(t *testing.T) {
	evm, st := newTestEVM(t)
	code := []byte{0x60, 0x5B, 0x56} // PUSH1 0x5B, JUMP
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, gasLeft, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.ErrorIs(t, err, ErrInvalidJump)
	require.Equal(t, uint64(0), gasLeft)
}

// A real JUMPDEST byte that happens to sit inside a PUSH's immediate
// data must still be rejected, even when it's in range.
func TestInterpreter_JumpdestInsidePushDataInRange(t *testing.T) {
	evm, st := newTestEVM(t)
	// PUSH2 0x5B 0x5B, POP, JUMP(2) - position 2 holds a literal 0x5B
	// byte that is the second half of the PUSH2 immediate, not a
	// standalone JUMPDEST.
	code := []byte{0x61, 0x5B, 0x5B, 0x50, 0x60, 0x02, 0x56}
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, _, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.ErrorIs(t, err, ErrInvalidJump)
}

// scenario 2: SSTORE on a fresh cold slot, value 42. Berlin's cold-slot
// surcharge (2100) stacks with EIP-2200's zero->non-zero set cost
// (20000), for 22100 dynamic gas plus two PUSH1s at 3 each - 22106 total.
// Storage must read back 42 once the call's snapshot commits.
func TestInterpreter_SstoreColdSet(t *testing.T) {
	evm, st := newTestEVM(t)
	code := []byte{0x60, 0x2a, 0x60, 0x00, 0x55, 0x00} // PUSH1 42, PUSH1 0, SSTORE, STOP
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, gasLeft, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000-22106), gasLeft)

	got := st.GetStorage(testContract, common.Hash{})
	require.Equal(t, common.Hash(uint256.NewInt(42).Bytes32()), got)
}

// scenario 3: a parent contract CALLs a child that writes storage and
// then REVERTs. The child's write must not survive - the CALL's own
// snapshot is rolled back - and the parent observes failure (0 pushed)
// rather than the revert propagating up through it.
func TestInterpreter_NestedRevert(t *testing.T) {
	evm, st := newTestEVM(t)

	child := common.HexToAddress("0xc000000000000000000000000000000000000e")
	childCode := []byte{
		0x60, 0x01, // PUSH1 1 (value)
		0x60, 0x00, // PUSH1 0 (key)
		0x55,       // SSTORE
		0x60, 0x00, // PUSH1 0 (size)
		0x60, 0x00, // PUSH1 0 (offset)
		0xfd, // REVERT
	}
	deployCodeAt(st, child, childCode)

	parentCode := []byte{
		0x60, 0x00, // PUSH1 0 (retSize)
		0x60, 0x00, // PUSH1 0 (retOffset)
		0x60, 0x00, // PUSH1 0 (argsSize)
		0x60, 0x00, // PUSH1 0 (argsOffset)
		0x60, 0x00, // PUSH1 0 (value)
	}
	parentCode = append(parentCode, 0x73) // PUSH20 <child address>
	parentCode = append(parentCode, child.Bytes()...)
	parentCode = append(parentCode,
		0x62, 0x01, 0x86, 0xa0, // PUSH3 0x0186A0 (gas = 100000)
		0xf1,       // CALL
		0x60, 0x01, // PUSH1 1 (key)
		0x55, // SSTORE (store the CALL's success flag at slot 1)
		0x00, // STOP
	)
	deployCode(st, parentCode)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, _, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.NoError(t, err)

	require.Equal(t, common.Hash{}, st.GetStorage(child, common.Hash{}), "reverted write must not survive")
	require.Equal(t, common.Hash{}, st.GetStorage(testContract, common.HexToHash("0x01")), "parent must see CALL failure (0)")
}

// MULMOD must reduce the full 512-bit product, not a 256-bit-truncated
// one: a = b = 2**128, n = 7. 2**128 mod 7 = 4 (128 = 3*42+2, and
// 2**1,2**2,2**3 mod 7 cycle as 2,4,1), so (a*b) mod n = (4*4) mod 7 = 2.
// A naive implementation that truncates a*b to 256 bits first would see
// 2**256 mod 2**256 = 0 and answer 0 instead.
func TestInterpreter_MulmodFullPrecision(t *testing.T) {
	evm, st := newTestEVM(t)

	pow128 := append([]byte{0x01}, make([]byte, 16)...) // 17 bytes: 2**128

	code := []byte{0x60, 0x07} // PUSH1 7 (n)
	code = append(code, 0x70)  // PUSH17
	code = append(code, pow128...)
	code = append(code, 0x70) // PUSH17
	code = append(code, pow128...)
	code = append(code,
		0x08,       // MULMOD
		0x60, 0x00, // PUSH1 0 (key)
		0x55, // SSTORE
		0x00, // STOP
	)
	deployCode(st, code)

	caller := rootFrame(1_000_000)
	defer caller.Release()

	_, _, err := evm.Call(caller, testContract, nil, 1_000_000, nil)
	require.NoError(t, err)

	got := st.GetStorage(testContract, common.Hash{})
	require.Equal(t, common.Hash(uint256.NewInt(2).Bytes32()), got)
}

func TestInterpreter_InvalidOpcode(t *testing.T) {
	evm, st := newTestEVM(t)
	deployCode(st, []byte{0x0c}) // 0x0c is unassigned in every fork
	caller := rootFrame(1_000)
	defer caller.Release()

	_, gasLeft, err := evm.Call(caller, testContract, nil, 1_000, nil)
	require.ErrorIs(t, err, ErrInvalidOpcode)
	require.Equal(t, uint64(0), gasLeft)
}
