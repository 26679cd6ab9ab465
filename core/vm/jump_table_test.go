// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

// Spurious Dragon (EIP-160) repriced EXP's per-exponent-byte cost from 10
// to 50, and every fork from Spurious Dragon through Cancun must keep
// that repricing - it is not a one-fork-only bump.
func TestJumpTable_ExpRepricingSurvivesPastSpuriousDragon(t *testing.T) {
	exponent := uint256.NewInt(0x0100) // 2-byte exponent

	tables := []JumpTable{
		newSpuriousDragonInstructionSet(),
		newByzantiumInstructionSet(),
		newConstantinopleInstructionSet(),
		newIstanbulInstructionSet(),
		newBerlinInstructionSet(),
		newLondonInstructionSet(),
		newCancunInstructionSet(),
	}
	for _, tbl := range tables {
		got, err := tbl[EXP].dynamicGas(nil, nil, dummyStackWithTop(exponent), nil, 0)
		require.NoError(t, err)
		require.Equal(t, uint64(2*50), got, "EXP dynamic gas must use the EIP-158 50 gas/byte rate")
	}

	// Frontier/Homestead/Tangerine Whistle keep the original 10 gas/byte.
	for _, tbl := range []JumpTable{newFrontierInstructionSet(), newHomesteadInstructionSet(), newTangerineWhistleInstructionSet()} {
		got, err := tbl[EXP].dynamicGas(nil, nil, dummyStackWithTop(exponent), nil, 0)
		require.NoError(t, err)
		require.Equal(t, uint64(2*10), got, "EXP dynamic gas pre-158 must use the 10 gas/byte rate")
	}
}

// dummyStackWithTop builds a two-element stack matching EXP's operand
// order (exponent pushed first, base on top, per opExp's
// pop-base/peek-exponent body) so gasExp's stack.Back(1) read resolves to
// exponent without running the interpreter.
func dummyStackWithTop(exponent *uint256.Int) *Stack {
	s := newstack()
	s.push(exponent)
	s.push(new(uint256.Int)) // base, unread by the gas function
	return s
}
