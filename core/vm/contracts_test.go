// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/holoevm/evmcore/params"
)

// A chain-type precompile registered for ChainTypeOptimism must appear in
// ActivePrecompiles/ActivePrecompileAddresses for rules tagged with that
// chain type, and must be absent for mainnet rules (spec.md §10
// supplement, §4.13 Open Question).
func TestActivePrecompiles_ChainTypeExtensionIsScoped(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000007e")
	RegisterChainTypePrecompile(params.ChainTypeOptimism, addr, &dataCopy{})

	cfg := params.MainnetChainConfig()
	mainnetRules := cfg.Rules(big.NewInt(20_000_000), true, 1_710_000_000)
	require.NotContains(t, ActivePrecompiles(mainnetRules), addr)
	require.NotContains(t, ActivePrecompileAddresses(mainnetRules), addr)

	opRules := mainnetRules
	opRules.Chain = params.ChainTypeOptimism
	require.Contains(t, ActivePrecompiles(opRules), addr)
	require.Contains(t, ActivePrecompileAddresses(opRules), addr)
}

// Registering a chain-type precompile at a native 0x01-0x0a address must
// panic rather than silently shadow the native contract.
func TestRegisterChainTypePrecompile_PanicsOnNativeCollision(t *testing.T) {
	require.Panics(t, func() {
		RegisterChainTypePrecompile(params.ChainTypeArbitrum, common.BytesToAddress([]byte{1}), &dataCopy{})
	})
}
