// (c) 2024 Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
//
// Adapted from the upstream rules_extra.go: the Avalanche-specific
// precompile-config/predicater plumbing is replaced with the plain
// hardfork boolean set and chain-type tag this spec calls for.

package params

import "github.com/ethereum/go-ethereum/common"

// ChainType distinguishes mainnet precompile/gas behavior from an L2's.
// Only the dispatch hook is implemented here (see vm.ActivePrecompiles);
// individual L2 semantics are each chain's own concern.
type ChainType int

const (
	ChainTypeMainnet ChainType = iota
	ChainTypeOptimism
	ChainTypeArbitrum
)

func (c ChainType) String() string {
	switch c {
	case ChainTypeOptimism:
		return "optimism"
	case ChainTypeArbitrum:
		return "arbitrum"
	default:
		return "mainnet"
	}
}

// Rules is the boolean hardfork flag set gating opcode/precompile
// availability and cost, resolved once per call from a ChainConfig and a
// block context. Flags are monotone across forks: IsLondon implies
// IsBerlin implies IsIstanbul, and so on, enforced by Rules' constructor.
type Rules struct {
	ChainID uint64
	Chain   ChainType

	IsHomestead        bool
	IsTangerineWhistle bool
	IsSpuriousDragon   bool
	IsByzantium        bool
	IsConstantinople   bool
	IsPetersburg       bool
	IsIstanbul         bool
	IsBerlin           bool
	IsLondon           bool
	IsMerge            bool
	IsShanghai         bool
	IsCancun           bool
}

// GetRulesExtra exists for symmetry with the teacher's accessor pattern;
// Rules carries everything the interpreter needs directly, so there is no
// separate "extra" struct to resolve here.
func GetRulesExtra(r Rules) *Rules {
	return &r
}

// IsPrecompileEnabled reports whether the reserved address addr names an
// active mainnet precompile (0x01-0x0a, fork-gated) under r. It does not
// consider chain-type precompile extensions, and nothing in this module
// calls it: access-list warming uses vm.ActivePrecompileAddresses.
func (r Rules) IsPrecompileEnabled(addr common.Address) bool {
	var last byte
	switch {
	case r.IsCancun:
		last = 0x0a
	case r.IsIstanbul:
		last = 0x09
	case r.IsByzantium:
		last = 0x08
	default:
		last = 0x04
	}
	for i := 0; i < 19; i++ {
		if addr[i] != 0 {
			return false
		}
	}
	return addr[19] >= 1 && addr[19] <= last
}
