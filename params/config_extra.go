// (c) 2024 Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
//
// Adapted from the upstream config_extra.go: the Avalanche
// upgrade-timestamp/precompile-upgrade machinery is replaced with a plain
// block-number-or-timestamp ChainConfig that resolves a params.Rules for a
// given block, the way go-ethereum's own params.ChainConfig.Rules does.

package params

import (
	"encoding/json"
	"math/big"
)

// ChainConfig names the block number or timestamp at which each hardfork
// activates. A nil pointer means "never activated". Block-gated forks use
// *big.Int (pre-Merge forks only ever gated on block number); timestamp-
// gated forks (Shanghai onward) use *uint64, matching go-ethereum's own
// split representation.
type ChainConfig struct {
	ChainID *big.Int `json:"chainId"`
	Chain   ChainType `json:"chainType,omitempty"`

	HomesteadBlock        *big.Int `json:"homesteadBlock,omitempty"`
	TangerineWhistleBlock *big.Int `json:"eip150Block,omitempty"`
	SpuriousDragonBlock   *big.Int `json:"eip158Block,omitempty"`
	ByzantiumBlock        *big.Int `json:"byzantiumBlock,omitempty"`
	ConstantinopleBlock   *big.Int `json:"constantinopleBlock,omitempty"`
	PetersburgBlock       *big.Int `json:"petersburgBlock,omitempty"`
	IstanbulBlock         *big.Int `json:"istanbulBlock,omitempty"`
	BerlinBlock           *big.Int `json:"berlinBlock,omitempty"`
	LondonBlock           *big.Int `json:"londonBlock,omitempty"`

	MergeNetsplitBlock *big.Int `json:"mergeNetsplitBlock,omitempty"`

	ShanghaiTime *uint64 `json:"shanghaiTime,omitempty"`
	CancunTime   *uint64 `json:"cancunTime,omitempty"`
}

// MainnetChainConfig is a stock post-Cancun configuration with every fork
// active from genesis, useful for tests and the cmd/evmrun example driver.
func MainnetChainConfig() *ChainConfig {
	zero := big.NewInt(0)
	t0 := uint64(0)
	return &ChainConfig{
		ChainID:               big.NewInt(1),
		HomesteadBlock:        zero,
		TangerineWhistleBlock: zero,
		SpuriousDragonBlock:   zero,
		ByzantiumBlock:        zero,
		ConstantinopleBlock:   zero,
		PetersburgBlock:       zero,
		IstanbulBlock:         zero,
		BerlinBlock:           zero,
		LondonBlock:           zero,
		MergeNetsplitBlock:    zero,
		ShanghaiTime:          &t0,
		CancunTime:            &t0,
	}
}

func isBlockForked(fork, block *big.Int) bool {
	if fork == nil || block == nil {
		return false
	}
	return fork.Cmp(block) <= 0
}

func isTimestampForked(fork *uint64, timestamp uint64) bool {
	if fork == nil {
		return false
	}
	return *fork <= timestamp
}

// Rules resolves the boolean hardfork flag set active at the given block
// number and timestamp. Flags are monotone: each fork's activation implies
// every fork that preceded it, enforced here rather than left to caller
// discipline.
func (c *ChainConfig) Rules(blockNumber *big.Int, isMerge bool, timestamp uint64) Rules {
	chainID := uint64(0)
	if c.ChainID != nil {
		chainID = c.ChainID.Uint64()
	}
	r := Rules{
		ChainID:            chainID,
		Chain:              c.Chain,
		IsHomestead:        isBlockForked(c.HomesteadBlock, blockNumber),
		IsTangerineWhistle: isBlockForked(c.TangerineWhistleBlock, blockNumber),
		IsSpuriousDragon:   isBlockForked(c.SpuriousDragonBlock, blockNumber),
		IsByzantium:        isBlockForked(c.ByzantiumBlock, blockNumber),
		IsConstantinople:   isBlockForked(c.ConstantinopleBlock, blockNumber),
		IsPetersburg:       isBlockForked(c.PetersburgBlock, blockNumber),
		IsIstanbul:         isBlockForked(c.IstanbulBlock, blockNumber),
		IsBerlin:           isBlockForked(c.BerlinBlock, blockNumber),
		IsLondon:           isBlockForked(c.LondonBlock, blockNumber),
		IsMerge:            isMerge || isBlockForked(c.MergeNetsplitBlock, blockNumber),
		IsShanghai:         isTimestampForked(c.ShanghaiTime, timestamp),
		IsCancun:           isTimestampForked(c.CancunTime, timestamp),
	}
	// Shanghai/Cancun structurally require every earlier fork; guard against
	// a misconfigured ChainConfig that sets a late timestamp without the
	// preceding block-gated forks.
	if r.IsCancun {
		r.IsShanghai = true
	}
	if r.IsShanghai {
		r.IsMerge = true
	}
	if r.IsMerge {
		r.IsLondon = true
	}
	if r.IsLondon {
		r.IsBerlin = true
	}
	if r.IsBerlin {
		r.IsIstanbul = true
	}
	if r.IsIstanbul {
		r.IsPetersburg = true
	}
	if r.IsPetersburg {
		r.IsConstantinople = true
	}
	if r.IsConstantinople {
		r.IsByzantium = true
	}
	if r.IsByzantium {
		r.IsSpuriousDragon = true
	}
	if r.IsSpuriousDragon {
		r.IsTangerineWhistle = true
	}
	if r.IsTangerineWhistle {
		r.IsHomestead = true
	}
	return r
}

// MarshalJSON and UnmarshalJSON are the default struct encodings; declared
// explicitly so this type's JSON shape is documented and stable even though
// no wire-protocol layer lives in this module and nothing in it decodes a
// ChainConfig from JSON.
func (c *ChainConfig) MarshalJSON() ([]byte, error) {
	type alias ChainConfig
	return json.Marshal((*alias)(c))
}

func (c *ChainConfig) UnmarshalJSON(data []byte) error {
	type alias ChainConfig
	return json.Unmarshal(data, (*alias)(c))
}

// IsForkTransition reports whether fork activates during the transition
// from parent to current. parent is a pointer so genesis transitions (no
// parent block) can be expressed as nil. Works for both block-number and
// timestamp activated forks since both are compared as uint64 here.
func IsForkTransition(fork *uint64, parent *uint64, current uint64) bool {
	var parentForked bool
	if parent != nil {
		parentForked = isTimestampForked(fork, *parent)
	}
	currentForked := isTimestampForked(fork, current)
	return !parentForked && currentForked
}
