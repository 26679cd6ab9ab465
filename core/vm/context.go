// (c) 2024, adapted for this module, grounded on the go-ethereum-family
// split of block/transaction context out of the EVM struct proper
// (observed in every full core/vm package in the pack). See the file
// LICENSE for licensing terms.

package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// GetHashFunc returns the hash of the ancestor block at number, or the
// zero hash if it falls outside the last 256 blocks (BLOCKHASH, spec.md
// §4.7). Supplied by the embedding executor - this core has no block
// store of its own.
type GetHashFunc func(number uint64) common.Hash

// BlockContext carries the block-scoped values opcodes read (spec.md §3
// Block). Immutable for the lifetime of one EVM.
type BlockContext struct {
	GetHash GetHashFunc

	Coinbase    common.Address
	GasLimit    uint64
	BlockNumber *big.Int
	Time        *big.Int
	Difficulty  *big.Int
	Random      *common.Hash // non-nil post-Merge; backs PREVRANDAO.
	BaseFee     *big.Int     // non-nil post-London.
	BlobBaseFee *big.Int     // non-nil post-Cancun.
}

// TxContext carries the transaction-scoped values opcodes read (spec.md
// §3 Transaction).
type TxContext struct {
	Origin     common.Address
	GasPrice   *big.Int
	BlobHashes []common.Hash
}
