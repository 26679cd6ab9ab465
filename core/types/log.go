// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package types holds the handful of value types shared between core/vm and
// core/state that are neither gas/fork constants (params) nor primitives
// already provided by go-ethereum/common and holiman/uint256.
package types

import "github.com/ethereum/go-ethereum/common"

// Log is an append-only LOG0..LOG4 record (spec.md §3). Logs are reverted
// along with the snapshot that produced them; there is no independent
// deletion path.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte

	// BlockNumber/TxIndex/Index are informational only - this core has no
	// notion of a block or transaction index of its own; an embedding
	// executor may stamp these before handing results to a caller.
	BlockNumber uint64
	TxIndex     uint
	Index       uint
}
