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

package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// EmptyCodeHash is keccak256("") - the CodeHash of an account with no code.
var EmptyCodeHash = crypto.Keccak256Hash(nil)

// Account is the world-state account record (spec.md §3).
type Account struct {
	Balance  *uint256.Int
	Nonce    uint64
	CodeHash common.Hash
	Root     common.Hash
}

// EmptyAccount returns the zero-value account: zero balance, zero nonce,
// the empty code hash.
func EmptyAccount() Account {
	return Account{Balance: new(uint256.Int), CodeHash: EmptyCodeHash}
}

// IsEmpty reports whether a is "empty" per spec.md §3: zero balance, zero
// nonce, empty code hash.
func (a Account) IsEmpty() bool {
	return (a.Balance == nil || a.Balance.IsZero()) && a.Nonce == 0 && a.CodeHash == EmptyCodeHash
}

// Copy returns a deep copy safe to mutate independently of a.
func (a Account) Copy() Account {
	cp := a
	if a.Balance != nil {
		cp.Balance = new(uint256.Int).Set(a.Balance)
	} else {
		cp.Balance = new(uint256.Int)
	}
	return cp
}
