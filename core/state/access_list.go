// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.
//
// Grounded on spec.md §9's design note "access list as a pair of hash
// sets scoped to transaction lifetime, reset between transactions."

package state

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ethereum/go-ethereum/common"
)

type slotKey struct {
	Address common.Address
	Slot    common.Hash
}

// AccessList tracks the EIP-2929 warm/cold state for addresses and
// storage slots within a single transaction (spec.md §3, §4.5). Warming
// is journaled through j so a CALL/CREATE that reverts also un-warms
// whatever it touched (spec.md §3 Snapshot: "access-list... made after s"
// is part of what revert_to undoes).
type AccessList struct {
	addresses mapset.Set[common.Address]
	slots     mapset.Set[slotKey]
	j         *journal
}

// NewAccessList returns an empty access list. j may be nil for a
// free-standing list (e.g. in a unit test) that does not need reverting.
func NewAccessList(j *journal) *AccessList {
	return &AccessList{
		addresses: mapset.NewThreadUnsafeSet[common.Address](),
		slots:     mapset.NewThreadUnsafeSet[slotKey](),
		j:         j,
	}
}

// MarkAddressWarm marks addr warm, returning whether it was cold before
// this call (spec.md §4.5).
func (al *AccessList) MarkAddressWarm(addr common.Address) (wasCold bool) {
	wasCold = !al.addresses.Contains(addr)
	if wasCold && al.j != nil {
		al.j.append(addressWarmed{addr: addr})
	}
	al.addresses.Add(addr)
	return wasCold
}

// MarkSlotWarm marks (addr, slot) warm, returning whether it was cold.
// Marking a slot warm also marks its address warm, matching EIP-2929's
// accounting (a storage touch is always preceded by an account touch).
func (al *AccessList) MarkSlotWarm(addr common.Address, slot common.Hash) (wasCold bool) {
	al.MarkAddressWarm(addr)
	key := slotKey{addr, slot}
	wasCold = !al.slots.Contains(key)
	if wasCold && al.j != nil {
		al.j.append(slotWarmed{addr: addr, slot: slot})
	}
	al.slots.Add(key)
	return wasCold
}

func (al *AccessList) IsAddressWarm(addr common.Address) bool {
	return al.addresses.Contains(addr)
}

func (al *AccessList) IsSlotWarm(addr common.Address, slot common.Hash) bool {
	return al.slots.Contains(slotKey{addr, slot})
}

// Reset clears both sets, readying the list for a new transaction.
func (al *AccessList) Reset() {
	al.addresses.Clear()
	al.slots.Clear()
}

// Clone returns an independent copy that shares the same journal. The
// journal does not use it: warm marks are undone through their own
// addressWarmed/slotWarmed entries.
func (al *AccessList) Clone() *AccessList {
	return &AccessList{
		addresses: al.addresses.Clone(),
		slots:     al.slots.Clone(),
		j:         al.j,
	}
}
