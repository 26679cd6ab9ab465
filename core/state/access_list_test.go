// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// Warming an address or slot inside a snapshot that gets reverted must
// leave it cold again - access-list membership is part of what revert_to
// undoes, just like storage and account writes (spec.md §3 Snapshot).
func TestAccessList_WarmingIsRevertedWithItsSnapshot(t *testing.T) {
	s := NewMemoryState()
	addr := common.HexToAddress("0x00000000000000000000000000000000000001")
	slot := common.HexToHash("0x02")

	snap := s.CreateSnapshot()
	require.True(t, s.AccessList().MarkAddressWarm(addr))
	require.True(t, s.AccessList().MarkSlotWarm(addr, slot))
	require.True(t, s.AccessList().IsAddressWarm(addr))
	require.True(t, s.AccessList().IsSlotWarm(addr, slot))

	require.NoError(t, s.RevertToSnapshot(snap))

	require.False(t, s.AccessList().IsAddressWarm(addr), "address must be cold again after revert")
	require.False(t, s.AccessList().IsSlotWarm(addr, slot), "slot must be cold again after revert")
}

// Warming that happens before a snapshot is taken must survive a revert
// to that snapshot - only mutations made after the mark are undone.
func TestAccessList_WarmingBeforeSnapshotSurvivesRevert(t *testing.T) {
	s := NewMemoryState()
	addr := common.HexToAddress("0x00000000000000000000000000000000000001")

	require.True(t, s.AccessList().MarkAddressWarm(addr))
	snap := s.CreateSnapshot()
	other := common.HexToAddress("0x00000000000000000000000000000000000002")
	require.True(t, s.AccessList().MarkAddressWarm(other))

	require.NoError(t, s.RevertToSnapshot(snap))

	require.True(t, s.AccessList().IsAddressWarm(addr), "warming before the snapshot must survive")
	require.False(t, s.AccessList().IsAddressWarm(other), "warming after the snapshot must be undone")
}

// Marking an already-warm address/slot a second time must not append a
// redundant journal entry - otherwise a revert would (harmlessly, but
// wastefully) replay a no-op warm that was never actually new.
func TestAccessList_ReWarmingIsNotJournaledTwice(t *testing.T) {
	s := NewMemoryState()
	addr := common.HexToAddress("0x00000000000000000000000000000000000001")

	require.True(t, s.AccessList().MarkAddressWarm(addr))
	snap := s.CreateSnapshot()
	require.False(t, s.AccessList().MarkAddressWarm(addr), "already warm, no longer cold")

	require.NoError(t, s.RevertToSnapshot(snap))
	require.True(t, s.AccessList().IsAddressWarm(addr), "re-warming past the mark journaled nothing to undo")
}
