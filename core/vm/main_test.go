// (c) 2024, adapted for this module. See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"go.uber.org/goleak"
)

// Precompile loops (MODEXP, BLAKE2F) and the jumpdest LRU cache must never
// leave a goroutine behind once a test completes.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreCurrent())
}
