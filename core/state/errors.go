// (c) 2024, adapted for this module.
// See the file LICENSE for licensing terms.

package state

import "errors"

// Failure modes named in spec.md §4.4/§7.
var (
	ErrNotFound       = errors.New("state: not found")
	ErrResourceError  = errors.New("state: resource error")
	ErrExecutionFailed = errors.New("state: execution failed")
)
