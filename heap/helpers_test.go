package heap

import (
	"testing"

	"github.com/jpare/lisp2gc/pkg/types"
	"github.com/stretchr/testify/require"
)

// newTestRuntime builds a Runtime around a heap of exactly capacityBytes,
// bypassing NewRuntime's fixed sizing so tests can force exhaustion
// (and hence a mid-allocation collection) at a small, deterministic
// capacity.
func newTestRuntime(t testing.TB, variant types.Variant, capacityBytes int) *Runtime {
	t.Helper()

	h, err := NewHeap(capacityBytes)
	require.NoError(t, err)

	rt := &Runtime{
		heap:    h,
		stack:   NewRootStack(),
		variant: variant,
	}
	rt.collector = NewCollector(rt)
	return rt
}
