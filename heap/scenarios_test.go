package heap

import (
	"testing"

	"github.com/jpare/lisp2gc/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestScenario1_StackPreservation: push Integer(1), push Integer(2), collect.
func TestScenario1_StackPreservation(t *testing.T) {
	rt, err := NewRuntime(types.VariantFixed)
	require.NoError(t, err)
	defer rt.Free()

	_, err = rt.PushInt(1)
	require.NoError(t, err)
	_, err = rt.PushInt(2)
	require.NoError(t, err)

	require.NoError(t, rt.GC(0))
	require.Equal(t, 2, rt.LiveCount())
}

// TestScenario2_DeadCollection: push 1, push 2, pop, pop, collect.
func TestScenario2_DeadCollection(t *testing.T) {
	rt, err := NewRuntime(types.VariantFixed)
	require.NoError(t, err)
	defer rt.Free()

	_, err = rt.PushInt(1)
	require.NoError(t, err)
	_, err = rt.PushInt(2)
	require.NoError(t, err)
	_, err = rt.Pop()
	require.NoError(t, err)
	_, err = rt.Pop()
	require.NoError(t, err)

	require.NoError(t, rt.GC(0))
	require.Equal(t, 0, rt.LiveCount())
}

// TestScenario3_NestedGraph: build Pair(Pair(1,2), Pair(3,4)), collect.
// Expected liveCount = 7 (4 ints + 3 pairs).
func TestScenario3_NestedGraph(t *testing.T) {
	rt, err := NewRuntime(types.VariantFixed)
	require.NoError(t, err)
	defer rt.Free()

	_, err = rt.PushInt(1)
	require.NoError(t, err)
	_, err = rt.PushInt(2)
	require.NoError(t, err)
	// p1 = Pair(1, 2); PushPair pops 2 then 1, leaving only p1 rooted.
	_, err = rt.PushPair()
	require.NoError(t, err)

	_, err = rt.PushInt(3)
	require.NoError(t, err)
	_, err = rt.PushInt(4)
	require.NoError(t, err)
	// p2 = Pair(3, 4); stack now holds [p1, p2].
	_, err = rt.PushPair()
	require.NoError(t, err)

	// p3 = Pair(p1, p2); PushPair pops p2 then p1, leaving only p3 rooted.
	_, err = rt.PushPair()
	require.NoError(t, err)

	require.NoError(t, rt.GC(0))
	require.Equal(t, 7, rt.LiveCount())
}

// TestScenario4_Cycle: two pairs A, B each holding one integer head and
// wired tail-to-tail into a cycle, both rooted. Expected liveCount = 4
// (A, B, and their two head integers); the original tail integers popped
// out of the root stack before the cycle was wired are unreachable.
func TestScenario4_Cycle(t *testing.T) {
	rt, err := NewRuntime(types.VariantFixed)
	require.NoError(t, err)
	defer rt.Free()

	_, err = rt.PushInt(1)
	require.NoError(t, err)
	_, err = rt.PushInt(2)
	require.NoError(t, err)
	a, err := rt.PushPair() // a = Pair(1, 2)
	require.NoError(t, err)

	_, err = rt.PushInt(3)
	require.NoError(t, err)
	_, err = rt.PushInt(4)
	require.NoError(t, err)
	b, err := rt.PushPair() // b = Pair(3, 4); stack now holds [a, b]
	require.NoError(t, err)

	// Wire a and b's tails into each other, forming the cycle. These are
	// post-construction mutations, not PushPair's allocate-and-link step.
	rt.SetTail(a, b)
	rt.SetTail(b, a)

	require.NoError(t, rt.GC(0))
	require.Equal(t, 4, rt.LiveCount())
}

// TestScenario5_ChurnWithoutRetention runs many push/pop cycles with
// nothing ultimately retained, and must never report OutOfMemory.
func TestScenario5_ChurnWithoutRetention(t *testing.T) {
	rt, err := NewRuntime(types.VariantFixed)
	require.NoError(t, err)
	defer rt.Free()

	const iterations = 1000 // scaled down from the spec's 100000 for test speed
	for i := 0; i < iterations; i++ {
		for j := 0; j < 20; j++ {
			_, err := rt.PushInt(int64(j))
			require.NoError(t, err, "iteration %d push %d", i, j)
		}
		for j := 0; j < 20; j++ {
			_, err := rt.Pop()
			require.NoError(t, err)
		}
	}

	require.NoError(t, rt.GC(0))
	require.Equal(t, 0, rt.LiveCount())
}

// TestScenario6_ReallocatingGrowth allocates 100 integers, all rooted,
// in the reallocating variant from a HeapMin-sized heap, and expects all
// 100 to survive the collections this triggers, in a heap grown to hold
// them.
func TestScenario6_ReallocatingGrowth(t *testing.T) {
	rt, err := NewRuntime(types.VariantRealloc)
	require.NoError(t, err)
	defer rt.Free()

	for i := 0; i < 100; i++ {
		_, err := rt.PushInt(int64(i))
		require.NoError(t, err, "allocation %d should succeed", i)
	}

	require.Equal(t, 100, rt.LiveCount())
	require.GreaterOrEqual(t, rt.HeapBytes(), rt.HeapFrontier())
}
