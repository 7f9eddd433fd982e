package heap

import (
	"testing"

	"github.com/jpare/lisp2gc/internal/cellfmt"
	"github.com/stretchr/testify/require"
)

func TestHeap_NewHeap_RoundsToCellSize(t *testing.T) {
	h, err := NewHeap(1)
	require.NoError(t, err)
	defer h.Release()

	require.GreaterOrEqual(t, h.End(), cellfmt.Size)
	require.Equal(t, 0, h.End()%cellfmt.Size)
}

func TestHeap_AllocateCell_BumpsFrontier(t *testing.T) {
	h, err := NewHeap(cellfmt.Size * 4)
	require.NoError(t, err)
	defer h.Release()

	var refs []int
	for i := 0; i < 4; i++ {
		ref, ok := h.AllocateCell()
		require.True(t, ok, "allocation %d should succeed", i)
		refs = append(refs, int(ref))
	}

	for i := 1; i < len(refs); i++ {
		require.Greater(t, refs[i], refs[i-1], "offsets should be monotonically increasing")
	}
	require.Equal(t, cellfmt.Size*4, h.Frontier())
}

func TestHeap_AllocateCell_FailsWhenFull(t *testing.T) {
	h, err := NewHeap(cellfmt.Size)
	require.NoError(t, err)
	defer h.Release()

	_, ok := h.AllocateCell()
	require.True(t, ok)

	_, ok = h.AllocateCell()
	require.False(t, ok, "heap should be exhausted after its one cell is taken")
}

func TestHeap_Reallocate_PreservesOldBytesUntilClose(t *testing.T) {
	h, err := NewHeap(cellfmt.Size * 4)
	require.NoError(t, err)
	defer h.Release()

	ref, ok := h.AllocateCell()
	require.True(t, ok)
	h.Bytes()[int(ref)] = 0x42

	resize, err := h.Reallocate(cellfmt.Size * 8)
	require.NoError(t, err)

	// The old bytes must still be readable after the swap, before Close.
	require.Equal(t, byte(0x42), resize.Old[int(ref)])
	require.Len(t, resize.Old, h.Frontier())

	require.NoError(t, resize.Close())
	require.Equal(t, cellfmt.Size*8, h.End())
}

func TestHeap_Reallocate_ClosingNilResizeIsSafe(t *testing.T) {
	var r *Resize
	require.NoError(t, r.Close())
}
