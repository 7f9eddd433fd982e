package heap

import (
	"fmt"

	"github.com/jpare/lisp2gc/internal/cellfmt"
	"github.com/jpare/lisp2gc/internal/memregion"
	"github.com/jpare/lisp2gc/pkg/types"
)

// Heap is a contiguous, byte-addressable region holding a densely packed
// array of fixed-size cells, with a bump pointer (frontier) marking the
// boundary between allocated and free space (spec.md §3, §4.1).
type Heap struct {
	region   *memregion.Region
	frontier int // bytes from base; [0, frontier) is allocated
	end      int // capacity in bytes
}

// NewHeap acquires a region of at least capacityBytes, rounded up to a
// cell-aligned size.
func NewHeap(capacityBytes int) (*Heap, error) {
	capacity := cellfmt.Align8(capacityBytes)
	if capacity < cellfmt.Size {
		capacity = cellfmt.Size
	}
	region, err := memregion.Acquire(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAllocationFailed, err)
	}
	return &Heap{region: region, end: capacity}, nil
}

// Bytes returns the heap's current backing storage.
func (h *Heap) Bytes() []byte { return h.region.Bytes() }

// Frontier returns the current frontier offset in bytes.
func (h *Heap) Frontier() int { return h.frontier }

// End returns the heap's current capacity in bytes.
func (h *Heap) End() int { return h.end }

// LiveBytes is frontier - base (spec.md §4.1); since base is always 0 in
// this offset-addressed implementation, that's simply the frontier.
func (h *Heap) LiveBytes() int { return h.frontier }

// AllocateCell bumps the frontier by one cell and returns its offset. It
// reports false, allocating nothing, when the heap cannot fit one more
// cell.
func (h *Heap) AllocateCell() (types.Ref, bool) {
	if h.end-h.frontier < cellfmt.Size {
		return types.RefNil, false
	}
	ref := types.Ref(h.frontier)
	h.frontier += cellfmt.Size
	return ref, true
}

// SetFrontier overwrites the frontier. Used by the collector to finalize
// the heap's occupied prefix after a compaction cycle.
func (h *Heap) SetFrontier(n int) { h.frontier = n }

// Release returns the heap's backing storage to the OS.
func (h *Heap) Release() error { return h.region.Release() }

// Resize is returned by Reallocate. Old exposes the pre-resize bytes (the
// entire live region), still both readable and writable, until Close
// releases them. The collector uses Old to translate pre-collection
// references during phase 4a and to source the phase-4b slide, and calls
// Close only once it has finished reading from Old.
type Resize struct {
	Old     []byte
	release func() error
}

// Close releases the pre-resize region. Safe to call on a nil *Resize.
func (r *Resize) Close() error {
	if r == nil || r.release == nil {
		return nil
	}
	err := r.release()
	r.release = nil
	return err
}

// Reallocate replaces the heap's backing region with a new one of the
// requested capacity, preserving the old region (accessible via the
// returned Resize.Old) until the caller calls Resize.Close.
//
// This is spec.md §4.1's reallocate operation. The spec describes it as
// "preserving bytes [0, min(oldLiveBytes, newCapacityBytes))" and then
// separately requires phase 4a to be able to read every live cell's old
// contents by relative offset — which, whenever the heap shrinks below the
// old frontier, only holds if the old bytes are kept alive past the resize
// rather than eagerly copied into (and truncated by) the new region. This
// implementation keeps the old region live exactly that long: Old is the
// old buffer's whole occupied prefix [0, frontier), and the new region
// starts out empty, to be filled by
// the collector's slide (phase 4b).
func (h *Heap) Reallocate(newCapacityBytes int) (*Resize, error) {
	newCapacity := cellfmt.Align8(newCapacityBytes)
	if newCapacity < cellfmt.Size {
		newCapacity = cellfmt.Size
	}

	oldRegion := h.region
	oldBytes := oldRegion.Bytes()[:h.frontier:h.frontier]

	newRegion, err := memregion.Acquire(newCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAllocationFailed, err)
	}

	h.region = newRegion
	h.end = newCapacity

	return &Resize{Old: oldBytes, release: oldRegion.Release}, nil
}
