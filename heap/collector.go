package heap

import (
	"fmt"
	"math"

	"github.com/jpare/lisp2gc/internal/cellfmt"
	"github.com/jpare/lisp2gc/internal/rtlog"
	"github.com/jpare/lisp2gc/pkg/types"
)

// Collector implements the LISP2 mark-compact algorithm described in
// spec.md §4.4: mark, plan forwarding addresses, optionally resize the
// backing heap, then rewrite every pointer and move cells to their
// planned addresses.
//
// It is grounded on the teacher's iterative graph walker (hive/walker's
// explicit-stack traversal, reused here for the mark phase so a long
// chain of pairs can't blow the Go call stack) and on the teacher's
// fastalloc cell-header rewrite pass (reused here for phases 2 through
// 4; the forwarding plan and the in-place slide walk the heap's cell
// array in address order).
type Collector struct {
	rt *Runtime

	// worklist is reused across collections to avoid a fresh allocation
	// per GC cycle.
	worklist []types.Ref
}

// NewCollector returns a Collector bound to rt.
func NewCollector(rt *Runtime) *Collector {
	return &Collector{rt: rt}
}

// Collect runs one full mark-compact cycle. additionalBytes is the size
// of the allocation that triggered collection (or 0 for an explicit,
// unforced GC); it is taken into account when the fixed-size variant
// decides whether it can satisfy the pending request and when the
// reallocating variant sizes the next heap.
func (c *Collector) Collect(additionalBytes int) error {
	h := c.rt.heap
	stack := c.rt.stack

	data := h.Bytes()

	oldFrontier := h.Frontier()

	c.mark(data, stack)

	liveBytes, forwardOf := c.computeForwarding(data, oldFrontier)

	rtlog.Debug("gc: marked", "liveBytes", liveBytes, "oldFrontier", oldFrontier)

	switch c.rt.variant {
	case types.VariantFixed:
		c.compactInPlace(data, forwardOf, stack, oldFrontier)
		h.SetFrontier(liveBytes)
		if h.End()-liveBytes < additionalBytes {
			return fmt.Errorf("%w: need %d bytes, only %d free after collection",
				types.ErrOutOfMemory, additionalBytes, h.End()-liveBytes)
		}

	case types.VariantRealloc:
		newCapacity := c.reallocSize(liveBytes, additionalBytes)
		resize, err := h.Reallocate(newCapacity)
		if err != nil {
			return err
		}
		defer resize.Close()

		c.compactAcrossRegions(resize.Old, h.Bytes(), forwardOf, stack, oldFrontier)
		h.SetFrontier(liveBytes)

	default:
		return fmt.Errorf("heap: unknown variant %v", c.rt.variant)
	}

	rtlog.Info("gc_cycle", "live_bytes", h.Frontier(), "heap_bytes", h.End(), "variant", c.rt.variant.String())
	return nil
}

// mark walks every reference reachable from the root stack, setting each
// live cell's forwarding slot to itself as a "visited" sentinel. It uses
// an explicit worklist rather than recursion so a deep chain of pairs
// cannot exhaust the Go call stack (spec.md §4.4.1, §4.4.4).
func (c *Collector) mark(data []byte, stack *RootStack) {
	c.worklist = c.worklist[:0]

	stack.Iterate(func(_ int, ref types.Ref) {
		if ref != types.RefNil {
			c.worklist = append(c.worklist, ref)
		}
	})

	for len(c.worklist) > 0 {
		n := len(c.worklist) - 1
		ref := c.worklist[n]
		c.worklist = c.worklist[:n]

		if cellForwarding(data, ref) == ref {
			continue // already marked
		}
		setCellForwarding(data, ref, ref)

		if cellTag(data, ref) == types.TagPair {
			if head := cellHead(data, ref); head != types.RefNil {
				c.worklist = append(c.worklist, head)
			}
			if tail := cellTail(data, ref); tail != types.RefNil {
				c.worklist = append(c.worklist, tail)
			}
		}
	}
}

// computeForwarding walks the heap in address order and assigns each
// marked cell its post-compaction address: the running count of live
// bytes seen so far. It returns the total live byte count and a lookup
// from old offset to new offset for every live cell (spec.md §4.4.2).
func (c *Collector) computeForwarding(data []byte, oldFrontier int) (int, map[types.Ref]types.Ref) {
	forwardOf := make(map[types.Ref]types.Ref, oldFrontier/cellfmt.Size)
	next := 0
	for off := 0; off < oldFrontier; off += cellfmt.Size {
		ref := types.Ref(off)
		if cellForwarding(data, ref) != ref {
			continue // unmarked, i.e. garbage
		}
		forwardOf[ref] = types.Ref(next)
		next += cellfmt.Size
	}
	return next, forwardOf
}

// updateRoots rewrites every root stack slot to its forwarded address.
func (c *Collector) updateRoots(stack *RootStack, forwardOf map[types.Ref]types.Ref) {
	stack.Iterate(func(i int, ref types.Ref) {
		if ref == types.RefNil {
			return
		}
		stack.Set(i, forwardOf[ref])
	})
}

// updateCellPointers rewrites a single cell's internal pointers (a pair's
// head and tail) from old addresses to forwarded ones. Integers carry no
// pointers and are left untouched.
func updateCellPointers(data []byte, ref types.Ref, forwardOf map[types.Ref]types.Ref) {
	if cellTag(data, ref) != types.TagPair {
		return
	}
	if head := cellHead(data, ref); head != types.RefNil {
		setCellHead(data, ref, forwardOf[head])
	}
	if tail := cellTail(data, ref); tail != types.RefNil {
		setCellTail(data, ref, forwardOf[tail])
	}
}

// compactInPlace implements phase 4 for the fixed-size variant (which has
// no resize phase): pointers are updated first (each old address is
// looked up in forwardOf while the cells still sit there), then every live cell
// is slid down to its planned address, processed in ascending old-address
// order so a cell's planned (lower or equal) destination never clobbers
// an as-yet-uncopied source cell. Go's copy() is then safe even though
// individual src/dst ranges can themselves overlap.
func (c *Collector) compactInPlace(data []byte, forwardOf map[types.Ref]types.Ref, stack *RootStack, oldFrontier int) {
	for old := range forwardOf {
		updateCellPointers(data, old, forwardOf)
	}
	c.updateRoots(stack, forwardOf)

	for off := 0; off < oldFrontier; off += cellfmt.Size {
		old := types.Ref(off)
		new, live := forwardOf[old]
		if !live || old == new {
			continue
		}
		copy(data[int(new):int(new)+cellfmt.Size], data[int(old):int(old)+cellfmt.Size])
	}

	clearForwardingSlots(data, forwardOf)
}

// compactAcrossRegions implements phase 4 for the reallocating variant,
// after Collect has already resized the heap (phase 3): old and new
// backing storage are distinct regions, so pointer
// rewriting reads from old and every live cell is copied, not slid,
// across into new. Address order doesn't matter here since src and dst
// never share memory.
func (c *Collector) compactAcrossRegions(old, new []byte, forwardOf map[types.Ref]types.Ref, stack *RootStack, oldFrontier int) {
	for oldRef := range forwardOf {
		updateCellPointers(old, oldRef, forwardOf)
	}
	c.updateRoots(stack, forwardOf)

	for oldRef, newRef := range forwardOf {
		copy(new[int(newRef):int(newRef)+cellfmt.Size], old[int(oldRef):int(oldRef)+cellfmt.Size])
	}

	clearForwardingSlots(new, forwardOf)
}

// clearForwardingSlots resets every surviving cell's forwarding slot to
// RefNil at its post-compaction address. The raw copy in phase 4b carries
// over the mark phase's self-reference along with the rest of the cell's
// bytes; spec.md §8 requires that slot read back absent once a collection
// completes.
func clearForwardingSlots(data []byte, forwardOf map[types.Ref]types.Ref) {
	for _, new := range forwardOf {
		setCellForwarding(data, new, types.RefNil)
	}
}

// reallocSize computes the reallocating variant's next heap capacity:
// the live set padded by the configured headroom multiplier, plus the
// pending allocation added afterward unscaled, and never smaller than
// HeapMin (spec.md §4.4.2: newCapacity = max(HEAP_MIN, round(liveBytes
// * HEAP_HEADROOM) + additionalBytes)).
func (c *Collector) reallocSize(liveBytes, additionalBytes int) int {
	sized := int(math.Round(float64(liveBytes)*types.HeapHeadroom)) + additionalBytes
	if sized < types.HeapMin {
		sized = types.HeapMin
	}
	return cellfmt.Align8(sized)
}
