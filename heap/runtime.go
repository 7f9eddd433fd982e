package heap

import (
	"fmt"

	"github.com/jpare/lisp2gc/internal/cellfmt"
	"github.com/jpare/lisp2gc/internal/rtlog"
	"github.com/jpare/lisp2gc/pkg/types"
)

// Runtime ties a Heap, a RootStack, and a Collector together into the
// public surface described in SPEC_FULL.md §6. Exactly one mutator
// drives a Runtime; it is not safe for concurrent use.
type Runtime struct {
	heap      *Heap
	stack     *RootStack
	variant   types.Variant
	collector *Collector
}

// NewRuntime builds a Runtime of the given variant, sized per
// types.FixedHeapSize / types.HeapMin.
func NewRuntime(variant types.Variant) (*Runtime, error) {
	initial := types.FixedHeapSize
	if variant == types.VariantRealloc {
		initial = types.HeapMin
	}
	h, err := NewHeap(initial)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		heap:    h,
		stack:   NewRootStack(),
		variant: variant,
	}
	rt.collector = NewCollector(rt)
	return rt, nil
}

// Variant reports which heap-growth strategy this Runtime uses.
func (rt *Runtime) Variant() types.Variant { return rt.variant }

// LiveCount returns the number of live cells currently on the heap, i.e.
// the root-reachable set as of the last collection plus anything
// allocated since. It is derived from the frontier (occupied bytes divided
// by the cell size) rather than tracked as a running counter.
func (rt *Runtime) LiveCount() int {
	return rt.heap.Frontier() / cellfmt.Size
}

// Free releases the runtime's backing heap storage. The Runtime must not
// be used afterward.
func (rt *Runtime) Free() error { return rt.heap.Release() }

// Push places ref on the root stack, returning its stack index. The
// index is how the mutator keeps a reference reachable across a GC: any
// code holding only a bare types.Ref with no corresponding root stack
// entry risks that cell being collected out from under it.
func (rt *Runtime) Push(ref types.Ref) (int, error) {
	idx := rt.stack.Len()
	if !rt.stack.Push(ref) {
		return 0, types.ErrStackOverflow
	}
	return idx, nil
}

// Pop removes and returns the top root stack entry.
func (rt *Runtime) Pop() (types.Ref, error) {
	ref, ok := rt.stack.Pop()
	if !ok {
		return types.RefNil, types.ErrStackUnderflow
	}
	return ref, nil
}

// At returns the root stack entry at index i without removing it.
func (rt *Runtime) At(i int) types.Ref { return rt.stack.At(i) }

// StackLen reports how many entries are currently on the root stack.
func (rt *Runtime) StackLen() int { return rt.stack.Len() }

// allocate reserves one cell, collecting first if the heap cannot
// currently satisfy the request, and retrying once after collection.
func (rt *Runtime) allocate(tag types.Tag) (types.Ref, error) {
	ref, ok := rt.heap.AllocateCell()
	if !ok {
		rtlog.Info("gc: triggered", "reason", "allocation failure", "tag", tag.String())
		if err := rt.collector.Collect(cellfmt.Size); err != nil {
			return types.RefNil, err
		}
		ref, ok = rt.heap.AllocateCell()
		if !ok {
			return types.RefNil, fmt.Errorf("%w: heap exhausted after collection", types.ErrOutOfMemory)
		}
	}
	data := rt.heap.Bytes()
	setCellTag(data, ref, tag)
	setCellForwarding(data, ref, types.RefNil)
	return ref, nil
}

// PushInt allocates an Integer cell holding v, pushes it onto the root
// stack, and returns its reference.
func (rt *Runtime) PushInt(v int64) (types.Ref, error) {
	ref, err := rt.allocate(types.TagInteger)
	if err != nil {
		return types.RefNil, err
	}
	setCellInt(rt.heap.Bytes(), ref, v)
	if _, err := rt.Push(ref); err != nil {
		return types.RefNil, err
	}
	return ref, nil
}

// PushPair allocates a Pair cell, then pops the top two root stack
// entries — tail first, then head — assigns them into the new pair, and
// pushes the pair in their place.
//
// The allocation happens before either pop (spec.md §4.2): if the
// allocation itself triggers a collection, the would-be head and tail
// are still on the root stack and survive it. Popping them only after
// the cell exists is the safety contract this operation exists to
// enforce; callers must push both operands before calling PushPair.
func (rt *Runtime) PushPair() (types.Ref, error) {
	ref, err := rt.allocate(types.TagPair)
	if err != nil {
		return types.RefNil, err
	}

	tail, err := rt.Pop()
	if err != nil {
		return types.RefNil, err
	}
	head, err := rt.Pop()
	if err != nil {
		return types.RefNil, err
	}

	data := rt.heap.Bytes()
	setCellHead(data, ref, head)
	setCellTail(data, ref, tail)

	if _, err := rt.Push(ref); err != nil {
		return types.RefNil, err
	}
	return ref, nil
}

// Tag returns ref's cell tag.
func (rt *Runtime) Tag(ref types.Ref) types.Tag { return cellTag(rt.heap.Bytes(), ref) }

// IntValue returns an Integer cell's payload. It panics if ref does not
// refer to an Integer cell.
func (rt *Runtime) IntValue(ref types.Ref) int64 {
	if rt.Tag(ref) != types.TagInteger {
		panic("heap: IntValue on a non-Integer cell")
	}
	return cellInt(rt.heap.Bytes(), ref)
}

// Head returns a Pair cell's head reference. It panics if ref does not
// refer to a Pair cell.
func (rt *Runtime) Head(ref types.Ref) types.Ref {
	if rt.Tag(ref) != types.TagPair {
		panic("heap: Head on a non-Pair cell")
	}
	return cellHead(rt.heap.Bytes(), ref)
}

// Tail returns a Pair cell's tail reference. It panics if ref does not
// refer to a Pair cell.
func (rt *Runtime) Tail(ref types.Ref) types.Ref {
	if rt.Tag(ref) != types.TagPair {
		panic("heap: Tail on a non-Pair cell")
	}
	return cellTail(rt.heap.Bytes(), ref)
}

// SetHead sets a Pair cell's head reference. to may be types.RefNil.
func (rt *Runtime) SetHead(ref, to types.Ref) {
	if rt.Tag(ref) != types.TagPair {
		panic("heap: SetHead on a non-Pair cell")
	}
	setCellHead(rt.heap.Bytes(), ref, to)
}

// SetTail sets a Pair cell's tail reference. to may be types.RefNil.
func (rt *Runtime) SetTail(ref, to types.Ref) {
	if rt.Tag(ref) != types.TagPair {
		panic("heap: SetTail on a non-Pair cell")
	}
	setCellTail(rt.heap.Bytes(), ref, to)
}

// GC forces a collection cycle. additionalBytes reserves room for a
// follow-up allocation the caller is about to make; pass 0 for a bare
// collection.
func (rt *Runtime) GC(additionalBytes int) error {
	return rt.collector.Collect(additionalBytes)
}

// HeapBytes reports the heap's current capacity, in bytes.
func (rt *Runtime) HeapBytes() int { return rt.heap.End() }

// HeapFrontier reports how many bytes of the heap are currently
// occupied.
func (rt *Runtime) HeapFrontier() int { return rt.heap.Frontier() }
