// Package heap implements the lisp2gc runtime: a contiguous object heap,
// a two-variant cell (Integer, Pair), a bounded root stack, and the LISP2
// mark-compact collector that ties them together.
//
// Cell references (types.Ref) are byte offsets relative to the heap's
// current base, not pointers, so a reference survives a heap Reallocate
// untouched. See SPEC_FULL.md §3 and §9 for the rationale.
//
// A Runtime is not safe for concurrent use: exactly one mutator and one
// collector run, never interleaved (spec.md §5).
package heap
