package types

import "errors"

// Sentinel errors surfaced to the driver (spec.md §7). Each is terminal —
// there is no local recovery path for any of them.
var (
	// ErrStackOverflow: push to a full root stack.
	ErrStackOverflow = errors.New("lisp2gc: root stack overflow")

	// ErrStackUnderflow: pop from an empty root stack.
	ErrStackUnderflow = errors.New("lisp2gc: root stack underflow")

	// ErrOutOfMemory: fixed variant, after collection, still no room for
	// one cell.
	ErrOutOfMemory = errors.New("lisp2gc: out of memory")

	// ErrAllocationFailed: the underlying system allocator refused a
	// request (region acquisition or resize).
	ErrAllocationFailed = errors.New("lisp2gc: allocation failed")
)
