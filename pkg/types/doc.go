// Package types holds the shared vocabulary of the lisp2gc runtime: cell
// tags, cell references, the fixed-point tuning constants from the
// specification, and the sentinel errors every other package wraps.
//
// Nothing here touches a heap, a stack, or the collector itself — it is
// pure data so that heap, internal/cellfmt, and cmd/lisp2gcctl can all
// depend on it without depending on each other.
package types
