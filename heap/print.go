package heap

import (
	"fmt"
	"strings"

	"github.com/jpare/lisp2gc/pkg/types"
)

// Sprint renders rt's root stack as a human-readable s-expression dump,
// one root per line. It is grounded on the teacher's recursive
// print-with-cycle-guard (hive/print.go), adapted here to guard against
// cycles formed by direct mutation of a Pair's head/tail rather than the
// teacher's document tree structure.
func Sprint(rt *Runtime) string {
	var b strings.Builder
	rt.stack.Iterate(func(i int, ref types.Ref) {
		fmt.Fprintf(&b, "[%d] ", i)
		sprintRef(&b, rt, ref, map[types.Ref]bool{})
		b.WriteByte('\n')
	})
	return b.String()
}

// sprintRef writes ref's value to b. visiting tracks refs on the current
// path only (not every ref ever seen), so a diamond-shaped graph with
// shared substructure still prints in full, and only an actual cycle is
// collapsed to "<cycle>".
func sprintRef(b *strings.Builder, rt *Runtime, ref types.Ref, visiting map[types.Ref]bool) {
	if ref == types.RefNil {
		b.WriteString("nil")
		return
	}
	if visiting[ref] {
		b.WriteString("<cycle>")
		return
	}

	switch rt.Tag(ref) {
	case types.TagInteger:
		fmt.Fprintf(b, "%d", rt.IntValue(ref))
	case types.TagPair:
		visiting[ref] = true
		b.WriteByte('(')
		sprintRef(b, rt, rt.Head(ref), visiting)
		b.WriteString(" . ")
		sprintRef(b, rt, rt.Tail(ref), visiting)
		b.WriteByte(')')
		delete(visiting, ref)
	default:
		fmt.Fprintf(b, "<unknown tag %v>", rt.Tag(ref))
	}
}
