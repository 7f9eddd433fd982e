package heap

import (
	"fmt"

	"github.com/jpare/lisp2gc/internal/buf"
	"github.com/jpare/lisp2gc/internal/cellfmt"
	"github.com/jpare/lisp2gc/pkg/types"
)

// The functions below are the only code that knows cellfmt's byte offsets;
// everything else in this package works in terms of a Ref and a Tag.

// checkRef panics if ref does not name a full, in-bounds cell within
// data. Every path that turns a Ref into a byte offset runs through this
// first: a corrupted or stale Ref (e.g. one read back after a Release)
// must fail loudly rather than read or write past the backing region.
func checkRef(data []byte, ref types.Ref) {
	if !buf.Has(data, int(ref), cellfmt.Size) {
		panic(fmt.Sprintf("heap: ref %d out of bounds for a %d-byte region", ref, len(data)))
	}
}

func cellTag(data []byte, ref types.Ref) types.Tag {
	checkRef(data, ref)
	return types.Tag(data[int(ref)+cellfmt.TagOffset])
}

func setCellTag(data []byte, ref types.Ref, tag types.Tag) {
	checkRef(data, ref)
	data[int(ref)+cellfmt.TagOffset] = byte(tag)
}

func cellForwarding(data []byte, ref types.Ref) types.Ref {
	checkRef(data, ref)
	return cellfmt.ReadU32(data, int(ref)+cellfmt.ForwardingOffset)
}

func setCellForwarding(data []byte, ref types.Ref, fwd types.Ref) {
	checkRef(data, ref)
	cellfmt.PutU32(data, int(ref)+cellfmt.ForwardingOffset, fwd)
}

func cellInt(data []byte, ref types.Ref) int64 {
	checkRef(data, ref)
	return cellfmt.ReadI64(data, int(ref)+cellfmt.IntValueOffset)
}

func setCellInt(data []byte, ref types.Ref, v int64) {
	checkRef(data, ref)
	cellfmt.PutI64(data, int(ref)+cellfmt.IntValueOffset, v)
}

func cellHead(data []byte, ref types.Ref) types.Ref {
	checkRef(data, ref)
	return cellfmt.ReadU32(data, int(ref)+cellfmt.PairHeadOffset)
}

func setCellHead(data []byte, ref types.Ref, v types.Ref) {
	checkRef(data, ref)
	cellfmt.PutU32(data, int(ref)+cellfmt.PairHeadOffset, v)
}

func cellTail(data []byte, ref types.Ref) types.Ref {
	checkRef(data, ref)
	return cellfmt.ReadU32(data, int(ref)+cellfmt.PairTailOffset)
}

func setCellTail(data []byte, ref types.Ref, v types.Ref) {
	checkRef(data, ref)
	cellfmt.PutU32(data, int(ref)+cellfmt.PairTailOffset, v)
}
