package types

// Ref is a cell reference: a byte offset relative to the current heap base.
// It is never a raw pointer, so it survives a heap Reallocate untouched —
// the whole point of representing references this way (see spec.md §9).
type Ref = uint32

// RefNil is the absent-reference / absent-forwarding-slot sentinel. It can
// never be a valid cell offset because every heap this runtime can build
// has an end well below RefNil.
const RefNil Ref = 0xFFFFFFFF

// Tag discriminates the two cell variants. There are exactly two; this is
// a closed sum, not an open set callers can extend.
type Tag uint8

const (
	// TagInteger marks a cell whose payload is a single int64.
	TagInteger Tag = iota + 1
	// TagPair marks a cell whose payload is two Refs (head, tail).
	TagPair
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "Integer"
	case TagPair:
		return "Pair"
	default:
		return "Unknown"
	}
}

// Variant selects which of the two collector behaviors described in
// spec.md §4.4 a Runtime uses.
type Variant uint8

const (
	// VariantFixed never resizes the heap; collection can report
	// OutOfMemory.
	VariantFixed Variant = iota
	// VariantRealloc grows/shrinks the heap every cycle per the §4.4.2
	// sizing policy; OutOfMemory is unreachable barring an allocator
	// failure.
	VariantRealloc
)

func (v Variant) String() string {
	switch v {
	case VariantFixed:
		return "fixed"
	case VariantRealloc:
		return "realloc"
	default:
		return "unknown"
	}
}
