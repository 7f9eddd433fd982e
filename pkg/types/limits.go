package types

// StackMax is the bounded root stack's capacity (spec.md §6).
const StackMax = 256

// CellSize is the fixed size in bytes of every cell, tag through payload.
// See internal/cellfmt for the byte layout this size covers.
const CellSize = 24

// FixedHeapSize is the fixed variant's constant heap size (spec.md §6).
const FixedHeapSize = 1 << 20 // 1,048,576 bytes

// HeapMin is the reallocating variant's minimum heap size (spec.md §6).
// The spec's literal HEAP_MIN=16 assumes a smaller test cell size; this
// implementation honors the spec's own fallback rule instead
// ("implementations should ensure HEAP_MIN >= cellSize") and sets it to
// exactly one cell, the smallest heap that can ever satisfy an allocation.
const HeapMin = CellSize

// HeapHeadroom is the reallocating variant's growth multiplier
// (spec.md §4.4.2): newCapacity = max(HeapMin, liveBytes*HeapHeadroom+additional).
const HeapHeadroom = 1.5
