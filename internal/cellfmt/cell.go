// Package cellfmt defines the fixed byte layout of a lisp2gc heap cell and
// the little-endian primitive accessors the heap package uses to read and
// write it.
//
// Layout (24 bytes, 8-byte aligned):
//
//	offset 0:  tag        (1 byte)
//	offset 1:  pad         (3 bytes, unused)
//	offset 4:  forwarding (4 bytes, uint32, RefNil when absent)
//	offset 8:  payload     (16 bytes)
//
// Payload interpretation depends on tag:
//
//	Integer: offset 8,  8 bytes, int64 value
//	Pair:    offset 8,  4 bytes, uint32 head ref
//	         offset 12, 4 bytes, uint32 tail ref
package cellfmt

import "encoding/binary"

const (
	// TagOffset is the byte offset of the tag field within a cell.
	TagOffset = 0
	// ForwardingOffset is the byte offset of the forwarding slot.
	ForwardingOffset = 4
	// PayloadOffset is the byte offset where the payload begins.
	PayloadOffset = 8

	// IntValueOffset is the payload offset of an Integer cell's value.
	IntValueOffset = PayloadOffset
	// PairHeadOffset is the payload offset of a Pair cell's head ref.
	PairHeadOffset = PayloadOffset
	// PairTailOffset is the payload offset of a Pair cell's tail ref.
	PairTailOffset = PayloadOffset + 4

	// Size is the total size of one cell, in bytes.
	Size = 24

	// alignment is the byte boundary every cell (and hence every heap
	// capacity) is aligned to.
	alignment = 8
)

// Align8 returns n rounded up to the next 8-byte boundary.
func Align8(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// ReadU32 reads a little-endian uint32 at offset off within b.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU32 writes a little-endian uint32 at offset off within b.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadI64 reads a little-endian int64 at offset off within b.
func ReadI64(b []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(b[off : off+8]))
}

// PutI64 writes a little-endian int64 at offset off within b.
func PutI64(b []byte, off int, v int64) {
	binary.LittleEndian.PutUint64(b[off:off+8], uint64(v))
}
