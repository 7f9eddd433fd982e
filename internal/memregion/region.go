// Package memregion acquires and releases the raw backing storage for a
// heap region.
//
// On unix, Acquire maps an anonymous region via golang.org/x/sys/unix, so a
// Heap's Reallocate genuinely trades one backing region for another rather
// than relying on the Go runtime to happen to move (or not move) a slice.
// On other platforms, Acquire falls back to a plain heap-allocated slice.
package memregion

// Region is a released-or-live raw byte buffer plus the means to release
// it. The zero value is not valid; use Acquire.
type Region struct {
	bytes   []byte
	release func() error
}

// Bytes returns the region's backing storage.
func (r *Region) Bytes() []byte { return r.bytes }

// Release returns the region's storage to the OS (or, on the fallback
// path, to the garbage collector). A Region must not be used after Release.
func (r *Region) Release() error {
	if r == nil || r.release == nil {
		return nil
	}
	err := r.release()
	r.release = nil
	r.bytes = nil
	return err
}
