// Package scratch provides a pool of reusable byte buffers for transient
// decode-time work: unpacking bit-packed boolean arrays.
// It only ever holds short-lived scratch space that is returned before the
// decoder moves on to the next field.
package scratch

import "sync"

// defaultSize covers the common case (up to 32768 bit-packed booleans)
// without growing.
const defaultSize = 4096

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, defaultSize)
		return &b
	},
}

// Get returns a scratch buffer with length n, reusing pooled capacity when
// available. The caller must call Put when done.
func Get(n int) []byte {
	ptr, _ := bufPool.Get().(*[]byte)
	if cap(*ptr) < n {
		*ptr = make([]byte, n)
	} else {
		*ptr = (*ptr)[:n]
	}

	return *ptr
}

// Put returns a buffer obtained from Get back to the pool.
func Put(b []byte) {
	b = b[:0]
	bufPool.Put(&b)
}
