// Package secmem provides mlock'd, zero-on-destroy byte buffers for secret
// material that passes through the scheme: the master secret, the
// encrypted master secret, and any value recovered from a quorum of
// shares.
package secmem

import (
	"runtime"
	"sync"
)

// Bytes wraps a sensitive byte slice with mlock'd, zero-on-destroy memory
// handling.
type Bytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// New allocates a zeroed Bytes of the given size, locking its memory if the
// platform supports it.
func New(size int) *Bytes {
	data := make([]byte, size)
	b := &Bytes{data: data, locked: mlock(data)}
	runtime.SetFinalizer(b, func(s *Bytes) { s.Destroy() })
	return b
}

// FromSlice copies data into a new secure Bytes.
func FromSlice(data []byte) *Bytes {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice. Returns nil once Destroy has run.
func (s *Bytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked reports whether the backing memory is mlock'd.
func (s *Bytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len returns the length of the wrapped data, or 0 after Destroy.
func (s *Bytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeros and unlocks the memory. Safe to call more than once.
func (s *Bytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}
