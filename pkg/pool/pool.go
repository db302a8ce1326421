// Package pool provides typed object pooling for Helios.
//
// The editing engine allocates short-lived scratch buffers on hot paths such
// as clipboard decoding and snapshot encoding. Pool wraps sync.Pool with type
// safety, optional reset functions, and usage statistics.
package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It is safe for concurrent use and tracks allocation statistics.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
	}
}

// New creates a new typed pool with custom allocation and reset functions.
// The reset function, if non-nil, is called before an object is returned to
// the pool.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   newFn,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return newFn()
	}
	return p
}

// Get retrieves an object from the pool, allocating when empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put returns an object to the pool for reuse.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns allocation count, objects in use, and Get hits.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits)
}

// Global pools for common scratch types.

var stringSlicePool = New(
	func() *[]string {
		s := make([]string, 0, 64)
		return &s
	},
	func(s *[]string) { *s = (*s)[:0] },
)

// GetStringSlice returns a pooled string slice for per-line field scratch.
func GetStringSlice() *[]string {
	return stringSlicePool.Get()
}

// PutStringSlice returns a string slice to the pool.
func PutStringSlice(s *[]string) {
	if s == nil {
		return
	}
	stringSlicePool.Put(s)
}

var bufferPool = New(
	func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
	func(b *bytes.Buffer) { b.Reset() },
)

// GetBuffer returns a pooled byte buffer.
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get()
}

// PutBuffer returns a byte buffer to the pool.
func PutBuffer(b *bytes.Buffer) {
	if b == nil {
		return
	}
	bufferPool.Put(b)
}
