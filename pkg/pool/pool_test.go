package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolGetPut(t *testing.T) {
	p := New(
		func() *[]int {
			s := make([]int, 0, 8)
			return &s
		},
		func(s *[]int) { *s = (*s)[:0] },
	)

	s := p.Get()
	*s = append(*s, 1, 2, 3)
	p.Put(s)

	// Reused objects come back reset.
	again := p.Get()
	assert.Len(t, *again, 0)
	p.Put(again)
}

func TestPoolStats(t *testing.T) {
	p := New(func() int { return 0 }, nil)

	v := p.Get()
	allocated, inUse, hits := p.Stats()
	assert.Equal(t, int64(1), allocated)
	assert.Equal(t, int64(1), inUse)
	assert.Equal(t, int64(1), hits)

	p.Put(v)
	_, inUse, _ = p.Stats()
	assert.Equal(t, int64(0), inUse)
}

func TestGlobalStringSlicePool(t *testing.T) {
	s := GetStringSlice()
	*s = append(*s, "a", "b")
	PutStringSlice(s)

	again := GetStringSlice()
	assert.Len(t, *again, 0)
	PutStringSlice(again)

	PutStringSlice(nil) // must not panic
}

func TestGlobalBufferPool(t *testing.T) {
	b := GetBuffer()
	b.WriteString("scratch")
	PutBuffer(b)

	again := GetBuffer()
	assert.Equal(t, 0, again.Len())
	PutBuffer(again)

	PutBuffer(nil) // must not panic
}
