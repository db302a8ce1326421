// Package strings provides pooled string building utilities for Helios.
package strings

import (
	"fmt"
	"sync"
)

// Builder provides efficient string building backed by a reusable byte slice.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder with the given initial capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte to the builder.
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// WriteRune appends a rune to the builder.
func (b *Builder) WriteRune(r rune) {
	b.buf = append(b.buf, string(r)...)
}

// Write implements io.Writer for the builder.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the accumulated string.
func (b *Builder) String() string {
	return string(b.buf)
}

// Len returns the current length of the builder content.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset clears the builder content while retaining capacity.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// BuilderSize represents predefined builder capacity buckets.
type BuilderSize int

const (
	// Small builders hold short messages such as error strings.
	Small BuilderSize = iota
	// Medium builders hold single-column clipboard payloads.
	Medium
	// Large builders hold multi-column clipboard payloads.
	Large
)

var builderPools = [3]sync.Pool{
	{New: func() interface{} { return NewBuilder(256) }},
	{New: func() interface{} { return NewBuilder(4 * 1024) }},
	{New: func() interface{} { return NewBuilder(64 * 1024) }},
}

// GetBuilder retrieves a pooled builder of the given size bucket.
func GetBuilder(size BuilderSize) *Builder {
	b := builderPools[size].Get().(*Builder)
	b.Reset()
	return b
}

// PutBuilder returns a builder to its size bucket pool.
func PutBuilder(builder *Builder, size BuilderSize) {
	if builder == nil {
		return
	}
	builderPools[size].Put(builder)
}

// BuildString builds a string using a pooled small builder.
func BuildString(fn func(*Builder)) string {
	b := GetBuilder(Small)
	defer PutBuilder(b, Small)
	fn(b)
	return b.String()
}

// BuildMediumString builds a string using a pooled medium builder.
func BuildMediumString(fn func(*Builder)) string {
	b := GetBuilder(Medium)
	defer PutBuilder(b, Medium)
	fn(b)
	return b.String()
}

// Sprintf formats using a pooled builder to avoid intermediate allocations.
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	size := Small
	if len(format)+len(args)*16 > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	fmt.Fprintf(builder, format, args...)
	return builder.String()
}

// Concat concatenates strings using a pooled builder.
func Concat(parts ...string) string {
	total := 0
	for _, s := range parts {
		total += len(s)
	}
	if total == 0 {
		return ""
	}

	size := Small
	if total > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	for _, s := range parts {
		builder.WriteString(s)
	}
	return builder.String()
}
