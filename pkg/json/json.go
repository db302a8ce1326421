// Package json provides JSON serialization for Helios backed by goccy/go-json
// with pooled buffers.
package json

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/pool"
)

// Marshal encodes v using a pooled buffer and returns a copied byte slice.
func Marshal(v interface{}) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	enc := gojson.NewEncoder(buf)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "json encode failed")
	}

	// Encoder appends a trailing newline; strip it for Marshal semantics.
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}

	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// MarshalIndent encodes v with indentation for human-facing output.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	data, err := gojson.MarshalIndent(v, prefix, indent)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "json encode failed")
	}
	return data, nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v interface{}) error {
	if err := gojson.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "json decode failed")
	}
	return nil
}

// NewEncoder returns a goccy encoder writing to w.
func NewEncoder(w io.Writer) *gojson.Encoder {
	return gojson.NewEncoder(w)
}

// NewDecoder returns a goccy decoder reading from r.
func NewDecoder(r io.Reader) *gojson.Decoder {
	return gojson.NewDecoder(r)
}
