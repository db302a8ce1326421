// Package cell defines the typed cell value used throughout Helios.
//
// A cell is a tagged variant of number, text, or empty. The empty state is
// distinct from the number zero and from the empty string; the editing
// engine is required to preserve that distinction through every command,
// undo, and clipboard round trip.
package cell

import (
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/helios-model/helios/pkg/errors"
)

// Kind identifies the variant stored in a Value.
type Kind int

const (
	// KindEmpty is a missing cell, distinct from zero and from "".
	KindEmpty Kind = iota
	// KindNumber is a float64 cell.
	KindNumber
	// KindText is a string cell.
	KindText
)

// String returns the kind name for logging and error details.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}

// Value is an immutable tagged cell value. The zero Value is the empty cell.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Empty returns the missing cell value.
func Empty() Value {
	return Value{}
}

// Number returns a numeric cell value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a text cell value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind returns the variant stored in the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the value is the missing cell.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Float returns the numeric payload. It is zero unless Kind is KindNumber.
func (v Value) Float() float64 {
	return v.num
}

// Str returns the text payload. It is "" unless Kind is KindText.
func (v Value) Str() string {
	return v.text
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindText:
		return v.text == other.text
	default:
		return true
	}
}

// String returns the display form: empty cells render as the empty string,
// numbers in the shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Parse converts external text into a value. The empty string parses to the
// empty cell, numeric text to a number, anything else to text. This is the
// single coercion rule the clipboard codec builds on. Only finite numbers
// qualify: NaN and the infinities have no JSON number form, so text like
// "NaN" stays text.
func Parse(s string) Value {
	if s == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
		return Number(f)
	}
	return Text(s)
}

// ToNumber converts the value to a numeric cell. Empty passes through
// unchanged, text converts only when it parses as a float.
func (v Value) ToNumber() (Value, error) {
	switch v.kind {
	case KindEmpty, KindNumber:
		return v, nil
	default:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || !isFinite(f) {
			return Value{}, errors.Newf(errors.ErrorTypeCoercion,
				"cannot convert %q to a number", v.text)
		}
		return Number(f), nil
	}
}

// isFinite reports whether f has a JSON number representation.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON encodes empty as null, numbers as JSON numbers, text as strings.
// Non-finite numbers built directly through Number fall back to their string
// form so the output is always valid JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if !isFinite(v.num) {
			return gojson.Marshal(v.String())
		}
		return strconv.AppendFloat(nil, v.num, 'g', -1, 64), nil
	case KindText:
		return gojson.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null as empty, numbers and strings as their kinds.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "invalid cell value")
	}
	switch t := raw.(type) {
	case nil:
		*v = Empty()
	case float64:
		*v = Number(t)
	case string:
		*v = Text(t)
	case bool:
		// Workbooks occasionally carry TRUE/FALSE cells; keep them as text.
		*v = Text(strconv.FormatBool(t))
	default:
		return errors.Newf(errors.ErrorTypeData, "unsupported cell value %T", raw)
	}
	return nil
}
