// Package clipboard converts between cell values and the delimited text
// exchanged with the system clipboard.
//
// The engine never touches the OS clipboard itself; it only produces and
// consumes text. A single column encodes as one value per line; multi-column
// selections put a delimiter between columns. On decode the delimiter is
// auto-detected among tab, comma, semicolon, and space. A blank line (or
// blank field) is the missing cell, which stays distinct from a line
// containing 0.
package clipboard

import (
	"strings"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/pool"
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// delimiters lists the candidates for auto-detection, in tie-break order.
var delimiters = []rune{'\t', ',', ';', ' '}

// Codec encodes and decodes clipboard text. The zero value auto-detects the
// delimiter on decode and emits tabs on encode.
type Codec struct {
	// Delimiter separates columns on encode, and on decode when AutoDetect
	// is off. Zero means tab.
	Delimiter rune
	// AutoDetect enables delimiter detection on decode.
	AutoDetect bool
}

// New returns a codec with the given delimiter and auto-detection on decode.
func New(delimiter rune) Codec {
	return Codec{Delimiter: delimiter, AutoDetect: true}
}

func (c Codec) delimiter() rune {
	if c.Delimiter == 0 {
		return '\t'
	}
	return c.Delimiter
}

// EncodeColumn renders a single column, one value per line. Empty cells
// become empty lines.
func (c Codec) EncodeColumn(values []cell.Value) string {
	b := stringpool.GetBuilder(stringpool.Medium)
	defer stringpool.PutBuilder(b, stringpool.Medium)

	for i, v := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// Encode renders a multi-column selection, one row per line with the codec
// delimiter between columns. All columns must have the same length.
func (c Codec) Encode(columns [][]cell.Value) (string, error) {
	if len(columns) == 0 {
		return "", nil
	}
	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return "", errors.Newf(errors.ErrorTypeValidation,
				"column %d has %d values, want %d", i, len(col), rows)
		}
	}

	delim := c.delimiter()
	b := stringpool.GetBuilder(stringpool.Large)
	defer stringpool.PutBuilder(b, stringpool.Large)

	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for i, col := range columns {
			if i > 0 {
				b.WriteRune(delim)
			}
			b.WriteString(col[r].String())
		}
	}
	return b.String(), nil
}

// DecodeColumn parses single-column clipboard text into cell values. Each
// line is one cell; a blank line is the missing cell. The reference
// behavior: "1\n\n0\n3" decodes to [1, empty, 0, 3].
func (c Codec) DecodeColumn(text string) []cell.Value {
	lines := splitLines(text)
	values := make([]cell.Value, len(lines))
	for i, line := range lines {
		values[i] = parseField(line)
	}
	return values
}

// Decode parses clipboard text into columns, auto-detecting the delimiter
// when enabled. It returns the columns, the delimiter used (0 when detection
// found none and the text is a single column), and an error only for empty
// input. Rows shorter than the widest row are padded with missing cells.
func (c Codec) Decode(text string) ([][]cell.Value, rune, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, 0, errors.New(errors.ErrorTypeValidation, "clipboard text is empty")
	}

	delim := c.delimiter()
	if c.AutoDetect {
		delim = detectDelimiter(lines)
	}
	if delim == 0 {
		return [][]cell.Value{c.DecodeColumn(text)}, 0, nil
	}

	fields := pool.GetStringSlice()
	defer pool.PutStringSlice(fields)

	// First pass: width of the widest row.
	width := 1
	for _, line := range lines {
		if n := fieldCount(line, delim); n > width {
			width = n
		}
	}

	columns := make([][]cell.Value, width)
	for i := range columns {
		columns[i] = make([]cell.Value, len(lines))
	}

	for r, line := range lines {
		*fields = splitFields(line, delim, (*fields)[:0])
		for col := 0; col < width; col++ {
			if col < len(*fields) {
				columns[col][r] = parseField((*fields)[col])
			} else {
				columns[col][r] = cell.Empty()
			}
		}
	}
	return columns, delim, nil
}

// Coerce converts values to the expected column kind. Numeric targets accept
// numbers, empties, and numeric-looking text; other text fails with a
// coercion error. Text targets render numbers to their display form.
func (c Codec) Coerce(values []cell.Value, kind cell.Kind) ([]cell.Value, error) {
	out := make([]cell.Value, len(values))
	for i, v := range values {
		switch kind {
		case cell.KindNumber:
			n, err := v.ToNumber()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeCoercion,
					stringpool.Sprintf("row %d", i))
			}
			out[i] = n
		case cell.KindText:
			if v.Kind() == cell.KindNumber {
				out[i] = cell.Text(v.String())
			} else {
				out[i] = v
			}
		default:
			out[i] = v
		}
	}
	return out, nil
}

// splitLines splits text on newlines, dropping carriage returns and one
// trailing newline artifact. Interior blank lines survive as missing cells.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.HasSuffix(text, "\n") {
		text = text[:len(text)-1]
	}
	return strings.Split(text, "\n")
}

// detectDelimiter picks the candidate with the highest count in the first
// non-blank line. Earlier candidates win ties, so tab beats comma. Zero means
// no delimiter found.
func detectDelimiter(lines []string) rune {
	var sample string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sample = line
			break
		}
	}
	if sample == "" {
		return 0
	}

	best := rune(0)
	bestCount := 0
	for _, d := range delimiters {
		if n := strings.Count(sample, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

func fieldCount(line string, delim rune) int {
	return strings.Count(line, string(delim)) + 1
}

// splitFields appends line fields to dst, reusing its capacity.
func splitFields(line string, delim rune, dst []string) []string {
	start := 0
	for i, r := range line {
		if r == delim {
			dst = append(dst, line[start:i])
			start = i + len(string(delim))
		}
	}
	return append(dst, line[start:])
}

// parseField trims surrounding whitespace and applies the cell coercion rule.
// A blank or whitespace-only field is the missing cell.
func parseField(field string) cell.Value {
	return cell.Parse(strings.TrimSpace(field))
}
