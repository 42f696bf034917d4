// Package trailer provides parsing and representation of commit message
// trailers. Trailers are key-value metadata appended to issue messages
// following the git trailer convention; keys with the "Dit" prefix carry
// issue metadata such as type and status.
package trailer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DitPrefix marks trailer keys carrying issue metadata.
const DitPrefix = "Dit"

// SignOffKey is recognised as a sign-off convention but not interpreted.
const SignOffKey = "Signed-off-by"

// lineRegex matches a single trailer line: a key of letters, digits and
// dashes, a ":" or "=" delimiter, and the remainder as the raw value.
var lineRegex = regexp.MustCompile(`^([A-Za-z0-9-]+)[:=](.*)$`)

// Value is a trailer value, either an integer or a string. A textual
// value classifies as an integer if and only if it parses as a signed
// 64-bit integer.
type Value interface {
	fmt.Stringer

	// Append folds a continuation slice into the value. The result is
	// always a string value consisting of the old value rendered as a
	// string followed by the slice.
	Append(slice string) Value
}

// IntValue is a trailer value holding a signed 64-bit integer.
type IntValue int64

func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }

func (v IntValue) Append(slice string) Value { return StringValue(v.String() + slice) }

// StringValue is a trailer value holding free-form text.
type StringValue string

func (v StringValue) String() string { return string(v) }

func (v StringValue) Append(slice string) Value { return StringValue(string(v) + slice) }

// NewValue classifies a textual value as integer or string.
func NewValue(slice string) Value {
	if n, err := strconv.ParseInt(slice, 10, 64); err == nil {
		return IntValue(n)
	}
	return StringValue(slice)
}

// Trailer is a single key-value pair of message metadata.
type Trailer struct {
	Key   string
	Value Value
}

// New builds a trailer from a key and a textual value.
func New(key, value string) Trailer {
	return Trailer{Key: key, Value: NewValue(value)}
}

// String renders the trailer in its canonical "Key: value" form.
func (t Trailer) String() string {
	return t.Key + ": " + t.Value.String()
}

// IsDit reports whether the trailer carries issue metadata.
func (t Trailer) IsDit() bool {
	return strings.HasPrefix(t.Key, DitPrefix)
}

// FormatError reports a line which did not parse as a trailer. It
// carries the offending line so callers can reclassify it as text.
type FormatError struct {
	Line string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("not a valid trailer: %q", e.Line)
}

// Parse parses a single right-trimmed line into a trailer. The value
// part is whitespace-trimmed before classification. Both ":" and "="
// are accepted as delimiters, so "key=value" arguments parse as well.
func Parse(line string) (Trailer, error) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return Trailer{}, &FormatError{Line: line}
	}
	return Trailer{Key: m[1], Value: NewValue(strings.TrimSpace(m[2]))}, nil
}

// ParseSpec parses a caller-supplied metadata argument of the form
// "key=value" or "key: value" into a trailer, e.g. values passed on a
// command line or read from configuration.
func ParseSpec(spec string) (Trailer, error) {
	return Parse(spec)
}

// OnlyDit filters a trailer slice down to dit metadata.
func OnlyDit(trailers []Trailer) []Trailer {
	var out []Trailer
	for _, t := range trailers {
		if t.IsDit() {
			out = append(out, t)
		}
	}
	return out
}
