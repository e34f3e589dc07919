package pfam

import (
	"strconv"
	"strings"
)

// Kind discriminates the states of a normalized Value.
type Kind int

const (
	KindAbsent Kind = iota // missing, empty, or whitespace-only
	KindFloat              // parsed fully as a floating-point number
	KindString             // non-numeric text
)

// Value is the typed scalar produced by normalizing a raw XML text or
// attribute string. The Pfam server reports every field as text; Value keeps
// the deterministic float/string/absent interpretation in one place instead
// of scattering parse attempts through the mappers.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Normalize converts a raw XML string into a typed Value:
// whitespace is trimmed, an empty result is absent, a string that parses
// fully as a float becomes a float, and anything else stays a string.
// Normalize never fails; an unparseable number is simply a string.
func Normalize(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{kind: KindFloat, text: trimmed, num: num}
	}
	return Value{kind: KindString, text: trimmed}
}

// FloatValue builds a Value holding a number. Used by callers that already
// have a typed quantity and want to store it alongside normalized fields.
func FloatValue(num float64) Value {
	return Value{kind: KindFloat, text: strconv.FormatFloat(num, 'g', -1, 64), num: num}
}

// StringValue builds a Value holding text. The text is trimmed and an empty
// result is absent; unlike Normalize, numeric-looking text stays a string.
func StringValue(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Value{}
	}
	return Value{kind: KindString, text: trimmed}
}

// Kind returns the discriminator of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value was missing, empty, or whitespace-only.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Float returns the numeric interpretation and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindFloat
}

// String returns the trimmed text of the value, or the empty string when the
// value is absent. Numeric values keep their original trimmed text.
func (v Value) String() string {
	return v.text
}
