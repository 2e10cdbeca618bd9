package domain

import (
	"encoding/json"
	"fmt"
	"unicode"
)

type flexKind int

const (
	flexAbsent flexKind = iota
	flexNumber
	flexString
	flexObject
)

// FlexValue is a tagged union for INGRES fields that arrive as a number, a
// string, or an object keyed by "total" / "non_command" / "command". The
// zero value is absent. Keeping the shape explicit preserves the
// normalization precedence rules instead of flattening them away.
type FlexValue struct {
	kind flexKind
	num  float64
	str  string
	obj  map[string]json.RawMessage
}

// NumberValue builds a numeric FlexValue. Intended for tests and fixtures.
func NumberValue(v float64) FlexValue { return FlexValue{kind: flexNumber, num: v} }

// StringValue builds a string FlexValue. Intended for tests and fixtures.
func StringValue(s string) FlexValue { return FlexValue{kind: flexString, str: s} }

// ObjectValue builds an object FlexValue from raw JSON fields.
func ObjectValue(fields map[string]json.RawMessage) FlexValue {
	return FlexValue{kind: flexObject, obj: fields}
}

// IsAbsent reports whether the field was missing or JSON null.
func (v FlexValue) IsAbsent() bool { return v.kind == flexAbsent }

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = FlexValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex value string: %w", err)
		}
		*v = FlexValue{kind: flexString, str: s}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("flex value object: %w", err)
		}
		*v = FlexValue{kind: flexObject, obj: obj}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("flex value number: %w", err)
		}
		*v = FlexValue{kind: flexNumber, num: n}
	}
	return nil
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case flexNumber:
		return json.Marshal(v.num)
	case flexString:
		return json.Marshal(v.str)
	case flexObject:
		return json.Marshal(v.obj)
	default:
		return []byte("null"), nil
	}
}

// MCM extracts a numeric groundwater quantity in million cubic metres.
// Precedence for objects: "total", then "non_command". Anything that cannot
// be read numerically yields 0.0, a lossy-but-safe default.
func (v FlexValue) MCM() float64 {
	switch v.kind {
	case flexNumber:
		return v.num
	case flexObject:
		if n, ok := v.objNumber("total"); ok {
			return n
		}
		if n, ok := v.objNumber("non_command"); ok {
			return n
		}
		return 0.0
	default:
		return 0.0
	}
}

// CategoryLabel normalizes an INGRES extraction category to the rule
// engine's vocabulary. Absent values default to "Critical", the most
// conservative allowance. Objects prefer "total" over "non_command".
func (v FlexValue) CategoryLabel() string {
	switch v.kind {
	case flexString:
		if v.str == "" {
			return "Critical"
		}
		return titleCase(v.str)
	case flexObject:
		if s, ok := v.objString("total"); ok && s != "" {
			return titleCase(s)
		}
		if s, ok := v.objString("non_command"); ok && s != "" {
			return titleCase(s)
		}
		return "Critical"
	default:
		return "Critical"
	}
}

func (v FlexValue) objNumber(key string) (float64, bool) {
	raw, ok := v.obj[key]
	if !ok {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func (v FlexValue) objString(key string) (string, bool) {
	raw, ok := v.obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// titleCase uppercases the first letter of every word and lowercases the
// rest, treating any non-letter as a word boundary: "semi-critical" ->
// "Semi-Critical". This mirrors the normalization the registry's consumers
// have always applied, including its behavior on hyphenated categories.
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if prevLetter {
				out[i] = unicode.ToLower(r)
			} else {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
