package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Attribute Values
// ============================================================================

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a closed variant holding a string, a number or a bool.
// The zero Value is invalid and is rejected wherever attributes are accepted.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// String returns a string attribute value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a numeric attribute value
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int is shorthand for Number(float64(i))
func Int(i int) Value { return Number(float64(i)) }

// Bool returns a boolean attribute value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the supported variants
func (v Value) IsValid() bool {
	return v.kind >= KindString && v.kind <= KindBool
}

// AsString returns the string variant and whether v held one
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsNumber returns the numeric variant and whether v held one
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsBool returns the boolean variant and whether v held one
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Interface returns v as a plain Go value, suitable for drivers that take any
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String renders v for humans (logs, chat replies)
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes v as a bare JSON scalar
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid attribute value")
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts JSON strings, numbers and booleans only
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attribute value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case 'n':
		return fmt.Errorf("null is not a valid attribute value")
	case '{', '[':
		return fmt.Errorf("nested attribute values are not supported")
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	}
	return nil
}

// ParseValue infers a Value from free text: bool first, then number, else string
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	// strconv.ParseBool also takes "1" and "t", which would swallow small numbers
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Number(n)
	}
	return String(raw)
}

// Attributes is an open-ended bag of named values
type Attributes map[string]Value

// Validate rejects empty keys and invalid values
func (a Attributes) Validate() error {
	for key, val := range a {
		if strings.TrimSpace(key) == "" {
			return apperrors.NewInvalidAttribute(key, "key must not be empty")
		}
		if !val.IsValid() {
			return apperrors.NewInvalidAttribute(key, "value has no type")
		}
		if n, ok := val.AsNumber(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
			return apperrors.NewInvalidAttribute(key, "number must be finite")
		}
	}
	return nil
}

// Clone returns a copy that shares nothing with a. A nil bag clones to an empty one.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge overwrites matching keys in a with those in update and keeps the rest
func (a Attributes) Merge(update Attributes) {
	for k, v := range update {
		a[k] = v
	}
}

// Map converts the bag to plain Go values
func (a Attributes) Map() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v.Interface()
	}
	return out
}
