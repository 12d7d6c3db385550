// Package world defines the typed world-state model shared by actions,
// goals, and the planner: tagged fact values, partial fact sets, and the
// full state with deterministic content-based identity.
package world

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// floatGrid is the quantization grid for float facts. Floats are rounded to
// this grid at construction so that equality and state fingerprints remain
// stable when effects are merged repeatedly during search.
const floatGrid = 1e6

// Value is one fact's value: a tagged union over bool, int64, float64, and
// string. Values are immutable once constructed. Values of different kinds
// are never equal, even when numerically equivalent.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool returns a boolean fact value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int returns an integer fact value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a float fact value quantized to the precision grid.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: quantize(v)}
}

// String returns a string fact value.
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// quantize rounds v to the fixed precision grid. Non-finite values pass
// through unchanged; NaN facts compare unequal to everything, which callers
// should treat as a definition error.
func quantize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*floatGrid) / floatGrid
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. The second result is false when the
// value holds a different kind.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the integer payload.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the quantized float payload.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Equal reports whether two values hold the same kind and payload. Float
// payloads were quantized at construction, so comparison is exact.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	default:
		return false
	}
}

// String renders the value with a kind prefix. The rendering is part of the
// state fingerprint contract and must stay deterministic.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'f', 6, 64)
	case KindString:
		return "s:" + v.s
	default:
		return "?"
	}
}

// Interface returns the payload as an untyped value, for JSON-friendly
// output and logging.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// FromAny converts a dynamically typed value (as produced by YAML/JSON
// decoding) into a Value. Integral types map to Int, floats to Float,
// booleans to Bool, strings to String.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint64:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported fact value type %T", raw)
	}
}

// valueJSON is the wire form of a Value.
type valueJSON struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// MarshalJSON encodes the value in tagged form, e.g. {"type":"int","value":3}.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueJSON{Type: v.kind.String(), Value: v.Interface()})
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw valueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case "bool":
		b, ok := raw.Value.(bool)
		if !ok {
			return fmt.Errorf("bool value holds %T", raw.Value)
		}
		*v = Bool(b)
	case "int":
		// JSON numbers decode as float64.
		f, ok := raw.Value.(float64)
		if !ok {
			return fmt.Errorf("int value holds %T", raw.Value)
		}
		*v = Int(int64(f))
	case "float":
		f, ok := raw.Value.(float64)
		if !ok {
			return fmt.Errorf("float value holds %T", raw.Value)
		}
		*v = Float(f)
	case "string":
		s, ok := raw.Value.(string)
		if !ok {
			return fmt.Errorf("string value holds %T", raw.Value)
		}
		*v = String(s)
	default:
		return fmt.Errorf("unknown fact value type %q", raw.Type)
	}
	return nil
}
