package world

import (
	"encoding/json"
	"testing"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"equal bools", Bool(true), Bool(true), true},
		{"unequal bools", Bool(true), Bool(false), false},
		{"equal ints", Int(42), Int(42), true},
		{"unequal ints", Int(42), Int(43), false},
		{"equal strings", String("sword"), String("sword"), true},
		{"unequal strings", String("sword"), String("axe"), false},
		{"equal floats", Float(3.14), Float(3.14), true},
		{"floats within grid", Float(1.0000001), Float(1.0000004), true},
		{"floats across grid", Float(1.0), Float(1.001), false},
		{"int never equals float", Int(1), Float(1.0), false},
		{"bool never equals string", Bool(true), String("true"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValue_Kind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Kind
	}{
		{"bool", Bool(true), KindBool},
		{"int", Int(1), KindInt},
		{"float", Float(1.5), KindFloat},
		{"string", String("x"), KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"bool", Bool(true), "b:true"},
		{"int", Int(-7), "i:-7"},
		{"float quantized", Float(2.5), "f:2.500000"},
		{"float rounded onto grid", Float(0.12345649), "f:0.123456"},
		{"string", String("cover"), "s:cover"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if b, ok := Bool(true).Bool(); !ok || !b {
		t.Errorf("Bool accessor = (%v, %v), want (true, true)", b, ok)
	}
	if _, ok := Bool(true).Int(); ok {
		t.Error("Int accessor on bool value should report false")
	}
	if i, ok := Int(9).Int(); !ok || i != 9 {
		t.Errorf("Int accessor = (%v, %v), want (9, true)", i, ok)
	}
	if f, ok := Float(1.5).Float(); !ok || f != 1.5 {
		t.Errorf("Float accessor = (%v, %v), want (1.5, true)", f, ok)
	}
	if s, ok := String("hp").Str(); !ok || s != "hp" {
		t.Errorf("Str accessor = (%v, %v), want (hp, true)", s, ok)
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    Value
		wantErr bool
	}{
		{"bool", true, Bool(true), false},
		{"int", int(5), Int(5), false},
		{"int64", int64(5), Int(5), false},
		{"float64", 2.25, Float(2.25), false},
		{"string", "ready", String("ready"), false},
		{"unsupported", []int{1}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAny(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("FromAny(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"bool", Bool(false)},
		{"int", Int(1234)},
		{"float", Float(9.75)},
		{"string", String("in_range")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			var got Value
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", data, err)
			}
			if !got.Equal(tt.v) {
				t.Errorf("round trip = %v, want %v", got, tt.v)
			}
		})
	}
}

func TestValue_UnmarshalJSON_Invalid(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"type":"vector","value":1}`), &v); err == nil {
		t.Error("Unmarshal with unknown type should fail")
	}
	if err := json.Unmarshal([]byte(`{"type":"bool","value":"yes"}`), &v); err == nil {
		t.Error("Unmarshal with mismatched payload should fail")
	}
}
