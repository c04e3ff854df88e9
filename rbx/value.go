package rbx

import "bytes"

// ValueKind identifies the type of a property Value.
type ValueKind uint8

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindVector3
	KindColor3
	KindRef
)

// String returns the kind name as used in wire formats and error messages.
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindVector3:
		return "vector3"
	case KindColor3:
		return "color3"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Vector3 is a three-component position or direction property value.
type Vector3 struct {
	X, Y, Z float64
}

// Color3 is an RGB color property value with components in [0, 1].
type Color3 struct {
	R, G, B float64
}

// Value is a tagged property value. The zero Value is Nil.
//
// Values are small and copied freely; Bytes payloads share the backing
// slice, so callers that need isolation must copy before mutating.
type Value struct {
	kind  ValueKind
	b     bool
	i     int64
	f     float64
	s     string
	bytes []byte
	vec   Vector3
	col   Color3
	ref   int64
}

// NilValue returns the nil Value.
func NilValue() Value { return Value{} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns a 64-bit integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a 64-bit float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BytesValue returns a raw bytes Value. The slice is not copied.
func BytesValue(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Vector3Value returns a Vector3 Value.
func Vector3Value(v Vector3) Value { return Value{kind: KindVector3, vec: v} }

// Color3Value returns a Color3 Value.
func Color3Value(c Color3) Value { return Value{kind: KindColor3, col: c} }

// RefValue returns a Value referencing another instance by node id.
// A negative id is a null reference.
func RefValue(id int64) Value { return Value{kind: KindRef, ref: id} }

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNil reports whether v is the nil Value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only for KindFloat.
func (v Value) Float() float64 { return v.f }

// String returns the string payload. Valid only for KindString.
func (v Value) String() string { return v.s }

// Bytes returns the bytes payload. Valid only for KindBytes.
func (v Value) Bytes() []byte { return v.bytes }

// Vector3 returns the vector payload. Valid only for KindVector3.
func (v Value) Vector3() Vector3 { return v.vec }

// Color3 returns the color payload. Valid only for KindColor3.
func (v Value) Color3() Color3 { return v.col }

// Ref returns the referenced node id. Valid only for KindRef.
func (v Value) Ref() int64 { return v.ref }

// Equal reports deep equality of two Values, including kind.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.bytes, o.bytes)
	case KindVector3:
		return v.vec == o.vec
	case KindColor3:
		return v.col == o.col
	case KindRef:
		return v.ref == o.ref
	default:
		return false
	}
}
