package lang

import (
	"log/slog"
	"strconv"
)

// Kind indicates which variant a [Value] holds.
type Kind int

const (
	// KindUnit is the empty result of a statement with no expression value.
	KindUnit Kind = iota

	// KindNumber is a signed integer.
	KindNumber
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"

	case KindNumber:
		return "Number"

	default:
		return "Unknown"
	}
}

// Value is the result of evaluation. The zero Value is [Unit].
// Values are small and always passed by copy.
type Value struct {
	Kind   Kind
	Number int64
}

// Unit is the value of a block or statement that produces no number.
var Unit = Value{Kind: KindUnit}

// NumberValue returns a Number value holding n.
func NumberValue(n int64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// IsUnit reports whether v is [Unit].
func (v Value) IsUnit() bool { return v.Kind == KindUnit }

// Int returns the integer held by v and whether v is a Number.
func (v Value) Int() (int64, bool) {
	return v.Number, v.Kind == KindNumber
}

// String renders v the way the REPL prints results.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatInt(v.Number, 10)
	}

	return "()"
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	if v.Kind == KindNumber {
		return slog.Int64Value(v.Number)
	}

	return slog.StringValue(v.String())
}

// ToNative converts v to a plain Go value: int64 for numbers, nil for Unit.
func (v Value) ToNative() any {
	if v.Kind == KindNumber {
		return v.Number
	}

	return nil
}
