package record

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of scalar kinds a cell can be coerced into.
type Kind uint8

const (
	Null Kind = iota
	Int
	Float
	Decimal
	Bool
	DateTime
	Text
)

var kindNames = [...]string{
	Null:     "null",
	Int:      "int",
	Float:    "float",
	Decimal:  "decimal",
	Bool:     "bool",
	DateTime: "datetime",
	Text:     "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable tagged scalar. The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	d    decimal.Decimal
	b    bool
	t    time.Time
	s    string
}

func NullValue() Value { return Value{} }
func IntValue(v int64) Value { return Value{kind: Int, i: v} }
func FloatValue(v float64) Value { return Value{kind: Float, f: v} }
func DecimalValue(v decimal.Decimal) Value { return Value{kind: Decimal, d: v} }
func BoolValue(v bool) Value { return Value{kind: Bool, b: v} }
func TimeValue(v time.Time) Value { return Value{kind: DateTime, t: v} }
func TextValue(v string) Value { return Value{kind: Text, s: v} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) Int() (int64, bool) { return v.i, v.kind == Int }
func (v Value) Float() (float64, bool) { return v.f, v.kind == Float }
func (v Value) Decimal() (decimal.Decimal, bool) { return v.d, v.kind == Decimal }
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == DateTime }
func (v Value) String() string { return v.Text() }

// Native returns the value as the Go type a database/sql driver accepts.
func (v Value) Native() any {
	switch v.kind {
	case Int:
		return v.i
	case Float:
		return v.f
	case Decimal:
		return v.d
	case Bool:
		return v.b
	case DateTime:
		return v.t
	case Text:
		return v.s
	}
	return nil
}

// Text renders the value as text. Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Decimal:
		return v.d.String()
	case Bool:
		return strconv.FormatBool(v.b)
	case DateTime:
		return v.t.Format(time.RFC3339Nano)
	case Text:
		return v.s
	}
	return ""
}

// Param returns the bind parameter for the value: the native value, or its
// text when asText is set. Null is always nil.
func (v Value) Param(asText bool) any {
	if v.kind == Null {
		return nil
	}
	if asText {
		return v.Text()
	}
	return v.Native()
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Decimal:
		return v.d.Equal(o.d)
	case DateTime:
		return v.t.Equal(o.t)
	}
	return v.Native() == o.Native()
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Decimal:
		return json.Marshal(v.d.String())
	}
	return json.Marshal(v.Native())
}
