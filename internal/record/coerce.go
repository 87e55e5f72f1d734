package record

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Epsilon is the largest distance from an integer at which a float still
// narrows to Int.
const Epsilon = 1e-9

// Coerce maps a source scalar to a Value:
//
//	time.Time              -> DateTime, unchanged
//	float within Epsilon   -> Int(round(x)), other floats -> Float
//	signed/unsigned ints   -> Int
//	bool                   -> Bool
//	decimal.Decimal        -> Decimal
//	blank string           -> Null, other strings -> trimmed Text
//	nil                    -> Null
//	anything else          -> its fmt text, coerced as a string
func Coerce(src any) Value {
	switch v := src.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case time.Time:
		return TimeValue(v)
	case *time.Time:
		if v == nil {
			return NullValue()
		}
		return TimeValue(*v)
	case float64:
		return narrowFloat(v)
	case float32:
		return narrowFloat(float64(v))
	case int:
		return IntValue(int64(v))
	case int8:
		return IntValue(int64(v))
	case int16:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case uint8:
		return IntValue(int64(v))
	case uint16:
		return IntValue(int64(v))
	case uint32:
		return IntValue(int64(v))
	case uint:
		if uint64(v) > math.MaxInt64 {
			return DecimalValue(decimal.RequireFromString(fmt.Sprint(v)))
		}
		return IntValue(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return DecimalValue(decimal.RequireFromString(fmt.Sprint(v)))
		}
		return IntValue(int64(v))
	case bool:
		return BoolValue(v)
	case decimal.Decimal:
		return DecimalValue(v)
	case string:
		return coerceText(v)
	case []byte:
		return coerceText(string(v))
	case fmt.Stringer:
		return coerceText(v.String())
	}
	return coerceText(fmt.Sprint(src))
}

func coerceText(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullValue()
	}
	return TextValue(s)
}

func narrowFloat(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return FloatValue(x)
	}
	r := math.Round(x)
	if math.Abs(x-r) <= Epsilon && r >= math.MinInt64 && r < math.MaxInt64 {
		return IntValue(int64(r))
	}
	return FloatValue(x)
}
