package dbtable

import "fmt"

// ColumnType identifies the variant a cell's value must hold. A Value
// itself carries no tag — callers resolve the tag from the owning
// column, per the data model's single source of truth.
type ColumnType uint8

const (
	TypeInt ColumnType = iota
	TypeFloat
	TypeString
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// zeroValue returns the type-appropriate zero for t: 0, 0.0, or "".
func zeroValue(t ColumnType) any {
	switch t {
	case TypeInt:
		return int64(0)
	case TypeFloat:
		return 0.0
	case TypeString:
		return ""
	default:
		return nil
	}
}

// copyValue returns an independent copy of v. Go's value semantics for
// int64, float64, and string already give us the "duplicate the
// buffer" behavior the data model requires for strings — a Go string
// header is immutable and safe to share, so "deep copy" here is just
// value assignment. The function exists so every mutation site goes
// through one named operation, matching the explicit copy/destroy
// contract in the data model.
func copyValue(v any) any { return v }

// valueMatchesType reports whether v holds the Go type that
// corresponds to t.
func valueMatchesType(v any, t ColumnType) bool {
	switch t {
	case TypeInt:
		_, ok := v.(int64)
		return ok
	case TypeFloat:
		_, ok := v.(float64)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// coerceValue converts v to the canonical Go representation for t when
// the conversion is unambiguous (e.g. a literal int from a test or
// example passed as int rather than int64), and validates the result
// against t. It never changes the represented value, only its Go type.
func coerceValue(v any, t ColumnType) (any, error) {
	switch t {
	case TypeInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		}
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	if valueMatchesType(v, t) {
		return v, nil
	}
	return nil, &InvalidArgumentError{Reason: fmt.Sprintf("value %v is not assignable to column type %s", v, t)}
}

// valuesEqual reports whether a and b are equal, comparing strings
// byte-wise as the foreign-key and primary-key checks require.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}
