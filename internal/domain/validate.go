package domain

import "math"

// ValidateIdentifier accepts v when it is a non-negative integer of any Go
// integer type and returns it as an int. Booleans, floats, strings and nil
// are rejected with ErrInvalidIdentifier.
func ValidateIdentifier(field string, v any) (int, error) {
	var n int64
	switch val := v.(type) {
	case int:
		n = int64(val)
	case int8:
		n = int64(val)
	case int16:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case uint:
		if uint64(val) > math.MaxInt64 {
			return 0, invalidIdentifier(field, v)
		}
		n = int64(val)
	case uint8:
		n = int64(val)
	case uint16:
		n = int64(val)
	case uint32:
		n = int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return 0, invalidIdentifier(field, v)
		}
		n = int64(val)
	default:
		return 0, invalidIdentifier(field, v)
	}
	if n < 0 || n > math.MaxInt {
		return 0, invalidIdentifier(field, v)
	}
	return int(n), nil
}

// ValidateAmount accepts v when it is a non-negative integer or floating
// value and returns it as a float64. Booleans are rejected even though they
// are integer-like in some sources. NaN is not negative and passes.
func ValidateAmount(field string, v any) (float64, error) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := ValidateIdentifier(field, val)
		if err != nil {
			return 0, invalidAmount(field, v)
		}
		f = float64(n)
	default:
		return 0, invalidAmount(field, v)
	}
	if f < 0 {
		return 0, invalidAmount(field, v)
	}
	return f, nil
}

func invalidIdentifier(field string, v any) *ValidationError {
	return &ValidationError{Kind: ErrInvalidIdentifier, Field: field, Value: v}
}

func invalidAmount(field string, v any) *ValidationError {
	return &ValidationError{Kind: ErrInvalidAmount, Field: field, Value: v}
}
