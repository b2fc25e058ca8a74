package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f with the shortest digits that round-trip. Integral
// values keep a trailing ".0"; magnitudes below 1e-4 or from 1e16 upwards use
// exponent notation ("1e-05", "1.5e+16").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
