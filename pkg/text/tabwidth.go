package text

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultTabWidth = 4
	MinTabWidth     = 2
	MaxTabWidth     = 8
)

// ClampTabWidth limits n to [MinTabWidth, MaxTabWidth].
func ClampTabWidth(n int) int {
	return max(MinTabWidth, min(n, MaxTabWidth))
}

// ParseTabWidth reads a tab width from user input. Non-numeric input yields
// DefaultTabWidth; numeric input is truncated and clamped.
func ParseTabWidth(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return ClampTabWidth(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultTabWidth
	}
	return ClampTabWidth(int(f))
}

// TabWidthFrom normalizes a tab width decoded from a config file.
func TabWidthFrom(v any) int {
	switch n := v.(type) {
	case int:
		return ClampTabWidth(n)
	case int64:
		return ClampTabWidth(int(max(math.MinInt32, min(n, math.MaxInt32))))
	case uint64:
		return ClampTabWidth(int(min(n, math.MaxInt32)))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return DefaultTabWidth
		}
		return ClampTabWidth(int(max(math.MinInt32, min(n, math.MaxInt32))))
	case string:
		return ParseTabWidth(n)
	default:
		return DefaultTabWidth
	}
}
