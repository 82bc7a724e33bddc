package simulation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultClassSize = 5
	MinClassSize     = 2
)

// ClassSize coerces a loosely typed class size. Values that cannot be read
// as an integer fall back to DefaultClassSize; the result is never below
// MinClassSize.
func ClassSize(v any) int {
	n, ok := toInt(v)
	if !ok {
		n = DefaultClassSize
	}
	if n < MinClassSize {
		n = MinClassSize
	}
	return n
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return clampUint(uint64(x)), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return clampUint(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case json.Number:
		return toInt(string(x))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}

func clampUint(u uint64) int {
	if u > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(u)
}
