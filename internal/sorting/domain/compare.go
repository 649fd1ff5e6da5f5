package domain

import (
	"bytes"
	"cmp"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rango de cada categoría cuando se comparan claves de tipos distintos.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankUUID
	rankOther
)

// Compare define un orden total sobre claves de orden heterogéneas: nil
// primero, valores de la misma categoría comparados de forma nativa y el
// resto por categoría y luego por su representación textual.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		return compareBool(a.(bool), b.(bool))
	case rankNumber:
		return compareNumber(a, b)
	case rankString:
		return cmp.Compare(toString(a), toString(b))
	case rankTime:
		return toTime(a).Compare(toTime(b))
	case rankUUID:
		ua, ub := a.(uuid.UUID), b.(uuid.UUID)
		return bytes.Compare(ua[:], ub[:])
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, time.Duration:
		return rankNumber
	case time.Time, *time.Time:
		return rankTime
	case uuid.UUID:
		return rankUUID
	case string, fmt.Stringer:
		return rankString
	default:
		return rankOther
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareNumber evita pasar por float64 cuando ambos son enteros.
func compareNumber(a, b any) int {
	ia, aInt := toInt(a)
	ib, bInt := toInt(b)
	if aInt && bInt {
		return cmp.Compare(ia, ib)
	}
	ua, aUint := toUint(a)
	ub, bUint := toUint(b)
	if aUint && bUint {
		return cmp.Compare(ua, ub)
	}
	return cmp.Compare(toFloat(a), toFloat(b))
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case time.Duration:
		return int64(n), true
	default:
		return 0, false
	}
}

func toUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) float64 {
	if i, ok := toInt(v); ok {
		return float64(i)
	}
	if u, ok := toUint(v); ok {
		return float64(u)
	}
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return v.(fmt.Stringer).String()
}

func toTime(v any) time.Time {
	if t, ok := v.(*time.Time); ok {
		if t == nil {
			return time.Time{}
		}
		return *t
	}
	return v.(time.Time)
}
