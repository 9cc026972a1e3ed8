package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeID coerces any identifier that originated in the relational store
// into the graph store's string representation before it is bound as a query
// parameter. Node matches always compare against this form, so "42" and the
// integer 42 key the same node.
func NormalizeID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// Whole-valued floats come from JSON decoding of numeric ids.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
