package model1

import (
	"strings"

	"github.com/fvbommel/sortorder"
)

// Less returns true if v1 sorts before v2, using the ids as tie breaker.
func Less(isCapacity bool, id1, id2, v1, v2 string) bool {
	if v1 == v2 {
		return sortorder.NaturalLess(id1, id2)
	}
	if isCapacity {
		return lessNumber(v1, v2)
	}
	return sortorder.NaturalLess(strings.ToLower(v1), strings.ToLower(v2))
}

// RowLess returns an ordering on rows for the given column.
func RowLess(h Header, col int) func(a, b Row) bool {
	capacity := h.IsCapacityCol(col)
	return func(a, b Row) bool {
		return Less(capacity, a.ID, b.ID, a.Field(col), b.Field(col))
	}
}

func lessNumber(s1, s2 string) bool {
	v1, v2 := strings.ReplaceAll(s1, ",", ""), strings.ReplaceAll(s2, ",", "")
	if len(v1) != len(v2) {
		return len(v1) < len(v2)
	}
	return sortorder.NaturalLess(v1, v2)
}
