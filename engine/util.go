package engine

import (
	"maps"

	"github.com/samber/lo"
)

// saturate keeps a cursor inside [0, n), or at 0 for an empty list
func saturate(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return lo.Clamp(cursor, 0, n-1)
}

func clampPercent(pct int) int {
	return lo.Clamp(pct, 0, 100)
}

// withLike returns a copy of likes with id added or removed
func withLike(likes map[int64]struct{}, id int64, like bool) map[int64]struct{} {
	next := maps.Clone(likes)
	if next == nil {
		next = map[int64]struct{}{}
	}
	if like {
		next[id] = struct{}{}
	} else {
		delete(next, id)
	}
	return next
}
