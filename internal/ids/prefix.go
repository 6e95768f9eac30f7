package ids

import (
	"slices"

	"github.com/google/uuid"
)

// UniquePrefixLengths returns, for each id, the length of the shortest prefix
// of its canonical string that no other id shares. Lengths are at least
// minimum.
func UniquePrefixLengths(ids []uuid.UUID, minimum int) map[uuid.UUID]int {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	slices.Sort(values)
	values = slices.Compact(values)

	lengths := make(map[uuid.UUID]int, len(values))
	for i, value := range values {
		length := 1
		if i > 0 {
			length = max(length, commonPrefix(value, values[i-1])+1)
		}
		if i < len(values)-1 {
			length = max(length, commonPrefix(value, values[i+1])+1)
		}
		length = min(max(length, minimum), len(value))
		lengths[uuid.MustParse(value)] = length
	}
	return lengths
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
