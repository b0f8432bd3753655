package core

// ColumnRange is a half-open range [Lo, Hi) of grid columns owned exclusively
// by one worker.
type ColumnRange struct {
	Lo, Hi int
}

// Empty reports whether the range owns no columns. Empty ranges occur only
// when there are more workers than interior columns, and always as a
// trailing run: every non-empty range has a non-empty left neighbor.
func (r ColumnRange) Empty() bool { return r.Lo >= r.Hi }

// Width returns the number of columns in the range.
func (r ColumnRange) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Partition splits the interior columns [1, size-1) into n contiguous,
// disjoint ranges. Each worker gets ceil((size-2)/n) columns except the last,
// which takes whatever remains. The union of the returned ranges is exactly
// the interior, with no gaps and no overlaps.
func Partition(size, n int) []ColumnRange {
	if size < 3 {
		panic("core: partition requires grid size >= 3")
	}
	if n < 1 {
		panic("core: partition requires at least one worker")
	}

	interior := size - 2
	chunk := (interior + n - 1) / n

	ranges := make([]ColumnRange, n)
	for t := 0; t < n; t++ {
		lo := 1 + t*chunk
		hi := lo + chunk
		if t == n-1 || hi > size-1 {
			hi = size - 1
		}
		if lo > size-1 {
			lo = size - 1
		}
		ranges[t] = ColumnRange{Lo: lo, Hi: hi}
	}
	return ranges
}
