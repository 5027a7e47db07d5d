package hir

import "sort"

// lineTable maps byte offsets to 1-based lines and columns.
type lineTable struct {
	starts []int
}

func newLineTable(text string) *lineTable {
	if text == "" {
		return nil
	}

	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &lineTable{starts: starts}
}

// position returns 1-based line and byte column. A nil table gives zeros.
func (t *lineTable) position(offset int) (line, col int) {
	if t == nil {
		return 0, 0
	}

	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}

	return i + 1, offset - t.starts[i] + 1
}
