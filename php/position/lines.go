package position

import "sort"

// LineTable records the absolute offsets at which lines begin. Offsets are
// appended in increasing order as a lexer advances, so lookups check the
// most recent line before falling back to a binary search.
type LineTable struct {
	offsets []int
}

func NewLineTable() *LineTable {
	return &LineTable{offsets: []int{0}}
}

// Add records that a new line starts at offset. Offsets that do not extend
// the table are ignored.
func (t *LineTable) Add(offset int) {
	if offset <= t.offsets[len(t.offsets)-1] {
		return
	}
	t.offsets = append(t.offsets, offset)
}

// Len returns the number of known lines.
func (t *LineTable) Len() int {
	return len(t.offsets)
}

// LineStart returns the offset of the first byte of line, or -1 if the line
// is unknown.
func (t *LineTable) LineStart(line int) int {
	if line < 0 || line >= len(t.offsets) {
		return -1
	}
	return t.offsets[line]
}

// Offsets returns a copy of the recorded line start offsets.
func (t *LineTable) Offsets() []int {
	out := make([]int, len(t.offsets))
	copy(out, t.offsets)
	return out
}

// Line returns the 0-based line containing offset.
func (t *LineTable) Line(offset int) int {
	last := len(t.offsets) - 1
	if offset >= t.offsets[last] {
		return last
	}
	if offset <= 0 {
		return 0
	}
	// first line starting after offset, minus one
	return sort.Search(last, func(i int) bool {
		return t.offsets[i] > offset
	}) - 1
}

// Position converts an absolute offset into a packed position.
func (t *LineTable) Position(offset int) Position {
	line := t.Line(offset)
	return Pack(line, offset-t.offsets[line])
}

// Offset converts a packed position back into an absolute offset. It
// returns -1 for lines the table does not know about.
func (t *LineTable) Offset(p Position) int {
	line, column := Unpack(p)
	start := t.LineStart(line)
	if start < 0 {
		return -1
	}
	return start + column
}

// Scan records every line start found in text[from:to]. A "\r\n" pair
// counts as one line break even when it straddles to.
func (t *LineTable) Scan(text string, from, to int) {
	for i := from; i < to && i < len(text); i++ {
		switch text[i] {
		case '\n':
			t.Add(i + 1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			t.Add(i + 1)
		}
	}
}
