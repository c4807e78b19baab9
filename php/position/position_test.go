package position

import (
	"math"
	"testing"
)

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		line, column int
	}{
		{0, 0},
		{0, 1},
		{1, 0},
		{41, 7},
		{1 << 20, 4095},
		{MaxLine, MaxColumn},
	}

	for _, tt := range tests {
		p := Pack(tt.line, tt.column)
		line, column := Unpack(p)
		if line != tt.line || column != tt.column {
			t.Errorf("Unpack(Pack(%d, %d)) = (%d, %d)", tt.line, tt.column, line, column)
		}
	}
}

func TestPackOrdering(t *testing.T) {
	positions := [][2]int{
		{0, 0}, {0, 5}, {0, 300}, {1, 0}, {1, 1}, {2, 0}, {100, 99999},
	}
	for i := 1; i < len(positions); i++ {
		a := Pack(positions[i-1][0], positions[i-1][1])
		b := Pack(positions[i][0], positions[i][1])
		if a >= b {
			t.Errorf("Pack(%v) = %d, not below Pack(%v) = %d", positions[i-1], a, positions[i], b)
		}
	}
}

func TestPackClamps(t *testing.T) {
	if got := Pack(-3, -1); got != Pack(0, 0) {
		t.Errorf("Pack(-3, -1) = %d, want %d", got, Pack(0, 0))
	}
	if math.MaxInt > math.MaxUint32 {
		line, column := Unpack(Pack(math.MaxInt, math.MaxInt))
		if line != MaxLine || column != MaxColumn {
			t.Errorf("overflow clamp = (%d, %d), want (%d, %d)", line, column, MaxLine, MaxColumn)
		}
	}
}

func TestRangeCover(t *testing.T) {
	a := Range{Start: Pack(1, 4), End: Pack(1, 9)}
	b := Range{Start: Pack(0, 2), End: Pack(1, 5)}
	got := a.Cover(b)
	want := Range{Start: Pack(0, 2), End: Pack(1, 9)}
	if got != want {
		t.Errorf("Cover = %v, want %v", got, want)
	}
	if !got.Contains(Pack(1, 9)) {
		t.Error("range should contain its end position")
	}
	if got.Contains(Pack(2, 0)) {
		t.Error("range should not contain a later line")
	}
}

func TestLineTable(t *testing.T) {
	text := "ab\ncd\r\nef\rg"
	lines := NewLineTable()
	lines.Scan(text, 0, len(text))

	if lines.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (offsets %v)", lines.Len(), lines.Offsets())
	}

	tests := []struct {
		offset       int
		line, column int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{6, 1, 3},
		{7, 2, 0},
		{9, 2, 2},
		{10, 3, 0},
		{11, 3, 1},
	}
	for _, tt := range tests {
		line, column := Unpack(lines.Position(tt.offset))
		if line != tt.line || column != tt.column {
			t.Errorf("Position(%d) = (%d, %d), want (%d, %d)", tt.offset, line, column, tt.line, tt.column)
		}
		if got := lines.Offset(Pack(tt.line, tt.column)); got != tt.offset {
			t.Errorf("Offset(%d:%d) = %d, want %d", tt.line, tt.column, got, tt.offset)
		}
	}
}

func TestLineTableScanStraddlesCRLF(t *testing.T) {
	text := "a\r\nb"
	lines := NewLineTable()
	lines.Scan(text, 0, 2)
	lines.Scan(text, 2, len(text))
	if got := lines.Offsets(); len(got) != 2 || got[1] != 3 {
		t.Errorf("Offsets() = %v, want [0 3]", got)
	}
}

func TestLineTableIgnoresStaleOffsets(t *testing.T) {
	lines := NewLineTable()
	lines.Add(5)
	lines.Add(3)
	lines.Add(5)
	lines.Add(9)
	if got := lines.Offsets(); len(got) != 3 {
		t.Errorf("Offsets() = %v, want [0 5 9]", got)
	}
	if lines.LineStart(7) != -1 {
		t.Error("LineStart of unknown line should be -1")
	}
}
