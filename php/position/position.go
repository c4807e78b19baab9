// Package position packs (line, column) pairs into sortable integers and
// maps byte offsets to lines.
//
// A Position keeps the line in the high 32 bits and the column in the low
// 32 bits, so comparing two Positions as integers compares them in source
// order. Lines and columns are 0-based; columns count bytes.
package position

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

type Position uint64

const (
	MaxLine   = math.MaxUint32
	MaxColumn = math.MaxUint32
)

// Pack encodes line and column. Values outside [0, Max] are clamped.
func Pack(line, column int) Position {
	return Position(clamp(line))<<32 | Position(clamp(column))
}

// Unpack is the inverse of Pack.
func Unpack(p Position) (line, column int) {
	return int(p >> 32), int(p & math.MaxUint32)
}

func (p Position) Line() int {
	line, _ := Unpack(p)
	return line
}

func (p Position) Column() int {
	_, column := Unpack(p)
	return column
}

func (p Position) String() string {
	line, column := Unpack(p)
	return fmt.Sprintf("%d:%d", line+1, column+1)
}

func clamp(v int) uint32 {
	if v < 0 {
		return 0
	}
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		return math.MaxUint32
	}
	return u
}

// Range is a half-open [Start, End) span of packed positions.
type Range struct {
	Start Position
	End   Position
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

// Contains reports whether p lies inside r. The end position is included so
// that a cursor placed right after a node still addresses it.
func (r Range) Contains(p Position) bool {
	return r.Start <= p && p <= r.End
}

// Cover returns the smallest range spanning both r and other.
func (r Range) Cover(other Range) Range {
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}
