// ABOUTME: Point is a (row, column) coordinate shared by buffer and display space.
// ABOUTME: Addition/subtraction follow line-relative arithmetic, not plain vector math.

package text

import "fmt"

// Point is a zero-based (row, column) coordinate. Columns are character
// counts from the start of the row, not byte offsets.
type Point struct {
	Row uint32
	Col uint32
}

// PointZero is the origin point.
var PointZero = Point{}

// New returns the point (row, col).
func New(row, col uint32) Point {
	return Point{Row: row, Col: col}
}

// Cmp returns -1, 0, or 1 for lexicographic ordering (row first, then col).
func (p Point) Cmp(other Point) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	default:
		return 0
	}
}

// Less reports whether p sorts before other.
func (p Point) Less(other Point) bool { return p.Cmp(other) < 0 }

// LessEq reports whether p sorts before or equal to other.
func (p Point) LessEq(other Point) bool { return p.Cmp(other) <= 0 }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.Row == 0 && p.Col == 0 }

// Add concatenates a line-delta `other` onto `p`. If other starts a new line
// (Row > 0) the result's row advances by other.Row and the column becomes
// other.Col; if other stays on the same line (Row == 0) the column extends.
func (p Point) Add(other Point) Point {
	if other.Row == 0 {
		return Point{Row: p.Row, Col: p.Col + other.Col}
	}
	return Point{Row: p.Row + other.Row, Col: other.Col}
}

// Sub returns p - other, requiring other <= p lexicographically. If the rows
// differ the result keeps p's column; on the same row it's the column delta.
func (p Point) Sub(other Point) Point {
	if other.Row == p.Row {
		return Point{Row: 0, Col: p.Col - other.Col}
	}
	return Point{Row: p.Row - other.Row, Col: p.Col}
}

// Max returns the lexicographically greater of p and other, with ties
// resolved in favor of p (earlier position wins ties per the spec's
// rightmost-point combination rule).
func (p Point) Max(other Point) Point {
	if other.Cmp(p) > 0 {
		return other
	}
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
