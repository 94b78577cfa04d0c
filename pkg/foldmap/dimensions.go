// ABOUTME: The SumTree dimensions FoldMap seeks its transform cursor by.
// ABOUTME: Each is a (zero, add, cmp) triple over TransformSummary per sumtree.Dimension.

package foldmap

import (
	"github.com/foldedit/foldedit/pkg/foldmap/sumtree"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

type transformDim[D any] = sumtree.Dimension[TransformSummary, D]

// bufferOffsetDim seeks by buffer character offset. Used by apply_edits to
// walk the old transform tree in buffer-offset order.
func bufferOffsetDim() transformDim[int] {
	return transformDim[int]{
		Zero: func() int { return 0 },
		Add:  func(d int, s TransformSummary) int { return d + s.Buffer.Chars },
		Cmp:  func(a, b int) int { return a - b },
	}
}

// displayOffsetDim seeks by display character offset. Used by
// to_display_offset and Chars.
func displayOffsetDim() transformDim[int] {
	return transformDim[int]{
		Zero: func() int { return 0 },
		Add:  func(d int, s TransformSummary) int { return d + s.Display.Chars },
		Cmp:  func(a, b int) int { return a - b },
	}
}

// bufferPointDim seeks by buffer (row, col). Used by to_display_point.
func bufferPointDim() transformDim[text.Point] {
	return transformDim[text.Point]{
		Zero: func() text.Point { return text.Point{} },
		Add:  func(d text.Point, s TransformSummary) text.Point { return d.Add(s.Buffer.Lines) },
		Cmp:  func(a, b text.Point) int { return a.Cmp(b) },
	}
}

// displayPointDim seeks by display (row, col). Used by to_buffer_point,
// is_line_folded, and BufferRows.
func displayPointDim() transformDim[text.Point] {
	return transformDim[text.Point]{
		Zero: func() text.Point { return text.Point{} },
		Add:  func(d text.Point, s TransformSummary) text.Point { return d.Add(s.Display.Lines) },
		Cmp:  func(a, b text.Point) int { return a.Cmp(b) },
	}
}

type transformCursor = *sumtree.Cursor[Transform, TransformSummary, int]
type transformPointCursor = *sumtree.Cursor[Transform, TransformSummary, text.Point]

type transformTree = sumtree.Tree[Transform, TransformSummary]
