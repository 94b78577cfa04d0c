// ABOUTME: Lazy display-view iterators: Chars walks characters, BufferRows walks gutter rows.
// ABOUTME: Both amortize to O(1) per step after an initial O(log n) seek.

package foldmap

import (
	"github.com/foldedit/foldedit/pkg/foldmap/sumtree"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// Chars iterates the display view's characters starting at a given display
// offset, opening a sub-iterator over the buffer for each passthrough span
// it crosses and yielding the ellipsis directly for fold spans.
type Chars struct {
	fm        *FoldMap
	cur       transformCursor
	offset    int
	bufIter   CharIterator
	bufRemain int
}

// CharsAt returns a Chars iterator starting at the given display offset.
func (f *FoldMap) CharsAt(offset int) (*Chars, error) {
	if offset < 0 || offset > f.Len() {
		return nil, outOfBoundsf("display offset %d exceeds map extent (len %d)", offset, f.Len())
	}
	cur := sumtree.NewCursor[Transform, TransformSummary, int](f.transforms, displayOffsetDim())
	cur.Seek(offset, sumtree.Right)
	return &Chars{fm: f, cur: cur, offset: offset}, nil
}

// Next returns the next display character, or (0, false) at the end.
func (c *Chars) Next() (rune, bool) {
	if c.bufIter != nil {
		if c.bufRemain <= 0 {
			c.bufIter = nil
		} else {
			r, ok := c.bufIter.Next()
			if !ok {
				c.bufIter = nil
				return 0, false
			}
			c.bufRemain--
			c.offset++
			return r, true
		}
	}

	_, endSum := c.cur.End()
	if c.offset >= endSum.Display.Chars {
		c.cur.Next()
	}
	item, ok := c.cur.Item()
	if !ok {
		return 0, false
	}
	if item.IsFold {
		c.offset++
		return item.DisplayText, true
	}

	_, startSum := c.cur.Start()
	bufStart := startSum.Buffer.Chars + (c.offset - startSum.Display.Chars)
	it, err := c.fm.buffer.CharsAt(bufStart)
	if err != nil {
		return 0, false
	}
	_, endSum2 := c.cur.End()
	c.bufIter = it
	c.bufRemain = endSum2.Buffer.Chars - bufStart
	return c.Next()
}

// BufferRows yields the buffer row at the start of each successive display
// row, starting at a given display row — used for gutter line numbers.
type BufferRows struct {
	fm   *FoldMap
	cur  transformPointCursor
	row  uint32
	done bool
}

// BufferRows returns a BufferRows iterator starting at the given display row.
func (f *FoldMap) BufferRows(startRow uint32) (*BufferRows, error) {
	maxRow := f.MaxPoint().Row
	if startRow > maxRow {
		return nil, outOfBoundsf("display row %d exceeds map extent (max row %d)", startRow, maxRow)
	}
	cur := sumtree.NewCursor[Transform, TransformSummary, text.Point](f.transforms, displayPointDim())
	cur.Seek(text.Point{Row: startRow, Col: 0}, sumtree.Left)
	return &BufferRows{fm: f, cur: cur, row: startRow}, nil
}

// Next returns the buffer row underlying the next display row, or
// (0, false) once every display row has been yielded.
func (b *BufferRows) Next() (uint32, bool) {
	if b.done {
		return 0, false
	}
	target := text.Point{Row: b.row, Col: 0}
	for {
		_, endSum := b.cur.End()
		if target.Cmp(endSum.Display.Lines) <= 0 {
			break
		}
		b.cur.Next()
		if _, ok := b.cur.Item(); !ok {
			b.done = true
			return 0, false
		}
	}
	if _, ok := b.cur.Item(); !ok {
		b.done = true
		return 0, false
	}
	startPoint, startSum := b.cur.Start()
	overshoot := target.Sub(startPoint)
	result := startSum.Buffer.Lines.Add(overshoot).Row
	b.row++
	return result, true
}
