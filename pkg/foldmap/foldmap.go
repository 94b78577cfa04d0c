// ABOUTME: FoldMap presents a foldable display view over a Buffer's characters.
// ABOUTME: Query surface: offset/point translation, row lengths, fold detection.

package foldmap

import (
	"github.com/foldedit/foldedit/pkg/foldmap/sumtree"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// foldRange is one user-requested fold, stored as an anchor pair so it
// survives buffer edits. Kept sorted by Start under Anchor.Cmp.
type foldRange struct {
	Start Anchor
	End   Anchor
}

// FoldMap owns a transform tree tiling a Buffer's characters into
// passthrough and fold spans, plus the anchor-range fold list that drives
// rebuilds. It is single-threaded: all operations assume exclusive access
// and a buffer view that will not change concurrently underfoot.
type FoldMap struct {
	buffer     Buffer
	version    Version
	transforms transformTree
	folds      []foldRange
}

// New creates a FoldMap bound to buffer, initialized with one passthrough
// transform covering the whole buffer and no folds.
func New(buffer Buffer) *FoldMap {
	return &FoldMap{
		buffer:     buffer,
		version:    buffer.Version(),
		transforms: sumtree.FromItem[Transform, TransformSummary](newPassthrough(buffer.TextSummary())),
	}
}

// Snapshot returns a cheap, independent clone: the transform tree is
// structurally shared (O(1) to copy) and the fold list is copied so later
// mutation of either FoldMap does not affect the other.
func (f *FoldMap) Snapshot() *FoldMap {
	folds := make([]foldRange, len(f.folds))
	copy(folds, f.folds)
	return &FoldMap{buffer: f.buffer, version: f.version, transforms: f.transforms, folds: folds}
}

// Len returns the character count of the display view.
func (f *FoldMap) Len() int {
	return f.transforms.Summary().Display.Chars
}

// MaxPoint returns the display point one past the last character.
func (f *FoldMap) MaxPoint() text.Point {
	return f.transforms.Summary().Display.Lines
}

// RightmostPoint returns the widest display column observed, with its row.
func (f *FoldMap) RightmostPoint() text.Point {
	return f.transforms.Summary().Display.RightmostPoint
}

// LineLen returns the character length of display row.
func (f *FoldMap) LineLen(row uint32) (int, error) {
	maxRow := f.MaxPoint().Row
	if row > maxRow {
		return 0, outOfBoundsf("display row %d exceeds map extent (max row %d)", row, maxRow)
	}
	start, err := f.ToDisplayOffset(text.Point{Row: row, Col: 0})
	if err != nil {
		return 0, err
	}
	if row == maxRow {
		return f.Len() - start, nil
	}
	end, err := f.ToDisplayOffset(text.Point{Row: row + 1, Col: 0})
	if err != nil {
		return 0, err
	}
	return end - start - 1, nil
}

// ToDisplayOffset converts a display point to a display character offset.
func (f *FoldMap) ToDisplayOffset(p text.Point) (int, error) {
	cur := sumtree.NewCursor[Transform, TransformSummary, text.Point](f.transforms, displayPointDim())
	cur.Seek(p, sumtree.Right)
	startPoint, startSum := cur.Start()
	offset := startSum.Display.Chars
	item, ok := cur.Item()
	if !ok {
		if p.Cmp(startPoint) == 0 {
			return offset, nil
		}
		return 0, outOfBoundsf("display point %v exceeds map extent", p)
	}
	if p.Cmp(startPoint) < 0 {
		return 0, invariantViolatedf("display point %v precedes reached transform start %v", p, startPoint)
	}
	overshoot := p.Sub(startPoint)
	if overshoot.IsZero() {
		return offset, nil
	}
	if item.IsFold {
		return 0, invariantViolatedf("display point %v lies inside a fold", p)
	}
	it, err := f.buffer.CharsAt(startSum.Buffer.Chars)
	if err != nil {
		return 0, wrapBufferError(err)
	}
	within, err := charsToPoint(it, overshoot)
	if err != nil {
		return 0, err
	}
	return offset + within, nil
}

// ToBufferPoint converts a display point to the corresponding buffer point.
func (f *FoldMap) ToBufferPoint(p text.Point) (text.Point, error) {
	cur := sumtree.NewCursor[Transform, TransformSummary, text.Point](f.transforms, displayPointDim())
	cur.Seek(p, sumtree.Right)
	startPoint, startSum := cur.Start()
	item, ok := cur.Item()
	if !ok {
		if p.Cmp(startPoint) == 0 {
			return startSum.Buffer.Lines, nil
		}
		return text.Point{}, outOfBoundsf("display point %v exceeds map extent", p)
	}
	if p.Cmp(startPoint) < 0 {
		return text.Point{}, invariantViolatedf("display point %v precedes reached transform start %v", p, startPoint)
	}
	overshoot := p.Sub(startPoint)
	if item.IsFold && !overshoot.IsZero() {
		return startSum.Buffer.Lines, nil
	}
	return startSum.Buffer.Lines.Add(overshoot), nil
}

// ToDisplayPoint converts a buffer point to the corresponding display point.
func (f *FoldMap) ToDisplayPoint(p text.Point) (text.Point, error) {
	cur := sumtree.NewCursor[Transform, TransformSummary, text.Point](f.transforms, bufferPointDim())
	cur.Seek(p, sumtree.Right)
	startPoint, startSum := cur.Start()
	item, ok := cur.Item()
	if !ok {
		if p.Cmp(startPoint) == 0 {
			return startSum.Display.Lines, nil
		}
		return text.Point{}, outOfBoundsf("buffer point %v exceeds buffer extent", p)
	}
	if p.Cmp(startPoint) < 0 {
		return text.Point{}, invariantViolatedf("buffer point %v precedes reached transform start %v", p, startPoint)
	}
	overshoot := p.Sub(startPoint)
	if item.IsFold && !overshoot.IsZero() {
		return startSum.Display.Lines, nil
	}
	candidate := startSum.Display.Lines.Add(overshoot)
	_, endSum := cur.End()
	if endSum.Display.Lines.Cmp(candidate) < 0 {
		return endSum.Display.Lines, nil
	}
	return candidate, nil
}

// IsLineFolded reports whether display row is part of a fold's single
// ellipsis line.
func (f *FoldMap) IsLineFolded(row uint32) (bool, error) {
	maxRow := f.MaxPoint().Row
	if row > maxRow {
		return false, outOfBoundsf("display row %d exceeds map extent (max row %d)", row, maxRow)
	}
	cur := sumtree.NewCursor[Transform, TransformSummary, text.Point](f.transforms, displayPointDim())
	cur.Seek(text.Point{Row: row, Col: 0}, sumtree.Right)
	for {
		item, ok := cur.Item()
		if !ok {
			return false, nil
		}
		startPoint, _ := cur.Start()
		if startPoint.Row > row {
			return false, nil
		}
		if item.IsFold {
			return true, nil
		}
		cur.Next()
	}
}

// FoldRanges returns every currently-folded buffer-offset span, resolved
// against the buffer's current text and merged where adjacent or
// overlapping folds have coalesced into one hidden span.
func (f *FoldMap) FoldRanges() ([]Range, error) {
	merged, err := f.resolveMergedFolds()
	if err != nil {
		return nil, err
	}
	out := make([]Range, len(merged))
	for i, m := range merged {
		out[i] = Range{Start: m.start, End: m.end}
	}
	return out, nil
}

// Sync pulls edits the buffer has applied since the last sync and absorbs
// them into the transform tree.
func (f *FoldMap) Sync() error {
	edits, err := f.buffer.EditsSince(f.version)
	if err != nil {
		return wrapBufferError(err)
	}
	if err := f.applyEdits(edits); err != nil {
		return err
	}
	f.version = f.buffer.Version()
	return nil
}

// charsToPoint consumes characters from it, counting how many precede the
// point (row, col) reached by walking newlines, and returns that count.
func charsToPoint(it CharIterator, target text.Point) (int, error) {
	row, col := uint32(0), uint32(0)
	count := 0
	for row != target.Row || col != target.Col {
		r, ok := it.Next()
		if !ok {
			return 0, invariantViolatedf("point %v exceeds span", target)
		}
		count++
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return count, nil
}
