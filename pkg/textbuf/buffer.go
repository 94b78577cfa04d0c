// ABOUTME: Buffer is a concrete, mutex-protected reference implementation of foldmap.Buffer.
// ABOUTME: It stores text as a flat rune slice with anchors tracked by id, not a persistent rope.

// Package textbuf implements the foldmap.Buffer collaborator contract: an
// append-friendly, anchored text store exposing character offsets, points,
// anchors, and an edit-delta stream. It intentionally does not implement a
// CRDT history or persistent rope — those are out of scope (see spec.md §1)
// — but it gives FoldMap a real buffer to run against instead of a mock.
package textbuf

import (
	"errors"
	"sync"

	"github.com/foldedit/foldedit/pkg/foldmap"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// Errors returned by Buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("textbuf: offset out of range")
	ErrRangeInvalid      = errors.New("textbuf: invalid range")
)

type anchorID int

type anchorState struct {
	offset int
	after  bool
}

// Buffer is a flat, in-memory text store. All methods are safe for
// concurrent readers; mutation methods take an exclusive lock.
type Buffer struct {
	mu           sync.RWMutex
	runes        []rune
	revision     int
	anchors      map[anchorID]anchorState
	nextAnchorID anchorID
	history      []foldmap.Edit
}

// New creates a Buffer with the given initial content.
func New(initial string) *Buffer {
	return &Buffer{
		runes:   []rune(initial),
		anchors: make(map[anchorID]anchorState),
	}
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.runes)
}

// Len returns the character length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}

// Revision returns a monotonically increasing counter bumped by every
// mutation, independent of the foldmap.Version handle returned by Version.
func (b *Buffer) Revision() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// OffsetToPoint converts a character offset to a (row, col) point by
// scanning for newlines, mirroring the coordinate-conversion helpers of a
// line-oriented text buffer.
func (b *Buffer) OffsetToPoint(offset int) (text.Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > len(b.runes) {
		return text.Point{}, ErrOffsetOutOfRange
	}
	row, col := uint32(0), uint32(0)
	for i := 0; i < offset; i++ {
		if b.runes[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return text.Point{Row: row, Col: col}, nil
}

// PointToOffset converts a (row, col) point to a character offset.
func (b *Buffer) PointToOffset(p text.Point) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	row, col := uint32(0), uint32(0)
	for i, r := range b.runes {
		if row == p.Row && col == p.Col {
			return i, nil
		}
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	if row == p.Row && col == p.Col {
		return len(b.runes), nil
	}
	return 0, ErrOffsetOutOfRange
}

// LineText returns the text of buffer row, excluding its trailing newline.
func (b *Buffer) LineText(row uint32) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	curRow := uint32(0)
	start := -1
	for i, r := range b.runes {
		if curRow == row && start < 0 {
			start = i
		}
		if r == '\n' {
			if curRow == row {
				return string(b.runes[start:i]), nil
			}
			curRow++
		}
	}
	if curRow == row {
		if start < 0 {
			start = len(b.runes)
		}
		return string(b.runes[start:]), nil
	}
	return "", ErrOffsetOutOfRange
}

// LineCount returns the number of lines in the buffer (1 for empty content).
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := uint32(1)
	for _, r := range b.runes {
		if r == '\n' {
			n++
		}
	}
	return n
}

// TextSummary implements foldmap.Buffer.
func (b *Buffer) TextSummary() text.Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return text.NewFromString(string(b.runes))
}

// TextSummaryForRange implements foldmap.Buffer.
func (b *Buffer) TextSummaryForRange(lo, hi int) (text.Summary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if lo < 0 || hi > len(b.runes) || lo > hi {
		return text.Summary{}, ErrRangeInvalid
	}
	return text.NewFromString(string(b.runes[lo:hi])), nil
}

// AnchorBefore implements foldmap.Buffer: the anchor stays left of text
// inserted exactly at offset.
func (b *Buffer) AnchorBefore(offset int) (foldmap.Anchor, error) {
	return b.newAnchor(offset, false)
}

// AnchorAfter implements foldmap.Buffer: the anchor stays right of text
// inserted exactly at offset.
func (b *Buffer) AnchorAfter(offset int) (foldmap.Anchor, error) {
	return b.newAnchor(offset, true)
}

func (b *Buffer) newAnchor(offset int, after bool) (foldmap.Anchor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset < 0 || offset > len(b.runes) {
		return nil, ErrOffsetOutOfRange
	}
	id := b.nextAnchorID
	b.nextAnchorID++
	b.anchors[id] = anchorState{offset: offset, after: after}
	return &anchorHandle{buf: b, id: id}, nil
}

// CharsAt implements foldmap.Buffer.
func (b *Buffer) CharsAt(offset int) (foldmap.CharIterator, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > len(b.runes) {
		return nil, ErrOffsetOutOfRange
	}
	tail := make([]rune, len(b.runes)-offset)
	copy(tail, b.runes[offset:])
	return &charIter{runes: tail}, nil
}

// Version implements foldmap.Buffer.
func (b *Buffer) Version() foldmap.Version {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history)
}

// EditsSince implements foldmap.Buffer.
func (b *Buffer) EditsSince(v foldmap.Version) ([]foldmap.Edit, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := v.(int)
	if !ok || start < 0 || start > len(b.history) {
		return nil, errors.New("textbuf: invalid version")
	}
	out := make([]foldmap.Edit, len(b.history)-start)
	copy(out, b.history[start:])
	return out, nil
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) error {
	return b.Replace(offset, offset, text)
}

// Delete removes the character range [start, end).
func (b *Buffer) Delete(start, end int) error {
	return b.Replace(start, end, "")
}

// Replace replaces the character range [start, end) with newText, updating
// every live anchor and recording the edit for EditsSince.
func (b *Buffer) Replace(start, end int, newText string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if start < 0 || start > end || end > len(b.runes) {
		return ErrRangeInvalid
	}
	newRunes := []rune(newText)
	delta := len(newRunes) - (end - start)

	for id, st := range b.anchors {
		switch {
		case st.offset < start:
		case st.offset > end:
			st.offset += delta
		default:
			if st.after {
				st.offset = start + len(newRunes)
			} else {
				st.offset = start
			}
		}
		b.anchors[id] = st
	}

	merged := make([]rune, 0, len(b.runes)-(end-start)+len(newRunes))
	merged = append(merged, b.runes[:start]...)
	merged = append(merged, newRunes...)
	merged = append(merged, b.runes[end:]...)
	b.runes = merged
	b.revision++
	b.history = append(b.history, foldmap.Edit{
		OldRange: foldmap.Range{Start: start, End: end},
		NewRange: foldmap.Range{Start: start, End: start + len(newRunes)},
	})
	return nil
}

type anchorHandle struct {
	buf *Buffer
	id  anchorID
}

// ToOffset implements foldmap.Anchor.
func (a *anchorHandle) ToOffset(_ foldmap.Buffer) (int, error) {
	a.buf.mu.RLock()
	defer a.buf.mu.RUnlock()
	st, ok := a.buf.anchors[a.id]
	if !ok {
		return 0, errors.New("textbuf: unknown anchor")
	}
	return st.offset, nil
}

// Cmp implements foldmap.Anchor.
func (a *anchorHandle) Cmp(other foldmap.Anchor, buf foldmap.Buffer) (int, error) {
	s, err := a.ToOffset(buf)
	if err != nil {
		return 0, err
	}
	o, err := other.ToOffset(buf)
	if err != nil {
		return 0, err
	}
	switch {
	case s < o:
		return -1, nil
	case s > o:
		return 1, nil
	default:
		return 0, nil
	}
}

type charIter struct {
	runes []rune
	i     int
}

// Next implements foldmap.CharIterator.
func (it *charIter) Next() (rune, bool) {
	if it.i >= len(it.runes) {
		return 0, false
	}
	r := it.runes[it.i]
	it.i++
	return r, true
}
