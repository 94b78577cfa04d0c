package foldmap

import (
	"fmt"

	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// testBuffer is a minimal in-memory implementation of the Buffer contract,
// used only to exercise FoldMap in tests. It is not a rope and has no
// structural sharing; pkg/textbuf carries a real reference implementation.
type anchorState struct {
	offset int
	after  bool
}

type testBuffer struct {
	runes   []rune
	anchors map[int]anchorState
	nextID  int
	history []Edit
}

func newTestBuffer(s string) *testBuffer {
	return &testBuffer{runes: []rune(s), anchors: map[int]anchorState{}}
}

func (b *testBuffer) String() string { return string(b.runes) }

func (b *testBuffer) TextSummary() text.Summary {
	return text.NewFromString(string(b.runes))
}

func (b *testBuffer) TextSummaryForRange(lo, hi int) (text.Summary, error) {
	if lo < 0 || hi > len(b.runes) || lo > hi {
		return text.Summary{}, fmt.Errorf("range [%d, %d) out of bounds (len %d)", lo, hi, len(b.runes))
	}
	return text.NewFromString(string(b.runes[lo:hi])), nil
}

func (b *testBuffer) newAnchor(offset int, after bool) (Anchor, error) {
	if offset < 0 || offset > len(b.runes) {
		return nil, fmt.Errorf("offset %d out of bounds (len %d)", offset, len(b.runes))
	}
	id := b.nextID
	b.nextID++
	b.anchors[id] = anchorState{offset: offset, after: after}
	return &testAnchor{buf: b, id: id}, nil
}

func (b *testBuffer) AnchorBefore(offset int) (Anchor, error) { return b.newAnchor(offset, false) }
func (b *testBuffer) AnchorAfter(offset int) (Anchor, error)  { return b.newAnchor(offset, true) }

func (b *testBuffer) CharsAt(offset int) (CharIterator, error) {
	if offset < 0 || offset > len(b.runes) {
		return nil, fmt.Errorf("offset %d out of bounds (len %d)", offset, len(b.runes))
	}
	return &testCharIter{runes: b.runes[offset:]}, nil
}

func (b *testBuffer) Version() Version { return len(b.history) }

func (b *testBuffer) EditsSince(v Version) ([]Edit, error) {
	start, ok := v.(int)
	if !ok || start < 0 || start > len(b.history) {
		return nil, fmt.Errorf("invalid version %v", v)
	}
	out := make([]Edit, len(b.history)-start)
	copy(out, b.history[start:])
	return out, nil
}

// Edit replaces runes [start, end) with newText, updating every live
// anchor and recording the edit for EditsSince.
func (b *testBuffer) Edit(start, end int, newText string) {
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
	b.history = append(b.history, Edit{
		OldRange: Range{start, end},
		NewRange: Range{start, start + len(newRunes)},
	})
}

type testAnchor struct {
	buf *testBuffer
	id  int
}

func (a *testAnchor) ToOffset(_ Buffer) (int, error) {
	st, ok := a.buf.anchors[a.id]
	if !ok {
		return 0, fmt.Errorf("unknown anchor %d", a.id)
	}
	return st.offset, nil
}

func (a *testAnchor) Cmp(other Anchor, buf Buffer) (int, error) {
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

type testCharIter struct {
	runes []rune
	i     int
}

func (it *testCharIter) Next() (rune, bool) {
	if it.i >= len(it.runes) {
		return 0, false
	}
	r := it.runes[it.i]
	it.i++
	return r, true
}

// collectDisplay drains Chars from offset 0 into a string.
func collectDisplay(f *FoldMap) string {
	c, err := f.CharsAt(0)
	if err != nil {
		panic(err)
	}
	var out []rune
	for {
		r, ok := c.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return string(out)
}

// sampleText builds spec.md's seed-scenario fixture: rows rows, each a run
// of cols copies of the row's letter ('a', 'b', ...), newline-separated.
func sampleText(rows, cols int) string {
	s := ""
	for i := 0; i < rows; i++ {
		if i > 0 {
			s += "\n"
		}
		letter := string(rune('a' + i))
		for j := 0; j < cols; j++ {
			s += letter
		}
	}
	return s
}

// offsetOfPoint converts a (row, col) pair into a character offset within s.
func offsetOfPoint(s string, row, col int) int {
	runes := []rune(s)
	curRow, curCol := 0, 0
	for i, r := range runes {
		if curRow == row && curCol == col {
			return i
		}
		if r == '\n' {
			curRow++
			curCol = 0
		} else {
			curCol++
		}
	}
	return len(runes)
}
