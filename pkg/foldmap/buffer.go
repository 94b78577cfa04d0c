// ABOUTME: The external buffer collaborator contract FoldMap depends on.
// ABOUTME: FoldMap never mutates the buffer; it only reads summaries, anchors, and edit deltas.

package foldmap

import "github.com/foldedit/foldedit/pkg/foldmap/text"

// Range is a half-open [Start, End) span of buffer character offsets.
type Range struct {
	Start int
	End   int
}

// Len returns the number of characters spanned by r.
func (r Range) Len() int { return r.End - r.Start }

// Edit describes one buffer mutation as a replacement of OldRange by
// NewRange, both in buffer character offsets, captured at the moment the
// buffer applied it.
type Edit struct {
	OldRange Range
	NewRange Range
}

// Delta is the signed change in length the edit introduces.
func (e Edit) Delta() int { return e.NewRange.Len() - e.OldRange.Len() }

// OldExtent is the length of the replaced span.
func (e Edit) OldExtent() int { return e.OldRange.Len() }

// Version opaquely identifies a point in a buffer's edit history, as
// returned by Buffer implementations and handed back to EditsSince.
type Version any

// Anchor is an opaque handle into a buffer that tracks a logical position
// across edits. Anchors come in "before" and "after" flavors (see
// Buffer.AnchorBefore / AnchorAfter) that determine which side of an
// insertion at that position they stick to.
type Anchor interface {
	// ToOffset resolves the anchor to a character offset under b's current
	// state.
	ToOffset(b Buffer) (int, error)
	// Cmp orders this anchor against other under b's current state. The
	// ordering is total given a fixed buffer state.
	Cmp(other Anchor, b Buffer) (int, error)
}

// CharIterator yields characters one at a time starting from wherever it
// was constructed (see Buffer.CharsAt).
type CharIterator interface {
	// Next returns the next character and true, or (0, false) at the end
	// of the buffer.
	Next() (rune, bool)
}

// Buffer is the external collaborator FoldMap is built on top of: an
// append-only, anchored text store with its own edit history. FoldMap only
// ever reads from it through this interface and never mutates it.
type Buffer interface {
	// TextSummary summarizes the entire buffer.
	TextSummary() text.Summary
	// TextSummaryForRange summarizes the character range [lo, hi).
	TextSummaryForRange(lo, hi int) (text.Summary, error)
	// AnchorBefore produces an anchor at offset that stays to the left of
	// text inserted exactly at offset.
	AnchorBefore(offset int) (Anchor, error)
	// AnchorAfter produces an anchor at offset that stays to the right of
	// text inserted exactly at offset.
	AnchorAfter(offset int) (Anchor, error)
	// CharsAt returns a forward character iterator starting at offset.
	CharsAt(offset int) (CharIterator, error)
	// Version returns an opaque handle to the buffer's current edit
	// history position, for later use with EditsSince.
	Version() Version
	// EditsSince returns edits applied since version, sorted ascending by
	// OldRange.Start with no nested edits. FoldMap tolerates unsorted input
	// but performs best when it is sorted.
	EditsSince(version Version) ([]Edit, error)
}
