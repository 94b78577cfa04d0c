// ABOUTME: Transform is one tile of the display view: a passthrough span or a fold.
// ABOUTME: TransformSummary pairs the display and buffer TextSummary of the same characters.

package foldmap

import (
	"unicode/utf8"

	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// Ellipsis is the placeholder character a fold displays as: Unicode
// HORIZONTAL ELLIPSIS U+2026, three UTF-8 bytes, one display column.
const Ellipsis = '…'

// TransformSummary is the paired (display, buffer) summary of the same
// underlying characters. For a fold, display always collapses to exactly
// one ellipsis character regardless of how much buffer text it hides.
type TransformSummary struct {
	Display text.Summary
	Buffer  text.Summary
}

// Add concatenates two adjacent transforms' summaries. Associative, not
// commutative, mirroring text.Summary.Add.
func (a TransformSummary) Add(b TransformSummary) TransformSummary {
	return TransformSummary{
		Display: a.Display.Add(b.Display),
		Buffer:  a.Buffer.Add(b.Buffer),
	}
}

// Transform is one tile of the display view. DisplayText is Ellipsis and
// IsFold is true for a fold; for a passthrough transform IsFold is false
// and DisplayText is unused.
type Transform struct {
	Sum         TransformSummary
	DisplayText rune
	IsFold      bool
}

// Summary implements sumtree.Item[TransformSummary].
func (t Transform) Summary() TransformSummary { return t.Sum }

// newPassthrough builds a transform whose display span equals its buffer
// span character-for-character.
func newPassthrough(span text.Summary) Transform {
	return Transform{Sum: TransformSummary{Display: span, Buffer: span}}
}

// newFold builds a fold transform hiding a buffer span of summary
// bufferSpan behind a single ellipsis character.
func newFold(bufferSpan text.Summary) Transform {
	display := text.Summary{
		Bytes:          utf8.RuneLen(Ellipsis),
		Chars:          1,
		Lines:          text.Point{Row: 0, Col: 1},
		FirstLineLen:   1,
		RightmostPoint: text.Point{Row: 0, Col: 1},
	}
	return Transform{
		Sum:         TransformSummary{Display: display, Buffer: bufferSpan},
		DisplayText: Ellipsis,
		IsFold:      true,
	}
}

// emptyPassthrough is the single transform a freshly-created FoldMap over
// an empty buffer starts with.
func emptyPassthrough() Transform {
	return newPassthrough(text.Summary{})
}
