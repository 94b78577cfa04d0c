// ABOUTME: apply_edits is the central rebuild algorithm; fold/unfold both reduce to it.
// ABOUTME: Tiles a fresh transform tree in one left-to-right pass over edits and folds.

package foldmap

import (
	"sort"

	"github.com/foldedit/foldedit/pkg/foldmap/sumtree"
)

// Fold hides the characters in each range behind a single ellipsis
// transform. Ranges may be given reversed or empty. Overlapping or
// duplicate ranges are tolerated: folds merge on rebuild, though each
// insertion still leaves its own entry in the internal fold list.
func (f *FoldMap) Fold(ranges []Range) error {
	if len(ranges) == 0 {
		return nil
	}
	edits := make([]Edit, 0, len(ranges))
	for _, r := range ranges {
		lo, hi := normalizeRange(r)
		startAnchor, err := f.buffer.AnchorAfter(lo)
		if err != nil {
			return wrapBufferError(err)
		}
		endAnchor, err := f.buffer.AnchorBefore(hi)
		if err != nil {
			return wrapBufferError(err)
		}
		if err := f.insertFold(foldRange{Start: startAnchor, End: endAnchor}); err != nil {
			return err
		}
		edits = append(edits, Edit{OldRange: Range{lo, hi}, NewRange: Range{lo, hi}})
	}
	return f.applyEdits(edits)
}

// Unfold removes every fold intersecting any of ranges (touching at an
// endpoint counts as intersecting) and restores their buffer text to the
// display view.
func (f *FoldMap) Unfold(ranges []Range) error {
	if len(ranges) == 0 {
		return nil
	}
	var edits []Edit
	for _, r := range ranges {
		lo, hi := normalizeRange(r)
		kept := make([]foldRange, 0, len(f.folds))
		for _, fr := range f.folds {
			start, err := fr.Start.ToOffset(f.buffer)
			if err != nil {
				return wrapBufferError(err)
			}
			end, err := fr.End.ToOffset(f.buffer)
			if err != nil {
				return wrapBufferError(err)
			}
			if end < start {
				start, end = end, start
			}
			if start <= hi && end >= lo {
				edits = append(edits, Edit{OldRange: Range{start, end}, NewRange: Range{start, end}})
				continue
			}
			kept = append(kept, fr)
		}
		f.folds = kept
	}
	return f.applyEdits(edits)
}

func normalizeRange(r Range) (int, int) {
	if r.End < r.Start {
		return r.End, r.Start
	}
	return r.Start, r.End
}

// insertFold inserts nf into f.folds keeping it sorted by Start under
// Anchor.Cmp.
func (f *FoldMap) insertFold(nf foldRange) error {
	idx := len(f.folds)
	for i, existing := range f.folds {
		c, err := nf.Start.Cmp(existing.Start, f.buffer)
		if err != nil {
			return wrapBufferError(err)
		}
		if c < 0 {
			idx = i
			break
		}
	}
	f.folds = append(f.folds, foldRange{})
	copy(f.folds[idx+1:], f.folds[idx:])
	f.folds[idx] = nf
	return nil
}

type resolvedFold struct {
	start, end int
}

// resolveMergedFolds resolves every fold anchor to its current buffer
// offset and merges contiguous/overlapping spans. Merging every fold
// globally up front (rather than only within each edit's own span, as a
// literal reading of the rebuild steps would do) gives the same selected
// spans per edit since merge is associative — it just lets one resolve+sort
// pass serve the whole rebuild instead of repeating it per edit.
func (f *FoldMap) resolveMergedFolds() ([]resolvedFold, error) {
	resolved := make([]resolvedFold, 0, len(f.folds))
	for _, fr := range f.folds {
		start, err := fr.Start.ToOffset(f.buffer)
		if err != nil {
			return nil, wrapBufferError(err)
		}
		end, err := fr.End.ToOffset(f.buffer)
		if err != nil {
			return nil, wrapBufferError(err)
		}
		if end < start {
			start, end = end, start
		}
		resolved = append(resolved, resolvedFold{start, end})
	}
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].start != resolved[j].start {
			return resolved[i].start < resolved[j].start
		}
		return resolved[i].end < resolved[j].end
	})
	merged := resolved[:0]
	for _, r := range resolved {
		if len(merged) > 0 && r.start <= merged[len(merged)-1].end {
			if r.end > merged[len(merged)-1].end {
				merged[len(merged)-1].end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged, nil
}

func sortEditsForRebuild(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].OldRange.Start != edits[j].OldRange.Start {
			return edits[i].OldRange.Start < edits[j].OldRange.Start
		}
		return edits[i].OldRange.End > edits[j].OldRange.End
	})
}

// applyEdits is the rebuild described in the component design: slice the
// untouched prefix before each edit from the old tree, coalesce
// overlapping/touching edits, then emit fresh passthrough/fold transforms
// across the edited span before resuming the old tree for the next gap.
func (f *FoldMap) applyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sortEditsForRebuild(sorted)

	mergedFolds, err := f.resolveMergedFolds()
	if err != nil {
		return err
	}

	cur := sumtree.NewCursor[Transform, TransformSummary, int](f.transforms, bufferOffsetDim())
	var newTransforms transformTree
	shift := 0
	foldIdx := 0
	consumed := 0

	probe := sumtree.NewCursor[Transform, TransformSummary, int](f.transforms, bufferOffsetDim())
	i := 0
	for i < len(sorted) {
		edit := sorted[i]
		delta := edit.Delta()
		probe.Seek(edit.OldRange.Start, sumtree.Left)
		edit.OldRange.Start, _ = probe.Start()
		probe.Seek(edit.OldRange.End, sumtree.Right)
		edit.OldRange.End, _ = probe.End()
		j := i + 1
		for j < len(sorted) && sorted[j].OldRange.Start <= edit.OldRange.End {
			delta += sorted[j].Delta()
			if sorted[j].OldRange.End > edit.OldRange.End {
				edit.OldRange.End = sorted[j].OldRange.End
				probe.Seek(edit.OldRange.End, sumtree.Right)
				edit.OldRange.End, _ = probe.End()
			}
			j++
		}
		i = j

		newTransforms, err = f.sliceBufferPrefix(cur, consumed, edit.OldRange.Start, newTransforms)
		if err != nil {
			return err
		}
		consumed = edit.OldRange.End

		newStart := edit.OldRange.Start + shift
		newEnd := newStart + edit.OldExtent() + delta
		shift += delta

		for foldIdx < len(mergedFolds) && mergedFolds[foldIdx].start < newStart {
			foldIdx++
		}
		pos := newStart
		for foldIdx < len(mergedFolds) && mergedFolds[foldIdx].start < newEnd {
			fo := mergedFolds[foldIdx]
			if fo.start > pos {
				span, ferr := f.buffer.TextSummaryForRange(pos, fo.start)
				if ferr != nil {
					return wrapBufferError(ferr)
				}
				newTransforms = newTransforms.Push(newPassthrough(span))
				pos = fo.start
			}
			if fo.end > fo.start {
				span, ferr := f.buffer.TextSummaryForRange(fo.start, fo.end)
				if ferr != nil {
					return wrapBufferError(ferr)
				}
				newTransforms = newTransforms.Push(newFold(span))
				pos = fo.end
			}
			foldIdx++
		}
		if pos < newEnd {
			span, ferr := f.buffer.TextSummaryForRange(pos, newEnd)
			if ferr != nil {
				return wrapBufferError(ferr)
			}
			newTransforms = newTransforms.Push(newPassthrough(span))
		}

		cur.Seek(edit.OldRange.End, sumtree.Right)
	}

	newTransforms, err = f.sliceBufferSuffix(cur, consumed, newTransforms)
	if err != nil {
		return err
	}
	if newTransforms.IsEmpty() {
		newTransforms = sumtree.FromItem[Transform, TransformSummary](emptyPassthrough())
	}
	f.transforms = newTransforms
	return nil
}

// sliceBufferPrefix appends the old buffer span [from, to) onto acc, reading
// it off cur's current item(s). `from` is the buffer offset already emitted
// by prior calls against this same cursor — NOT necessarily the containing
// item's own start, since a prior call may have stopped partway through an
// item without advancing cur past it (true whenever that item's end lies
// beyond `to`). Re-deriving the emitted prefix from the item's static start
// would re-push bytes already emitted by an earlier call; `from` is the
// actual resume point. Transforms are atomic SumTree items, so a partial
// span is reconstructed via a direct buffer re-summarization rather than
// true item-level splitting. Leaves cur positioned at or inside the final
// item touched.
func (f *FoldMap) sliceBufferPrefix(cur *sumtree.Cursor[Transform, TransformSummary, int], from, to int, acc transformTree) (transformTree, error) {
	for {
		item, ok := cur.Item()
		if !ok {
			return acc, nil
		}
		itemStart, _ := cur.Start()
		itemEnd, _ := cur.End()
		if itemEnd <= to {
			if from > itemStart {
				span, err := f.buffer.TextSummaryForRange(from, itemEnd)
				if err != nil {
					return acc, wrapBufferError(err)
				}
				acc = acc.Push(newPassthrough(span))
			} else {
				acc = acc.Push(item)
			}
			cur.Next()
			from = itemEnd
			if itemEnd == to {
				return acc, nil
			}
			continue
		}
		if to > from {
			span, err := f.buffer.TextSummaryForRange(from, to)
			if err != nil {
				return acc, wrapBufferError(err)
			}
			acc = acc.Push(newPassthrough(span))
		}
		return acc, nil
	}
}

// sliceBufferSuffix appends everything from old buffer offset `from` to the
// end of the old tree onto acc. Like sliceBufferPrefix, `from` may fall
// strictly inside cur's current item (the last edit's end landed inside an
// item that Seek could not split), so that item's stale prefix — the part
// already replaced by the edit — must be re-summarized from `from` rather
// than reusing the item verbatim; every item after it carries over as-is via
// Suffix.
func (f *FoldMap) sliceBufferSuffix(cur *sumtree.Cursor[Transform, TransformSummary, int], from int, acc transformTree) (transformTree, error) {
	_, ok := cur.Item()
	if ok {
		itemStart, _ := cur.Start()
		itemEnd, _ := cur.End()
		if from > itemStart {
			span, err := f.buffer.TextSummaryForRange(from, itemEnd)
			if err != nil {
				return acc, wrapBufferError(err)
			}
			acc = acc.Push(newPassthrough(span))
			cur.Next()
		}
	}
	return acc.PushTree(cur.Suffix()), nil
}
