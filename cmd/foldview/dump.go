// ABOUTME: -dump-json snapshot: {rows, folds, rightmost}, easyjson-marshaled.
// ABOUTME: Bypasses bubbletea entirely so scripted checks can diff plain JSON.

//go:generate easyjson -all dump.go

package main

import (
	"io"

	"github.com/foldedit/foldedit/pkg/foldmap"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
)

// dumpRow describes one display row for the -dump-json snapshot.
type dumpRow struct {
	Display int    `json:"display"`
	Buffer  uint32 `json:"buffer"`
	Folded  bool   `json:"folded"`
	Text    string `json:"text"`
}

// dumpFold describes one buffer-space fold boundary.
type dumpFold struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// dumpPoint is a (row, col) pair in the JSON snapshot.
type dumpPoint struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// dumpSnapshot is the top-level -dump-json payload.
type dumpSnapshot struct {
	Rows      []dumpRow  `json:"rows"`
	Folds     []dumpFold `json:"folds"`
	Rightmost dumpPoint  `json:"rightmost"`
}

// buildSnapshot walks every display row of fm and collects its buffer row,
// folded flag, and text into a dumpSnapshot.
func buildSnapshot(fm *foldmap.FoldMap) (dumpSnapshot, error) {
	maxRow := fm.MaxPoint().Row
	rows, err := fm.BufferRows(0)
	if err != nil {
		return dumpSnapshot{}, err
	}

	snap := dumpSnapshot{
		Rows: make([]dumpRow, 0, maxRow+1),
	}
	rightmost := fm.RightmostPoint()
	snap.Rightmost = dumpPoint{Row: int(rightmost.Row), Col: int(rightmost.Col)}

	foldRanges, err := fm.FoldRanges()
	if err != nil {
		return dumpSnapshot{}, err
	}
	snap.Folds = make([]dumpFold, len(foldRanges))
	for i, r := range foldRanges {
		snap.Folds[i] = dumpFold{Start: r.Start, End: r.End}
	}

	for row := uint32(0); row <= maxRow; row++ {
		bufRow, ok := rows.Next()
		if !ok {
			break
		}
		folded, err := fm.IsLineFolded(row)
		if err != nil {
			return dumpSnapshot{}, err
		}
		text, err := lineText(fm, row)
		if err != nil {
			return dumpSnapshot{}, err
		}
		snap.Rows = append(snap.Rows, dumpRow{
			Display: int(row),
			Buffer:  bufRow,
			Folded:  folded,
			Text:    text,
		})
	}
	return snap, nil
}

// lineText reads display row's full text (excluding its trailing newline).
func lineText(fm *foldmap.FoldMap, row uint32) (string, error) {
	start, err := fm.ToDisplayOffset(text.Point{Row: row, Col: 0})
	if err != nil {
		return "", err
	}
	n, err := fm.LineLen(row)
	if err != nil {
		return "", err
	}
	c, err := fm.CharsAt(start)
	if err != nil {
		return "", err
	}
	runes := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, ok := c.Next()
		if !ok {
			break
		}
		runes = append(runes, r)
	}
	return string(runes), nil
}

// dumpSnapshotJSON writes the -dump-json payload to w.
func dumpSnapshotJSON(fm *foldmap.FoldMap, w io.Writer) error {
	snap, err := buildSnapshot(fm)
	if err != nil {
		return err
	}
	data, err := snap.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
