// ABOUTME: AppModel is the root Bubble Tea model driving the FoldMap display view.
// ABOUTME: Update handles key events; View renders visible rows through fold transforms.

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foldedit/foldedit/internal/config"
	"github.com/foldedit/foldedit/pkg/foldmap"
	"github.com/foldedit/foldedit/pkg/foldmap/text"
	"github.com/foldedit/foldedit/pkg/textbuf"
	"github.com/foldedit/foldedit/pkg/tui"
	"github.com/foldedit/foldedit/pkg/tui/fuzzy"
	"github.com/foldedit/foldedit/pkg/tui/width"
)

// inputMode selects how key events are interpreted.
type inputMode int

const (
	modeNormal inputMode = iota
	modeInsert
	modeSearch
)

// appModel is the root Bubble Tea model for foldview.
type appModel struct {
	fm       *foldmap.FoldMap
	buf      *textbuf.Buffer
	filename string
	cfg      *config.Settings
	st       styles

	mode    inputMode
	cursor  text.Point // display point
	width   int
	height  int
	scrollY uint32

	searchQuery   string
	searchMatches []fuzzy.Match
	searchRows    []string

	showHelp bool
	status   string
}

func newModel(fm *foldmap.FoldMap, buf *textbuf.Buffer, cfg *config.Settings, filename string) appModel {
	return appModel{
		fm:       fm,
		buf:      buf,
		filename: filename,
		cfg:      cfg,
		st:       buildStyles(cfg.EffectiveTheme()),
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeInsert:
		return m.handleInsertKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m appModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "i":
		m.mode = modeInsert
		m.status = "-- INSERT --"
	case "z":
		m.foldCurrentBlock()
	case "Z":
		m.unfoldCurrentLine()
	case "/":
		m.mode = modeSearch
		m.searchQuery = ""
		m.searchRows = m.collectRowTexts()
		m.status = "/"
	}
	return m, nil
}

func (m appModel) handleInsertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		m.insertAtCursor("\n")
		return m, nil
	case tea.KeyBackspace:
		m.deleteBeforeCursor()
		return m, nil
	case tea.KeyRunes:
		m.insertAtCursor(string(msg.Runes))
		return m, nil
	}
	return m, nil
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		if len(m.searchMatches) > 0 {
			m.cursor = text.Point{Row: uint32(m.searchMatches[0].Index), Col: 0}
		}
		m.mode = modeNormal
		m.status = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
		}
	case tea.KeyRunes:
		m.searchQuery += string(msg.Runes)
	}
	m.searchMatches = fuzzy.Find(m.searchQuery, m.searchRows)
	m.status = "/" + m.searchQuery
	return m, nil
}

// moveCursor shifts the cursor by (dRow, dCol) display rows/cols, clamping
// to the map's current extent.
func (m *appModel) moveCursor(dRow, dCol int) {
	maxRow := m.fm.MaxPoint().Row
	row := clampRow(int(m.cursor.Row)+dRow, maxRow)
	lineLen, err := m.fm.LineLen(row)
	if err != nil {
		return
	}
	col := clampCol(int(m.cursor.Col)+dCol, lineLen)
	m.cursor = text.Point{Row: row, Col: uint32(col)}
}

func clampRow(row int, max uint32) uint32 {
	if row < 0 {
		return 0
	}
	if uint32(row) > max {
		return max
	}
	return uint32(row)
}

func clampCol(col, max int) int {
	if col < 0 {
		return 0
	}
	if col > max {
		return max
	}
	return col
}

// foldCurrentBlock folds the contiguous run of lines more deeply indented
// than the cursor's current line — a lightweight indentation-block fold.
func (m *appModel) foldCurrentBlock() {
	bp, err := m.fm.ToBufferPoint(m.cursor)
	if err != nil {
		m.status = err.Error()
		return
	}
	line, err := m.buf.LineText(bp.Row)
	if err != nil {
		m.status = err.Error()
		return
	}
	baseIndent := indentWidth(line)
	lastRow := bp.Row
	for row := bp.Row + 1; row < m.buf.LineCount(); row++ {
		text, err := m.buf.LineText(row)
		if err != nil {
			break
		}
		if strings.TrimSpace(text) == "" {
			lastRow = row
			continue
		}
		if indentWidth(text) <= baseIndent {
			break
		}
		lastRow = row
	}
	if lastRow == bp.Row {
		m.status = "nothing to fold here"
		return
	}
	start, err := m.buf.PointToOffset(text.Point{Row: bp.Row, Col: uint32(len(line))})
	if err != nil {
		m.status = err.Error()
		return
	}
	lastLine, err := m.buf.LineText(lastRow)
	if err != nil {
		m.status = err.Error()
		return
	}
	end, err := m.buf.PointToOffset(text.Point{Row: lastRow, Col: uint32(len(lastLine))})
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.fm.Fold([]foldmap.Range{{Start: start, End: end}}); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

// unfoldCurrentLine unfolds any fold touching the cursor's buffer line.
func (m *appModel) unfoldCurrentLine() {
	bp, err := m.fm.ToBufferPoint(m.cursor)
	if err != nil {
		m.status = err.Error()
		return
	}
	line, err := m.buf.LineText(bp.Row)
	if err != nil {
		m.status = err.Error()
		return
	}
	start, err := m.buf.PointToOffset(text.Point{Row: bp.Row, Col: 0})
	if err != nil {
		m.status = err.Error()
		return
	}
	end, err := m.buf.PointToOffset(text.Point{Row: bp.Row, Col: uint32(len(line))})
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.fm.Unfold([]foldmap.Range{{Start: start, End: end}}); err != nil {
		m.status = err.Error()
	}
}

// insertAtCursor inserts s into the buffer at the cursor's buffer offset
// and resyncs the FoldMap.
func (m *appModel) insertAtCursor(s string) {
	bp, err := m.fm.ToBufferPoint(m.cursor)
	if err != nil {
		m.status = err.Error()
		return
	}
	offset, err := m.buf.PointToOffset(bp)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.buf.Insert(offset, s); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.fm.Sync(); err != nil {
		m.status = err.Error()
		return
	}
	newBP, err := m.buf.OffsetToPoint(offset + len([]rune(s)))
	if err != nil {
		return
	}
	dp, err := m.fm.ToDisplayPoint(newBP)
	if err != nil {
		return
	}
	m.cursor = dp
}

// deleteBeforeCursor implements backspace: delete one buffer character
// before the cursor and resync.
func (m *appModel) deleteBeforeCursor() {
	bp, err := m.fm.ToBufferPoint(m.cursor)
	if err != nil {
		return
	}
	offset, err := m.buf.PointToOffset(bp)
	if err != nil || offset == 0 {
		return
	}
	if err := m.buf.Delete(offset-1, offset); err != nil {
		return
	}
	if err := m.fm.Sync(); err != nil {
		return
	}
	newBP, err := m.buf.OffsetToPoint(offset - 1)
	if err != nil {
		return
	}
	dp, err := m.fm.ToDisplayPoint(newBP)
	if err != nil {
		return
	}
	m.cursor = dp
}

// collectRowTexts gathers every display row's text for fuzzy search.
func (m *appModel) collectRowTexts() []string {
	maxRow := m.fm.MaxPoint().Row
	rows := make([]string, 0, maxRow+1)
	for row := uint32(0); row <= maxRow; row++ {
		s, err := lineText(m.fm, row)
		if err != nil {
			break
		}
		rows = append(rows, s)
	}
	return rows
}

func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
		} else {
			break
		}
	}
	return n
}

func (m appModel) View() string {
	if m.showHelp {
		return helpMarkdown
	}

	maxRow := m.fm.MaxPoint().Row
	rows, err := m.fm.BufferRows(0)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	b := tui.AcquireBuffer()
	defer tui.ReleaseBuffer(b)

	visibleRows := m.height - 1
	if visibleRows <= 0 {
		visibleRows = int(maxRow) + 1
	}

	for row := uint32(0); row <= maxRow && int(row) < visibleRows; row++ {
		bufRow, ok := rows.Next()
		if !ok {
			break
		}
		folded, _ := m.fm.IsLineFolded(row)
		text, err := lineText(m.fm, row)
		if err != nil {
			text = ""
		}
		gutter := m.st.Gutter.Render(fmt.Sprintf("%4d ", bufRow+1))
		line := text
		if folded {
			line = m.st.Fold.Render(text)
		}
		if row == m.cursor.Row {
			line = m.highlightCursorCol(line, int(m.cursor.Col))
		}
		b.WriteJoined(gutter, line)
	}

	b.WriteLine(m.renderStatusLine())
	return strings.TrimSuffix(b.String(), "\n")
}

// highlightCursorCol reverses the rune at display column col within line,
// measuring each rune's width with the width package rather than by raw
// byte indexing.
func (m appModel) highlightCursorCol(line string, col int) string {
	w := 0
	runes := []rune(line)
	for i, r := range runes {
		rw := width.VisibleWidth(string(r))
		if w == col {
			before := string(runes[:i])
			after := ""
			if i+1 <= len(runes) {
				after = string(runes[i+1:])
			}
			return before + m.st.Cursor.Render(string(r)) + after
		}
		w += rw
	}
	return line + m.st.Cursor.Render(" ")
}

func (m appModel) renderStatusLine() string {
	left := m.filename
	if left == "" {
		left = "[sample]"
	}
	right := fmt.Sprintf("%d:%d", m.cursor.Row+1, m.cursor.Col+1)
	if m.mode == modeSearch {
		right = m.status
	} else if m.status != "" {
		right = m.status + "  " + right
	}
	pad := m.width - len(left) - len(right) - 2
	if pad < 1 {
		pad = 1
	}
	line := " " + left + strings.Repeat(" ", pad) + right + " "
	return m.st.Status.Render(line)
}
