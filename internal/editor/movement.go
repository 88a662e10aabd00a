package editor

// CursorLeft moves the cursor one grapheme left, wrapping to the end of
// the previous line at column 0.
func (m *Model) CursorLeft() {
	if m.cursor.Col > 0 {
		m.cursor.Col = prevGraphemeBoundary(m.lines[m.cursor.Line], m.cursor.Col)
		return
	}
	if m.cursor.Line > 0 {
		m.cursor.Line--
		m.cursor.Col = len(m.lines[m.cursor.Line])
	}
}

// CursorRight moves the cursor one grapheme right, wrapping to the start
// of the next line at end-of-line.
func (m *Model) CursorRight() {
	line := m.lines[m.cursor.Line]
	if m.cursor.Col < len(line) {
		m.cursor.Col = nextGraphemeBoundary(line, m.cursor.Col)
		return
	}
	if m.cursor.Line < len(m.lines)-1 {
		m.cursor.Line++
		m.cursor.Col = 0
	}
}

// CursorLineStart sets the cursor to column 0 of the current line.
func (m *Model) CursorLineStart() { m.cursor.Col = 0 }

// CursorLineEnd sets the cursor to the end of the current line.
func (m *Model) CursorLineEnd() { m.cursor.Col = len(m.lines[m.cursor.Line]) }

// wordLeftBoundary returns the byte offset of the start of the word run
// immediately left of col, skipping trailing whitespace first, per §4.4
// "Move word left/right": skip leading whitespace, then one punctuation run
// or one word run.
func wordLeftBoundary(line string, col int) int {
	bounds := graphemeBoundaries(line)
	idx := len(bounds) - 1
	for i, b := range bounds {
		if b == col {
			idx = i
			break
		}
		if b > col {
			idx = i - 1
			break
		}
	}
	i := idx
	for i > 0 && classifyGrapheme(line[bounds[i-1]:bounds[i]]) == classSpace {
		i--
	}
	if i == 0 {
		return 0
	}
	class := classifyGrapheme(line[bounds[i-1]:bounds[i]])
	for i > 0 && classifyGrapheme(line[bounds[i-1]:bounds[i]]) == class {
		i--
	}
	return bounds[i]
}

// wordRightBoundary is the mirror of wordLeftBoundary: skip leading
// whitespace, then skip one punctuation or word run, returning its end.
func wordRightBoundary(line string, col int) int {
	bounds := graphemeBoundaries(line)
	idx := 0
	for i, b := range bounds {
		if b >= col {
			idx = i
			break
		}
		idx = i
	}
	i := idx
	n := len(bounds) - 1
	for i < n && classifyGrapheme(line[bounds[i]:bounds[i+1]]) == classSpace {
		i++
	}
	if i >= n {
		return len(line)
	}
	class := classifyGrapheme(line[bounds[i]:bounds[i+1]])
	for i < n && classifyGrapheme(line[bounds[i]:bounds[i+1]]) == class {
		i++
	}
	return bounds[i]
}

// CursorWordLeft moves left to the start of the previous word run,
// wrapping to the end of the previous logical line at column 0.
func (m *Model) CursorWordLeft() {
	if m.cursor.Col == 0 {
		if m.cursor.Line > 0 {
			m.cursor.Line--
			m.cursor.Col = len(m.lines[m.cursor.Line])
		}
		return
	}
	m.cursor.Col = wordLeftBoundary(m.lines[m.cursor.Line], m.cursor.Col)
}

// CursorWordRight moves right to the end of the next word run, wrapping to
// the start of the next logical line at end-of-line.
func (m *Model) CursorWordRight() {
	line := m.lines[m.cursor.Line]
	if m.cursor.Col >= len(line) {
		if m.cursor.Line < len(m.lines)-1 {
			m.cursor.Line++
			m.cursor.Col = 0
		}
		return
	}
	m.cursor.Col = wordRightBoundary(line, m.cursor.Col)
}

// visualColumn returns the visible-width offset of col within its chunk,
// used to preserve the visual column across vertical motion.
func visualColumn(c chunk, col int) int {
	off := col - c.Start
	if off < 0 {
		off = 0
	}
	if off > len(c.Text) {
		off = len(c.Text)
	}
	return visibleWidth(c.Text[:off])
}

// colAtVisualColumn finds the byte offset within chunk c whose visible
// column is closest to (without exceeding) target, clamped to the chunk.
func colAtVisualColumn(c chunk, target int) int {
	width := 0
	lastOffset := 0
	bounds := graphemeBoundaries(c.Text)
	for i := 0; i < len(bounds)-1; i++ {
		cluster := c.Text[bounds[i]:bounds[i+1]]
		w := graphemeWidth(cluster)
		if width+w > target {
			return c.Start + bounds[i]
		}
		width += w
		lastOffset = bounds[i+1]
	}
	return c.Start + lastOffset
}

// currentVisualLineIndex finds the index into visualLines of the chunk
// holding the cursor.
func currentVisualLineIndex(visualLines []visualLine, cursor Position) int {
	var lineChunks []chunk
	start := 0
	for i, vl := range visualLines {
		if vl.logicalLine != cursor.Line {
			continue
		}
		if len(lineChunks) == 0 {
			start = i
		}
		lineChunks = append(lineChunks, vl.chunk)
	}
	if len(lineChunks) == 0 {
		return 0
	}
	idx, _ := mapCursorToChunk(lineChunks, cursor.Col)
	return start + idx
}

// moveVertical moves the cursor delta visual lines up (negative) or down
// (positive) through visualLines, preserving the visual column.
func (m *Model) moveVertical(visualLines []visualLine, delta int) {
	if len(visualLines) == 0 {
		return
	}
	curIdx := currentVisualLineIndex(visualLines, m.cursor)
	targetCol := visualColumn(visualLines[curIdx].chunk, m.cursor.Col)

	newIdx := curIdx + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(visualLines) {
		newIdx = len(visualLines) - 1
	}
	vl := visualLines[newIdx]
	m.cursor.Line = vl.logicalLine
	m.cursor.Col = colAtVisualColumn(vl.chunk, targetCol)
}

// CursorUp moves up one visual line, or steps to an older history entry
// per §4.4 "History navigation" when that condition applies.
func (m *Model) CursorUp() {
	visualLines := buildVisualLines(m.lines, m.effectiveContentWidth())
	if m.shouldRecallHistory(visualLines, -1) {
		m.historyOlder()
		return
	}
	m.moveVertical(visualLines, -1)
}

// CursorDown moves down one visual line, or steps to a newer history
// entry symmetrically to CursorUp: while browsing, with the cursor on the
// last visual line.
func (m *Model) CursorDown() {
	visualLines := buildVisualLines(m.lines, m.effectiveContentWidth())
	if m.history.index >= 0 {
		curIdx := currentVisualLineIndex(visualLines, m.cursor)
		if curIdx == len(visualLines)-1 {
			m.historyNewer()
			return
		}
	}
	m.moveVertical(visualLines, 1)
}

// shouldRecallHistory reports whether an up-motion at the current cursor
// position should step into history instead of moving the cursor: either
// the editor is empty, or the cursor is already on the first visual line
// while already browsing.
func (m *Model) shouldRecallHistory(visualLines []visualLine, dir int) bool {
	if dir >= 0 {
		return false
	}
	if len(m.lines) == 1 && m.lines[0] == "" {
		return true
	}
	curIdx := currentVisualLineIndex(visualLines, m.cursor)
	return curIdx == 0 && m.history.index >= 0
}

func (m *Model) historyOlder() {
	if len(m.history.entries) == 0 {
		return
	}
	if m.history.index < len(m.history.entries)-1 {
		m.history.index++
	}
	m.loadHistoryEntry()
}

func (m *Model) historyNewer() {
	if m.history.index < 0 {
		return
	}
	m.history.index--
	m.loadHistoryEntry()
}

func (m *Model) loadHistoryEntry() {
	if m.history.index < 0 {
		m.lines = []string{""}
		m.cursor = Position{0, 0}
		m.fireChange()
		return
	}
	text := m.history.entries[m.history.index]
	m.lines = splitLines(text)
	last := len(m.lines) - 1
	m.cursor = Position{Line: last, Col: len(m.lines[last])}
	m.fireChange()
}

func splitLines(s string) []string {
	lines := []string{""}
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines[len(lines)-1] = s[start:i]
			lines = append(lines, "")
			start = i + 1
		}
	}
	lines[len(lines)-1] = s[start:]
	return lines
}

// effectiveContentWidth returns the content width recorded at the last
// render, or a reasonable default before the first render has happened.
func (m *Model) effectiveContentWidth() int {
	if m.contentWidth > 0 {
		return m.contentWidth
	}
	return 80
}

// pageSize is max(5, floor(0.3 * terminal_rows)).
func (m *Model) pageSize() int {
	size := int(0.3 * float64(m.terminalRows))
	if size < 5 {
		size = 5
	}
	return size
}

// PageUp moves the cursor up by one page of visual lines.
func (m *Model) PageUp() {
	visualLines := buildVisualLines(m.lines, m.effectiveContentWidth())
	m.moveVertical(visualLines, -m.pageSize())
}

// PageDown moves the cursor down by one page of visual lines.
func (m *Model) PageDown() {
	visualLines := buildVisualLines(m.lines, m.effectiveContentWidth())
	m.moveVertical(visualLines, m.pageSize())
}
