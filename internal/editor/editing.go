package editor

import (
	"strconv"
	"strings"
	"unicode"

	"reapo/internal/editor/completion"
)

const (
	pasteLineThreshold = 10
	pasteByteThreshold  = 1000
)

// NewlineInsertion splits the current line at the cursor and moves to
// column 0 of the new line.
func (m *Model) NewlineInsertion() {
	line := m.lines[m.cursor.Line]
	before := line[:m.cursor.Col]
	after := line[m.cursor.Col:]

	newLines := make([]string, 0, len(m.lines)+1)
	newLines = append(newLines, m.lines[:m.cursor.Line]...)
	newLines = append(newLines, before, after)
	newLines = append(newLines, m.lines[m.cursor.Line+1:]...)
	m.lines = newLines

	m.cursor.Line++
	m.cursor.Col = 0
	m.history.index = -1
	m.afterMutation()
}

// Backspace deletes the preceding grapheme cluster, or joins with the
// previous line at column 0. Per the open question in the word-wrap spec,
// joining two lines does not trim trailing whitespace off the first one.
func (m *Model) Backspace() {
	m.history.index = -1
	if m.cursor.Col > 0 {
		line := m.lines[m.cursor.Line]
		start := prevGraphemeBoundary(line, m.cursor.Col)
		m.lines[m.cursor.Line] = line[:start] + line[m.cursor.Col:]
		m.cursor.Col = start
		m.afterMutation()
		return
	}
	if m.cursor.Line == 0 {
		return
	}
	prevLine := m.lines[m.cursor.Line-1]
	curLine := m.lines[m.cursor.Line]
	joinCol := len(prevLine)
	m.lines[m.cursor.Line-1] = prevLine + curLine
	m.lines = append(m.lines[:m.cursor.Line], m.lines[m.cursor.Line+1:]...)
	m.cursor.Line--
	m.cursor.Col = joinCol
	m.afterMutation()
}

// ForwardDelete is the symmetric, grapheme-aware counterpart of Backspace.
func (m *Model) ForwardDelete() {
	m.history.index = -1
	line := m.lines[m.cursor.Line]
	if m.cursor.Col < len(line) {
		end := nextGraphemeBoundary(line, m.cursor.Col)
		m.lines[m.cursor.Line] = line[:m.cursor.Col] + line[end:]
		m.afterMutation()
		return
	}
	if m.cursor.Line >= len(m.lines)-1 {
		return
	}
	nextLine := m.lines[m.cursor.Line+1]
	m.lines[m.cursor.Line] = line + nextLine
	m.lines = append(m.lines[:m.cursor.Line+1], m.lines[m.cursor.Line+2:]...)
	m.afterMutation()
}

// DeleteWordBackward deletes from the cursor back to the start of the
// previous word run, or behaves as Backspace at column 0.
func (m *Model) DeleteWordBackward() {
	if m.cursor.Col == 0 {
		m.Backspace()
		return
	}
	m.history.index = -1
	line := m.lines[m.cursor.Line]
	start := wordLeftBoundary(line, m.cursor.Col)
	m.lines[m.cursor.Line] = line[:start] + line[m.cursor.Col:]
	m.cursor.Col = start
	m.afterMutation()
}

// DeleteToLineStart joins with the previous line at column 0; otherwise
// deletes from column 0 to the cursor.
func (m *Model) DeleteToLineStart() {
	if m.cursor.Col == 0 {
		if m.cursor.Line == 0 {
			return
		}
		m.history.index = -1
		prevLine := m.lines[m.cursor.Line-1]
		curLine := m.lines[m.cursor.Line]
		joinCol := len(prevLine)
		m.lines[m.cursor.Line-1] = prevLine + curLine
		m.lines = append(m.lines[:m.cursor.Line], m.lines[m.cursor.Line+1:]...)
		m.cursor.Line--
		m.cursor.Col = joinCol
		m.afterMutation()
		return
	}
	m.history.index = -1
	line := m.lines[m.cursor.Line]
	m.lines[m.cursor.Line] = line[m.cursor.Col:]
	m.cursor.Col = 0
	m.afterMutation()
}

// DeleteToLineEnd joins with the next line at end-of-line; otherwise
// deletes from the cursor to end of line.
func (m *Model) DeleteToLineEnd() {
	line := m.lines[m.cursor.Line]
	if m.cursor.Col >= len(line) {
		if m.cursor.Line >= len(m.lines)-1 {
			return
		}
		m.history.index = -1
		nextLine := m.lines[m.cursor.Line+1]
		m.lines[m.cursor.Line] = line + nextLine
		m.lines = append(m.lines[:m.cursor.Line+1], m.lines[m.cursor.Line+2:]...)
		m.afterMutation()
		return
	}
	m.history.index = -1
	m.lines[m.cursor.Line] = line[:m.cursor.Col]
	m.afterMutation()
}

// isWordLikeRune reports whether r is a "word-like" character (a letter,
// digit, '.', '_' or '-'). Paste ingestion uses it to decide whether a
// path-like paste needs a separating space.
func isWordLikeRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

// Submit joins all lines, expands paste markers, trims, records the result
// in history, resets the buffer, and invokes the change and submit sinks.
// Suppressed when disableSubmit is set.
func (m *Model) Submit() {
	if m.disableSubmit {
		return
	}
	text := m.expandMarkers(m.GetText())
	text = strings.TrimSpace(text)
	m.history.add(text)

	m.lines = []string{""}
	m.cursor = Position{0, 0}
	m.pasteTable = make(map[int]pasteEntry)
	m.nextPasteID = 1
	m.history.index = -1
	m.scrollOffset = 0
	m.overlay.Reset()

	m.fireChange()
	if m.onSubmit != nil {
		m.onSubmit(text)
	}
}

// PasteIngestion ingests pasted text (already stripped of the bracketed
// paste wrapper) per §4.4 "Paste ingestion": normalize newlines, expand
// tabs, drop non-printables, and either splice it inline or replace it
// with a paste marker when it is large.
func (m *Model) PasteIngestion(text string) {
	text = normalizeNewlines(text)
	text = strings.ReplaceAll(text, "\t", "    ")
	text = stripNonPrintable(text)

	line := m.lines[m.cursor.Line]
	if m.cursor.Col > 0 && len(text) > 0 {
		prev := prevGraphemeBoundary(line, m.cursor.Col)
		prevChar := line[prev:m.cursor.Col]
		first := firstRune(text)
		if (first == '/' || first == '~' || first == '.') && isWordLikeRune(lastRune(prevChar)) {
			text = " " + text
		}
	}

	lineCount := strings.Count(text, "\n") + 1
	if lineCount > pasteLineThreshold || len(text) > pasteByteThreshold {
		id := m.nextPasteID
		m.nextPasteID++
		m.pasteTable[id] = pasteEntry{id: id, text: text}
		var marker string
		if lineCount > pasteLineThreshold {
			marker = "[paste #" + strconv.Itoa(id) + " +" + strconv.Itoa(lineCount) + " lines]"
		} else {
			marker = "[paste #" + strconv.Itoa(id) + " " + strconv.Itoa(len(text)) + " chars]"
		}
		m.InsertTextAtCursor(marker)
		return
	}

	m.InsertTextAtCursor(text)
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r >= 32 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// --- autocomplete activation & overlay refresh (§4.5) ---

func (m *Model) buildContext(kind completion.Kind, prefix string) completion.Context {
	return completion.Context{
		Lines:  m.lines,
		Line:   m.cursor.Line,
		Col:    m.cursor.Col,
		Kind:   kind,
		Prefix: prefix,
	}
}

func (m *Model) queryProvider(kind completion.Kind, prefix string) ([]completion.Item, bool) {
	if m.provider == nil {
		return nil, false
	}
	return m.provider.Suggestions(m.buildContext(kind, prefix))
}

func (m *Model) activateOverlay(kind completion.Kind, prefix string) {
	items, ok := m.queryProvider(kind, prefix)
	if !ok || len(items) == 0 {
		return
	}
	m.overlay = completion.State{Active: true, Kind: kind, Prefix: prefix, Items: items, Selected: 0}
}

// evaluateAutocompleteTrigger is called after every mutation while the
// overlay is inactive, to decide whether it should activate.
func (m *Model) evaluateAutocompleteTrigger() {
	line := m.lines[m.cursor.Line]
	before := line[:m.cursor.Col]

	trimmed := strings.TrimLeft(before, " \t")
	if trimmed == "/" || (strings.HasPrefix(trimmed, "/") && !strings.ContainsAny(trimmed[1:], " \t")) {
		m.activateOverlay(completion.KindSlash, trimmed)
		return
	}

	if idx := strings.LastIndexByte(before, '@'); idx != -1 {
		rest := before[idx+1:]
		if !strings.ContainsAny(rest, " \t\n") {
			activate := false
			if idx == 0 {
				// The open question's "length check" branch: @ is the
				// first character of the line, so there is no preceding
				// character to test for whitespace.
				activate = len(before) >= 1
			} else if isWhitespaceByte(before[idx-1]) {
				activate = true
			}
			if activate {
				m.activateOverlay(completion.KindFileRef, before[idx:])
				return
			}
		}
	}
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// refreshOverlay is called after every mutation while the overlay is
// active: it recomputes the prefix for the overlay's own kind and
// re-queries the provider, deactivating if the context no longer matches
// or the suggestion set is empty.
func (m *Model) refreshOverlay() {
	if m.overlay.Kind == completion.KindForcedFile {
		items, ok := m.queryProvider(completion.KindForcedFile, m.overlay.Prefix)
		if !ok || len(items) == 0 {
			m.overlay.Reset()
			return
		}
		m.overlay.Items = items
		if m.overlay.Selected >= len(items) {
			m.overlay.Selected = len(items) - 1
		}
		return
	}

	line := m.lines[m.cursor.Line]
	before := line[:m.cursor.Col]

	var prefix string
	matched := false
	switch m.overlay.Kind {
	case completion.KindSlash:
		trimmed := strings.TrimLeft(before, " \t")
		if trimmed == "/" || (strings.HasPrefix(trimmed, "/") && !strings.ContainsAny(trimmed[1:], " \t")) {
			prefix = trimmed
			matched = true
		}
	case completion.KindFileRef:
		if idx := strings.LastIndexByte(before, '@'); idx != -1 {
			rest := before[idx+1:]
			if !strings.ContainsAny(rest, " \t\n") {
				prefix = before[idx:]
				matched = true
			}
		}
	}
	if !matched {
		m.overlay.Reset()
		return
	}

	items, ok := m.queryProvider(m.overlay.Kind, prefix)
	if !ok || len(items) == 0 {
		m.overlay.Reset()
		return
	}
	m.overlay.Prefix = prefix
	m.overlay.Items = items
	if m.overlay.Selected >= len(items) {
		m.overlay.Selected = len(items) - 1
	}
}

// tryForcedFileCompletion handles Tab outside any slash/file-ref context
// (§4.5 branch 3): ask the provider's optional hook, falling back to a
// generic suggestion query.
func (m *Model) tryForcedFileCompletion() bool {
	if m.provider == nil {
		return false
	}
	ctx := m.buildContext(completion.KindForcedFile, "")
	triggered := false
	if ft, ok := m.provider.(completion.FileTriggerer); ok {
		triggered = ft.ShouldTriggerFileCompletion(ctx)
	}
	items, ok := m.provider.Suggestions(ctx)
	if !triggered && !ok {
		return false
	}
	if len(items) == 0 {
		return false
	}
	m.overlay = completion.State{Active: true, Kind: completion.KindForcedFile, Prefix: "", Items: items, Selected: 0}
	return true
}

// ApplySelectedCompletion delegates to the provider to splice the
// currently-selected item into the buffer, then deactivates the overlay.
// For slash-command completions, the caller additionally submits.
func (m *Model) ApplySelectedCompletion() (applied bool, wasSlash bool) {
	item, ok := m.overlay.SelectedItem()
	if !ok || m.provider == nil {
		m.overlay.Reset()
		return false, false
	}
	ctx := m.buildContext(m.overlay.Kind, m.overlay.Prefix)
	lines, line, col := m.provider.Apply(ctx, item)
	wasSlash = m.overlay.Kind == completion.KindSlash
	m.overlay.Reset()
	m.lines = lines
	m.cursor = Position{Line: line, Col: col}
	m.clampCursor()
	m.fireChange()
	return true, wasSlash
}
