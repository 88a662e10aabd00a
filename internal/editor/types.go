// Package editor implements the multi-line prompt widget: a host-agnostic
// text buffer with grapheme-aware cursor motion, word-aware line wrapping,
// bracketed-paste and Kitty keyboard protocol decoding, an autocomplete
// overlay, and a fixed-width renderer.
//
// The package has no knowledge of the surrounding agent session, the LLM,
// or tool execution. It is driven entirely by HandleInput and Render calls
// from a host main loop.
package editor

import "reapo/internal/editor/completion"

// Position is a cursor location: Line is an index into the buffer's logical
// lines, Col is a byte offset into that line that always lies on a
// grapheme-cluster boundary.
type Position struct {
	Line int
	Col  int
}

// BorderStyle selects the corner glyphs the renderer uses for the editor's
// own top and bottom rules.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota
	BorderSharp
	BorderNone
)

// pasteEntry is one row of the paste table: a monotonically assigned id and
// the original text it stands in for.
type pasteEntry struct {
	id   int
	text string
}

// historyState tracks submitted strings, most-recent first, capped at 100
// entries with no adjacent duplicates.
type historyState struct {
	entries []string
	index   int // -1 when not browsing
}

const maxHistoryEntries = 100

func newHistoryState() historyState {
	return historyState{entries: nil, index: -1}
}

// add pushes text to the front of history, skipping empties and
// adjacent duplicates, and enforcing the size cap.
func (h *historyState) add(text string) {
	if text == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[0] == text {
		return
	}
	h.entries = append([]string{text}, h.entries...)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[:maxHistoryEntries]
	}
}

// Model is the editor widget. Zero value is not usable; construct with New.
type Model struct {
	lines []string
	cursor Position

	history historyState

	pasteTable  map[int]pasteEntry
	nextPasteID int

	scrollOffset int
	contentWidth int

	overlay completion.State
	provider completion.Provider

	focused       bool
	paddingX      int
	borderStyle   BorderStyle
	disableSubmit bool

	terminalRows int

	onSubmit func(string)
	onChange func(string)

	pendingBackslash bool
	pasteAccum       *pasteAccumulator
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithPaddingX sets the horizontal padding inside the border. Clamped at
// render time to floor((W-1)/2).
func WithPaddingX(n int) Option {
	return func(m *Model) { m.paddingX = n }
}

// WithBorderStyle sets the border glyph set.
func WithBorderStyle(s BorderStyle) Option {
	return func(m *Model) { m.borderStyle = s }
}

// New constructs an empty editor with a single blank line.
func New(opts ...Option) *Model {
	m := &Model{
		lines:       []string{""},
		cursor:      Position{0, 0},
		history:     newHistoryState(),
		pasteTable:  make(map[int]pasteEntry),
		nextPasteID: 1,
		paddingX:    1,
		borderStyle: BorderRounded,
		terminalRows: 24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnSubmit registers the submit sink, invoked with the joined, expanded,
// trimmed buffer text when the user presses Enter outside the overlay or
// confirms a slash-command completion.
func (m *Model) OnSubmit(f func(string)) { m.onSubmit = f }

// OnChange registers the change sink, invoked with get_text() after any
// mutation.
func (m *Model) OnChange(f func(string)) { m.onChange = f }

// SetDisableSubmit suppresses the submit sink and buffer reset on Enter,
// while still routing the key through the overlay if one is active.
func (m *Model) SetDisableSubmit(v bool) { m.disableSubmit = v }

// SetAutocompleteProvider installs the pure suggestion/apply function pair
// the overlay queries.
func (m *Model) SetAutocompleteProvider(p completion.Provider) { m.provider = p }

// SetPaddingX updates the configured padding for subsequent renders.
func (m *Model) SetPaddingX(n int) { m.paddingX = n }

// SetBorderStyle updates the border glyph set for subsequent renders.
func (m *Model) SetBorderStyle(s BorderStyle) { m.borderStyle = s }

// FocusSet tells the editor whether it owns the terminal cursor.
func (m *Model) FocusSet(v bool) { m.focused = v }

// SetTerminalRows records the host's current terminal row count, used for
// page motion and the renderer's visible-row budget.
func (m *Model) SetTerminalRows(n int) {
	if n < 1 {
		n = 1
	}
	m.terminalRows = n
}

// IsShowingAutocomplete reports whether the overlay is currently active.
func (m *Model) IsShowingAutocomplete() bool { return m.overlay.Active }

// AddToHistory appends a submission to history directly, bypassing Submit.
// Used by hosts that replay a persisted transcript at startup.
func (m *Model) AddToHistory(text string) { m.history.add(text) }

// GetLines returns the buffer's logical lines. Callers must not mutate the
// returned slice.
func (m *Model) GetLines() []string { return m.lines }

// GetCursor returns the current cursor position.
func (m *Model) GetCursor() Position { return m.cursor }
