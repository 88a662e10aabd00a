package editor

import "github.com/charmbracelet/bubbles/key"

// intent is the decoded meaning of one input event, dispatched by
// HandleInput. It is distinct from completion.Kind.
type intent int

const (
	intentNone intent = iota
	intentSubmit
	intentNewLine
	intentCursorUp
	intentCursorDown
	intentCursorLeft
	intentCursorRight
	intentCursorLineStart
	intentCursorLineEnd
	intentCursorWordLeft
	intentCursorWordRight
	intentDeleteCharBackward
	intentDeleteCharForward
	intentDeleteWordBackward
	intentDeleteToLineStart
	intentDeleteToLineEnd
	intentPageUp
	intentPageDown
	intentTab
	intentSelectUp
	intentSelectDown
	intentSelectConfirm
	intentSelectCancel
	intentCopy
)

// keymap is the shared keybinding table named by §4.2: each editor
// operation is bound to the chord strings a host terminal is expected to
// send for it. Bindings are expressed with bubbles/key the same way the
// rest of the ecosystem declares them, even though this package matches
// chords itself rather than tea.KeyMsg values.
type keymap struct {
	submit             key.Binding
	newLine            key.Binding
	cursorUp           key.Binding
	cursorDown         key.Binding
	cursorLeft         key.Binding
	cursorRight        key.Binding
	cursorLineStart    key.Binding
	cursorLineEnd      key.Binding
	cursorWordLeft     key.Binding
	cursorWordRight    key.Binding
	deleteCharBackward key.Binding
	deleteCharForward  key.Binding
	deleteWordBackward key.Binding
	deleteToLineStart  key.Binding
	deleteToLineEnd    key.Binding
	pageUp             key.Binding
	pageDown           key.Binding
	tab                key.Binding
	selectUp           key.Binding
	selectDown         key.Binding
	selectConfirm      key.Binding
	selectCancel       key.Binding
	copyKey            key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		submit:             key.NewBinding(key.WithKeys("enter")),
		newLine:            key.NewBinding(key.WithKeys("\n", "ctrl+j")),
		cursorUp:           key.NewBinding(key.WithKeys("up")),
		cursorDown:         key.NewBinding(key.WithKeys("down")),
		cursorLeft:         key.NewBinding(key.WithKeys("left")),
		cursorRight:        key.NewBinding(key.WithKeys("right")),
		cursorLineStart:    key.NewBinding(key.WithKeys("home", "ctrl+a")),
		cursorLineEnd:      key.NewBinding(key.WithKeys("end", "ctrl+e")),
		cursorWordLeft:     key.NewBinding(key.WithKeys("ctrl+left", "alt+left")),
		cursorWordRight:    key.NewBinding(key.WithKeys("ctrl+right", "alt+right")),
		deleteCharBackward: key.NewBinding(key.WithKeys("backspace")),
		deleteCharForward:  key.NewBinding(key.WithKeys("delete")),
		deleteWordBackward: key.NewBinding(key.WithKeys("ctrl+w", "ctrl+backspace")),
		deleteToLineStart:  key.NewBinding(key.WithKeys("ctrl+u")),
		deleteToLineEnd:    key.NewBinding(key.WithKeys("ctrl+k")),
		pageUp:             key.NewBinding(key.WithKeys("pgup")),
		pageDown:           key.NewBinding(key.WithKeys("pgdown")),
		tab:                key.NewBinding(key.WithKeys("tab")),
		selectUp:           key.NewBinding(key.WithKeys("up")),
		selectDown:         key.NewBinding(key.WithKeys("down")),
		selectConfirm:      key.NewBinding(key.WithKeys("enter")),
		selectCancel:       key.NewBinding(key.WithKeys("esc")),
		copyKey:            key.NewBinding(key.WithKeys("ctrl+y")),
	}
}

func bindingHas(b key.Binding, chord string) bool {
	for _, k := range b.Keys() {
		if k == chord {
			return true
		}
	}
	return false
}

// resolve maps a decoded chord string to an intent. When overlayActive,
// navigation and confirmation chords resolve to the overlay's select*
// intents instead of their ordinary editing meaning.
func (k keymap) resolve(chord string, overlayActive bool) intent {
	if overlayActive {
		switch {
		case bindingHas(k.selectUp, chord):
			return intentSelectUp
		case bindingHas(k.selectDown, chord):
			return intentSelectDown
		case bindingHas(k.selectCancel, chord):
			return intentSelectCancel
		case bindingHas(k.selectConfirm, chord):
			return intentSelectConfirm
		case bindingHas(k.tab, chord):
			return intentTab
		}
	}

	switch {
	case bindingHas(k.copyKey, chord):
		return intentCopy
	case bindingHas(k.newLine, chord):
		return intentNewLine
	case bindingHas(k.submit, chord):
		return intentSubmit
	case bindingHas(k.cursorWordLeft, chord):
		return intentCursorWordLeft
	case bindingHas(k.cursorWordRight, chord):
		return intentCursorWordRight
	case bindingHas(k.cursorLineStart, chord):
		return intentCursorLineStart
	case bindingHas(k.cursorLineEnd, chord):
		return intentCursorLineEnd
	case bindingHas(k.cursorUp, chord):
		return intentCursorUp
	case bindingHas(k.cursorDown, chord):
		return intentCursorDown
	case bindingHas(k.cursorLeft, chord):
		return intentCursorLeft
	case bindingHas(k.cursorRight, chord):
		return intentCursorRight
	case bindingHas(k.deleteWordBackward, chord):
		return intentDeleteWordBackward
	case bindingHas(k.deleteCharBackward, chord):
		return intentDeleteCharBackward
	case bindingHas(k.deleteCharForward, chord):
		return intentDeleteCharForward
	case bindingHas(k.deleteToLineStart, chord):
		return intentDeleteToLineStart
	case bindingHas(k.deleteToLineEnd, chord):
		return intentDeleteToLineEnd
	case bindingHas(k.pageUp, chord):
		return intentPageUp
	case bindingHas(k.pageDown, chord):
		return intentPageDown
	case bindingHas(k.tab, chord):
		return intentTab
	}
	return intentNone
}
