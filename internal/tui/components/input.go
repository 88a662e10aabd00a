package components

import "strings"

// InputComponent joins the editor's own rendered rows. The editor draws its
// own border and autocomplete overlay, so there is nothing left to wrap here.
type InputComponent struct {
	lines []string
}

// NewInputComponent wraps the already-rendered rows produced by
// editor.Model.Render.
func NewInputComponent(lines []string) *InputComponent {
	return &InputComponent{lines: lines}
}

func (i *InputComponent) Render() string {
	return strings.Join(i.lines, "\n")
}

func (i *InputComponent) Height() int {
	return len(i.lines)
}
