package tui

import (
	"reapo/internal/tui/components"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.helpModal.IsVisible() {
		return m.helpModal.View()
	}

	inputComponent := components.NewInputComponent(m.textarea.Render(m.viewport.width))
	input := inputComponent.Render()
	inputHeight := inputComponent.Height()

	processingHeight := 0
	if m.processing {
		processingHeight = 2
	}

	chatHeight := m.viewport.height - inputHeight - processingHeight - 4

	chatComponent := components.NewChatComponent(m.messages, chatHeight, m.viewport.width)
	chat := chatComponent.Render()

	var processingIndicator string
	if m.processing {
		processingIndicator = "\n  Thinking...\n"
	}

	footerComponent := components.NewFooterComponent(m.viewport.width, m.workingDir, len(m.messages))
	footer := footerComponent.Render()

	return chat + processingIndicator + input + "\n\n\n" + footer
}
