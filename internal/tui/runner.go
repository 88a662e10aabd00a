package tui

import (
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI starts the TUI interface
func RunTUI(client anthropic.Client, systemPrompt string) {
	systemPromptContent = systemPrompt

	m := NewModel(client)
	if m.history != nil {
		defer m.history.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
