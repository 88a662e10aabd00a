package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"reapo/internal/tui/components"
)

const summaryPrompt = "Summarize the conversation so far in a few sentences, " +
	"preserving any decisions or file paths that matter for continuing the work."

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.width = msg.Width
		m.viewport.height = msg.Height
		m.textarea.SetTerminalRows(msg.Height)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case msg.String() == "esc" && m.helpModal.IsVisible():
			m.helpModal.Hide()
			return m, nil
		}

		if m.processing {
			return m, nil
		}

		m.textarea.HandleKeyMsg(msg.String(), msg.Runes, msg.Paste)

		if m.submit.has {
			text := m.submit.text
			m.submit.text = ""
			m.submit.has = false

			if strings.HasPrefix(text, "/") {
				return m, m.handleSlashCommand(strings.TrimSpace(text))
			}

			m.messages = append(m.messages, components.Message{
				ID:        generateMessageID(),
				Role:      "user",
				Content:   text,
				Timestamp: time.Now(),
			})
			m.processing = true
			return m, m.dispatchToAgent(text)
		}
		return m, nil

	case AddMessageMsg:
		m.messages = append(m.messages, msg.Message)
		return m, nil

	case AgentReplyMsg:
		m.processing = false
		if msg.Err != nil {
			m.messages = append(m.messages, components.Message{
				ID:        generateMessageID(),
				Role:      "system",
				Content:   fmt.Sprintf("Error: %s", msg.Err.Error()),
				IsError:   true,
				Timestamp: time.Now(),
			})
			return m, nil
		}
		m.messages = append(m.messages, components.Message{
			ID:        generateMessageID(),
			Role:      "assistant",
			Content:   msg.Content,
			Timestamp: time.Now(),
		})
		return m, nil

	case SlashCommandMsg:
		return m, m.handleSlashCommand(msg.Command)

	case EditorFinishedMsg:
		if msg.Error != nil {
			m.messages = append(m.messages, components.Message{
				ID:        generateMessageID(),
				Role:      "system",
				Content:   fmt.Sprintf("Error opening editor: %s", msg.Error.Error()),
				IsError:   true,
				Timestamp: time.Now(),
			})
		}
		return m, nil

	case CompactReplyMsg:
		m.processing = false
		if msg.Err != nil {
			m.messages = append(m.messages, components.Message{
				ID:        generateMessageID(),
				Role:      "system",
				Content:   fmt.Sprintf("Error compacting conversation: %s", msg.Err.Error()),
				IsError:   true,
				Timestamp: time.Now(),
			})
			return m, nil
		}
		m.messages = []components.Message{
			{ID: generateMessageID(), Role: "system", Content: "Previous conversation was compacted.", Timestamp: time.Now()},
		}
		if msg.Summary != "" {
			m.messages = append(m.messages, components.Message{
				ID: generateMessageID(), Role: "assistant", Content: msg.Summary, Timestamp: time.Now(),
			})
		}
		return m, nil
	}

	return m, nil
}

// handleSlashCommand dispatches a submitted "/command" line to its effect.
func (m *Model) handleSlashCommand(command string) tea.Cmd {
	switch command {
	case "/help":
		m.helpModal.Show()
		return nil
	case "/clear":
		m.messages = []components.Message{}
		return nil
	case "/editor":
		return m.openExternalEditor()
	case "/compact":
		m.processing = true
		return m.compactConversation()
	}
	return nil
}

// buildConversationHistory converts the transcript into Claude message params.
func (m Model) buildConversationHistory() []anthropic.MessageParam {
	var conversation []anthropic.MessageParam
	for _, msg := range m.messages {
		switch msg.Role {
		case "user":
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case "assistant":
			if !msg.IsError {
				conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}
	return conversation
}

// dispatchToAgent sends the conversation so far, with any @file/@directory
// references in text expanded inline, to the agent for a reply.
func (m Model) dispatchToAgent(text string) tea.Cmd {
	conversation := m.buildConversationHistory()
	refs := extractFileReferences(text)
	for _, resolved := range m.resolveFileReferences(refs) {
		conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(resolved)))
	}

	ag := m.agent
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		response, err := ag.RunInference(ctx, conversation)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return AgentReplyMsg{Err: fmt.Errorf("request timed out after 60 seconds")}
			}
			return AgentReplyMsg{Err: err}
		}

		var reply strings.Builder
		for _, content := range response.Content {
			if content.Type == "text" {
				reply.WriteString(content.Text)
			}
		}
		return AgentReplyMsg{Content: reply.String()}
	}
}

// extractFileReferences extracts @filename references from text, honoring
// a leading backslash as an escape.
func extractFileReferences(text string) []string {
	var references []string
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		char := runes[i]
		switch {
		case char == '@' && (i == 0 || runes[i-1] != '\\'):
			start := i + 1
			end := start
			for end < len(runes) && !isWhitespace(runes[end]) {
				end++
			}
			if end > start {
				references = append(references, string(runes[start:end]))
				i = end - 1
			}
		case char == '\\' && i+1 < len(runes) && runes[i+1] == '@':
			i++
		}
	}
	return references
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// resolveFileReferences reads each @-referenced path concurrently, returning
// its formatted contents in input order regardless of completion order.
func (m Model) resolveFileReferences(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	workingDir := m.workingDir
	if workingDir == "" {
		workingDir = "."
	}

	results := make([]string, len(refs))
	var g errgroup.Group
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			results[i] = readFileOrDirectoryContents(workingDir, ref)
			return nil
		})
	}
	g.Wait()
	return results
}

func readFileOrDirectoryContents(workingDir, relativePath string) string {
	fullPath := filepath.Join(workingDir, relativePath)

	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Sprintf("Error accessing %s: %v", relativePath, err)
	}
	if info.IsDir() {
		return readDirectoryContents(fullPath, relativePath)
	}
	return readFileContents(fullPath, relativePath)
}

func readFileContents(fullPath, relativePath string) string {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Sprintf("Error reading file %s: %v", relativePath, err)
	}
	return fmt.Sprintf("Contents of %s:\n```\n%s\n```", relativePath, string(content))
}

func readDirectoryContents(fullPath, relativePath string) string {
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return fmt.Sprintf("Error reading directory %s: %v", relativePath, err)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Contents of directory %s:\n", relativePath))
	for _, entry := range entries {
		if entry.IsDir() {
			result.WriteString(fmt.Sprintf("- %s/ (directory)\n", entry.Name()))
			continue
		}
		if info, err := entry.Info(); err == nil {
			result.WriteString(fmt.Sprintf("- %s (%d bytes)\n", entry.Name(), info.Size()))
		} else {
			result.WriteString(fmt.Sprintf("- %s\n", entry.Name()))
		}
	}
	return result.String()
}

// openExternalEditor opens the user's preferred editor for quick access.
func (m Model) openExternalEditor() tea.Cmd {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vim"
	}
	c := exec.Command(editorCmd)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{Error: err}
	})
}

// compactConversation summarizes the transcript and replaces it with the
// summary.
func (m Model) compactConversation() tea.Cmd {
	conversation := m.buildConversationHistory()
	if len(conversation) == 0 {
		return func() tea.Msg {
			return CompactReplyMsg{Err: fmt.Errorf("no conversation to compact")}
		}
	}

	summaryConversation := append([]anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(summaryPrompt)),
	}, conversation...)
	summaryConversation = append(summaryConversation,
		anthropic.NewUserMessage(anthropic.NewTextBlock("Please summarize this conversation.")))

	ag := m.agent
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		response, err := ag.RunInference(ctx, summaryConversation)
		if err != nil {
			return CompactReplyMsg{Err: fmt.Errorf("failed to generate summary: %w", err)}
		}

		var summary strings.Builder
		for _, content := range response.Content {
			if content.Type == "text" {
				summary.WriteString(content.Text)
			}
		}
		return CompactReplyMsg{Summary: summary.String()}
	}
}
