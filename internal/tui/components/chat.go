package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Message is one entry in the prompt transcript.
type Message struct {
	ID        string    // Unique identifier, for future incremental updates
	Role      string    // "user", "assistant", or "system"
	Content   string    // Message text
	IsError   bool      // Whether this entry reports a failure
	Timestamp time.Time // When the message was created
}

// ChatComponent renders the transcript of submitted prompts and replies.
type ChatComponent struct {
	messages []Message
	height   int
	width    int
}

// NewChatComponent creates a new chat component.
func NewChatComponent(messages []Message, height int, width int) *ChatComponent {
	return &ChatComponent{messages: messages, height: height, width: width}
}

// Render renders the transcript, scrolled to fit the component's height.
func (c *ChatComponent) Render() string {
	userBulletStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	assistantBulletStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorBulletStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	textStyle := lipgloss.NewStyle()

	var chatLines []string
	for i, msg := range c.messages {
		chatLines = append(chatLines, c.renderMessage(msg, userBulletStyle, assistantBulletStyle, errorBulletStyle, textStyle))
		if i < len(c.messages)-1 {
			chatLines = append(chatLines, "")
		}
	}

	chatHeight := max(c.height, 1)
	if len(chatLines) > chatHeight {
		chatLines = chatLines[len(chatLines)-chatHeight:]
	}

	chat := strings.Join(chatLines, "\n")
	chatLineCount := len(strings.Split(chat, "\n"))
	if chat == "" {
		chatLineCount = 0
	}

	if paddingLines := chatHeight - chatLineCount; paddingLines > 0 {
		chat += strings.Repeat("\n", paddingLines)
	}

	return chat
}

func (c *ChatComponent) renderMessage(msg Message, userBulletStyle, assistantBulletStyle, errorBulletStyle, textStyle lipgloss.Style) string {
	prefix := "⏺ "
	bulletStyle := assistantBulletStyle
	if msg.Role == "user" {
		prefix = "> "
		bulletStyle = userBulletStyle
	}
	if msg.IsError {
		bulletStyle = errorBulletStyle
	}

	wrapped := wrapText(msg.Content, c.width, len(prefix))
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= 1 {
		return bulletStyle.Render(prefix) + textStyle.Render(wrapped)
	}

	result := bulletStyle.Render(prefix) + textStyle.Render(lines[0])
	indent := strings.Repeat(" ", len(prefix))
	for _, line := range lines[1:] {
		result += "\n" + indent + textStyle.Render(line)
	}
	return result
}

// wrapText wraps text to fit within width, accounting for a leading prefix
// of prefixLen cells.
func wrapText(text string, width int, prefixLen int) string {
	availableWidth := width - prefixLen
	if availableWidth <= 0 {
		return text
	}

	var wrappedLines []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= availableWidth {
			wrappedLines = append(wrappedLines, line)
			continue
		}

		var currentLine strings.Builder
		var currentLen int
		for i, word := range strings.Fields(line) {
			spaceLen := 0
			if i > 0 {
				spaceLen = 1
			}
			if currentLen+spaceLen+len(word) > availableWidth && currentLen > 0 {
				wrappedLines = append(wrappedLines, currentLine.String())
				currentLine.Reset()
				currentLen = 0
			}
			if currentLen > 0 {
				currentLine.WriteString(" ")
				currentLen++
			}
			currentLine.WriteString(word)
			currentLen += len(word)
		}
		if currentLine.Len() > 0 {
			wrappedLines = append(wrappedLines, currentLine.String())
		}
	}
	return strings.Join(wrappedLines, "\n")
}
