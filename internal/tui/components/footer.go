package components

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterComponent renders the status bar footer: app name, working
// directory, and how many transcript messages have accumulated.
type FooterComponent struct {
	width        int
	workingDir   string
	messageCount int
}

// NewFooterComponent creates a new footer component.
func NewFooterComponent(width int, workingDir string, messageCount int) *FooterComponent {
	return &FooterComponent{width: width, workingDir: workingDir, messageCount: messageCount}
}

// Render renders the status bar footer.
func (f *FooterComponent) Render() string {
	pwd := f.workingDir
	if pwd == "" {
		pwd, _ = os.Getwd()
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" && strings.HasPrefix(pwd, homeDir) {
		pwd = "~" + pwd[len(homeDir):]
	}

	countText := fmt.Sprintf("%d messages", f.messageCount)
	sections := []string{"reapo", pwd, countText}

	totalContentWidth := 0
	for _, section := range sections {
		totalContentWidth += len(section)
	}

	separatorCount := len(sections) - 1
	totalSeparatorWidth := separatorCount * 3
	availableWidth := f.width - totalContentWidth - totalSeparatorWidth - 2

	extraSpacePerGap := availableWidth / separatorCount
	if extraSpacePerGap < 0 {
		extraSpacePerGap = 0
	}
	separator := strings.Repeat(" ", 3+extraSpacePerGap)

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236"))
	sepStyle := lipgloss.NewStyle().Background(lipgloss.Color("236"))

	composed := textStyle.Render(sections[0]) + sepStyle.Render(separator) +
		textStyle.Render(sections[1]) + sepStyle.Render(separator) +
		textStyle.Render(sections[2])

	if paddingNeeded := f.width - lipgloss.Width(composed) - 2; paddingNeeded > 0 {
		composed += sepStyle.Render(strings.Repeat(" ", paddingNeeded))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Width(f.width).
		Padding(0, 1).
		Render(composed)
}
