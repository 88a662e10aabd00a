package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var cursorStyle = lipgloss.NewStyle().Reverse(true)

type borderGlyphs struct {
	topLeft, topRight, bottomLeft, bottomRight string
	draw                                       bool
}

func (m *Model) borderGlyphs() borderGlyphs {
	switch m.borderStyle {
	case BorderRounded:
		return borderGlyphs{"╭", "╮", "╰", "╯", true}
	case BorderSharp:
		return borderGlyphs{"┌", "┐", "└", "┘", true}
	default:
		return borderGlyphs{"", "", "", "", false}
	}
}

// maxVisibleRows is max(5, floor(0.3*terminal_rows)).
func (m *Model) maxVisibleRows() int {
	v := int(0.3 * float64(m.terminalRows))
	if v < 5 {
		v = 5
	}
	return v
}

// Render produces exactly the styled lines of §4.6 for the given width.
func (m *Model) Render(width int) []string {
	if width < 1 {
		width = 1
	}
	paddingX := m.paddingX
	if maxPad := (width - 1) / 2; paddingX > maxPad {
		paddingX = maxPad
	}
	if paddingX < 0 {
		paddingX = 0
	}
	contentWidth := width - 2*paddingX
	if contentWidth < 1 {
		contentWidth = 1
	}
	m.contentWidth = contentWidth

	visualLines := buildVisualLines(m.lines, contentWidth)
	if len(visualLines) == 0 {
		visualLines = []visualLine{{logicalLine: 0, chunk: chunk{}}}
	}
	maxVisible := m.maxVisibleRows()
	cursorIdx := currentVisualLineIndex(visualLines, m.cursor)
	total := len(visualLines)

	if cursorIdx < m.scrollOffset {
		m.scrollOffset = cursorIdx
	}
	if cursorIdx >= m.scrollOffset+maxVisible {
		m.scrollOffset = cursorIdx - maxVisible + 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}

	visibleCount := maxVisible
	if m.scrollOffset+visibleCount > total {
		visibleCount = total - m.scrollOffset
	}
	if visibleCount < 0 {
		visibleCount = 0
	}

	var out []string
	out = append(out, m.renderBorder(width, true, m.scrollOffset))

	for i := 0; i < visibleCount; i++ {
		idx := m.scrollOffset + i
		isCursorRow := idx == cursorIdx
		out = append(out, m.renderContentRow(visualLines[idx], isCursorRow, contentWidth, paddingX))
	}

	bottomMore := total - (m.scrollOffset + visibleCount)
	if bottomMore < 0 {
		bottomMore = 0
	}
	out = append(out, m.renderBorder(width, false, bottomMore))

	if m.overlay.Active {
		for _, row := range m.renderOverlayRows(contentWidth) {
			out = append(out, padSides(row, paddingX))
		}
	}

	return out
}

func padSides(row string, paddingX int) string {
	side := strings.Repeat(" ", paddingX)
	return side + row + side
}

// renderBorder draws one ruled border row of exactly width cells, with the
// scroll indicator spliced into the leading cells when more > 0.
func (m *Model) renderBorder(width int, top bool, more int) string {
	g := m.borderGlyphs()

	if width == 1 {
		if !g.draw {
			return " "
		}
		return "─"
	}

	left, right := g.topLeft, g.topRight
	if !top {
		left, right = g.bottomLeft, g.bottomRight
	}
	if !g.draw {
		return strings.Repeat(" ", width)
	}

	dashWidth := width - 2
	label := ""
	if more > 0 {
		arrow := "↑"
		if !top {
			arrow = "↓"
		}
		label = fmt.Sprintf("─── %s %d more ", arrow, more)
		label = truncateToWidth(label, dashWidth)
	}
	fill := dashWidth - visibleWidth(label)
	if fill < 0 {
		fill = 0
	}
	body := label + strings.Repeat("─", fill)
	return left + body + right
}

// renderContentRow renders one visual line's chunk, inserting a
// reverse-video cursor marker when this row holds the cursor and the
// editor is focused with the overlay inactive.
func (m *Model) renderContentRow(vl visualLine, isCursorRow bool, contentWidth, paddingX int) string {
	text := vl.chunk.Text
	used := visibleWidth(text)

	if !isCursorRow || !m.focused || m.overlay.Active {
		pad := contentWidth - used
		if pad < 0 {
			pad = 0
		}
		return padSides(text+strings.Repeat(" ", pad), paddingX)
	}

	offset := m.cursor.Col - vl.chunk.Start
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	if offset >= len(text) {
		if used >= contentWidth && len(text) > 0 {
			start := prevGraphemeBoundary(text, len(text))
			styled := text[:start] + cursorStyle.Render(text[start:])
			pad := contentWidth - used
			if pad < 0 {
				pad = 0
			}
			return padSides(styled+strings.Repeat(" ", pad), paddingX)
		}
		styled := text + cursorStyle.Render(" ")
		pad := contentWidth - used - 1
		if pad < 0 {
			pad = 0
		}
		return padSides(styled+strings.Repeat(" ", pad), paddingX)
	}

	end := nextGraphemeBoundary(text, offset)
	styled := text[:offset] + cursorStyle.Render(text[offset:end]) + text[end:]
	pad := contentWidth - used
	if pad < 0 {
		pad = 0
	}
	return padSides(styled+strings.Repeat(" ", pad), paddingX)
}

// renderOverlayRows renders the autocomplete selection list: one row per
// item, padded to contentWidth, with the selected row in reverse video.
func (m *Model) renderOverlayRows(contentWidth int) []string {
	rows := make([]string, 0, len(m.overlay.Items))
	for i, item := range m.overlay.Items {
		label := item.Text
		if item.Description != "" {
			label += "  " + item.Description
		}
		label = truncateToWidth(label, contentWidth)
		pad := contentWidth - visibleWidth(label)
		if pad < 0 {
			pad = 0
		}
		line := label + strings.Repeat(" ", pad)
		if i == m.overlay.Selected {
			line = cursorStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return rows
}

// truncateToWidth trims s at a grapheme boundary so its visible width does
// not exceed width.
func truncateToWidth(s string, width int) string {
	if visibleWidth(s) <= width {
		return s
	}
	bounds := graphemeBoundaries(s)
	w := 0
	end := 0
	for i := 0; i < len(bounds)-1; i++ {
		cluster := s[bounds[i]:bounds[i+1]]
		cw := graphemeWidth(cluster)
		if w+cw > width {
			break
		}
		w += cw
		end = bounds[i+1]
	}
	return s[:end]
}
