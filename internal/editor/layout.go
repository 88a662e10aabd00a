package editor

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// chunk is one wrapped visual piece of a logical line. Start and End are
// byte offsets into the original line (pre-trim, so cursor round-tripping
// stays exact); Text is the display text, which for non-final chunks has
// had its trailing whitespace run trimmed off per §4.3 rule 4.
type chunk struct {
	Start, End int
	Text       string
}

// visualLine is one row of the visual line map: which logical line it
// belongs to and which chunk of that line it renders.
type visualLine struct {
	logicalLine int
	chunk       chunk
}

// graphemeBoundaries returns the byte offsets of every grapheme-cluster
// boundary in s, including 0 and len(s).
func graphemeBoundaries(s string) []int {
	bounds := []int{0}
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		bounds = append(bounds, pos)
	}
	return bounds
}

// prevGraphemeBoundary returns the start of the grapheme cluster ending
// at or before byte offset col.
func prevGraphemeBoundary(s string, col int) int {
	bounds := graphemeBoundaries(s)
	prev := 0
	for _, b := range bounds {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

// nextGraphemeBoundary returns the end of the grapheme cluster starting
// at or after byte offset col.
func nextGraphemeBoundary(s string, col int) int {
	bounds := graphemeBoundaries(s)
	for _, b := range bounds {
		if b > col {
			return b
		}
	}
	return len(s)
}

// graphemeWidth returns the visible column width of a single grapheme
// cluster: the width of its leading rune, since combining marks, variation
// selectors and zero-width joiners that follow it contribute no columns.
func graphemeWidth(cluster string) int {
	for _, r := range cluster {
		return runewidth.RuneWidth(r)
	}
	return 0
}

// visibleWidth sums the per-grapheme column widths of s.
func visibleWidth(s string) int {
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += graphemeWidth(cluster)
	}
	return width
}

// token is a maximal whitespace or non-whitespace run inside a logical
// line, used by the word-wrap tokenizer.
type token struct {
	start, end int
	isSpace    bool
}

func isSpaceGrapheme(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsSpace(r)
	}
	return false
}

// graphemeClass is the coarse classification used for word-motion and
// delete-word: a run is either whitespace, a "word" run (letters, digits,
// combining marks), or a punctuation/symbol run.
type graphemeClass int

const (
	classSpace graphemeClass = iota
	classWord
	classPunct
)

func classifyGrapheme(cluster string) graphemeClass {
	for _, r := range cluster {
		switch {
		case unicode.IsSpace(r):
			return classSpace
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			return classWord
		default:
			return classPunct
		}
	}
	return classSpace
}

// tokenize splits line into alternating whitespace/non-whitespace runs on
// grapheme-cluster boundaries, so multi-rune graphemes never get split
// across tokens.
func tokenize(line string) []token {
	bounds := graphemeBoundaries(line)
	if len(bounds) <= 1 {
		return nil
	}
	var tokens []token
	cur := token{start: 0, isSpace: isSpaceGrapheme(line[bounds[0]:bounds[1]])}
	for i := 0; i < len(bounds)-1; i++ {
		cluster := line[bounds[i]:bounds[i+1]]
		sp := isSpaceGrapheme(cluster)
		if sp != cur.isSpace {
			cur.end = bounds[i]
			tokens = append(tokens, cur)
			cur = token{start: bounds[i], isSpace: sp}
		}
	}
	cur.end = bounds[len(bounds)-1]
	tokens = append(tokens, cur)
	return tokens
}

// trimTrailingWhitespace trims Unicode whitespace from the end of s,
// grapheme-aware (though whitespace graphemes are always single runes in
// practice, this keeps the boundary consistent with the rest of layout).
func trimTrailingWhitespace(s string) string {
	bounds := graphemeBoundaries(s)
	end := len(s)
	for i := len(bounds) - 1; i > 0; i-- {
		cluster := s[bounds[i-1]:bounds[i]]
		if !isSpaceGrapheme(cluster) {
			break
		}
		end = bounds[i-1]
	}
	return s[:end]
}

// breakByWidth splits the byte range [start,end) of line into successive
// grapheme-boundary pieces whose visible width does not exceed contentWidth.
// Used when a single token is wider than the whole content area.
func breakByWidth(line string, start, end, contentWidth int) []chunk {
	if contentWidth < 1 {
		contentWidth = 1
	}
	var chunks []chunk
	bounds := graphemeBoundaries(line[start:end])
	pieceStart := start
	width := 0
	for i := 0; i < len(bounds)-1; i++ {
		cluster := line[start+bounds[i] : start+bounds[i+1]]
		w := graphemeWidth(cluster)
		if width+w > contentWidth && width > 0 {
			chunks = append(chunks, chunk{Start: pieceStart, End: start + bounds[i], Text: line[pieceStart : start+bounds[i]]})
			pieceStart = start + bounds[i]
			width = 0
		}
		width += w
	}
	chunks = append(chunks, chunk{Start: pieceStart, End: end, Text: line[pieceStart:end]})
	return chunks
}

// wrapLine produces the ordered chunk list for one logical line at the
// given content width, per §4.3 rules 1-5.
func wrapLine(line string, contentWidth int) []chunk {
	if contentWidth < 1 {
		contentWidth = 1
	}
	if line == "" {
		return []chunk{{Start: 0, End: 0, Text: ""}}
	}

	tokens := tokenize(line)
	var chunks []chunk
	chunkStart := 0
	width := 0
	isFirstChunk := true

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if width == 0 && !isFirstChunk && tok.isSpace {
			chunkStart = tok.end
			i++
			continue
		}

		tokText := line[tok.start:tok.end]
		tokWidth := visibleWidth(tokText)

		if tokWidth > contentWidth {
			if width > 0 {
				chunks = append(chunks, chunk{Start: chunkStart, End: tok.start, Text: trimTrailingWhitespace(line[chunkStart:tok.start])})
				isFirstChunk = false
			}
			pieces := breakByWidth(line, tok.start, tok.end, contentWidth)
			for pi := 0; pi < len(pieces)-1; pi++ {
				chunks = append(chunks, pieces[pi])
				isFirstChunk = false
			}
			last := pieces[len(pieces)-1]
			chunkStart = last.Start
			width = visibleWidth(line[chunkStart:tok.end])
			i++
			continue
		}

		if width+tokWidth > contentWidth {
			chunks = append(chunks, chunk{Start: chunkStart, End: tok.start, Text: trimTrailingWhitespace(line[chunkStart:tok.start])})
			chunkStart = tok.start
			width = 0
			isFirstChunk = false
			continue
		}

		width += tokWidth
		i++
	}

	chunks = append(chunks, chunk{Start: chunkStart, End: len(line), Text: line[chunkStart:]})
	return chunks
}

// buildVisualLines wraps every logical line in lines at contentWidth and
// concatenates the resulting chunks into the full visual line map.
func buildVisualLines(lines []string, contentWidth int) []visualLine {
	var out []visualLine
	for li, line := range lines {
		for _, c := range wrapLine(line, contentWidth) {
			out = append(out, visualLine{logicalLine: li, chunk: c})
		}
	}
	return out
}

// mapCursorToChunk finds which chunk in chunks (all chunks of one logical
// line, in order) contains col, and the display offset within that chunk's
// Text, per §4.3 "Cursor mapping".
func mapCursorToChunk(chunks []chunk, col int) (index, offset int) {
	for idx, c := range chunks {
		isLast := idx == len(chunks)-1
		if isLast {
			if col >= c.Start && col <= c.End {
				off := col - c.Start
				if off > len(c.Text) {
					off = len(c.Text)
				}
				return idx, off
			}
			continue
		}
		if col >= c.Start && col < c.End {
			off := col - c.Start
			if off > len(c.Text) {
				off = len(c.Text)
			}
			return idx, off
		}
	}
	last := len(chunks) - 1
	if last < 0 {
		return 0, 0
	}
	return last, len(chunks[last].Text)
}
