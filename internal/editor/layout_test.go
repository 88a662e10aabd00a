package editor

import "testing"

func TestWrapLineBasic(t *testing.T) {
	chunks := wrapLine("the quick brown fox", 10)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "the quick" {
		t.Errorf("chunk 0 text = %q, want %q", chunks[0].Text, "the quick")
	}
	if chunks[1].Text != "brown fox" {
		t.Errorf("chunk 1 text = %q, want %q", chunks[1].Text, "brown fox")
	}
}

func TestWrapLineEmpty(t *testing.T) {
	chunks := wrapLine("", 10)
	if len(chunks) != 1 || chunks[0].Text != "" {
		t.Fatalf("empty line should map to one empty chunk, got %+v", chunks)
	}
}

func TestWrapLineLongToken(t *testing.T) {
	chunks := wrapLine("supercalifragilisticexpialidocious", 10)
	if len(chunks) < 4 {
		t.Fatalf("expected the long token to be broken into multiple pieces, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if w := visibleWidth(c.Text); w > 10 {
			t.Errorf("chunk %q has width %d > 10", c.Text, w)
		}
	}
}

func TestVisibleWidthWide(t *testing.T) {
	if w := visibleWidth("中"); w != 2 {
		t.Errorf("visibleWidth(中) = %d, want 2", w)
	}
	if w := visibleWidth("a"); w != 1 {
		t.Errorf("visibleWidth(a) = %d, want 1", w)
	}
}

func TestGraphemeBoundariesFamilyEmoji(t *testing.T) {
	s := "👨‍👩‍👧"
	bounds := graphemeBoundaries(s)
	if len(bounds) != 2 {
		t.Fatalf("family emoji should be a single grapheme cluster, got bounds %v (len %d)", bounds, len(s))
	}
}

func TestMapCursorToChunkLastChunkInclusive(t *testing.T) {
	chunks := wrapLine("the quick brown fox", 10)
	idx, offset := mapCursorToChunk(chunks, len("the quick brown fox"))
	if idx != 1 {
		t.Fatalf("expected cursor on chunk 1, got %d", idx)
	}
	if offset != len(chunks[1].Text) {
		t.Errorf("expected offset at end of last chunk, got %d (chunk text %q)", offset, chunks[1].Text)
	}
}
