package editor

import (
	"regexp"
	"testing"

	"reapo/internal/editor/completion"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// stubProvider is a minimal Provider for exercising the overlay without
// pulling in the real command/filesystem sources.
type stubProvider struct {
	items map[string][]completion.Item
}

func (p *stubProvider) Suggestions(ctx completion.Context) ([]completion.Item, bool) {
	items, ok := p.items[ctx.Prefix]
	return items, ok && len(items) > 0
}

func (p *stubProvider) Apply(ctx completion.Context, item completion.Item) ([]string, int, int) {
	lines := append([]string(nil), ctx.Lines...)
	start := ctx.Col - len(ctx.Prefix)
	line := lines[ctx.Line]
	lines[ctx.Line] = line[:start] + item.Text + line[ctx.Col:]
	return lines, ctx.Line, start + len(item.Text)
}

func TestSlashCompletionActivatesAndApplies(t *testing.T) {
	m := New()
	m.SetAutocompleteProvider(&stubProvider{
		items: map[string][]completion.Item{
			"/he": {{Text: "/help"}, {Text: "/hello"}},
		},
	})

	m.HandleInput([]byte("/he"))
	if !m.IsShowingAutocomplete() {
		t.Fatalf("expected overlay to activate after typing /he")
	}

	var submitted string
	m.OnSubmit(func(s string) { submitted = s })

	m.HandleInput([]byte("\x1b[B")) // down arrow -> select next
	m.HandleInput([]byte("\r"))     // enter -> confirm + submit (slash kind)

	if submitted != "/hello" {
		t.Errorf("submitted = %q, want %q", submitted, "/hello")
	}
	if m.IsShowingAutocomplete() {
		t.Errorf("expected overlay to be inactive after confirm")
	}
}

func TestOverlayDeactivatesWhenSuggestionsEmpty(t *testing.T) {
	m := New()
	m.SetAutocompleteProvider(&stubProvider{
		items: map[string][]completion.Item{
			"/he": {{Text: "/help"}},
		},
	})
	m.HandleInput([]byte("/he"))
	if !m.IsShowingAutocomplete() {
		t.Fatalf("expected overlay active")
	}
	m.HandleInput([]byte("z")) // "/hez" has no entry in the stub -> empty suggestions
	if m.IsShowingAutocomplete() {
		t.Errorf("expected overlay to deactivate once suggestions go empty")
	}
}

func TestRenderWidthAlwaysExact(t *testing.T) {
	m := New()
	m.FocusSet(true)
	m.SetText("the quick brown fox jumps")
	for _, w := range []int{1, 2, 5, 10, 40} {
		for _, line := range m.Render(w) {
			if got := visibleWidth(stripANSI(line)); got != w {
				t.Errorf("width %d: line %q has visible width %d", w, line, got)
			}
		}
	}
}

func TestRoundTripSetTextGetText(t *testing.T) {
	m := New()
	m.SetText("a\r\nb\rc")
	if m.GetText() != "a\nb\nc" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "a\nb\nc")
	}
}
