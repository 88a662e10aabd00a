package completion

import "strings"

// Command is one registered slash-command a host exposes for completion.
type Command struct {
	Name        string
	Description string
}

// Engine is the default Provider: it serves slash-command completions from
// a static command list and file-path completions from a FileSource,
// dispatching on ctx.Kind the way the overlay is activated (§4.5).
type Engine struct {
	Commands []Command
	Files    FileSource
}

// NewEngine builds an Engine over the given command list, rooted at dir for
// file completions.
func NewEngine(commands []Command, dir string) *Engine {
	return &Engine{Commands: commands, Files: FileSource{Root: dir}}
}

func (e *Engine) Suggestions(ctx Context) ([]Item, bool) {
	switch ctx.Kind {
	case KindSlash:
		return e.slashSuggestions(ctx.Prefix)
	case KindFileRef, KindForcedFile:
		return e.fileSuggestions(ctx.Prefix)
	default:
		return nil, false
	}
}

func (e *Engine) slashSuggestions(prefix string) ([]Item, bool) {
	query := strings.TrimPrefix(prefix, "/")
	type scored struct {
		item  Item
		score int
	}
	var matches []scored
	for _, cmd := range e.Commands {
		score, ok := FuzzyMatch(cmd.Name, query)
		if !ok {
			continue
		}
		matches = append(matches, scored{Item{Text: "/" + cmd.Name, Description: cmd.Description}, score})
	}
	if len(matches) == 0 {
		return nil, false
	}
	items := make([]Item, 0, len(matches))
	best := matches
	for i := 0; i < len(best); i++ {
		for j := i + 1; j < len(best); j++ {
			if best[j].score > best[i].score {
				best[i], best[j] = best[j], best[i]
			}
		}
	}
	for _, m := range best {
		items = append(items, m.item)
	}
	return items, true
}

func (e *Engine) fileSuggestions(prefix string) ([]Item, bool) {
	query := strings.TrimPrefix(prefix, "@")
	items := e.Files.Find(query)
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Apply splices the chosen item into the buffer, replacing the
// prefix-length run ending at the cursor with the item's text (plus a
// trailing space for file references, so the user can keep typing).
func (e *Engine) Apply(ctx Context, item Item) ([]string, int, int) {
	lines := append([]string(nil), ctx.Lines...)
	line := lines[ctx.Line]
	start := ctx.Col - len(ctx.Prefix)
	if start < 0 {
		start = 0
	}
	replacement := item.Text
	if ctx.Kind != KindSlash {
		replacement += " "
	}
	newLine := line[:start] + replacement + line[ctx.Col:]
	lines[ctx.Line] = newLine
	return lines, ctx.Line, start + len(replacement)
}

// ShouldTriggerFileCompletion always defers to the generic Suggestions
// call for forced (Tab) activation outside any slash/file-ref context.
func (e *Engine) ShouldTriggerFileCompletion(ctx Context) bool { return false }
