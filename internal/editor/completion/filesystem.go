package completion

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const maxFileSuggestions = 50

// FileSource offers path completions by walking a root directory, skipping
// hidden entries and .git, and fuzzy-matching the remainder of the path
// against the query.
type FileSource struct {
	Root string
}

// Find returns up to maxFileSuggestions paths under s.Root whose relative
// path fuzzy-matches query, best score first.
func (s FileSource) Find(query string) []Item {
	type scored struct {
		item  Item
		score int
	}
	var matches []scored

	root := s.Root
	if root == "" {
		root = "."
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && name == "node_modules" {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		score, ok := FuzzyMatch(rel, query)
		if !ok {
			return nil
		}
		matches = append(matches, scored{Item{Text: rel}, score})
		if len(matches) > maxFileSuggestions*4 {
			return filepath.SkipAll
		}
		return nil
	})

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > maxFileSuggestions {
		matches = matches[:maxFileSuggestions]
	}
	items := make([]Item, len(matches))
	for i, m := range matches {
		items[i] = m.item
	}
	return items
}
