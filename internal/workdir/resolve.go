package workdir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListMarkdownFiles returns every .md file under root, as sorted
// root-relative slash paths.
func ListMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing markdown files under %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// FilterFiles applies include/exclude glob patterns to slash-relative paths.
// An empty include list admits everything.
func FilterFiles(files, include, exclude []string) []string {
	var result []string
	for _, f := range files {
		if len(include) > 0 && !MatchesAny(f, include) {
			continue
		}
		if MatchesAny(f, exclude) {
			continue
		}
		result = append(result, f)
	}
	return result
}

// MatchesAny returns true if the path matches any of the given glob patterns.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean == pattern {
			continue
		}
		if dir, ok := strings.CutSuffix(clean, "/**"); ok {
			if strings.Contains("/"+path+"/", "/"+dir+"/") {
				return true
			}
			continue
		}
		matched, err = filepath.Match(clean, filepath.Base(path))
		if err == nil && matched {
			return true
		}
		matched, err = filepath.Match(clean, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Resolver maps a document hint from a work list record back to a real path.
// Front ends may implement this interactively; the core never prompts.
type Resolver interface {
	Resolve(hint string) (string, error)
}

// SearchResolver resolves hints against a documents directory: an exact
// relative path wins, otherwise a recursive search by base name must find
// exactly one match. Results are cached for the lifetime of the resolver.
type SearchResolver struct {
	Root  string
	cache map[string]string
}

// NewSearchResolver returns a resolver rooted at the documents directory.
func NewSearchResolver(root string) *SearchResolver {
	return &SearchResolver{Root: root, cache: make(map[string]string)}
}

// Resolve implements Resolver.
func (r *SearchResolver) Resolve(hint string) (string, error) {
	if p, ok := r.cache[hint]; ok {
		return p, nil
	}

	direct := filepath.Join(r.Root, filepath.FromSlash(hint))
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		r.cache[hint] = direct
		return direct, nil
	}

	base := filepath.Base(filepath.FromSlash(hint))
	var matches []string
	err := filepath.WalkDir(r.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == base {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching for %s under %s: %w", hint, r.Root, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("document %s not found under %s", hint, r.Root)
	case 1:
		r.cache[hint] = matches[0]
		return matches[0], nil
	default:
		return "", fmt.Errorf("document %s is ambiguous under %s: %s",
			hint, r.Root, strings.Join(matches, ", "))
	}
}
