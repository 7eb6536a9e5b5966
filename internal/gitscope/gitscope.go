package gitscope

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNotRepo is returned when the target directory is not inside a git
// repository.
var ErrNotRepo = errors.New("not a git repository")

// ErrNoChanges is returned when the working tree has no added or modified
// lines to scope. It is an advisory, distinct from a computed-but-empty
// scope.
var ErrNoChanges = errors.New("no uncommitted changes")

// LineRange is an inclusive range of 1-based line numbers.
type LineRange struct {
	Start int
	End   int
}

// Scope maps file paths, relative to the scoped directory, to their changed
// line ranges.
type Scope struct {
	Ranges map[string][]LineRange
}

// Overlaps reports whether any changed range of path intersects the
// inclusive line range [startLine, endLine] by at least one line.
func (s Scope) Overlaps(path string, startLine, endLine int) bool {
	for _, lr := range s.Ranges[filepath.ToSlash(path)] {
		if startLine <= lr.End && endLine >= lr.Start {
			return true
		}
	}
	return false
}

// Files returns the paths with at least one changed range, unordered.
func (s Scope) Files() []string {
	files := make([]string, 0, len(s.Ranges))
	for f := range s.Ranges {
		files = append(files, f)
	}
	return files
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata for dir.
func GetRepoMeta(dir string) (RepoMeta, error) {
	root, err := gitOutput(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("%w: %s", ErrNotRepo, dir)
	}
	head, err := gitOutput(dir, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Changes returns the added/modified line ranges of the working tree of dir
// relative to HEAD. Untracked (but not ignored) files count as fully added.
// Deleted-only hunks contribute nothing. Paths are keyed relative to dir,
// matching ls-files output, so scoping works when dir is a subdirectory of
// its repository.
func Changes(dir string) (Scope, error) {
	if _, err := gitOutput(dir, "rev-parse", "--show-toplevel"); err != nil {
		return Scope{}, fmt.Errorf("%w: %s", ErrNotRepo, dir)
	}

	scope := Scope{Ranges: make(map[string][]LineRange)}

	diff, err := gitOutput(dir, "diff", "--relative", "HEAD", "-U0")
	if err != nil {
		// HEAD may not exist yet in a fresh repository; untracked files
		// below still count.
		diff = ""
	}
	parseUnifiedDiff(diff, scope.Ranges)

	untracked, err := gitOutput(dir, "ls-files", "--others", "--exclude-standard")
	if err == nil {
		for _, f := range strings.Split(strings.TrimSpace(untracked), "\n") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			n, err := countFileLines(filepath.Join(dir, f))
			if err != nil || n == 0 {
				continue
			}
			scope.Ranges[f] = append(scope.Ranges[f], LineRange{Start: 1, End: n})
		}
	}

	if len(scope.Ranges) == 0 {
		return Scope{}, ErrNoChanges
	}
	return scope, nil
}

// parseUnifiedDiff extracts the new-side line ranges from hunk headers.
func parseUnifiedDiff(diff string, ranges map[string][]LineRange) {
	var current string
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			current = ""
		case strings.HasPrefix(line, "+++ b/"):
			current = strings.TrimPrefix(line, "+++ b/")
		case strings.HasPrefix(line, "+++ /dev/null"):
			current = "" // deletion, no new side
		case strings.HasPrefix(line, "@@") && current != "":
			if lr, ok := parseHunkHeader(line); ok {
				ranges[current] = append(ranges[current], lr)
			}
		}
	}
}

// parseHunkHeader reads the "+start,count" part of "@@ -a,b +c,d @@".
// A zero count marks a deletion-only hunk and is skipped.
func parseHunkHeader(line string) (LineRange, bool) {
	fields := strings.Fields(line)
	for _, f := range fields {
		if !strings.HasPrefix(f, "+") {
			continue
		}
		spec := strings.TrimPrefix(f, "+")
		start, count := spec, "1"
		if idx := strings.Index(spec, ","); idx >= 0 {
			start, count = spec[:idx], spec[idx+1:]
		}
		s, err := strconv.Atoi(start)
		if err != nil {
			return LineRange{}, false
		}
		c, err := strconv.Atoi(count)
		if err != nil {
			return LineRange{}, false
		}
		if c == 0 {
			return LineRange{}, false
		}
		return LineRange{Start: s, End: s + c - 1}, true
	}
	return LineRange{}, false
}

func countFileLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}

// HasPendingChanges reports whether the working tree of dir has anything to
// commit.
func HasPendingChanges(dir string) (bool, error) {
	out, err := gitOutput(dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAll stages every change in dir and commits with message.
func CommitAll(dir, message string) error {
	if _, err := gitOutput(dir, "add", "."); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if _, err := gitOutput(dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
