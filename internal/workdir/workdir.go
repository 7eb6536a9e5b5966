package workdir

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// WorkListExt is the file extension for serialized work lists.
const WorkListExt = ".jsonl"

// ProgressExt is the file extension for review progress files.
const ProgressExt = ".progress.yaml"

// Dir is the working directory holding work lists and progress state.
type Dir struct {
	path string
}

// New opens (creating if needed) the working directory at path. An empty
// path selects the platform default.
func New(path string) (Dir, error) {
	if path == "" {
		d, err := defaultDir()
		if err != nil {
			return Dir{}, err
		}
		path = d
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Dir{}, fmt.Errorf("creating work directory: %w", err)
	}
	return Dir{path: path}, nil
}

// Path returns the directory path.
func (d Dir) Path() string { return d.path }

// WorkListPath returns the path for a work list named stem.
func (d Dir) WorkListPath(stem string) string {
	return filepath.Join(d.path, stem+WorkListExt)
}

// ProgressPath returns the progress file path for the given work list,
// keyed by a hash of the work list's absolute path so sessions on different
// lists never collide.
func (d Dir) ProgressPath(workListPath string) string {
	abs, err := filepath.Abs(workListPath)
	if err != nil {
		abs = workListPath
	}
	return filepath.Join(d.path, HashKey(abs)[:16]+ProgressExt)
}

// ListWorkLists returns the work list files in the directory, sorted.
func (d Dir) ListWorkLists() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("reading work directory: %w", err)
	}
	var lists []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), WorkListExt) {
			continue
		}
		lists = append(lists, filepath.Join(d.path, e.Name()))
	}
	sort.Strings(lists)
	return lists, nil
}

// Stats describes the directory contents.
type Stats struct {
	Dir        string `json:"dir"`
	WorkLists  int    `json:"workLists"`
	Progress   int    `json:"progress"`
	TotalBytes int64  `json:"totalBytes"`
}

// GetStats returns information about the working directory.
func (d Dir) GetStats() (Stats, error) {
	stats := Stats{Dir: d.path}
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading work directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), WorkListExt):
			stats.WorkLists++
		case strings.HasSuffix(e.Name(), ProgressExt):
			stats.Progress++
		default:
			continue
		}
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// Clear removes all work lists and progress files.
func (d Dir) Clear() error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading work directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), WorkListExt) || strings.HasSuffix(e.Name(), ProgressExt) {
			if err := os.Remove(filepath.Join(d.path, e.Name())); err != nil {
				return fmt.Errorf("removing %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

// HashKey creates a SHA-256 hash of the given key material.
func HashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}

func defaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdproof"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "mdproof"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "mdproof"), nil
		}
		return filepath.Join(home, "AppData", "Local", "mdproof"), nil
	default:
		return filepath.Join(home, ".local", "share", "mdproof"), nil
	}
}
