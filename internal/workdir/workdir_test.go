package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKey(t *testing.T) {
	a := HashKey("one")
	b := HashKey("two")
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashKey("one"), "hashing is deterministic")
}

func TestDirPaths(t *testing.T) {
	base := t.TempDir()
	d, err := New(base)
	require.NoError(t, err)

	wl := d.WorkListPath("20250101-120000")
	assert.Equal(t, filepath.Join(base, "20250101-120000.jsonl"), wl)

	p1 := d.ProgressPath(wl)
	p2 := d.ProgressPath(d.WorkListPath("other"))
	assert.True(t, filepath.Dir(p1) == base)
	assert.NotEqual(t, p1, p2, "different work lists get different progress files")
	assert.Equal(t, p1, d.ProgressPath(wl), "progress path is stable")
}

func TestStatsAndClear(t *testing.T) {
	base := t.TempDir()
	d, err := New(base)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(d.WorkListPath("a"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(d.WorkListPath("b"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(d.ProgressPath(d.WorkListPath("a")), []byte("worklist: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "unrelated.txt"), []byte("keep me"), 0o644))

	lists, err := d.ListWorkLists()
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	stats, err := d.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.WorkLists)
	assert.Equal(t, 1, stats.Progress)
	assert.Positive(t, stats.TotalBytes)

	require.NoError(t, d.Clear())
	stats, err = d.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.WorkLists)
	assert.Zero(t, stats.Progress)

	_, err = os.Stat(filepath.Join(base, "unrelated.txt"))
	assert.NoError(t, err, "clear must not touch unrelated files")
}

func TestListMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	mk := func(rel string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}
	mk("b.md")
	mk("a.md")
	mk("nested/c.md")
	mk("nested/skip.txt")
	mk(".git/hidden.md")

	files, err := ListMarkdownFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md", "nested/c.md"}, files)
}

func TestFilterFiles(t *testing.T) {
	files := []string{"a.md", "drafts/b.md", "nested/drafts/c.md", "nested/d.md", "e.txt"}

	got := FilterFiles(files, []string{"**/*.md"}, []string{"**/drafts/**"})
	assert.Equal(t, []string{"a.md", "nested/d.md"}, got)

	got = FilterFiles(files, nil, nil)
	assert.Equal(t, files, got, "no patterns admits everything")

	got = FilterFiles(files, []string{"nested/*.md"}, nil)
	assert.Equal(t, []string{"nested/d.md"}, got)
}

func TestSearchResolver(t *testing.T) {
	root := t.TempDir()
	mk := func(rel string) string {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
		return path
	}
	direct := mk("posts/today.md")
	unique := mk("archive/old.md")
	mk("one/dup.md")
	mk("two/dup.md")

	r := NewSearchResolver(root)

	got, err := r.Resolve("posts/today.md")
	require.NoError(t, err)
	assert.Equal(t, direct, got)

	got, err = r.Resolve("old.md")
	require.NoError(t, err)
	assert.Equal(t, unique, got)

	_, err = r.Resolve("nowhere.md")
	assert.Error(t, err)

	_, err = r.Resolve("dup.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}
