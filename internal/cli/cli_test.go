package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdproof/internal/workdir"
)

func TestBuildOverrides(t *testing.T) {
	flagDocs, flagWorkDir, flagProvider, flagModel = "", "", "", ""
	assert.Empty(t, buildOverrides())

	flagDocs = "content"
	flagModel = "qwen2.5"
	t.Cleanup(func() { flagDocs, flagModel = "", "" })

	m := buildOverrides()
	assert.Equal(t, map[string]string{"docsDir": "content", "model": "qwen2.5"}, m)
}

func TestResolveWorkList(t *testing.T) {
	base := t.TempDir()
	d, err := workdir.New(base)
	require.NoError(t, err)

	// A stem resolves into the working directory, extension added.
	assert.Equal(t, filepath.Join(base, "demo.jsonl"), resolveWorkList(d, "demo"))
	assert.Equal(t, filepath.Join(base, "demo.jsonl"), resolveWorkList(d, "demo.jsonl"))

	// An existing file path wins over stem resolution.
	other := filepath.Join(t.TempDir(), "elsewhere.jsonl")
	require.NoError(t, os.WriteFile(other, []byte("{}\n"), 0o644))
	assert.Equal(t, other, resolveWorkList(d, other))
}
