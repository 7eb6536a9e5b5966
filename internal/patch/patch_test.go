package patch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdproof/internal/changeset"
	"mdproof/internal/workdir"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApply_AcceptedReplacesFirstOccurrence(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", "句子甲。句子乙。句子甲。\n")

	rec := changeset.ChangeRecord{
		Label:      "@@S000000|a.md@@",
		File:       "a.md",
		Original:   "句子甲。",
		Suggestion: "句子丙。",
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionAccepted,
	}
	applier := New(workdir.NewSearchResolver(dir))
	require.NoError(t, applier.Apply(&rec))

	assert.Equal(t, "句子丙。句子乙。句子甲。\n", readDoc(t, path),
		"only the first occurrence changes")
}

func TestApply_EditedUsesHumanText(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", "原始句子。\n")

	rec := changeset.ChangeRecord{
		Label:      "@@S000000|a.md@@",
		File:       "a.md",
		Original:   "原始句子。",
		Suggestion: "模型建议。",
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionEdited,
		Final:      "人工改写。",
	}
	require.NoError(t, New(workdir.NewSearchResolver(dir)).Apply(&rec))
	assert.Equal(t, "人工改写。\n", readDoc(t, path))
}

func TestApply_SkippedAndPendingNeverMutate(t *testing.T) {
	dir := t.TempDir()
	const content = "不应被修改的句子。\n"
	path := writeDoc(t, dir, "a.md", content)

	for _, d := range []changeset.Decision{changeset.DecisionSkipped, changeset.DecisionPending} {
		rec := changeset.ChangeRecord{
			Label:      "@@S000000|a.md@@",
			File:       "a.md",
			Original:   "不应被修改的句子。",
			Suggestion: "别的句子。",
			Status:     changeset.StatusFlagged,
			Decision:   d,
		}
		err := New(workdir.NewSearchResolver(dir)).Apply(&rec)
		assert.ErrorIs(t, err, ErrNotDecided, string(d))
		assert.Equal(t, content, readDoc(t, path))
	}
}

func TestApply_StaleMatchLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	const content = "文件已经被别人改过了。\n"
	path := writeDoc(t, dir, "a.md", content)

	rec := changeset.ChangeRecord{
		Label:      "@@S000000|a.md@@",
		File:       "a.md",
		Original:   "这句话已经不存在了。",
		Suggestion: "新句子。",
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionAccepted,
	}
	err := New(workdir.NewSearchResolver(dir)).Apply(&rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaleMatch))
	assert.Contains(t, err.Error(), rec.Label)
	assert.Equal(t, content, readDoc(t, path))
}

func TestApply_NoopWhenFinalEqualsOriginal(t *testing.T) {
	dir := t.TempDir()
	const content = "保持不变的句子。\n"
	path := writeDoc(t, dir, "a.md", content)

	rec := changeset.ChangeRecord{
		Label:      "@@S000000|a.md@@",
		File:       "a.md",
		Original:   "保持不变的句子。",
		Suggestion: "保持不变的句子。",
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionAccepted,
	}
	require.NoError(t, New(workdir.NewSearchResolver(dir)).Apply(&rec))
	assert.Equal(t, content, readDoc(t, path))
}

func TestApply_ResolvesByBaseName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	path := writeDoc(t, dir, filepath.Join("nested", "deep.md"), "嵌套句子。\n")

	rec := changeset.ChangeRecord{
		Label:      "@@S000000|deep.md@@",
		File:       "deep.md", // hint carries no directory
		Original:   "嵌套句子。",
		Suggestion: "改好的句子。",
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionAccepted,
	}
	require.NoError(t, New(workdir.NewSearchResolver(dir)).Apply(&rec))
	assert.Equal(t, "改好的句子。\n", readDoc(t, path))
}
