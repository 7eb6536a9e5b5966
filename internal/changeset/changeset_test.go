package changeset

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdproof/internal/gitscope"
	"mdproof/internal/markdown"
)

func TestAddress_LabelRoundTrip(t *testing.T) {
	addr := Address{File: "notes/today.md", Index: 7}
	label := addr.Label()
	assert.Equal(t, "@@S000007|notes/today.md@@", label)

	parsed, err := ParseLabel(label)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
}

func TestParseLabel_Rejects(t *testing.T) {
	// Unpadded indexes still parse; everything else is malformed.
	_, err := ParseLabel("@@S12|a.md@@")
	assert.NoError(t, err)

	for _, label := range []string{
		"",
		"S000001|a.md",     // missing sigils
		"@@X000001|a.md@@", // wrong tag
		"@@S00000a|a.md@@", // non-digit index
		"@@S000001|a@md@@", // sigil character in file
	} {
		_, err := ParseLabel(label)
		assert.Error(t, err, label)
	}
}

func buildDocs(t *testing.T, files map[string]string) []*markdown.Document {
	t.Helper()
	var docs []*markdown.Document
	for _, path := range sortedKeys(files) {
		docs = append(docs, markdown.Parse(path, []byte(files[path])))
	}
	return docs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestBuild_TwoSentenceParagraph(t *testing.T) {
	docs := buildDocs(t, map[string]string{
		"post.md": "这是第一句话。这是第二句话。\n",
	})
	records := Build(docs, nil)
	require.Len(t, records, 2)

	assert.Equal(t, Address{File: "post.md", Index: 0}, records[0].Address())
	assert.Equal(t, "这是第一句话。", records[0].Original)
	assert.Equal(t, Address{File: "post.md", Index: 1}, records[1].Address())
	assert.Equal(t, "这是第二句话。", records[1].Original)
}

func TestBuild_CodeBlockYieldsNoSentences(t *testing.T) {
	docs := buildDocs(t, map[string]string{
		"code.md": "```go\n// This comment ends with a period.\nfmt.Println(\"done.\")\n```\n",
	})
	assert.Empty(t, Build(docs, nil))
}

func TestBuild_AddressesUniqueAcrossBlocksAndFiles(t *testing.T) {
	docs := buildDocs(t, map[string]string{
		"a.md": "# 标题句。\n\n第一段第一句。第二句。\n\n- 列表项。\n",
		"b.md": "另一个文件的句子。\n",
	})
	records := Build(docs, nil)
	require.NotEmpty(t, records)

	seen := make(map[string]bool)
	for _, rec := range records {
		assert.False(t, seen[rec.Label], "duplicate label %s", rec.Label)
		seen[rec.Label] = true
		assert.Equal(t, DecisionPending, rec.Decision)
		assert.Equal(t, StatusUnchecked, rec.Status)
	}

	// Ordinals restart per document.
	assert.Equal(t, 0, records[0].Index)
	last := records[len(records)-1]
	assert.Equal(t, "b.md", last.File)
	assert.Equal(t, 0, last.Index)
}

func TestBuild_ScopeFiltersBlocksByLineOverlap(t *testing.T) {
	// Paragraph one occupies lines 1-3, paragraph two lines 5-9.
	src := "第一段第一行。\n第一段第二行。\n第一段第三行。\n\n第二段第一行。\n第二段第二行。\n第二段第三行。\n第二段第四行。\n第二段第五行。\n"
	docs := buildDocs(t, map[string]string{"doc.md": src})

	tests := []struct {
		name      string
		ranges    []gitscope.LineRange
		wantTexts []string
	}{
		{
			name:      "change below the paragraph",
			ranges:    []gitscope.LineRange{{Start: 10, End: 12}},
			wantTexts: nil,
		},
		{
			name:   "change inside the paragraph",
			ranges: []gitscope.LineRange{{Start: 5, End: 9}},
			wantTexts: []string{
				"第二段第一行。", "第二段第二行。", "第二段第三行。", "第二段第四行。", "第二段第五行。",
			},
		},
		{
			name:   "change straddling the end",
			ranges: []gitscope.LineRange{{Start: 9, End: 13}},
			wantTexts: []string{
				"第二段第一行。", "第二段第二行。", "第二段第三行。", "第二段第四行。", "第二段第五行。",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := &gitscope.Scope{Ranges: map[string][]gitscope.LineRange{
				"doc.md": tt.ranges,
			}}
			records := Build(docs, scope)
			var texts []string
			for _, rec := range records {
				texts = append(texts, rec.Original)
			}
			assert.Equal(t, tt.wantTexts, texts)
		})
	}
}

func TestWorkList_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.jsonl")
	records := []ChangeRecord{
		{
			Label:    "@@S000000|a.md@@",
			File:     "a.md",
			Index:    0,
			Original: "带有 `code` 和 <标记> 的句子。",
		},
		{
			Label:      "@@S000001|a.md@@",
			File:       "a.md",
			Index:      1,
			Original:   "跨行的\n句子。",
			Status:     StatusFlagged,
			Suggestion: "跨行的句子。",
			ErrorType:  "增删字",
		},
		{
			Label:      "@@S000000|b.md@@",
			File:       "b.md",
			Index:      0,
			Original:   "失败的句子。",
			Status:     StatusFailed,
			CheckError: "rate limited (429)",
		},
	}

	require.NoError(t, SaveWorkList(path, records))
	got, err := LoadWorkList(path)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		want := records[i]
		want.Decision = DecisionPending
		assert.Equal(t, want, got[i])
	}
}

func TestLoadWorkList_RejectsCorruptLines(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	_, err := LoadWorkList(write("garbage.jsonl", "{not json\n"))
	assert.Error(t, err)

	_, err = LoadWorkList(write("nolabel.jsonl", `{"file":"a.md","index":0,"original":"x"}`+"\n"))
	assert.Error(t, err)

	dup := `{"label":"@@S000000|a.md@@","file":"a.md","index":0,"original":"x"}` + "\n"
	_, err = LoadWorkList(write("dup.jsonl", dup+dup))
	assert.Error(t, err)

	_, err = LoadWorkList(filepath.Join(dir, "missing.jsonl"))
	assert.Error(t, err)
}
