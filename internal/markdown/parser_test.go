package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(doc *Document) []Kind {
	out := make([]Kind, len(doc.Blocks))
	for i, b := range doc.Blocks {
		out[i] = b.Kind
	}
	return out
}

func TestParse_Classification(t *testing.T) {
	src := []byte(`---
title: demo
---

# Heading

First paragraph line one.
Line two of the same paragraph.

> quoted text.

- item one
- item two

| a | b |
|---|---|
| 1 | 2 |

` + "```go\n// A trailing period in a comment.\nfmt.Println()\n```\n")

	doc := Parse("demo.md", src)
	require.Equal(t, []Kind{
		FrontMatter,
		Heading,
		Paragraph,
		BlockQuote,
		ListItem,
		ListItem,
		Table,
		CodeBlock,
	}, kinds(doc))
}

func TestParse_SpansPartitionSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"mixed", "# Title\n\nA paragraph.\n\n```\ncode\n```\n\n- item\n"},
		{"no trailing newline", "# Title\n\ntext"},
		{"leading blank lines", "\n\n\nOnly paragraph.\n\n"},
		{"front matter", "---\na: 1\n---\nBody.\n"},
		{"thematic breaks", "one.\n\n---\n\ntwo.\n"},
		{"whitespace only", "  \n\t\n"},
		{"crlf", "# Title\r\n\r\nText.\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse("t.md", []byte(tt.src))
			var sb strings.Builder
			prev := 0
			for _, b := range doc.Blocks {
				require.Equal(t, prev, b.Span.Start, "spans must be contiguous")
				require.LessOrEqual(t, b.Content.Start, b.Content.End)
				sb.WriteString(doc.SpanText(b))
				prev = b.Span.End
			}
			require.Equal(t, len(tt.src), prev)
			require.Equal(t, tt.src, sb.String(), "concatenated spans must reproduce the source")
		})
	}
}

func TestParse_EmptySource(t *testing.T) {
	doc := Parse("empty.md", nil)
	assert.Empty(t, doc.Blocks)
}

func TestParse_WhitespaceOnlySource(t *testing.T) {
	doc := Parse("blank.md", []byte("  \n\n\t\n"))
	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	assert.Equal(t, Paragraph, b.Kind)
	assert.Equal(t, 0, b.Span.Start)
	assert.Equal(t, 6, b.Span.End)
	assert.Empty(t, doc.Text(b))
}

func TestParse_UnterminatedFenceExtendsToEOF(t *testing.T) {
	src := []byte("Intro.\n\n```python\nprint('x')\nstill code.\n")
	doc := Parse("t.md", src)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, Paragraph, doc.Blocks[0].Kind)
	code := doc.Blocks[1]
	assert.Equal(t, CodeBlock, code.Kind)
	assert.Equal(t, len(src), code.Span.End)
	assert.Contains(t, doc.Text(code), "still code.")
}

func TestParse_UnterminatedFrontMatterIsNotFrontMatter(t *testing.T) {
	doc := Parse("t.md", []byte("---\ntitle: x\nno closer here\n"))
	for _, b := range doc.Blocks {
		assert.NotEqual(t, FrontMatter, b.Kind)
	}
}

func TestParse_SetextHeading(t *testing.T) {
	doc := Parse("t.md", []byte("Title text\n====\n\nBody.\n"))
	require.GreaterOrEqual(t, len(doc.Blocks), 2)
	assert.Equal(t, Heading, doc.Blocks[0].Kind)
	assert.Equal(t, Paragraph, doc.Blocks[1].Kind)
}

func TestParse_IndentedCode(t *testing.T) {
	doc := Parse("t.md", []byte("Text.\n\n    indented code line.\n\nMore text.\n"))
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, CodeBlock, doc.Blocks[1].Kind)
}

func TestParse_ContentLineNumbers(t *testing.T) {
	src := []byte("# Title\n\n\nParagraph on line four.\nAnd line five.\n\n\n\nLast on line nine.\n")
	doc := Parse("t.md", src)
	require.Len(t, doc.Blocks, 3)

	para := doc.Blocks[1]
	assert.Equal(t, 4, para.StartLine)
	assert.Equal(t, 5, para.EndLine)

	last := doc.Blocks[2]
	assert.Equal(t, 9, last.StartLine)
	assert.Equal(t, 9, last.EndLine)
}

func TestParse_SeparatorLinesExcludedFromContent(t *testing.T) {
	src := []byte("First.\n\n\nSecond.\n")
	doc := Parse("t.md", src)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "First.\n", doc.Text(doc.Blocks[0]))
	assert.Equal(t, "First.\n\n\n", doc.SpanText(doc.Blocks[0]))
	assert.Equal(t, "Second.\n", doc.Text(doc.Blocks[1]))
}

func TestKind_Reviewable(t *testing.T) {
	reviewable := map[Kind]bool{
		FrontMatter: false,
		CodeBlock:   false,
		Table:       false,
		Heading:     false,
		Paragraph:   true,
		ListItem:    true,
		BlockQuote:  true,
	}
	for k, want := range reviewable {
		assert.Equal(t, want, k.Reviewable(), k.String())
	}
}
