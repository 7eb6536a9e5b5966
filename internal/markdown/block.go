package markdown

// Kind identifies the structural form of a block.
type Kind int

const (
	FrontMatter Kind = iota
	CodeBlock
	Table
	Heading
	Paragraph
	ListItem
	BlockQuote
)

// String returns the block kind name.
func (k Kind) String() string {
	switch k {
	case FrontMatter:
		return "frontmatter"
	case CodeBlock:
		return "code"
	case Table:
		return "table"
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	case ListItem:
		return "listitem"
	case BlockQuote:
		return "blockquote"
	default:
		return "unknown"
	}
}

// Reviewable reports whether blocks of this kind are eligible for
// proofreading. Front matter, code, tables and headings are excluded by
// policy; paragraphs, list items and block quotes are prose.
func (k Kind) Reviewable() bool {
	switch k {
	case Paragraph, ListItem, BlockQuote:
		return true
	case FrontMatter, CodeBlock, Table, Heading:
		return false
	default:
		return false
	}
}

// Span is a half-open byte range [Start, End) into a document's source.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Block is one structural unit of a parsed document.
//
// Span covers the block plus any separator lines attached to it; the Spans of
// a document's blocks partition the source exactly. Content is the sub-range
// holding the block's own text, which is what sentence segmentation operates
// on. StartLine and EndLine are the 1-based source lines of the content
// range, used for diff-scope overlap checks.
type Block struct {
	Kind      Kind
	Span      Span
	Content   Span
	StartLine int
	EndLine   int
}

// Document is one parsed Markdown file. It is immutable after Parse; any
// on-disk mutation invalidates the Document and requires a re-parse.
type Document struct {
	Path   string
	Source []byte
	Blocks []Block
}

// Text returns the content text of b as a string.
func (d *Document) Text(b Block) string {
	return string(d.Source[b.Content.Start:b.Content.End])
}

// SpanText returns the full span text of b, separators included.
func (d *Document) SpanText(b Block) string {
	return string(d.Source[b.Span.Start:b.Span.End])
}
