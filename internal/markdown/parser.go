package markdown

import (
	"strings"
)

// Parse reads src as Markdown and returns the document's block sequence.
// Parsing never fails: structurally ambiguous input (such as an unterminated
// code fence) is resolved by documented fallback rules.
func Parse(path string, src []byte) *Document {
	p := &parser{src: src, lines: splitLines(src)}
	p.run()

	doc := &Document{Path: path, Source: src, Blocks: p.blocks}
	attachSeparators(doc)
	return doc
}

// line is one source line. end includes the trailing newline, if any.
type line struct {
	start, end int
	num        int
}

type parser struct {
	src    []byte
	lines  []line
	i      int
	blocks []Block
}

func splitLines(src []byte) []line {
	var lines []line
	start := 0
	num := 1
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, line{start: start, end: i + 1, num: num})
			start = i + 1
			num++
		}
	}
	if start < len(src) {
		lines = append(lines, line{start: start, end: len(src), num: num})
	}
	return lines
}

// text returns the line's text without its line ending.
func (p *parser) text(i int) string {
	ln := p.lines[i]
	s := string(p.src[ln.start:ln.end])
	s = strings.TrimRight(s, "\n")
	s = strings.TrimRight(s, "\r")
	return s
}

func (p *parser) run() {
	if len(p.lines) == 0 {
		return
	}
	p.frontMatter()
	for p.i < len(p.lines) {
		text := p.text(p.i)
		switch {
		case isBlank(text):
			p.i++ // separator, attached to the nearest block afterwards
		case isThematicBreak(text):
			p.i++ // residual, same treatment as a blank separator
		case isFenceOpen(text):
			p.fencedCode()
		case isATXHeading(text):
			p.emit(Heading, p.i, p.i)
			p.i++
		case isQuoteLine(text):
			p.blockQuote()
		case p.isTableStart():
			p.table()
		case isListMarker(text):
			p.listItem()
		case indentWidth(text) >= 4:
			p.indentedCode()
		default:
			p.paragraph()
		}
	}
}

// frontMatter consumes a leading ----delimited region, if present. An
// unterminated opener is not front matter and is left for the main loop.
func (p *parser) frontMatter() {
	if strings.TrimRight(p.text(0), " \t") != "---" {
		return
	}
	for j := 1; j < len(p.lines); j++ {
		t := strings.TrimRight(p.text(j), " \t")
		if t == "---" || t == "..." {
			p.emit(FrontMatter, 0, j)
			p.i = j + 1
			return
		}
	}
}

func (p *parser) fencedCode() {
	open := p.text(p.i)
	marker, openLen := fenceMarker(open)
	start := p.i
	p.i++
	for p.i < len(p.lines) {
		if closesFence(p.text(p.i), marker, openLen) {
			p.emit(CodeBlock, start, p.i)
			p.i++
			return
		}
		p.i++
	}
	// Unterminated fence: the block extends to end-of-file.
	p.emit(CodeBlock, start, len(p.lines)-1)
}

func (p *parser) indentedCode() {
	start := p.i
	for p.i < len(p.lines) {
		t := p.text(p.i)
		if isBlank(t) || indentWidth(t) < 4 {
			break
		}
		p.i++
	}
	p.emit(CodeBlock, start, p.i-1)
}

func (p *parser) blockQuote() {
	start := p.i
	for p.i < len(p.lines) && isQuoteLine(p.text(p.i)) {
		p.i++
	}
	p.emit(BlockQuote, start, p.i-1)
}

func (p *parser) table() {
	start := p.i
	for p.i < len(p.lines) {
		t := p.text(p.i)
		if isBlank(t) || !strings.Contains(t, "|") {
			break
		}
		p.i++
	}
	p.emit(Table, start, p.i-1)
}

// listItem consumes one marker line and its continuation lines. Nested items
// begin their own block at the next marker line.
func (p *parser) listItem() {
	start := p.i
	p.i++
	for p.i < len(p.lines) {
		t := p.text(p.i)
		if isBlank(t) || isListMarker(t) || isATXHeading(t) ||
			isFenceOpen(t) || isQuoteLine(t) || isThematicBreak(t) || p.isTableStart() {
			break
		}
		p.i++
	}
	p.emit(ListItem, start, p.i-1)
}

func (p *parser) paragraph() {
	start := p.i
	p.i++
	for p.i < len(p.lines) {
		t := p.text(p.i)
		if isSetextUnderline(t) {
			// The whole run is a setext heading, underline included.
			p.emit(Heading, start, p.i)
			p.i++
			return
		}
		if isBlank(t) || isATXHeading(t) || isFenceOpen(t) || isQuoteLine(t) ||
			isListMarker(t) || isThematicBreak(t) || p.isTableStart() {
			break
		}
		p.i++
	}
	p.emit(Paragraph, start, p.i-1)
}

// emit appends a block covering lines [first, last]. Span is provisional;
// attachSeparators finalizes it.
func (p *parser) emit(kind Kind, first, last int) {
	cs := p.lines[first].start
	ce := p.lines[last].end
	p.blocks = append(p.blocks, Block{
		Kind:      kind,
		Content:   Span{Start: cs, End: ce},
		Span:      Span{Start: cs, End: ce},
		StartLine: p.lines[first].num,
		EndLine:   p.lines[last].num,
	})
}

// attachSeparators widens block spans so that, in order, they partition the
// source with no gaps: residual text between two blocks joins the preceding
// block's span, leading residual joins the first block, trailing residual the
// last. A source with no blocks at all gets a single empty paragraph so the
// partition invariant still holds.
func attachSeparators(doc *Document) {
	if len(doc.Blocks) == 0 {
		if len(doc.Source) > 0 {
			doc.Blocks = append(doc.Blocks, Block{
				Kind:    Paragraph,
				Span:    Span{Start: 0, End: len(doc.Source)},
				Content: Span{},
			})
		}
		return
	}
	for i := range doc.Blocks {
		if i == 0 {
			doc.Blocks[i].Span.Start = 0
		} else {
			doc.Blocks[i].Span.Start = doc.Blocks[i-1].Span.End
		}
		if i == len(doc.Blocks)-1 {
			doc.Blocks[i].Span.End = len(doc.Source)
		} else {
			doc.Blocks[i].Span.End = doc.Blocks[i+1].Content.Start
		}
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func indentWidth(text string) int {
	w := 0
	for _, r := range text {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

func isATXHeading(text string) bool {
	t := strings.TrimLeft(text, " ")
	if len(text)-len(t) > 3 {
		return false
	}
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	if n < 1 || n > 6 {
		return false
	}
	return n == len(t) || t[n] == ' ' || t[n] == '\t'
}

func isQuoteLine(text string) bool {
	t := strings.TrimLeft(text, " ")
	if len(text)-len(t) > 3 {
		return false
	}
	return strings.HasPrefix(t, ">")
}

func isFenceOpen(text string) bool {
	_, n := fenceMarker(text)
	return n >= 3
}

// fenceMarker returns the fence character and run length of a fence line,
// or (0, 0) when the line does not open a fence.
func fenceMarker(text string) (byte, int) {
	t := strings.TrimLeft(text, " ")
	if len(text)-len(t) > 3 || t == "" {
		return 0, 0
	}
	c := t[0]
	if c != '`' && c != '~' {
		return 0, 0
	}
	n := 0
	for n < len(t) && t[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	// An info string may follow the opening run, but a backtick fence's info
	// string cannot itself contain backticks.
	if c == '`' && strings.Contains(t[n:], "`") {
		return 0, 0
	}
	return c, n
}

func closesFence(text string, marker byte, openLen int) bool {
	t := strings.TrimSpace(text)
	if len(t) < openLen {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != marker {
			return false
		}
	}
	return true
}

func isListMarker(text string) bool {
	t := strings.TrimLeft(text, " \t")
	if t == "" {
		return false
	}
	if t[0] == '-' || t[0] == '*' || t[0] == '+' {
		return len(t) > 1 && (t[1] == ' ' || t[1] == '\t')
	}
	n := 0
	for n < len(t) && t[n] >= '0' && t[n] <= '9' {
		n++
	}
	if n == 0 || n > 9 || n >= len(t) {
		return false
	}
	if t[n] != '.' && t[n] != ')' {
		return false
	}
	return n+1 == len(t) || t[n+1] == ' ' || t[n+1] == '\t'
}

func isThematicBreak(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 3 {
		return false
	}
	c := t[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	count := 0
	for _, r := range t {
		switch {
		case byte(r) == c:
			count++
		case r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return count >= 3
}

// isSetextUnderline matches a heading underline directly below paragraph
// text. A run of dashes also matches isThematicBreak; inside a paragraph the
// setext reading wins, as in CommonMark.
func isSetextUnderline(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	c := t[0]
	if c != '=' && c != '-' {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != c {
			return false
		}
	}
	return true
}

// isTableStart reports whether the current line begins a pipe table: a row
// containing a pipe whose next line is a delimiter row.
func (p *parser) isTableStart() bool {
	if p.i >= len(p.lines) {
		return false
	}
	t := p.text(p.i)
	if !strings.Contains(t, "|") {
		return false
	}
	if p.i+1 >= len(p.lines) {
		return false
	}
	return isTableDelimiter(p.text(p.i + 1))
}

func isTableDelimiter(text string) bool {
	t := strings.TrimSpace(text)
	if !strings.Contains(t, "|") || !strings.Contains(t, "-") {
		return false
	}
	for _, r := range t {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
