package sentence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into the scanned text.
type Span struct {
	Start int
	End   int
}

// Scanner yields sentence spans from a block's text one at a time, in order.
// The zero value is not usable; use NewScanner. A scanner can be restarted
// with Reset.
type Scanner struct {
	text string
	pos  int
	span Span

	openTicks   int // inline code: length of the opening backtick run
	openDollars int // inline math: length of the opening dollar run
	linkDepth   int // parenthesis depth inside a link target
}

// NewScanner returns a scanner over text.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Reset rewinds the scanner to the start of the text.
func (s *Scanner) Reset() {
	s.pos = 0
	s.span = Span{}
	s.openTicks = 0
	s.openDollars = 0
	s.linkDepth = 0
}

// Span returns the span found by the last successful call to Next.
func (s *Scanner) Span() Span { return s.span }

// Text returns the sentence text found by the last successful call to Next.
func (s *Scanner) Text() string { return s.text[s.span.Start:s.span.End] }

// Next advances to the next sentence. It returns false when the remaining
// text is empty or whitespace-only.
func (s *Scanner) Next() bool {
	n := len(s.text)
	i := s.pos

	// Leading whitespace is a separator, recoverable from the original text.
	for i < n {
		r, w := utf8.DecodeRuneInString(s.text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += w
	}
	if i >= n {
		s.pos = n
		return false
	}
	start := i

	for i < n {
		r, w := utf8.DecodeRuneInString(s.text[i:])

		if r == '`' {
			run := runLen(s.text[i:], '`')
			switch {
			case s.openTicks == 0:
				s.openTicks = run
			case run == s.openTicks:
				s.openTicks = 0
			}
			i += run
			continue
		}
		if s.openTicks > 0 {
			i += w
			continue
		}
		if r == '$' {
			run := runLen(s.text[i:], '$')
			switch {
			// A dollar without a closing partner is plain text, as in
			// currency amounts.
			case s.openDollars == 0 && strings.Contains(s.text[i+run:], "$"):
				s.openDollars = run
			case run == s.openDollars:
				s.openDollars = 0
			}
			i += run
			continue
		}
		if s.openDollars > 0 {
			i += w
			continue
		}
		if s.linkDepth > 0 {
			switch r {
			case '(':
				s.linkDepth++
			case ')':
				s.linkDepth--
			}
			i += w
			continue
		}
		if r == ']' && i+1 < n && s.text[i+1] == '(' {
			s.linkDepth = 1
			i += 2
			continue
		}

		if isTerminal(r) {
			end, ok := s.boundary(i)
			if ok {
				s.span = Span{Start: start, End: end}
				s.pos = end
				return true
			}
			i = end
			continue
		}
		i += w
	}

	// No boundary: the rest is a single sentence, trailing whitespace
	// excluded.
	end := start + len(strings.TrimRightFunc(s.text[start:n], unicode.IsSpace))
	s.span = Span{Start: start, End: end}
	s.pos = n
	return true
}

// boundary consumes the punctuation run starting at a terminal rune: one or
// more terminals, then any closing quotes or brackets. It reports whether the
// run ends a sentence. Full-width punctuation ends a sentence outright;
// Western punctuation only before whitespace or end-of-text, so "3.14" and
// "v1.2.3" stay whole.
func (s *Scanner) boundary(i int) (end int, ok bool) {
	n := len(s.text)
	fullwidth := false
	for i < n {
		r, w := utf8.DecodeRuneInString(s.text[i:])
		if !isTerminal(r) {
			break
		}
		if isFullwidthTerminal(r) {
			fullwidth = true
		}
		i += w
	}
	for i < n {
		r, w := utf8.DecodeRuneInString(s.text[i:])
		if !isCloser(r) {
			break
		}
		if isFullwidthCloser(r) {
			fullwidth = true
		}
		i += w
	}
	if fullwidth || i >= n {
		return i, true
	}
	r, _ := utf8.DecodeRuneInString(s.text[i:])
	return i, unicode.IsSpace(r)
}

// Split returns all sentence spans of text.
func Split(text string) []Span {
	var spans []Span
	sc := NewScanner(text)
	for sc.Next() {
		spans = append(spans, sc.Span())
	}
	return spans
}

// Texts returns all sentences of text as strings.
func Texts(text string) []string {
	var out []string
	sc := NewScanner(text)
	for sc.Next() {
		out = append(out, sc.Text())
	}
	return out
}

func runLen(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func isFullwidthTerminal(r rune) bool {
	switch r {
	case '。', '！', '？':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case ')', ']', '}', '"', '\'', '）', '”', '’', '」', '』', '〉', '》':
		return true
	}
	return false
}

func isFullwidthCloser(r rune) bool {
	switch r {
	case '）', '”', '’', '」', '』', '〉', '》':
		return true
	}
	return false
}
