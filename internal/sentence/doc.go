// Package sentence splits reviewable block text into sentence spans.
//
// Splitting is lossless: spans exclude inter-sentence whitespace, and
// concatenating the spans with the whitespace recovered from the original
// text reproduces the input exactly. Both Western terminal punctuation and
// full-width CJK equivalents end sentences; punctuation inside inline code,
// inline math, or a bracketed link target never does.
package sentence
