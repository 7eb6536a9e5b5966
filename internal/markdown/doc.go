// Package markdown parses a Markdown document into an ordered sequence of
// typed blocks, each classified as reviewable prose or excluded content.
//
// Block spans partition the source exactly: concatenating them in order
// reproduces the file byte-for-byte. Separator lines (blank lines, thematic
// breaks) are attached to the span of the nearest block but excluded from its
// content range, so sentence segmentation only ever sees prose.
//
// An unterminated code fence extends to end-of-file. This is a documented
// limitation, not an error.
package markdown
