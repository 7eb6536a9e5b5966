// Package patch applies an approved correction back to its source file.
//
// Only the first verbatim occurrence of the original sentence is replaced; a
// sentence that repeats elsewhere in the file resolves to the first match.
// This is a documented limitation carried over from the tool's lineage. When
// the original text no longer appears — the file was edited externally since
// parsing — the apply fails with ErrStaleMatch and the file is left
// untouched.
package patch
