// Package output formats work-list status reports for display or machine
// consumption.
//
// Two formats are supported:
//   - text — human-readable terminal output (default)
//   - json — full structured JSON report
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Report]. [WriteReport] handles
// destination selection.
package output
