package output

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter outputs a human-readable status report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("Work list: %s\n", report.WorkList)
	ew.printf("Files: %d\n", len(report.Files))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Sentences: %d total", report.Counts.Total)
	if report.Counts.Total > 0 {
		ew.printf(" (%d unchecked, %d clean, %d flagged, %d failed)",
			report.Counts.Unchecked,
			report.Counts.Clean,
			report.Counts.Flagged,
			report.Counts.Failed,
		)
	}
	ew.println("")

	if report.Counts.Flagged > 0 {
		ew.printf("Decisions: %d pending, %d accepted, %d edited, %d skipped\n",
			report.Decisions.Pending,
			report.Decisions.Accepted,
			report.Decisions.Edited,
			report.Decisions.Skipped,
		)
	}
	ew.println(strings.Repeat("─", 60))

	if report.Counts.Total == 0 {
		ew.println("\nNothing to review.")
		return ew.err
	}
	if report.Counts.Flagged == 0 && report.Counts.Unchecked == 0 && report.Counts.Failed == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	for _, item := range report.Pending {
		ew.printf("\n%s  (%s #%d)\n", item.Label, item.File, item.Index)
		if item.ErrorType != "" {
			ew.printf("  [%s] %s\n", item.ErrorType, item.Description)
		}
		ew.printf("  - %s\n", item.Original)
		ew.printf("  + %s\n", item.Suggestion)
	}

	return ew.err
}

// errWriter accumulates the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
