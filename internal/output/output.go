package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"mdproof/internal/changeset"
)

// Report summarizes a work list: per-status and per-decision counts plus the
// flagged items that still await a decision.
type Report struct {
	WorkList  string         `json:"worklist"`
	Files     []string       `json:"files"`
	Counts    StatusCounts   `json:"counts"`
	Decisions DecisionCounts `json:"decisions"`
	Pending   []Item         `json:"pending"`
}

type StatusCounts struct {
	Total     int `json:"total"`
	Unchecked int `json:"unchecked"`
	Clean     int `json:"clean"`
	Flagged   int `json:"flagged"`
	Failed    int `json:"failed"`
}

type DecisionCounts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Edited   int `json:"edited"`
	Skipped  int `json:"skipped"`
}

// Item is a flagged sentence awaiting a decision.
type Item struct {
	Label       string `json:"label"`
	File        string `json:"file"`
	Index       int    `json:"index"`
	Original    string `json:"original"`
	Suggestion  string `json:"suggestion"`
	ErrorType   string `json:"errorType,omitempty"`
	Description string `json:"description,omitempty"`
}

// BuildReport condenses records into a Report. Decision counts cover flagged
// records only; clean and failed records never reach the review phase.
func BuildReport(workList string, records []changeset.ChangeRecord) *Report {
	r := &Report{WorkList: workList}
	seen := make(map[string]bool)

	for _, rec := range records {
		if !seen[rec.File] {
			seen[rec.File] = true
			r.Files = append(r.Files, rec.File)
		}
		r.Counts.Total++
		switch rec.Status {
		case changeset.StatusUnchecked:
			r.Counts.Unchecked++
		case changeset.StatusClean:
			r.Counts.Clean++
		case changeset.StatusFailed:
			r.Counts.Failed++
		case changeset.StatusFlagged:
			r.Counts.Flagged++
			switch rec.Decision {
			case changeset.DecisionAccepted:
				r.Decisions.Accepted++
			case changeset.DecisionEdited:
				r.Decisions.Edited++
			case changeset.DecisionSkipped:
				r.Decisions.Skipped++
			default:
				r.Decisions.Pending++
				r.Pending = append(r.Pending, Item{
					Label:       rec.Label,
					File:        rec.File,
					Index:       rec.Index,
					Original:    rec.Original,
					Suggestion:  rec.Suggestion,
					ErrorType:   rec.ErrorType,
					Description: rec.Description,
				})
			}
		}
	}
	sort.Strings(r.Files)
	return r
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}
