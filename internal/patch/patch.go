package patch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"mdproof/internal/changeset"
	"mdproof/internal/workdir"
)

// ErrStaleMatch is returned when a record's original text no longer appears
// verbatim in the target file.
var ErrStaleMatch = errors.New("original text not found")

// ErrNotDecided is returned for records that are not accepted or edited.
var ErrNotDecided = errors.New("record has no applicable decision")

// Applier writes approved corrections back to the documents they came from.
type Applier struct {
	resolver workdir.Resolver
}

// New returns an applier that resolves record file hints through resolver.
func New(resolver workdir.Resolver) *Applier {
	return &Applier{resolver: resolver}
}

// Apply installs the record's final text over the first verbatim occurrence
// of its original text. Skipped and pending records are rejected: applying
// them must never mutate a file. The write replaces the file atomically, so
// a crash cannot leave a half-written document behind.
func (a *Applier) Apply(rec *changeset.ChangeRecord) error {
	switch rec.Decision {
	case changeset.DecisionAccepted, changeset.DecisionEdited:
	default:
		return fmt.Errorf("%s: %w (%s)", rec.Label, ErrNotDecided, rec.Decision)
	}

	final := rec.FinalText()
	if final == rec.Original {
		// Nothing to change; treat as a no-op rather than rewriting bytes.
		return nil
	}

	path, err := a.resolver.Resolve(rec.File)
	if err != nil {
		return fmt.Errorf("%s: %w", rec.Label, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: reading %s: %w", rec.Label, path, err)
	}
	content := string(data)

	idx := strings.Index(content, rec.Original)
	if idx < 0 {
		return fmt.Errorf("%s: %w in %s", rec.Label, ErrStaleMatch, path)
	}

	updated := content[:idx] + final + content[idx+len(rec.Original):]
	if err := atomic.WriteFile(path, strings.NewReader(updated)); err != nil {
		return fmt.Errorf("%s: writing %s: %w", rec.Label, path, err)
	}
	return nil
}
