package ledger

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"mdproof/internal/changeset"
)

// Entry is one persisted decision.
type Entry struct {
	Decision changeset.Decision `yaml:"decision"`
	Final    string             `yaml:"final,omitempty"`
}

// state is the on-disk shape of a review session.
type state struct {
	WorkList  string           `yaml:"worklist"`
	Decisions map[string]Entry `yaml:"decisions"`
}

// Ledger holds the review decisions for one work list.
type Ledger struct {
	path      string
	workList  string
	decisions map[string]Entry
}

// Open loads the ledger state at path, or starts a fresh one if the file
// does not exist. An unreadable or mismatched state file is an error: that
// session cannot be resumed, though deleting the file allows a fresh run.
func Open(path, workListPath string) (*Ledger, error) {
	l := &Ledger{
		path:      path,
		workList:  workListPath,
		decisions: make(map[string]Entry),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("reading review progress %s: %w", path, err)
	}
	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("review progress %s is corrupt: %w", path, err)
	}
	if st.WorkList != "" && st.WorkList != workListPath {
		return nil, fmt.Errorf("review progress %s belongs to work list %s, not %s",
			path, st.WorkList, workListPath)
	}
	if st.Decisions != nil {
		l.decisions = st.Decisions
	}
	return l, nil
}

// Save persists the ledger state atomically.
func (l *Ledger) Save() error {
	data, err := yaml.Marshal(state{WorkList: l.workList, Decisions: l.decisions})
	if err != nil {
		return fmt.Errorf("encoding review progress: %w", err)
	}
	if err := atomic.WriteFile(l.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing review progress %s: %w", l.path, err)
	}
	return nil
}

// Hydrate copies persisted decisions onto the in-memory records.
func (l *Ledger) Hydrate(records []changeset.ChangeRecord) {
	for i := range records {
		if e, ok := l.decisions[records[i].Label]; ok {
			records[i].Decision = e.Decision
			records[i].Final = e.Final
		}
	}
}

// Next returns the index of the cursor: the first flagged record that is
// still pending. It never skips a pending record.
func (l *Ledger) Next(records []changeset.ChangeRecord) (int, bool) {
	for i := range records {
		if records[i].Status != changeset.StatusFlagged {
			continue
		}
		if l.StateOf(records[i].Label) == changeset.DecisionPending {
			return i, true
		}
	}
	return 0, false
}

// StateOf returns the persisted decision for label, or pending.
func (l *Ledger) StateOf(label string) changeset.Decision {
	if e, ok := l.decisions[label]; ok {
		return e.Decision
	}
	return changeset.DecisionPending
}

// FinalOf returns the human-supplied final text for an edited record.
func (l *Ledger) FinalOf(label string) string {
	return l.decisions[label].Final
}

// Decide records a one-shot decision for label. Deciding an already-decided
// record is an error; it must be reopened explicitly first.
func (l *Ledger) Decide(label string, d changeset.Decision, final string) error {
	switch d {
	case changeset.DecisionAccepted, changeset.DecisionSkipped:
	case changeset.DecisionEdited:
		if final == "" {
			return fmt.Errorf("editing %s requires replacement text", label)
		}
	default:
		return fmt.Errorf("invalid decision %q for %s", d, label)
	}
	if cur := l.StateOf(label); cur != changeset.DecisionPending {
		return fmt.Errorf("%s already decided (%s); reopen it first", label, cur)
	}
	if d != changeset.DecisionEdited {
		final = ""
	}
	l.decisions[label] = Entry{Decision: d, Final: final}
	return nil
}

// Reopen returns a decided record to pending.
func (l *Ledger) Reopen(label string) error {
	if l.StateOf(label) == changeset.DecisionPending {
		return fmt.Errorf("%s is not decided", label)
	}
	delete(l.decisions, label)
	return nil
}

// Counts summarizes decision states over the flagged records.
type Counts struct {
	Flagged  int
	Pending  int
	Accepted int
	Edited   int
	Skipped  int
}

// Count tallies the decisions across records.
func (l *Ledger) Count(records []changeset.ChangeRecord) Counts {
	var c Counts
	for i := range records {
		if records[i].Status != changeset.StatusFlagged {
			continue
		}
		c.Flagged++
		switch l.StateOf(records[i].Label) {
		case changeset.DecisionAccepted:
			c.Accepted++
		case changeset.DecisionEdited:
			c.Edited++
		case changeset.DecisionSkipped:
			c.Skipped++
		default:
			c.Pending++
		}
	}
	return c
}
