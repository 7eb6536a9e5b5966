package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdproof/internal/changeset"
)

func flagged(label string) changeset.ChangeRecord {
	return changeset.ChangeRecord{
		Label:      label,
		Status:     changeset.StatusFlagged,
		Decision:   changeset.DecisionPending,
		Original:   "原句。",
		Suggestion: "改句。",
	}
}

func testRecords() []changeset.ChangeRecord {
	return []changeset.ChangeRecord{
		{Label: "@@S000000|a.md@@", Status: changeset.StatusClean, Decision: changeset.DecisionPending},
		flagged("@@S000001|a.md@@"),
		flagged("@@S000002|a.md@@"),
		{Label: "@@S000003|a.md@@", Status: changeset.StatusFailed, Decision: changeset.DecisionPending},
		flagged("@@S000000|b.md@@"),
	}
}

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "x.progress.yaml"), "x.jsonl")
	require.NoError(t, err)
	return l
}

func TestNext_SkipsCleanAndFailed(t *testing.T) {
	l := openTestLedger(t)
	records := testRecords()

	i, ok := l.Next(records)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestDecide_AdvancesCursorInOrder(t *testing.T) {
	l := openTestLedger(t)
	records := testRecords()

	require.NoError(t, l.Decide("@@S000001|a.md@@", changeset.DecisionAccepted, ""))
	i, ok := l.Next(records)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	require.NoError(t, l.Decide("@@S000002|a.md@@", changeset.DecisionSkipped, ""))
	i, ok = l.Next(records)
	require.True(t, ok)
	assert.Equal(t, 4, i)

	require.NoError(t, l.Decide("@@S000000|b.md@@", changeset.DecisionEdited, "人工改写。"))
	_, ok = l.Next(records)
	assert.False(t, ok)

	c := l.Count(records)
	assert.Equal(t, Counts{Flagged: 3, Accepted: 1, Skipped: 1, Edited: 1}, c)
}

func TestDecide_IsOneShot(t *testing.T) {
	l := openTestLedger(t)

	require.NoError(t, l.Decide("@@S000001|a.md@@", changeset.DecisionAccepted, ""))
	err := l.Decide("@@S000001|a.md@@", changeset.DecisionSkipped, "")
	assert.Error(t, err)
	assert.Equal(t, changeset.DecisionAccepted, l.StateOf("@@S000001|a.md@@"))
}

func TestDecide_Validation(t *testing.T) {
	l := openTestLedger(t)

	assert.Error(t, l.Decide("@@S000001|a.md@@", changeset.DecisionEdited, ""))
	assert.Error(t, l.Decide("@@S000001|a.md@@", changeset.DecisionPending, ""))
	assert.Error(t, l.Decide("@@S000001|a.md@@", changeset.Decision("bogus"), ""))

	// Final text is only kept for edits.
	require.NoError(t, l.Decide("@@S000001|a.md@@", changeset.DecisionAccepted, "ignored"))
	assert.Empty(t, l.FinalOf("@@S000001|a.md@@"))
}

func TestReopen(t *testing.T) {
	l := openTestLedger(t)
	records := testRecords()

	assert.Error(t, l.Reopen("@@S000001|a.md@@"), "pending records cannot be reopened")

	require.NoError(t, l.Decide("@@S000001|a.md@@", changeset.DecisionAccepted, ""))
	require.NoError(t, l.Reopen("@@S000001|a.md@@"))

	i, ok := l.Next(records)
	require.True(t, ok)
	assert.Equal(t, 1, i, "reopened record becomes the cursor again")
}

func TestSaveOpen_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.progress.yaml")

	l, err := Open(path, "x.jsonl")
	require.NoError(t, err)
	require.NoError(t, l.Decide("@@S000001|a.md@@", changeset.DecisionEdited, "人工改写。"))
	require.NoError(t, l.Decide("@@S000002|a.md@@", changeset.DecisionSkipped, ""))
	require.NoError(t, l.Save())

	reloaded, err := Open(path, "x.jsonl")
	require.NoError(t, err)
	assert.Equal(t, changeset.DecisionEdited, reloaded.StateOf("@@S000001|a.md@@"))
	assert.Equal(t, "人工改写。", reloaded.FinalOf("@@S000001|a.md@@"))
	assert.Equal(t, changeset.DecisionSkipped, reloaded.StateOf("@@S000002|a.md@@"))

	records := testRecords()
	reloaded.Hydrate(records)
	assert.Equal(t, changeset.DecisionEdited, records[1].Decision)
	assert.Equal(t, "人工改写。", records[1].Final)
	assert.Equal(t, "人工改写。", records[1].FinalText())
}

func TestOpen_RejectsMismatchedWorkList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.progress.yaml")

	l, err := Open(path, "x.jsonl")
	require.NoError(t, err)
	require.NoError(t, l.Save())

	_, err = Open(path, "other.jsonl")
	assert.Error(t, err)
}

func TestOpen_RejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.progress.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\t- tabs cannot start a yaml token"), 0o644))

	_, err := Open(path, "x.jsonl")
	assert.Error(t, err)
}
