package changeset

// Status tracks how far a record has moved through the AI check phase.
type Status string

const (
	// StatusUnchecked: the record has not been sent to the model yet.
	StatusUnchecked Status = ""
	// StatusClean: the model reported no correction needed.
	StatusClean Status = "clean"
	// StatusFlagged: the model suggested a correction.
	StatusFlagged Status = "flagged"
	// StatusFailed: the model call failed after retries; CheckError holds
	// the reason.
	StatusFailed Status = "failed"
)

// Decision is the human reviewer's verdict on a flagged record.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionEdited   Decision = "edited"
	DecisionSkipped  Decision = "skipped"
)

// ChangeRecord is one row of proofreading work.
//
// It is created by Build with only the original text, enriched by the check
// phase with a suggestion or clean verdict, and decided on by the review
// ledger. Decision state lives in the ledger's own persistence; the fields
// here mirror it in memory for the patch applier.
type ChangeRecord struct {
	Label       string `json:"label"`
	File        string `json:"file"`
	Index       int    `json:"index"`
	Original    string `json:"original"`
	Status      Status `json:"status,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
	ErrorType   string `json:"error_type,omitempty"`
	Description string `json:"description,omitempty"`
	CheckError  string `json:"check_error,omitempty"`

	Decision Decision `json:"-"`
	Final    string   `json:"-"`
}

// Address returns the record's parsed address.
func (r *ChangeRecord) Address() Address {
	return Address{File: r.File, Index: r.Index}
}

// FinalText returns the text the patch applier should install: the human
// edit if one was made, otherwise the suggestion for an accepted record,
// otherwise the original.
func (r *ChangeRecord) FinalText() string {
	switch r.Decision {
	case DecisionEdited:
		return r.Final
	case DecisionAccepted:
		return r.Suggestion
	default:
		return r.Original
	}
}
