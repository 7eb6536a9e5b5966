// Package ledger tracks human review decisions over a work list.
//
// Each flagged record moves through a one-shot state machine: pending, then
// accepted, edited, or skipped. The ledger's cursor — the next record
// awaiting a decision — is a pure function of the persisted decisions, so a
// suspended session resumes exactly where it stopped. State is stored as a
// YAML file keyed by the work list being reviewed.
package ledger
