// Package proof runs the AI check phase over a work list.
//
// Sentences are checked strictly one at a time: each request carries exactly
// one sentence so the model's context stays small, and a configurable delay
// separates consecutive requests. The work list is persisted after every
// record, so an interrupted run resumes at the first unchecked record.
// Cancellation is cooperative and takes effect between sentences, never
// mid-request. A failed check is recorded on its record and the run
// continues; only authentication failures and persistence errors abort the
// whole phase.
package proof
