// Package changeset turns parsed documents into an addressed work list.
//
// Every eligible sentence gets an Address (document path + ordinal index)
// and one ChangeRecord row that travels through the whole pipeline: the AI
// collaborator fills in a suggestion, the review ledger records the human
// decision, and the patch applier consumes the result. The work list is
// persisted as one JSON record per line so that text with embedded newlines
// or markup round-trips exactly and a partially checked file remains valid
// for resumption.
package changeset
