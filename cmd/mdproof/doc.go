// Mdproof is a CLI for AI-assisted proofreading of Markdown documents.
//
// It splits documents into sentences, sends each sentence to an LLM provider
// for checking, and walks a human through the flagged suggestions before
// writing accepted corrections back to the files.
//
// Usage:
//
//	mdproof extract                  # build a work list from all documents
//	mdproof changed                  # build a work list from uncommitted changes
//	mdproof check <worklist>         # run the AI check, resumable
//	mdproof review show <worklist>   # inspect the next pending suggestion
//	mdproof review accept <worklist> # accept it (or edit / skip / reopen)
//	mdproof review apply <worklist>  # write decided corrections to the files
//	mdproof commit                   # stage and commit the documents directory
package main
