// Package gitscope computes which lines of which files changed in the
// uncommitted working tree of a documents directory, by shelling out to git.
//
// The result is a Scope: per-file added or modified line ranges, used as a
// filter predicate when building a change set. A directory that is not a git
// repository, or one with no pending changes, is reported with the sentinel
// errors ErrNotRepo and ErrNoChanges so callers can tell an advisory apart
// from a valid empty scope.
package gitscope
