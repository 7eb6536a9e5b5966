// Package cli wires the mdproof command tree.
//
// Exit codes are deterministic: 0 success, 1 advisory (nothing to do, or
// work remains after an interrupted or partial run), 2 usage error, 3
// authentication error, 4 runtime error. Command handlers set the process
// exit code through the shared exitCode variable; [Run] returns it.
package cli
