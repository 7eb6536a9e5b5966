// Package workdir manages the on-disk working directory that holds work
// lists and review progress files, and resolves document hints back to
// paths under the documents directory.
package workdir
