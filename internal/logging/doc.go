// Package logging provides concrete implementations of the
// fixtree.Logger interface.
package logging
