// Package loader reads YAML fixture documents from disk for the CLI.
//
// Decoding itself lives in fixtree.FromYAML; this package adds the
// file-level concerns: reading, empty-document rejection, and error
// context carrying the file path.
package loader
