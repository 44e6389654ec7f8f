// Package secret derives the stored form of client secrets and generates new plaintexts.
//
// A plaintext is shown to its owner exactly once. Only the output of a Hasher is persisted.
package secret
