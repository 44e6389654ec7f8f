package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
)

// Names of the supported hashers.
const (
	HasherSHA256   = "sha256"
	HasherArgon2id = "argon2id"
)

// ErrUnknownHasher is returned by New for an unsupported hasher name.
var ErrUnknownHasher = errors.New("unknown secret hasher")

// Hasher derives the stored value of a secret and checks plaintexts against it.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) (bool, error)
}

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch name {
	case HasherSHA256, "":
		return SHA256{}, nil
	case HasherArgon2id:
		return Argon2id{Params: argon2id.DefaultParams}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// argon2idPrefix starts every hash produced by Argon2id.
const argon2idPrefix = "$argon2id$"

// Verify checks plaintext against a value stored by either hasher. Values in
// argon2id PHC format are compared with Argon2id, everything else as SHA256.
func Verify(plaintext, hashed string) (bool, error) {
	if strings.HasPrefix(hashed, argon2idPrefix) {
		return Argon2id{}.Verify(plaintext, hashed)
	}

	return SHA256{}.Verify(plaintext, hashed)
}

// SHA256 stores the base64 encoded SHA-256 digest of the plaintext, the format
// the authorization server compares client secrets with.
type SHA256 struct{}

// Hash implements Hasher.
func (SHA256) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Verify implements Hasher.
func (h SHA256) Verify(plaintext, hashed string) (bool, error) {
	expected, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hashed)) == 1, nil
}

// Argon2id stores a salted argon2id hash in PHC string format.
type Argon2id struct {
	Params *argon2id.Params
}

// Hash implements Hasher.
func (h Argon2id) Hash(plaintext string) (string, error) {
	params := h.Params
	if params == nil {
		params = argon2id.DefaultParams
	}

	hashed, err := argon2id.CreateHash(plaintext, params)
	if err != nil {
		return "", fmt.Errorf("argon2id: %w", err)
	}

	return hashed, nil
}

// Verify implements Hasher.
func (Argon2id) Verify(plaintext, hashed string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(plaintext, hashed)
	if err != nil {
		return false, fmt.Errorf("argon2id: %w", err)
	}

	return ok, nil
}
