// Package shortid mints the public identifiers used as spec primary keys and
// share-link path segments.
package shortid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Size is the fixed identifier length.
	Size = 21
	// Alphabet is the URL-safe character set identifiers are drawn from.
	Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// New returns a random identifier backed by crypto/rand. Uniqueness is not
// checked; a collision surfaces as a primary-key violation on insert.
func New() (string, error) {
	return gonanoid.Generate(Alphabet, Size)
}

// Valid reports whether id has the shape of an identifier returned by New.
func Valid(id string) bool {
	if len(id) != Size {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !inAlphabet(id[i]) {
			return false
		}
	}
	return true
}

func inAlphabet(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
