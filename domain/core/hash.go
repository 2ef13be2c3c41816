package core

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// TokenSize is the digest width of the pseudonymous token in bytes.
// 64 bits keeps collision probability negligible for survey-sized
// populations while staying short enough for spreadsheet cells.
const TokenSize = 8

// Token is a stable pseudonymous identifier: the lowercase-hex BLAKE2b
// digest of a raw personal identifier.
type Token string

// Anonymize maps a raw identifier to its Token. The input is trimmed of
// surrounding whitespace before hashing; the transform is keyless and
// deterministic across runs and platforms, so the same person yields
// the same token in every wave.
func Anonymize(rawID string) Token {
	h, err := blake2b.New(TokenSize, nil)
	if err != nil {
		// blake2b.New only fails for invalid sizes; TokenSize is fixed.
		panic(err)
	}
	h.Write([]byte(strings.TrimSpace(rawID)))
	return Token(hex.EncodeToString(h.Sum(nil)))
}

// String returns the string representation.
func (t Token) String() string {
	return string(t)
}

// IsEmpty checks if the token is empty.
func (t Token) IsEmpty() bool {
	return t == ""
}
