// Package idgen generates opaque public identifiers for API resources.
package idgen

import (
	"crypto/rand"
	"errors"
	"strings"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns an identifier of the form "<prefix>_<random>",
// where the random part is length characters drawn from [0-9a-z] using
// crypto/rand. Prefixes identify the resource kind (e.g. "cust", "lead").
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", errors.New("idgen: prefix must not be empty")
	}
	if length < 1 {
		return "", errors.New("idgen: length must be positive")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + length)
	sb.WriteString(prefix)
	sb.WriteByte('_')
	for _, b := range buf {
		sb.WriteByte(idAlphabet[int(b)%len(idAlphabet)])
	}
	return sb.String(), nil
}

// ValidateIDFormat reports whether id looks like a GenerateSecureID output
// with the given prefix.
func ValidateIDFormat(id, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(id, prefix+"_") {
		return false
	}
	suffix := id[len(prefix)+1:]
	if suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}
