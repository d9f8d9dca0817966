package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with the cost used for all stored credentials.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at bcrypt's default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash returns a salted bcrypt hash of plaintext. Two calls with the same
// input produce different hashes; compare with Verify, never with equality.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed hash
// is a verification failure, not an error.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// dummyHash is a valid bcrypt hash of an unguessable value. Login runs a
// compare against it when the username does not resolve, so the
// unknown-username path costs the same as a real password check.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyDummy burns one bcrypt comparison without revealing anything.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
}
