package auth

import "testing"

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !hasher.Verify("secret1", hash) {
		t.Error("Verify() = false for correct password")
	}
	if hasher.Verify("wrong", hash) {
		t.Error("Verify() = true for wrong password")
	}
}

func TestPasswordHasher_SaltedOutput(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err1 := hasher.Hash("secret1")
	h2, err2 := hasher.Hash("secret1")
	if err1 != nil || err2 != nil {
		t.Fatalf("Hash() errors = %v, %v", err1, err2)
	}

	// The embedded salt must make outputs differ; both still verify.
	if h1 == h2 {
		t.Error("two hashes of the same input are identical")
	}
	if !hasher.Verify("secret1", h1) || !hasher.Verify("secret1", h2) {
		t.Error("Verify() failed for freshly generated hash")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	for _, malformed := range []string{"", "plaintext", "$2a$garbage"} {
		if hasher.Verify("secret1", malformed) {
			t.Errorf("Verify() = true for malformed hash %q", malformed)
		}
	}
}
