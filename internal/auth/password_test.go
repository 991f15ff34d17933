package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Error("HashPassword() returned the plaintext password")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("VerifyPassword() rejected the correct password")
	}

	if VerifyPassword("wrong password", hash) {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
