package hash

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h == "s3cret" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPasswordHash("s3cret", h) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong", h) {
		t.Error("wrong password must not verify")
	}
}
