package token

import "testing"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 1, 7)

	tok, err := m.GenerateToken(42, "ada", "USER")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ada" || claims.Role != "USER" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	tok, err := NewJWTManager("secret-a", 1, 7).GenerateToken(1, "ada", "USER")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := NewJWTManager("secret-b", 1, 7).VerifyToken(tok); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	if _, err := NewJWTManager("s", 1, 7).VerifyToken("not-a-token"); err == nil {
		t.Fatal("garbage token must not verify")
	}
}

func TestGenerateRandomString_Length(t *testing.T) {
	a := GenerateRandomString(16)
	b := GenerateRandomString(16)
	if len(a) != 32 || len(b) != 32 {
		t.Errorf("lengths = %d, %d, want 32 hex chars", len(a), len(b))
	}
	if a == b {
		t.Error("two random strings should differ")
	}
}
