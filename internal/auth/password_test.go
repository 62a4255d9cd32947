package auth

import (
	"testing"
	"time"

	"github.com/nextstep-app/career-service/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == "s3cret-password" {
		t.Fatal("Hash must not equal the plaintext")
	}

	if !CheckPassword(hashed, "s3cret-password") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hashed, "wrong-password") {
		t.Error("Wrong password accepted")
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	for _, id := range []uint{1, 42, 999999} {
		encoded := EncodeUID(id)
		decoded, err := DecodeUID(encoded)
		if err != nil {
			t.Fatalf("DecodeUID(%q) failed: %v", encoded, err)
		}
		if decoded != id {
			t.Errorf("Expected %d, got %d", id, decoded)
		}
	}

	t.Run("RejectsBadEncoding", func(t *testing.T) {
		if _, err := DecodeUID("!!not-base64!!"); err == nil {
			t.Error("Expected error for invalid base64")
		}
	})

	t.Run("RejectsNonNumeric", func(t *testing.T) {
		if _, err := DecodeUID(EncodeUID(7) + "x"); err == nil {
			t.Error("Expected error for corrupted uid")
		}
	})
}

func TestResetTokens(t *testing.T) {
	tokens := NewResetTokens("test-secret", time.Hour)
	user := &models.User{ID: 7, Email: "casey@example.com", Password: "$2a$10$hash-one"}

	token, err := tokens.Make(user)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	t.Run("ValidToken", func(t *testing.T) {
		if !tokens.Check(user, token) {
			t.Error("Fresh token rejected")
		}
	})

	t.Run("InvalidatedByPasswordChange", func(t *testing.T) {
		changed := &models.User{ID: 7, Email: user.Email, Password: "$2a$10$hash-two"}
		if tokens.Check(changed, token) {
			t.Error("Token must be invalid after the password hash changes")
		}
	})

	t.Run("WrongUserRejected", func(t *testing.T) {
		other := &models.User{ID: 8, Password: user.Password}
		if tokens.Check(other, token) {
			t.Error("Token must be bound to the issuing user")
		}
	})

	t.Run("ExpiredRejected", func(t *testing.T) {
		expired := NewResetTokens("test-secret", -time.Minute)
		token, err := expired.Make(user)
		if err != nil {
			t.Fatalf("Make failed: %v", err)
		}
		if expired.Check(user, token) {
			t.Error("Expired token accepted")
		}
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		if tokens.Check(user, "garbage") {
			t.Error("Garbage token accepted")
		}
	})
}
