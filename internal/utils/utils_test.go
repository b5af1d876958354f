package utils

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "S3cret") {
		t.Fatalf("wrong password accepted")
	}
}

func TestSessionToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		raw, exp, err := NewSessionToken("k", "abc", time.Minute)
		if err != nil {
			t.Fatalf("NewSessionToken: %v", err)
		}
		if time.Until(exp) <= 0 {
			t.Fatalf("expiry in the past: %v", exp)
		}
		sid, err := ParseSessionToken("k", raw)
		if err != nil || sid != "abc" {
			t.Fatalf("ParseSessionToken = %q, %v", sid, err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		raw, _, _ := NewSessionToken("k", "abc", time.Minute)
		if _, err := ParseSessionToken("other", raw); !errors.Is(err, ErrInvalidSessionToken) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		raw, _, _ := NewSessionToken("k", "abc", -time.Minute)
		if _, err := ParseSessionToken("k", raw); !errors.Is(err, ErrInvalidSessionToken) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseSessionToken("k", "not-a-jwt"); !errors.Is(err, ErrInvalidSessionToken) {
			t.Fatalf("err = %v", err)
		}
	})
}
