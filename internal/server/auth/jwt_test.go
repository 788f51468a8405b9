package auth

import (
	"errors"
	"testing"
	"time"

	"authd/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := GenerateToken("alice", 1, 7, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}

	if claims.Login != "alice" {
		t.Fatalf("unexpected login: %q", claims.Login)
	}
	if claims.TokenNumber != 1 || claims.UpdateToken != 7 {
		t.Fatalf("unexpected counters: %d/%d", claims.TokenNumber, claims.UpdateToken)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected expiry claim")
	}
	wantExp := time.Now().Add(time.Hour)
	if d := claims.ExpiresAt.Time.Sub(wantExp); d < -time.Minute || d > time.Minute {
		t.Fatalf("expiry %v too far from now+1h", claims.ExpiresAt.Time)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("alice", 1, 1, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(token, testSecret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", 1, 1, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(token, []byte("other-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseToken(tok, testSecret); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("ParseToken(%q): want common.ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestParseToken_TamperedPayload(t *testing.T) {
	token, err := GenerateToken("alice", 1, 1, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken for tampered token, got %v", err)
	}
}
