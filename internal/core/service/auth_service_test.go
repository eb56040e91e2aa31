package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubCodeStore, *stubSender) {
	users := newStubUserRepo()
	codes := newStubCodeStore()
	sender := &stubSender{}
	svc := NewAuthService(users, codes, sender, "secret", time.Hour, zerolog.Nop())
	return svc, users, codes, sender
}

func TestSignup_NewUser(t *testing.T) {
	svc, users, codes, sender := newAuthFixture()

	res, err := svc.Signup(context.Background(), "bob", "bob@x.com")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if res.Username != "bob" || res.Email != "bob@x.com" {
		t.Fatalf("unexpected result: %+v", res)
	}

	u, err := users.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("new user role = %q, want %q", u.Role, domain.RoleUser)
	}
	if codes.issued != 1 || len(sender.sent) != 1 || sender.sent[0] != "bob@x.com" {
		t.Fatalf("expected one code dispatched to bob@x.com, got issued=%d sent=%v", codes.issued, sender.sent)
	}
}

func TestSignup_DuplicateMatchingPairStillDispatchesCode(t *testing.T) {
	svc, _, codes, sender := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "bob", "bob@x.com"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), "bob", "bob@x.com")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	// The error coexists with a deliberate side effect: the existing account
	// gets a fresh code anyway.
	if codes.issued != 2 {
		t.Fatalf("expected code re-issue on duplicate, issued=%d", codes.issued)
	}
	if len(sender.sent) != 2 || sender.sent[1] != "bob@x.com" {
		t.Fatalf("expected second dispatch to bob@x.com, sent=%v", sender.sent)
	}
}

func TestSignup_DuplicateMismatchedEmailNoDispatch(t *testing.T) {
	svc, _, codes, sender := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "bob", "bob@x.com"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), "bob", "other@x.com")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if codes.issued != 1 || len(sender.sent) != 1 {
		t.Fatalf("mismatched pair must not trigger dispatch, issued=%d sent=%v", codes.issued, sender.sent)
	}
}

func TestSignup_RejectsInvalidUsernames(t *testing.T) {
	svc, _, _, sender := newAuthFixture()

	for _, name := range []string{"me", "bad name", "bad/name", ""} {
		if _, err := svc.Signup(context.Background(), name, "a@x.com"); !errors.Is(err, domain.ErrInvalidUsername) {
			t.Errorf("Signup(%q) error = %v, want ErrInvalidUsername", name, err)
		}
	}
	if len(sender.sent) != 0 {
		t.Fatalf("no dispatch expected for invalid usernames, sent=%v", sender.sent)
	}
}

func TestObtainToken_Success(t *testing.T) {
	svc, users, codes, _ := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "carol", "carol@x.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	u, _ := users.FindByUsername(context.Background(), "carol")
	u.Role = domain.RoleModerator
	if err := users.Update(context.Background(), u); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	token, err := svc.ObtainToken(context.Background(), "carol", codes.codes["carol"])
	if err != nil {
		t.Fatalf("ObtainToken failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" || claims["role"] != "moderator" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims["superuser"] != false {
		t.Fatalf("superuser claim = %v, want false", claims["superuser"])
	}
}

func TestObtainToken_CodeIsSingleUse(t *testing.T) {
	svc, _, codes, _ := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "dave", "dave@x.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	code := codes.codes["dave"]

	if _, err := svc.ObtainToken(context.Background(), "dave", code); err != nil {
		t.Fatalf("first exchange failed: %v", err)
	}
	if _, err := svc.ObtainToken(context.Background(), "dave", code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode on reuse, got %v", err)
	}
}

func TestObtainToken_Failures(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.ObtainToken(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown user: expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), "erin", "erin@x.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := svc.ObtainToken(context.Background(), "erin", "wrong"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("wrong code: expected ErrInvalidCode, got %v", err)
	}
}
