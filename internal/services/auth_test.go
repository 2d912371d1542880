package services

import (
	"context"
	"errors"
	"testing"

	"github.com/homelists/homelists/internal/model"
)

func TestSignUp_NormalizesEmail(t *testing.T) {
	svc := NewAuthService(newFakeStore())

	u, err := svc.SignUp(context.Background(), "  Anna@Example.COM ", "pw", nil)
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if u.Email != "anna@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "pw" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
}

func TestSignUp_DuplicateEmailConflicts(t *testing.T) {
	svc := NewAuthService(newFakeStore())

	if _, err := svc.SignUp(context.Background(), "anna@example.com", "pw", nil); err != nil {
		t.Fatalf("first SignUp error: %v", err)
	}
	_, err := svc.SignUp(context.Background(), "ANNA@example.com", "other", nil)
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestSignIn_FailuresIndistinguishable(t *testing.T) {
	svc := NewAuthService(newFakeStore())
	if _, err := svc.SignUp(context.Background(), "anna@example.com", "pw", nil); err != nil {
		t.Fatalf("SignUp error: %v", err)
	}

	_, errUnknown := svc.SignIn(context.Background(), "nobody@example.com", "pw")
	_, errWrongPw := svc.SignIn(context.Background(), "anna@example.com", "wrong")
	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure modes distinguishable: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestSignIn_Succeeds(t *testing.T) {
	svc := NewAuthService(newFakeStore())
	created, err := svc.SignUp(context.Background(), "anna@example.com", "pw", nil)
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}

	u, err := svc.SignIn(context.Background(), " ANNA@example.com ", "pw")
	if err != nil {
		t.Fatalf("SignIn error: %v", err)
	}
	if u.UserID != created.UserID {
		t.Fatalf("wrong user: %s", u.UserID)
	}
}
