package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mcwaffles/concord/internal/testutil"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := New(testutil.NewFakeDB())

	t.Run("valid_registration", func(t *testing.T) {
		userID, err := svc.Register(ctx, "alice", "pw1", "pw1")
		if err != nil {
			t.Fatalf("Register() error = %+v", err)
		}
		if userID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("Register() returned a zero user id")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "pw2", "pw2")
		if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("Register() error = %+v, want ErrUsernameTaken", err)
		}
	})

	t.Run("password_confirm_mismatch", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "pw1", "pw2")
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("Register() error = %+v, want ErrPasswordMismatch", err)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		if _, err := svc.Register(ctx, "", "pw1", "pw1"); !errors.Is(err, ErrMissingField) {
			t.Fatalf("Register() error = %+v, want ErrMissingField", err)
		}
		if _, err := svc.Register(ctx, "bob", "", ""); !errors.Is(err, ErrMissingField) {
			t.Fatalf("Register() error = %+v, want ErrMissingField", err)
		}
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	svc := New(testutil.NewFakeDB())

	if _, err := svc.Register(ctx, "alice", "pw1", "pw1"); err != nil {
		t.Fatalf("Register() error = %+v", err)
	}

	t.Run("correct_password", func(t *testing.T) {
		token, err := svc.SignIn(ctx, "alice", "pw1")
		if err != nil {
			t.Fatalf("SignIn() error = %+v", err)
		}

		// The issued token must resolve: channels() with it succeeds.
		if _, err := svc.Channels(ctx, token); err != nil {
			t.Errorf("Channels() with fresh token error = %+v", err)
		}
	})

	t.Run("wrong_password_and_unknown_user_are_identical", func(t *testing.T) {
		_, errWrongPw := svc.SignIn(ctx, "alice", "nope")
		_, errNoUser := svc.SignIn(ctx, "mallory", "pw1")

		if !errors.Is(errWrongPw, ErrInvalidCredentials) {
			t.Fatalf("SignIn() wrong password error = %+v, want ErrInvalidCredentials", errWrongPw)
		}
		if !errors.Is(errNoUser, ErrInvalidCredentials) {
			t.Fatalf("SignIn() unknown user error = %+v, want ErrInvalidCredentials", errNoUser)
		}
		if errWrongPw.Error() != errNoUser.Error() {
			t.Errorf("sign-in failures must be indistinguishable: %q vs %q", errWrongPw, errNoUser)
		}
	})

	t.Run("tokens_are_unique_per_sign_in", func(t *testing.T) {
		t1, err := svc.SignIn(ctx, "alice", "pw1")
		if err != nil {
			t.Fatalf("SignIn() error = %+v", err)
		}
		t2, err := svc.SignIn(ctx, "alice", "pw1")
		if err != nil {
			t.Fatalf("SignIn() error = %+v", err)
		}
		if t1 == t2 {
			t.Errorf("two sign-ins produced the same session token %s", t1)
		}
	})
}
