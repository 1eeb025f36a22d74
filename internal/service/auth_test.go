package service

import (
	"context"
	"errors"
	"testing"

	"ClassVault/config"
	"ClassVault/internal/store"
)

const strongPassword = "Str0ng-enough!"

func newAuth() (*AuthService, *store.MemoryStore) {
	s := store.NewMemoryStore()
	cfg := &config.Config{
		AdminSecret: "chalkboard",
		TeamSecrets: map[int]string{2: "alpha", 3: "bravo"},
	}
	return NewAuthService(s, cfg), s
}

func TestFallbackLoginCreatesAccount(t *testing.T) {
	auth, s := newAuth()
	ctx := context.Background()

	team, err := auth.Login(ctx, 2, "alpha")
	if err != nil {
		t.Fatalf("fallback login: %v", err)
	}
	if team.TeamNumber != 2 || team.Registered() {
		t.Errorf("lazily created account should be unregistered: %+v", team)
	}

	// The account now exists in the store.
	stored, err := s.GetTeamByNumber(ctx, 2)
	if err != nil {
		t.Fatalf("account not materialized: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("login should stamp last login time")
	}
}

func TestLoginRejectsBadSecret(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	if _, err := auth.Login(ctx, 2, "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong secret: got %v", err)
	}
	// Team 5 has no configured secret at all.
	if _, err := auth.Login(ctx, 5, ""); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unconfigured team: got %v", err)
	}
	var verr *ValidationError
	if _, err := auth.Login(ctx, 12, "x"); !errors.As(err, &verr) {
		t.Errorf("out-of-range team number: got %v", err)
	}
}

func TestAdminFallbackLogin(t *testing.T) {
	auth, _ := newAuth()

	team, err := auth.Login(context.Background(), 0, "chalkboard")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !team.IsAdmin() {
		t.Error("team 0 should be the admin account")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	team, err := auth.Register(ctx, 4, "The Rockets", strongPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !team.Registered() || team.Name != "The Rockets" {
		t.Errorf("registered account wrong: %+v", team)
	}

	if _, err := auth.Login(ctx, 4, strongPassword); err != nil {
		t.Errorf("password login after register: %v", err)
	}
	if _, err := auth.Login(ctx, 4, "wrong-password"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: got %v", err)
	}

	// A second registration for the same team conflicts.
	if _, err := auth.Register(ctx, 4, "", strongPassword); !errors.Is(err, store.ErrConflict) {
		t.Errorf("re-register: got %v, want ErrConflict", err)
	}
}

func TestRegisterClaimsFallbackAccount(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	// First contact through the shared secret, then the team sets its own
	// password.
	if _, err := auth.Login(ctx, 2, "alpha"); err != nil {
		t.Fatal(err)
	}
	team, err := auth.Register(ctx, 2, "Crew Two", strongPassword)
	if err != nil {
		t.Fatalf("claim register: %v", err)
	}
	if !team.Registered() || team.Name != "Crew Two" {
		t.Errorf("claimed account wrong: %+v", team)
	}

	// The shared secret stops working once a digest exists.
	if _, err := auth.Login(ctx, 2, "alpha"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("shared secret after register: got %v", err)
	}
	if _, err := auth.Login(ctx, 2, strongPassword); err != nil {
		t.Errorf("password login after claim: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	var verr *ValidationError
	if _, err := auth.Register(ctx, 0, "", strongPassword); !errors.As(err, &verr) {
		t.Errorf("team 0 must not self-register: got %v", err)
	}
	if _, err := auth.Register(ctx, 4, "x!", "weak"); !errors.As(err, &verr) {
		t.Fatalf("weak password + bad name: got %v", err)
	}
	// Password and name violations arrive in one response.
	if len(verr.Reasons) < 3 {
		t.Errorf("expected combined reasons, got %v", verr.Reasons)
	}
}

func TestRegisterRejectsTakenName(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	if _, err := auth.Register(ctx, 4, "The Rockets", strongPassword); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Register(ctx, 5, "the rockets", strongPassword); !errors.Is(err, store.ErrConflict) {
		t.Errorf("name collision should conflict case-insensitively, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	if _, err := auth.Register(ctx, 4, "", strongPassword); err != nil {
		t.Fatal(err)
	}
	next := "An0ther-strong!"
	if err := auth.ChangePassword(ctx, 4, "wrong-password", next); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong current password: got %v", err)
	}
	if err := auth.ChangePassword(ctx, 4, strongPassword, next); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := auth.Login(ctx, 4, next); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := auth.Login(ctx, 4, strongPassword); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("old password should stop working, got %v", err)
	}
}

func TestResetTokenFlow(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	if _, err := auth.Register(ctx, 4, "", strongPassword); err != nil {
		t.Fatal(err)
	}
	token, err := auth.IssueResetToken(ctx, 4)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	next := "An0ther-strong!"
	if err := auth.ResetPassword(ctx, "bogus-token", next); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown token: got %v", err)
	}
	if err := auth.ResetPassword(ctx, token, next); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := auth.Login(ctx, 4, next); err != nil {
		t.Errorf("login after reset: %v", err)
	}

	// Tokens are single-use: redeeming clears them.
	if err := auth.ResetPassword(ctx, token, strongPassword); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("reused token: got %v", err)
	}
}

func TestDeleteTeamGuardsAdmin(t *testing.T) {
	auth, s := newAuth()
	ctx := context.Background()

	if _, err := auth.Login(ctx, 0, "chalkboard"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login(ctx, 2, "alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login(ctx, 3, "bravo"); err != nil {
		t.Fatal(err)
	}

	if _, err := auth.DeleteTeam(ctx, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("deleting team 0: got %v", err)
	}

	deleted, err := auth.DeleteStudentTeams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted %d student teams, want 2", deleted)
	}
	if _, err := s.GetTeamByNumber(ctx, 0); err != nil {
		t.Errorf("instructor account must survive a wipe: %v", err)
	}
}
