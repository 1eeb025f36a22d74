package service

import (
	"strings"
	"testing"
)

// TestHashPasswordRoundTrip checks hashing and verification.
func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("Correct-Horse-9")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword("Correct-Horse-9", digest) {
		t.Error("digest should verify against its own plaintext")
	}
	if VerifyPassword("wrong-password", digest) {
		t.Error("digest must not verify against another plaintext")
	}
}

// TestHashPasswordSalted checks that the salt makes digests differ.
func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Correct-Horse-9")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("Correct-Horse-9")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two digests of the same plaintext should differ")
	}
}

// TestValidatePasswordStrength checks that every violated rule is reported
// together, not just the first.
func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		reasons  int
	}{
		{"Str0ng-enough!", 0},
		{"short", 4},           // length, upper, digit, symbol
		{"alllowercase", 3},    // upper, digit, symbol
		{"ALLUPPERCASE", 3},    // lower, digit, symbol
		{"NoDigitsHere!", 1},   // digit
		{"nosymbols12345A", 1}, // symbol
		{"", 5},                // everything
	}
	for _, tc := range cases {
		got := ValidatePasswordStrength(tc.password)
		if len(got) != tc.reasons {
			t.Errorf("password %q: got %d reasons %v, want %d", tc.password, len(got), got, tc.reasons)
		}
	}
}

// TestValidateTeamName checks the display-name rules.
func TestValidateTeamName(t *testing.T) {
	if got := ValidateTeamName("The Rockets_01"); len(got) != 0 {
		t.Errorf("valid name rejected: %v", got)
	}
	if got := ValidateTeamName(""); len(got) != 1 {
		t.Errorf("empty name: got %v", got)
	}
	if got := ValidateTeamName("ab"); len(got) != 1 {
		t.Errorf("short name: got %v", got)
	}
	if got := ValidateTeamName(strings.Repeat("a", 51)); len(got) != 1 {
		t.Errorf("long name: got %v", got)
	}
	if got := ValidateTeamName("bad!name"); len(got) != 1 {
		t.Errorf("charset violation: got %v", got)
	}
	// Two broken rules at once are both reported.
	if got := ValidateTeamName("a!"); len(got) != 2 {
		t.Errorf("short + charset: got %v", got)
	}
}
