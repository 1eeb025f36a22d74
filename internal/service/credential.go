package service

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// passwordSymbols is the fixed set of symbols accepted as the "symbol"
// character class for password strength.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.<>?"

const (
	minPasswordLength = 12
	minTeamNameLength = 3
	maxTeamNameLength = 50
)

// HashPassword hashes a password with bcrypt. The salt is embedded in the
// digest, so the same plaintext hashes differently each call.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("generate password digest:", err)
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the digest was produced from the password.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// ValidatePasswordStrength returns every violated rule, not just the first.
// An empty slice means the password is acceptable.
func ValidatePasswordStrength(password string) []string {
	var reasons []string
	if len(password) < minPasswordLength {
		reasons = append(reasons, fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLower {
		reasons = append(reasons, "must contain a lowercase letter")
	}
	if !hasUpper {
		reasons = append(reasons, "must contain an uppercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "must contain a digit")
	}
	if !hasSymbol {
		reasons = append(reasons, "must contain a symbol ("+passwordSymbols+")")
	}
	return reasons
}

// ValidateTeamName returns every violated display-name rule.
func ValidateTeamName(name string) []string {
	var reasons []string
	if name == "" {
		return []string{"name must not be empty"}
	}
	if len(name) < minTeamNameLength {
		reasons = append(reasons, fmt.Sprintf("name must be at least %d characters", minTeamNameLength))
	}
	if len(name) > maxTeamNameLength {
		reasons = append(reasons, fmt.Sprintf("name must be at most %d characters", maxTeamNameLength))
	}
	for _, r := range name {
		if !isTeamNameRune(r) {
			reasons = append(reasons, "name may only contain letters, digits, spaces, underscores and hyphens")
			break
		}
	}
	return reasons
}

func isTeamNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '_' || r == '-':
		return true
	}
	return false
}
