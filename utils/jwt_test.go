package utils

import (
	"testing"

	"ClassVault/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken(3, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.TeamNumber != 3 || claims.IsAdmin {
		t.Errorf("claims wrong: %+v", claims)
	}

	admin, err := GenerateToken(0, true)
	if err != nil {
		t.Fatal(err)
	}
	claims, err = VerifyToken(admin)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TeamNumber != 0 || !claims.IsAdmin {
		t.Errorf("admin claims wrong: %+v", claims)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken(3, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := VerifyToken(token + "x"); err == nil {
		t.Error("tampered token should not verify")
	}

	config.AppConfig.JWTSecret = "different-secret"
	if _, err := VerifyToken(token); err == nil {
		t.Error("token signed with another secret should not verify")
	}
}
