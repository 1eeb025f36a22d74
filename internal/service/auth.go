package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ClassVault/config"
	"ClassVault/internal/store"
	"ClassVault/model"
	"ClassVault/utils"

	"github.com/google/uuid"
)

const resetTokenTTL = time.Hour

// AuthService resolves logins, registrations and password changes. Identity
// for everything downstream is the perm.Requester minted from its results.
type AuthService struct {
	store           store.Store
	teamSecrets     map[int]string
	adminSecret     string
	instructorEmail string
}

// NewAuthService wires the auth service from config.
func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:           s,
		teamSecrets:     cfg.TeamSecrets,
		adminSecret:     cfg.AdminSecret,
		instructorEmail: cfg.InstructorEmail,
	}
}

func validTeamNumber(number int) bool {
	return number >= model.AdminTeamNumber && number <= 9
}

// fallbackSecret returns the legacy shared secret for a team, if configured.
// Team 0 always falls back to the admin secret.
func (a *AuthService) fallbackSecret(number int) string {
	if number == model.AdminTeamNumber {
		return a.adminSecret
	}
	return a.teamSecrets[number]
}

// Login checks a team's password. Teams with a digest use it; teams without
// one may use the legacy shared secret, which lazily materializes an
// account on first success.
func (a *AuthService) Login(ctx context.Context, teamNumber int, password string) (*model.TeamAccount, error) {
	if !validTeamNumber(teamNumber) {
		return nil, validationErr("team number must be between 0 and 9")
	}

	team, err := a.store.GetTeamByNumber(ctx, teamNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if team != nil && team.Registered() {
		if !VerifyPassword(password, team.PasswordDigest) {
			return nil, ErrBadCredentials
		}
	} else {
		secret := a.fallbackSecret(teamNumber)
		if secret == "" || password != secret {
			return nil, ErrBadCredentials
		}
		if team == nil {
			team = &model.TeamAccount{TeamNumber: teamNumber, Active: true}
			if err := a.store.CreateTeam(ctx, team); err != nil {
				return nil, err
			}
		}
	}

	if err := a.store.UpdateTeamLogin(ctx, teamNumber, time.Now()); err != nil {
		log.Printf("update last login for team %d: %v", teamNumber, err)
	}
	return team, nil
}

// Register sets a team's own password (and optional display name). A team
// that already holds a digest conflicts; a fallback-created account without
// one is claimed instead.
func (a *AuthService) Register(ctx context.Context, teamNumber int, name, password string) (*model.TeamAccount, error) {
	if teamNumber < 1 || teamNumber > 9 {
		return nil, validationErr("team number must be between 1 and 9")
	}

	var reasons []string
	reasons = append(reasons, ValidatePasswordStrength(password)...)
	name = strings.TrimSpace(name)
	if name != "" {
		reasons = append(reasons, ValidateTeamName(name)...)
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	if name != "" {
		available, err := a.store.TeamNameAvailable(ctx, name, teamNumber)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, fmt.Errorf("team name %q: %w", name, store.ErrConflict)
		}
	}

	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	team, err := a.store.GetTeamByNumber(ctx, teamNumber)
	switch {
	case errors.Is(err, store.ErrNotFound):
		team = &model.TeamAccount{
			TeamNumber:     teamNumber,
			Name:           name,
			PasswordDigest: digest,
			Active:         true,
		}
		if err := a.store.CreateTeam(ctx, team); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case team.Registered():
		return nil, fmt.Errorf("team %d already registered: %w", teamNumber, store.ErrConflict)
	default:
		if err := a.store.UpdateTeamPassword(ctx, teamNumber, digest); err != nil {
			return nil, err
		}
		if name != "" {
			if err := a.store.UpdateTeamName(ctx, teamNumber, name); err != nil {
				return nil, err
			}
		}
		team, err = a.store.GetTeamByNumber(ctx, teamNumber)
		if err != nil {
			return nil, err
		}
	}

	if a.instructorEmail != "" {
		if err := utils.SendRegistrationMail(a.instructorEmail, teamNumber, name); err != nil {
			log.Printf("registration mail for team %d: %v", teamNumber, err)
		}
	}
	return team, nil
}

// ChangePassword replaces a registered team's password after checking the
// current one.
func (a *AuthService) ChangePassword(ctx context.Context, teamNumber int, oldPassword, newPassword string) error {
	team, err := a.store.GetTeamByNumber(ctx, teamNumber)
	if err != nil {
		return err
	}
	if !team.Registered() || !VerifyPassword(oldPassword, team.PasswordDigest) {
		return ErrBadCredentials
	}
	if reasons := ValidatePasswordStrength(newPassword); len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	digest, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.store.UpdateTeamPassword(ctx, teamNumber, digest)
}

// IssueResetToken creates a short-lived password-reset token for a team.
// The instructor hands the token to the team out of band.
func (a *AuthService) IssueResetToken(ctx context.Context, teamNumber int) (string, error) {
	if _, err := a.store.GetTeamByNumber(ctx, teamNumber); err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := a.store.SetTeamResetToken(ctx, teamNumber, token, time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword redeems a reset token for a new password.
func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	team, err := a.store.GetTeamByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if team.ResetExpires == nil || time.Now().After(*team.ResetExpires) {
		return validationErr("reset token expired")
	}
	if reasons := ValidatePasswordStrength(newPassword); len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	digest, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.store.UpdateTeamPassword(ctx, team.TeamNumber, digest)
}

// ListTeams returns every account, team number ascending.
func (a *AuthService) ListTeams(ctx context.Context) ([]model.TeamAccount, error) {
	return a.store.ListTeams(ctx)
}

// DeleteTeam removes a student account. The instructor account is never
// deleted. Callers delete the team's files first; the two steps are
// independent operations, not a transaction.
func (a *AuthService) DeleteTeam(ctx context.Context, teamNumber int) (bool, error) {
	if teamNumber == model.AdminTeamNumber {
		return false, ErrForbidden
	}
	return a.store.DeleteTeam(ctx, teamNumber)
}

// DeleteStudentTeams removes every non-instructor account, one independent
// delete per team.
func (a *AuthService) DeleteStudentTeams(ctx context.Context) (int, error) {
	teams, err := a.store.ListTeams(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, team := range teams {
		if team.TeamNumber == model.AdminTeamNumber {
			continue
		}
		ok, err := a.store.DeleteTeam(ctx, team.TeamNumber)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}
