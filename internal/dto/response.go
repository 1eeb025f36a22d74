package dto

import "ClassVault/model"

// LoginResponse returns the session token and the resolved account.
type LoginResponse struct {
	Token string             `json:"token"`
	Team  *model.TeamAccount `json:"team"`
}

// BulkDeleteResponse reports how many records a bulk operation removed.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ResetServerResponse summarizes a full server reset.
type ResetServerResponse struct {
	FilesDeleted int `json:"files_deleted"`
	TeamsDeleted int `json:"teams_deleted"`
}

// ResetTokenResponse carries a freshly issued password-reset token.
type ResetTokenResponse struct {
	TeamNumber int    `json:"team_number"`
	Token      string `json:"token"`
}
