package dto

// LoginRequest carries a team login. Team 0 is the instructor.
type LoginRequest struct {
	TeamNumber int    `json:"team_number"`
	Password   string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	TeamNumber int    `json:"team_number"`
	Name       string `json:"name"`
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// FileDetailsRequest edits a file. Nil fields are left untouched; presence
// is explicit rather than inferred from zero values.
type FileDetailsRequest struct {
	FileID      uint64    `json:"file_id" binding:"required"`
	Label       *string   `json:"label"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

type FileVisibilityRequest struct {
	FileID  uint64 `json:"file_id" binding:"required"`
	Visible *bool  `json:"visible" binding:"required"`
}

type DeleteFileRequest struct {
	FileID uint64 `json:"file_id" binding:"required"`
}

type AssignmentVisibilityRequest struct {
	Assignment string `json:"assignment" binding:"required"`
	OpenView   *bool  `json:"open_view" binding:"required"`
}

// Destructive admin requests re-supply the shared admin secret as a step-up
// credential on top of the session's admin flag.

type AdminDeleteFileRequest struct {
	FileID      uint64 `json:"file_id" binding:"required"`
	AdminSecret string `json:"admin_secret" binding:"required"`
}

type DeleteTeamRequest struct {
	TeamNumber  int    `json:"team_number" binding:"required"`
	AdminSecret string `json:"admin_secret" binding:"required"`
}

type DeleteAllFilesRequest struct {
	AdminSecret string `json:"admin_secret" binding:"required"`
}

type ResetServerRequest struct {
	AdminSecret string `json:"admin_secret" binding:"required"`
}

type IssueResetTokenRequest struct {
	TeamNumber int `json:"team_number" binding:"required"`
}
