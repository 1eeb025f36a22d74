package model

import "time"

// AdminTeamNumber is the reserved pseudo-team for the instructor.
const AdminTeamNumber = 0

type TeamAccount struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	TeamNumber int `gorm:"column:team_number;not null;uniqueIndex" json:"team_number"`

	// Name is the optional display name. Empty means the team never set one.
	Name string `gorm:"column:name;type:varchar(50);not null;default:''" json:"name"`

	// PasswordDigest is empty until the team self-registers; teams without a
	// digest may still log in through the shared-secret fallback.
	PasswordDigest string `gorm:"column:password_digest;type:varchar(255);not null;default:''" json:"-"`

	Active bool `gorm:"column:active;not null;default:true" json:"active"`

	ResetToken   string     `gorm:"column:reset_token;type:varchar(64);not null;default:''" json:"-"`
	ResetExpires *time.Time `gorm:"column:reset_expires" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

// TableName returns the database table name.
func (TeamAccount) TableName() string {
	return "team_account"
}

// Registered reports whether the team has set its own password.
func (t *TeamAccount) Registered() bool {
	return t.PasswordDigest != ""
}

// IsAdmin reports whether the account is the instructor account.
func (t *TeamAccount) IsAdmin() bool {
	return t.TeamNumber == AdminTeamNumber
}
