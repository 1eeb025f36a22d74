package model

import "time"

type AssignmentSetting struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Assignment string `gorm:"column:assignment;type:varchar(100);not null;uniqueIndex" json:"assignment"`

	// OpenView permits every team to see every team's files for this
	// assignment. A missing row is treated as open-view disabled.
	OpenView bool `gorm:"column:open_view;not null;default:false" json:"open_view"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (AssignmentSetting) TableName() string {
	return "assignment_setting"
}
