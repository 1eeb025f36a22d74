package model

import "time"

type FileRecord struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Label string `gorm:"column:label;type:varchar(255);not null" json:"label"`

	OriginalName string `gorm:"column:original_name;type:varchar(255);not null" json:"original_name"`

	// StoredName is the server-generated blob name, unique within the store.
	StoredName string `gorm:"column:stored_name;type:varchar(255);not null;uniqueIndex" json:"stored_name"`

	Extension string `gorm:"column:extension;type:varchar(16);not null" json:"extension"`

	Size int64 `gorm:"column:size;not null" json:"size"`

	// TeamNumber is a soft foreign key: the owning team may not have an
	// account row yet (legacy fallback teams upload before registering).
	TeamNumber int `gorm:"column:team_number;not null;index" json:"team_number"`

	Assignment string `gorm:"column:assignment;type:varchar(100);not null;index" json:"assignment"`

	Tags []string `gorm:"column:tags;type:text;serializer:json" json:"tags"`

	Description string `gorm:"column:description;type:varchar(1000);not null;default:''" json:"description"`

	// Visible gates cross-team visibility of instructor (team 0) files only;
	// for student files it is ignored by the permission rules.
	Visible bool `gorm:"column:visible;not null;default:false" json:"visible"`

	UploadedAt time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName returns the database table name.
func (FileRecord) TableName() string {
	return "file_record"
}

// DetailsUpdate carries an edit to a file's mutable fields. Nil means the
// field was not provided and keeps its current value.
type DetailsUpdate struct {
	Label       *string
	Description *string
	Tags        *[]string
}
