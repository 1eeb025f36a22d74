package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ClassVault/config"
	"ClassVault/model"

	mysqlDriver "github.com/go-sql-driver/mysql"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore is the durable backend. Concurrency control is delegated to
// MySQL; every operation is a single independent statement, so there is no
// cross-operation atomicity (bulk deletes are loops of independent deletes).
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore opens the MySQL connection and migrates the schema. A
// connection failure is returned to the caller so the factory can fall back.
func NewMySQLStore(cfg *config.Config) (*MySQLStore, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)
	db, err := gorm.Open(gormMysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.TeamAccount{},
		&model.FileRecord{},
		&model.AssignmentSetting{},
	); err != nil {
		return nil, err
	}

	log.Println("init mysql success")
	return &MySQLStore{db: db}, nil
}

// mapErr translates gorm and driver errors into store sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrConflict
	}
	return err
}

// GetTeamByID returns the team account with the given row id.
func (s *MySQLStore) GetTeamByID(ctx context.Context, id uint64) (*model.TeamAccount, error) {
	var team model.TeamAccount
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, mapErr(err)
	}
	return &team, nil
}

// GetTeamByNumber returns the team account with the given team number.
func (s *MySQLStore) GetTeamByNumber(ctx context.Context, number int) (*model.TeamAccount, error) {
	var team model.TeamAccount
	if err := s.db.WithContext(ctx).Where("team_number = ?", number).First(&team).Error; err != nil {
		return nil, mapErr(err)
	}
	return &team, nil
}

// GetTeamByName returns the team with the given display name, case-insensitive.
func (s *MySQLStore) GetTeamByName(ctx context.Context, name string) (*model.TeamAccount, error) {
	var team model.TeamAccount
	err := s.db.WithContext(ctx).
		Where("name <> '' AND LOWER(name) = LOWER(?)", name).
		First(&team).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &team, nil
}

// CreateTeam inserts a new team account.
func (s *MySQLStore) CreateTeam(ctx context.Context, team *model.TeamAccount) error {
	return mapErr(s.db.WithContext(ctx).Create(team).Error)
}

// UpdateTeamLogin records the team's last login time.
func (s *MySQLStore) UpdateTeamLogin(ctx context.Context, number int, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&model.TeamAccount{}).
		Where("team_number = ?", number).
		Update("last_login_at", at)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTeamName sets the team's display name.
func (s *MySQLStore) UpdateTeamName(ctx context.Context, number int, name string) error {
	result := s.db.WithContext(ctx).Model(&model.TeamAccount{}).
		Where("team_number = ?", number).
		Update("name", name)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTeamPassword replaces the password digest and clears any reset token.
func (s *MySQLStore) UpdateTeamPassword(ctx context.Context, number int, digest string) error {
	result := s.db.WithContext(ctx).Model(&model.TeamAccount{}).
		Where("team_number = ?", number).
		Updates(map[string]interface{}{
			"password_digest": digest,
			"reset_token":     "",
			"reset_expires":   nil,
		})
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTeamResetToken stores a password-reset token for the team.
func (s *MySQLStore) SetTeamResetToken(ctx context.Context, number int, token string, expires time.Time) error {
	result := s.db.WithContext(ctx).Model(&model.TeamAccount{}).
		Where("team_number = ?", number).
		Updates(map[string]interface{}{
			"reset_token":   token,
			"reset_expires": expires,
		})
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTeamByResetToken returns the team holding the given reset token.
func (s *MySQLStore) GetTeamByResetToken(ctx context.Context, token string) (*model.TeamAccount, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var team model.TeamAccount
	if err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&team).Error; err != nil {
		return nil, mapErr(err)
	}
	return &team, nil
}

// TeamNameAvailable reports whether a display name is free, optionally
// ignoring one team number.
func (s *MySQLStore) TeamNameAvailable(ctx context.Context, name string, excludeNumber int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TeamAccount{}).
		Where("name <> '' AND LOWER(name) = LOWER(?) AND team_number <> ?", name, excludeNumber).
		Count(&count).Error
	if err != nil {
		return false, mapErr(err)
	}
	return count == 0, nil
}

// ListTeams returns all team accounts ordered by team number ascending.
func (s *MySQLStore) ListTeams(ctx context.Context) ([]model.TeamAccount, error) {
	var teams []model.TeamAccount
	if err := s.db.WithContext(ctx).Order("team_number ASC").Find(&teams).Error; err != nil {
		return nil, mapErr(err)
	}
	return teams, nil
}

// DeleteTeam removes the team account; false when the number is unknown.
func (s *MySQLStore) DeleteTeam(ctx context.Context, number int) (bool, error) {
	result := s.db.WithContext(ctx).Where("team_number = ?", number).Delete(&model.TeamAccount{})
	if result.Error != nil {
		return false, mapErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CreateFile inserts a file record, assigning id and upload timestamp.
func (s *MySQLStore) CreateFile(ctx context.Context, file *model.FileRecord) error {
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	return mapErr(s.db.WithContext(ctx).Create(file).Error)
}

// GetFile returns the file record with the given id.
func (s *MySQLStore) GetFile(ctx context.Context, id uint64) (*model.FileRecord, error) {
	var file model.FileRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, mapErr(err)
	}
	return &file, nil
}

// ListFiles returns every file record.
func (s *MySQLStore) ListFiles(ctx context.Context) ([]model.FileRecord, error) {
	var files []model.FileRecord
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&files).Error; err != nil {
		return nil, mapErr(err)
	}
	return files, nil
}

// ListFilesByTeam returns the files owned by a team number.
func (s *MySQLStore) ListFilesByTeam(ctx context.Context, number int) ([]model.FileRecord, error) {
	var files []model.FileRecord
	err := s.db.WithContext(ctx).
		Where("team_number = ?", number).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return files, nil
}

// ListFilesByExtension matches the extension by case-insensitive substring.
func (s *MySQLStore) ListFilesByExtension(ctx context.Context, ext string) ([]model.FileRecord, error) {
	var files []model.FileRecord
	err := s.db.WithContext(ctx).
		Where("LOWER(extension) LIKE ?", "%"+strings.ToLower(ext)+"%").
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return files, nil
}

// ListFilesByAssignment returns the files uploaded under an assignment.
func (s *MySQLStore) ListFilesByAssignment(ctx context.Context, assignment string) ([]model.FileRecord, error) {
	var files []model.FileRecord
	err := s.db.WithContext(ctx).
		Where("assignment = ?", assignment).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return files, nil
}

// SearchFiles matches the query as a case-insensitive substring of label,
// original filename, description or any tag.
func (s *MySQLStore) SearchFiles(ctx context.Context, query string) ([]model.FileRecord, error) {
	like := "%" + strings.ToLower(query) + "%"
	var files []model.FileRecord
	err := s.db.WithContext(ctx).
		Where("LOWER(label) LIKE ? OR LOWER(original_name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			like, like, like, like).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return files, nil
}

// DeleteFile removes a file record; false when the id is unknown.
func (s *MySQLStore) DeleteFile(ctx context.Context, id uint64) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FileRecord{})
	if result.Error != nil {
		return false, mapErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateFileVisibility sets the per-file visibility flag.
func (s *MySQLStore) UpdateFileVisibility(ctx context.Context, id uint64, visible bool) (*model.FileRecord, error) {
	var file model.FileRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, mapErr(err)
	}
	if file.Visible != visible {
		file.Visible = visible
		if err := s.db.WithContext(ctx).Model(&file).Update("visible", visible).Error; err != nil {
			return nil, mapErr(err)
		}
	}
	return &file, nil
}

// UpdateFileDetails applies the provided fields only.
func (s *MySQLStore) UpdateFileDetails(ctx context.Context, id uint64, update model.DetailsUpdate) (*model.FileRecord, error) {
	var file model.FileRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, mapErr(err)
	}
	applyDetails(&file, update)
	if err := s.db.WithContext(ctx).Save(&file).Error; err != nil {
		return nil, mapErr(err)
	}
	return &file, nil
}

// ListAssignmentSettings returns all settings, alphabetical by assignment.
func (s *MySQLStore) ListAssignmentSettings(ctx context.Context) ([]model.AssignmentSetting, error) {
	var settings []model.AssignmentSetting
	if err := s.db.WithContext(ctx).Order("assignment ASC").Find(&settings).Error; err != nil {
		return nil, mapErr(err)
	}
	return settings, nil
}

// GetAssignmentSetting returns the setting for one assignment.
func (s *MySQLStore) GetAssignmentSetting(ctx context.Context, assignment string) (*model.AssignmentSetting, error) {
	var setting model.AssignmentSetting
	if err := s.db.WithContext(ctx).Where("assignment = ?", assignment).First(&setting).Error; err != nil {
		return nil, mapErr(err)
	}
	return &setting, nil
}

// UpsertAssignmentSetting creates or updates the open-view flag. Writing the
// value already stored leaves the timestamp untouched.
func (s *MySQLStore) UpsertAssignmentSetting(ctx context.Context, assignment string, openView bool) (*model.AssignmentSetting, error) {
	var setting model.AssignmentSetting
	err := s.db.WithContext(ctx).Where("assignment = ?", assignment).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = model.AssignmentSetting{Assignment: assignment, OpenView: openView}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, mapErr(err)
		}
		return &setting, nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	if setting.OpenView != openView {
		setting.OpenView = openView
		if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
			return nil, mapErr(err)
		}
	}
	return &setting, nil
}

// SeedDefaultAssignments inserts the configured assignments at
// open-view=false. No-op once any setting row exists.
func (s *MySQLStore) SeedDefaultAssignments(ctx context.Context, names []string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.AssignmentSetting{}).Count(&count).Error; err != nil {
		return mapErr(err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		setting := model.AssignmentSetting{Assignment: name, OpenView: false}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return mapErr(err)
		}
	}
	return nil
}

// ResetAssignmentSettings turns open-view off everywhere; rows stay.
func (s *MySQLStore) ResetAssignmentSettings(ctx context.Context) error {
	return mapErr(s.db.WithContext(ctx).Model(&model.AssignmentSetting{}).
		Where("open_view = ?", true).
		Update("open_view", false).Error)
}

// Close closes the underlying connection pool.
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
