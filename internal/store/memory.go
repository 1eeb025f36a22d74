package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ClassVault/model"
)

// MemoryStore keeps all collections in process memory. It exists as the
// fallback when MySQL is unreachable and as the test backend; contents are
// lost on restart. A single mutex serializes mutations, since the host
// serves requests concurrently.
type MemoryStore struct {
	mu sync.RWMutex

	teams    map[int]*model.TeamAccount
	files    map[uint64]*model.FileRecord
	settings map[string]*model.AssignmentSetting

	nextTeamID    uint64
	nextFileID    uint64
	nextSettingID uint64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teams:    make(map[int]*model.TeamAccount),
		files:    make(map[uint64]*model.FileRecord),
		settings: make(map[string]*model.AssignmentSetting),
	}
}

func copyTeam(t *model.TeamAccount) *model.TeamAccount {
	clone := *t
	return &clone
}

func copyFile(f *model.FileRecord) *model.FileRecord {
	clone := *f
	clone.Tags = append([]string(nil), f.Tags...)
	return &clone
}

func copySetting(s *model.AssignmentSetting) *model.AssignmentSetting {
	clone := *s
	return &clone
}

// GetTeamByID returns the team account with the given row id.
func (m *MemoryStore) GetTeamByID(ctx context.Context, id uint64) (*model.TeamAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, team := range m.teams {
		if team.ID == id {
			return copyTeam(team), nil
		}
	}
	return nil, ErrNotFound
}

// GetTeamByNumber returns the team account with the given team number.
func (m *MemoryStore) GetTeamByNumber(ctx context.Context, number int) (*model.TeamAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	team, ok := m.teams[number]
	if !ok {
		return nil, ErrNotFound
	}
	return copyTeam(team), nil
}

// GetTeamByName returns the team with the given display name, case-insensitive.
func (m *MemoryStore) GetTeamByName(ctx context.Context, name string) (*model.TeamAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, team := range m.teams {
		if team.Name != "" && strings.EqualFold(team.Name, name) {
			return copyTeam(team), nil
		}
	}
	return nil, ErrNotFound
}

// CreateTeam inserts a new team account.
func (m *MemoryStore) CreateTeam(ctx context.Context, team *model.TeamAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[team.TeamNumber]; ok {
		return ErrConflict
	}
	m.nextTeamID++
	team.ID = m.nextTeamID
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}
	m.teams[team.TeamNumber] = copyTeam(team)
	return nil
}

// UpdateTeamLogin records the team's last login time.
func (m *MemoryStore) UpdateTeamLogin(ctx context.Context, number int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[number]
	if !ok {
		return ErrNotFound
	}
	login := at
	team.LastLoginAt = &login
	return nil
}

// UpdateTeamName sets the team's display name.
func (m *MemoryStore) UpdateTeamName(ctx context.Context, number int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[number]
	if !ok {
		return ErrNotFound
	}
	team.Name = name
	return nil
}

// UpdateTeamPassword replaces the password digest and clears any reset token.
func (m *MemoryStore) UpdateTeamPassword(ctx context.Context, number int, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[number]
	if !ok {
		return ErrNotFound
	}
	team.PasswordDigest = digest
	team.ResetToken = ""
	team.ResetExpires = nil
	return nil
}

// SetTeamResetToken stores a password-reset token for the team.
func (m *MemoryStore) SetTeamResetToken(ctx context.Context, number int, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[number]
	if !ok {
		return ErrNotFound
	}
	exp := expires
	team.ResetToken = token
	team.ResetExpires = &exp
	return nil
}

// GetTeamByResetToken returns the team holding the given reset token.
func (m *MemoryStore) GetTeamByResetToken(ctx context.Context, token string) (*model.TeamAccount, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, team := range m.teams {
		if team.ResetToken == token {
			return copyTeam(team), nil
		}
	}
	return nil, ErrNotFound
}

// TeamNameAvailable reports whether a display name is free, optionally
// ignoring one team number (for renames).
func (m *MemoryStore) TeamNameAvailable(ctx context.Context, name string, excludeNumber int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, team := range m.teams {
		if team.TeamNumber == excludeNumber {
			continue
		}
		if team.Name != "" && strings.EqualFold(team.Name, name) {
			return false, nil
		}
	}
	return true, nil
}

// ListTeams returns all team accounts ordered by team number ascending.
func (m *MemoryStore) ListTeams(ctx context.Context) ([]model.TeamAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	teams := make([]model.TeamAccount, 0, len(m.teams))
	for _, team := range m.teams {
		teams = append(teams, *copyTeam(team))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamNumber < teams[j].TeamNumber })
	return teams, nil
}

// DeleteTeam removes the team account; false when the number is unknown.
func (m *MemoryStore) DeleteTeam(ctx context.Context, number int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[number]; !ok {
		return false, nil
	}
	delete(m.teams, number)
	return true, nil
}

// CreateFile inserts a file record, assigning id and upload timestamp.
func (m *MemoryStore) CreateFile(ctx context.Context, file *model.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextFileID++
	file.ID = m.nextFileID
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	m.files[file.ID] = copyFile(file)
	return nil
}

// GetFile returns the file record with the given id.
func (m *MemoryStore) GetFile(ctx context.Context, id uint64) (*model.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	file, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFile(file), nil
}

func (m *MemoryStore) listFiles(match func(*model.FileRecord) bool) []model.FileRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]model.FileRecord, 0, len(m.files))
	for _, file := range m.files {
		if match == nil || match(file) {
			files = append(files, *copyFile(file))
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files
}

// ListFiles returns every file record.
func (m *MemoryStore) ListFiles(ctx context.Context) ([]model.FileRecord, error) {
	return m.listFiles(nil), nil
}

// ListFilesByTeam returns the files owned by a team number.
func (m *MemoryStore) ListFilesByTeam(ctx context.Context, number int) ([]model.FileRecord, error) {
	return m.listFiles(func(f *model.FileRecord) bool { return f.TeamNumber == number }), nil
}

// ListFilesByExtension matches the extension by case-insensitive substring.
func (m *MemoryStore) ListFilesByExtension(ctx context.Context, ext string) ([]model.FileRecord, error) {
	needle := strings.ToLower(ext)
	return m.listFiles(func(f *model.FileRecord) bool {
		return strings.Contains(strings.ToLower(f.Extension), needle)
	}), nil
}

// ListFilesByAssignment returns the files uploaded under an assignment.
func (m *MemoryStore) ListFilesByAssignment(ctx context.Context, assignment string) ([]model.FileRecord, error) {
	return m.listFiles(func(f *model.FileRecord) bool { return f.Assignment == assignment }), nil
}

// SearchFiles matches the query as a case-insensitive substring of label,
// original filename, description or any tag.
func (m *MemoryStore) SearchFiles(ctx context.Context, query string) ([]model.FileRecord, error) {
	needle := strings.ToLower(query)
	return m.listFiles(func(f *model.FileRecord) bool {
		if strings.Contains(strings.ToLower(f.Label), needle) ||
			strings.Contains(strings.ToLower(f.OriginalName), needle) ||
			strings.Contains(strings.ToLower(f.Description), needle) {
			return true
		}
		for _, tag := range f.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}), nil
}

// DeleteFile removes a file record; false when the id is unknown.
func (m *MemoryStore) DeleteFile(ctx context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return false, nil
	}
	delete(m.files, id)
	return true, nil
}

// UpdateFileVisibility sets the per-file visibility flag.
func (m *MemoryStore) UpdateFileVisibility(ctx context.Context, id uint64, visible bool) (*model.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	file.Visible = visible
	return copyFile(file), nil
}

// UpdateFileDetails applies the provided fields only. A provided but empty
// label is ignored rather than clearing the required label.
func (m *MemoryStore) UpdateFileDetails(ctx context.Context, id uint64, update model.DetailsUpdate) (*model.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyDetails(file, update)
	return copyFile(file), nil
}

// applyDetails mutates a record with the provided detail fields.
func applyDetails(file *model.FileRecord, update model.DetailsUpdate) {
	if update.Label != nil && strings.TrimSpace(*update.Label) != "" {
		file.Label = *update.Label
	}
	if update.Description != nil {
		file.Description = *update.Description
	}
	if update.Tags != nil {
		file.Tags = append([]string(nil), (*update.Tags)...)
	}
}

// ListAssignmentSettings returns all settings, alphabetical by assignment.
func (m *MemoryStore) ListAssignmentSettings(ctx context.Context) ([]model.AssignmentSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	settings := make([]model.AssignmentSetting, 0, len(m.settings))
	for _, setting := range m.settings {
		settings = append(settings, *copySetting(setting))
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Assignment < settings[j].Assignment })
	return settings, nil
}

// GetAssignmentSetting returns the setting for one assignment.
func (m *MemoryStore) GetAssignmentSetting(ctx context.Context, assignment string) (*model.AssignmentSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	setting, ok := m.settings[assignment]
	if !ok {
		return nil, ErrNotFound
	}
	return copySetting(setting), nil
}

// UpsertAssignmentSetting creates or updates the open-view flag. Writing the
// value already stored leaves the timestamp untouched.
func (m *MemoryStore) UpsertAssignmentSetting(ctx context.Context, assignment string, openView bool) (*model.AssignmentSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if setting, ok := m.settings[assignment]; ok {
		if setting.OpenView != openView {
			setting.OpenView = openView
			setting.UpdatedAt = time.Now()
		}
		return copySetting(setting), nil
	}
	m.nextSettingID++
	setting := &model.AssignmentSetting{
		ID:         m.nextSettingID,
		Assignment: assignment,
		OpenView:   openView,
		UpdatedAt:  time.Now(),
	}
	m.settings[assignment] = setting
	return copySetting(setting), nil
}

// SeedDefaultAssignments inserts the configured assignments at
// open-view=false. No-op once any setting row exists.
func (m *MemoryStore) SeedDefaultAssignments(ctx context.Context, names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.settings) > 0 {
		return nil
	}
	now := time.Now()
	for _, name := range names {
		m.nextSettingID++
		m.settings[name] = &model.AssignmentSetting{
			ID:         m.nextSettingID,
			Assignment: name,
			OpenView:   false,
			UpdatedAt:  now,
		}
	}
	return nil
}

// ResetAssignmentSettings turns open-view off everywhere; rows stay.
func (m *MemoryStore) ResetAssignmentSettings(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, setting := range m.settings {
		if setting.OpenView {
			setting.OpenView = false
			setting.UpdatedAt = now
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
