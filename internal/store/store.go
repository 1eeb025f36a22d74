package store

import (
	"context"
	"errors"
	"log"
	"time"

	"ClassVault/config"
	"ClassVault/model"
)

// ErrNotFound is returned when an id, team or assignment does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned on duplicate team number or display name.
var ErrConflict = errors.New("record already exists")

// Store is the record store contract. Both backends behave identically from
// the caller's point of view; neither leaks its internal representation.
type Store interface {
	// Team accounts
	GetTeamByID(ctx context.Context, id uint64) (*model.TeamAccount, error)
	GetTeamByNumber(ctx context.Context, number int) (*model.TeamAccount, error)
	GetTeamByName(ctx context.Context, name string) (*model.TeamAccount, error)
	CreateTeam(ctx context.Context, team *model.TeamAccount) error
	UpdateTeamLogin(ctx context.Context, number int, at time.Time) error
	UpdateTeamName(ctx context.Context, number int, name string) error
	UpdateTeamPassword(ctx context.Context, number int, digest string) error
	SetTeamResetToken(ctx context.Context, number int, token string, expires time.Time) error
	GetTeamByResetToken(ctx context.Context, token string) (*model.TeamAccount, error)
	TeamNameAvailable(ctx context.Context, name string, excludeNumber int) (bool, error)
	ListTeams(ctx context.Context) ([]model.TeamAccount, error)
	DeleteTeam(ctx context.Context, number int) (bool, error)

	// File records
	CreateFile(ctx context.Context, file *model.FileRecord) error
	GetFile(ctx context.Context, id uint64) (*model.FileRecord, error)
	ListFiles(ctx context.Context) ([]model.FileRecord, error)
	ListFilesByTeam(ctx context.Context, number int) ([]model.FileRecord, error)
	ListFilesByExtension(ctx context.Context, ext string) ([]model.FileRecord, error)
	ListFilesByAssignment(ctx context.Context, assignment string) ([]model.FileRecord, error)
	SearchFiles(ctx context.Context, query string) ([]model.FileRecord, error)
	DeleteFile(ctx context.Context, id uint64) (bool, error)
	UpdateFileVisibility(ctx context.Context, id uint64, visible bool) (*model.FileRecord, error)
	UpdateFileDetails(ctx context.Context, id uint64, update model.DetailsUpdate) (*model.FileRecord, error)

	// Assignment visibility settings
	ListAssignmentSettings(ctx context.Context) ([]model.AssignmentSetting, error)
	GetAssignmentSetting(ctx context.Context, assignment string) (*model.AssignmentSetting, error)
	UpsertAssignmentSetting(ctx context.Context, assignment string, openView bool) (*model.AssignmentSetting, error)
	SeedDefaultAssignments(ctx context.Context, names []string) error
	ResetAssignmentSettings(ctx context.Context) error

	Close() error
}

// Open builds the record store once at startup. MySQL is attempted first;
// on connection failure the volatile in-memory store takes over for the
// rest of the process lifetime. Default assignment settings are seeded
// asynchronously, best-effort.
func Open(cfg *config.Config) Store {
	var s Store
	mysqlStore, err := NewMySQLStore(cfg)
	if err != nil {
		log.Printf("mysql unavailable, falling back to in-memory store: %v", err)
		s = NewMemoryStore()
	} else {
		s = mysqlStore
	}

	assignments := append([]string(nil), cfg.Assignments...)
	go func() {
		if err := s.SeedDefaultAssignments(context.Background(), assignments); err != nil {
			log.Printf("seed default assignments failed: %v", err)
		}
	}()
	return s
}
