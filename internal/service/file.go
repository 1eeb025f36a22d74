package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"ClassVault/config"
	"ClassVault/internal/mq"
	"ClassVault/internal/perm"
	"ClassVault/internal/storage"
	"ClassVault/internal/store"
	"ClassVault/model"
	"ClassVault/utils"
)

const (
	maxBatchFiles = 10
	maxFileSize   = 50 << 20 // 50 MB per file
)

// allowedExtensions is the fixed upload allow-list.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"pdf":  true,
	"docx": true,
	"pptx": true,
}

// FileService is the upload/retrieval gateway plus the permission-filtered
// views over file records.
type FileService struct {
	store       store.Store
	blobs       storage.BlobStore
	assignments *AssignmentService
	events      *mq.Publisher

	// configured assignment names; uploads must name one of them
	assignmentNames map[string]bool
}

// NewFileService wires the file service.
func NewFileService(s store.Store, blobs storage.BlobStore, assignments *AssignmentService, events *mq.Publisher, cfg *config.Config) *FileService {
	names := make(map[string]bool, len(cfg.Assignments))
	for _, name := range cfg.Assignments {
		names[name] = true
	}
	return &FileService{
		store:           s,
		blobs:           blobs,
		assignments:     assignments,
		events:          events,
		assignmentNames: names,
	}
}

// UploadInput is the already-validated upload form.
type UploadInput struct {
	Assignment  string
	Label       string
	Description string
	Tags        []string
	Files       []*multipart.FileHeader
}

// RejectedUpload names one file from a batch that was not accepted and why.
type RejectedUpload struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult is the structured outcome of a batch upload. Files succeed
// or fail independently; a partial result is normal, not an error.
type UploadResult struct {
	Saved    []model.FileRecord `json:"saved"`
	Rejected []RejectedUpload   `json:"rejected"`
}

// Upload stores a batch of up to ten files under one assignment. Each file
// is validated, written and recorded independently of its siblings; a file
// whose record cannot be created has its just-written bytes removed again.
func (s *FileService) Upload(ctx context.Context, requester perm.Requester, input UploadInput) (*UploadResult, error) {
	var reasons []string
	if strings.TrimSpace(input.Label) == "" {
		reasons = append(reasons, "label is required")
	}
	if !s.assignmentNames[input.Assignment] {
		reasons = append(reasons, fmt.Sprintf("unknown assignment %q", input.Assignment))
	}
	if len(input.Files) == 0 {
		reasons = append(reasons, "no files provided")
	}
	if len(input.Files) > maxBatchFiles {
		reasons = append(reasons, fmt.Sprintf("at most %d files per upload", maxBatchFiles))
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	result := &UploadResult{}
	for _, header := range input.Files {
		record, reason := s.saveOne(ctx, requester, input, header)
		if reason != "" {
			result.Rejected = append(result.Rejected, RejectedUpload{Name: header.Filename, Reason: reason})
			continue
		}
		result.Saved = append(result.Saved, *record)
		s.events.Publish(ctx, mq.AuditEvent{
			Action:     "file.uploaded",
			TeamNumber: record.TeamNumber,
			FileID:     record.ID,
			Assignment: record.Assignment,
		})
	}
	return result, nil
}

// saveOne validates and persists a single file of a batch. A non-empty
// reason means the file was rejected.
func (s *FileService) saveOne(ctx context.Context, requester perm.Requester, input UploadInput, header *multipart.FileHeader) (*model.FileRecord, string) {
	ext := utils.FileExtension(header.Filename)
	if !allowedExtensions[ext] {
		return nil, fmt.Sprintf("extension %q not allowed", ext)
	}
	if header.Size > maxFileSize {
		return nil, "file exceeds 50 MB"
	}

	src, err := header.Open()
	if err != nil {
		return nil, "unreadable upload: " + err.Error()
	}
	defer src.Close()

	storedName := utils.StoredName(header.Filename)
	if err := s.blobs.Save(ctx, storedName, src, header.Size); err != nil {
		return nil, "store bytes: " + err.Error()
	}

	owner := requester.TeamNumber
	if requester.IsAdmin {
		owner = model.AdminTeamNumber
	}
	record := &model.FileRecord{
		Label:        input.Label,
		OriginalName: header.Filename,
		StoredName:   storedName,
		Extension:    ext,
		Size:         header.Size,
		TeamNumber:   owner,
		Assignment:   input.Assignment,
		Tags:         input.Tags,
		Description:  input.Description,
	}
	if err := s.store.CreateFile(ctx, record); err != nil {
		// Cleanup-on-failure: do not leave orphaned bytes behind.
		if rmErr := s.blobs.Remove(ctx, storedName); rmErr != nil {
			log.Printf("remove blob %s after failed record create: %v", storedName, rmErr)
		}
		return nil, "create record: " + err.Error()
	}
	return record, ""
}

// filterFor applies the permission filter with a single settings snapshot.
func (s *FileService) filterFor(ctx context.Context, files []model.FileRecord, requester perm.Requester) ([]model.FileRecord, error) {
	if requester.IsAdmin {
		return files, nil
	}
	open, err := s.assignments.OpenViewSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return perm.Filter(files, requester, open), nil
}

// List returns every file the requester may see.
func (s *FileService) List(ctx context.Context, requester perm.Requester) ([]model.FileRecord, error) {
	files, err := s.store.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	return s.filterFor(ctx, files, requester)
}

// ListByAssignment returns the visible files of one assignment.
func (s *FileService) ListByAssignment(ctx context.Context, requester perm.Requester, assignment string) ([]model.FileRecord, error) {
	files, err := s.store.ListFilesByAssignment(ctx, assignment)
	if err != nil {
		return nil, err
	}
	return s.filterFor(ctx, files, requester)
}

// ListByTeam returns the visible files owned by one team.
func (s *FileService) ListByTeam(ctx context.Context, requester perm.Requester, teamNumber int) ([]model.FileRecord, error) {
	files, err := s.store.ListFilesByTeam(ctx, teamNumber)
	if err != nil {
		return nil, err
	}
	return s.filterFor(ctx, files, requester)
}

// ListByExtension returns visible files whose extension contains ext.
func (s *FileService) ListByExtension(ctx context.Context, requester perm.Requester, ext string) ([]model.FileRecord, error) {
	files, err := s.store.ListFilesByExtension(ctx, ext)
	if err != nil {
		return nil, err
	}
	return s.filterFor(ctx, files, requester)
}

// Search returns visible files matching the query in label, original name,
// description or tags.
func (s *FileService) Search(ctx context.Context, requester perm.Requester, query string) ([]model.FileRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationErr("query is required")
	}
	files, err := s.store.SearchFiles(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.filterFor(ctx, files, requester)
}

// Download streams a file's bytes after re-checking authorization at
// download time. Bytes missing from the blob store surface as
// storage.ErrContentMissing, distinct from an unknown record id.
func (s *FileService) Download(ctx context.Context, requester perm.Requester, id uint64) (io.ReadCloser, *model.FileRecord, error) {
	record, err := s.store.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	open, err := s.assignments.OpenViewSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !perm.CanDownload(record, requester, open) {
		return nil, nil, ErrForbidden
	}
	reader, _, err := s.blobs.Open(ctx, record.StoredName)
	if err != nil {
		return nil, nil, err
	}
	return reader, record, nil
}

// UpdateDetails edits a file's label, description or tags (owner path).
func (s *FileService) UpdateDetails(ctx context.Context, requester perm.Requester, id uint64, update model.DetailsUpdate) (*model.FileRecord, error) {
	record, err := s.store.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !perm.CanEdit(record, requester) {
		return nil, ErrForbidden
	}
	return s.store.UpdateFileDetails(ctx, id, update)
}

// SetVisibility flips a file's visibility flag (owner path). The flag only
// matters for instructor files but owners may set it regardless.
func (s *FileService) SetVisibility(ctx context.Context, requester perm.Requester, id uint64, visible bool) (*model.FileRecord, error) {
	record, err := s.store.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !perm.CanEdit(record, requester) {
		return nil, ErrForbidden
	}
	return s.store.UpdateFileVisibility(ctx, id, visible)
}

// Delete removes a file through the ordinary owner path.
func (s *FileService) Delete(ctx context.Context, requester perm.Requester, id uint64) error {
	record, err := s.store.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if !perm.CanEdit(record, requester) {
		return ErrForbidden
	}
	if err := s.deleteRecord(ctx, record); err != nil {
		return err
	}
	s.events.Publish(ctx, mq.AuditEvent{
		Action:     "file.deleted",
		TeamNumber: requester.TeamNumber,
		FileID:     record.ID,
		Assignment: record.Assignment,
	})
	return nil
}

// AdminDelete removes any file. Callers must have verified the step-up
// admin secret first; session admin status alone is not enough.
func (s *FileService) AdminDelete(ctx context.Context, id uint64) error {
	record, err := s.store.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deleteRecord(ctx, record); err != nil {
		return err
	}
	s.events.Publish(ctx, mq.AuditEvent{
		Action:     "file.deleted.elevated",
		TeamNumber: model.AdminTeamNumber,
		FileID:     record.ID,
		Assignment: record.Assignment,
	})
	return nil
}

// deleteRecord drops the record, then the bytes. Byte deletion is
// best-effort: a missing or stubborn blob is logged, never fatal, so stale
// metadata can always be cleaned up.
func (s *FileService) deleteRecord(ctx context.Context, record *model.FileRecord) error {
	ok, err := s.store.DeleteFile(ctx, record.ID)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	if err := s.blobs.Remove(ctx, record.StoredName); err != nil {
		if errors.Is(err, storage.ErrContentMissing) {
			log.Printf("blob %s already missing for deleted record %d", record.StoredName, record.ID)
		} else {
			log.Printf("delete blob %s for record %d: %v", record.StoredName, record.ID, err)
		}
	}
	return nil
}

// DeleteTeamFiles removes every file owned by a team, one independent
// delete per record. Returns how many records were deleted.
func (s *FileService) DeleteTeamFiles(ctx context.Context, teamNumber int) (int, error) {
	files, err := s.store.ListFilesByTeam(ctx, teamNumber)
	if err != nil {
		return 0, err
	}
	return s.deleteAll(ctx, files)
}

// DeleteAllFiles removes every file record and its bytes.
func (s *FileService) DeleteAllFiles(ctx context.Context) (int, error) {
	files, err := s.store.ListFiles(ctx)
	if err != nil {
		return 0, err
	}
	return s.deleteAll(ctx, files)
}

// deleteAll is a loop of independent deletes; a crash mid-loop leaves
// partial deletion, which is accepted rather than papered over with a
// transaction the backends do not share.
func (s *FileService) deleteAll(ctx context.Context, files []model.FileRecord) (int, error) {
	deleted := 0
	for i := range files {
		if err := s.deleteRecord(ctx, &files[i]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
