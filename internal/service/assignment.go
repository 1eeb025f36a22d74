package service

import (
	"context"

	"ClassVault/internal/mq"
	"ClassVault/internal/perm"
	"ClassVault/internal/store"
	"ClassVault/model"
)

// AssignmentService manages per-assignment open-view settings.
type AssignmentService struct {
	store  store.Store
	events *mq.Publisher
}

// NewAssignmentService wires the assignment service.
func NewAssignmentService(s store.Store, events *mq.Publisher) *AssignmentService {
	return &AssignmentService{store: s, events: events}
}

// List returns all settings, alphabetical by assignment.
func (s *AssignmentService) List(ctx context.Context) ([]model.AssignmentSetting, error) {
	return s.store.ListAssignmentSettings(ctx)
}

// SetOpenView flips an assignment's open-view flag, creating the setting
// row if it was never seeded.
func (s *AssignmentService) SetOpenView(ctx context.Context, assignment string, open bool) (*model.AssignmentSetting, error) {
	if assignment == "" {
		return nil, validationErr("assignment must not be empty")
	}
	setting, err := s.store.UpsertAssignmentSetting(ctx, assignment, open)
	if err != nil {
		return nil, err
	}
	detail := "open-view off"
	if open {
		detail = "open-view on"
	}
	s.events.Publish(ctx, mq.AuditEvent{
		Action:     "assignment.toggled",
		TeamNumber: model.AdminTeamNumber,
		Assignment: assignment,
		Detail:     detail,
	})
	return setting, nil
}

// OpenViewSnapshot builds the per-request open-view map consumed by the
// permission filter. Taken once per request so every file in a listing is
// judged against the same settings.
func (s *AssignmentService) OpenViewSnapshot(ctx context.Context) (perm.OpenView, error) {
	settings, err := s.store.ListAssignmentSettings(ctx)
	if err != nil {
		return nil, err
	}
	open := make(perm.OpenView, len(settings))
	for _, setting := range settings {
		open[setting.Assignment] = setting.OpenView
	}
	return open, nil
}

// ResetAll turns open-view off for every assignment; rows stay.
func (s *AssignmentService) ResetAll(ctx context.Context) error {
	return s.store.ResetAssignmentSettings(ctx)
}
