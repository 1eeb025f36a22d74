package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"ClassVault/model"
)

func TestTeamLifecycle(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	team := &model.TeamAccount{TeamNumber: 3, Name: "Rockets", Active: true}
	if err := m.CreateTeam(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if team.ID == 0 {
		t.Error("create should assign an id")
	}

	if err := m.CreateTeam(ctx, &model.TeamAccount{TeamNumber: 3}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate team number: got %v, want ErrConflict", err)
	}

	got, err := m.GetTeamByNumber(ctx, 3)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Rockets" {
		t.Errorf("got name %q", got.Name)
	}

	if _, err := m.GetTeamByNumber(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown team: got %v, want ErrNotFound", err)
	}

	ok, err := m.DeleteTeam(ctx, 3)
	if err != nil || !ok {
		t.Fatalf("delete team: ok=%v err=%v", ok, err)
	}
	ok, err = m.DeleteTeam(ctx, 3)
	if err != nil || ok {
		t.Errorf("second delete: ok=%v err=%v, want false nil", ok, err)
	}
}

func TestTeamNameAvailable(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.CreateTeam(ctx, &model.TeamAccount{TeamNumber: 1, Name: "Rockets"}); err != nil {
		t.Fatal(err)
	}

	free, err := m.TeamNameAvailable(ctx, "rockets", 2)
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Error("name check must be case-insensitive")
	}

	// A team keeping its own name is not a collision.
	free, err = m.TeamNameAvailable(ctx, "Rockets", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("own name should stay available to the holder")
	}
}

func TestUpdateTeamPasswordClearsResetToken(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.CreateTeam(ctx, &model.TeamAccount{TeamNumber: 4}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTeamResetToken(ctx, 4, "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetTeamByResetToken(ctx, "tok-1"); err != nil {
		t.Fatalf("lookup by token: %v", err)
	}

	if err := m.UpdateTeamPassword(ctx, 4, "digest"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetTeamByResetToken(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("token should be cleared on password update, got %v", err)
	}
}

func TestFileSearch(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	records := []*model.FileRecord{
		{Label: "Sprint review", OriginalName: "review.pdf", Extension: "pdf", TeamNumber: 2, Assignment: "A1"},
		{Label: "deck", OriginalName: "final.pptx", Extension: "pptx", Description: "closing REVIEW deck", TeamNumber: 3, Assignment: "A1"},
		{Label: "notes", OriginalName: "notes.docx", Extension: "docx", Tags: []string{"review", "draft"}, TeamNumber: 3, Assignment: "A2"},
		{Label: "poster", OriginalName: "poster.png", Extension: "png", TeamNumber: 4, Assignment: "A2"},
	}
	for _, r := range records {
		if err := m.CreateFile(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := m.SearchFiles(ctx, "review")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("search should match label, description and tags: got %d files", len(got))
	}

	got, err = m.ListFilesByExtension(ctx, "PPTX")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].OriginalName != "final.pptx" {
		t.Fatalf("extension match should be case-insensitive: got %v", got)
	}

	byTeam, err := m.ListFilesByTeam(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(byTeam) != 2 {
		t.Errorf("team 3 owns 2 files, got %d", len(byTeam))
	}

	byAssignment, err := m.ListFilesByAssignment(ctx, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byAssignment) != 2 {
		t.Errorf("assignment A1 holds 2 files, got %d", len(byAssignment))
	}
}

func TestUpdateFileDetails(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	record := &model.FileRecord{Label: "original", Description: "old", Tags: []string{"a"}}
	if err := m.CreateFile(ctx, record); err != nil {
		t.Fatal(err)
	}

	empty := "  "
	desc := "new description"
	tags := []string{"b", "c"}
	got, err := m.UpdateFileDetails(ctx, record.ID, model.DetailsUpdate{
		Label:       &empty,
		Description: &desc,
		Tags:        &tags,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != "original" {
		t.Errorf("blank label must be ignored, got %q", got.Label)
	}
	if got.Description != "new description" {
		t.Errorf("description not applied: %q", got.Description)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "b" {
		t.Errorf("tags not replaced: %v", got.Tags)
	}

	// Omitted fields stay untouched.
	label := "renamed"
	got, err = m.UpdateFileDetails(ctx, record.ID, model.DetailsUpdate{Label: &label})
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != "renamed" || got.Description != "new description" {
		t.Errorf("partial update wrong: label=%q description=%q", got.Label, got.Description)
	}

	if _, err := m.UpdateFileDetails(ctx, 999, model.DetailsUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestFileCopyOnRead(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	record := &model.FileRecord{Label: "x", Tags: []string{"a"}}
	if err := m.CreateFile(ctx, record); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetFile(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.Label = "mutated"
	got.Tags[0] = "mutated"

	again, err := m.GetFile(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Label != "x" || again.Tags[0] != "a" {
		t.Error("mutating a returned record must not change the stored one")
	}
}

func TestUpsertAssignmentSetting(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	first, err := m.UpsertAssignmentSetting(ctx, "A1", true)
	if err != nil {
		t.Fatal(err)
	}
	if !first.OpenView {
		t.Fatal("upsert should create the row open")
	}

	// Writing the stored value again must not touch the timestamp.
	same, err := m.UpsertAssignmentSetting(ctx, "A1", true)
	if err != nil {
		t.Fatal(err)
	}
	if !same.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("unchanged upsert must keep the timestamp")
	}

	flipped, err := m.UpsertAssignmentSetting(ctx, "A1", false)
	if err != nil {
		t.Fatal(err)
	}
	if flipped.OpenView {
		t.Error("flag should flip")
	}
	if !flipped.UpdatedAt.After(first.UpdatedAt) && !flipped.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("changed upsert should refresh the timestamp")
	}
}

func TestSeedDefaultAssignments(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	names := []string{"A1", "A2", "A3"}
	if err := m.SeedDefaultAssignments(ctx, names); err != nil {
		t.Fatal(err)
	}
	settings, err := m.ListAssignmentSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 3 {
		t.Fatalf("seed should create %d rows, got %d", len(names), len(settings))
	}
	for _, s := range settings {
		if s.OpenView {
			t.Errorf("seeded %s should start closed", s.Assignment)
		}
	}

	// A second seed run against a populated table is a no-op.
	if _, err := m.UpsertAssignmentSetting(ctx, "A1", true); err != nil {
		t.Fatal(err)
	}
	if err := m.SeedDefaultAssignments(ctx, []string{"B1", "B2"}); err != nil {
		t.Fatal(err)
	}
	settings, _ = m.ListAssignmentSettings(ctx)
	if len(settings) != 3 {
		t.Errorf("seed must not run twice, got %d rows", len(settings))
	}
}

func TestResetAssignmentSettings(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.SeedDefaultAssignments(ctx, []string{"A1", "A2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.UpsertAssignmentSetting(ctx, "A1", true); err != nil {
		t.Fatal(err)
	}
	if err := m.ResetAssignmentSettings(ctx); err != nil {
		t.Fatal(err)
	}
	settings, err := m.ListAssignmentSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 {
		t.Fatalf("reset must keep the rows, got %d", len(settings))
	}
	for _, s := range settings {
		if s.OpenView {
			t.Errorf("%s should be closed after reset", s.Assignment)
		}
	}
}
