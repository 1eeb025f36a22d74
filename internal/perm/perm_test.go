package perm

import (
	"testing"

	"ClassVault/model"
)

var (
	admin = Requester{TeamNumber: 0, IsAdmin: true}
	team2 = Requester{TeamNumber: 2}
	team3 = Requester{TeamNumber: 3}
)

func studentFile(team int, assignment string) *model.FileRecord {
	return &model.FileRecord{ID: 1, TeamNumber: team, Assignment: assignment}
}

func instructorFile(visible bool, assignment string) *model.FileRecord {
	return &model.FileRecord{ID: 2, TeamNumber: 0, Assignment: assignment, Visible: visible}
}

// TestAdminSeesEverything checks that no flag combination hides a file
// from the instructor.
func TestAdminSeesEverything(t *testing.T) {
	files := []*model.FileRecord{
		studentFile(2, "A1"),
		studentFile(3, "A2"),
		instructorFile(false, "A1"),
		instructorFile(true, "A2"),
	}
	for _, f := range files {
		if !Visible(f, admin, OpenView{}) {
			t.Errorf("admin should see file owned by team %d", f.TeamNumber)
		}
	}
}

// TestInstructorFileIgnoresOpenView checks rule 2: team-0 files depend only
// on their own visible flag, never on assignment open-view.
func TestInstructorFileIgnoresOpenView(t *testing.T) {
	cases := []struct {
		name    string
		visible bool
		open    OpenView
		want    bool
	}{
		{"hidden, assignment closed", false, OpenView{"A1": false}, false},
		{"hidden, assignment open", false, OpenView{"A1": true}, false},
		{"visible, assignment closed", true, OpenView{"A1": false}, true},
		{"visible, assignment open", true, OpenView{"A1": true}, true},
	}
	for _, tc := range cases {
		f := instructorFile(tc.visible, "A1")
		if got := Visible(f, team2, tc.open); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestStudentFileVisibility checks rule 3: own files always, others only
// through open-view.
func TestStudentFileVisibility(t *testing.T) {
	f := studentFile(2, "A1")

	if !Visible(f, team2, OpenView{}) {
		t.Error("owner should always see its own file")
	}
	if Visible(f, team3, OpenView{}) {
		t.Error("non-owner should not see the file with no open-view")
	}
	if Visible(f, team3, OpenView{"A1": false}) {
		t.Error("non-owner should not see the file while assignment is closed")
	}
	if !Visible(f, team3, OpenView{"A1": true}) {
		t.Error("non-owner should see the file once the assignment is open")
	}
	if Visible(f, team3, OpenView{"A2": true}) {
		t.Error("open-view on another assignment must not leak this file")
	}
}

// TestOpenViewToggleScenario walks the open/close/open sequence: team 3
// gains and loses sight of team 2's file as the instructor toggles A1.
func TestOpenViewToggleScenario(t *testing.T) {
	x := studentFile(2, "A1")

	if Visible(x, team3, OpenView{"A1": false}) {
		t.Fatal("closed assignment: file should be hidden from team 3")
	}
	if !Visible(x, team3, OpenView{"A1": true}) {
		t.Fatal("open assignment: file should be visible to team 3")
	}
	if Visible(x, team3, OpenView{"A1": false}) {
		t.Fatal("closed again: file should be hidden from team 3 again")
	}
	for _, open := range []bool{false, true, false} {
		if !Visible(x, team2, OpenView{"A1": open}) {
			t.Fatal("owner must see its file regardless of toggling")
		}
	}
}

// TestFilter checks the list filter and that admin lists pass unfiltered.
func TestFilter(t *testing.T) {
	files := []model.FileRecord{
		{ID: 1, TeamNumber: 2, Assignment: "A1"},
		{ID: 2, TeamNumber: 3, Assignment: "A1"},
		{ID: 3, TeamNumber: 0, Assignment: "A1", Visible: true},
		{ID: 4, TeamNumber: 0, Assignment: "A1", Visible: false},
	}
	open := OpenView{"A1": false}

	got := Filter(files, team2, open)
	if len(got) != 2 {
		t.Fatalf("team 2 should see 2 files, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("team 2 should see its own file and the visible instructor file, got %v", got)
	}

	if got := Filter(files, admin, open); len(got) != len(files) {
		t.Errorf("admin list must be unfiltered, got %d of %d", len(got), len(files))
	}
}

// TestCanEdit checks the ownership-based mutation rules.
func TestCanEdit(t *testing.T) {
	own := studentFile(2, "A1")
	other := studentFile(3, "A1")
	instr := instructorFile(true, "A1")

	if !CanEdit(own, team2) {
		t.Error("owner should edit its own file")
	}
	if CanEdit(other, team2) {
		t.Error("non-owner must not edit another team's file")
	}
	if CanEdit(other, admin) {
		t.Error("admin edit path covers only team-0 files")
	}
	if !CanEdit(instr, admin) {
		t.Error("admin should edit instructor files")
	}
	if CanEdit(instr, team2) {
		t.Error("students must not edit instructor files")
	}
}
