// Package perm decides which file records a requester may see or touch.
package perm

import "ClassVault/model"

// Requester is the resolved identity attached to an inbound request. It is
// produced by the session layer; nothing in here re-derives identity.
type Requester struct {
	TeamNumber int  `json:"team_number"`
	IsAdmin    bool `json:"is_admin"`
}

// OpenView is a snapshot of assignment open-view flags, taken once per
// request. An absent assignment means open-view is off. Re-querying per file
// risks an inconsistent result set if the instructor flips a flag
// mid-request, so callers build the snapshot first and pass it around.
type OpenView map[string]bool

// Visible reports whether the requester may see the file.
//
// Rules, in precedence order:
//  1. admins see everything;
//  2. instructor-owned (team 0) files are gated only by their own visible
//     flag — assignment open-view deliberately does not apply;
//  3. student files are visible to their owner, or to anyone once the
//     file's assignment is open-view.
func Visible(file *model.FileRecord, requester Requester, open OpenView) bool {
	if requester.IsAdmin {
		return true
	}
	if file.TeamNumber == model.AdminTeamNumber {
		return file.Visible
	}
	if file.TeamNumber == requester.TeamNumber {
		return true
	}
	return open[file.Assignment]
}

// Filter returns the subset of files visible to the requester. Admin lists
// are never filtered.
func Filter(files []model.FileRecord, requester Requester, open OpenView) []model.FileRecord {
	if requester.IsAdmin {
		return files
	}
	visible := make([]model.FileRecord, 0, len(files))
	for i := range files {
		if Visible(&files[i], requester, open) {
			visible = append(visible, files[i])
		}
	}
	return visible
}

// CanDownload re-evaluates the visibility rules at download time. A client
// can request a file id directly without ever listing, so the download path
// must not trust the list filter.
func CanDownload(file *model.FileRecord, requester Requester, open OpenView) bool {
	return Visible(file, requester, open)
}

// CanEdit reports whether the requester may mutate (edit, re-upload,
// delete) the file through the ordinary owner path. Non-admins own their
// team's files; the admin's own-content path covers only team-0 files.
// Deleting arbitrary files is a separate elevated operation gated by the
// step-up admin secret, not by this check.
func CanEdit(file *model.FileRecord, requester Requester) bool {
	if requester.IsAdmin {
		return file.TeamNumber == model.AdminTeamNumber
	}
	return file.TeamNumber == requester.TeamNumber
}
