package handler

import (
	"net/http"

	"ClassVault/internal/dto"
	"ClassVault/internal/mq"
	"ClassVault/model"
	"ClassVault/utils"

	"github.com/gin-gonic/gin"
)

// ListTeams returns every team account, number ascending.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.Auth.ListTeams(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, teams)
}

// ListAssignments returns every assignment visibility setting.
func (h *Handler) ListAssignments(c *gin.Context) {
	settings, err := h.Assignments.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, settings)
}

// SetAssignmentVisibility toggles an assignment's open-view flag.
func (h *Handler) SetAssignmentVisibility(c *gin.Context) {
	var req dto.AssignmentVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	setting, err := h.Assignments.SetOpenView(c.Request.Context(), req.Assignment, *req.OpenView)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, setting)
}

// IssueResetToken creates a password-reset token for a team. The token is
// returned to the instructor, who hands it to the team out of band.
func (h *Handler) IssueResetToken(c *gin.Context) {
	var req dto.IssueResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	token, err := h.Auth.IssueResetToken(c.Request.Context(), req.TeamNumber)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, dto.ResetTokenResponse{TeamNumber: req.TeamNumber, Token: token})
}

// AdminDeleteFile removes any file after the step-up secret check.
func (h *Handler) AdminDeleteFile(c *gin.Context) {
	var req dto.AdminDeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.checkAdminSecret(c, req.AdminSecret) {
		return
	}
	if err := h.Files.AdminDelete(c.Request.Context(), req.FileID); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// DeleteTeam removes a team's files, then its account. The two steps are
// independent; a failure in between leaves files gone and the account
// intact, which the next delete attempt finishes.
func (h *Handler) DeleteTeam(c *gin.Context) {
	var req dto.DeleteTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.checkAdminSecret(c, req.AdminSecret) {
		return
	}
	ctx := c.Request.Context()

	deleted, err := h.Files.DeleteTeamFiles(ctx, req.TeamNumber)
	if err != nil {
		fail(c, err)
		return
	}
	ok, err := h.Auth.DeleteTeam(ctx, req.TeamNumber)
	if err != nil {
		fail(c, err)
		return
	}
	h.Events.Publish(ctx, mq.AuditEvent{
		Action:     "team.deleted",
		TeamNumber: req.TeamNumber,
	})
	utils.Success(c, gin.H{"files_deleted": deleted, "team_deleted": ok})
}

// DeleteAllFiles removes every file record and its bytes.
func (h *Handler) DeleteAllFiles(c *gin.Context) {
	var req dto.DeleteAllFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.checkAdminSecret(c, req.AdminSecret) {
		return
	}
	ctx := c.Request.Context()
	deleted, err := h.Files.DeleteAllFiles(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	h.Events.Publish(ctx, mq.AuditEvent{
		Action:     "files.deleted.all",
		TeamNumber: model.AdminTeamNumber,
	})
	utils.Success(c, dto.BulkDeleteResponse{Deleted: deleted})
}

// ResetServer wipes files and student accounts and turns every assignment's
// open-view off. Settings rows themselves stay.
func (h *Handler) ResetServer(c *gin.Context) {
	var req dto.ResetServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !h.checkAdminSecret(c, req.AdminSecret) {
		return
	}
	ctx := c.Request.Context()

	filesDeleted, err := h.Files.DeleteAllFiles(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	teamsDeleted, err := h.Auth.DeleteStudentTeams(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Assignments.ResetAll(ctx); err != nil {
		fail(c, err)
		return
	}
	h.Events.Publish(ctx, mq.AuditEvent{
		Action:     "server.reset",
		TeamNumber: model.AdminTeamNumber,
	})
	utils.Success(c, dto.ResetServerResponse{
		FilesDeleted: filesDeleted,
		TeamsDeleted: teamsDeleted,
	})
}
