package handler

import (
	"net/http"

	"ClassVault/internal/dto"
	"ClassVault/internal/service"
	"ClassVault/utils"

	"github.com/gin-gonic/gin"
)

// Login authenticates a team and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if !h.Throttle.Allow(ctx, req.TeamNumber) {
		fail(c, service.ErrTooManyAttempts)
		return
	}

	team, err := h.Auth.Login(ctx, req.TeamNumber, req.Password)
	if err != nil {
		h.Throttle.Fail(ctx, req.TeamNumber)
		fail(c, err)
		return
	}
	h.Throttle.Reset(ctx, req.TeamNumber)

	token, err := utils.GenerateToken(team.TeamNumber, team.IsAdmin())
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, dto.LoginResponse{Token: token, Team: team})
}

// Register sets a team's own password and optional display name.
func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	team, err := h.Auth.Register(c.Request.Context(), req.TeamNumber, req.Name, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, team)
}

// ChangePassword replaces the logged-in team's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	requester := utils.RequesterFrom(c)
	if err := h.Auth.ChangePassword(c.Request.Context(), requester.TeamNumber, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// ResetPassword redeems an instructor-issued reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}
