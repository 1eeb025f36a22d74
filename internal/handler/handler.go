package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"ClassVault/internal/mq"
	"ClassVault/internal/repo"
	"ClassVault/internal/service"
	"ClassVault/internal/storage"
	"ClassVault/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries the wired services. Everything is injected once from
// main; there are no package-level store singletons.
type Handler struct {
	Auth        *service.AuthService
	Files       *service.FileService
	Assignments *service.AssignmentService
	Throttle    *repo.LoginThrottle
	Events      *mq.Publisher

	adminSecret string
}

// New builds the handler set.
func New(auth *service.AuthService, files *service.FileService, assignments *service.AssignmentService,
	throttle *repo.LoginThrottle, events *mq.Publisher, adminSecret string) *Handler {
	return &Handler{
		Auth:        auth,
		Files:       files,
		Assignments: assignments,
		Throttle:    throttle,
		Events:      events,
		adminSecret: adminSecret,
	}
}

// checkAdminSecret verifies the step-up credential for destructive admin
// operations. Session admin status alone never unlocks these.
func (h *Handler) checkAdminSecret(c *gin.Context, secret string) bool {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.adminSecret)) != 1 {
		utils.Fail(c, http.StatusForbidden, errors.New("admin secret mismatch"))
		return false
	}
	return true
}

// fail maps service errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    -1,
			"msg":     "validation failed",
			"reasons": vErr.Reasons,
		})
	case errors.Is(err, service.ErrBadCredentials):
		utils.Fail(c, http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrTooManyAttempts):
		utils.Fail(c, http.StatusTooManyRequests, err)
	case errors.Is(err, service.ErrForbidden):
		utils.Fail(c, http.StatusForbidden, err)
	case errors.Is(err, storage.ErrContentMissing):
		// The record exists but its bytes are gone: not the same as 404.
		utils.Fail(c, http.StatusGone, err)
	default:
		utils.FailErr(c, err)
	}
}
