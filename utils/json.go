package utils

import (
	"errors"
	"net/http"

	"ClassVault/internal/store"

	"github.com/gin-gonic/gin"
)

// Success writes a success JSON response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": data,
	})
}

// Fail writes an error JSON response with the given status.
func Fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"code": -1,
		"msg":  err.Error(),
	})
}

// FailErr maps store sentinels onto HTTP statuses; everything else is a 500.
func FailErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		Fail(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrConflict):
		Fail(c, http.StatusConflict, err)
	default:
		Fail(c, http.StatusInternalServerError, err)
	}
}
