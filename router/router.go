package router

import (
	"ClassVault/internal/handler"
	"ClassVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes around the injected handlers.
func InitRouter(h *handler.Handler) *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/register", h.Register)
		api.POST("/reset-password", h.ResetPassword)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		auth.POST("/password", h.ChangePassword)
		auth.GET("/assignments", h.ListAssignments)

		file := auth.Group("/file")
		{
			file.GET("/list", h.ListFiles)
			file.POST("/search", h.SearchFiles)
			file.POST("/upload", h.UploadFiles)
			file.GET("/download/:fileID", h.DownloadFile)
			file.POST("/details", h.UpdateFileDetails)
			file.POST("/visibility", h.SetFileVisibility)
			file.POST("/delete", h.DeleteFile)
		}

		admin := auth.Group("/admin")
		admin.Use(utils.AdminOnly())
		{
			admin.GET("/teams", h.ListTeams)
			admin.POST("/assignment/visibility", h.SetAssignmentVisibility)
			admin.POST("/team/reset-token", h.IssueResetToken)
			admin.POST("/file/delete", h.AdminDeleteFile)
			admin.POST("/team/delete", h.DeleteTeam)
			admin.POST("/files/delete-all", h.DeleteAllFiles)
			admin.POST("/reset", h.ResetServer)
		}
	}
	return r
}
