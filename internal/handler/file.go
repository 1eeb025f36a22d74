package handler

import (
	"net/http"
	"strconv"

	"ClassVault/internal/dto"
	"ClassVault/internal/service"
	"ClassVault/model"
	"ClassVault/utils"

	"github.com/gin-gonic/gin"
)

// UploadFiles accepts a multipart batch of up to ten files under one
// assignment. Files succeed or fail independently; the response lists both.
func (h *Handler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}
	input := service.UploadInput{
		Assignment:  c.PostForm("assignment"),
		Label:       c.PostForm("label"),
		Description: c.PostForm("description"),
		Tags:        utils.ParseTags(c.PostForm("tags")),
		Files:       form.File["files"],
	}
	result, err := h.Files.Upload(c.Request.Context(), utils.RequesterFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, result)
}

// ListFiles lists visible files, optionally narrowed by query parameters:
// assignment (exact), team (number), ext (substring).
func (h *Handler) ListFiles(c *gin.Context) {
	requester := utils.RequesterFrom(c)
	ctx := c.Request.Context()

	var (
		files []model.FileRecord
		err   error
	)
	switch {
	case c.Query("assignment") != "":
		files, err = h.Files.ListByAssignment(ctx, requester, c.Query("assignment"))
	case c.Query("team") != "":
		team, convErr := strconv.Atoi(c.Query("team"))
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "team must be a number"})
			return
		}
		files, err = h.Files.ListByTeam(ctx, requester, team)
	case c.Query("ext") != "":
		files, err = h.Files.ListByExtension(ctx, requester, c.Query("ext"))
	default:
		files, err = h.Files.List(ctx, requester)
	}
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, files)
}

// SearchFiles finds visible files by label, name, description or tag.
func (h *Handler) SearchFiles(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	files, err := h.Files.Search(c.Request.Context(), utils.RequesterFrom(c), req.Query)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, files)
}

// DownloadFile streams a file's bytes after the download-time permission
// check.
func (h *Handler) DownloadFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("fileID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}
	reader, record, err := h.Files.Download(c.Request.Context(), utils.RequesterFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	defer reader.Close()

	name := utils.SanitizeHeaderFilename(record.OriginalName)
	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	}
	c.DataFromReader(http.StatusOK, record.Size, "application/octet-stream", reader, extraHeaders)
}

// UpdateFileDetails edits a file's label, description or tags.
func (h *Handler) UpdateFileDetails(c *gin.Context) {
	var req dto.FileDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	update := model.DetailsUpdate{
		Label:       req.Label,
		Description: req.Description,
		Tags:        req.Tags,
	}
	record, err := h.Files.UpdateDetails(c.Request.Context(), utils.RequesterFrom(c), req.FileID, update)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, record)
}

// SetFileVisibility flips a file's visibility flag.
func (h *Handler) SetFileVisibility(c *gin.Context) {
	var req dto.FileVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	record, err := h.Files.SetVisibility(c.Request.Context(), utils.RequesterFrom(c), req.FileID, *req.Visible)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, record)
}

// DeleteFile removes one of the requester's own files.
func (h *Handler) DeleteFile(c *gin.Context) {
	var req dto.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.Files.Delete(c.Request.Context(), utils.RequesterFrom(c), req.FileID); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}
