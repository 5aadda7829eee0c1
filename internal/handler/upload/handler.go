package upload

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/storage"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

// maxUploadSize bounds a single image upload.
const maxUploadSize = 10 << 20

type Handler struct {
	storage storage.Service
}

func NewHandler(store storage.Service) *Handler {
	return &Handler{storage: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/uploads")
	{
		group.POST("", h.Upload)
		group.DELETE("/:fileId", h.Delete)
		group.DELETE("", h.DeleteByURL)
	}
}

// Upload accepts a multipart file field named "file" and an optional
// "folder" form value.
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		httputil.BadRequest(c, "file is required")
		return
	}
	if header.Size > maxUploadSize {
		httputil.BadRequest(c, "file exceeds the 10MB limit")
		return
	}

	file, err := header.Open()
	if err != nil {
		httputil.Error(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		httputil.Error(c, err)
		return
	}

	folder := c.DefaultPostForm("folder", "misc")
	result, err := h.storage.Upload(c.Request.Context(), data, header.Filename, folder)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "file uploaded", result)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.storage.Delete(c.Request.Context(), c.Param("fileId")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "file deleted", nil)
}

// DeleteByURL removes a file given its public URL, passed as a query
// parameter.
func (h *Handler) DeleteByURL(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		httputil.BadRequest(c, "url query parameter is required")
		return
	}
	if err := h.storage.DeleteByURL(c.Request.Context(), url); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "file deleted", nil)
}
