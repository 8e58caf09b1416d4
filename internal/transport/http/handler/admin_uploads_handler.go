package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/core/config"
	"fanfare-backend/internal/domain"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
	"fanfare-backend/pkg/utils"
)

type AdminUploadsHandler struct {
	objects domain.StorageObjectRepository
	cfg     config.Uploads
}

func NewAdminUploadsHandler(objects domain.StorageObjectRepository, cfg config.Uploads) *AdminUploadsHandler {
	return &AdminUploadsHandler{objects: objects, cfg: cfg}
}

var allowedUploadExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {}, ".pdf": {},
}

// Upload 存本地磁盘并登记对象元数据，返回可访问 URL
func (h *AdminUploadsHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.FailWith(c, http.StatusBadRequest, "file is required")
		return
	}
	if max := int64(h.cfg.MaxSizeMB) << 20; max > 0 && fh.Size > max {
		resp.FailWith(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedUploadExt[ext]; !ok {
		resp.FailWith(c, http.StatusBadRequest, "unsupported file type")
		return
	}

	key := utils.NewID() + ext
	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		resp.Fail(c, err)
		return
	}
	if err := c.SaveUploadedFile(fh, filepath.Join(h.cfg.Dir, key)); err != nil {
		resp.Fail(c, err)
		return
	}

	obj := &domain.StorageObject{
		ID:           utils.NewID(),
		Key:          key,
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		URL:          strings.TrimRight(h.cfg.BaseURL, "/") + "/" + key,
		CreatedBy:    c.GetString(middleware.KeyUserID),
	}
	if err := h.objects.Create(c.Request.Context(), obj); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, obj)
}

func (h *AdminUploadsHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.objects.List(c.Request.Context(), offset, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}
