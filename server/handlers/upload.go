package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/services"
)

// UploadHandler прием книг и история загрузок
type UploadHandler struct {
	*BaseHandler
	uploads *services.UploadService
}

// NewUploadHandler создает обработчик загрузки
func NewUploadHandler(base *BaseHandler, uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploads: uploads}
}

// HandleUpload принимает multipart-форму с книгами и прогоняет их через
// конвейер загрузки. Поле files — одна или несколько книг, поле
// project_id — проект, к которому применяется результат.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	projectID := c.PostForm("project_id")
	if projectID == "" {
		h.Error(c, apperrors.NewValidationError("project_id form field is required", nil))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.Error(c, apperrors.NewValidationError("invalid multipart form", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		h.Error(c, apperrors.NewValidationError("no files in form field 'files'", nil))
		return
	}

	var paths []string
	// Временные копии удаляются после разбора независимо от исхода
	defer func() {
		for _, path := range paths {
			os.Remove(path)
		}
	}()

	for _, fileHeader := range files {
		path, err := h.uploads.SaveUpload(fileHeader)
		if err != nil {
			h.Error(c, err)
			return
		}
		paths = append(paths, path)
	}

	report, err := h.uploads.Ingest(c.Request.Context(), projectID, paths)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// HandleListImportRuns история загрузок от новых к старым
func (h *UploadHandler) HandleListImportRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.Error(c, apperrors.NewValidationError("limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	runs, err := h.uploads.ListImportRuns(limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}
