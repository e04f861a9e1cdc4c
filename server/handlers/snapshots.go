package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/services"
)

// SnapshotHandler управление срезами и журналами изменений
type SnapshotHandler struct {
	*BaseHandler
	snapshots *services.SnapshotService
}

// NewSnapshotHandler создает обработчик срезов
func NewSnapshotHandler(base *BaseHandler, snapshots *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{BaseHandler: base, snapshots: snapshots}
}

// HandleCreateSnapshot захватывает срез текущего состояния проекта
func (h *SnapshotHandler) HandleCreateSnapshot(c *gin.Context) {
	var body struct {
		Author string `json:"author"`
	}
	// Тело необязательно: срез без автора допустим
	_ = c.ShouldBindJSON(&body)

	snapshot, err := h.snapshots.CreateFromStore(c.Param("project_id"), body.Author)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// HandleListSnapshots срезы проекта, опционально в интервале from/to
func (h *SnapshotHandler) HandleListSnapshots(c *gin.Context) {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		h.Error(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.snapshots.List(c.Param("project_id"), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": list, "total": len(list)})
}

// HandleGetSnapshot читает один срез
func (h *SnapshotHandler) HandleGetSnapshot(c *gin.Context) {
	snapshot, err := h.snapshots.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// HandleDeleteSnapshot удаляет один срез
func (h *SnapshotHandler) HandleDeleteSnapshot(c *gin.Context) {
	if err := h.snapshots.Delete(c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// HandleDeleteProjectSnapshots каскадно удаляет срезы проекта
func (h *SnapshotHandler) HandleDeleteProjectSnapshots(c *gin.Context) {
	deleted, err := h.snapshots.DeleteProject(c.Param("project_id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// HandleDiff журнал изменений между двумя срезами, переданными в old и new
func (h *SnapshotHandler) HandleDiff(c *gin.Context) {
	oldID, newID := c.Query("old"), c.Query("new")
	if oldID == "" || newID == "" {
		h.Error(c, apperrors.NewValidationError("query parameters old and new are required", nil))
		return
	}

	if c.Query("format") == "text" {
		lines, summary, err := h.snapshots.Describe(oldID, newID)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines, "summary": summary})
		return
	}

	diff, err := h.snapshots.Diff(oldID, newID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// HandleDiffLatest журнал изменений между двумя последними срезами проекта
func (h *SnapshotHandler) HandleDiffLatest(c *gin.Context) {
	diff, err := h.snapshots.DiffLatest(c.Param("project_id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// parseTimeQuery читает необязательный RFC3339 параметр времени
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name+" must be RFC3339 timestamp", err)
	}
	return &parsed, nil
}
