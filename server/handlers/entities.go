package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
)

// EntityHandler чтение сохраненных сущностей хранилища
type EntityHandler struct {
	*BaseHandler
	db *database.DB
}

// NewEntityHandler создает обработчик сущностей
func NewEntityHandler(base *BaseHandler, db *database.DB) *EntityHandler {
	return &EntityHandler{BaseHandler: base, db: db}
}

// HandleListProjects все проекты
func (h *EntityHandler) HandleListProjects(c *gin.Context) {
	projects, err := h.db.LoadProjects()
	if err != nil {
		h.Error(c, apperrors.NewInternalError("failed to load projects", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

// HandleListAreas участки проекта
func (h *EntityHandler) HandleListAreas(c *gin.Context) {
	areas, err := h.db.LoadAreas(c.Param("project_id"))
	if err != nil {
		h.Error(c, apperrors.NewInternalError("failed to load areas", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas, "total": len(areas)})
}

// HandleListCells станции проекта
func (h *EntityHandler) HandleListCells(c *gin.Context) {
	cells, err := h.db.LoadCells(c.Param("project_id"))
	if err != nil {
		h.Error(c, apperrors.NewInternalError("failed to load cells", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": cells, "total": len(cells)})
}

// HandleListRobots роботы проекта
func (h *EntityHandler) HandleListRobots(c *gin.Context) {
	robots, err := h.db.LoadRobots(c.Param("project_id"))
	if err != nil {
		h.Error(c, apperrors.NewInternalError("failed to load robots", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"robots": robots, "total": len(robots)})
}

// HandleListTools инструменты проекта
func (h *EntityHandler) HandleListTools(c *gin.Context) {
	tools, err := h.db.LoadTools(c.Param("project_id"))
	if err != nil {
		h.Error(c, apperrors.NewInternalError("failed to load tools", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools, "total": len(tools)})
}
