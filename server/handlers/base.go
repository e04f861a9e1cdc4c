// Package handlers HTTP-обработчики поверх сервисного слоя
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/middleware"
)

// BaseHandler общая часть обработчиков: логгер и обработка ошибок
type BaseHandler struct {
	log *zap.SugaredLogger
}

// NewBaseHandler создает базовый обработчик
func NewBaseHandler(log *zap.SugaredLogger) *BaseHandler {
	return &BaseHandler{log: log}
}

// Error отвечает JSON-ошибкой с правильным статусом
func (h *BaseHandler) Error(c *gin.Context, err error) {
	middleware.HandleGinError(c, h.log, err)
}
