package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
)

// HTTPError интерфейс для ошибок с HTTP статусом и сообщением.
// Используется для избежания циклических зависимостей
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
}

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleGinError логирует ошибку и отвечает JSON с правильным статусом.
// AppError отдает свой статус и сообщение, остальные ошибки становятся 500
func HandleGinError(c *gin.Context, log *zap.SugaredLogger, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := http.StatusInternalServerError
	message := "Внутренняя ошибка сервера"

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()
	}

	fields := []interface{}{
		"error", err,
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Context != "" {
		fields = append(fields, "context", appErr.Context)
	}

	if statusCode >= http.StatusInternalServerError {
		log.Errorw("request failed", fields...)
	} else {
		log.Warnw("request failed", fields...)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}
