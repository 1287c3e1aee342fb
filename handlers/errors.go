package handlers

import (
	"fmt"
	"net/http"
	"plants/logger"
	"plants/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const missingFieldsMessage = "Missing required fields: name, image, price"

// ValidationError 請求缺少必要欄位或格式錯誤
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError 指定id的植物不存在
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Plant with id=%s not found", e.ID)
}

// 將store回傳的錯誤轉為對應的HTTP回應
func respondError(c *gin.Context, id string, err error) {
	if errors.Is(err, store.ErrPlantNotFound) {
		err = &NotFoundError{ID: id}
	}
	_ = c.Error(err)

	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var storageErr *store.StorageError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundErr.Error()})
	case errors.As(err, &storageErr):
		logger.Error().
			Err(storageErr.Err).
			Str("op", storageErr.Op).
			Str("kind", string(storageErr.Kind)).
			Msg("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Database error: " + storageErr.Err.Error(),
		})
	default:
		logger.Error().Err(err).Msg("unexpected handler error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
