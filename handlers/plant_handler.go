package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"plants/models"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// PlantStore is the persistence surface the handlers need.
type PlantStore interface {
	List(ctx context.Context) ([]models.Plant, error)
	Get(ctx context.Context, id uint) (models.Plant, error)
	Create(ctx context.Context, name, image string, price float64) (models.Plant, error)
	UpdateStock(ctx context.Context, id uint, inStock *bool) (models.Plant, error)
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}

type PlantHandler struct {
	store PlantStore
}

func NewPlantHandler(store PlantStore) *PlantHandler {
	return &PlantHandler{store: store}
}

// 指標欄位讓 required 同時檢查欄位存在與非null
type createPlantRequest struct {
	Name  *string  `json:"name" binding:"required"`
	Image *string  `json:"image" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

// 只接受 is_in_stock，其餘欄位忽略
type updatePlantRequest struct {
	IsInStock *bool `json:"is_in_stock"`
}

// 路徑id必須為正整數，否則視為不存在
func parsePlantID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func bindCreateRequest(c *gin.Context) (createPlantRequest, error) {
	var req createPlantRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		return req, nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) || errors.Is(err, io.EOF) {
		return req, &ValidationError{Message: missingFieldsMessage}
	}
	return req, &ValidationError{Message: "Invalid request body: " + err.Error()}
}

// 空的請求內容視為不更新任何欄位
func bindUpdateRequest(c *gin.Context) (updatePlantRequest, error) {
	var req updatePlantRequest
	data, err := c.GetRawData()
	if err != nil {
		return req, &ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}
	if err := binding.JSON.BindBody(data, &req); err != nil {
		return req, &ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	return req, nil
}

// 查詢植物列表
func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, "", err)
		return
	}

	c.JSON(http.StatusOK, plants)
}

// 新增植物
func (h *PlantHandler) Create(c *gin.Context) {
	req, err := bindCreateRequest(c)
	if err != nil {
		respondError(c, "", err)
		return
	}

	plant, err := h.store.Create(c.Request.Context(), *req.Name, *req.Image, *req.Price)
	if err != nil {
		respondError(c, "", err)
		return
	}

	c.JSON(http.StatusCreated, plant)
}

// 查詢植物資料
func (h *PlantHandler) Get(c *gin.Context) {
	rawID := c.Param("id")
	id, ok := parsePlantID(c)
	if !ok {
		respondError(c, rawID, &NotFoundError{ID: rawID})
		return
	}

	plant, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, rawID, err)
		return
	}

	c.JSON(http.StatusOK, plant)
}

// 修改植物庫存狀態
func (h *PlantHandler) Update(c *gin.Context) {
	rawID := c.Param("id")
	id, ok := parsePlantID(c)
	if !ok {
		respondError(c, rawID, &NotFoundError{ID: rawID})
		return
	}

	req, err := bindUpdateRequest(c)
	if err != nil {
		respondError(c, rawID, err)
		return
	}

	plant, err := h.store.UpdateStock(c.Request.Context(), id, req.IsInStock)
	if err != nil {
		respondError(c, rawID, err)
		return
	}

	c.JSON(http.StatusOK, plant)
}

// 刪除植物
func (h *PlantHandler) Delete(c *gin.Context) {
	rawID := c.Param("id")
	id, ok := parsePlantID(c)
	if !ok {
		respondError(c, rawID, &NotFoundError{ID: rawID})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, rawID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// 檢查資料庫連線
func (h *PlantHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
