package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecoleta/internal/items/service"
	"ecoleta/internal/items/transport"
	"ecoleta/platform/httpkit"
	"ecoleta/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid item id"
	msgImageRequired    = "image file is required"
)

// Handler handles HTTP requests for the item catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new item handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the item catalog.
// GET /api/v1/items
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Create adds an item from a multipart form (title, image).
// POST /api/v1/admin/items
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgImageRequired, nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgImageRequired, nil)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := h.svc.Create(c.Request.Context(), req, service.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Delete removes an item.
// DELETE /api/v1/admin/items/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}
