package handler

import (
	"net/http"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CreateCategory handles POST /categories/
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Category name is required")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Insert New Category Successfully!", "category", created)
}

// GetCategories handles GET /categories/
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	// API trả thẳng mảng, không bọc envelope
	response.List(c, http.StatusOK, categories)
}

// GetCategoryDetail handles GET /categories/:slug
func (h *CategoryHandler) GetCategoryDetail(c *gin.Context) {
	slug := c.Param("slug")

	found, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if category.IsNotFound(err) {
			response.NotFound(c, "Nothing to show")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get Category Successfully", "category", found)
}

// UpdateCategory handles PATCH /categories/:slug
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	slug := c.Param("slug")

	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request")
		return
	}

	updated, err := h.service.UpdateBySlug(c.Request.Context(), slug, &req)
	if err != nil {
		if category.IsNotFound(err) {
			response.NotFound(c, "Category not found")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", "category", updated)
}

func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	switch status := category.GetHTTPStatusCode(err); {
	case err == category.ErrInvalidName:
		response.BadRequest(c, "Category name is required")
	case status == http.StatusInternalServerError:
		logger.Error("category handler: unexpected error", err)
		response.InternalServerError(c, "Unknown Error!")
	default:
		response.Message(c, status, err.Error())
	}
}
