package handler

import (
	"io"
	"net/http"
	"strings"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// CreateAuthor handles POST /authors/
// Body là JSON hoặc multipart form với file "avatar" tùy chọn.
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req author.CreateAuthorReq

	if isMultipart(c) {
		req.Name = c.PostForm("name")

		avatar, err := readUploadFile(c, "avatar")
		if err != nil {
			response.BadRequest(c, "Can not upload file")
			return
		}
		req.Avatar = avatar
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Please filled out the author name!")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if err == author.ErrInvalidName {
			response.BadRequest(c, "Please filled out the author name!")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Author created successfully", "author", created)
}

// GetAuthors handles GET /authors/
func (h *AuthorHandler) GetAuthors(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	// API trả thẳng mảng, không bọc envelope
	response.List(c, http.StatusOK, authors)
}

// GetAuthorDetail handles GET /authors/:slug
func (h *AuthorHandler) GetAuthorDetail(c *gin.Context) {
	slug := c.Param("slug")

	found, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if author.IsNotFound(err) {
			response.NotFound(c, "Nothing to show")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get Author Successfully", "author", found)
}

// UpdateAuthor handles PATCH /authors/:slug
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	slug := c.Param("slug")

	var req author.UpdateAuthorReq

	if isMultipart(c) {
		if name, ok := c.GetPostForm("name"); ok {
			req.Name = &name
		}

		avatar, err := readUploadFile(c, "avatar")
		if err != nil {
			response.BadRequest(c, "Can not upload file")
			return
		}
		req.Avatar = avatar
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request")
		return
	}

	updated, err := h.service.UpdateBySlug(c.Request.Context(), slug, &req)
	if err != nil {
		if author.IsNotFound(err) {
			response.NotFound(c, "Author not found")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author updated successfully", "author", updated)
}

func (h *AuthorHandler) respondError(c *gin.Context, err error) {
	status := author.GetHTTPStatusCode(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error("author handler: unexpected error", err)
		response.InternalServerError(c, "Unknown Error!")
	case http.StatusBadGateway:
		response.Message(c, status, "Can not upload file")
	default:
		response.Message(c, status, err.Error())
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readUploadFile đọc hết một file multipart vào memory.
// Trả về nil nếu field không có mặt (file là optional).
func readUploadFile(c *gin.Context, field string) (*shared.UploadFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &shared.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
