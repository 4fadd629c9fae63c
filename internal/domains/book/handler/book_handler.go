package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxImages chặn form gửi quá nhiều file trong một request
const maxImages = 10

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// CreateBook handles POST /books/
// Body là multipart form (name, categories, authors, description,
// release, images[]) hoặc JSON khi không có file.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req book.CreateBookReq

	if isMultipart(c) {
		if err := h.bindCreateForm(c, &req); err != nil {
			response.BadRequest(c, "Lack of information")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Lack of information")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Something wrong")
		return
	}

	response.Success(c, http.StatusCreated, "Created Successfully", "book", created)
}

// GetBooks handles GET /books/
func (h *BookHandler) GetBooks(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Something wrong")
		return
	}

	response.Success(c, http.StatusOK, "Get books successfully", "books", books)
}

// GetBookDetail handles GET /books/:slug
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	slug := c.Param("slug")

	found, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if book.IsNotFound(err) {
			response.NotFound(c, "Nothing to show")
			return
		}
		h.respondError(c, err, "Unknown Error!")
		return
	}

	response.Success(c, http.StatusOK, "Get Book Successfully", "book", found)
}

// UpdateBook handles PATCH /books/:slug
// replaceIndexes nhận từ query string hoặc form field, dạng JSON
// `[0,2]`; ghép theo vị trí với images[] mới upload.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	slug := c.Param("slug")

	var req book.UpdateBookReq

	if isMultipart(c) {
		if err := h.bindUpdateForm(c, &req); err != nil {
			response.BadRequest(c, "Invalid request")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request")
		return
	}

	// query string thắng form field
	if raw := c.Query("replaceIndexes"); raw != "" {
		indexes, err := book.ParseIndexList(raw)
		if err != nil {
			response.BadRequest(c, "Invalid request")
			return
		}
		req.ReplaceIndexes = indexes
	}

	updated, err := h.service.UpdateBySlug(c.Request.Context(), slug, &req)
	if err != nil {
		if book.IsNotFound(err) {
			response.NotFound(c, "Book not found")
			return
		}
		h.respondError(c, err, "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", "book", updated)
}

// DeleteBook handles DELETE /books/:slug
func (h *BookHandler) DeleteBook(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.service.DeleteBySlug(c.Request.Context(), slug); err != nil {
		if book.IsNotFound(err) {
			response.NotFound(c, "Book not found")
			return
		}
		h.respondError(c, err, "Something went wrong")
		return
	}

	response.Message(c, http.StatusOK, "Book deleted successfully")
}

func (h *BookHandler) bindCreateForm(c *gin.Context, req *book.CreateBookReq) error {
	req.Name = c.PostForm("name")
	req.Description = c.PostForm("description")

	if raw := c.PostForm("categories"); raw != "" {
		ids, err := book.ParseIDList(raw)
		if err != nil {
			return err
		}
		req.Categories = ids
	}
	if raw := c.PostForm("authors"); raw != "" {
		ids, err := book.ParseIDList(raw)
		if err != nil {
			return err
		}
		req.Authors = ids
	}
	if raw := c.PostForm("release"); raw != "" {
		t, err := book.ParseRelease(raw)
		if err != nil {
			return err
		}
		req.Release = &t
	}

	files, err := readImageFiles(c)
	if err != nil {
		return err
	}
	req.Images = files

	return nil
}

func (h *BookHandler) bindUpdateForm(c *gin.Context, req *book.UpdateBookReq) error {
	if name, ok := c.GetPostForm("name"); ok {
		req.Name = &name
	}
	if desc, ok := c.GetPostForm("description"); ok {
		req.Description = &desc
	}
	if slug, ok := c.GetPostForm("slug"); ok {
		req.Slug = &slug
	}
	if raw, ok := c.GetPostForm("release"); ok {
		t, err := book.ParseRelease(raw)
		if err != nil {
			return err
		}
		req.Release = &t
	}
	if raw, ok := c.GetPostForm("categories"); ok {
		ids, err := book.ParseIDList(raw)
		if err != nil {
			return err
		}
		req.Categories = &ids
	}
	if raw, ok := c.GetPostForm("authors"); ok {
		ids, err := book.ParseIDList(raw)
		if err != nil {
			return err
		}
		req.Authors = &ids
	}
	if raw, ok := c.GetPostForm("replaceIndexes"); ok {
		indexes, err := book.ParseIndexList(raw)
		if err != nil {
			return err
		}
		req.ReplaceIndexes = indexes
	}

	files, err := readImageFiles(c)
	if err != nil {
		return err
	}
	req.Images = files

	return nil
}

func (h *BookHandler) respondError(c *gin.Context, err error, serverMessage string) {
	status := book.GetHTTPStatusCode(err)
	switch {
	case status == http.StatusInternalServerError:
		logger.Error("book handler: unexpected error", err)
		response.InternalServerError(c, serverMessage)
	case status == http.StatusBadGateway:
		response.Message(c, status, "Can not upload file")
	case err == book.ErrMissingName:
		response.BadRequest(c, "Lack of information")
	case err == book.ErrInvalidInput:
		response.BadRequest(c, "Invalid request")
	case book.IsRefMissing(err):
		// thông điệp phân biệt set nào thiếu
		if err == book.ErrCategoryRefMissing {
			response.NotFound(c, "Some categories did not exist")
		} else {
			response.NotFound(c, "Some authors did not exist")
		}
	default:
		response.Message(c, status, err.Error())
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readImageFiles đọc toàn bộ field "images" vào memory, giữ nguyên
// thứ tự gửi lên. Thứ tự này là một phần của contract replace.
func readImageFiles(c *gin.Context) ([]*shared.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File["images"]
	if len(headers) > maxImages {
		headers = headers[:maxImages]
	}

	files := make([]*shared.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := readFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, nil
}

func readFile(header *multipart.FileHeader) (*shared.UploadFile, error) {
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
