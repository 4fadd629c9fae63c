package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/book"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService ghi lại request cuối cùng nhận được để assert
// phần parsing của handler, trả canned responses.
type fakeService struct {
	books map[string]*book.BookResp

	lastCreate *book.CreateBookReq
	lastUpdate *book.UpdateBookReq

	failWith error
}

func newFakeService() *fakeService {
	return &fakeService{books: make(map[string]*book.BookResp)}
}

func (f *fakeService) add(name, slug string) *book.BookResp {
	resp := &book.BookResp{
		ID:      uuid.New(),
		Name:    name,
		Slug:    slug,
		Release: time.Now(),
	}
	f.books[slug] = resp
	return resp
}

func (f *fakeService) Create(_ context.Context, req *book.CreateBookReq) (*book.BookResp, error) {
	f.lastCreate = req
	if f.failWith != nil {
		return nil, f.failWith
	}
	if req.Name == "" {
		return nil, book.ErrMissingName
	}
	return f.add(req.Name, strings.ToLower(req.Name)), nil
}

func (f *fakeService) List(_ context.Context) ([]book.BookListItemResp, error) {
	out := make([]book.BookListItemResp, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, book.BookListItemResp{ID: b.ID, Name: b.Name, Slug: b.Slug})
	}
	return out, nil
}

func (f *fakeService) GetBySlug(_ context.Context, slug string) (*book.BookDetailResp, error) {
	b, ok := f.books[slug]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &book.BookDetailResp{ID: b.ID, Name: b.Name, Slug: b.Slug}, nil
}

func (f *fakeService) UpdateBySlug(_ context.Context, slug string, req *book.UpdateBookReq) (*book.BookResp, error) {
	f.lastUpdate = req
	if f.failWith != nil {
		return nil, f.failWith
	}
	b, ok := f.books[slug]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeService) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := f.books[slug]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, slug)
	return nil
}

func setupRouter(svc book.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc)

	router := gin.New()
	router.POST("/books", h.CreateBook)
	router.GET("/books", h.GetBooks)
	router.GET("/books/:slug", h.GetBookDetail)
	router.PATCH("/books/:slug", h.UpdateBook)
	router.DELETE("/books/:slug", h.DeleteBook)
	return router
}

func pngPart(t *testing.T, w *multipart.Writer, field, name string) {
	t.Helper()
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(part, img))
}

func TestCreateBookMissingName(t *testing.T) {
	router := setupRouter(newFakeService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Lack of information"}`, w.Body.String())
}

func TestCreateBookUnknownCategory(t *testing.T) {
	svc := newFakeService()
	svc.failWith = book.ErrCategoryRefMissing
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"name":"Đắc Nhân Tâm"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Some categories did not exist"}`, w.Body.String())
}

func TestCreateBookMultipart(t *testing.T) {
	svc := newFakeService()
	router := setupRouter(svc)

	catID := uuid.NewString()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", "Đắc Nhân Tâm"))
	require.NoError(t, form.WriteField("description", "Kỹ năng sống"))
	require.NoError(t, form.WriteField("categories", `["`+catID+`"]`))
	require.NoError(t, form.WriteField("release", "1936-10-01"))
	pngPart(t, form, "images", "cover.png")
	pngPart(t, form, "images", "back.png")
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Created Successfully", body["message"])

	// handler phải parse đúng form về request struct
	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, "Đắc Nhân Tâm", svc.lastCreate.Name)
	require.Len(t, svc.lastCreate.Categories, 1)
	assert.Equal(t, catID, svc.lastCreate.Categories[0].String())
	require.NotNil(t, svc.lastCreate.Release)
	assert.Equal(t, 1936, svc.lastCreate.Release.Year())
	assert.Len(t, svc.lastCreate.Images, 2)
}

func TestCreateBookBadCategoriesJSON(t *testing.T) {
	router := setupRouter(newFakeService())

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", "Đắc Nhân Tâm"))
	require.NoError(t, form.WriteField("categories", `not-json`))
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooksEnvelope(t *testing.T) {
	svc := newFakeService()
	svc.add("Đắc Nhân Tâm", "dac-nhan-tam")
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Get books successfully", body["message"])

	books, ok := body["books"].([]interface{})
	require.True(t, ok)
	assert.Len(t, books, 1)
}

func TestGetBookDetailNotFound(t *testing.T) {
	router := setupRouter(newFakeService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Nothing to show"}`, w.Body.String())
}

func TestUpdateBookMultipartReplaceIndexes(t *testing.T) {
	svc := newFakeService()
	svc.add("Sách Ảnh", "sach-anh")
	router := setupRouter(svc)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("replaceIndexes", `[0,2]`))
	pngPart(t, form, "images", "new-one.png")
	pngPart(t, form, "images", "new-three.png")
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/books/sach-anh", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.lastUpdate)
	assert.Equal(t, []int{0, 2}, svc.lastUpdate.ReplaceIndexes)
	assert.Len(t, svc.lastUpdate.Images, 2)
	assert.Nil(t, svc.lastUpdate.Name)
}

func TestUpdateBookReplaceIndexesFromQuery(t *testing.T) {
	svc := newFakeService()
	svc.add("Sách Ảnh", "sach-anh")
	router := setupRouter(svc)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("replaceIndexes", `[9]`))
	pngPart(t, form, "images", "new.png")
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/books/sach-anh?replaceIndexes=[1]", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// query string thắng form field
	require.NotNil(t, svc.lastUpdate)
	assert.Equal(t, []int{1}, svc.lastUpdate.ReplaceIndexes)
}

func TestUpdateBookNotFound(t *testing.T) {
	router := setupRouter(newFakeService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/books/missing", strings.NewReader(`{"name":"Mới"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, w.Body.String())
}

func TestDeleteBookScenario(t *testing.T) {
	svc := newFakeService()
	svc.add("Đắc Nhân Tâm", "dark-nhan-tam")
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/books/dark-nhan-tam", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())

	// GET sau khi delete trả về not-found shape
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/books/dark-nhan-tam", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Nothing to show"}`, w.Body.String())
}

func TestDeleteBookNotFound(t *testing.T) {
	router := setupRouter(newFakeService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/books/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, w.Body.String())
}
