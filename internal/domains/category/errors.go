package category

import (
	"errors"
	"net/http"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("category name is required")
	ErrDuplicateSlug    = errors.New("category slug already exists")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

// GetHTTPStatusCode map domain error sang HTTP status.
// Handler dùng để trả đúng status mà không switch từng error.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrDuplicateSlug):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
