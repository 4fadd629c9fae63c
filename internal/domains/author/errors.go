package author

import (
	"errors"
	"net/http"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidName    = errors.New("author name is required")
	ErrDuplicateSlug  = errors.New("author slug already exists")
	ErrUploadFailed   = errors.New("can not upload file")
	ErrInvalidImage   = errors.New("invalid image file")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAuthorNotFound)
}

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrDuplicateSlug), errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
