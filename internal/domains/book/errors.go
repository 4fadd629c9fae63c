package book

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrMissingName        = errors.New("lack of information")
	ErrCategoryRefMissing = errors.New("some categories did not exist")
	ErrAuthorRefMissing   = errors.New("some authors did not exist")
	ErrDuplicateSlug      = errors.New("book slug already exists")
	ErrUploadFailed       = errors.New("can not upload file")
	ErrInvalidImage       = errors.New("invalid image file")
	ErrInvalidInput       = errors.New("invalid request")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

// IsRefMissing nhận diện lỗi tham chiếu: id category/author trong
// request không tồn tại trong collection tương ứng.
func IsRefMissing(err error) bool {
	return errors.Is(err, ErrCategoryRefMissing) || errors.Is(err, ErrAuthorRefMissing)
}

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound), IsRefMissing(err):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicateSlug):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
