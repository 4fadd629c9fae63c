package book

import (
	"time"

	"github.com/google/uuid"
)

// Book là document trung tâm của catalog. Categories và Authors là
// mảng id tham chiếu (weak ref, không FK cứng); Images là mảng URL
// trên media store, thứ tự có ý nghĩa với replace protocol.
type Book struct {
	ID          uuid.UUID
	Name        string
	Categories  []uuid.UUID
	Authors     []uuid.UUID
	Images      []string
	Release     time.Time
	Description string
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook tạo entity mới; release mặc định là thời điểm tạo
// khi caller không truyền.
func NewBook(name, description string, release time.Time) *Book {
	now := time.Now()
	if release.IsZero() {
		release = now
	}
	return &Book{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Release:     release,
		Categories:  []uuid.UUID{},
		Authors:     []uuid.UUID{},
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
