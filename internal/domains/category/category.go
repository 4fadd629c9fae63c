package category

import (
	"time"

	"github.com/google/uuid"
)

// Category là một danh mục sách. Slug sinh từ Name lúc tạo,
// sinh lại khi Name đổi, unique trong bảng categories.
type Category struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory tạo entity mới; slug được service gán sau khi
// đã check uniqueness với repository.
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
