package author

import (
	"time"

	"github.com/google/uuid"
)

// Author là tác giả sách. Avatar là URL trên media store,
// chuỗi rỗng khi chưa upload. Slug sinh từ Name, unique.
type Author struct {
	ID        uuid.UUID
	Name      string
	Avatar    string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor tạo entity mới; slug do service gán sau khi check
// uniqueness với repository.
func NewAuthor(name, avatar string) *Author {
	now := time.Now()
	return &Author{
		ID:        uuid.New(),
		Name:      name,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
