package book

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared"
)

type CreateBookReq struct {
	Name        string      `json:"name" form:"name"`
	Categories  []uuid.UUID `json:"categories" form:"-"`
	Authors     []uuid.UUID `json:"authors" form:"-"`
	Description string      `json:"description" form:"description"`
	Release     *time.Time  `json:"release" form:"-"`

	// Images là files multipart đã đọc vào memory, theo thứ tự gửi lên
	Images []*shared.UploadFile `json:"-" form:"-"`
}

func (r CreateBookReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 500)),
	)
}

// UpdateBookReq là partial update. Pointer nil nghĩa là field vắng
// mặt trong request, giữ nguyên giá trị cũ. Categories/Authors khi
// có mặt sẽ replace nguyên mảng, không merge.
type UpdateBookReq struct {
	Name        *string      `json:"name" form:"name"`
	Release     *time.Time   `json:"release" form:"-"`
	Description *string      `json:"description" form:"description"`
	Slug        *string      `json:"slug" form:"slug"`
	Categories  *[]uuid.UUID `json:"categories" form:"-"`
	Authors     *[]uuid.UUID `json:"authors" form:"-"`

	// ReplaceIndexes là list vị trí vào mảng images HIỆN TẠI,
	// ghép theo thứ tự với Images mới upload
	ReplaceIndexes []int `json:"replaceIndexes" form:"-"`

	Images []*shared.UploadFile `json:"-" form:"-"`
}

func (r UpdateBookReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty),
	)
}

// ParseIDList giải mã list id từ multipart form: client gửi chuỗi
// JSON kiểu `["uuid1","uuid2"]` trong một field text.
func ParseIDList(raw string) ([]uuid.UUID, error) {
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil, ErrInvalidInput
	}

	ids := make([]uuid.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, ErrInvalidInput
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseIndexList giải mã replaceIndexes từ chuỗi JSON `[0,2,5]`.
func ParseIndexList(raw string) ([]int, error) {
	var indexes []int
	if err := json.Unmarshal([]byte(raw), &indexes); err != nil {
		return nil, ErrInvalidInput
	}
	return indexes, nil
}

// ParseRelease chấp nhận RFC3339 hoặc date-only.
func ParseRelease(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return t, nil
}

// BookResp là shape trả về sau create/update: refs để nguyên id,
// không populate.
type BookResp struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Categories  []uuid.UUID `json:"categories"`
	Images      []string    `json:"images"`
	Release     time.Time   `json:"release"`
	Authors     []uuid.UUID `json:"authors"`
	Description string      `json:"description"`
	Slug        string      `json:"slug"`
}

func ToResp(b *Book) *BookResp {
	return &BookResp{
		ID:          b.ID,
		Name:        b.Name,
		Categories:  b.Categories,
		Images:      b.Images,
		Release:     b.Release,
		Authors:     b.Authors,
		Description: b.Description,
		Slug:        b.Slug,
	}
}

// RefResp là category/author đã populate về {id, name}.
type RefResp struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AuthorRefResp thêm avatar, chỉ dùng ở book detail.
type AuthorRefResp struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// BookListItemResp là một phần tử của GET /books/: refs populate
// về {id, name}.
type BookListItemResp struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Categories  []RefResp `json:"categories"`
	Images      []string  `json:"images"`
	Release     time.Time `json:"release"`
	Authors     []RefResp `json:"authors"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
}

// BookDetailResp là GET /books/:slug: authors populate kèm avatar.
type BookDetailResp struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Categories  []RefResp       `json:"categories"`
	Images      []string        `json:"images"`
	Release     time.Time       `json:"release"`
	Authors     []AuthorRefResp `json:"authors"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
}
