package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared"
)

type CreateAuthorReq struct {
	Name string `json:"name" form:"name"`

	// Avatar là file multipart tùy chọn, handler đọc sẵn vào memory
	Avatar *shared.UploadFile `json:"-" form:"-"`
}

func (r CreateAuthorReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateAuthorReq là partial update: field nil nghĩa là không đổi
type UpdateAuthorReq struct {
	Name *string `json:"name" form:"name"`

	Avatar *shared.UploadFile `json:"-" form:"-"`
}

func (r UpdateAuthorReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type AuthorResp struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Slug   string    `json:"slug"`
}

func ToResp(a *Author) *AuthorResp {
	return &AuthorResp{
		ID:     a.ID,
		Name:   a.Name,
		Avatar: a.Avatar,
		Slug:   a.Slug,
	}
}

func ToRespList(authors []Author) []AuthorResp {
	out := make([]AuthorResp, len(authors))
	for i := range authors {
		out[i] = *ToResp(&authors[i])
	}
	return out
}
