package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateCategoryReq struct {
	Name string `json:"name" form:"name"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateCategoryReq là partial update: field nil nghĩa là không đổi
type UpdateCategoryReq struct {
	Name *string `json:"name" form:"name"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type CategoryResp struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func ToResp(c *Category) *CategoryResp {
	return &CategoryResp{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}

func ToRespList(categories []Category) []CategoryResp {
	out := make([]CategoryResp, len(categories))
	for i := range categories {
		out[i] = *ToResp(&categories[i])
	}
	return out
}
